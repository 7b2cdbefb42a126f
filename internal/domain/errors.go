package domain

import "errors"

var (
	ErrProfessionalNotFound = errors.New("специалист не найден")
	ErrSessionNotFound      = errors.New("сессия не найдена")
	ErrModalityNotOffered   = errors.New("специалист не принимает в этом формате")
	ErrInvalidWindow        = errors.New("неверный интервал дат")
	ErrInvalidDate          = errors.New("неверный формат даты, ожидается YYYY-MM-DD")
	ErrInvalidDatetime      = errors.New("неверный формат даты и времени сессии")
	ErrInvalidTimezone      = errors.New("неизвестный часовой пояс")
	ErrInvalidSlotStatus    = errors.New("неизвестный статус слота")
	ErrNotesTooLong         = errors.New("слишком длинный комментарий")
	ErrStorageUnavailable   = errors.New("хранилище недоступно")
)
