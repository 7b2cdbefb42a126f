package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"psicoagenda/config"
	"psicoagenda/internal/availability"
	"psicoagenda/internal/domain"
	"psicoagenda/internal/metrics"
	"psicoagenda/internal/repository"
	"psicoagenda/pkg/timeutil"
	"psicoagenda/pkg/validator"
)

const maxNotesLength = 1000

type SessionServiceImpl struct {
	sessions      repository.SessionRepository
	professionals repository.ProfessionalRepository
	clock         availability.Clock
	cfg           config.AvailabilityConfig
	metrics       metrics.Recorder
	logger        *zap.Logger
}

func NewSessionService(
	sessions repository.SessionRepository,
	professionals repository.ProfessionalRepository,
	clock availability.Clock,
	cfg config.AvailabilityConfig,
	recorder metrics.Recorder,
	logger *zap.Logger,
) *SessionServiceImpl {
	return &SessionServiceImpl{
		sessions:      sessions,
		professionals: professionals,
		clock:         clock,
		cfg:           cfg,
		metrics:       recorder,
		logger:        logger,
	}
}

// Book records a session for the picked slot. Nothing checks whether the slot
// was already taken.
func (s *SessionServiceImpl) Book(ctx context.Context, dto domain.BookSessionDTO) (*domain.ScheduledSession, error) {
	if !validator.ValidateID(dto.PsychologistID) {
		return nil, domain.ErrProfessionalNotFound
	}

	p, err := s.professionals.GetByID(ctx, dto.PsychologistID)
	if err != nil {
		s.logger.Error("ошибка получения специалиста", zap.String("id", dto.PsychologistID), zap.Error(err))
		return nil, fmt.Errorf("ошибка получения специалиста: %w", err)
	}
	if p == nil {
		return nil, domain.ErrProfessionalNotFound
	}
	if !p.Offers(dto.Modality) {
		return nil, domain.ErrModalityNotOffered
	}

	instant, err := timeutil.ParseISO(dto.Datetime)
	if err != nil {
		return nil, domain.ErrInvalidDatetime
	}
	datetime := timeutil.FormatISO(instant)

	notes := validator.SanitizeString(strings.TrimSpace(dto.Notes))
	if !validator.ValidateNotes(notes, maxNotesLength) {
		return nil, domain.ErrNotesTooLong
	}

	slotID := dto.SlotID
	if slotID == "" {
		slotID = availability.SlotID(p.ID, dto.Modality, datetime)
	}

	session := domain.ScheduledSession{
		ID:               uuid.NewString(),
		SlotID:           slotID,
		PsychologistID:   p.ID,
		PsychologistName: p.Name,
		Modality:         dto.Modality,
		Datetime:         datetime,
		CreatedAt:        timeutil.FormatISO(s.clock.Now()),
		Status:           domain.SessionStatusScheduled,
		SessionMinutes:   p.SessionMinutes,
		PriceUSD:         p.PriceUSD,
		Notes:            notes,
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		s.logger.Error("ошибка сохранения сессии", zap.String("psychologist_id", p.ID), zap.Error(err))
		return nil, err
	}

	s.metrics.RecordSessionBooked(string(session.Modality))
	s.logger.Info("сессия забронирована",
		zap.String("session_id", session.ID),
		zap.String("psychologist_id", p.ID),
		zap.String("modality", string(session.Modality)),
		zap.String("datetime", session.Datetime),
	)

	return &session, nil
}

// Overview splits the stored sessions into upcoming (scheduled, soonest first)
// and history (everything else, latest first).
func (s *SessionServiceImpl) Overview(ctx context.Context, timezone string) (*domain.SessionsOverview, error) {
	loc, err := resolveLocation(timezone, s.cfg.Location)
	if err != nil {
		return nil, err
	}

	sessions, err := s.sessions.List(ctx)
	if err != nil {
		s.logger.Error("ошибка получения списка сессий", zap.Error(err))
		return nil, fmt.Errorf("ошибка получения списка сессий: %w", err)
	}

	overview := &domain.SessionsOverview{
		Upcoming: []domain.SessionView{},
		History:  []domain.SessionView{},
	}
	for _, session := range sessions {
		view := domain.SessionView{ScheduledSession: session}
		if instant, err := timeutil.ParseISO(session.Datetime); err == nil {
			view.LocalLabel = timeutil.FormatLongLabel(instant, loc, s.cfg.Locale)
		}

		if session.Status == domain.SessionStatusScheduled {
			overview.Upcoming = append(overview.Upcoming, view)
		} else {
			overview.History = append(overview.History, view)
		}
	}

	sort.SliceStable(overview.Upcoming, func(i, j int) bool {
		return overview.Upcoming[i].Datetime < overview.Upcoming[j].Datetime
	})
	sort.SliceStable(overview.History, func(i, j int) bool {
		return overview.History[i].Datetime > overview.History[j].Datetime
	})

	return overview, nil
}

func (s *SessionServiceImpl) Cancel(ctx context.Context, id string) error {
	found, err := s.sessions.SetStatus(ctx, id, domain.SessionStatusCanceled)
	if err != nil {
		s.logger.Error("ошибка отмены сессии", zap.String("session_id", id), zap.Error(err))
		return err
	}
	if !found {
		return domain.ErrSessionNotFound
	}

	s.metrics.RecordSessionCanceled()
	s.logger.Info("сессия отменена", zap.String("session_id", id))
	return nil
}

func (s *SessionServiceImpl) Delete(ctx context.Context, id string) error {
	found, err := s.sessions.Remove(ctx, id)
	if err != nil {
		s.logger.Error("ошибка удаления сессии", zap.String("session_id", id), zap.Error(err))
		return err
	}
	if !found {
		return domain.ErrSessionNotFound
	}

	s.logger.Info("сессия удалена", zap.String("session_id", id))
	return nil
}
