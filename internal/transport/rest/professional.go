package rest

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"psicoagenda/internal/domain"
)

// @Summary Список специалистов
// @Description Возвращает специалистов в порядке каталога с краткой сводкой свободных слотов
// @Tags Специалисты
// @Produce json
// @Param q query string false "Поиск по имени или специализации"
// @Param specialty query []string false "Специализации (любая из)" collectionFormat(multi)
// @Param modality query string false "Формат приема" Enums(Online, Presencial)
// @Param date query string false "День со свободным слотом, YYYY-MM-DD"
// @Param tz query string false "Часовой пояс IANA"
// @Success 200 {object} listResponseBody{data=[]domain.ProfessionalView}
// @Failure 400 {object} errorResponseBody "Неверные параметры запроса"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Router /professionals [get]
func (h *Handler) getProfessionals(c *gin.Context) {
	var query domain.ProfessionalListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.logger.Warn("неверные параметры запроса", zap.Error(err))
		badRequestResponse(c, "неверные параметры запроса")
		return
	}

	filter := domain.ProfessionalFilter{
		Query:       query.Query,
		Specialties: splitList(query.Specialties),
		Date:        query.Date,
		Timezone:    query.Timezone,
	}
	if query.Modality != "" {
		modality := domain.Modality(query.Modality)
		filter.Modality = &modality
	}

	professionals, err := h.services.Professional.List(c.Request.Context(), filter)
	if err != nil {
		h.serviceErrorResponse(c, err)
		return
	}

	listResponse(c, professionals, len(professionals))
}

// @Summary Получить специалиста по ID
// @Tags Специалисты
// @Produce json
// @Param id path string true "ID специалиста"
// @Param tz query string false "Часовой пояс IANA"
// @Success 200 {object} successResponseBody{data=domain.ProfessionalView}
// @Failure 404 {object} errorResponseBody "Специалист не найден"
// @Router /professionals/{id} [get]
func (h *Handler) getProfessionalByID(c *gin.Context) {
	professional, err := h.services.Professional.GetByID(c.Request.Context(), c.Param("id"), c.Query("tz"))
	if err != nil {
		h.serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, professional)
}

// @Summary Свободные слоты специалиста
// @Description Слоты по дням и форматам приема в часовом поясе посетителя
// @Tags Специалисты
// @Produce json
// @Param id path string true "ID специалиста"
// @Param from query string false "Первый день окна, YYYY-MM-DD"
// @Param to query string false "Последний день окна, YYYY-MM-DD"
// @Param tz query string false "Часовой пояс IANA"
// @Param status query []string false "Статусы слотов (по умолчанию free)" collectionFormat(multi)
// @Success 200 {object} successResponseBody{data=domain.AvailabilityView}
// @Failure 400 {object} errorResponseBody "Неверный интервал или параметры"
// @Failure 404 {object} errorResponseBody "Специалист не найден"
// @Router /professionals/{id}/availability [get]
func (h *Handler) getProfessionalAvailability(c *gin.Context) {
	var query domain.AvailabilityQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.logger.Warn("неверные параметры запроса", zap.Error(err))
		badRequestResponse(c, "неверные параметры запроса")
		return
	}

	var statuses []domain.SlotStatus
	for _, s := range query.Statuses {
		for _, part := range splitList([]string{string(s)}) {
			statuses = append(statuses, domain.SlotStatus(part))
		}
	}
	query.Statuses = statuses

	view, err := h.services.Professional.Availability(c.Request.Context(), c.Param("id"), query)
	if err != nil {
		h.serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, view)
}

// @Summary Список специализаций
// @Tags Специалисты
// @Produce json
// @Success 200 {object} listResponseBody{data=[]string}
// @Router /specialties [get]
func (h *Handler) getSpecialties(c *gin.Context) {
	specialties, err := h.services.Professional.Specialties(c.Request.Context())
	if err != nil {
		h.serviceErrorResponse(c, err)
		return
	}

	listResponse(c, specialties, len(specialties))
}

// splitList accepts both repeated parameters and comma separated values.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
