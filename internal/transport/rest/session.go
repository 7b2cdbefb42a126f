package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"psicoagenda/internal/domain"
)

// @Summary Мои сессии
// @Description Предстоящие и прошедшие/отмененные сессии
// @Tags Сессии
// @Produce json
// @Param tz query string false "Часовой пояс IANA для подписей"
// @Success 200 {object} successResponseBody{data=domain.SessionsOverview}
// @Failure 400 {object} errorResponseBody "Неизвестный часовой пояс"
// @Router /sessions [get]
func (h *Handler) getSessions(c *gin.Context) {
	overview, err := h.services.Session.Overview(c.Request.Context(), c.Query("tz"))
	if err != nil {
		h.serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, overview)
}

// @Summary Забронировать сессию
// @Tags Сессии
// @Accept json
// @Produce json
// @Param input body domain.BookSessionDTO true "Выбранный слот"
// @Success 201 {object} successResponseBody{data=domain.ScheduledSession}
// @Failure 400 {object} errorResponseBody "Неверные данные"
// @Failure 404 {object} errorResponseBody "Специалист не найден"
// @Failure 429 {object} errorResponseBody "Слишком много запросов"
// @Failure 503 {object} errorResponseBody "Хранилище недоступно"
// @Router /sessions [post]
func (h *Handler) bookSession(c *gin.Context) {
	var dto domain.BookSessionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	session, err := h.services.Session.Book(c.Request.Context(), dto)
	if err != nil {
		h.serviceErrorResponse(c, err)
		return
	}

	createdResponse(c, session)
}

// @Summary Отменить сессию
// @Tags Сессии
// @Produce json
// @Param id path string true "ID сессии"
// @Success 200 {object} messageResponseType
// @Failure 404 {object} errorResponseBody "Сессия не найдена"
// @Router /sessions/{id}/cancel [patch]
func (h *Handler) cancelSession(c *gin.Context) {
	if err := h.services.Session.Cancel(c.Request.Context(), c.Param("id")); err != nil {
		h.serviceErrorResponse(c, err)
		return
	}

	messageResponse(c, http.StatusOK, "сессия отменена")
}

// @Summary Удалить сессию
// @Tags Сессии
// @Param id path string true "ID сессии"
// @Success 204
// @Failure 404 {object} errorResponseBody "Сессия не найдена"
// @Router /sessions/{id} [delete]
func (h *Handler) deleteSession(c *gin.Context) {
	if err := h.services.Session.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.serviceErrorResponse(c, err)
		return
	}

	noContentResponse(c)
}
