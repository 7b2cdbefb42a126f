package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"psicoagenda/config"
	"psicoagenda/internal/domain"
	"psicoagenda/internal/metrics"
	"psicoagenda/internal/service"
)

type Handler struct {
	services *service.Services
	logger   *zap.Logger
	config   *config.Config
	metrics  metrics.Recorder
	gatherer prometheus.Gatherer
	limiter  *ipRateLimiter
}

func NewHandler(
	services *service.Services,
	logger *zap.Logger,
	config *config.Config,
	recorder metrics.Recorder,
	gatherer prometheus.Gatherer,
) *Handler {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &Handler{
		services: services,
		logger:   logger,
		config:   config,
		metrics:  recorder,
		gatherer: gatherer,
		limiter:  newIPRateLimiter(config.HTTP.BookingRatePerMin),
	}
}

func (h *Handler) InitRoutes(router *gin.Engine) {
	router.Use(h.loggerMiddleware())

	router.Use(h.metricsMiddleware())

	router.Use(h.errorMiddleware())

	router.Use(h.corsMiddleware())

	router.GET("/health", h.health)

	if h.gatherer != nil {
		router.GET("/metrics", gin.WrapH(metrics.Handler(h.gatherer)))
	}

	api := router.Group("/api/v1")
	{
		professionals := api.Group("/professionals")
		{
			professionals.GET("", h.getProfessionals)
			professionals.GET("/:id", h.getProfessionalByID)
			professionals.GET("/:id/availability", h.getProfessionalAvailability)
		}

		api.GET("/specialties", h.getSpecialties)

		sessions := api.Group("/sessions")
		{
			sessions.GET("", h.getSessions)
			sessions.POST("", h.rateLimitMiddleware(), h.bookSession)
			sessions.PATCH("/:id/cancel", h.cancelSession)
			sessions.DELETE("/:id", h.deleteSession)
		}
	}
}

// @Summary Проверка состояния
// @Tags Служебные
// @Produce json
// @Success 200 {object} healthResponse
// @Router /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{
		Status:  "ok",
		Name:    h.config.Name,
		Version: h.config.Version,
	})
}

// serviceErrorResponse maps service errors onto HTTP statuses.
func (h *Handler) serviceErrorResponse(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrProfessionalNotFound),
		errors.Is(err, domain.ErrSessionNotFound):
		notFoundResponse(c, err.Error())
	case errors.Is(err, domain.ErrInvalidWindow),
		errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrInvalidDatetime),
		errors.Is(err, domain.ErrInvalidTimezone),
		errors.Is(err, domain.ErrInvalidSlotStatus),
		errors.Is(err, domain.ErrModalityNotOffered),
		errors.Is(err, domain.ErrNotesTooLong):
		badRequestResponse(c, err.Error())
	case errors.Is(err, domain.ErrStorageUnavailable):
		_ = c.Error(err)
		errorResponse(c, http.StatusServiceUnavailable, domain.ErrStorageUnavailable.Error())
	default:
		_ = c.Error(err)
		internalServerErrorResponse(c)
	}
}
