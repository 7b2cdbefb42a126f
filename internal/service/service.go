package service

import (
	"context"

	"go.uber.org/zap"

	"psicoagenda/config"
	"psicoagenda/internal/availability"
	"psicoagenda/internal/domain"
	"psicoagenda/internal/metrics"
	"psicoagenda/internal/repository"
	"psicoagenda/internal/storage"
)

type Deps struct {
	Repos       *repository.Repositories
	Logger      *zap.Logger
	Config      *config.Config
	FileStorage storage.FileStorage
	Clock       availability.Clock
	Metrics     metrics.Recorder
}

type Services struct {
	Professional ProfessionalService
	Session      SessionService
}

func NewServices(deps Deps) *Services {
	if deps.Clock == nil {
		deps.Clock = availability.SystemClock{}
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.Nop{}
	}

	return &Services{
		Professional: NewProfessionalService(
			deps.Repos.Professionals,
			deps.FileStorage,
			deps.Clock,
			deps.Config.Availability,
			deps.Config.S3.PresignTTL,
			deps.Metrics,
			deps.Logger,
		),
		Session: NewSessionService(
			deps.Repos.Sessions,
			deps.Repos.Professionals,
			deps.Clock,
			deps.Config.Availability,
			deps.Metrics,
			deps.Logger,
		),
	}
}

type ProfessionalService interface {
	List(ctx context.Context, filter domain.ProfessionalFilter) ([]domain.ProfessionalView, error)
	GetByID(ctx context.Context, id, timezone string) (*domain.ProfessionalView, error)
	Availability(ctx context.Context, id string, query domain.AvailabilityQuery) (*domain.AvailabilityView, error)
	Specialties(ctx context.Context) ([]string, error)
}

type SessionService interface {
	Book(ctx context.Context, dto domain.BookSessionDTO) (*domain.ScheduledSession, error)
	Overview(ctx context.Context, timezone string) (*domain.SessionsOverview, error)
	Cancel(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
