package repository

import (
	"context"

	"psicoagenda/internal/domain"
)

type Repositories struct {
	Professionals ProfessionalRepository
	Sessions      SessionRepository
}

func NewRepositories(catalog *ProfessionalCatalog, sessions *SessionStore) *Repositories {
	return &Repositories{
		Professionals: catalog,
		Sessions:      sessions,
	}
}

// ProfessionalRepository is the read-only professional dataset.
// GetByID returns nil, nil for an unknown id.
type ProfessionalRepository interface {
	List(ctx context.Context) ([]domain.Professional, error)
	GetByID(ctx context.Context, id string) (*domain.Professional, error)
	Specialties(ctx context.Context) ([]string, error)
}

// SessionRepository persists booked sessions. SetStatus and Remove report
// whether a session with the id existed; a missing id is not an error.
type SessionRepository interface {
	List(ctx context.Context) ([]domain.ScheduledSession, error)
	Save(ctx context.Context, session domain.ScheduledSession) error
	SetStatus(ctx context.Context, id string, status domain.SessionStatus) (bool, error)
	Remove(ctx context.Context, id string) (bool, error)
}
