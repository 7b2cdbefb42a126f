package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"psicoagenda/internal/domain"
	"psicoagenda/internal/metrics"
	"psicoagenda/internal/storage"
)

// SessionStore keeps every ScheduledSession as one JSON array under a single
// named entry. A nil storage handle turns every operation into a no-op.
type SessionStore struct {
	mu      sync.Mutex
	kv      storage.KeyValue
	key     string
	metrics metrics.Recorder
	logger  *zap.Logger
}

func NewSessionStore(kv storage.KeyValue, key string, recorder metrics.Recorder, logger *zap.Logger) *SessionStore {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &SessionStore{
		kv:      kv,
		key:     key,
		metrics: recorder,
		logger:  logger,
	}
}

func (s *SessionStore) List(ctx context.Context) ([]domain.ScheduledSession, error) {
	if s.kv == nil {
		return []domain.ScheduledSession{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.load(ctx)
	if err != nil {
		s.logger.Warn("не удалось прочитать хранилище сессий", zap.String("key", s.key), zap.Error(err))
		return []domain.ScheduledSession{}, nil
	}
	return sessions, nil
}

// Save replaces the session with the same id in place or appends it.
func (s *SessionStore) Save(ctx context.Context, session domain.ScheduledSession) error {
	if s.kv == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx)
	if err != nil {
		return err
	}
	replaced := false
	for i := range all {
		if all[i].ID == session.ID {
			all[i] = session
			replaced = true
			break
		}
	}
	if !replaced {
		all = append(all, session)
	}

	return s.store(ctx, all)
}

// SetStatus changes only the status of the matching session. Unknown ids are ignored.
func (s *SessionStore) SetStatus(ctx context.Context, id string, status domain.SessionStatus) (bool, error) {
	if s.kv == nil {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	found := false
	for i := range all {
		if all[i].ID == id {
			all[i].Status = status
			found = true
		}
	}
	if !found {
		return false, nil
	}

	return true, s.store(ctx, all)
}

// Remove deletes the matching session. Unknown ids are ignored.
func (s *SessionStore) Remove(ctx context.Context, id string) (bool, error) {
	if s.kv == nil {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	kept := all[:0]
	for _, session := range all {
		if session.ID != id {
			kept = append(kept, session)
		}
	}
	if len(kept) == len(all) {
		return false, nil
	}

	return true, s.store(ctx, kept)
}

// load reads the whole collection. Unparseable payloads read as empty; a
// backend failure is reported so that writers never overwrite data they could not see.
func (s *SessionStore) load(ctx context.Context) ([]domain.ScheduledSession, error) {
	raw, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	if len(raw) == 0 {
		return []domain.ScheduledSession{}, nil
	}

	var sessions []domain.ScheduledSession
	if err := json.Unmarshal(raw, &sessions); err != nil {
		s.logger.Warn("хранилище сессий повреждено, используется пустой список",
			zap.String("key", s.key),
			zap.Error(err),
		)
		s.metrics.RecordStoreRecovered()
		return []domain.ScheduledSession{}, nil
	}
	if sessions == nil {
		return []domain.ScheduledSession{}, nil
	}

	return sessions, nil
}

func (s *SessionStore) store(ctx context.Context, sessions []domain.ScheduledSession) error {
	raw, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("ошибка сериализации сессий: %w", err)
	}

	if err := s.kv.Set(ctx, s.key, raw); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}

	return nil
}
