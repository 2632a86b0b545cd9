package memory

import (
	"context"
	"sync"

	"github.com/aretw0/palisade/pkg/domain"
)

// Store implements ports.SessionStore in memory.
// Safe for concurrent use; writes are last-write-wins.
type Store struct {
	mu   sync.RWMutex
	data map[string]*domain.Session
}

// NewStore creates a new in-memory session store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Session),
	}
}

// Save persists the session. The snapshot is cloned so later caller mutation
// cannot reach the stored copy.
func (s *Store) Save(ctx context.Context, subject string, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[subject] = session.Clone()
	return nil
}

// Load retrieves a copy of the session for a subject.
func (s *Store) Load(ctx context.Context, subject string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.data[subject]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session.Clone(), nil
}

// Delete removes the session for a subject.
func (s *Store) Delete(ctx context.Context, subject string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, subject)
	return nil
}

// List returns subjects with an active session.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	subjects := make([]string, 0, len(s.data))
	for subject := range s.data {
		subjects = append(subjects, subject)
	}
	return subjects, nil
}
