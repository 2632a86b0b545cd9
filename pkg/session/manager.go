package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/palisade/internal/logging"
	"github.com/aretw0/palisade/pkg/domain"
	"github.com/aretw0/palisade/pkg/ports"
)

// lockTTL bounds how long a crashed holder can block a subject across
// replicas.
const lockTTL = 30 * time.Second

// lockEntry holds the per-subject mutex and its reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager serializes session writes per subject. Lock entries are reference
// counted and garbage collected when the last holder releases.
type Manager struct {
	store ports.SessionStore

	mu    sync.Mutex
	locks map[string]*lockEntry

	locker ports.DistributedLocker
	logger *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking across replicas.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLogger configures a logger for deferred errors.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a session manager over the given store.
func NewManager(store ports.SessionStore, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		locks:  make(map[string]*lockEntry),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) acquire(subject string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[subject]
	if !exists {
		entry = &lockEntry{}
		m.locks[subject] = entry
	}
	entry.refs++
	return entry
}

func (m *Manager) release(subject string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[subject]
	if !exists {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, subject)
	}
}

// Load retrieves the session for a subject under the lock.
func (m *Manager) Load(ctx context.Context, subject string) (*domain.Session, error) {
	var session *domain.Session
	err := m.WithLock(ctx, subject, func(ctx context.Context) error {
		var err error
		session, err = m.store.Load(ctx, subject)
		return err
	})
	return session, err
}

// LoadOrCreate loads the session or initializes an empty one if none exists.
// The fresh session is persisted immediately to reserve the subject.
func (m *Manager) LoadOrCreate(ctx context.Context, subject string) (*domain.Session, error) {
	var session *domain.Session
	err := m.WithLock(ctx, subject, func(ctx context.Context) error {
		var err error
		session, err = m.store.Load(ctx, subject)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrSessionNotFound) {
			return fmt.Errorf("failed to check session existence: %w", err)
		}

		session = &domain.Session{Subject: subject}
		if err := m.store.Save(ctx, subject, session); err != nil {
			return fmt.Errorf("failed to initialize session: %w", err)
		}
		return nil
	})
	return session, err
}

// Save persists the session under the lock.
func (m *Manager) Save(ctx context.Context, subject string, session *domain.Session) error {
	return m.WithLock(ctx, subject, func(ctx context.Context) error {
		return m.store.Save(ctx, subject, session)
	})
}

// Update loads, mutates and saves the session as one atomic step. The
// callback receives the current session (never nil; a missing session is
// created with the subject set).
func (m *Manager) Update(ctx context.Context, subject string, fn func(*domain.Session) error) error {
	return m.WithLock(ctx, subject, func(ctx context.Context) error {
		session, err := m.store.Load(ctx, subject)
		if errors.Is(err, domain.ErrSessionNotFound) {
			session = &domain.Session{Subject: subject}
		} else if err != nil {
			return err
		}

		if err := fn(session); err != nil {
			return err
		}
		return m.store.Save(ctx, subject, session)
	})
}

// Delete removes the session under the lock.
func (m *Manager) Delete(ctx context.Context, subject string) error {
	return m.WithLock(ctx, subject, func(ctx context.Context) error {
		return m.store.Delete(ctx, subject)
	})
}

// Store returns the underlying session store.
func (m *Manager) Store() ports.SessionStore {
	return m.store
}

// WithLock executes fn while holding the subject's lock. With a distributed
// locker configured, the replica-wide lock is taken after the local one; a
// failed release is logged and left to expire via TTL.
func (m *Manager) WithLock(ctx context.Context, subject string, fn func(context.Context) error) error {
	entry := m.acquire(subject)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(subject)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, subject, lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("failed to release distributed lock (will expire via TTL)",
					"subject", subject,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
