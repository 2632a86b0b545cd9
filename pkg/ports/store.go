package ports

import (
	"context"

	"github.com/aretw0/palisade/pkg/domain"
)

// SessionStore persists authentication snapshots consumed by guards.
// The store is owned by the host application; Palisade only reads and, via
// pkg/session, coordinates writes. Implementations must be safe for
// concurrent reads. Concurrent writers follow last-write-wins; stronger
// coordination is layered on top with a DistributedLocker.
type SessionStore interface {
	// Load retrieves the session for a subject.
	// Returns domain.ErrSessionNotFound if none exists.
	Load(ctx context.Context, subject string) (*domain.Session, error)

	// Save persists the session for a subject.
	Save(ctx context.Context, subject string, session *domain.Session) error

	// Delete removes the session for a subject.
	Delete(ctx context.Context, subject string) error
}
