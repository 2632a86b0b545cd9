package session

import (
	"context"
	"fmt"
	"testing"

	"github.com/aretw0/palisade/pkg/domain"
)

type nopStore struct{}

func (nopStore) Save(ctx context.Context, subject string, session *domain.Session) error {
	return nil
}
func (nopStore) Load(ctx context.Context, subject string) (*domain.Session, error) {
	return nil, domain.ErrSessionNotFound
}
func (nopStore) Delete(ctx context.Context, subject string) error { return nil }

func TestManager_LockEntriesAreGarbageCollected(t *testing.T) {
	mgr := NewManager(nopStore{})
	ctx := context.Background()
	count := 10000

	for i := 0; i < count; i++ {
		subject := fmt.Sprintf("subject-%d", i)
		_ = mgr.Save(ctx, subject, &domain.Session{Subject: subject})
		_ = mgr.Delete(ctx, subject)
	}

	if remaining := len(mgr.locks); remaining != 0 {
		t.Errorf("memory leak: %d lock entries remaining after release", remaining)
	}
}
