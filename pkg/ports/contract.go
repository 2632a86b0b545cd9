package ports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aretw0/palisade/pkg/domain"
)

// RunSessionStoreContract verifies that a SessionStore implementation honors
// the interface semantics. Adapter test suites call it against their own
// setup (memory map, miniredis, ...).
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	t.Helper()
	ctx := context.Background()

	session := &domain.Session{
		Subject:   "user-1",
		Roles:     []string{"editor"},
		Values:    map[string]any{"theme": "dark"},
		ExpiresAt: time.Now().Add(time.Hour).UTC(),
	}

	t.Run("Load_NotFound", func(t *testing.T) {
		if _, err := store.Load(ctx, "missing"); err == nil {
			t.Error("expected error for missing session, got nil")
		} else if !errors.Is(err, domain.ErrSessionNotFound) {
			t.Errorf("expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("Save_Load_Roundtrip", func(t *testing.T) {
		if err := store.Save(ctx, session.Subject, session); err != nil {
			t.Fatalf("save failed: %v", err)
		}
		got, err := store.Load(ctx, session.Subject)
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if got.Subject != session.Subject {
			t.Errorf("subject mismatch: got %q, want %q", got.Subject, session.Subject)
		}
		if !got.HasRole("editor") {
			t.Error("roles not persisted")
		}
	})

	t.Run("Load_Isolation", func(t *testing.T) {
		got, err := store.Load(ctx, session.Subject)
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		got.Roles = append(got.Roles, "admin")

		again, err := store.Load(ctx, session.Subject)
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if again.HasRole("admin") {
			t.Error("mutating a loaded session leaked into the store")
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := store.Delete(ctx, session.Subject); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if _, err := store.Load(ctx, session.Subject); !errors.Is(err, domain.ErrSessionNotFound) {
			t.Errorf("expected ErrSessionNotFound after delete, got %v", err)
		}
	})
}
