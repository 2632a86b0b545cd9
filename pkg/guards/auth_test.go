package guards_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/palisade/pkg/adapters/memory"
	"github.com/aretw0/palisade/pkg/domain"
	"github.com/aretw0/palisade/pkg/guards"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func request(subject string) *domain.TransitionRequest {
	params := map[string]string{}
	if subject != "" {
		params[guards.SubjectParam] = subject
	}
	return domain.NewTransitionRequest("/account", "/home", params, nil)
}

func TestAuthenticated(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Save(ctx, "alice", &domain.Session{Subject: "alice"}))
	require.NoError(t, store.Save(ctx, "bob", &domain.Session{
		Subject:   "bob",
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	guard := guards.Authenticated(store, "/login")

	t.Run("NoSubject", func(t *testing.T) {
		out := guard(ctx, request(""))
		assert.Equal(t, domain.OutcomeRedirect, out.Kind)
		assert.Equal(t, "/login", out.Target)
	})

	t.Run("UnknownSubject", func(t *testing.T) {
		out := guard(ctx, request("mallory"))
		assert.Equal(t, domain.OutcomeRedirect, out.Kind)
	})

	t.Run("ExpiredSession", func(t *testing.T) {
		out := guard(ctx, request("bob"))
		assert.Equal(t, domain.OutcomeRedirect, out.Kind)
	})

	t.Run("LiveSession", func(t *testing.T) {
		out := guard(ctx, request("alice"))
		assert.Equal(t, domain.OutcomeContinue, out.Kind)
	})
}

func TestRequireRole(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Save(ctx, "alice", &domain.Session{
		Subject: "alice",
		Roles:   []string{"admin"},
	}))
	require.NoError(t, store.Save(ctx, "carol", &domain.Session{
		Subject: "carol",
		Roles:   []string{"user"},
	}))

	guard := guards.RequireRole(store, "admin")

	t.Run("AdminPasses", func(t *testing.T) {
		out := guard(ctx, request("alice"))
		assert.Equal(t, domain.OutcomeContinue, out.Kind)
	})

	t.Run("UserIsForbidden", func(t *testing.T) {
		out := guard(ctx, request("carol"))
		assert.Equal(t, domain.OutcomeFail, out.Kind)
		assert.Equal(t, domain.FailForbidden, out.FailKind)
		assert.False(t, out.Fatal)
	})

	t.Run("NoSessionIsUnauthorized", func(t *testing.T) {
		out := guard(ctx, request("mallory"))
		assert.Equal(t, domain.OutcomeFail, out.Kind)
		assert.Equal(t, domain.FailUnauthorized, out.FailKind)
	})
}

// A failing store dependency must become a Fail outcome, never a silent pass.
type brokenStore struct{}

func (brokenStore) Load(ctx context.Context, subject string) (*domain.Session, error) {
	return nil, context.DeadlineExceeded
}
func (brokenStore) Save(ctx context.Context, subject string, s *domain.Session) error { return nil }
func (brokenStore) Delete(ctx context.Context, subject string) error                  { return nil }

func TestGuards_StoreOutageBecomesFail(t *testing.T) {
	ctx := context.Background()

	out := guards.Authenticated(brokenStore{}, "/login")(ctx, request("alice"))
	assert.Equal(t, domain.OutcomeFail, out.Kind)
	assert.Equal(t, domain.FailUnavailable, out.FailKind)
	assert.False(t, out.Fatal)

	out = guards.RequireRole(brokenStore{}, "admin")(ctx, request("alice"))
	assert.Equal(t, domain.OutcomeFail, out.Kind)
	assert.Equal(t, domain.FailUnavailable, out.FailKind)
}
