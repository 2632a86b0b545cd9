package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/palisade/internal/logging"
	"github.com/aretw0/palisade/pkg/adapters/memory"
	"github.com/aretw0/palisade/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTable(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "routes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewLoader_FlagValidation(t *testing.T) {
	_, err := NewLoader(Options{})
	assert.Error(t, err)

	_, err = NewLoader(Options{Dir: "a", Table: "b"})
	assert.Error(t, err)
}

func TestBuildRegistry_ConventionalGuards(t *testing.T) {
	loader, err := memory.NewLoader(
		domain.Route{ID: "/login"},
		domain.Route{ID: "/admin", Guards: []domain.GuardRef{
			domain.Named("auth"),
			domain.Named("role:admin"),
			domain.Named(`expr:param("beta") == "on"`),
		}},
	)
	require.NoError(t, err)

	reg, err := BuildRegistry(loader, memory.NewStore(), logging.NewNop(), Options{Trace: true})
	require.NoError(t, err)

	snap := reg.Snapshot()
	for _, name := range []string{"auth", "role:admin", `expr:param("beta") == "on"`, "trace"} {
		_, ok := snap.Resolve(name)
		assert.True(t, ok, "guard %q not registered", name)
	}
	assert.Equal(t, []string{"trace"}, snap.GlobalKeys())
}

func TestBuildRegistry_RejectsBrokenExpr(t *testing.T) {
	loader, err := memory.NewLoader(
		domain.Route{ID: "/x", Guards: []domain.GuardRef{domain.Named("expr:target ==")}},
	)
	require.NoError(t, err)

	_, err = BuildRegistry(loader, memory.NewStore(), logging.NewNop(), Options{})
	assert.Error(t, err)
}

func TestNewEngine_FromTable(t *testing.T) {
	path := writeTable(t, `
routes:
  - id: /login
  - id: /account
    guards: [auth]
    metadata:
      login: /login
`)

	engine, store, err := NewEngine(Options{Table: path}, logging.NewNop())
	require.NoError(t, err)
	require.NotNil(t, store)

	// No subject: the auth guard bounces to /login.
	decision, err := engine.Evaluate(context.Background(), domain.NewTransitionRequest("/account", "", nil, nil))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRedirected, decision.Status)
	assert.Equal(t, "/login", decision.FinalTarget())
}

func TestNewEngine_ValidationFailure(t *testing.T) {
	path := writeTable(t, `
routes:
  - id: /x
    guards: [never-registered]
`)

	_, _, err := NewEngine(Options{Table: path}, logging.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}
