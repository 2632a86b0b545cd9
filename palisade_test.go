package palisade_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/aretw0/palisade"
	"github.com/aretw0/palisade/pkg/adapters/memory"
	"github.com/aretw0/palisade/pkg/domain"
	"github.com/aretw0/palisade/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, reg *registry.Registry, routes ...domain.Route) *palisade.Engine {
	t.Helper()
	loader, err := memory.NewLoader(routes...)
	require.NoError(t, err)
	engine, err := palisade.New(loader, reg)
	require.NoError(t, err)
	return engine
}

func TestNew_RequiresLoader(t *testing.T) {
	_, err := palisade.New(nil, registry.New())
	assert.Error(t, err)
}

func TestNew_NilRegistryIsEmpty(t *testing.T) {
	loader, err := memory.NewLoader(domain.Route{ID: "/home"})
	require.NoError(t, err)

	engine, err := palisade.New(loader, nil)
	require.NoError(t, err)

	decision, err := engine.Evaluate(context.Background(), domain.NewTransitionRequest("/home", "", nil, nil))
	require.NoError(t, err)
	assert.True(t, decision.Allowed())
}

func TestEvaluate_AllowsGuardlessRoute(t *testing.T) {
	engine := newTestEngine(t, registry.New(), domain.Route{ID: "/home"})

	decision, err := engine.Evaluate(context.Background(), domain.NewTransitionRequest("/home", "", nil, nil))
	require.NoError(t, err)

	assert.Equal(t, domain.StatusSucceeded, decision.Status)
	assert.Equal(t, "/home", decision.FinalTarget())
}

func TestEvaluate_RejectsEmptyTarget(t *testing.T) {
	engine := newTestEngine(t, registry.New(), domain.Route{ID: "/home"})

	_, err := engine.Evaluate(context.Background(), &domain.TransitionRequest{})
	assert.Error(t, err)

	_, err = engine.Evaluate(context.Background(), nil)
	assert.Error(t, err)
}

func TestEvaluate_RedirectResolvesThroughChain(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.Register("to-login", func(ctx context.Context, req *domain.TransitionRequest) domain.Outcome {
		return domain.Redirect("/login")
	}))

	engine := newTestEngine(t, reg,
		domain.Route{ID: "/login"},
		domain.Route{ID: "/account", Guards: []domain.GuardRef{domain.Named("to-login")}},
	)

	decision, err := engine.Evaluate(context.Background(), domain.NewTransitionRequest("/account", "/", nil, nil))
	require.NoError(t, err)

	assert.Equal(t, domain.StatusRedirected, decision.Status)
	assert.Equal(t, "/login", decision.FinalTarget())
	assert.Len(t, decision.Hops, 2)
}

func TestEvaluate_AbortCarriesStatusCode(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.Register("deny", func(ctx context.Context, req *domain.TransitionRequest) domain.Outcome {
		return domain.Abort(http.StatusForbidden, "no access")
	}))

	engine := newTestEngine(t, reg,
		domain.Route{ID: "/admin", Guards: []domain.GuardRef{domain.Named("deny")}},
	)

	decision, err := engine.Evaluate(context.Background(), domain.NewTransitionRequest("/admin", "", nil, nil))
	require.NoError(t, err)

	assert.Equal(t, domain.StatusAborted, decision.Status)
	assert.Equal(t, http.StatusForbidden, decision.Outcome.StatusCode)
}

func TestEvaluate_RegistrySnapshotIsFrozen(t *testing.T) {
	reg := registry.New()
	engine := newTestEngine(t, reg,
		domain.Route{ID: "/late", Guards: []domain.GuardRef{domain.Named("late-guard")}},
	)

	// Registered after New: the engine must not see it.
	require.NoError(t, reg.Register("late-guard", func(ctx context.Context, req *domain.TransitionRequest) domain.Outcome {
		return domain.Continue()
	}))

	_, err := engine.Evaluate(context.Background(), domain.NewTransitionRequest("/late", "", nil, nil))
	var unresolved *domain.UnresolvedGuardError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, "late-guard", unresolved.Guard)
}

func TestEvaluate_MaxHopsOption(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.Register("bounce", func(ctx context.Context, req *domain.TransitionRequest) domain.Outcome {
		if req.Target == "/a" {
			return domain.Redirect("/b")
		}
		return domain.Redirect("/a")
	}))

	loader, err := memory.NewLoader(
		domain.Route{ID: "/a", Guards: []domain.GuardRef{domain.Named("bounce")}},
		domain.Route{ID: "/b", Guards: []domain.GuardRef{domain.Named("bounce")}},
	)
	require.NoError(t, err)

	engine, err := palisade.New(loader, reg, palisade.WithMaxHops(3))
	require.NoError(t, err)

	_, err = engine.Evaluate(context.Background(), domain.NewTransitionRequest("/a", "", nil, nil))
	var loop *domain.RedirectLoopError
	require.ErrorAs(t, err, &loop)
	assert.Equal(t, 3, loop.MaxHops)
}

func TestInspect_ReturnsAllRoutes(t *testing.T) {
	engine := newTestEngine(t, registry.New(),
		domain.Route{ID: "/b", Title: "B"},
		domain.Route{ID: "/a", Title: "A"},
	)

	routes, err := engine.Inspect()
	require.NoError(t, err)
	require.Len(t, routes, 2)
	assert.Equal(t, "/a", routes[0].ID)
	assert.Equal(t, "/b", routes[1].ID)
}

func TestWatch_UnsupportedLoader(t *testing.T) {
	engine := newTestEngine(t, registry.New(), domain.Route{ID: "/home"})

	_, err := engine.Watch(context.Background())
	assert.Error(t, err)
}

func TestEvaluate_LifecycleHooksFire(t *testing.T) {
	var assembled, decisions int
	hooks := domain.LifecycleHooks{
		OnChainAssembled: func(ctx context.Context, ev *domain.ChainEvent) { assembled++ },
		OnDecision:       func(ctx context.Context, ev *domain.DecisionEvent) { decisions++ },
	}

	loader, err := memory.NewLoader(domain.Route{ID: "/home"})
	require.NoError(t, err)
	engine, err := palisade.New(loader, registry.New(), palisade.WithLifecycleHooks(hooks))
	require.NoError(t, err)

	_, err = engine.Evaluate(context.Background(), domain.NewTransitionRequest("/home", "", nil, nil))
	require.NoError(t, err)

	assert.Equal(t, 1, assembled)
	assert.Equal(t, 1, decisions)
}
