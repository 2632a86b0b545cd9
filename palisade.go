package palisade

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/palisade/internal/logging"
	"github.com/aretw0/palisade/internal/runtime"
	"github.com/aretw0/palisade/pkg/domain"
	"github.com/aretw0/palisade/pkg/ports"
	"github.com/aretw0/palisade/pkg/registry"
)

// Engine is the high-level entry point for the Palisade library.
// It wraps the internal runtime and provides a simplified API for consumers.
type Engine struct {
	router  *runtime.Router
	loader  ports.RouteLoader
	logger  *slog.Logger
	hooks   domain.LifecycleHooks
	maxHops int
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithMaxHops overrides the redirect hop bound (default: 10).
func WithMaxHops(n int) Option {
	return func(e *Engine) {
		e.maxHops = n
	}
}

// New initializes an Engine over a route loader and a guard registry.
// The registry is snapshotted here: guards registered afterwards are not
// visible to this engine.
func New(loader ports.RouteLoader, reg *registry.Registry, opts ...Option) (*Engine, error) {
	if loader == nil {
		return nil, fmt.Errorf("route loader is required")
	}
	if reg == nil {
		reg = registry.New()
	}

	eng := &Engine{loader: loader}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}

	snap := reg.Snapshot()
	asm := runtime.NewAssembler(loader, snap)
	exec := runtime.NewExecutor(eng.logger, eng.hooks)
	eng.router = runtime.NewRouter(asm, exec, eng.maxHops, eng.logger, eng.hooks)

	return eng, nil
}

// Evaluate runs the guard chain for a transition request and returns the
// routed decision. See ports.Evaluator for the error contract.
func (e *Engine) Evaluate(ctx context.Context, req *domain.TransitionRequest) (*domain.Decision, error) {
	if req == nil || req.Target == "" {
		return nil, fmt.Errorf("transition request requires a target")
	}
	return e.router.Route(ctx, req)
}

// Inspect returns the full route table for visualization or introspection tools.
func (e *Engine) Inspect() ([]domain.Route, error) {
	ids, err := e.loader.ListRoutes()
	if err != nil {
		return nil, fmt.Errorf("failed to list routes: %w", err)
	}

	routes := make([]domain.Route, 0, len(ids))
	for _, id := range ids {
		route, err := e.loader.GetRoute(id)
		if err != nil {
			return nil, fmt.Errorf("failed to load route %s: %w", id, err)
		}
		routes = append(routes, *route)
	}
	return routes, nil
}

// Watch returns a channel that signals when the underlying route table
// changes. Returns an error if the loader does not support watching.
func (e *Engine) Watch(ctx context.Context) (<-chan string, error) {
	if w, ok := e.loader.(ports.Watchable); ok {
		return w.Watch(ctx)
	}
	return nil, fmt.Errorf("current loader does not support watching")
}

// Loader returns the underlying RouteLoader used by the engine.
func (e *Engine) Loader() ports.RouteLoader {
	return e.loader
}

var _ ports.Evaluator = (*Engine)(nil)
