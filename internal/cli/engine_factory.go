package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/aretw0/palisade"
	"github.com/aretw0/palisade/internal/validator"
	"github.com/aretw0/palisade/pkg/adapters/file"
	loamadapter "github.com/aretw0/palisade/pkg/adapters/loam"
	"github.com/aretw0/palisade/pkg/adapters/memory"
	redisadapter "github.com/aretw0/palisade/pkg/adapters/redis"
	"github.com/aretw0/palisade/pkg/guards"
	"github.com/aretw0/palisade/pkg/ports"
	"github.com/aretw0/palisade/pkg/registry"
)

// NewLoader builds the route loader from flags: a Loam directory or a YAML
// table, never both.
func NewLoader(opts Options) (ports.RouteLoader, error) {
	switch {
	case opts.Dir != "" && opts.Table != "":
		return nil, fmt.Errorf("--dir and --table are mutually exclusive")
	case opts.Table != "":
		return file.Load(opts.Table)
	case opts.Dir != "":
		loader, err := loamadapter.Open(opts.Dir)
		if err != nil {
			return nil, err
		}
		return loader, nil
	default:
		return nil, fmt.Errorf("a route source is required (--dir or --table)")
	}
}

// NewSessionStore builds the session store: Redis when an address is given,
// in-memory otherwise.
func NewSessionStore(opts Options) ports.SessionStore {
	if opts.RedisURL != "" {
		return redisadapter.New(opts.RedisURL, "", 0)
	}
	return memory.NewStore()
}

// BuildRegistry registers the conventional guards and the ones the route
// table declares by naming convention:
//
//	auth          session required, redirect to the login route otherwise
//	role:<name>   session must grant <name>
//	expr:<code>   boolean expression over the transition request
//
// Prefixed guards are discovered by scanning the table, so only referenced
// ones are compiled.
func BuildRegistry(loader ports.RouteLoader, store ports.SessionStore, logger *slog.Logger, opts Options) (*registry.Registry, error) {
	reg := registry.New()

	login := opts.LoginRoute
	if login == "" {
		login = "/login"
	}
	if err := reg.Register("auth", guards.Authenticated(store, login)); err != nil {
		return nil, err
	}

	if opts.Trace {
		if err := reg.RegisterGlobal("trace", guards.Trace(logger)); err != nil {
			return nil, err
		}
	}

	ids, err := loader.ListRoutes()
	if err != nil {
		return nil, fmt.Errorf("failed to list routes: %w", err)
	}

	for _, id := range ids {
		route, err := loader.GetRoute(id)
		if err != nil {
			return nil, fmt.Errorf("failed to load route %s: %w", id, err)
		}

		for _, ref := range route.Guards {
			if ref.Inlined() || ref.Name == "" {
				continue
			}
			if _, taken := reg.Resolve(ref.Name); taken {
				continue
			}

			switch {
			case strings.HasPrefix(ref.Name, "role:"):
				role := strings.TrimPrefix(ref.Name, "role:")
				if role == "" {
					return nil, fmt.Errorf("route %q: empty role guard", id)
				}
				if err := reg.Register(ref.Name, guards.RequireRole(store, role)); err != nil {
					return nil, err
				}

			case strings.HasPrefix(ref.Name, "expr:"):
				code := strings.TrimPrefix(ref.Name, "expr:")
				guard, err := guards.Expr(ref.Name, code)
				if err != nil {
					return nil, fmt.Errorf("route %q: %w", id, err)
				}
				if err := reg.Register(ref.Name, guard); err != nil {
					return nil, err
				}
			}
		}
	}

	return reg, nil
}

// NewEngine wires loader, store and registry into a validated engine.
func NewEngine(opts Options, logger *slog.Logger) (*palisade.Engine, ports.SessionStore, error) {
	loader, err := NewLoader(opts)
	if err != nil {
		return nil, nil, err
	}

	store := NewSessionStore(opts)

	reg, err := BuildRegistry(loader, store, logger, opts)
	if err != nil {
		return nil, nil, err
	}

	if err := validator.ValidateRoutes(loader, reg.Snapshot()); err != nil {
		return nil, nil, fmt.Errorf("route table validation failed: %w", err)
	}

	engineOpts := []palisade.Option{palisade.WithLogger(logger)}
	if opts.Debug {
		engineOpts = append(engineOpts, palisade.WithLifecycleHooks(DebugHooks(logger)))
	}
	if opts.MaxHops > 0 {
		engineOpts = append(engineOpts, palisade.WithMaxHops(opts.MaxHops))
	}

	engine, err := palisade.New(loader, reg, engineOpts...)
	if err != nil {
		return nil, nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, store, nil
}
