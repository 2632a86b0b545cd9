package ports

import (
	"context"

	"github.com/aretw0/palisade/pkg/domain"
)

// RouteLoader defines how the engine retrieves route metadata.
// This decouples the storage layer (Loam, YAML file, memory) from the core.
type RouteLoader interface {
	// GetRoute retrieves a route by target identifier.
	// It returns domain.ErrRouteNotFound (possibly wrapped) when the target
	// has no definition.
	GetRoute(id string) (*domain.Route, error)

	// ListRoutes returns all known target identifiers, deterministically ordered.
	ListRoutes() ([]string, error)
}

// Watchable is implemented by loaders that can notify about backend changes,
// typically for hot reload in dev mode.
type Watchable interface {
	// Watch returns a channel that receives the ID of a changed route.
	Watch(ctx context.Context) (<-chan string, error)
}
