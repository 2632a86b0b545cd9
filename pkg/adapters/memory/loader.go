// Package memory provides map-backed implementations of the Palisade ports.
// They are the default for tests and embedded setups with no external storage.
package memory

import (
	"fmt"
	"sort"

	"github.com/aretw0/palisade/pkg/domain"
	"github.com/aretw0/palisade/pkg/ports"
)

// Loader implements ports.RouteLoader over an in-memory route table.
// The table is fixed at construction; there is nothing to watch.
type Loader struct {
	routes map[string]*domain.Route
}

// NewLoader builds a loader from route definitions.
// Routes without an ID or with a duplicate ID are rejected.
func NewLoader(routes ...domain.Route) (*Loader, error) {
	table := make(map[string]*domain.Route, len(routes))
	for _, r := range routes {
		if r.ID == "" {
			return nil, fmt.Errorf("route missing ID")
		}
		if _, exists := table[r.ID]; exists {
			return nil, fmt.Errorf("duplicate route ID: %s", r.ID)
		}
		table[r.ID] = r.Clone()
	}
	return &Loader{routes: table}, nil
}

// GetRoute retrieves a route by target identifier.
func (l *Loader) GetRoute(id string) (*domain.Route, error) {
	route, ok := l.routes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrRouteNotFound, id)
	}
	return route.Clone(), nil
}

// ListRoutes returns all target identifiers in sorted order.
func (l *Loader) ListRoutes() ([]string, error) {
	ids := make([]string, 0, len(l.routes))
	for id := range l.routes {
		ids = append(ids, id)
	}
	sort.Strings(ids) // deterministic order
	return ids, nil
}

var _ ports.RouteLoader = (*Loader)(nil)
