package dsl

import (
	"fmt"

	"github.com/aretw0/palisade/pkg/adapters/memory"
	"github.com/aretw0/palisade/pkg/domain"
)

// Builder manages the route table construction.
type Builder struct {
	order  []string
	routes map[string]*RouteBuilder
}

// New creates a new route table builder.
func New() *Builder {
	return &Builder{
		routes: make(map[string]*RouteBuilder),
	}
}

// Route creates a route in the table. If the route already exists, the
// existing builder is returned so declarations can be split across calls.
func (b *Builder) Route(id string) *RouteBuilder {
	if rb, ok := b.routes[id]; ok {
		return rb
	}
	rb := newRouteBuilder(id)
	b.routes[id] = rb
	b.order = append(b.order, id)
	return rb
}

// Build compiles the table into an in-memory loader.
func (b *Builder) Build() (*memory.Loader, error) {
	routes := make([]domain.Route, 0, len(b.order))
	for _, id := range b.order {
		routes = append(routes, b.routes[id].route)
	}

	loader, err := memory.NewLoader(routes...)
	if err != nil {
		return nil, fmt.Errorf("failed to build route table: %w", err)
	}
	return loader, nil
}
