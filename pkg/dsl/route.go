package dsl

import "github.com/aretw0/palisade/pkg/domain"

// RouteBuilder provides a fluent API for configuring one route.
type RouteBuilder struct {
	route domain.Route
}

func newRouteBuilder(id string) *RouteBuilder {
	return &RouteBuilder{route: domain.Route{ID: id}}
}

// Title sets the display title.
func (r *RouteBuilder) Title(title string) *RouteBuilder {
	r.route.Title = title
	return r
}

// Describe sets the markdown description.
func (r *RouteBuilder) Describe(description string) *RouteBuilder {
	r.route.Description = description
	return r
}

// Guard appends a named guard reference. Declaration order is execution
// order.
func (r *RouteBuilder) Guard(name string) *RouteBuilder {
	r.route.Guards = append(r.route.Guards, domain.Named(name))
	return r
}

// GuardFunc appends an inline guard. The label identifies it in traces.
func (r *RouteBuilder) GuardFunc(label string, fn domain.Guard) *RouteBuilder {
	r.route.Guards = append(r.route.Guards, domain.Inline(label, fn))
	return r
}

// Meta sets a metadata entry.
func (r *RouteBuilder) Meta(key, value string) *RouteBuilder {
	if r.route.Metadata == nil {
		r.route.Metadata = make(map[string]string)
	}
	r.route.Metadata[key] = value
	return r
}

// Build returns the underlying domain.Route. Primarily used by the Builder,
// exposed for advanced usage.
func (r *RouteBuilder) Build() domain.Route {
	return r.route
}
