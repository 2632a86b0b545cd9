/*
Package palisade gates navigation between application views with an ordered,
short-circuiting chain of guard functions.

A transition names a target view. Palisade assembles the chain for that
target (global guards first, ordered by registration key, then the guards
the route declares, in declaration order) and evaluates it strictly in
sequence. Each guard allows, redirects, aborts or fails the transition; the
first non-continuing outcome stops the chain. Redirects re-enter the chain
for the new target under a bounded hop counter.

The engine owns none of its collaborators. Routes come from a
ports.RouteLoader (Loam repository, YAML table or in-memory map), sessions
live in a host-owned ports.SessionStore, and transports are thin adapters:
HTTP (chi), MCP, or the palisade CLI. This keeps the core embeddable in any
host the same way a hexagonal engine should be.

Minimal usage:

	reg := registry.New()
	reg.RegisterGlobal("trace", guards.Trace(logger))
	reg.Register("auth", guards.Authenticated(sessions, "/login"))

	loader, _ := memory.NewLoader(
		domain.Route{ID: "/login"},
		domain.Route{ID: "/account", Guards: []domain.GuardRef{domain.Named("auth")}},
	)

	engine, _ := palisade.New(loader, reg)
	decision, err := engine.Evaluate(ctx, domain.NewTransitionRequest("/account", "/", nil, nil))
*/
package palisade
