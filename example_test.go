package palisade_test

import (
	"context"
	"fmt"

	"github.com/aretw0/palisade"
	"github.com/aretw0/palisade/pkg/adapters/memory"
	"github.com/aretw0/palisade/pkg/domain"
	"github.com/aretw0/palisade/pkg/guards"
	"github.com/aretw0/palisade/pkg/registry"
)

// Example demonstrates the typical embedding flow: register guards, declare
// routes, evaluate a transition.
func Example() {
	sessions := memory.NewStore()
	_ = sessions.Save(context.Background(), "alice", &domain.Session{Subject: "alice", Roles: []string{"admin"}})

	reg := registry.New()
	_ = reg.Register("auth", guards.Authenticated(sessions, "/login"))
	_ = reg.Register("admin", guards.RequireRole(sessions, "admin"))

	loader, _ := memory.NewLoader(
		domain.Route{ID: "/login", Title: "Sign in"},
		domain.Route{ID: "/admin", Title: "Admin", Guards: []domain.GuardRef{
			domain.Named("auth"),
			domain.Named("admin"),
		}},
	)

	engine, _ := palisade.New(loader, reg)

	req := domain.NewTransitionRequest("/admin", "/", map[string]string{"subject": "alice"}, nil)
	decision, _ := engine.Evaluate(context.Background(), req)
	fmt.Println(decision.Status, decision.FinalTarget())

	// Unauthenticated visitors bounce to the login route instead.
	anon := domain.NewTransitionRequest("/admin", "/", nil, nil)
	decision, _ = engine.Evaluate(context.Background(), anon)
	fmt.Println(decision.Status, decision.FinalTarget())

	// Output:
	// succeeded /admin
	// redirected /login
}

// ExampleEngine_Evaluate_inlineGuard shows an anonymous guard declared
// directly on the route, useful for one-off conditions.
func ExampleEngine_Evaluate_inlineGuard() {
	weekend := domain.Inline("weekend", func(ctx context.Context, req *domain.TransitionRequest) domain.Outcome {
		if req.Param("day") == "sunday" {
			return domain.Redirect("/closed")
		}
		return domain.Continue()
	})

	loader, _ := memory.NewLoader(
		domain.Route{ID: "/shop", Guards: []domain.GuardRef{weekend}},
		domain.Route{ID: "/closed"},
	)
	engine, _ := palisade.New(loader, registry.New())

	req := domain.NewTransitionRequest("/shop", "", map[string]string{"day": "sunday"}, nil)
	decision, _ := engine.Evaluate(context.Background(), req)
	fmt.Println(decision.FinalTarget())

	// Output:
	// /closed
}
