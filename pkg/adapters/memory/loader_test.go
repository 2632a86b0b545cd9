package memory_test

import (
	"errors"
	"testing"

	"github.com/aretw0/palisade/pkg/adapters/memory"
	"github.com/aretw0/palisade/pkg/domain"
)

func TestLoader_RoundTrip(t *testing.T) {
	loader, err := memory.NewLoader(
		domain.Route{ID: "/home"},
		domain.Route{ID: "/admin", Guards: []domain.GuardRef{domain.Named("auth")}},
	)
	if err != nil {
		t.Fatalf("NewLoader failed: %v", err)
	}

	route, err := loader.GetRoute("/admin")
	if err != nil {
		t.Fatalf("GetRoute failed: %v", err)
	}
	if len(route.Guards) != 1 || route.Guards[0].Name != "auth" {
		t.Errorf("unexpected guards: %+v", route.Guards)
	}

	// Mutating the returned route must not leak into the table.
	route.Guards[0].Name = "mutated"
	again, _ := loader.GetRoute("/admin")
	if again.Guards[0].Name != "auth" {
		t.Error("loader handed out an aliased route")
	}

	if _, err := loader.GetRoute("/nope"); !errors.Is(err, domain.ErrRouteNotFound) {
		t.Errorf("expected ErrRouteNotFound, got %v", err)
	}

	ids, err := loader.ListRoutes()
	if err != nil {
		t.Fatalf("ListRoutes failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != "/admin" || ids[1] != "/home" {
		t.Errorf("expected sorted IDs, got %v", ids)
	}
}

func TestLoader_RejectsDuplicates(t *testing.T) {
	if _, err := memory.NewLoader(domain.Route{ID: "/a"}, domain.Route{ID: "/a"}); err == nil {
		t.Error("expected error for duplicate route IDs")
	}
	if _, err := memory.NewLoader(domain.Route{}); err == nil {
		t.Error("expected error for missing route ID")
	}
}
