package runtime_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/palisade/internal/runtime"
	"github.com/aretw0/palisade/pkg/adapters/memory"
	"github.com/aretw0/palisade/pkg/domain"
	"github.com/aretw0/palisade/pkg/registry"
)

func allow(ctx context.Context, req *domain.TransitionRequest) domain.Outcome {
	return domain.Continue()
}

func TestAssembler_GlobalsPrecedeTargetGuards(t *testing.T) {
	reg := registry.New()
	// Insertion order deliberately scrambled: globals must come out sorted
	// by key, target guards in declaration order.
	if err := reg.RegisterGlobal("z-audit", allow); err != nil {
		t.Fatal(err)
	}
	if err := reg.RegisterGlobal("a-logger", allow); err != nil {
		t.Fatal(err)
	}
	if err := reg.Register("auth", allow); err != nil {
		t.Fatal(err)
	}
	if err := reg.Register("role", allow); err != nil {
		t.Fatal(err)
	}

	loader, err := memory.NewLoader(domain.Route{
		ID: "/admin",
		Guards: []domain.GuardRef{
			domain.Named("role"), // declared before auth on purpose
			domain.Named("auth"),
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	asm := runtime.NewAssembler(loader, reg.Snapshot())
	chain, err := asm.Assemble("/admin")
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	got := chain.Names()
	want := []string{"a-logger", "z-audit", "role", "auth"}
	if len(got) != len(want) {
		t.Fatalf("expected %d units, got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("unit %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestAssembler_InlineGuards(t *testing.T) {
	reg := registry.New()
	loader, err := memory.NewLoader(domain.Route{
		ID: "/profile",
		Guards: []domain.GuardRef{
			domain.Inline("owner-check", allow),
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	asm := runtime.NewAssembler(loader, reg.Snapshot())
	chain, err := asm.Assemble("/profile")
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if names := chain.Names(); len(names) != 1 || names[0] != "owner-check" {
		t.Errorf("unexpected units: %v", names)
	}
}

func TestAssembler_UnresolvedGuard(t *testing.T) {
	reg := registry.New()
	loader, err := memory.NewLoader(domain.Route{
		ID:     "/admin",
		Guards: []domain.GuardRef{domain.Named("missing")},
	})
	if err != nil {
		t.Fatal(err)
	}

	asm := runtime.NewAssembler(loader, reg.Snapshot())
	_, err = asm.Assemble("/admin")
	if !errors.Is(err, domain.ErrUnresolvedGuard) {
		t.Fatalf("expected ErrUnresolvedGuard, got %v", err)
	}

	var unresolved *domain.UnresolvedGuardError
	if !errors.As(err, &unresolved) {
		t.Fatal("expected UnresolvedGuardError")
	}
	if unresolved.Guard != "missing" || unresolved.Route != "/admin" {
		t.Errorf("unexpected error details: %+v", unresolved)
	}
}

func TestAssembler_UnknownTarget(t *testing.T) {
	loader, err := memory.NewLoader()
	if err != nil {
		t.Fatal(err)
	}
	asm := runtime.NewAssembler(loader, registry.New().Snapshot())
	if _, err := asm.Assemble("/nowhere"); !errors.Is(err, domain.ErrRouteNotFound) {
		t.Errorf("expected ErrRouteNotFound, got %v", err)
	}
}
