package runtime

import (
	"errors"
	"fmt"

	"github.com/aretw0/palisade/pkg/domain"
	"github.com/aretw0/palisade/pkg/ports"
	"github.com/aretw0/palisade/pkg/registry"
)

// Assembler resolves the global and target-declared guards of a transition
// into one ordered chain. Global guards always precede target guards; order
// within each group is deterministic (ordinal key order for globals,
// declaration order for the target's own list).
type Assembler struct {
	loader ports.RouteLoader
	reg    *registry.Snapshot
}

// NewAssembler creates an assembler over a route loader and a frozen
// registry view.
func NewAssembler(loader ports.RouteLoader, reg *registry.Snapshot) *Assembler {
	return &Assembler{loader: loader, reg: reg}
}

// Assemble builds the chain for a target. It fails with
// domain.UnresolvedGuardError before any unit runs if a named reference has
// no registry entry, and wraps domain.ErrRouteNotFound for unknown targets.
func (a *Assembler) Assemble(target string) (*Chain, error) {
	route, err := a.loader.GetRoute(target)
	if err != nil {
		if errors.Is(err, domain.ErrRouteNotFound) {
			return nil, fmt.Errorf("target %q: %w", target, err)
		}
		return nil, fmt.Errorf("failed to load route %q: %w", target, err)
	}

	units := make([]unit, 0, len(a.reg.GlobalKeys())+len(route.Guards))

	// 1. Globals, sorted by registration key.
	for _, key := range a.reg.GlobalKeys() {
		fn, _ := a.reg.Resolve(key)
		units = append(units, unit{name: key, fn: fn})
	}

	// 2. Target guards in declaration order.
	for _, ref := range route.Guards {
		if ref.Inlined() {
			units = append(units, unit{name: ref.String(), fn: ref.Fn})
			continue
		}
		fn, ok := a.reg.Resolve(ref.Name)
		if !ok {
			return nil, &domain.UnresolvedGuardError{Guard: ref.Name, Route: route.ID}
		}
		units = append(units, unit{name: ref.Name, fn: fn})
	}

	return &Chain{target: route.ID, units: units}, nil
}
