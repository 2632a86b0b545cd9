// Package validator checks a route table for declaration errors before the
// engine ever evaluates a transition: unknown guard references and redirect
// metadata pointing at missing routes.
package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/palisade/pkg/ports"
	"github.com/aretw0/palisade/pkg/registry"
)

// redirectMetadataKeys are route metadata entries whose values name another
// route. Guards conventionally read these instead of hardcoding targets.
var redirectMetadataKeys = []string{"redirect", "on_denied", "login"}

// ValidateRoutes walks the whole table and collects every problem instead of
// stopping at the first, so a route author sees all breakage at once.
func ValidateRoutes(loader ports.RouteLoader, snap *registry.Snapshot) error {
	ids, err := loader.ListRoutes()
	if err != nil {
		return fmt.Errorf("failed to list routes: %w", err)
	}

	known := make(map[string]bool, len(ids))
	for _, id := range ids {
		known[id] = true
	}

	var problems []string

	for _, id := range ids {
		route, err := loader.GetRoute(id)
		if err != nil {
			problems = append(problems, fmt.Sprintf("route %q: load failed: %v", id, err))
			continue
		}

		for _, ref := range route.Guards {
			if ref.Inlined() {
				continue
			}
			if _, ok := snap.Resolve(ref.Name); !ok {
				problems = append(problems, fmt.Sprintf("route %q: unknown guard %q", id, ref.Name))
			}
		}

		for _, key := range redirectMetadataKeys {
			target, ok := route.Metadata[key]
			if !ok || target == "" {
				continue
			}
			if !known[target] {
				problems = append(problems, fmt.Sprintf("route %q: metadata %s points at missing route %q", id, key, target))
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("found %d problems:\n- %s", len(problems), strings.Join(problems, "\n- "))
	}
	return nil
}
