// Package runtime implements the evaluation core: chain assembly, strictly
// sequential execution and outcome routing. The public surface is the root
// palisade package; nothing here is imported by hosts directly.
package runtime

import "github.com/aretw0/palisade/pkg/domain"

// unit is one resolved step of a chain.
type unit struct {
	name string
	fn   domain.Guard
}

// Chain is the ordered guard sequence for one transition attempt. It is
// built fresh per attempt and discarded afterwards; no cross-request state
// lives here.
type Chain struct {
	target string
	units  []unit
}

// Len returns the number of units, globals included.
func (c *Chain) Len() int {
	return len(c.units)
}

// Names returns the unit names in execution order. Used by traces and tests.
func (c *Chain) Names() []string {
	names := make([]string, len(c.units))
	for i, u := range c.units {
		names[i] = u.name
	}
	return names
}
