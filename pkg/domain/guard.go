package domain

import "context"

// Guard is a single step of the chain: given a read-only TransitionRequest,
// it produces exactly one Outcome. Guards that wait on an external lookup
// must honor ctx and translate dependency failures into a Fail outcome
// rather than swallowing them. Side effects (logging, analytics) are fine as
// long as control flow is expressed only through the returned Outcome.
type Guard func(ctx context.Context, req *TransitionRequest) Outcome

// GuardRef references a guard from a route declaration. It is either Named
// (resolved against the registry when the chain is assembled) or inline
// (resolved at declaration site).
type GuardRef struct {
	// Name is the registry key for named references. Empty for inline guards.
	Name string `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`

	// Label identifies an inline guard in traces and hook events.
	Label string `json:"label,omitempty" yaml:"-" mapstructure:"-"`

	// Fn is the inline guard. Nil for named references.
	Fn Guard `json:"-" yaml:"-" mapstructure:"-"`
}

// Named references a registered guard by key.
func Named(name string) GuardRef {
	return GuardRef{Name: name}
}

// Inline declares an anonymous guard. The label shows up in traces; it does
// not need to be unique.
func Inline(label string, fn Guard) GuardRef {
	return GuardRef{Label: label, Fn: fn}
}

// Inlined reports whether the reference carries its own guard function.
func (g GuardRef) Inlined() bool {
	return g.Fn != nil
}

// String returns the name used in traces and error messages.
func (g GuardRef) String() string {
	if g.Name != "" {
		return g.Name
	}
	if g.Label != "" {
		return g.Label
	}
	return "<inline>"
}
