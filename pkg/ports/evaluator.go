package ports

import (
	"context"

	"github.com/aretw0/palisade/pkg/domain"
)

// Evaluator is the invocation contract implemented by the root engine and
// consumed by the transport adapters (HTTP, MCP, CLI).
type Evaluator interface {
	// Evaluate runs the guard chain for a transition and returns the routed
	// decision. Assembly errors, redirect loops and fatal guard failures are
	// returned as errors; everything else is expressed in the Decision.
	Evaluate(ctx context.Context, req *domain.TransitionRequest) (*domain.Decision, error)

	// Inspect returns the full route table for introspection tools.
	Inspect() ([]domain.Route, error)
}
