package domain

import (
	"github.com/google/uuid"
)

// TransitionRequest describes a single attempt to move the application from
// one view to another. It is created once per navigation attempt and must be
// treated as read-only by guards: the engine never mutates it after
// construction, and the maps are copied on the way in.
type TransitionRequest struct {
	// ID correlates log lines, hook events and metrics for one attempt.
	ID string `json:"id"`

	// Target is the identifier of the view being entered.
	Target string `json:"target"`

	// Origin is the identifier of the view being left. Empty on initial entry.
	Origin string `json:"origin,omitempty"`

	// Params carries path-level parameters (insertion order is irrelevant).
	Params map[string]string `json:"params,omitempty"`

	// Query carries query-level parameters.
	Query map[string]string `json:"query,omitempty"`
}

// NewTransitionRequest builds a request for a navigation attempt.
// The params and query maps are copied so later caller mutation cannot leak
// into an evaluation that is already in flight.
func NewTransitionRequest(target, origin string, params, query map[string]string) *TransitionRequest {
	return &TransitionRequest{
		ID:     uuid.NewString(),
		Target: target,
		Origin: origin,
		Params: copyStringMap(params),
		Query:  copyStringMap(query),
	}
}

// Redirected derives the request evaluated after a redirect outcome.
// The correlation ID and parameters are preserved; the origin becomes the
// target the redirect was produced on.
func (r *TransitionRequest) Redirected(target string) *TransitionRequest {
	return &TransitionRequest{
		ID:     r.ID,
		Target: target,
		Origin: r.Target,
		Params: copyStringMap(r.Params),
		Query:  copyStringMap(r.Query),
	}
}

// Param returns a path parameter, falling back to the query.
func (r *TransitionRequest) Param(key string) string {
	if v, ok := r.Params[key]; ok {
		return v
	}
	return r.Query[key]
}

func copyStringMap(src map[string]string) map[string]string {
	if src == nil {
		return nil
	}
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
