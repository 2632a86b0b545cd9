package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnresolvedGuard is returned when a named guard reference has no registry entry.
var ErrUnresolvedGuard = errors.New("unresolved guard reference")

// ErrRedirectLoop is returned when a transition exceeds the redirect hop bound.
var ErrRedirectLoop = errors.New("redirect loop")

// ErrDuplicateGuard is returned when a registry key is registered twice.
var ErrDuplicateGuard = errors.New("guard already registered")

// ErrRouteNotFound is returned when a target has no route definition.
var ErrRouteNotFound = errors.New("route not found")

// ErrSessionNotFound is returned when a subject has no stored session.
var ErrSessionNotFound = errors.New("session not found")

// UnresolvedGuardError reports which reference failed to resolve during
// chain assembly. Assembly errors always surface before any unit runs.
type UnresolvedGuardError struct {
	Guard string
	Route string
}

func (e *UnresolvedGuardError) Error() string {
	return fmt.Sprintf("route %q references unknown guard %q", e.Route, e.Guard)
}

func (e *UnresolvedGuardError) Unwrap() error { return ErrUnresolvedGuard }

// RedirectLoopError reports the redirect path that exceeded the hop bound.
type RedirectLoopError struct {
	Path    []string
	MaxHops int
}

func (e *RedirectLoopError) Error() string {
	return fmt.Sprintf("redirect loop after %d hops: %s", e.MaxHops, strings.Join(e.Path, " -> "))
}

func (e *RedirectLoopError) Unwrap() error { return ErrRedirectLoop }

// GuardFailureError propagates a fatal Fail outcome to the host's top-level
// error boundary. Non-fatal failures never become errors; they are routed as
// an Abort decision instead.
type GuardFailureError struct {
	Guard   string
	Route   string
	Outcome Outcome
}

func (e *GuardFailureError) Error() string {
	return fmt.Sprintf("guard %q failed on route %q: %s (%s)", e.Guard, e.Route, e.Outcome.Message, e.Outcome.FailKind)
}
