package domain

import (
	"fmt"
	"net/http"
)

// OutcomeKind tags the variant of an Outcome.
type OutcomeKind string

const (
	OutcomeContinue OutcomeKind = "continue" // proceed to the next guard
	OutcomeRedirect OutcomeKind = "redirect" // re-enter the chain for another target
	OutcomeAbort    OutcomeKind = "abort"    // stop navigation, surface code/message
	OutcomeFail     OutcomeKind = "fail"     // guard-raised failure
)

// FailKind classifies a Fail outcome.
type FailKind string

const (
	FailUnauthorized FailKind = "unauthorized"
	FailForbidden    FailKind = "forbidden"
	FailNotFound     FailKind = "not_found"
	FailTimeout      FailKind = "timeout"
	FailUnavailable  FailKind = "unavailable"
	FailInternal     FailKind = "internal"
)

// Outcome is the tagged result of a single guard invocation. Exactly one
// variant is produced per invocation; fields not belonging to the variant
// stay at their zero value.
type Outcome struct {
	Kind OutcomeKind `json:"kind"`

	// Target is the redirect destination (Kind == OutcomeRedirect).
	Target string `json:"target,omitempty"`

	// StatusCode applies to Redirect and Abort variants.
	StatusCode int `json:"status_code,omitempty"`

	// Message is the human-readable reason for Abort and Fail variants.
	Message string `json:"message,omitempty"`

	// FailKind and Fatal apply to the Fail variant only.
	FailKind FailKind `json:"fail_kind,omitempty"`
	Fatal    bool     `json:"fatal,omitempty"`
}

// Continue allows the transition to proceed to the next guard.
func Continue() Outcome {
	return Outcome{Kind: OutcomeContinue}
}

// Redirect sends the transition to another target with HTTP-style 302 semantics.
func Redirect(target string) Outcome {
	return RedirectWithStatus(target, http.StatusFound)
}

// RedirectWithStatus sends the transition to another target with an explicit
// status code (e.g. 301 for a permanent move).
func RedirectWithStatus(target string, code int) Outcome {
	return Outcome{Kind: OutcomeRedirect, Target: target, StatusCode: code}
}

// Abort stops the navigation and surfaces code/message to the caller.
func Abort(code int, message string) Outcome {
	return Outcome{Kind: OutcomeAbort, StatusCode: code, Message: message}
}

// Fail reports a guard failure. Non-fatal failures are routed like an Abort;
// fatal failures propagate to the host as an unrecoverable error.
func Fail(kind FailKind, fatal bool, message string) Outcome {
	return Outcome{Kind: OutcomeFail, FailKind: kind, Fatal: fatal, Message: message}
}

// Failf is Fail with printf formatting.
func Failf(kind FailKind, fatal bool, format string, args ...any) Outcome {
	return Fail(kind, fatal, fmt.Sprintf(format, args...))
}

// Halts reports whether this outcome stops chain evaluation.
func (o Outcome) Halts() bool {
	return o.Kind != OutcomeContinue
}

// AsAbort converts a non-fatal Fail into the Abort surfaced to the caller.
// For any other variant it returns the outcome unchanged.
func (o Outcome) AsAbort() Outcome {
	if o.Kind != OutcomeFail {
		return o
	}
	return Abort(StatusForFailKind(o.FailKind), o.Message)
}

// StatusForFailKind maps a failure classification to the HTTP-style status
// code used when the failure is surfaced as an Abort.
func StatusForFailKind(kind FailKind) int {
	switch kind {
	case FailUnauthorized:
		return http.StatusUnauthorized
	case FailForbidden:
		return http.StatusForbidden
	case FailNotFound:
		return http.StatusNotFound
	case FailTimeout:
		return http.StatusGatewayTimeout
	case FailUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
