package guards

import (
	"context"
	"errors"
	"time"

	"github.com/aretw0/palisade/pkg/domain"
	"github.com/aretw0/palisade/pkg/ports"
)

// SubjectParam is the request parameter carrying the session subject.
// Hosts that identify the principal differently can wrap the guards with
// their own extraction.
const SubjectParam = "subject"

// Subject extracts the session subject from a transition request.
func Subject(req *domain.TransitionRequest) string {
	return req.Param(SubjectParam)
}

// Authenticated requires a live session. Without one (no subject, no stored
// session, or an expired one) the transition is redirected to loginTarget.
// A store outage is translated into a non-fatal Fail so the chain never
// swallows the dependency error.
func Authenticated(store ports.SessionStore, loginTarget string) domain.Guard {
	return func(ctx context.Context, req *domain.TransitionRequest) domain.Outcome {
		subject := Subject(req)
		if subject == "" {
			return domain.Redirect(loginTarget)
		}

		session, err := store.Load(ctx, subject)
		if err != nil {
			if errors.Is(err, domain.ErrSessionNotFound) {
				return domain.Redirect(loginTarget)
			}
			return domain.Failf(domain.FailUnavailable, false, "session lookup failed: %v", err)
		}
		if session.Expired(time.Now()) {
			return domain.Redirect(loginTarget)
		}
		return domain.Continue()
	}
}

// RequireRole requires an authenticated session granting the given role.
// A missing session is Unauthorized, a present session without the role is
// Forbidden; both are non-fatal and surface as a recoverable rejection.
func RequireRole(store ports.SessionStore, role string) domain.Guard {
	return func(ctx context.Context, req *domain.TransitionRequest) domain.Outcome {
		subject := Subject(req)
		if subject == "" {
			return domain.Fail(domain.FailUnauthorized, false, "no session subject")
		}

		session, err := store.Load(ctx, subject)
		if err != nil {
			if errors.Is(err, domain.ErrSessionNotFound) {
				return domain.Fail(domain.FailUnauthorized, false, "no session")
			}
			return domain.Failf(domain.FailUnavailable, false, "session lookup failed: %v", err)
		}
		if session.Expired(time.Now()) {
			return domain.Fail(domain.FailUnauthorized, false, "session expired")
		}
		if !session.HasRole(role) {
			return domain.Failf(domain.FailForbidden, false, "role %q required", role)
		}
		return domain.Continue()
	}
}
