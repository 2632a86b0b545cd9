package domain

import "time"

// Session is the externally owned authentication snapshot consumed by guards.
// Palisade never creates sessions on its own; a SessionStore is a collaborator
// of the host application. Writes follow last-write-wins semantics (see
// pkg/session for coordination across replicas).
type Session struct {
	// Subject identifies the principal (user ID, token subject, ...).
	Subject string `json:"subject"`

	// Roles granted to the subject.
	Roles []string `json:"roles,omitempty"`

	// Values carries host-defined session data.
	Values map[string]any `json:"values,omitempty"`

	// ExpiresAt is the absolute expiry. Zero means no expiry.
	ExpiresAt time.Time `json:"expires_at,omitzero"`
}

// HasRole reports whether the session grants the given role.
func (s *Session) HasRole(role string) bool {
	for _, r := range s.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Expired reports whether the session has expired at the given instant.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// Clone returns a copy safe to hand across goroutines.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	out.Roles = append([]string(nil), s.Roles...)
	if s.Values != nil {
		out.Values = make(map[string]any, len(s.Values))
		for k, v := range s.Values {
			out.Values[k] = v
		}
	}
	return &out
}
