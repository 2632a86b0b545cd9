package domain

// Route is the per-target metadata consumed by the chain assembler.
type Route struct {
	// ID is the target identifier, e.g. "/admin/users".
	ID string `json:"id" yaml:"id" mapstructure:"id"`

	Title       string `json:"title,omitempty" yaml:"title,omitempty" mapstructure:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`

	// Guards lists the target-declared guard references in declaration order.
	// They always run after the global guards, never interleaved with them.
	Guards []GuardRef `json:"guards,omitempty" yaml:"guards,omitempty" mapstructure:"guards"`

	// Metadata carries free-form route annotations (e.g. "redirect" targets
	// used by the validator).
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty" mapstructure:"metadata"`
}

// Clone returns a deep copy so loaders can hand out routes without aliasing
// their internal tables.
func (r *Route) Clone() *Route {
	if r == nil {
		return nil
	}
	out := *r
	out.Guards = append([]GuardRef(nil), r.Guards...)
	out.Metadata = copyStringMap(r.Metadata)
	return &out
}
