// Package cli holds the glue shared by the palisade commands: building an
// engine from flags, conventional guard registration and signal handling.
package cli

// Options carries the flag values common to the palisade commands.
type Options struct {
	// Dir is a Loam route directory (one document per route).
	Dir string

	// Table is a YAML route table file. Mutually exclusive with Dir.
	Table string

	// LoginRoute is where the conventional "auth" guard redirects
	// unauthenticated transitions.
	LoginRoute string

	// RedisURL enables Redis-backed sessions ("host:port"). Empty means an
	// in-memory store.
	RedisURL string

	// MaxHops overrides the redirect bound when positive.
	MaxHops int

	// Trace registers the global trace guard.
	Trace bool

	Debug bool
}
