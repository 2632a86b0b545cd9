package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/palisade/pkg/domain"
)

// Registry manages named guards. Guards are registered during application
// setup; the engine takes an immutable Snapshot at construction, so there is
// no ambient lookup and later registration never affects in-flight chains.
type Registry struct {
	mu     sync.RWMutex
	guards map[string]domain.Guard
	global map[string]bool
}

// New creates a new empty registry.
func New() *Registry {
	return &Registry{
		guards: make(map[string]domain.Guard),
		global: make(map[string]bool),
	}
}

// Register adds a named guard available to route declarations.
// Re-registering a key returns domain.ErrDuplicateGuard: keys are unique by
// construction, which is also what makes global ordering total (no tie-break
// policy is needed).
func (r *Registry) Register(key string, guard domain.Guard) error {
	if key == "" {
		return fmt.Errorf("guard key cannot be empty")
	}
	if guard == nil {
		return fmt.Errorf("guard %q: function cannot be nil", key)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.guards[key]; exists {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateGuard, key)
	}
	r.guards[key] = guard
	return nil
}

// RegisterGlobal adds a named guard that runs on every transition, before any
// target-declared guard. Globals execute in ordinal key order, not in
// registration order.
func (r *Registry) RegisterGlobal(key string, guard domain.Guard) error {
	if err := r.Register(key, guard); err != nil {
		return err
	}
	r.mu.Lock()
	r.global[key] = true
	r.mu.Unlock()
	return nil
}

// Resolve looks up a named guard.
func (r *Registry) Resolve(key string) (domain.Guard, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.guards[key]
	return g, ok
}

// Snapshot returns an immutable view for the engine. Mutating the registry
// afterwards does not affect the snapshot.
func (r *Registry) Snapshot() *Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	guards := make(map[string]domain.Guard, len(r.guards))
	for k, v := range r.guards {
		guards[k] = v
	}

	globals := make([]string, 0, len(r.global))
	for k := range r.global {
		globals = append(globals, k)
	}
	sort.Strings(globals) // ordinal, deterministic

	return &Snapshot{guards: guards, globals: globals}
}

// Snapshot is a frozen registry view. Safe for concurrent use without locks.
type Snapshot struct {
	guards  map[string]domain.Guard
	globals []string
}

// Resolve looks up a named guard in the snapshot.
func (s *Snapshot) Resolve(key string) (domain.Guard, bool) {
	g, ok := s.guards[key]
	return g, ok
}

// GlobalKeys returns the global guard keys in execution order.
func (s *Snapshot) GlobalKeys() []string {
	return append([]string(nil), s.globals...)
}
