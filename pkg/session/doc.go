// Package session coordinates concurrent access to a SessionStore.
//
// Stores follow last-write-wins semantics on their own. The Manager layers
// per-subject mutual exclusion on top: in-process via reference-counted
// mutexes, across replicas via an optional ports.DistributedLocker (see
// pkg/adapters/redis). Guards only read sessions and never need the Manager;
// it exists for hosts that mutate sessions while navigation is in flight
// (login and logout flows, role changes).
package session
