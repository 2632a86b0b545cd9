// Package ports defines the interfaces between the Palisade core and its
// collaborators: route storage, session persistence and distributed locking.
// Adapters under pkg/adapters implement them.
package ports
