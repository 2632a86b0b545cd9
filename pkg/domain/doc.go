// Package domain contains the core types of the Palisade guard chain:
// transition requests, outcomes, routes, sessions and the events emitted
// during an evaluation.
//
// The types here are deliberately free of I/O. Everything that touches the
// outside world (route storage, session persistence, transports) lives behind
// the interfaces in pkg/ports and the adapters under pkg/adapters.
package domain
