// Package guards ships the guard units most route tables need: session
// checks, role checks, expression predicates and a tracing guard. All of
// them are plain domain.Guard constructors; hosts register them under the
// names their routes reference.
package guards
