package domain

import (
	"context"
	"time"
)

// EventType categorizes lifecycle events.
type EventType string

const (
	EventChainAssembled EventType = "chain_assembled"
	EventGuardEnter     EventType = "guard_enter"
	EventGuardLeave     EventType = "guard_leave"
	EventRedirect       EventType = "redirect"
	EventDecision       EventType = "decision"
)

// EventBase carries fields common to all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	RequestID string    `json:"request_id"`
}

// ChainEvent is emitted once per assembled chain.
type ChainEvent struct {
	EventBase
	Target string `json:"target"`
	Size   int    `json:"size"` // number of units, globals included
}

// GuardEvent is emitted around each guard invocation. Outcome is nil on
// enter and set on leave.
type GuardEvent struct {
	EventBase
	Target  string   `json:"target"`
	Guard   string   `json:"guard"`
	Index   int      `json:"index"`
	Outcome *Outcome `json:"outcome,omitempty"`
}

// RedirectEvent is emitted when a redirect outcome re-enters the assembler.
type RedirectEvent struct {
	EventBase
	From string `json:"from"`
	To   string `json:"to"`
	Hop  int    `json:"hop"` // 1-based redirect count
}

// DecisionEvent is emitted once per evaluation with the final decision.
type DecisionEvent struct {
	EventBase
	Status  EvaluationStatus `json:"status"`
	Outcome Outcome          `json:"outcome"`
	Hops    int              `json:"hops"`
}

// LifecycleHooks are optional observability callbacks. They must not block
// for long and cannot influence control flow; outcomes are decided solely by
// the guards themselves.
type LifecycleHooks struct {
	OnChainAssembled func(context.Context, *ChainEvent)
	OnGuardEnter     func(context.Context, *GuardEvent)
	OnGuardLeave     func(context.Context, *GuardEvent)
	OnRedirect       func(context.Context, *RedirectEvent)
	OnDecision       func(context.Context, *DecisionEvent)
}
