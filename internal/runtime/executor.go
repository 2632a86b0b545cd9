package runtime

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/palisade/pkg/domain"
)

// Executor evaluates a chain strictly in sequence: one unit at a time, never
// concurrently, even when a unit suspends on an external lookup. Later units
// may depend on state an earlier unit touched (an auth guard populating the
// session a role guard reads), so the order is part of the contract.
type Executor struct {
	logger *slog.Logger
	hooks  domain.LifecycleHooks
}

// NewExecutor creates an executor with the given logger and hooks.
func NewExecutor(logger *slog.Logger, hooks domain.LifecycleHooks) *Executor {
	return &Executor{logger: logger, hooks: hooks}
}

// Result is the outcome of one chain evaluation.
type Result struct {
	Outcome  domain.Outcome
	Ran      int    // units invoked
	HaltedBy string // name of the unit that produced a halting outcome, if any
}

// Execute runs the chain against the request. The context is checked before
// every unit: once the transition is canceled or superseded, no further unit
// starts and no outcome produced after cancellation is applied; the context
// error is returned instead.
func (e *Executor) Execute(ctx context.Context, chain *Chain, req *domain.TransitionRequest) (Result, error) {
	e.emitAssembled(ctx, chain, req)

	for i, u := range chain.units {
		if err := ctx.Err(); err != nil {
			e.logger.Debug("chain abandoned", "target", chain.target, "index", i, "err", err)
			return Result{Ran: i}, err
		}

		e.emitGuard(ctx, domain.EventGuardEnter, chain, req, u.name, i, nil)
		outcome := e.invoke(ctx, u, req)

		// A cancellation that raced the guard wins: the outcome is discarded.
		if err := ctx.Err(); err != nil {
			e.logger.Debug("outcome discarded after cancellation", "target", chain.target, "guard", u.name)
			return Result{Ran: i + 1}, err
		}
		e.emitGuard(ctx, domain.EventGuardLeave, chain, req, u.name, i, &outcome)

		if outcome.Halts() {
			e.logger.Debug("chain short-circuited",
				"target", chain.target,
				"guard", u.name,
				"index", i,
				"kind", outcome.Kind,
			)
			return Result{Outcome: outcome, Ran: i + 1, HaltedBy: u.name}, nil
		}
	}

	return Result{Outcome: domain.Continue(), Ran: len(chain.units)}, nil
}

// invoke runs a single unit, converting a panic into a fatal Fail. A guard
// that blows up must not take the whole navigation subsystem down silently.
func (e *Executor) invoke(ctx context.Context, u unit, req *domain.TransitionRequest) (outcome domain.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("guard panicked", "guard", u.name, "target", req.Target, "panic", r)
			outcome = domain.Failf(domain.FailInternal, true, "guard %q panicked: %v", u.name, r)
		}
	}()
	return u.fn(ctx, req)
}

func (e *Executor) emitAssembled(ctx context.Context, chain *Chain, req *domain.TransitionRequest) {
	if e.hooks.OnChainAssembled == nil {
		return
	}
	e.hooks.OnChainAssembled(ctx, &domain.ChainEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventChainAssembled, RequestID: req.ID},
		Target:    chain.target,
		Size:      chain.Len(),
	})
}

func (e *Executor) emitGuard(ctx context.Context, typ domain.EventType, chain *Chain, req *domain.TransitionRequest, guard string, index int, outcome *domain.Outcome) {
	var hook func(context.Context, *domain.GuardEvent)
	if typ == domain.EventGuardEnter {
		hook = e.hooks.OnGuardEnter
	} else {
		hook = e.hooks.OnGuardLeave
	}
	if hook == nil {
		return
	}
	hook(ctx, &domain.GuardEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: typ, RequestID: req.ID},
		Target:    chain.target,
		Guard:     guard,
		Index:     index,
		Outcome:   outcome,
	})
}
