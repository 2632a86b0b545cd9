package runtime

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/palisade/pkg/domain"
)

// DefaultMaxHops bounds redirect chains. A transition that redirects more
// than this many times is treated as a loop.
const DefaultMaxHops = 10

// Router drives the assemble/execute cycle and translates the final outcome
// into a caller-visible Decision. Redirects re-enter the assembler for the
// new target under a bounded hop counter; aborts and failures are terminal.
type Router struct {
	asm     *Assembler
	exec    *Executor
	maxHops int
	logger  *slog.Logger
	hooks   domain.LifecycleHooks
}

// NewRouter wires the assembler and executor. maxHops <= 0 falls back to
// DefaultMaxHops.
func NewRouter(asm *Assembler, exec *Executor, maxHops int, logger *slog.Logger, hooks domain.LifecycleHooks) *Router {
	if maxHops <= 0 {
		maxHops = DefaultMaxHops
	}
	return &Router{asm: asm, exec: exec, maxHops: maxHops, logger: logger, hooks: hooks}
}

// Route evaluates the transition until a terminal state is reached.
//
// Returned errors are reserved for conditions the caller cannot route on:
// assembly failures (unknown target, unresolved guard), cancellation,
// redirect loops and fatal guard failures. Everything else (allow, abort,
// resolved redirects, non-fatal failures) is expressed in the Decision.
func (r *Router) Route(ctx context.Context, req *domain.TransitionRequest) (*domain.Decision, error) {
	decision := &domain.Decision{Status: domain.StatusPending}
	current := req
	path := []string{req.Target}

	for {
		chain, err := r.asm.Assemble(current.Target)
		if err != nil {
			// Assembly errors never reach partial execution: the transition
			// is rejected before any unit runs.
			return nil, err
		}

		res, err := r.exec.Execute(ctx, chain, current)
		if err != nil {
			return nil, err
		}

		hop := domain.Hop{
			Target:    current.Target,
			GuardsRun: res.Ran,
			HaltedBy:  res.HaltedBy,
			Outcome:   res.Outcome,
		}
		decision.Hops = append(decision.Hops, hop)

		switch res.Outcome.Kind {
		case domain.OutcomeContinue:
			// A redirected transition that lands on an allowing chain stays
			// redirected: the caller must navigate to the new target, not the
			// one originally requested.
			if decision.Status != domain.StatusRedirected {
				decision.Status = domain.StatusSucceeded
			}
			decision.Outcome = res.Outcome
			r.emitDecision(ctx, req, decision)
			return decision, nil

		case domain.OutcomeRedirect:
			hops := len(decision.Hops) // redirects applied so far, current chain included
			if hops > r.maxHops {
				err := &domain.RedirectLoopError{Path: append(path, res.Outcome.Target), MaxHops: r.maxHops}
				r.logger.Warn("redirect loop detected", "request_id", req.ID, "path", err.Path)
				return nil, err
			}
			r.emitRedirect(ctx, req, current.Target, res.Outcome.Target, hops)
			decision.Status = domain.StatusRedirected
			path = append(path, res.Outcome.Target)
			current = current.Redirected(res.Outcome.Target)

		case domain.OutcomeAbort:
			decision.Status = domain.StatusAborted
			decision.Outcome = res.Outcome
			r.emitDecision(ctx, req, decision)
			return decision, nil

		case domain.OutcomeFail:
			if res.Outcome.Fatal {
				r.logger.Error("fatal guard failure",
					"request_id", req.ID,
					"guard", res.HaltedBy,
					"target", current.Target,
					"kind", res.Outcome.FailKind,
				)
				return nil, &domain.GuardFailureError{
					Guard:   res.HaltedBy,
					Route:   current.Target,
					Outcome: res.Outcome,
				}
			}
			// Non-fatal failures surface as a recoverable rejection.
			decision.Status = domain.StatusAborted
			decision.Outcome = res.Outcome.AsAbort()
			r.emitDecision(ctx, req, decision)
			return decision, nil
		}
	}
}

func (r *Router) emitRedirect(ctx context.Context, req *domain.TransitionRequest, from, to string, hop int) {
	if r.hooks.OnRedirect == nil {
		return
	}
	r.hooks.OnRedirect(ctx, &domain.RedirectEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventRedirect, RequestID: req.ID},
		From:      from,
		To:        to,
		Hop:       hop,
	})
}

func (r *Router) emitDecision(ctx context.Context, req *domain.TransitionRequest, d *domain.Decision) {
	if r.hooks.OnDecision == nil {
		return
	}
	r.hooks.OnDecision(ctx, &domain.DecisionEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventDecision, RequestID: req.ID},
		Status:    d.Status,
		Outcome:   d.Outcome,
		Hops:      len(d.Hops),
	})
}
