package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/palisade/internal/logging"
	"github.com/aretw0/palisade/pkg/domain"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// Unlike signal.NotifyContext, the received signal can be retrieved.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that cancelled the context, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// CreateLogger configures the command logger. Debug logs go to stderr so
// stdout stays clean for command output.
func CreateLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.New(slog.LevelInfo)
}

// PrintSystemMessage prints a standardized system message to stdout.
func PrintSystemMessage(format string, args ...any) {
	fmt.Printf(">>> %s\n", fmt.Sprintf(format, args...))
}

// DebugHooks traces the whole evaluation lifecycle at debug level.
func DebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnChainAssembled: func(ctx context.Context, e *domain.ChainEvent) {
			logger.Debug("chain assembled", "target", e.Target, "size", e.Size)
		},
		OnGuardEnter: func(ctx context.Context, e *domain.GuardEvent) {
			logger.Debug("guard enter", "guard", e.Guard, "target", e.Target, "index", e.Index)
		},
		OnGuardLeave: func(ctx context.Context, e *domain.GuardEvent) {
			if e.Outcome != nil {
				logger.Debug("guard leave", "guard", e.Guard, "kind", e.Outcome.Kind)
			}
		},
		OnRedirect: func(ctx context.Context, e *domain.RedirectEvent) {
			logger.Debug("redirect", "from", e.From, "to", e.To, "hop", e.Hop)
		},
		OnDecision: func(ctx context.Context, e *domain.DecisionEvent) {
			logger.Debug("decision", "status", e.Status, "hops", e.Hops)
		},
	}
}
