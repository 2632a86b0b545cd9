package cli

import (
	"context"
	"log/slog"

	"github.com/aretw0/palisade"
)

// WatchRoutes logs route table changes until ctx is done. Loam reads
// documents from disk on every lookup, so edits take effect without a
// reload; the watcher exists to make that visible. Loaders without watch
// support are skipped silently.
func WatchRoutes(ctx context.Context, engine *palisade.Engine, logger *slog.Logger) {
	changes, err := engine.Watch(ctx)
	if err != nil {
		logger.Debug("route watching unavailable", "err", err)
		return
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case id, ok := <-changes:
				if !ok {
					return
				}
				logger.Info("route table changed", "route", id)
			}
		}
	}()
}
