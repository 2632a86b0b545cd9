package guards

import (
	"context"
	"log/slog"

	"github.com/aretw0/palisade/pkg/domain"
)

// Trace logs every transition it sees and always continues. Typically
// registered as a global so it observes each chain exactly once per hop.
func Trace(logger *slog.Logger) domain.Guard {
	return func(ctx context.Context, req *domain.TransitionRequest) domain.Outcome {
		logger.Info("transition",
			"request_id", req.ID,
			"target", req.Target,
			"origin", req.Origin,
		)
		return domain.Continue()
	}
}
