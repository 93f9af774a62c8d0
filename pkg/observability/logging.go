package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/stencil/pkg/domain"
)

// LogHooks returns lifecycle hooks writing every event to logger at Info level.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnPassStart: func(ctx context.Context, e *domain.PassEvent) {
			logger.InfoContext(ctx, "pass_start", "pass", e.Pass, "scope", e.Scope)
		},
		OnPassEnd: func(ctx context.Context, e *domain.PassEvent) {
			logger.InfoContext(ctx, "pass_end",
				"pass", e.Pass,
				"scope", e.Scope,
				"visited", e.Visited,
				"changed", e.Changed,
			)
		},
		OnRepair: func(ctx context.Context, e *domain.RepairEvent) {
			logger.InfoContext(ctx, "repair",
				"pass", e.Pass,
				"element", e.Element,
				"kind", e.Kind,
				"path", e.Path,
			)
		},
	}
}
