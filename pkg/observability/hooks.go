package observability

import (
	"context"
	"log/slog"

	"github.com/AI-call-center/modern-dashboard/pkg/domain"
)

// LogHooks logs every lifecycle event on logger.
// Step movements are logged at debug level, outcomes at info.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepEnter: func(ctx context.Context, e *domain.StepEvent) {
			logger.DebugContext(ctx, "step_enter", "flow", e.FlowID, "session", e.SessionID, "step", e.StepID, "index", e.Index)
		},
		OnStepLeave: func(ctx context.Context, e *domain.StepEvent) {
			logger.DebugContext(ctx, "step_leave", "flow", e.FlowID, "session", e.SessionID, "step", e.StepID)
		},
		OnValidationFailed: func(ctx context.Context, e *domain.ValidationEvent) {
			logger.InfoContext(ctx, "validation_failed", "flow", e.FlowID, "session", e.SessionID, "step", e.StepID, "fields", len(e.FieldErrors))
		},
		OnSubmit: func(ctx context.Context, e *domain.SubmitEvent) {
			logger.InfoContext(ctx, "submitted", "flow", e.FlowID, "session", e.SessionID, "steps", e.StepCount, "elapsed", e.Elapsed)
		},
		OnCancel: func(ctx context.Context, e *domain.CancelEvent) {
			logger.InfoContext(ctx, "cancelled", "flow", e.FlowID, "session", e.SessionID, "step", e.StepID)
		},
	}
}

// Combine fans every event out to each hook set, in order.
func Combine(all ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, h := range all {
		out.OnStepEnter = chain(out.OnStepEnter, h.OnStepEnter)
		out.OnStepLeave = chain(out.OnStepLeave, h.OnStepLeave)
		out.OnValidationFailed = chain(out.OnValidationFailed, h.OnValidationFailed)
		out.OnSubmit = chain(out.OnSubmit, h.OnSubmit)
		out.OnCancel = chain(out.OnCancel, h.OnCancel)
	}
	return out
}

func chain[E any](first, second func(context.Context, E)) func(context.Context, E) {
	switch {
	case first == nil:
		return second
	case second == nil:
		return first
	}
	return func(ctx context.Context, e E) {
		first(ctx, e)
		second(ctx, e)
	}
}
