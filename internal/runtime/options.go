package runtime

import (
	"context"
	"log/slog"
	"time"

	"github.com/AI-call-center/modern-dashboard/pkg/domain"
	"github.com/AI-call-center/modern-dashboard/pkg/ports"
)

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Controller) {
		c.hooks = hooks
	}
}

// WithSubmitter sets the collaborator receiving the completed draft.
// Defaults to ports.DiscardSubmitter.
func WithSubmitter(s ports.Submitter) Option {
	return func(c *Controller) {
		c.submitter = s
	}
}

// WithCancelHandler sets the callback invoked when the wizard is cancelled.
func WithCancelHandler(fn func(ctx context.Context, flowID string)) Option {
	return func(c *Controller) {
		c.onCancel = fn
	}
}

// WithSessionID tags snapshots, events and logs with id.
func WithSessionID(id string) Option {
	return func(c *Controller) {
		c.sessionID = id
	}
}

// WithStrictSlices makes updates addressed to an unknown slice panic instead
// of returning *domain.UnknownSliceError. Meant for development builds.
func WithStrictSlices() Option {
	return func(c *Controller) {
		c.strict = true
	}
}

// WithHistoryLimit bounds the number of undoable field changes.
func WithHistoryLimit(n int) Option {
	return func(c *Controller) {
		c.historyLimit = n
	}
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}
