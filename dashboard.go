package dashboard

import (
	"context"
	"log/slog"
	"time"

	"github.com/AI-call-center/modern-dashboard/internal/runtime"
	"github.com/AI-call-center/modern-dashboard/pkg/domain"
	"github.com/AI-call-center/modern-dashboard/pkg/flow"
	"github.com/AI-call-center/modern-dashboard/pkg/ports"
)

// Wizard is the high-level entry point of the library: one session of one flow.
// It wraps the internal controller and exposes the navigation API hosts need.
type Wizard struct {
	ctrl *runtime.Controller
}

type config struct {
	logger       *slog.Logger
	hooks        domain.LifecycleHooks
	submitter    ports.Submitter
	onCancel     func(context.Context, string)
	sessionID    string
	strict       bool
	historyLimit int
	now          func() time.Time
}

// Option configures a Wizard.
type Option func(*config)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *config) { c.hooks = hooks }
}

// WithSubmitter sets the collaborator receiving the completed draft.
func WithSubmitter(s ports.Submitter) Option {
	return func(c *config) { c.submitter = s }
}

// WithCancelHandler sets the callback run when the wizard is cancelled.
func WithCancelHandler(fn func(ctx context.Context, flowID string)) Option {
	return func(c *config) { c.onCancel = fn }
}

// WithSessionID tags the wizard with a session ID.
func WithSessionID(id string) Option {
	return func(c *config) { c.sessionID = id }
}

// WithStrictSlices panics on updates addressed to unknown slices.
func WithStrictSlices() Option {
	return func(c *config) { c.strict = true }
}

// WithHistoryLimit bounds the number of undoable field changes.
func WithHistoryLimit(n int) Option {
	return func(c *config) { c.historyLimit = n }
}

// WithClock overrides time.Now for event timestamps and session start times.
func WithClock(now func() time.Time) Option {
	return func(c *config) { c.now = now }
}

func (c *config) runtimeOptions() []runtime.Option {
	opts := []runtime.Option{
		runtime.WithLifecycleHooks(c.hooks),
		runtime.WithHistoryLimit(c.historyLimit),
	}
	if c.logger != nil {
		opts = append(opts, runtime.WithLogger(c.logger))
	}
	if c.submitter != nil {
		opts = append(opts, runtime.WithSubmitter(c.submitter))
	}
	if c.onCancel != nil {
		opts = append(opts, runtime.WithCancelHandler(c.onCancel))
	}
	if c.sessionID != "" {
		opts = append(opts, runtime.WithSessionID(c.sessionID))
	}
	if c.strict {
		opts = append(opts, runtime.WithStrictSlices())
	}
	if c.now != nil {
		opts = append(opts, runtime.WithClock(c.now))
	}
	return opts
}

func newConfig(opts []Option) *config {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// New creates a wizard for def, positioned on its first step.
func New(def *flow.Definition, opts ...Option) (*Wizard, error) {
	ctrl, err := runtime.New(def, newConfig(opts).runtimeOptions()...)
	if err != nil {
		return nil, err
	}
	return &Wizard{ctrl: ctrl}, nil
}

// NewBuiltin creates a wizard for one of the embedded flows ("agent",
// "campaign", "quick-agent").
func NewBuiltin(flowID string, opts ...Option) (*Wizard, error) {
	def, err := flow.Builtin(flowID)
	if err != nil {
		return nil, err
	}
	return New(def, opts...)
}

// Resume rebuilds a wizard from a snapshot.
func Resume(def *flow.Definition, snap *domain.Snapshot, opts ...Option) (*Wizard, error) {
	ctrl, err := runtime.Restore(def, snap, newConfig(opts).runtimeOptions()...)
	if err != nil {
		return nil, err
	}
	return &Wizard{ctrl: ctrl}, nil
}

// Start announces the first step to the lifecycle hooks.
func (w *Wizard) Start(ctx context.Context) error { return w.ctrl.Start(ctx) }

// Next validates the current step and advances, or submits on the last step.
func (w *Wizard) Next(ctx context.Context) (domain.ValidationResult, error) {
	return w.ctrl.Next(ctx)
}

// Back moves to the previous step without validating.
func (w *Wizard) Back(ctx context.Context) error { return w.ctrl.Back(ctx) }

// JumpTo moves to a step already reached.
func (w *Wizard) JumpTo(ctx context.Context, index int) error { return w.ctrl.JumpTo(ctx, index) }

// JumpToStep moves to a step already reached, by ID.
func (w *Wizard) JumpToStep(ctx context.Context, stepID string) error {
	return w.ctrl.JumpToStep(ctx, stepID)
}

// Cancel abandons the wizard and discards the draft.
func (w *Wizard) Cancel(ctx context.Context) error { return w.ctrl.Cancel(ctx) }

// Update merges a partial value into one slice.
func (w *Wizard) Update(sliceKey string, partial domain.Slice) error {
	return w.ctrl.Update(sliceKey, partial)
}

// Replace swaps a whole slice.
func (w *Wizard) Replace(sliceKey string, value domain.Slice) error {
	return w.ctrl.Replace(sliceKey, value)
}

// Undo reverts the last field change.
func (w *Wizard) Undo() error { return w.ctrl.Undo() }

// Redo re-applies the last undone field change.
func (w *Wizard) Redo() error { return w.ctrl.Redo() }

// Validate checks the current step without side effects.
func (w *Wizard) Validate() domain.ValidationResult { return w.ctrl.Validate() }

// State returns a copy of the navigation state.
func (w *Wizard) State() domain.WizardState { return w.ctrl.State() }

// Status returns the lifecycle phase.
func (w *Wizard) Status() domain.Status { return w.ctrl.Status() }

// Draft returns the live draft (nil once closed). Treat it as read-only.
func (w *Wizard) Draft() domain.Draft { return w.ctrl.Draft() }

// Current returns the active step.
func (w *Wizard) Current() domain.StepDefinition { return w.ctrl.Current() }

// Errors returns the field errors recorded for the active step.
func (w *Wizard) Errors() domain.FieldErrors { return w.ctrl.Errors() }

// IsFirst reports whether the active step is the first one.
func (w *Wizard) IsFirst() bool { return w.ctrl.IsFirst() }

// IsLast reports whether the next valid Next submits.
func (w *Wizard) IsLast() bool { return w.ctrl.IsLast() }

// Definition returns the flow.
func (w *Wizard) Definition() *flow.Definition { return w.ctrl.Definition() }

// Snapshot captures the session for later Resume.
func (w *Wizard) Snapshot() *domain.Snapshot { return w.ctrl.Snapshot() }
