package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/AI-call-center/modern-dashboard/internal/logging"
	"github.com/AI-call-center/modern-dashboard/pkg/domain"
	"github.com/AI-call-center/modern-dashboard/pkg/draft"
	"github.com/AI-call-center/modern-dashboard/pkg/flow"
	"github.com/AI-call-center/modern-dashboard/pkg/ports"
	"github.com/AI-call-center/modern-dashboard/pkg/validation"
)

// Controller drives one wizard session: navigation, validation gating,
// field changes and the final hand-off to the Submitter.
//
// A Controller is not safe for concurrent use. Transitions are synchronous
// and not re-entrant: a transition issued while another one is running
// fails with domain.ErrTransitionInProgress.
type Controller struct {
	def       *flow.Definition
	registry  *validation.Registry
	submitter ports.Submitter
	onCancel  func(context.Context, string)
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	sessionID string
	strict    bool
	now       func() time.Time

	historyLimit int
	history      *draft.History

	state     domain.WizardState
	draft     domain.Draft
	startedAt time.Time
	started   bool
	visits    int

	busy atomic.Bool
}

// New creates a controller positioned on the first step with a draft seeded
// from the flow defaults.
func New(def *flow.Definition, opts ...Option) (*Controller, error) {
	c, err := newController(def, opts...)
	if err != nil {
		return nil, err
	}
	c.state = domain.NewWizardState()
	c.draft = draft.Initialize(def.Defaults)
	return c, nil
}

func newController(def *flow.Definition, opts ...Option) (*Controller, error) {
	if def == nil {
		return nil, fmt.Errorf("flow definition is required")
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	registry, err := def.Registry()
	if err != nil {
		return nil, err
	}

	c := &Controller{
		def:       def,
		registry:  registry,
		submitter: ports.DiscardSubmitter,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = logging.NewNop()
	}
	c.logger = c.logger.With("flow", def.ID)
	if c.sessionID != "" {
		c.logger = c.logger.With("session", c.sessionID)
	}
	if c.submitter == nil {
		c.submitter = ports.DiscardSubmitter
	}
	c.history = draft.NewHistory(c.historyLimit)
	c.startedAt = c.now()
	return c, nil
}

// Start announces the current step to the lifecycle hooks.
// Calling it more than once has no further effect.
func (c *Controller) Start(ctx context.Context) error {
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	if c.started {
		return nil
	}
	c.started = true
	c.emitStepEnter(ctx, c.state.CurrentStepIndex)
	c.logger.Debug("wizard started", "step", c.current().ID)
	return nil
}

// Definition returns the flow being driven.
func (c *Controller) Definition() *flow.Definition { return c.def }

// SessionID returns the session tag, possibly empty.
func (c *Controller) SessionID() string { return c.sessionID }

// State returns a copy of the navigation state.
func (c *Controller) State() domain.WizardState { return c.state.Clone() }

// Status returns the lifecycle phase.
func (c *Controller) Status() domain.Status { return c.state.Status }

// Draft returns the live draft. It is nil once the wizard is closed.
// Callers must treat it as read-only.
func (c *Controller) Draft() domain.Draft { return c.draft }

// Current returns the active step.
func (c *Controller) Current() domain.StepDefinition { return c.current() }

// Errors returns the field errors of the active step.
func (c *Controller) Errors() domain.FieldErrors {
	errs := c.state.ErrorsFor(c.current().ID)
	if errs == nil {
		return nil
	}
	return copyErrors(errs)
}

// IsFirst reports whether the active step is the first one.
func (c *Controller) IsFirst() bool { return c.state.CurrentStepIndex == 0 }

// IsLast reports whether a valid Next submits.
func (c *Controller) IsLast() bool { return c.state.CurrentStepIndex == c.def.Len()-1 }

// Validate checks the active step without changing any state.
func (c *Controller) Validate() domain.ValidationResult {
	step := c.current()
	if c.draft == nil {
		return domain.Valid()
	}
	return c.registry.Validate(step.SliceKey, c.draft[step.SliceKey])
}

// CanAdvance reports whether Next would leave the active step.
func (c *Controller) CanAdvance() bool {
	return !c.state.Status.Terminal() && c.Validate().Valid
}

// Next validates the active step. When invalid, the wizard stays put and the
// returned result (also recorded in State().StepErrors) explains why.
// When valid, the wizard advances; on the last step the draft is handed to
// the Submitter and the wizard closes.
func (c *Controller) Next(ctx context.Context) (domain.ValidationResult, error) {
	if err := c.begin(); err != nil {
		return domain.ValidationResult{}, err
	}
	defer c.end()

	index := c.state.CurrentStepIndex
	step := c.current()
	res := c.registry.Validate(step.SliceKey, c.draft[step.SliceKey])
	if !res.Valid {
		c.state.StepErrors[step.ID] = copyErrors(res.FieldErrors)
		c.emitValidationFailed(ctx, step, res.FieldErrors)
		c.logger.Debug("step blocked", "step", step.ID, "errors", len(res.FieldErrors))
		return res, nil
	}
	delete(c.state.StepErrors, step.ID)

	if c.IsLast() {
		return res, c.submit(ctx)
	}

	c.emitStepLeave(ctx, index)
	c.state.CurrentStepIndex = index + 1
	if c.state.CurrentStepIndex > c.state.MaxReachedIndex {
		c.state.MaxReachedIndex = c.state.CurrentStepIndex
	}
	c.emitStepEnter(ctx, c.state.CurrentStepIndex)
	c.logger.Debug("step advanced", "from", step.ID, "to", c.current().ID)
	return res, nil
}

func (c *Controller) submit(ctx context.Context) error {
	step := c.current()
	if err := c.submitter.Submit(ctx, c.def.ID, c.draft); err != nil {
		c.logger.Warn("submit failed", "error", err)
		return &domain.SubmitError{FlowID: c.def.ID, Err: err}
	}

	c.state.Status = domain.StatusSubmitted
	c.draft = nil
	c.history.Reset()

	c.emitStepLeave(ctx, c.state.CurrentStepIndex)
	if c.hooks.OnSubmit != nil {
		c.hooks.OnSubmit(ctx, &domain.SubmitEvent{
			EventBase: c.eventBase(domain.EventSubmitted),
			StepCount: c.visits,
			Elapsed:   c.now().Sub(c.startedAt),
		})
	}
	c.logger.Info("wizard submitted", "step", step.ID, "visits", c.visits)
	return nil
}

// Back moves to the previous step without validating and without touching
// the draft. On the first step it does nothing, unless the flow sets
// CancelOnFirstBack, in which case it cancels.
func (c *Controller) Back(ctx context.Context) error {
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	index := c.state.CurrentStepIndex
	if index == 0 {
		if c.def.CancelOnFirstBack {
			c.cancel(ctx)
		}
		return nil
	}
	c.moveTo(ctx, index-1)
	return nil
}

// JumpTo moves to any step up to the furthest one reached.
func (c *Controller) JumpTo(ctx context.Context, index int) error {
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	if index < 0 || index > c.state.MaxReachedIndex {
		return &domain.StepJumpError{Target: index, MaxReached: c.state.MaxReachedIndex}
	}
	if index != c.state.CurrentStepIndex {
		c.moveTo(ctx, index)
	}
	return nil
}

// JumpToStep is JumpTo addressed by step ID.
func (c *Controller) JumpToStep(ctx context.Context, stepID string) error {
	index := c.def.StepIndex(stepID)
	if index < 0 {
		return fmt.Errorf("%w: %q", domain.ErrUnknownStep, stepID)
	}
	return c.JumpTo(ctx, index)
}

// Cancel abandons the wizard: the draft is discarded and the cancel handler runs.
func (c *Controller) Cancel(ctx context.Context) error {
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	c.cancel(ctx)
	return nil
}

func (c *Controller) cancel(ctx context.Context) {
	step := c.current()

	c.state.Status = domain.StatusCancelled
	c.state.CurrentStepIndex = 0
	c.state.MaxReachedIndex = 0
	c.state.StepErrors = make(map[string]domain.FieldErrors)
	c.draft = nil
	c.history.Reset()

	if c.hooks.OnCancel != nil {
		c.hooks.OnCancel(ctx, &domain.CancelEvent{
			EventBase: c.eventBase(domain.EventCancelled),
			StepID:    step.ID,
		})
	}
	if c.onCancel != nil {
		c.onCancel(ctx, c.def.ID)
	}
	c.logger.Info("wizard cancelled", "step", step.ID)
}

// Update merges partial into one slice (a field change). Other fields of the
// slice and every other slice are kept. Errors of the changed fields are
// cleared once those fields validate.
func (c *Controller) Update(sliceKey string, partial domain.Slice) error {
	return c.change(sliceKey, partial, draft.MergeSlice)
}

// Replace swaps a whole slice, for steps that recompute their value
// (adding or removing a row).
func (c *Controller) Replace(sliceKey string, value domain.Slice) error {
	return c.change(sliceKey, value, draft.ReplaceSlice)
}

func (c *Controller) change(sliceKey string, value domain.Slice, apply func(domain.Draft, string, domain.Slice) (domain.Draft, error)) error {
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	next, err := c.applyOwned(sliceKey, value, apply)
	if err != nil {
		if c.strict {
			panic(err)
		}
		c.logger.Error("field change rejected", "slice", sliceKey, "error", err)
		return err
	}

	prev := c.draft
	c.history.Record(prev)
	c.draft = next
	c.clearResolved(domain.DiffDrafts(prev, next))
	return nil
}

func (c *Controller) applyOwned(sliceKey string, value domain.Slice, apply func(domain.Draft, string, domain.Slice) (domain.Draft, error)) (domain.Draft, error) {
	if _, ok := c.def.StepForSlice(sliceKey); !ok {
		return c.draft, &domain.UnknownSliceError{Key: sliceKey}
	}
	return apply(c.draft, sliceKey, value)
}

// Undo reverts the last field change.
func (c *Controller) Undo() error {
	return c.travel((*draft.History).Undo)
}

// Redo re-applies the last undone field change.
func (c *Controller) Redo() error {
	return c.travel((*draft.History).Redo)
}

func (c *Controller) travel(move func(*draft.History, domain.Draft) (domain.Draft, error)) error {
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	next, err := move(c.history, c.draft)
	if err != nil {
		return err
	}
	prev := c.draft
	c.draft = next
	c.clearResolved(domain.DiffDrafts(prev, next))
	return nil
}

// CanUndo reports whether Undo would change anything.
func (c *Controller) CanUndo() bool {
	undo, _ := c.history.Len()
	return undo > 0
}

// CanRedo reports whether Redo would change anything.
func (c *Controller) CanRedo() bool {
	_, redo := c.history.Len()
	return redo > 0
}

// clearResolved drops recorded errors of changed fields that now validate.
func (c *Controller) clearResolved(diff domain.DraftDiff) {
	for sliceKey, fields := range diff {
		step, ok := c.def.StepForSlice(sliceKey)
		if !ok {
			continue
		}
		errs := c.state.StepErrors[step.ID]
		if len(errs) == 0 {
			continue
		}
		res := c.registry.Validate(sliceKey, c.draft[sliceKey])
		for key := range errs {
			if !touched(key, fields) {
				continue
			}
			if _, still := res.FieldErrors[key]; !still {
				delete(errs, key)
			}
		}
		if len(errs) == 0 {
			delete(c.state.StepErrors, step.ID)
		}
	}
}

// touched reports whether an error key ("name", "timeRange.end") belongs to
// one of the changed fields.
func touched(errKey string, changed map[string]any) bool {
	for field := range changed {
		if errKey == field || strings.HasPrefix(errKey, field+".") {
			return true
		}
	}
	return false
}

func (c *Controller) moveTo(ctx context.Context, index int) {
	from := c.current().ID
	c.emitStepLeave(ctx, c.state.CurrentStepIndex)
	c.state.CurrentStepIndex = index
	c.emitStepEnter(ctx, index)
	c.logger.Debug("step changed", "from", from, "to", c.current().ID)
}

// begin marks a transition as running.
func (c *Controller) begin() error {
	if c.state.Status.Terminal() {
		return domain.ErrWizardClosed
	}
	if !c.busy.CompareAndSwap(false, true) {
		return domain.ErrTransitionInProgress
	}
	return nil
}

func (c *Controller) end() {
	c.busy.Store(false)
}

func (c *Controller) current() domain.StepDefinition {
	step, _ := c.def.Step(c.state.CurrentStepIndex)
	return step
}

func copyErrors(errs domain.FieldErrors) domain.FieldErrors {
	out := make(domain.FieldErrors, len(errs))
	for k, v := range errs {
		out[k] = v
	}
	return out
}
