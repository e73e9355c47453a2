package runtime

import (
	"context"

	"github.com/AI-call-center/modern-dashboard/pkg/domain"
)

func (c *Controller) eventBase(t domain.EventType) domain.EventBase {
	return domain.EventBase{
		Timestamp: c.now(),
		Type:      t,
		SessionID: c.sessionID,
		FlowID:    c.def.ID,
	}
}

func (c *Controller) emitStepEnter(ctx context.Context, index int) {
	c.visits++
	if c.hooks.OnStepEnter == nil {
		return
	}
	step, _ := c.def.Step(index)
	c.hooks.OnStepEnter(ctx, &domain.StepEvent{
		EventBase: c.eventBase(domain.EventStepEnter),
		StepID:    step.ID,
		Index:     index,
	})
}

func (c *Controller) emitStepLeave(ctx context.Context, index int) {
	if c.hooks.OnStepLeave == nil {
		return
	}
	step, _ := c.def.Step(index)
	c.hooks.OnStepLeave(ctx, &domain.StepEvent{
		EventBase: c.eventBase(domain.EventStepLeave),
		StepID:    step.ID,
		Index:     index,
	})
}

func (c *Controller) emitValidationFailed(ctx context.Context, step domain.StepDefinition, errs domain.FieldErrors) {
	if c.hooks.OnValidationFailed == nil {
		return
	}
	c.hooks.OnValidationFailed(ctx, &domain.ValidationEvent{
		EventBase:   c.eventBase(domain.EventValidationFailed),
		StepID:      step.ID,
		FieldErrors: copyErrors(errs),
	})
}
