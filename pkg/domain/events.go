package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStepEnter        EventType = "step_enter"
	EventStepLeave        EventType = "step_leave"
	EventValidationFailed EventType = "validation_failed"
	EventSubmitted        EventType = "submitted"
	EventCancelled        EventType = "cancelled"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id,omitempty"`
	FlowID    string    `json:"flow_id"`
}

// StepEvent represents entry into or exit from a step.
type StepEvent struct {
	EventBase
	StepID string `json:"step_id"`
	Index  int    `json:"index"`
}

// ValidationEvent is emitted when a step blocks a Next.
type ValidationEvent struct {
	EventBase
	StepID      string      `json:"step_id"`
	FieldErrors FieldErrors `json:"field_errors"`
}

// SubmitEvent is emitted once the Submit collaborator accepted the draft.
type SubmitEvent struct {
	EventBase
	StepCount int           `json:"step_count"`
	Elapsed   time.Duration `json:"elapsed"`
}

// CancelEvent is emitted when a session is abandoned.
type CancelEvent struct {
	EventBase
	StepID string `json:"step_id"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnStepEnter        func(context.Context, *StepEvent)
	OnStepLeave        func(context.Context, *StepEvent)
	OnValidationFailed func(context.Context, *ValidationEvent)
	OnSubmit           func(context.Context, *SubmitEvent)
	OnCancel           func(context.Context, *CancelEvent)
}
