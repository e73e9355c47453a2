package domain

import "time"

// Status defines the lifecycle phase of a wizard session.
type Status string

const (
	StatusEditing   Status = "editing"   // Steps are being filled in
	StatusSubmitted Status = "submitted" // Draft handed to the Submit collaborator
	StatusCancelled Status = "cancelled" // Draft discarded
)

// Terminal reports whether no further transition is accepted.
func (s Status) Terminal() bool {
	return s == StatusSubmitted || s == StatusCancelled
}

// FieldErrors maps a field name to a user-facing message.
type FieldErrors map[string]string

// WizardState is the transient navigation state of one session.
type WizardState struct {
	// CurrentStepIndex is the 0-based position of the active step.
	CurrentStepIndex int `json:"current_step" yaml:"current_step"`

	// MaxReachedIndex is the furthest step the user has validated into.
	// Jumps are allowed to any index up to it.
	MaxReachedIndex int `json:"max_reached" yaml:"max_reached"`

	Status Status `json:"status" yaml:"status"`

	// StepErrors holds the last failed validation per step ID.
	StepErrors map[string]FieldErrors `json:"step_errors,omitempty" yaml:"step_errors,omitempty"`
}

// NewWizardState returns the state of a freshly mounted wizard.
func NewWizardState() WizardState {
	return WizardState{
		Status:     StatusEditing,
		StepErrors: make(map[string]FieldErrors),
	}
}

// ErrorsFor returns the errors recorded for a step, or nil.
func (s WizardState) ErrorsFor(stepID string) FieldErrors {
	return s.StepErrors[stepID]
}

// Clone returns a copy that shares no maps with s.
func (s WizardState) Clone() WizardState {
	next := s
	next.StepErrors = make(map[string]FieldErrors, len(s.StepErrors))
	for id, errs := range s.StepErrors {
		copied := make(FieldErrors, len(errs))
		for field, msg := range errs {
			copied[field] = msg
		}
		next.StepErrors[id] = copied
	}
	return next
}

// Snapshot captures one editing session so it can be parked and resumed.
type Snapshot struct {
	SessionID string      `json:"session_id" yaml:"session_id"`
	FlowID    string      `json:"flow_id" yaml:"flow_id"`
	State     WizardState `json:"state" yaml:"state"`
	Draft     Draft       `json:"draft,omitempty" yaml:"draft,omitempty"`
	StartedAt time.Time   `json:"started_at,omitempty" yaml:"started_at,omitempty"`
	Visits    int         `json:"visits,omitempty" yaml:"visits,omitempty"`
}
