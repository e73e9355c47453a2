package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrWizardClosed is returned for transitions issued after Submitted or Cancelled.
var ErrWizardClosed = errors.New("wizard is closed")

// ErrTransitionInProgress is returned when a transition is issued while another
// one has not completed (for example from inside the Submit collaborator).
var ErrTransitionInProgress = errors.New("transition already in progress")

// ErrUnknownStep is returned when a step ID is not part of the flow.
var ErrUnknownStep = errors.New("unknown step")

var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// UnknownSliceError reports an update addressed to a slice no step owns.
// It signals a wiring bug between step definitions and the draft.
type UnknownSliceError struct {
	Key string
}

func (e *UnknownSliceError) Error() string {
	return fmt.Sprintf("unknown slice %q: no step definition owns it", e.Key)
}

// StepJumpError reports a jump beyond the furthest validated step.
type StepJumpError struct {
	Target     int
	MaxReached int
}

func (e *StepJumpError) Error() string {
	return fmt.Sprintf("cannot jump to step %d: furthest reached step is %d", e.Target, e.MaxReached)
}

// SubmitError wraps a failure returned by the Submit collaborator.
type SubmitError struct {
	FlowID string
	Err    error
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("submit %s: %v", e.FlowID, e.Err)
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}

// FlowError lists every configuration problem found in a flow definition.
type FlowError struct {
	FlowID   string
	Problems []string
}

func (e *FlowError) Error() string {
	if len(e.Problems) == 1 {
		return fmt.Sprintf("flow %q: %s", e.FlowID, e.Problems[0])
	}
	return fmt.Sprintf("flow %q: %d problems:\n  - %s", e.FlowID, len(e.Problems), strings.Join(e.Problems, "\n  - "))
}
