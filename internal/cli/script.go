package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	dashboard "github.com/AI-call-center/modern-dashboard"
	"github.com/AI-call-center/modern-dashboard/pkg/domain"
)

// Script actions.
const (
	ScriptNext   = "next"
	ScriptBack   = "back"
	ScriptJump   = "jump"
	ScriptCancel = "cancel"
	ScriptUndo   = "undo"
	ScriptRedo   = "redo"
	ScriptStay   = "stay"
)

// Script is an answers file: a list of moves replayed against a wizard.
//
//	flow: agent
//	moves:
//	  - set: {name: Sales Assistant}
//	  - set: {greeting: "Hi!"}
//	  - action: back
//	  - action: jump
//	    step: behaviour
type Script struct {
	Flow  string `yaml:"flow,omitempty"`
	Moves []Move `yaml:"moves"`
}

// Move changes the current step's slice and then navigates.
// Action defaults to "next".
type Move struct {
	Set     domain.Slice `yaml:"set,omitempty"`
	Replace domain.Slice `yaml:"replace,omitempty"`
	Action  string       `yaml:"action,omitempty"`
	Step    string       `yaml:"step,omitempty"`
}

// LoadScript reads an answers file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read answers: %w", err)
	}
	return ParseScript(data)
}

// ParseScript decodes an answers document.
func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse answers: %w", err)
	}
	for i, m := range s.Moves {
		switch strings.ToLower(m.Action) {
		case "", ScriptNext, ScriptBack, ScriptCancel, ScriptUndo, ScriptRedo, ScriptStay:
		case ScriptJump:
			if m.Step == "" {
				return nil, fmt.Errorf("move %d: jump needs a step", i+1)
			}
		default:
			return nil, fmt.Errorf("move %d: unknown action %q", i+1, m.Action)
		}
	}
	return &s, nil
}

// Play replays the moves. A Next blocked by validation aborts the script with
// the step's field errors; the wizard must be closed when the moves run out.
func (s *Script) Play(ctx context.Context, w *dashboard.Wizard, logger *slog.Logger) error {
	for i, m := range s.Moves {
		if w.Status().Terminal() {
			return fmt.Errorf("move %d: wizard already %s", i+1, w.Status())
		}
		step := w.Current()
		before := w.Draft()

		if m.Replace != nil {
			if err := w.Replace(step.SliceKey, m.Replace); err != nil {
				return fmt.Errorf("move %d: %w", i+1, err)
			}
		}
		if len(m.Set) > 0 {
			if err := w.Update(step.SliceKey, m.Set); err != nil {
				return fmt.Errorf("move %d: %w", i+1, err)
			}
		}
		logChanges(logger, before, w.Draft())

		if err := s.navigate(ctx, w, m); err != nil {
			return fmt.Errorf("move %d (%s): %w", i+1, step.ID, err)
		}
	}

	if !w.Status().Terminal() {
		return fmt.Errorf("answers ended on step %q before the wizard was submitted", w.Current().ID)
	}
	return nil
}

func (s *Script) navigate(ctx context.Context, w *dashboard.Wizard, m Move) error {
	switch strings.ToLower(m.Action) {
	case "", ScriptNext:
		res, err := w.Next(ctx)
		if err != nil {
			return err
		}
		if !res.Valid {
			return &BlockedError{StepID: w.Current().ID, FieldErrors: res.FieldErrors}
		}
	case ScriptBack:
		return w.Back(ctx)
	case ScriptJump:
		return w.JumpToStep(ctx, m.Step)
	case ScriptCancel:
		return w.Cancel(ctx)
	case ScriptUndo:
		return w.Undo()
	case ScriptRedo:
		return w.Redo()
	}
	return nil
}

// BlockedError reports a Next refused by validation during a scripted run.
type BlockedError struct {
	StepID      string
	FieldErrors domain.FieldErrors
}

func (e *BlockedError) Error() string {
	fields := make([]string, 0, len(e.FieldErrors))
	for f := range e.FieldErrors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	msgs := make([]string, len(fields))
	for i, f := range fields {
		msgs[i] = e.FieldErrors[f]
	}
	return fmt.Sprintf("step %q is invalid: %s", e.StepID, strings.Join(msgs, "; "))
}
