package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/AI-call-center/modern-dashboard/pkg/domain"
	"github.com/AI-call-center/modern-dashboard/pkg/flow"
)

// Step markers of the progress sidebar.
const (
	MarkDone    = "✓"
	MarkCurrent = "▸"
	MarkOpen    = "○"
	MarkLocked  = "·"
	MarkError   = "!"
)

// RenderProgress draws the step sidebar. Steps up to MaxReachedIndex can be
// jumped to and are marked done; later steps are locked. Steps holding
// validation errors are flagged.
func RenderProgress(p termenv.Profile, def *flow.Definition, state domain.WizardState) string {
	out := styler(p)
	var sb strings.Builder
	for i, step := range def.Steps {
		mark, color := MarkLocked, "#6b7280"
		switch {
		case !state.Status.Terminal() && i == state.CurrentStepIndex:
			mark, color = MarkCurrent, "#6366f1"
		case len(state.ErrorsFor(step.ID)) > 0:
			mark, color = MarkError, "#ef4444"
		case state.Status == domain.StatusSubmitted || i < state.MaxReachedIndex:
			mark, color = MarkDone, "#22c55e"
		case i <= state.MaxReachedIndex:
			mark, color = MarkOpen, "#a5b4fc"
		}

		line := fmt.Sprintf("%s %d. %s", mark, i+1, step.Title)
		style := out.String(line).Foreground(p.Color(color))
		if mark == MarkCurrent {
			style = style.Bold()
		}
		sb.WriteString(style.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// StepHeader renders "Step 2 of 5 · Behaviour" plus the step description.
func StepHeader(p termenv.Profile, def *flow.Definition, state domain.WizardState) string {
	step, ok := def.Step(state.CurrentStepIndex)
	if !ok {
		return ""
	}
	out := styler(p)
	head := out.String(fmt.Sprintf("Step %d of %d · %s", state.CurrentStepIndex+1, def.Len(), step.Title)).
		Foreground(p.Color("#818cf8")).
		Bold()

	if step.Description == "" {
		return head.String() + "\n"
	}
	return head.String() + "\n" + out.String(step.Description).Faint().String() + "\n"
}

// RenderErrors lists field errors of the current step, sorted by field.
func RenderErrors(p termenv.Profile, errs domain.FieldErrors) string {
	if len(errs) == 0 {
		return ""
	}
	out := styler(p)
	var sb strings.Builder
	for _, field := range sortedFields(errs) {
		sb.WriteString(out.String("  ✗ " + errs[field]).Foreground(p.Color("#ef4444")).String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// styler returns an output that styles strings for profile p only.
func styler(p termenv.Profile) *termenv.Output {
	return termenv.NewOutput(io.Discard, termenv.WithProfile(p))
}
