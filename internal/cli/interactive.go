package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/muesli/termenv"

	dashboard "github.com/AI-call-center/modern-dashboard"
	"github.com/AI-call-center/modern-dashboard/internal/presentation/prompt"
	"github.com/AI-call-center/modern-dashboard/internal/presentation/tui"
	"github.com/AI-call-center/modern-dashboard/pkg/domain"
)

// interactive drives a wizard from terminal prompts: each round shows the
// progress sidebar, asks the step's fields, then asks where to go.
type interactive struct {
	wizard *dashboard.Wizard
	form   *prompt.Form
	out    io.Writer
	logger *slog.Logger
}

func (s *interactive) run(ctx context.Context) error {
	def := s.wizard.Definition()
	profile := termenv.NewOutput(s.out).ColorProfile()
	render := newMarkdownRenderer(s.out)

	tui.PrintBanner(s.out, def.Title)

	for s.wizard.Status() == domain.StatusEditing {
		state := s.wizard.State()
		fmt.Fprint(s.out, tui.RenderProgress(profile, def, state))
		fmt.Fprintln(s.out)
		fmt.Fprint(s.out, tui.StepHeader(profile, def, state))
		fmt.Fprint(s.out, tui.RenderErrors(profile, s.wizard.Errors()))

		step := s.wizard.Current()
		if fields := def.FieldsFor(step.SliceKey); len(fields) > 0 {
			partial, err := s.form.AskStep(ctx, fields, s.wizard.Draft()[step.SliceKey])
			if err != nil {
				return err
			}
			before := s.wizard.Draft()
			if err := s.wizard.Update(step.SliceKey, partial); err != nil {
				return err
			}
			logChanges(s.logger, before, s.wizard.Draft())
		} else if s.wizard.IsLast() {
			md, err := render(tui.ReviewMarkdown(def, s.wizard.Draft()))
			if err != nil {
				return err
			}
			fmt.Fprint(s.out, md)
		}

		if err := s.navigate(ctx); err != nil {
			return err
		}
	}

	switch s.wizard.Status() {
	case domain.StatusSubmitted:
		printSystemMessage(s.out, "%s done.", def.Title)
	case domain.StatusCancelled:
		printSystemMessage(s.out, "%s cancelled, nothing was saved.", def.Title)
	}
	return nil
}

// navigate asks for the next move until the wizard changes step, is closed
// or the user wants to edit the current step again.
func (s *interactive) navigate(ctx context.Context) error {
	choice, err := s.form.AskNavigation(ctx, s.wizard.Definition(), s.wizard.State())
	if err != nil {
		return err
	}

	switch choice.Action {
	case prompt.ActionNext:
		res, err := s.wizard.Next(ctx)
		if err != nil {
			return err
		}
		if !res.Valid {
			s.logger.Debug("step blocked", "step", s.wizard.Current().ID, "errors", len(res.FieldErrors))
		}
	case prompt.ActionBack:
		return s.wizard.Back(ctx)
	case prompt.ActionJump:
		return s.wizard.JumpTo(ctx, choice.StepIndex)
	case prompt.ActionCancel:
		return s.wizard.Cancel(ctx)
	}
	return nil
}

// logChanges writes the field delta of an update at debug level.
func logChanges(logger *slog.Logger, before, after domain.Draft) {
	for sliceKey, fields := range domain.DiffDrafts(before, after) {
		for field, value := range fields {
			logger.Debug("field changed", "slice", sliceKey, "field", field, "value", value)
		}
	}
}
