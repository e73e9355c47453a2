package prompt

import (
	"context"
	"fmt"

	"github.com/AI-call-center/modern-dashboard/pkg/domain"
	"github.com/AI-call-center/modern-dashboard/pkg/flow"
)

// Action is a navigation choice of the step menu.
type Action int

const (
	ActionEdit Action = iota
	ActionNext
	ActionBack
	ActionJump
	ActionCancel
)

// Choice is what the user picked in the step menu.
type Choice struct {
	Action Action
	// StepIndex is the jump target of ActionJump.
	StepIndex int
}

// AskNavigation shows the step menu: edit, next (or submit on the last step),
// back, a jump to each reached step, and cancel.
func (f *Form) AskNavigation(ctx context.Context, def *flow.Definition, state domain.WizardState) (Choice, error) {
	options, choices := navigationOptions(def, state)
	idx, err := f.driver.Select(ctx, SelectConfig{
		Message:      "What next?",
		Options:      options,
		DefaultIndex: 1,
	})
	if err != nil {
		return Choice{}, err
	}
	if idx < 0 || idx >= len(choices) {
		return Choice{Action: ActionEdit}, nil
	}
	return choices[idx], nil
}

func navigationOptions(def *flow.Definition, state domain.WizardState) ([]string, []Choice) {
	i := state.CurrentStepIndex
	options := []string{"Edit this step"}
	choices := []Choice{{Action: ActionEdit}}

	if i == def.Len()-1 {
		label := def.SubmitLabel
		if label == "" {
			label = "Submit"
		}
		options = append(options, label)
	} else {
		next, _ := def.Step(i + 1)
		options = append(options, "Next: "+next.Title)
	}
	choices = append(choices, Choice{Action: ActionNext})

	switch {
	case i > 0:
		prev, _ := def.Step(i - 1)
		options = append(options, "Back: "+prev.Title)
		choices = append(choices, Choice{Action: ActionBack})
	case def.CancelOnFirstBack:
		options = append(options, "Back (discard)")
		choices = append(choices, Choice{Action: ActionBack})
	}

	for j := 0; j <= state.MaxReachedIndex && j < def.Len(); j++ {
		if j == i {
			continue
		}
		step, _ := def.Step(j)
		options = append(options, fmt.Sprintf("Jump to %d. %s", j+1, step.Title))
		choices = append(choices, Choice{Action: ActionJump, StepIndex: j})
	}

	options = append(options, "Cancel")
	choices = append(choices, Choice{Action: ActionCancel})
	return options, choices
}
