package graph

import (
	"fmt"
	"strings"

	"github.com/AI-call-center/modern-dashboard/pkg/domain"
	"github.com/AI-call-center/modern-dashboard/pkg/flow"
)

// GraphOverlay contains wizard state to visualize on the graph.
type GraphOverlay struct {
	VisitedSteps []string
	CurrentStep  string
}

// OverlayFromState marks every step up to MaxReachedIndex as visited and the
// current step as current. Terminal wizards have no current step.
func OverlayFromState(def *flow.Definition, state domain.WizardState) *GraphOverlay {
	o := &GraphOverlay{}
	for i := 0; i <= state.MaxReachedIndex && i < def.Len(); i++ {
		o.VisitedSteps = append(o.VisitedSteps, def.Steps[i].ID)
	}
	if !state.Status.Terminal() && state.CurrentStepIndex < def.Len() {
		o.CurrentStep = def.Steps[state.CurrentStepIndex].ID
	}
	return o
}

// GenerateMermaid produces a Mermaid flowchart for a flow.
// It applies semantic styling:
// - Gated step (has rules): [/Parallelogram/]
// - Free step: [Rectangle]
// - Submit: ((Circle))
// Back edges are dotted. Overlay styles are applied if provided.
func GenerateMermaid(def *flow.Definition, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for i, step := range def.Steps {
		safeID := sanitizeMermaidID(step.ID)

		opener, closer := "[", "]"
		if len(def.Rules[step.SliceKey]) > 0 {
			opener, closer = "[/", "/]"
		}

		title := strings.ReplaceAll(step.Title, "\"", "'")
		fmt.Fprintf(&sb, "    %s%s\"%d. %s <br/> %s\"%s\n", safeID, opener, i+1, title, step.SliceKey, closer)
	}

	submitLabel := def.SubmitLabel
	if submitLabel == "" {
		submitLabel = "Submit"
	}
	fmt.Fprintf(&sb, "    submit((\"%s\"))\n", strings.ReplaceAll(submitLabel, "\"", "'"))

	for i, step := range def.Steps {
		from := sanitizeMermaidID(step.ID)
		if i == def.Len()-1 {
			fmt.Fprintf(&sb, "    %s -- \"Next\" --> submit\n", from)
			break
		}
		to := sanitizeMermaidID(def.Steps[i+1].ID)
		fmt.Fprintf(&sb, "    %s -- \"Next\" --> %s\n", from, to)
		fmt.Fprintf(&sb, "    %s -. \"Back\" .-> %s\n", to, from)
	}

	if def.CancelOnFirstBack && def.Len() > 0 {
		sb.WriteString("    cancel((\"Cancel\"))\n")
		fmt.Fprintf(&sb, "    %s -. \"Back\" .-> cancel\n", sanitizeMermaidID(def.Steps[0].ID))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, id := range overlay.VisitedSteps {
			safeID := sanitizeMermaidID(id)
			if !seen[safeID] && safeID != "" {
				seen[safeID] = true
				fmt.Fprintf(&sb, "    class %s visited;\n", safeID)
			}
		}

		if overlay.CurrentStep != "" {
			fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(overlay.CurrentStep))
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
