package domain

// StepDefinition is the static descriptor of one wizard step.
// Its position in the flow is its order.
type StepDefinition struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Icon        string `json:"icon,omitempty" yaml:"icon,omitempty"`
	SliceKey    string `json:"slice" yaml:"slice"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}
