package flow

import (
	"fmt"

	"github.com/AI-call-center/modern-dashboard/pkg/schema"
	"github.com/AI-call-center/modern-dashboard/pkg/validation"
)

// Rule kinds understood by Rule.Compile.
const (
	RuleRequired     = "required"
	RuleMinLength    = "min_length"
	RuleOneOf        = "one_of"
	RuleMinItems     = "min_items"
	RuleEachRequired = "each_required"
	RuleTimeRange    = "time_range"
	RuleSchema       = "schema"
)

// Rule is the declarative form of a validation.Validator.
type Rule struct {
	Kind    string `yaml:"kind"`
	Field   string `yaml:"field,omitempty"`
	Message string `yaml:"message,omitempty"`

	// Min is the bound of min_length and min_items.
	Min int `yaml:"min,omitempty"`
	// Options are the accepted values of one_of.
	Options []string `yaml:"options,omitempty"`
	// Columns are the mandatory row keys of each_required.
	Columns []string `yaml:"columns,omitempty"`
	// Start and End are the fields of time_range.
	Start string `yaml:"start,omitempty"`
	End   string `yaml:"end,omitempty"`
	// Types maps fields to schema type names for schema rules.
	Types map[string]string `yaml:"types,omitempty"`
}

// Compile turns the rule into a validator.
func (r Rule) Compile() (validation.Validator, error) {
	if err := r.check(); err != nil {
		return nil, err
	}
	switch r.Kind {
	case RuleRequired:
		return validation.Required(r.Field, r.Message), nil
	case RuleMinLength:
		return validation.MinLength(r.Field, r.Min, r.Message), nil
	case RuleOneOf:
		return validation.OneOf(r.Field, r.Options, r.Message), nil
	case RuleMinItems:
		return validation.MinItems(r.Field, r.Min, r.Message), nil
	case RuleEachRequired:
		return validation.EachRequired(r.Field, r.Columns, r.Message), nil
	case RuleTimeRange:
		return validation.TimeRange(r.Start, r.End, r.Message), nil
	case RuleSchema:
		s, err := schema.ParseTypeMap(r.Types)
		if err != nil {
			return nil, err
		}
		return validation.Schema(s), nil
	}
	return nil, fmt.Errorf("unknown rule kind %q", r.Kind)
}

func (r Rule) check() error {
	switch r.Kind {
	case RuleRequired, RuleMinLength, RuleOneOf, RuleMinItems, RuleEachRequired:
		if r.Field == "" {
			return fmt.Errorf("%s rule needs a field", r.Kind)
		}
	case RuleTimeRange:
		if r.Start == "" || r.End == "" {
			return fmt.Errorf("time_range rule needs start and end")
		}
		return nil
	case RuleSchema:
		if len(r.Types) == 0 {
			return fmt.Errorf("schema rule needs types")
		}
		if _, err := schema.ParseTypeMap(r.Types); err != nil {
			return err
		}
		return nil
	case "":
		return fmt.Errorf("missing rule kind")
	default:
		return fmt.Errorf("unknown rule kind %q", r.Kind)
	}

	switch r.Kind {
	case RuleMinLength, RuleMinItems:
		if r.Min <= 0 {
			return fmt.Errorf("%s rule needs a positive min", r.Kind)
		}
	case RuleOneOf:
		if len(r.Options) == 0 {
			return fmt.Errorf("one_of rule needs options")
		}
	case RuleEachRequired:
		if len(r.Columns) == 0 {
			return fmt.Errorf("each_required rule needs columns")
		}
	}
	return nil
}
