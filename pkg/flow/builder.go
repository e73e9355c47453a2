package flow

import (
	"github.com/AI-call-center/modern-dashboard/pkg/domain"
	"github.com/AI-call-center/modern-dashboard/pkg/validation"
)

// Builder assembles a Definition in Go.
type Builder struct {
	def   Definition
	steps []*StepBuilder
}

// New creates a builder for the flow id.
func New(id string) *Builder {
	return &Builder{
		def: Definition{
			ID:         id,
			Defaults:   make(map[string]domain.Slice),
			Rules:      make(map[string][]Rule),
			Fields:     make(map[string][]Field),
			validators: make(map[string][]validation.Validator),
		},
	}
}

// Title sets the flow title.
func (b *Builder) Title(title string) *Builder {
	b.def.Title = title
	return b
}

// SubmitLabel sets the label of the final Next.
func (b *Builder) SubmitLabel(label string) *Builder {
	b.def.SubmitLabel = label
	return b
}

// CancelOnFirstBack makes Back on the first step cancel the wizard.
func (b *Builder) CancelOnFirstBack() *Builder {
	b.def.CancelOnFirstBack = true
	return b
}

// Step appends a step owning sliceKey.
// If a step with the same ID exists, it returns the existing builder.
func (b *Builder) Step(id, sliceKey string) *StepBuilder {
	for _, sb := range b.steps {
		if sb.step.ID == id {
			return sb
		}
	}
	sb := &StepBuilder{
		step:    domain.StepDefinition{ID: id, Title: id, SliceKey: sliceKey},
		builder: b,
	}
	b.steps = append(b.steps, sb)
	if _, ok := b.def.Defaults[sliceKey]; !ok {
		b.def.Defaults[sliceKey] = domain.Slice{}
	}
	return sb
}

// Build validates and returns the definition.
func (b *Builder) Build() (*Definition, error) {
	def := b.def
	def.Defaults = copyMap(b.def.Defaults)
	def.Rules = copyMap(b.def.Rules)
	def.Fields = copyMap(b.def.Fields)
	def.validators = copyMap(b.def.validators)
	def.Steps = make([]domain.StepDefinition, len(b.steps))
	for i, sb := range b.steps {
		def.Steps[i] = sb.step
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// MustBuild is like Build but panics on error. Intended for tests and
// package-level flows.
func (b *Builder) MustBuild() *Definition {
	def, err := b.Build()
	if err != nil {
		panic(err)
	}
	return def
}

// StepBuilder configures one step.
type StepBuilder struct {
	step    domain.StepDefinition
	builder *Builder
}

// Title sets the step title.
func (s *StepBuilder) Title(title string) *StepBuilder {
	s.step.Title = title
	return s
}

// Icon sets the step icon name.
func (s *StepBuilder) Icon(icon string) *StepBuilder {
	s.step.Icon = icon
	return s
}

// Describe sets the step description.
func (s *StepBuilder) Describe(text string) *StepBuilder {
	s.step.Description = text
	return s
}

// Defaults sets the initial value of the step's slice.
func (s *StepBuilder) Defaults(values domain.Slice) *StepBuilder {
	if values == nil {
		values = domain.Slice{}
	}
	s.builder.def.Defaults[s.step.SliceKey] = values
	return s
}

// Rule adds a declarative rule.
func (s *StepBuilder) Rule(r Rule) *StepBuilder {
	key := s.step.SliceKey
	s.builder.def.Rules[key] = append(s.builder.def.Rules[key], r)
	return s
}

// Require is shorthand for a required rule.
func (s *StepBuilder) Require(field, message string) *StepBuilder {
	return s.Rule(Rule{Kind: RuleRequired, Field: field, Message: message})
}

// Validate attaches a validator written in Go.
func (s *StepBuilder) Validate(v validation.Validator) *StepBuilder {
	key := s.step.SliceKey
	s.builder.def.validators[key] = append(s.builder.def.validators[key], v)
	return s
}

// Field adds renderer metadata.
func (s *StepBuilder) Field(f Field) *StepBuilder {
	key := s.step.SliceKey
	s.builder.def.Fields[key] = append(s.builder.def.Fields[key], f)
	return s
}

// Step starts the next step.
func (s *StepBuilder) Step(id, sliceKey string) *StepBuilder {
	return s.builder.Step(id, sliceKey)
}

// Build finishes the flow.
func (s *StepBuilder) Build() (*Definition, error) {
	return s.builder.Build()
}

func copyMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
