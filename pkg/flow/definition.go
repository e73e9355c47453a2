package flow

import (
	"fmt"
	"io/fs"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/AI-call-center/modern-dashboard/pkg/domain"
	"github.com/AI-call-center/modern-dashboard/pkg/validation"
)

// Definition is the static configuration of one wizard.
// It is immutable once built; the controller never modifies it.
type Definition struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title,omitempty"`
	SubmitLabel string `yaml:"submit_label,omitempty"`

	// CancelOnFirstBack turns Back on the first step into Cancel.
	CancelOnFirstBack bool `yaml:"cancel_on_first_back,omitempty"`

	Steps    []domain.StepDefinition `yaml:"steps"`
	Defaults map[string]domain.Slice `yaml:"defaults"`
	Rules    map[string][]Rule       `yaml:"rules,omitempty"`
	Fields   map[string][]Field      `yaml:"fields,omitempty"`

	// validators are attached in code by the Builder and run after Rules.
	validators map[string][]validation.Validator
}

// Parse decodes and validates a YAML flow definition.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to decode flow: %w", err)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Load reads a flow definition from fsys.
func Load(fsys fs.FS, path string) (*Definition, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read flow %s: %w", path, err)
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// LoadDir reads every *.yaml and *.yml file at the root of fsys.
func LoadDir(fsys fs.FS) ([]*Definition, error) {
	var defs []*Definition
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := fs.Glob(fsys, pattern)
		if err != nil {
			return nil, err
		}
		for _, path := range matches {
			def, err := Load(fsys, path)
			if err != nil {
				return nil, err
			}
			defs = append(defs, def)
		}
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })
	return defs, nil
}

// Marshal encodes the definition back to YAML.
// Validators attached in code are not representable and are dropped.
func (d *Definition) Marshal() ([]byte, error) {
	return yaml.Marshal(d)
}

// Len returns the number of steps.
func (d *Definition) Len() int {
	return len(d.Steps)
}

// Step returns the step at index i.
func (d *Definition) Step(i int) (domain.StepDefinition, bool) {
	if i < 0 || i >= len(d.Steps) {
		return domain.StepDefinition{}, false
	}
	return d.Steps[i], true
}

// StepIndex returns the position of the step with the given ID, or -1.
func (d *Definition) StepIndex(id string) int {
	for i, s := range d.Steps {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// StepForSlice returns the step owning sliceKey.
func (d *Definition) StepForSlice(sliceKey string) (domain.StepDefinition, bool) {
	for _, s := range d.Steps {
		if s.SliceKey == sliceKey {
			return s, true
		}
	}
	return domain.StepDefinition{}, false
}

// SliceKeys returns the slice keys in step order.
func (d *Definition) SliceKeys() []string {
	keys := make([]string, len(d.Steps))
	for i, s := range d.Steps {
		keys[i] = s.SliceKey
	}
	return keys
}

// FieldsFor returns the renderer metadata of a slice.
func (d *Definition) FieldsFor(sliceKey string) []Field {
	return d.Fields[sliceKey]
}

// Registry compiles the rules and in-code validators into a validation registry.
// Slices without any rule are registered with validation.AlwaysValid.
func (d *Definition) Registry() (*validation.Registry, error) {
	reg := validation.NewRegistry()
	for _, step := range d.Steps {
		key := step.SliceKey
		var validators []validation.Validator
		for i, rule := range d.Rules[key] {
			v, err := rule.Compile()
			if err != nil {
				return nil, fmt.Errorf("flow %q: rule %d of %s: %w", d.ID, i, key, err)
			}
			validators = append(validators, v)
		}
		validators = append(validators, d.validators[key]...)

		switch len(validators) {
		case 0:
			reg.Register(key, validation.AlwaysValid)
		case 1:
			reg.Register(key, validators[0])
		default:
			reg.Register(key, validation.All(validators...))
		}
	}
	return reg, nil
}

// Validate reports every configuration problem at once.
func (d *Definition) Validate() error {
	var problems []string
	addf := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if d.ID == "" {
		addf("missing id")
	}
	if len(d.Steps) == 0 {
		addf("at least one step is required")
	}

	ids := make(map[string]int)
	slices := make(map[string]string)
	for i, s := range d.Steps {
		if s.ID == "" {
			addf("step %d: missing id", i)
		} else if prev, dup := ids[s.ID]; dup {
			addf("step %d: id %q already used by step %d", i, s.ID, prev)
		} else {
			ids[s.ID] = i
		}

		if s.SliceKey == "" {
			addf("step %q: missing slice", s.ID)
			continue
		}
		if owner, dup := slices[s.SliceKey]; dup {
			addf("step %q: slice %q already owned by step %q", s.ID, s.SliceKey, owner)
		} else {
			slices[s.SliceKey] = s.ID
		}
		if _, ok := d.Defaults[s.SliceKey]; !ok {
			addf("step %q: no default for slice %q", s.ID, s.SliceKey)
		}
	}

	for _, key := range sortedKeys(d.Defaults) {
		if _, ok := slices[key]; !ok {
			addf("default %q: no step owns this slice", key)
		}
	}
	for _, key := range sortedKeys(d.Rules) {
		if _, ok := slices[key]; !ok {
			addf("rules %q: no step owns this slice", key)
			continue
		}
		for i, rule := range d.Rules[key] {
			if err := rule.check(); err != nil {
				addf("rules %q[%d]: %v", key, i, err)
			}
		}
	}
	for _, key := range sortedKeys(d.Fields) {
		if _, ok := slices[key]; !ok {
			addf("fields %q: no step owns this slice", key)
		}
	}

	if len(problems) > 0 {
		return &domain.FlowError{FlowID: d.ID, Problems: problems}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
