package flow

// FieldKind tells a renderer which input widget to use.
type FieldKind string

const (
	FieldText        FieldKind = "text"
	FieldTextarea    FieldKind = "textarea"
	FieldSelect      FieldKind = "select"
	FieldMultiSelect FieldKind = "multiselect"
	FieldRows        FieldKind = "rows"
	FieldTime        FieldKind = "time"
)

// Field describes one input of a step. It is renderer metadata only:
// the controller never reads it.
type Field struct {
	Name        string    `yaml:"name"`
	Label       string    `yaml:"label,omitempty"`
	Kind        FieldKind `yaml:"kind,omitempty"`
	Help        string    `yaml:"help,omitempty"`
	Placeholder string    `yaml:"placeholder,omitempty"`

	// Options lists the choices of select and multiselect fields.
	Options []string `yaml:"options,omitempty"`
	// Columns lists the keys of each row of a rows field.
	Columns []string `yaml:"columns,omitempty"`
	// Template names a template category offered for this field.
	Template string `yaml:"template,omitempty"`
}

// LabelOrName returns the label, falling back to the field name.
func (f Field) LabelOrName() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}
