package prompt

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AI-call-center/modern-dashboard/pkg/domain"
	"github.com/AI-call-center/modern-dashboard/pkg/flow"
	"github.com/AI-call-center/modern-dashboard/pkg/schema"
	"github.com/AI-call-center/modern-dashboard/pkg/templates"
)

// Form asks for the fields of one step.
type Form struct {
	driver    Driver
	templates *templates.Catalog
}

// NewForm creates a form. catalog may be nil, in which case fields never
// offer templates.
func NewForm(driver Driver, catalog *templates.Catalog) *Form {
	return &Form{driver: driver, templates: catalog}
}

// AskStep prompts every field of the step and returns the partial to merge
// into its slice. Dotted fields ("timeRange.start") are folded into their
// top-level value so the partial can be merged shallowly.
func (f *Form) AskStep(ctx context.Context, fields []flow.Field, current domain.Slice) (domain.Slice, error) {
	partial := domain.Slice{}
	for _, field := range fields {
		existing := lookup(partial, current, field.Name)
		value, err := f.askField(ctx, field, existing)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", field.Name, err)
		}
		setPath(partial, current, field.Name, value)
	}
	return partial, nil
}

func (f *Form) askField(ctx context.Context, field flow.Field, existing any) (any, error) {
	label := field.LabelOrName()

	switch field.Kind {
	case flow.FieldSelect:
		idx, err := f.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      field.Options,
			DefaultIndex: indexOf(field.Options, fmt.Sprint(existing)),
			Help:         field.Help,
		})
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(field.Options) {
			return existing, nil
		}
		return field.Options[idx], nil

	case flow.FieldMultiSelect:
		picked, err := f.driver.MultiSelect(ctx, SelectConfig{
			Message:  label,
			Options:  field.Options,
			Defaults: indicesOf(field.Options, toStrings(existing)),
			Help:     field.Help,
		})
		if err != nil {
			return nil, err
		}
		out := make([]any, 0, len(picked))
		for _, idx := range picked {
			out = append(out, field.Options[idx])
		}
		return out, nil

	case flow.FieldRows:
		return f.askRows(ctx, field, existing)

	case flow.FieldTextarea:
		def, err := f.templateDefault(ctx, field, existing)
		if err != nil {
			return nil, err
		}
		return f.driver.TextArea(ctx, TextAreaConfig{Message: label, Default: def, Help: field.Help})

	case flow.FieldTime:
		return f.driver.Input(ctx, InputConfig{
			Message:   label + " (HH:MM)",
			Default:   stringOf(existing),
			Help:      field.Help,
			Validator: validateClock,
		})

	default:
		def, err := f.templateDefault(ctx, field, existing)
		if err != nil {
			return nil, err
		}
		return f.driver.Input(ctx, InputConfig{Message: label, Default: def, Help: field.Help})
	}
}

// templateDefault offers the field's template category when the field is
// still empty and returns the chosen content, or the existing value.
func (f *Form) templateDefault(ctx context.Context, field flow.Field, existing any) (string, error) {
	current := stringOf(existing)
	if field.Template == "" || f.templates == nil || strings.TrimSpace(current) != "" {
		return current, nil
	}
	list := f.templates.ByKind(templates.Kind(field.Template))
	if len(list) == 0 {
		return current, nil
	}

	options := []string{"Write my own"}
	for _, t := range list {
		options = append(options, templateLabel(t))
	}
	idx, err := f.driver.Select(ctx, SelectConfig{
		Message:  "Start " + strings.ToLower(field.LabelOrName()) + " from a template?",
		Options:  options,
		PageSize: 10,
	})
	if err != nil {
		return "", err
	}
	if idx <= 0 {
		return current, nil
	}
	return list[idx-1].Content, nil
}

func (f *Form) askRows(ctx context.Context, field flow.Field, existing any) (any, error) {
	var rows []any
	if list, ok := existing.([]any); ok {
		rows = append(rows, list...)
	}

	if len(rows) > 0 {
		keep, err := f.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("Keep the %d existing %s?", len(rows), strings.ToLower(field.LabelOrName())),
			Default: true,
		})
		if err != nil {
			return nil, err
		}
		if !keep {
			rows = nil
		}
	}

	for {
		more, err := f.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("Add a row to %s?", strings.ToLower(field.LabelOrName())),
		})
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
		row := make(map[string]any, len(field.Columns))
		for _, col := range field.Columns {
			v, err := f.driver.Input(ctx, InputConfig{Message: "  " + col})
			if err != nil {
				return nil, err
			}
			row[col] = v
		}
		rows = append(rows, row)
	}

	if rows == nil {
		rows = []any{}
	}
	return rows, nil
}

func templateLabel(t templates.Template) string {
	if t.Title != "" {
		return t.Title
	}
	return t.ID
}

func validateClock(s string) error {
	if _, err := time.Parse(schema.ClockLayout, s); err != nil {
		return fmt.Errorf("expected HH:MM, got %q", s)
	}
	return nil
}

// lookup resolves a dotted field, preferring values already answered.
func lookup(partial, current domain.Slice, name string) any {
	head, rest, nested := strings.Cut(name, ".")
	src := current
	if _, ok := partial[head]; ok {
		src = partial
	}
	v := src[head]
	if !nested {
		return v
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	return lookup(nil, domain.Slice(m), rest)
}

// setPath writes value at name into partial. Nested values are copied
// before writing so current is never mutated and siblings survive the
// shallow merge.
func setPath(partial, current domain.Slice, name string, value any) {
	head, rest, nested := strings.Cut(name, ".")
	if !nested {
		partial[head] = value
		return
	}
	src, _ := partial[head].(map[string]any)
	if src == nil {
		src, _ = current[head].(map[string]any)
	}
	m := make(map[string]any, len(src)+1)
	for k, v := range src {
		m[k] = v
	}
	partial[head] = m
	setPath(domain.Slice(m), domain.Slice(m), rest, value)
}

func stringOf(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func toStrings(v any) []string {
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			out = append(out, fmt.Sprint(item))
		}
		return out
	}
	return nil
}
