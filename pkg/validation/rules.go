package validation

import (
	"fmt"
	"reflect"
	"strings"
	"time"
	"unicode"

	"github.com/AI-call-center/modern-dashboard/pkg/domain"
	"github.com/AI-call-center/modern-dashboard/pkg/schema"
)

// All combines validators. Every validator runs; for a field reported twice
// the earlier message wins.
func All(validators ...Validator) Validator {
	return func(s domain.Slice) domain.ValidationResult {
		res := domain.Valid()
		for _, v := range validators {
			if v == nil {
				continue
			}
			res = res.Merge(v(s))
		}
		return res
	}
}

// Required fails when field is missing, nil, blank text or an empty list.
func Required(field, message string) Validator {
	if message == "" {
		message = Humanize(field) + " is required"
	}
	return func(s domain.Slice) domain.ValidationResult {
		if isBlank(lookup(s, field)) {
			return fail(field, message)
		}
		return domain.Valid()
	}
}

// MinLength fails when a text field is shorter than n runes.
// Blank values pass; combine with Required to forbid them.
func MinLength(field string, n int, message string) Validator {
	if message == "" {
		message = fmt.Sprintf("%s must be at least %d characters", Humanize(field), n)
	}
	return func(s domain.Slice) domain.ValidationResult {
		text, ok := lookup(s, field).(string)
		if !ok || strings.TrimSpace(text) == "" {
			return domain.Valid()
		}
		if len([]rune(strings.TrimSpace(text))) < n {
			return fail(field, message)
		}
		return domain.Valid()
	}
}

// OneOf fails when a field holds a value outside options.
// For list fields every item is checked. Blank values pass.
func OneOf(field string, options []string, message string) Validator {
	allowed := make(map[string]struct{}, len(options))
	for _, o := range options {
		allowed[o] = struct{}{}
	}
	return func(s domain.Slice) domain.ValidationResult {
		value := lookup(s, field)
		if isBlank(value) {
			return domain.Valid()
		}
		for _, item := range asList(value) {
			str := fmt.Sprint(item)
			if _, ok := allowed[str]; !ok {
				msg := message
				if msg == "" {
					msg = fmt.Sprintf("%s must be one of %s (got %q)", Humanize(field), strings.Join(options, ", "), str)
				}
				return fail(field, msg)
			}
		}
		return domain.Valid()
	}
}

// MinItems fails when a list field holds fewer than n items.
func MinItems(field string, n int, message string) Validator {
	if message == "" {
		message = fmt.Sprintf("Select at least %d %s", n, strings.ToLower(Humanize(field)))
	}
	return func(s domain.Slice) domain.ValidationResult {
		if len(asList(lookup(s, field))) < n {
			return fail(field, message)
		}
		return domain.Valid()
	}
}

// EachRequired checks that every row of a table field has the given columns
// filled in. The error names the first offending row (1-based).
func EachRequired(field string, columns []string, message string) Validator {
	return func(s domain.Slice) domain.ValidationResult {
		for i, row := range asList(lookup(s, field)) {
			values := asMap(row)
			for _, col := range columns {
				if isBlank(values[col]) {
					msg := message
					if msg == "" {
						msg = fmt.Sprintf("Row %d: %s is required", i+1, strings.ToLower(Humanize(col)))
					}
					return fail(field, msg)
				}
			}
		}
		return domain.Valid()
	}
}

// TimeRange requires two "HH:MM" fields with end strictly after start.
// The error is reported on the end field.
func TimeRange(startField, endField, message string) Validator {
	return func(s domain.Slice) domain.ValidationResult {
		start, errStart := parseClock(lookup(s, startField))
		end, errEnd := parseClock(lookup(s, endField))
		switch {
		case errStart != nil:
			return fail(startField, Humanize(startField)+" must be a time (HH:MM)")
		case errEnd != nil:
			return fail(endField, Humanize(endField)+" must be a time (HH:MM)")
		case !end.After(start):
			msg := message
			if msg == "" {
				msg = fmt.Sprintf("%s must be after %s", Humanize(endField), strings.ToLower(Humanize(startField)))
			}
			return fail(endField, msg)
		}
		return domain.Valid()
	}
}

// Schema checks field types with a schema.Schema.
func Schema(s schema.Schema) Validator {
	return func(slice domain.Slice) domain.ValidationResult {
		return domain.Invalid(schema.Check(s, slice))
	}
}

// Humanize turns a field name such as "firstMessage" or "first_message"
// into "First message".
func Humanize(field string) string {
	var b strings.Builder
	for i, r := range field {
		switch {
		case r == '_' || r == '-' || r == '.':
			b.WriteRune(' ')
		case i > 0 && unicode.IsUpper(r):
			b.WriteRune(' ')
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	out := b.String()
	if out == "" {
		return out
	}
	runes := []rune(out)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// lookup resolves a dotted path ("timeRange.start") inside nested objects.
func lookup(s domain.Slice, path string) any {
	if v, ok := s[path]; ok {
		return v
	}
	parts := strings.Split(path, ".")
	var current any = map[string]any(s)
	for _, part := range parts {
		m := asMap(current)
		if m == nil {
			return nil
		}
		current = m[part]
	}
	return current
}

func fail(field, message string) domain.ValidationResult {
	return domain.Invalid(domain.FieldErrors{field: message})
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	}
	return false
}

func asList(v any) []any {
	if v == nil {
		return nil
	}
	if list, ok := v.([]any); ok {
		return list
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []any{v}
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

func asMap(v any) map[string]any {
	switch m := v.(type) {
	case map[string]any:
		return m
	case domain.Slice:
		return m
	case map[string]string:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[k] = val
		}
		return out
	}
	return nil
}

func parseClock(v any) (time.Time, error) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, fmt.Errorf("not a string")
	}
	return time.Parse(schema.ClockLayout, s)
}
