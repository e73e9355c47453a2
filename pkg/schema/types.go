package schema

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

// Type defines the contract for field validation.
type Type interface {
	// Name returns the type as written in flow files (e.g., "string", "[object]").
	Name() string
	// Validate checks if a value conforms to this type.
	Validate(value any) error
}

type stringType struct{}

func (stringType) Name() string { return "string" }

func (stringType) Validate(value any) error {
	if _, ok := value.(string); !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	return nil
}

type intType struct{}

func (intType) Name() string { return "int" }

func (intType) Validate(value any) error {
	switch v := value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return nil
	case float64:
		// JSON numbers arrive as float64
		if v == float64(int64(v)) {
			return nil
		}
		return fmt.Errorf("expected int, got fractional number")
	default:
		return fmt.Errorf("expected int, got %T", value)
	}
}

type floatType struct{}

func (floatType) Name() string { return "float" }

func (floatType) Validate(value any) error {
	switch value.(type) {
	case float32, float64, int, int8, int16, int32, int64:
		return nil
	default:
		return fmt.Errorf("expected number, got %T", value)
	}
}

type boolType struct{}

func (boolType) Name() string { return "bool" }

func (boolType) Validate(value any) error {
	if _, ok := value.(bool); !ok {
		return fmt.Errorf("expected bool, got %T", value)
	}
	return nil
}

// ClockLayout is the wall-clock format used by schedule fields.
const ClockLayout = "15:04"

type clockType struct{}

func (clockType) Name() string { return "time" }

func (clockType) Validate(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected time string, got %T", value)
	}
	if _, err := time.Parse(ClockLayout, s); err != nil {
		return fmt.Errorf("expected HH:MM, got %q", s)
	}
	return nil
}

type objectType struct{}

func (objectType) Name() string { return "object" }

func (objectType) Validate(value any) error {
	if value == nil {
		return fmt.Errorf("expected object, got nil")
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Map || rv.Kind() == reflect.Struct {
		return nil
	}
	return fmt.Errorf("expected object, got %T", value)
}

type anyType struct{}

func (anyType) Name() string { return "any" }

func (anyType) Validate(any) error { return nil }

type sliceType struct {
	elem Type
}

func (t sliceType) Name() string {
	return "[" + t.elem.Name() + "]"
}

func (t sliceType) Validate(value any) error {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return fmt.Errorf("expected list, got %T", value)
	}
	for i := 0; i < rv.Len(); i++ {
		if err := t.elem.Validate(rv.Index(i).Interface()); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	return nil
}

type customType struct {
	name     string
	validate func(any) error
}

func (t customType) Name() string { return t.name }

func (t customType) Validate(value any) error { return t.validate(value) }

// String matches string values.
func String() Type { return stringType{} }

// Int matches integers, including whole JSON numbers.
func Int() Type { return intType{} }

// Float matches any number.
func Float() Type { return floatType{} }

// Bool matches booleans.
func Bool() Type { return boolType{} }

// Clock matches "HH:MM" strings.
func Clock() Type { return clockType{} }

// Object matches maps and structs.
func Object() Type { return objectType{} }

// Any matches everything; it only asserts presence.
func Any() Type { return anyType{} }

// Slice matches lists whose items all match elem.
func Slice(elem Type) Type { return sliceType{elem: elem} }

// Custom wraps a user-defined check.
func Custom(name string, validate func(any) error) Type {
	return customType{name: name, validate: validate}
}

// ParseType converts a type name ("string", "[object]", ...) into a Type.
func ParseType(name string) (Type, error) {
	name = strings.TrimSpace(name)
	if len(name) > 2 && strings.HasPrefix(name, "[") && strings.HasSuffix(name, "]") {
		elem, err := ParseType(name[1 : len(name)-1])
		if err != nil {
			return nil, err
		}
		return Slice(elem), nil
	}

	switch name {
	case "string":
		return String(), nil
	case "int":
		return Int(), nil
	case "float":
		return Float(), nil
	case "bool":
		return Bool(), nil
	case "time":
		return Clock(), nil
	case "object":
		return Object(), nil
	case "any":
		return Any(), nil
	}
	return nil, fmt.Errorf("unknown type %q", name)
}
