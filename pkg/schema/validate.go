package schema

import (
	"fmt"
	"sort"

	"github.com/AI-call-center/modern-dashboard/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Schema is a map of field names to their expected types.
type Schema map[string]Type

// ParseTypeMap builds a Schema from field -> type name pairs.
func ParseTypeMap(raw map[string]string) (Schema, error) {
	s := make(Schema, len(raw))
	for _, field := range sortedKeys(raw) {
		typ, err := ParseType(raw[field])
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field, err)
		}
		s[field] = typ
	}
	return s, nil
}

// TypeMap is the inverse of ParseTypeMap.
func (s Schema) TypeMap() map[string]string {
	out := make(map[string]string, len(s))
	for field, typ := range s {
		out[field] = typ.Name()
	}
	return out
}

// UnmarshalYAML reads a schema written as a map of type names.
func (s *Schema) UnmarshalYAML(node *yaml.Node) error {
	var raw map[string]string
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	parsed, err := ParseTypeMap(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// MarshalYAML writes the schema as a map of type names.
func (s Schema) MarshalYAML() (any, error) {
	return s.TypeMap(), nil
}

// Check validates every schema field against the slice.
// Missing fields are reported; fields not in the schema are ignored.
// It returns nil when the slice conforms.
func Check(s Schema, slice domain.Slice) domain.FieldErrors {
	if len(s) == 0 {
		return nil
	}

	errs := make(domain.FieldErrors)
	for field, typ := range s {
		value, exists := slice[field]
		if !exists {
			errs[field] = fmt.Sprintf("%s is missing", field)
			continue
		}
		if err := typ.Validate(value); err != nil {
			errs[field] = err.Error()
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
