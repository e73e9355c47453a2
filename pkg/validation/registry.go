package validation

import (
	"sort"

	"github.com/AI-call-center/modern-dashboard/pkg/domain"
)

// Validator decides whether a slice value permits advancing past its step.
// Implementations must be pure: same input, same result, no side effects.
type Validator func(domain.Slice) domain.ValidationResult

// AlwaysValid is the validator of steps that impose no requirement.
func AlwaysValid(domain.Slice) domain.ValidationResult {
	return domain.Valid()
}

// Registry maps slice keys to validators.
// The zero value is not usable; use NewRegistry. A nil *Registry validates
// everything as AlwaysValid.
type Registry struct {
	validators map[string]Validator
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{validators: make(map[string]Validator)}
}

// Register binds a validator to a slice key, replacing any previous one.
// A nil validator registers AlwaysValid.
func (r *Registry) Register(sliceKey string, v Validator) *Registry {
	if v == nil {
		v = AlwaysValid
	}
	r.validators[sliceKey] = v
	return r
}

// Lookup returns the validator bound to sliceKey.
// The boolean is false when the key falls back to AlwaysValid.
func (r *Registry) Lookup(sliceKey string) (Validator, bool) {
	if r == nil {
		return AlwaysValid, false
	}
	v, ok := r.validators[sliceKey]
	if !ok {
		return AlwaysValid, false
	}
	return v, true
}

// Validate runs the validator bound to sliceKey.
func (r *Registry) Validate(sliceKey string, s domain.Slice) domain.ValidationResult {
	v, _ := r.Lookup(sliceKey)
	return v(s)
}

// Keys lists the slice keys with an explicit validator.
func (r *Registry) Keys() []string {
	if r == nil {
		return nil
	}
	keys := make([]string, 0, len(r.validators))
	for k := range r.validators {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
