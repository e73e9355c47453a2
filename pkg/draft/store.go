package draft

import (
	"github.com/AI-call-center/modern-dashboard/pkg/domain"
)

// Initialize seeds a draft with a deep copy of every default slice.
// A nil default yields an empty slice so that the key still exists.
func Initialize(defaults map[string]domain.Slice) domain.Draft {
	d := make(domain.Draft, len(defaults))
	for key, slice := range defaults {
		d[key] = CloneSlice(slice)
	}
	return d
}

// MergeSlice returns a new draft where d[key] is shallow-merged with partial:
// keys in partial overwrite, other keys of the slice survive.
// All other slices are shared with d.
func MergeSlice(d domain.Draft, key string, partial domain.Slice) (domain.Draft, error) {
	current, ok := d[key]
	if !ok {
		return d, &domain.UnknownSliceError{Key: key}
	}

	merged := make(domain.Slice, len(current)+len(partial))
	for field, value := range current {
		merged[field] = value
	}
	for field, value := range partial {
		merged[field] = cloneValue(value)
	}

	return with(d, key, merged), nil
}

// ReplaceSlice returns a new draft where d[key] is replaced by value.
// Used when a step recomputes its whole slice (e.g. adding or removing a row).
// The draft keeps a copy of value, so later changes to value do not leak in.
func ReplaceSlice(d domain.Draft, key string, value domain.Slice) (domain.Draft, error) {
	if _, ok := d[key]; !ok {
		return d, &domain.UnknownSliceError{Key: key}
	}
	return with(d, key, CloneSlice(value)), nil
}

// Clone deep-copies a draft. The copy shares nothing with d.
func Clone(d domain.Draft) domain.Draft {
	if d == nil {
		return nil
	}
	out := make(domain.Draft, len(d))
	for key, slice := range d {
		out[key] = CloneSlice(slice)
	}
	return out
}

// CloneSlice deep-copies a slice value tree.
func CloneSlice(s domain.Slice) domain.Slice {
	out := make(domain.Slice, len(s))
	for field, value := range s {
		out[field] = cloneValue(value)
	}
	return out
}

func with(d domain.Draft, key string, slice domain.Slice) domain.Draft {
	next := make(domain.Draft, len(d))
	for k, v := range d {
		next[k] = v
	}
	next[key] = slice
	return next
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case domain.Slice:
		return CloneSlice(val)
	case map[string]any:
		return map[string]any(CloneSlice(val))
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	case []map[string]any:
		out := make([]map[string]any, len(val))
		for i, item := range val {
			out[i] = map[string]any(CloneSlice(item))
		}
		return out
	case []string:
		return append([]string(nil), val...)
	default:
		return v
	}
}
