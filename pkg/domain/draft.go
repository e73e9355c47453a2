package domain

import (
	"reflect"
	"sort"
)

// Slice is the portion of a Draft owned by exactly one step.
// Values are plain data: strings, numbers, bools, []any and map[string]any.
type Slice map[string]any

// Draft is the in-progress composite record, keyed by slice key.
// Drafts are treated as immutable values: updates build a new Draft and
// leave every untouched Slice shared with the previous one.
type Draft map[string]Slice

// Has reports whether the draft carries a slice for key.
func (d Draft) Has(key string) bool {
	_, ok := d[key]
	return ok
}

// Keys returns the slice keys in lexical order.
func (d Draft) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SameSlice reports whether a and b are the same map instance.
// Reactive hosts use it as a cheap "did this slice change" check.
func SameSlice(a, b Slice) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}
