package domain

import (
	"reflect"
)

// DraftDiff holds the changed fields per slice key.
// A deleted field (or slice) is present with a nil value.
// Hosts merge these updates into their local copy of the draft.
type DraftDiff map[string]map[string]any

// IsEmpty checks if the diff contains any change.
func (d DraftDiff) IsEmpty() bool {
	return len(d) == 0
}

// DiffDrafts calculates the difference between oldDraft and newDraft.
// If oldDraft is nil, every field of newDraft is reported (initial load).
// Slices that are the same map instance are skipped without inspection.
func DiffDrafts(oldDraft, newDraft Draft) DraftDiff {
	delta := make(DraftDiff)

	for key, newSlice := range newDraft {
		oldSlice, exists := oldDraft[key]
		if exists && SameSlice(oldSlice, newSlice) {
			continue
		}
		if changed := diffSlice(oldSlice, newSlice); len(changed) > 0 {
			delta[key] = changed
		}
	}

	for key := range oldDraft {
		if _, exists := newDraft[key]; !exists {
			delta[key] = nil
		}
	}

	if len(delta) == 0 {
		return nil
	}
	return delta
}

func diffSlice(old, new Slice) map[string]any {
	changed := make(map[string]any)

	for field, newVal := range new {
		oldVal, exists := old[field]
		if !exists || !reflect.DeepEqual(oldVal, newVal) {
			changed[field] = newVal
		}
	}

	for field := range old {
		if _, exists := new[field]; !exists {
			changed[field] = nil
		}
	}

	return changed
}
