package draft

import (
	"github.com/AI-call-center/modern-dashboard/pkg/domain"
)

// DefaultHistoryLimit bounds how many drafts History keeps for undo.
const DefaultHistoryLimit = 50

// History keeps previous drafts for undo/redo.
// Drafts are immutable values, so recording one only stores a reference.
type History struct {
	past   []domain.Draft
	future []domain.Draft
	limit  int
}

// NewHistory creates a history bounded to limit entries (DefaultHistoryLimit if <= 0).
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

// Record stores prev as the state to restore on the next Undo.
// Any redo branch is dropped.
func (h *History) Record(prev domain.Draft) {
	h.past = append(h.past, prev)
	if len(h.past) > h.limit {
		h.past = h.past[len(h.past)-h.limit:]
	}
	h.future = nil
}

// Undo returns the draft preceding current.
func (h *History) Undo(current domain.Draft) (domain.Draft, error) {
	if len(h.past) == 0 {
		return current, domain.ErrNothingToUndo
	}
	prev := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = append(h.future, current)
	return prev, nil
}

// Redo re-applies the draft undone last.
func (h *History) Redo(current domain.Draft) (domain.Draft, error) {
	if len(h.future) == 0 {
		return current, domain.ErrNothingToRedo
	}
	next := h.future[len(h.future)-1]
	h.future = h.future[:len(h.future)-1]
	h.past = append(h.past, current)
	return next, nil
}

// Len returns the number of available undo and redo steps.
func (h *History) Len() (undo, redo int) {
	return len(h.past), len(h.future)
}

// Reset forgets everything.
func (h *History) Reset() {
	h.past = nil
	h.future = nil
}
