package draft_test

import (
	"testing"

	"github.com/AI-call-center/modern-dashboard/pkg/domain"
	"github.com/AI-call-center/modern-dashboard/pkg/draft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_UndoRedo(t *testing.T) {
	h := draft.NewHistory(0)

	v0 := draft.Initialize(map[string]domain.Slice{"basic": {"name": ""}})
	v1, _ := draft.MergeSlice(v0, "basic", domain.Slice{"name": "A"})
	v2, _ := draft.MergeSlice(v1, "basic", domain.Slice{"name": "AB"})

	h.Record(v0)
	h.Record(v1)

	got, err := h.Undo(v2)
	require.NoError(t, err)
	assert.Equal(t, "A", got["basic"]["name"])

	got, err = h.Undo(got)
	require.NoError(t, err)
	assert.Equal(t, "", got["basic"]["name"])

	_, err = h.Undo(got)
	assert.ErrorIs(t, err, domain.ErrNothingToUndo)

	got, err = h.Redo(got)
	require.NoError(t, err)
	assert.Equal(t, "A", got["basic"]["name"])

	undo, redo := h.Len()
	assert.Equal(t, 1, undo)
	assert.Equal(t, 1, redo)

	t.Run("Record Drops Redo Branch", func(t *testing.T) {
		h.Record(got)
		_, err := h.Redo(got)
		assert.ErrorIs(t, err, domain.ErrNothingToRedo)
	})
}

func TestHistory_Limit(t *testing.T) {
	h := draft.NewHistory(2)
	for i := 0; i < 5; i++ {
		h.Record(domain.Draft{"s": {"i": i}})
	}
	undo, _ := h.Len()
	assert.Equal(t, 2, undo)

	got, err := h.Undo(nil)
	require.NoError(t, err)
	assert.Equal(t, 4, got["s"]["i"])

	h.Reset()
	undo, redo := h.Len()
	assert.Zero(t, undo)
	assert.Zero(t, redo)
}
