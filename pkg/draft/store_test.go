package draft_test

import (
	"testing"

	"github.com/AI-call-center/modern-dashboard/pkg/domain"
	"github.com/AI-call-center/modern-dashboard/pkg/draft"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func agentDefaults() map[string]domain.Slice {
	return map[string]domain.Slice{
		"basicInfo": {"name": "", "voice": "Christopher", "tone": "professional"},
		"behaviour": {"greeting": "", "prompt": "", "variables": []any{}},
		"actions":   {"selectedActions": []any{}},
	}
}

func TestInitialize(t *testing.T) {
	defaults := agentDefaults()
	d := draft.Initialize(defaults)

	if diff := cmp.Diff(map[string]domain.Slice(d), defaults); diff != "" {
		t.Errorf("Initialize() mismatch (-got +want):\n%s", diff)
	}

	t.Run("Defaults Are Not Aliased", func(t *testing.T) {
		d["basicInfo"]["name"] = "mutated"
		assert.Equal(t, "", defaults["basicInfo"]["name"])
		assert.False(t, domain.SameSlice(d["behaviour"], defaults["behaviour"]))
	})

	t.Run("Nil Default Still Creates Slice", func(t *testing.T) {
		d := draft.Initialize(map[string]domain.Slice{"review": nil})
		assert.True(t, d.Has("review"))
		assert.NotNil(t, d["review"])
	})
}

func TestMergeSlice(t *testing.T) {
	d := draft.Initialize(map[string]domain.Slice{
		"basic": {"a": 1, "b": 2},
		"other": {"c": 3},
	})

	next, err := draft.MergeSlice(d, "basic", domain.Slice{"b": 5})
	require.NoError(t, err)

	t.Run("Preserves Untouched Fields", func(t *testing.T) {
		if diff := cmp.Diff(domain.Slice{"a": 1, "b": 5}, next["basic"]); diff != "" {
			t.Errorf("merged slice mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Other Slices Are Reference Stable", func(t *testing.T) {
		assert.True(t, domain.SameSlice(d["other"], next["other"]))
		assert.Equal(t, domain.Slice{"c": 3}, next["other"])
	})

	t.Run("Input Draft Untouched", func(t *testing.T) {
		assert.Equal(t, domain.Slice{"a": 1, "b": 2}, d["basic"])
		assert.False(t, domain.SameSlice(d["basic"], next["basic"]))
	})

	t.Run("Adds New Field", func(t *testing.T) {
		again, err := draft.MergeSlice(next, "basic", domain.Slice{"z": "new"})
		require.NoError(t, err)
		assert.Equal(t, domain.Slice{"a": 1, "b": 5, "z": "new"}, again["basic"])
	})
}

func TestMergeSlice_UnknownKey(t *testing.T) {
	d := draft.Initialize(agentDefaults())
	before := draft.Clone(d)

	got, err := draft.MergeSlice(d, "not-a-real-step", domain.Slice{"x": 1})

	var unknown *domain.UnknownSliceError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "not-a-real-step", unknown.Key)
	assert.False(t, got.Has("not-a-real-step"))
	assert.False(t, d.Has("not-a-real-step"))
	if diff := cmp.Diff(before, d); diff != "" {
		t.Errorf("draft changed after rejected merge:\n%s", diff)
	}
}

func TestReplaceSlice(t *testing.T) {
	d := draft.Initialize(agentDefaults())

	rows := []any{map[string]any{"key": "account", "value": "42"}}
	next, err := draft.ReplaceSlice(d, "behaviour", domain.Slice{"variables": rows})
	require.NoError(t, err)

	assert.Equal(t, domain.Slice{"variables": rows}, next["behaviour"])
	assert.True(t, domain.SameSlice(d["basicInfo"], next["basicInfo"]))
	assert.Equal(t, "", d["behaviour"]["greeting"], "original draft keeps its slice")

	t.Run("Nil Value Becomes Empty Slice", func(t *testing.T) {
		cleared, err := draft.ReplaceSlice(d, "actions", nil)
		require.NoError(t, err)
		assert.True(t, cleared.Has("actions"))
		assert.Empty(t, cleared["actions"])
	})

	t.Run("Caller Changes Do Not Leak In", func(t *testing.T) {
		value := domain.Slice{"name": "C", "tags": []any{"vip"}}
		replaced, err := draft.ReplaceSlice(d, "basicInfo", value)
		require.NoError(t, err)

		value["name"] = ""
		value["tags"].([]any)[0] = "spam"

		assert.Equal(t, "C", replaced["basicInfo"]["name"])
		assert.Equal(t, []any{"vip"}, replaced["basicInfo"]["tags"])
	})

	t.Run("Unknown Key", func(t *testing.T) {
		_, err := draft.ReplaceSlice(d, "ghost", domain.Slice{})
		var unknown *domain.UnknownSliceError
		assert.ErrorAs(t, err, &unknown)
	})
}

func TestClone_DeepCopiesRows(t *testing.T) {
	d := domain.Draft{
		"behaviour": {"variables": []any{map[string]any{"key": "a"}}},
		"actions":   {"selectedActions": []string{"transfer"}},
	}
	c := draft.Clone(d)

	c["behaviour"]["variables"].([]any)[0].(map[string]any)["key"] = "b"
	c["actions"]["selectedActions"].([]string)[0] = "hangup"

	assert.Equal(t, "a", d["behaviour"]["variables"].([]any)[0].(map[string]any)["key"])
	assert.Equal(t, "transfer", d["actions"]["selectedActions"].([]string)[0])
	assert.Nil(t, draft.Clone(nil))
}
