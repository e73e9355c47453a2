package flow_test

import (
	"testing"

	"github.com/AI-call-center/modern-dashboard/pkg/domain"
	"github.com/AI-call-center/modern-dashboard/pkg/flow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltins(t *testing.T) {
	defs, err := flow.Builtins()
	require.NoError(t, err)

	ids := make([]string, len(defs))
	for i, d := range defs {
		ids[i] = d.ID
		_, err := d.Registry()
		assert.NoError(t, err, d.ID)
	}
	assert.Equal(t, []string{"agent", "campaign", "quick-agent"}, ids)
}

func TestBuiltin_Agent(t *testing.T) {
	def, err := flow.Builtin("agent")
	require.NoError(t, err)

	assert.Equal(t, []string{"basicInfo", "behaviour", "knowledge", "dataCollection", "actions"}, def.SliceKeys())
	assert.Equal(t, domain.Slice{"name": "", "voice": "Christopher", "tone": "professional"}, def.Defaults["basicInfo"])
	assert.Equal(t, "GPT 4.0", def.Defaults["knowledge"]["llm"])
	assert.False(t, def.CancelOnFirstBack)

	reg, err := def.Registry()
	require.NoError(t, err)

	t.Run("Name Is Required", func(t *testing.T) {
		res := reg.Validate("basicInfo", def.Defaults["basicInfo"])
		assert.Equal(t, domain.FieldErrors{"name": "Name is required"}, res.FieldErrors)
	})

	t.Run("Greeting Is Required", func(t *testing.T) {
		res := reg.Validate("behaviour", domain.Slice{"greeting": "", "variables": []any{}})
		assert.Equal(t, domain.FieldErrors{"greeting": "Greeting is required"}, res.FieldErrors)
	})

	t.Run("Variable Rows Need A Key", func(t *testing.T) {
		res := reg.Validate("behaviour", domain.Slice{
			"greeting":  "Hello!",
			"variables": []any{map[string]any{"key": "", "value": "x"}},
		})
		assert.Equal(t, "Row 1: key is required", res.FieldErrors["variables"])
	})

	t.Run("Empty Slices Pass", func(t *testing.T) {
		assert.True(t, reg.Validate("actions", def.Defaults["actions"]).Valid)
		assert.True(t, reg.Validate("dataCollection", def.Defaults["dataCollection"]).Valid)
	})

	t.Run("Fields", func(t *testing.T) {
		fields := def.FieldsFor("basicInfo")
		require.Len(t, fields, 3)
		assert.Equal(t, flow.FieldSelect, fields[1].Kind)
		assert.Contains(t, fields[1].Options, "Emma")
	})
}

func TestBuiltin_Campaign(t *testing.T) {
	def, err := flow.Builtin("campaign")
	require.NoError(t, err)

	reg, err := def.Registry()
	require.NoError(t, err)

	assert.True(t, reg.Validate("schedule", def.Defaults["schedule"]).Valid)

	res := reg.Validate("schedule", domain.Slice{
		"timezone":   "UTC",
		"timeRange":  map[string]any{"start": "17:00", "end": "09:00"},
		"activeDays": []any{},
	})
	assert.False(t, res.Valid)
	assert.Contains(t, res.FieldErrors, "timeRange.end")
	assert.Contains(t, res.FieldErrors, "activeDays")

	res = reg.Validate("details", def.Defaults["details"])
	assert.Equal(t, "Campaign name is required", res.FieldErrors["name"])
}

func TestBuiltin_Unknown(t *testing.T) {
	_, err := flow.Builtin("nope")
	assert.Error(t, err)
}

func TestCatalog(t *testing.T) {
	defs, err := flow.Builtins()
	require.NoError(t, err)

	custom, err := flow.New("agent").Step("only", "only").Build()
	require.NoError(t, err)

	cat := flow.NewCatalog(append(defs, custom)...)
	assert.Equal(t, []string{"agent", "campaign", "quick-agent"}, cat.IDs())

	got, err := cat.Get("agent")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Len(), "later definitions override earlier ones")

	_, err = cat.Get("missing")
	assert.ErrorContains(t, err, "available: agent, campaign, quick-agent")
	assert.Len(t, cat.List(), 3)
}
