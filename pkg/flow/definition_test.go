package flow_test

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/AI-call-center/modern-dashboard/pkg/domain"
	"github.com/AI-call-center/modern-dashboard/pkg/flow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const signupYAML = `
id: signup
title: Sign up
steps:
  - id: account
    title: Account
    slice: account
  - id: profile
    title: Profile
    slice: profile
defaults:
  account: {email: ""}
  profile: {bio: "", tags: []}
rules:
  account:
    - {kind: required, field: email, message: Email is required}
`

func TestParse(t *testing.T) {
	def, err := flow.Parse([]byte(signupYAML))
	require.NoError(t, err)

	assert.Equal(t, "signup", def.ID)
	assert.Equal(t, 2, def.Len())
	assert.Equal(t, []string{"account", "profile"}, def.SliceKeys())
	assert.Equal(t, 1, def.StepIndex("profile"))
	assert.Equal(t, -1, def.StepIndex("missing"))
	assert.Equal(t, []any{}, def.Defaults["profile"]["tags"])

	step, ok := def.StepForSlice("account")
	require.True(t, ok)
	assert.Equal(t, "account", step.ID)

	_, ok = def.Step(5)
	assert.False(t, ok)
}

func TestDefinition_Registry(t *testing.T) {
	def, err := flow.Parse([]byte(signupYAML))
	require.NoError(t, err)

	reg, err := def.Registry()
	require.NoError(t, err)

	res := reg.Validate("account", domain.Slice{"email": ""})
	assert.False(t, res.Valid)
	assert.Equal(t, "Email is required", res.FieldErrors["email"])

	assert.True(t, reg.Validate("profile", domain.Slice{}).Valid, "slices without rules are always valid")
	assert.Equal(t, []string{"account", "profile"}, reg.Keys())
}

func TestDefinition_Validate(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want []string
	}{
		{
			name: "Empty",
			yaml: `id: ""`,
			want: []string{"missing id", "at least one step is required"},
		},
		{
			name: "Duplicate Step And Slice",
			yaml: `
id: dup
steps:
  - {id: a, slice: s}
  - {id: a, slice: s}
defaults: {s: {}}
`,
			want: []string{
				`step 1: id "a" already used by step 0`,
				`step "a": slice "s" already owned by step "a"`,
			},
		},
		{
			name: "Missing Default And Orphans",
			yaml: `
id: orphan
steps:
  - {id: a, slice: s}
defaults: {other: {}}
rules:
  ghost:
    - {kind: required, field: x}
`,
			want: []string{
				`step "a": no default for slice "s"`,
				`default "other": no step owns this slice`,
				`rules "ghost": no step owns this slice`,
			},
		},
		{
			name: "Bad Rules",
			yaml: `
id: rules
steps:
  - {id: a, slice: s}
defaults: {s: {}}
rules:
  s:
    - {kind: required}
    - {kind: teleport, field: x}
    - {kind: one_of, field: x}
    - {kind: schema, types: {x: quaternion}}
`,
			want: []string{
				`rules "s"[0]: required rule needs a field`,
				`rules "s"[1]: unknown rule kind "teleport"`,
				`rules "s"[2]: one_of rule needs options`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := flow.Parse([]byte(tt.yaml))
			require.Error(t, err)

			var flowErr *domain.FlowError
			require.True(t, errors.As(err, &flowErr), "expected FlowError, got %T", err)
			for _, want := range tt.want {
				assert.Contains(t, flowErr.Problems, want)
			}
		})
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := flow.Parse([]byte("steps: [unterminated"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode flow")
}

func TestLoadDir(t *testing.T) {
	fsys := fstest.MapFS{
		"signup.yaml": {Data: []byte(signupYAML)},
		"notes.txt":   {Data: []byte("ignored")},
	}

	defs, err := flow.LoadDir(fsys)
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, "signup", defs[0].ID)

	_, err = flow.Load(fsys, "missing.yaml")
	assert.Error(t, err)
}

func TestMarshal_RoundTrip(t *testing.T) {
	def, err := flow.Parse([]byte(signupYAML))
	require.NoError(t, err)

	data, err := def.Marshal()
	require.NoError(t, err)

	again, err := flow.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, def.Steps, again.Steps)
	assert.Equal(t, def.Rules, again.Rules)
}
