package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AI-call-center/modern-dashboard/internal/cli"
	"github.com/AI-call-center/modern-dashboard/internal/presentation/prompt"
	"github.com/AI-call-center/modern-dashboard/pkg/domain"
	"github.com/AI-call-center/modern-dashboard/pkg/models"
	"github.com/AI-call-center/modern-dashboard/pkg/templates"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestExecute_ScriptedAgent(t *testing.T) {
	answers := writeFile(t, "agent.yaml", `
flow: agent
moves:
  - set: {name: Sales Assistant, tone: casual}
  - set: {greeting: "Hi there"}
  - set: {llm: Claude 2.0}
  - replace: {variables: [{name: email, description: Caller email}]}
  - set: {selectedActions: [transfer]}
`)
	var out, errOut bytes.Buffer
	res, err := cli.Execute(context.Background(), cli.RunOptions{
		FlowID:      "agent",
		AnswersPath: answers,
		Output:      "json",
		LogLevel:    "debug",
		Stdout:      &out,
		Stderr:      &errOut,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSubmitted, res.Status)

	cfg, ok := res.Config.(*models.AgentConfig)
	require.True(t, ok, "agent runs decode into AgentConfig, got %T", res.Config)
	assert.Equal(t, "Sales Assistant", cfg.BasicInfo.Name)
	assert.Equal(t, "Claude 2.0", cfg.Knowledge.LLM)
	assert.Equal(t, []string{"transfer"}, cfg.Actions.SelectedActions)

	var printed map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &printed))
	assert.Equal(t, "Sales Assistant", printed["basicInfo"].(map[string]any)["name"])

	assert.Contains(t, errOut.String(), "field changed", "debug log carries the change log")
}

func TestExecute_ScriptedCampaign(t *testing.T) {
	answers := writeFile(t, "campaign.yaml", `
moves:
  - set: {name: Q3 Outreach, firstMessage: "Hi {{name}}"}
  - set: {timeRange: {start: "10:00", end: "16:00"}, activeDays: [mon, wed]}
  - action: next
`)
	var out bytes.Buffer
	res, err := cli.Execute(context.Background(), cli.RunOptions{
		FlowID:      "campaign",
		AnswersPath: answers,
		Stdout:      &out,
	})
	require.NoError(t, err)

	cfg, ok := res.Config.(*models.CampaignConfig)
	require.True(t, ok)
	assert.Equal(t, "Q3 Outreach", cfg.Details.Name)
	assert.Equal(t, "16:00", cfg.Schedule.TimeRange.End)
	assert.Contains(t, out.String(), "Q3 Outreach")
}

func TestExecute_ScriptErrors(t *testing.T) {
	run := func(t *testing.T, flowID, script string) error {
		t.Helper()
		_, err := cli.Execute(context.Background(), cli.RunOptions{
			FlowID:      flowID,
			AnswersPath: writeFile(t, "answers.yaml", script),
			Stdout:      &bytes.Buffer{},
		})
		return err
	}

	t.Run("Blocked Step", func(t *testing.T) {
		err := run(t, "agent", "moves:\n  - {}\n")
		var blocked *cli.BlockedError
		require.ErrorAs(t, err, &blocked)
		assert.Equal(t, "basic-info", blocked.StepID)
		assert.ErrorContains(t, err, "Name is required")
	})

	t.Run("Ends Before Submit", func(t *testing.T) {
		err := run(t, "agent", "moves:\n  - set: {name: X}\n")
		assert.ErrorContains(t, err, `answers ended on step "behaviour"`)
	})

	t.Run("Wrong Flow", func(t *testing.T) {
		err := run(t, "agent", "flow: campaign\nmoves: []\n")
		assert.ErrorContains(t, err, `answers file is for flow "campaign"`)
	})

	t.Run("Jump Beyond Reached Step", func(t *testing.T) {
		err := run(t, "agent", "moves:\n  - action: jump\n    step: actions\n")
		var jump *domain.StepJumpError
		assert.ErrorAs(t, err, &jump)
	})

	t.Run("Unknown Flow", func(t *testing.T) {
		err := run(t, "payroll", "moves: []\n")
		assert.ErrorContains(t, err, "unknown flow")
	})
}

func TestExecute_Cancelled(t *testing.T) {
	answers := writeFile(t, "quick.yaml", "moves:\n  - action: back\n")
	var out bytes.Buffer
	res, err := cli.Execute(context.Background(), cli.RunOptions{
		FlowID:      "quick-agent",
		AnswersPath: answers,
		Stdout:      &out,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, res.Status)
	assert.Nil(t, res.Config)
	assert.Empty(t, out.String())
}

func TestExecute_Metrics(t *testing.T) {
	answers := writeFile(t, "quick.yaml", `
moves:
  - set: {name: Helper}
  - set: {capabilities: [calls]}
  - action: next
`)
	var out, metrics bytes.Buffer
	res, err := cli.Execute(context.Background(), cli.RunOptions{
		FlowID:      "quick-agent",
		AnswersPath: answers,
		Stdout:      &out,
		Metrics:     &metrics,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSubmitted, res.Status)

	text := metrics.String()
	assert.Contains(t, text, "# TYPE wizard_submissions_total counter")
	assert.Contains(t, text, `wizard_submissions_total{flow="quick-agent"} 1`)
	assert.Contains(t, text, `wizard_step_entries_total{flow="quick-agent",step="review"} 1`)
	assert.Contains(t, text, `wizard_steps_visited_sum{flow="quick-agent"} 3`)
	assert.NotContains(t, out.String(), "wizard_", "metrics never go to stdout")

	t.Run("Off By Default", func(t *testing.T) {
		var out bytes.Buffer
		_, err := cli.Execute(context.Background(), cli.RunOptions{
			FlowID:      "quick-agent",
			AnswersPath: answers,
			Stdout:      &out,
		})
		require.NoError(t, err)
		assert.NotContains(t, out.String(), "wizard_")
	})
}

func TestParseScript(t *testing.T) {
	_, err := cli.ParseScript([]byte("moves:\n  - action: sideways\n"))
	assert.ErrorContains(t, err, `unknown action "sideways"`)

	_, err = cli.ParseScript([]byte("moves:\n  - action: jump\n"))
	assert.ErrorContains(t, err, "jump needs a step")

	s, err := cli.ParseScript([]byte("flow: agent\nmoves:\n  - set: {name: A}\n  - action: undo\n"))
	require.NoError(t, err)
	assert.Equal(t, "agent", s.Flow)
	require.Len(t, s.Moves, 2)
	assert.Equal(t, domain.Slice{"name": "A"}, s.Moves[0].Set)
}

// queueDriver answers from queues and falls back to each prompt's default.
type queueDriver struct {
	inputs  []string
	selects []int
	multis  [][]int
}

func (d *queueDriver) Input(_ context.Context, cfg prompt.InputConfig) (string, error) {
	if len(d.inputs) == 0 {
		return cfg.Default, nil
	}
	v := d.inputs[0]
	d.inputs = d.inputs[1:]
	return v, nil
}

func (d *queueDriver) TextArea(_ context.Context, cfg prompt.TextAreaConfig) (string, error) {
	return cfg.Default, nil
}

func (d *queueDriver) Confirm(_ context.Context, cfg prompt.ConfirmConfig) (bool, error) {
	return false, nil
}

func (d *queueDriver) Select(_ context.Context, cfg prompt.SelectConfig) (int, error) {
	if len(d.selects) == 0 {
		return 0, errors.New("unexpected select: " + cfg.Message)
	}
	v := d.selects[0]
	d.selects = d.selects[1:]
	return v, nil
}

func (d *queueDriver) MultiSelect(_ context.Context, cfg prompt.SelectConfig) ([]int, error) {
	if len(d.multis) == 0 {
		return cfg.Defaults, nil
	}
	v := d.multis[0]
	d.multis = d.multis[1:]
	return v, nil
}

func (d *queueDriver) Info(context.Context, string) error { return nil }

func TestExecute_Interactive(t *testing.T) {
	const next = 1

	drv := &queueDriver{
		inputs: []string{"", "Helper"},
		// basic: next (blocked), next; capabilities: next; review: submit
		selects: []int{next, next, next, next},
		multis:  [][]int{{0, 1}},
	}
	var out bytes.Buffer
	res, err := cli.Execute(context.Background(), cli.RunOptions{
		FlowID: "quick-agent",
		Output: "yaml",
		Driver: drv,
		Stdout: &out,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSubmitted, res.Status)

	d, ok := res.Config.(domain.Draft)
	require.True(t, ok)
	assert.Equal(t, "Helper", d["basic"]["name"])
	assert.Equal(t, []any{"calls", "sms"}, d["capabilities"]["capabilities"])

	printed := out.String()
	assert.Contains(t, printed, "Quick Agent")
	assert.Contains(t, printed, "Name is required", "blocked step shows its errors on the next round")
	assert.Contains(t, printed, "# Quick Agent", "review step prints the summary")
	assert.Contains(t, printed, ">>> Quick Agent done.")
	assert.Contains(t, printed, "name: Helper")
}

func TestExecute_InteractiveAbort(t *testing.T) {
	res, err := cli.Execute(context.Background(), cli.RunOptions{
		FlowID: "quick-agent",
		Driver: &abortDriver{},
		Stdout: &bytes.Buffer{},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, res.Status)
}

type abortDriver struct{ queueDriver }

func (abortDriver) Input(context.Context, prompt.InputConfig) (string, error) {
	return "", prompt.ErrAborted
}

func TestInspect(t *testing.T) {
	catalog, err := cli.LoadCatalog("")
	require.NoError(t, err)

	t.Run("List Flows", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, cli.ListFlows(&buf, catalog))
		assert.Contains(t, buf.String(), "basic-info → behaviour → knowledge → data-collection → actions")
		assert.Contains(t, buf.String(), "campaign")
	})

	t.Run("Graph", func(t *testing.T) {
		def, err := catalog.Get("campaign")
		require.NoError(t, err)
		var buf bytes.Buffer
		require.NoError(t, cli.Graph(&buf, def))
		assert.Contains(t, buf.String(), `details -- "Next" --> schedule`)
	})

	t.Run("Templates", func(t *testing.T) {
		tpl, err := templates.Builtin()
		require.NoError(t, err)
		var buf bytes.Buffer
		n, err := cli.SearchTemplates(&buf, tpl, templates.Query{Kind: templates.KindFirstMessage})
		require.NoError(t, err)
		assert.Equal(t, len(tpl.ByKind(templates.KindFirstMessage)), n)
		assert.Contains(t, buf.String(), "product-launch")
	})
}

func TestLoadCatalog_FlowsDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "survey.yaml"), []byte(`
id: survey
title: Survey
steps:
  - id: questions
    title: Questions
    slice: questions
defaults:
  questions: {}
`), 0o644))

	catalog, err := cli.LoadCatalog(dir)
	require.NoError(t, err)
	assert.Contains(t, catalog.IDs(), "survey")
	assert.Contains(t, catalog.IDs(), "agent")

	t.Run("Validate File", func(t *testing.T) {
		def, err := cli.ValidateFile(filepath.Join(dir, "survey.yaml"))
		require.NoError(t, err)
		assert.Equal(t, 1, def.Len())

		bad := writeFile(t, "bad.yaml", "id: bad\nsteps: []\n")
		_, err = cli.ValidateFile(bad)
		var flowErr *domain.FlowError
		assert.ErrorAs(t, err, &flowErr)
	})
}

func TestWriteOutput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, cli.WriteOutput(&buf, "yaml", map[string]any{"name": "A"}))
	assert.Equal(t, "name: A\n", buf.String())

	assert.ErrorContains(t, cli.WriteOutput(&buf, "xml", nil), "unknown output format")
}
