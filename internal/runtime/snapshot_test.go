package runtime_test

import (
	"context"
	"errors"
	"testing"

	"github.com/AI-call-center/modern-dashboard/internal/runtime"
	"github.com/AI-call-center/modern-dashboard/pkg/domain"
	"github.com/AI-call-center/modern-dashboard/pkg/flow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRestore(t *testing.T) {
	ctx := context.Background()
	def := threeStepFlow(t)

	c, err := runtime.New(def, runtime.WithSessionID("s-42"))
	require.NoError(t, err)
	require.NoError(t, c.Update("basic", domain.Slice{"name": "Bot"}))
	_, err = c.Next(ctx)
	require.NoError(t, err)
	_, err = c.Next(ctx) // behaviour blocked
	require.NoError(t, err)

	snap := c.Snapshot()
	assert.Equal(t, "s-42", snap.SessionID)
	assert.Equal(t, "agent", snap.FlowID)

	t.Run("Snapshot Is A Copy", func(t *testing.T) {
		snap := c.Snapshot()
		snap.Draft["basic"]["name"] = "mutated"
		snap.State.StepErrors["behaviour"]["greeting"] = "mutated"
		assert.Equal(t, "Bot", c.Draft()["basic"]["name"])
		assert.Equal(t, "Greeting is required", c.State().StepErrors["behaviour"]["greeting"])
	})

	restored, err := runtime.Restore(def, snap)
	require.NoError(t, err)

	assert.Equal(t, "s-42", restored.SessionID())
	assert.Equal(t, c.State(), restored.State())
	assert.Equal(t, c.Draft(), restored.Draft())

	require.NoError(t, restored.Update("behaviour", domain.Slice{"greeting": "Hi"}))
	assert.Empty(t, restored.Errors())
	_, err = restored.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "review", restored.Current().ID)
}

func TestRestore_Errors(t *testing.T) {
	def := threeStepFlow(t)

	t.Run("Nil Snapshot", func(t *testing.T) {
		_, err := runtime.Restore(def, nil)
		assert.Error(t, err)
	})

	t.Run("Other Flow", func(t *testing.T) {
		_, err := runtime.Restore(def, &domain.Snapshot{FlowID: "campaign"})
		assert.ErrorContains(t, err, `flow "campaign"`)
	})

	t.Run("Position Out Of Range", func(t *testing.T) {
		state := domain.NewWizardState()
		state.CurrentStepIndex = 7
		state.MaxReachedIndex = 7
		_, err := runtime.Restore(def, &domain.Snapshot{FlowID: "agent", State: state, Draft: domain.Draft{}})
		assert.Error(t, err)
	})

	t.Run("Open Session Without Draft", func(t *testing.T) {
		_, err := runtime.Restore(def, &domain.Snapshot{FlowID: "agent", State: domain.NewWizardState()})
		assert.ErrorContains(t, err, "no draft")
	})

	t.Run("Closed Session Stays Closed", func(t *testing.T) {
		state := domain.NewWizardState()
		state.Status = domain.StatusSubmitted
		c, err := runtime.Restore(def, &domain.Snapshot{FlowID: "agent", State: state})
		require.NoError(t, err)
		_, err = c.Next(context.Background())
		assert.ErrorIs(t, err, domain.ErrWizardClosed)
	})
}

func TestRestore_SeedsNewSlices(t *testing.T) {
	old, err := flow.New("agent").Step("basic", "basic").Defaults(domain.Slice{"name": ""}).Build()
	require.NoError(t, err)
	c, err := runtime.New(old)
	require.NoError(t, err)
	require.NoError(t, c.Update("basic", domain.Slice{"name": "kept"}))

	restored, err := runtime.Restore(threeStepFlow(t), c.Snapshot())
	require.NoError(t, err)

	assert.Equal(t, "kept", restored.Draft()["basic"]["name"])
	assert.Equal(t, domain.Slice{"greeting": "", "prompt": ""}, restored.Draft()["behaviour"])
}

func TestRestore_DropsOrphanSlices(t *testing.T) {
	ctx := context.Background()
	def := threeStepFlow(t)

	c, err := runtime.New(def)
	require.NoError(t, err)
	snap := c.Snapshot()
	snap.Draft["stale"] = domain.Slice{"x": 1}

	sub := &recordingSubmitter{}
	restored, err := runtime.Restore(def, snap, runtime.WithSubmitter(sub))
	require.NoError(t, err)
	assert.Equal(t, []string{"basic", "behaviour", "review"}, restored.Draft().Keys())

	err = restored.Update("stale", domain.Slice{"x": 2})
	var sliceErr *domain.UnknownSliceError
	require.True(t, errors.As(err, &sliceErr))
	assert.Equal(t, "stale", sliceErr.Key)

	t.Run("Strict Slices Panic", func(t *testing.T) {
		strict, err := runtime.Restore(def, snap, runtime.WithStrictSlices())
		require.NoError(t, err)
		assert.Panics(t, func() {
			_ = strict.Update("stale", domain.Slice{"x": 2})
		})
	})

	require.NoError(t, restored.Update("basic", domain.Slice{"name": "Bot"}))
	require.NoError(t, restored.Update("behaviour", domain.Slice{"greeting": "Hi"}))
	for range 3 {
		_, err = restored.Next(ctx)
		require.NoError(t, err)
	}
	require.Equal(t, 1, sub.calls)
	assert.Equal(t, []string{"basic", "behaviour", "review"}, sub.draft.Keys())
}

func TestRestore_KeepsVisitCount(t *testing.T) {
	ctx := context.Background()
	def := threeStepFlow(t)

	var steps []int
	hooks := domain.LifecycleHooks{
		OnSubmit: func(_ context.Context, e *domain.SubmitEvent) { steps = append(steps, e.StepCount) },
	}

	c, err := runtime.New(def)
	require.NoError(t, err)
	require.NoError(t, c.Start(ctx))
	require.NoError(t, c.Update("basic", domain.Slice{"name": "Bot"}))
	_, err = c.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Snapshot().Visits)

	restored, err := runtime.Restore(def, c.Snapshot(), runtime.WithLifecycleHooks(hooks))
	require.NoError(t, err)
	require.NoError(t, restored.Start(ctx), "already started, no second enter")
	require.NoError(t, restored.Update("behaviour", domain.Slice{"greeting": "Hi"}))
	_, err = restored.Next(ctx)
	require.NoError(t, err)
	_, err = restored.Next(ctx)
	require.NoError(t, err)

	assert.Equal(t, []int{3}, steps)
}
