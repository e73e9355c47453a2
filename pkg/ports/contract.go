package ports

import (
	"context"
	"testing"
	"time"

	"github.com/AI-call-center/modern-dashboard/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSessionStoreContract runs a suite of tests to verify that a SessionStore
// implementation adheres to the defined interface contract.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	newSnapshot := func(id string) *domain.Snapshot {
		state := domain.NewWizardState()
		state.CurrentStepIndex = 1
		state.MaxReachedIndex = 1
		return &domain.Snapshot{
			SessionID: id,
			FlowID:    "agent",
			State:     state,
			Draft: domain.Draft{
				"basicInfo": {"name": "Sales Bot"},
				"behaviour": {"greeting": ""},
			},
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		snap := newSnapshot(sessionID)

		err := store.Save(ctx, snap)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, "agent", loaded.FlowID)
		assert.Equal(t, 1, loaded.State.CurrentStepIndex)
		assert.Equal(t, "Sales Bot", loaded.Draft["basicInfo"]["name"])
	})

	t.Run("Loaded Snapshot Is Isolated", func(t *testing.T) {
		snap := newSnapshot(sessionID)
		require.NoError(t, store.Save(ctx, snap))

		snap.Draft["basicInfo"]["name"] = "mutated after save"

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, "Sales Bot", loaded.Draft["basicInfo"]["name"])

		loaded.Draft["basicInfo"]["name"] = "mutated after load"
		again, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, "Sales Bot", again.Draft["basicInfo"]["name"])
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, newSnapshot(sessionID)))

		err := store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")

		assert.NoError(t, store.Delete(ctx, sessionID), "deleting twice is not an error")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, newSnapshot(id1))
		_ = store.Save(ctx, newSnapshot(id2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
