package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/AI-call-center/modern-dashboard/pkg/adapters/memory"
	"github.com/AI-call-center/modern-dashboard/pkg/domain"
	"github.com/AI-call-center/modern-dashboard/pkg/session"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// SlowStore simulates latency to provoke race conditions if locking is missing.
type SlowStore struct {
	*memory.Store
}

func newSlowStore() *SlowStore {
	return &SlowStore{Store: memory.NewStore()}
}

func (s *SlowStore) Save(ctx context.Context, snap *domain.Snapshot) error {
	time.Sleep(5 * time.Millisecond)
	return s.Store.Save(ctx, snap)
}

func (s *SlowStore) Load(ctx context.Context, sessionID string) (*domain.Snapshot, error) {
	time.Sleep(5 * time.Millisecond)
	return s.Store.Load(ctx, sessionID)
}

var defaults = map[string]domain.Slice{
	"basicInfo": {"name": "", "edits": 0},
}

func TestManager_UpdateIsSerialized(t *testing.T) {
	manager := session.NewManager(newSlowStore())
	ctx := context.Background()
	id := "race-test"

	_, err := manager.LoadOrStart(ctx, id, "agent", defaults)
	require.NoError(t, err)

	var wg sync.WaitGroup
	concurrentWrites := 10

	// Read-Modify-Write without locking would lose increments.
	for i := 0; i < concurrentWrites; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := manager.Update(ctx, id, func(_ context.Context, snap *domain.Snapshot) (*domain.Snapshot, error) {
				edits := snap.Draft["basicInfo"]["edits"].(int)
				snap.Draft["basicInfo"]["edits"] = edits + 1
				return snap, nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	snap, err := manager.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, concurrentWrites, snap.Draft["basicInfo"]["edits"])
}

func TestManager_LoadOrStart(t *testing.T) {
	manager := session.NewManager(newSlowStore())
	ctx := context.Background()
	id := "atomic-init"

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snap, err := manager.LoadOrStart(ctx, id, "agent", defaults)
			assert.NoError(t, err)
			assert.NotNil(t, snap)
		}()
	}
	wg.Wait()

	snap, err := manager.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "agent", snap.FlowID)
	assert.Equal(t, domain.StatusEditing, snap.State.Status)
	assert.Equal(t, "", snap.Draft["basicInfo"]["name"])

	t.Run("Defaults Are Copied", func(t *testing.T) {
		assert.Equal(t, 0, defaults["basicInfo"]["edits"])
	})

	t.Run("Flow Mismatch", func(t *testing.T) {
		_, err := manager.LoadOrStart(ctx, id, "campaign", nil)
		assert.ErrorContains(t, err, `belongs to flow "agent"`)
	})

	ids, err := manager.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{id}, ids)
}

func TestManager_UpdateFailure(t *testing.T) {
	manager := session.NewManager(memory.NewStore())
	ctx := context.Background()

	_, err := manager.Update(ctx, "ghost", func(context.Context, *domain.Snapshot) (*domain.Snapshot, error) {
		t.Fatal("fn must not run for a missing session")
		return nil, nil
	})
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = manager.LoadOrStart(ctx, "s", "agent", defaults)
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = manager.Update(ctx, "s", func(_ context.Context, snap *domain.Snapshot) (*domain.Snapshot, error) {
		snap.Draft["basicInfo"]["name"] = "not saved"
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	snap, err := manager.Load(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, "", snap.Draft["basicInfo"]["name"])

	require.NoError(t, manager.Delete(ctx, "s"))
	_, err = manager.Load(ctx, "s")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestManager_CancelledContext(t *testing.T) {
	manager := session.NewManager(memory.NewStore())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := manager.WithLock(ctx, "s", func(context.Context) error {
		t.Fatal("fn must not run")
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestManager_LoadOrStartUsesClock(t *testing.T) {
	stamp := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	manager := session.NewManager(memory.NewStore(), session.WithClock(func() time.Time { return stamp }))

	snap, err := manager.LoadOrStart(context.Background(), "clocked", "agent", defaults)
	require.NoError(t, err)
	assert.Equal(t, stamp, snap.StartedAt)

	stored, err := manager.Load(context.Background(), "clocked")
	require.NoError(t, err)
	assert.Equal(t, stamp, stored.StartedAt)
}
