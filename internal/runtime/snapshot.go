package runtime

import (
	"fmt"

	"github.com/AI-call-center/modern-dashboard/pkg/domain"
	"github.com/AI-call-center/modern-dashboard/pkg/draft"
	"github.com/AI-call-center/modern-dashboard/pkg/flow"
)

// Snapshot captures the session so it can be parked and resumed with Restore.
// Undo history is not part of a snapshot.
func (c *Controller) Snapshot() *domain.Snapshot {
	return &domain.Snapshot{
		SessionID: c.sessionID,
		FlowID:    c.def.ID,
		State:     c.state.Clone(),
		Draft:     draft.Clone(c.draft),
		StartedAt: c.startedAt,
		Visits:    c.visits,
	}
}

// Restore rebuilds a controller from a snapshot taken on the same flow.
// Slices the flow gained since the snapshot are seeded from the defaults and
// slices no step owns any more are dropped.
// A snapshot that already counted step visits restores as started.
func Restore(def *flow.Definition, snap *domain.Snapshot, opts ...Option) (*Controller, error) {
	if snap == nil {
		return nil, fmt.Errorf("snapshot is required")
	}
	if def != nil && snap.FlowID != def.ID {
		return nil, fmt.Errorf("snapshot belongs to flow %q, not %q", snap.FlowID, def.ID)
	}

	if snap.SessionID != "" {
		opts = append([]Option{WithSessionID(snap.SessionID)}, opts...)
	}
	c, err := newController(def, opts...)
	if err != nil {
		return nil, err
	}

	state := snap.State.Clone()
	if state.Status == "" {
		state.Status = domain.StatusEditing
	}
	last := def.Len() - 1
	if state.CurrentStepIndex < 0 || state.CurrentStepIndex > last ||
		state.MaxReachedIndex < state.CurrentStepIndex || state.MaxReachedIndex > last {
		return nil, fmt.Errorf("snapshot position %d/%d is outside flow %q (%d steps)",
			state.CurrentStepIndex, state.MaxReachedIndex, def.ID, def.Len())
	}
	c.state = state
	if !snap.StartedAt.IsZero() {
		c.startedAt = snap.StartedAt
	}
	c.visits = snap.Visits
	c.started = snap.Visits > 0

	if state.Status.Terminal() {
		return c, nil
	}
	if snap.Draft == nil {
		return nil, fmt.Errorf("snapshot of open session %q has no draft", snap.SessionID)
	}

	d := make(domain.Draft, def.Len())
	for _, key := range def.SliceKeys() {
		if slice, ok := snap.Draft[key]; ok {
			d[key] = draft.CloneSlice(slice)
		} else {
			d[key] = draft.CloneSlice(def.Defaults[key])
		}
	}
	for key := range snap.Draft {
		if !d.Has(key) {
			c.logger.Warn("dropping slice no step owns", "slice", key)
		}
	}
	c.draft = d
	return c, nil
}
