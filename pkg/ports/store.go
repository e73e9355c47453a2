package ports

import (
	"context"

	"github.com/AI-call-center/modern-dashboard/pkg/domain"
)

// SessionStore keeps wizard snapshots so a session can be parked and resumed.
type SessionStore interface {
	// Save stores the snapshot under its session ID.
	Save(ctx context.Context, snap *domain.Snapshot) error

	// Load retrieves the snapshot of a session.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.Snapshot, error)

	// Delete removes a session. Deleting an unknown session is not an error.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of every stored session.
	List(ctx context.Context) ([]string, error)
}
