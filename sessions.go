package dashboard

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/AI-call-center/modern-dashboard/internal/logging"
	"github.com/AI-call-center/modern-dashboard/pkg/domain"
	"github.com/AI-call-center/modern-dashboard/pkg/flow"
	"github.com/AI-call-center/modern-dashboard/pkg/ports"
	"github.com/AI-call-center/modern-dashboard/pkg/session"
)

// Sessions hosts many wizards at once, parked in a SessionStore between calls.
// Calls on the same session ID are serialized; different sessions run in parallel.
type Sessions struct {
	catalog *flow.Catalog
	manager *session.Manager
	opts    []Option
	logger  *slog.Logger
}

// NewSessions creates a session host. opts apply to every wizard it resumes.
func NewSessions(catalog *flow.Catalog, store ports.SessionStore, opts ...Option) *Sessions {
	cfg := newConfig(opts)
	logger := cfg.logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Sessions{
		catalog: catalog,
		manager: session.NewManager(store, session.WithLogger(logger), session.WithClock(cfg.now)),
		opts:    opts,
		logger:  logger,
	}
}

// Start opens a new session of flowID, announces its first step and returns
// the stored snapshot.
func (s *Sessions) Start(ctx context.Context, flowID string) (*domain.Snapshot, error) {
	def, err := s.catalog.Get(flowID)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	if _, err := s.manager.LoadOrStart(ctx, id, def.ID, def.Defaults); err != nil {
		return nil, err
	}

	snap, err := s.Apply(ctx, id, func(ctx context.Context, w *Wizard) error {
		return w.Start(ctx)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("session opened", "session_id", id, "flow", flowID)
	return snap, nil
}

// Apply resumes the session, runs fn on it and stores the result.
// If fn returns an error the stored session is left untouched.
func (s *Sessions) Apply(ctx context.Context, sessionID string, fn func(context.Context, *Wizard) error) (*domain.Snapshot, error) {
	return s.manager.Update(ctx, sessionID, func(ctx context.Context, snap *domain.Snapshot) (*domain.Snapshot, error) {
		def, err := s.catalog.Get(snap.FlowID)
		if err != nil {
			return nil, err
		}
		w, err := s.resume(def, snap)
		if err != nil {
			return nil, err
		}
		if err := fn(ctx, w); err != nil {
			return nil, err
		}
		return w.Snapshot(), nil
	})
}

// Get returns the stored snapshot of a session.
func (s *Sessions) Get(ctx context.Context, sessionID string) (*domain.Snapshot, error) {
	return s.manager.Load(ctx, sessionID)
}

// Discard forgets a session.
func (s *Sessions) Discard(ctx context.Context, sessionID string) error {
	return s.manager.Delete(ctx, sessionID)
}

// List returns the IDs of stored sessions.
func (s *Sessions) List(ctx context.Context) ([]string, error) {
	return s.manager.List(ctx)
}

func (s *Sessions) resume(def *flow.Definition, snap *domain.Snapshot) (*Wizard, error) {
	opts := append(append([]Option(nil), s.opts...), WithSessionID(snap.SessionID))
	return Resume(def, snap, opts...)
}
