package memory

import (
	"context"
	"sync"
	"time"

	"github.com/AI-call-center/modern-dashboard/pkg/domain"
	"github.com/AI-call-center/modern-dashboard/pkg/draft"
)

// Submission is one draft accepted by an Outbox.
type Submission struct {
	FlowID      string
	Draft       domain.Draft
	SubmittedAt time.Time
}

// Outbox implements ports.Submitter by keeping every submitted draft in memory.
// It stands in for the backend that would create the agent or campaign.
// Safe for concurrent use.
type Outbox struct {
	mu      sync.Mutex
	items   []Submission
	failure error
	now     func() time.Time
}

// NewOutbox creates an empty outbox.
func NewOutbox() *Outbox {
	return &Outbox{now: time.Now}
}

// Submit records a copy of the draft, or returns the configured failure.
func (o *Outbox) Submit(ctx context.Context, flowID string, d domain.Draft) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.failure != nil {
		return o.failure
	}
	o.items = append(o.items, Submission{
		FlowID:      flowID,
		Draft:       draft.Clone(d),
		SubmittedAt: o.now(),
	})
	return nil
}

// FailWith makes subsequent submissions fail with err. A nil err restores
// normal behaviour.
func (o *Outbox) FailWith(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.failure = err
}

// Submissions returns the accepted submissions in arrival order.
func (o *Outbox) Submissions() []Submission {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]Submission(nil), o.items...)
}

// Len returns the number of accepted submissions.
func (o *Outbox) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.items)
}
