package ports

import (
	"context"

	"github.com/AI-call-center/modern-dashboard/pkg/domain"
)

// Submitter receives the completed draft of a flow.
// The controller calls it at most once per session; a returned error keeps the
// wizard on its last step with the draft intact.
type Submitter interface {
	Submit(ctx context.Context, flowID string, draft domain.Draft) error
}

// SubmitFunc adapts a function to the Submitter interface.
type SubmitFunc func(ctx context.Context, flowID string, draft domain.Draft) error

// Submit calls f.
func (f SubmitFunc) Submit(ctx context.Context, flowID string, draft domain.Draft) error {
	return f(ctx, flowID, draft)
}

// DiscardSubmitter accepts every draft and does nothing with it.
var DiscardSubmitter Submitter = SubmitFunc(func(context.Context, string, domain.Draft) error {
	return nil
})
