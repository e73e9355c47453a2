package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/AI-call-center/modern-dashboard/pkg/domain"
)

// Metrics holds the prometheus collectors fed by wizard events.
type Metrics struct {
	StepEntries        *prometheus.CounterVec
	ValidationFailures *prometheus.CounterVec
	Submissions        *prometheus.CounterVec
	Cancellations      *prometheus.CounterVec
	StepsVisited       *prometheus.HistogramVec
	CompletionSeconds  *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		StepEntries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wizard_step_entries_total",
				Help: "Total number of times a step was entered",
			},
			[]string{"flow", "step"},
		),
		ValidationFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wizard_validation_failures_total",
				Help: "Total number of Next attempts blocked by validation",
			},
			[]string{"flow", "step"},
		),
		Submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wizard_submissions_total",
				Help: "Total number of drafts handed to the submitter",
			},
			[]string{"flow"},
		),
		Cancellations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wizard_cancellations_total",
				Help: "Total number of abandoned wizards, by the step they were abandoned on",
			},
			[]string{"flow", "step"},
		),
		StepsVisited: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wizard_steps_visited",
				Help:    "Step entries before a successful submit",
				Buckets: prometheus.LinearBuckets(1, 2, 10),
			},
			[]string{"flow"},
		),
		CompletionSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wizard_completion_seconds",
				Help:    "Time from wizard start to successful submit",
				Buckets: prometheus.ExponentialBuckets(5, 2, 10),
			},
			[]string{"flow"},
		),
	}

	if reg != nil {
		reg.MustRegister(
			m.StepEntries,
			m.ValidationFailures,
			m.Submissions,
			m.Cancellations,
			m.StepsVisited,
			m.CompletionSeconds,
		)
	}
	return m
}

// Hooks returns lifecycle hooks recording into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepEnter: func(_ context.Context, e *domain.StepEvent) {
			m.StepEntries.WithLabelValues(e.FlowID, e.StepID).Inc()
		},
		OnValidationFailed: func(_ context.Context, e *domain.ValidationEvent) {
			m.ValidationFailures.WithLabelValues(e.FlowID, e.StepID).Inc()
		},
		OnSubmit: func(_ context.Context, e *domain.SubmitEvent) {
			m.Submissions.WithLabelValues(e.FlowID).Inc()
			m.StepsVisited.WithLabelValues(e.FlowID).Observe(float64(e.StepCount))
			m.CompletionSeconds.WithLabelValues(e.FlowID).Observe(e.Elapsed.Seconds())
		},
		OnCancel: func(_ context.Context, e *domain.CancelEvent) {
			m.Cancellations.WithLabelValues(e.FlowID, e.StepID).Inc()
		},
	}
}
