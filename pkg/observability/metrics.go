package observability

import (
	"context"

	"github.com/aretw0/romandfa/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors fed by validation runs.
type Metrics struct {
	Verdicts    *prometheus.CounterVec
	Transitions *prometheus.CounterVec
	PathLength  prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on reg.
// Passing nil skips registration.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Verdicts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "romandfa_verdicts_total",
				Help: "Total number of validation verdicts by outcome and rejection reason",
			},
			[]string{"outcome", "reason"},
		),
		Transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "romandfa_transitions_total",
				Help: "Total number of transitions taken, by symbol and whether they entered the dead state",
			},
			[]string{"symbol", "dead"},
		),
		PathLength: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "romandfa_path_length",
				Help:    "Number of transitions consumed per validation run",
				Buckets: prometheus.LinearBuckets(0, 1, 9),
			},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Verdicts, m.Transitions, m.PathLength)
	}
	return m
}

// Hooks returns lifecycle hooks that record into m.
// deadState labels transitions into the absorbing state; pass "" to skip that label.
func (m *Metrics) Hooks(deadState domain.StateID) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			dead := "false"
			if deadState != "" && e.Step.To == deadState {
				dead = "true"
			}
			m.Transitions.WithLabelValues(e.Step.Symbol.String(), dead).Inc()
		},
		OnVerdict: func(ctx context.Context, e *domain.VerdictEvent) {
			v := e.Verdict
			outcome, reason := "accepted", ""
			if !v.Accepted && v.Rejection != nil {
				outcome, reason = "rejected", string(v.Rejection.Kind)
			}
			m.Verdicts.WithLabelValues(outcome, reason).Inc()
			m.PathLength.Observe(float64(len(v.Path)))
		},
	}
}
