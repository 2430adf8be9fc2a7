package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Operation outcome labels.
const (
	OutcomeCorrect = "correct"
	OutcomeWrong   = "wrong"
	OutcomeBound   = "bound"
	OutcomeLocked  = "locked"
	OutcomeDeleted = "deleted"
)

// Metrics holds the Prometheus collectors for code operations.
type Metrics struct {
	Operations *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "codebind",
				Name:      "operations_total",
				Help:      "Code operations by operation and outcome.",
			},
			[]string{"operation", "outcome"},
		),
	}

	if reg != nil {
		reg.MustRegister(m.Operations)
	}

	return m
}

// Observe counts one operation with the given outcome.
func (m *Metrics) Observe(operation, outcome string) {
	if m == nil {
		return
	}
	m.Operations.WithLabelValues(operation, outcome).Inc()
}
