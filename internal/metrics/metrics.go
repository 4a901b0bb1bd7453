// Package metrics instruments ledger operations with Prometheus counters.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// Operation outcomes tracked per counter label.
const (
	OutcomeOK         = "ok"
	OutcomeValidation = "validation_error"
	OutcomeNotFound   = "not_found"
	OutcomeError      = "error"
)

// Metrics holds the ledger's counters on a private registry, so tests can
// run multiple instances without duplicate-registration panics.
type Metrics struct {
	registry *prometheus.Registry
	ops      *prometheus.CounterVec
}

// New creates a Metrics instance with its own registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	ops := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sharehouse",
		Name:      "ledger_ops_total",
		Help:      "Ledger operations by kind and outcome.",
	}, []string{"op", "outcome"})
	registry.MustRegister(ops)

	return &Metrics{registry: registry, ops: ops}
}

// RecordOp counts one operation with the given outcome. Safe on a nil
// receiver, so callers without metrics configured need no branching.
func (m *Metrics) RecordOp(op, outcome string) {
	if m == nil {
		return
	}
	m.ops.WithLabelValues(op, outcome).Inc()
}

// Handler returns the scrape handler for this instance's registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// OpCount returns the current value of one counter. Used by tests.
func (m *Metrics) OpCount(op, outcome string) float64 {
	if m == nil {
		return 0
	}
	return testutil.ToFloat64(m.ops.WithLabelValues(op, outcome))
}
