// Package metrics exposes Prometheus instrumentation for the interview API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the collectors for state transitions, persistence, and
// document exports.
type Metrics struct {
	ActionsApplied       *prometheus.CounterVec
	ExportsTotal         *prometheus.CounterVec
	ExportDuration       *prometheus.HistogramVec
	SnapshotSaves        prometheus.Counter
	SnapshotSaveFailures prometheus.Counter
	ImportsRejected      prometheus.Counter
}

// New registers the collectors with the given registerer. Pass
// prometheus.DefaultRegisterer in main; tests use a private registry.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ActionsApplied: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "relay_actions_applied_total",
			Help: "State transitions applied, by action type",
		}, []string{"type"}),
		ExportsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "relay_exports_total",
			Help: "Documents compiled, by format",
		}, []string{"format"}),
		ExportDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "relay_export_duration_seconds",
			Help:    "Time spent compiling a document, by format",
			Buckets: prometheus.DefBuckets,
		}, []string{"format"}),
		SnapshotSaves: factory.NewCounter(prometheus.CounterOpts{
			Name: "relay_snapshot_saves_total",
			Help: "Debounced snapshot writes to the store",
		}),
		SnapshotSaveFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "relay_snapshot_save_failures_total",
			Help: "Snapshot writes that failed and were dropped",
		}),
		ImportsRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "relay_imports_rejected_total",
			Help: "Uploaded snapshots rejected by validation",
		}),
	}
}

// ActionApplied records one applied state transition.
func (m *Metrics) ActionApplied(actionType string) {
	m.ActionsApplied.WithLabelValues(actionType).Inc()
}

// ExportCompleted records one finished compile run.
func (m *Metrics) ExportCompleted(format string, seconds float64) {
	m.ExportsTotal.WithLabelValues(format).Inc()
	m.ExportDuration.WithLabelValues(format).Observe(seconds)
}
