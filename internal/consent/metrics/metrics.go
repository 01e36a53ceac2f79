// Package metrics exposes Prometheus collectors for the consent lifecycle.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for consent operations.
type Metrics struct {
	TransitionsTotal    *prometheus.CounterVec
	GuardViolations     *prometheus.CounterVec
	ReportFailuresTotal prometheus.Counter
	TransitionLatency   prometheus.Histogram
}

// New registers and returns consent metrics collectors.
func New() *Metrics {
	return &Metrics{
		TransitionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "consentd_transitions_total",
			Help: "Total number of consent state transitions, labeled by resulting state",
		}, []string{"state"}),
		GuardViolations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "consentd_guard_violations_total",
			Help: "Total number of rejected transitions, labeled by operation",
		}, []string{"operation"}),
		ReportFailuresTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "consentd_report_failures_total",
			Help: "Total number of collector report deliveries that failed",
		}),
		TransitionLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "consentd_transition_latency_seconds",
			Help:    "Latency of consent transitions in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) IncrementTransitions(state string) {
	m.TransitionsTotal.WithLabelValues(state).Inc()
}

func (m *Metrics) IncrementGuardViolations(operation string) {
	m.GuardViolations.WithLabelValues(operation).Inc()
}

func (m *Metrics) IncrementReportFailures() {
	m.ReportFailuresTotal.Inc()
}

func (m *Metrics) ObserveTransitionLatency(seconds float64) {
	m.TransitionLatency.Observe(seconds)
}
