package http

import (
	"time"

	"github.com/aretw0/palisade/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics instruments evaluations. All collectors live in a private registry
// so embedding hosts never collide with palisade's metric names.
type Metrics struct {
	registry  *prometheus.Registry
	decisions *prometheus.CounterVec
	errors    prometheus.Counter
	latency   prometheus.Histogram
}

// NewMetrics creates and registers the evaluation collectors.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "palisade",
			Name:      "decisions_total",
			Help:      "Transition decisions by final status.",
		}, []string{"status"}),
		errors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "palisade",
			Name:      "evaluation_errors_total",
			Help:      "Evaluations that ended in an engine error.",
		}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "palisade",
			Name:      "evaluation_duration_seconds",
			Help:      "Wall time of one evaluation, redirects included.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	registry.MustRegister(m.decisions, m.errors, m.latency)
	return m
}

// Registry exposes the private registry for the /metrics endpoint.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) observeDecision(d *domain.Decision, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.decisions.WithLabelValues(string(d.Status)).Inc()
	m.latency.Observe(elapsed.Seconds())
}

func (m *Metrics) observeError(err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.errors.Inc()
	m.latency.Observe(elapsed.Seconds())
}
