package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RelayMetrics tracks relay requests and their outcomes
type RelayMetrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ModelResolved   *prometheus.CounterVec
}

// NewRelayMetrics creates and registers relay metrics on reg
func NewRelayMetrics(reg prometheus.Registerer) *RelayMetrics {
	m := &RelayMetrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "relay",
			Name:      "requests_total",
			Help:      "Relay requests by action and outcome (ok, config, transport, empty).",
		}, []string{"action", "outcome"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "relay",
			Name:      "request_duration_seconds",
			Help:      "Time from request receipt to reply, including model resolution.",
			Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
		}, []string{"action"}),
		ModelResolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "relay",
			Name:      "model_resolved_total",
			Help:      "Models chosen by the resolver.",
		}, []string{"model"}),
	}

	reg.MustRegister(m.RequestsTotal, m.RequestDuration, m.ModelResolved)
	return m
}

// Observe records one finished request. Safe on a nil receiver.
func (m *RelayMetrics) Observe(action, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(action, outcome).Inc()
	m.RequestDuration.WithLabelValues(action).Observe(elapsed.Seconds())
}

// Resolved records the model picked for a request. Safe on a nil receiver.
func (m *RelayMetrics) Resolved(model string) {
	if m == nil {
		return
	}
	m.ModelResolved.WithLabelValues(model).Inc()
}
