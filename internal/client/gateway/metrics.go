package gateway

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// newMetrics builds the collectors and registers them on reg. A nil reg
// yields working but unregistered collectors.
func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "fraudsentry_gateway_requests_total",
			Help: "Outbound API requests by operation and outcome",
		}, []string{"op", "outcome"}),
		latency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fraudsentry_gateway_request_duration_seconds",
			Help:    "Outbound API request latency",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"op"}),
	}
}

func (m *metrics) observe(op string, started time.Time, err error) {
	m.latency.WithLabelValues(op).Observe(time.Since(started).Seconds())
	m.requests.WithLabelValues(op, outcome(err)).Inc()
}

// outcome is "ok" or the error kind in snake case, e.g. "invalid_credentials".
func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	k := Kind(err)
	if k == nil {
		return "error"
	}
	return strings.ReplaceAll(k.Error(), " ", "_")
}
