package httpapi

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Request outcomes recorded by the delete counter.
const (
	resultDeleted      = "deleted"
	resultBadRequest   = "bad_request"
	resultUnauthorized = "unauthorized"
	resultFailed       = "failed"
)

// Metrics owns a private registry so tests can build several handlers.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration prometheus.Histogram
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quotekeeper",
			Subsystem: "blobd",
			Name:      "delete_requests_total",
			Help:      "Document deletion requests by result.",
		}, []string{"result"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quotekeeper",
			Subsystem: "blobd",
			Name:      "delete_duration_seconds",
			Help:      "Time spent deleting objects from storage.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	m.registry.MustRegister(m.requests, m.duration)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) observe(result string) {
	m.requests.WithLabelValues(result).Inc()
}
