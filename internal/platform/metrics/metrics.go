package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the HTTP-level Prometheus metrics for the application.
type Metrics struct {
	RequestDuration *prometheus.HistogramVec
	RequestsTotal   *prometheus.CounterVec
}

// New creates and registers HTTP metrics with the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers against reg, so tests can use a private registry.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "medhope_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by route pattern",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "route"}),
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "medhope_http_requests_total",
			Help: "Total HTTP requests by route pattern and status code",
		}, []string{"method", "route", "status"}),
	}
}

// ObserveRequest records one completed request.
func (m *Metrics) ObserveRequest(method, route, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
	m.RequestsTotal.WithLabelValues(method, route, status).Inc()
}
