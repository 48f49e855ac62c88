package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the application's Prometheus collectors. Each Metrics owns
// its registry so tests can build isolated instances without collector
// registration conflicts.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Domain
	SessionsStarted  prometheus.Counter
	SessionsFinished prometheus.Counter
	EventsRecorded   prometheus.Counter
}

// New creates a Metrics with all collectors registered
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	m := &Metrics{
		registry: registry,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "deadeye_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "deadeye_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		SessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "deadeye_sessions_started_total",
			Help: "Sessions created.",
		}),
		SessionsFinished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "deadeye_sessions_finished_total",
			Help: "Sessions finalized with a score.",
		}),
		EventsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "deadeye_events_recorded_total",
			Help: "Shot events accepted.",
		}),
	}

	registry.MustRegister(
		m.HTTPRequests,
		m.HTTPDuration,
		m.SessionsStarted,
		m.SessionsFinished,
		m.EventsRecorded,
	)

	return m
}

// Handler returns the HTTP handler serving this registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
