package web

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metrics holds the Prometheus instruments for one server instance. Each
// server gets its own registry so tests can spin up servers side by side
// without duplicate-registration panics.
type metrics struct {
	registry  *prometheus.Registry
	requests  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	fallbacks *prometheus.CounterVec
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	auto := promauto.With(reg)
	return &metrics{
		registry: reg,
		requests: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "modelmon",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "status"}),
		duration: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "modelmon",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds by route and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		fallbacks: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "modelmon",
			Subsystem: "backend",
			Name:      "fallbacks_total",
			Help:      "Live backend calls that were answered from mock fixtures, by operation.",
		}, []string{"op"}),
	}
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
