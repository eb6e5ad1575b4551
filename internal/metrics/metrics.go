// Package metrics exposes Prometheus collectors for quote submissions.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"quote-calculator/core/types"
)

const namespace = "quote_calculator"

// Metrics holds the collectors and the registry they live in
type Metrics struct {
	registry *prometheus.Registry

	submissions  *prometheus.CounterVec
	relayLatency *prometheus.HistogramVec
	httpRequests *prometheus.CounterVec
}

// New registers the collectors on a fresh registry, together with the
// process and Go runtime collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Quote submissions by service kind and outcome.",
		}, []string{"service", "outcome"}),
		relayLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "relay_duration_seconds",
			Help:      "Latency of the single relay attempt.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"status"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
	}
	reg.MustRegister(
		m.submissions,
		m.relayLatency,
		m.httpRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveSubmission counts one submission outcome
func (m *Metrics) ObserveSubmission(kind types.ServiceKind, outcome string) {
	service := kind.String()
	if service == "" {
		service = "none"
	}
	m.submissions.WithLabelValues(service, outcome).Inc()
}

// ObserveRelay records relay latency labelled by status code, or "error"
func (m *Metrics) ObserveRelay(status int, elapsed time.Duration, err error) {
	label := strconv.Itoa(status)
	if err != nil {
		label = "error"
	}
	m.relayLatency.WithLabelValues(label).Observe(elapsed.Seconds())
}

// ObserveHTTP counts one served request
func (m *Metrics) ObserveHTTP(route string, code int) {
	m.httpRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
