// Package metrics exposes Prometheus instruments for HTTP traffic and
// service outcomes on a private registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "piensaperu"

// Metrics owns the registry and every instrument registered on it
type Metrics struct {
	registry *prometheus.Registry

	// Request rate per route template. Watch for: 5xx ratio, traffic drops.
	httpRequestsTotal *prometheus.CounterVec

	// Request latency per route template. Watch for: p95/p99 increases.
	httpRequestDuration *prometheus.HistogramVec

	// Concurrent requests in flight.
	httpRequestsInFlight prometheus.Gauge

	// Service outcomes (success, not_found, invalid, error) per entity and operation.
	serviceOperationsTotal *prometheus.CounterVec
}

// New creates a registry with process and Go runtime collectors plus the
// application instruments
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	m := &Metrics{
		registry: registry,
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		httpRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_requests_in_flight",
				Help:      "Number of HTTP requests currently being served",
			},
		),
		serviceOperationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "service_operations_total",
				Help:      "Service operations by entity, operation and outcome",
			},
			[]string{"entity", "operation", "outcome"},
		),
	}

	registry.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.httpRequestsInFlight,
		m.serviceOperationsTotal,
	)
	return m
}

// RecordOperation counts one service outcome
func (m *Metrics) RecordOperation(entity, operation, outcome string) {
	m.serviceOperationsTotal.WithLabelValues(entity, operation, outcome).Inc()
}

// ObserveRequest records a finished HTTP request. route must be a pattern,
// not the raw path, to keep label cardinality bounded.
func (m *Metrics) ObserveRequest(method, route string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RequestStarted increments the in-flight gauge and returns the matching decrement
func (m *Metrics) RequestStarted() func() {
	m.httpRequestsInFlight.Inc()
	return m.httpRequestsInFlight.Dec
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
