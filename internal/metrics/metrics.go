// Package metrics exposes Prometheus collectors for the query core and the
// HTTP layer on a private registry served at /metrics.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/deppfellow/go-quizbank/internal/query"
)

const namespace = "quizbank"

// Outcomes recorded for core operations.
const (
	OutcomeOK        = "ok"
	OutcomeEmpty     = "empty"
	OutcomeMalformed = "malformed"
	OutcomeError     = "error"
)

// Collector owns the registry and every metric the service records.
type Collector struct {
	registry *prometheus.Registry

	queryOps      *prometheus.CounterVec
	queryDuration *prometheus.HistogramVec
	queryMatched  *prometheus.HistogramVec
	httpRequests  *prometheus.CounterVec
	rateLimited   prometheus.Counter
}

// NewCollector registers all metrics, plus the Go runtime and process
// collectors, on a fresh registry.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		queryOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "query",
				Name:      "operations_total",
				Help:      "Core List/Draw calls by record type, operation and outcome.",
			},
			[]string{"record", "op", "outcome"},
		),
		queryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "query",
				Name:      "duration_seconds",
				Help:      "Latency of core List/Draw calls including the store read.",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
			[]string{"record", "op"},
		),
		queryMatched: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "query",
				Name:      "matched_records",
				Help:      "Records matching the filter before pagination.",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
			},
			[]string{"record"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "HTTP requests by route and status code.",
			},
			[]string{"method", "route", "status"},
		),
		rateLimited: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "rate_limited_total",
				Help:      "Requests rejected by the rate limiter.",
			},
		),
	}

	registry.MustRegister(
		c.queryOps,
		c.queryDuration,
		c.queryMatched,
		c.httpRequests,
		c.rateLimited,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return c
}

// Outcome classifies the result of a core call.
func Outcome(err error, empty bool) string {
	switch {
	case errors.Is(err, query.ErrMalformedQuery):
		return OutcomeMalformed
	case err != nil:
		return OutcomeError
	case empty:
		return OutcomeEmpty
	default:
		return OutcomeOK
	}
}

// ObserveList records one core List call. A nil Collector is a no-op.
func (c *Collector) ObserveList(record string, start time.Time, matched int, empty bool, err error) {
	if c == nil {
		return
	}
	c.queryOps.WithLabelValues(record, "list", Outcome(err, empty)).Inc()
	c.queryDuration.WithLabelValues(record, "list").Observe(time.Since(start).Seconds())
	if err == nil {
		c.queryMatched.WithLabelValues(record).Observe(float64(matched))
	}
}

// ObserveDraw records one core Draw call.
func (c *Collector) ObserveDraw(record string, start time.Time, found bool, err error) {
	if c == nil {
		return
	}
	c.queryOps.WithLabelValues(record, "draw", Outcome(err, !found)).Inc()
	c.queryDuration.WithLabelValues(record, "draw").Observe(time.Since(start).Seconds())
}

// ObserveHTTP counts one finished request.
func (c *Collector) ObserveHTTP(method, route string, status int) {
	if c == nil {
		return
	}
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// ObserveRateLimited counts one rejected request.
func (c *Collector) ObserveRateLimited() {
	if c == nil {
		return
	}
	c.rateLimited.Inc()
}

// Registry exposes the registry for tests and custom collectors.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}
