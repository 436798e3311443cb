package netsuite

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector exposes Prometheus metrics for the request lifecycle.
// It is safe for concurrent use; a nil collector disables instrumentation.
type MetricsCollector struct {
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight *prometheus.GaugeVec
	retriesTotal     *prometheus.CounterVec
	errorsTotal      *prometheus.CounterVec
	queryPagesTotal  prometheus.Counter
	queryRowsTotal   prometheus.Counter
}

// NewMetricsCollector creates a collector on the default registerer.
func NewMetricsCollector() *MetricsCollector {
	return NewMetricsCollectorWithRegistry(prometheus.DefaultRegisterer)
}

// NewMetricsCollectorWithRegistry creates a collector using the supplied
// registerer.
func NewMetricsCollectorWithRegistry(registry prometheus.Registerer) *MetricsCollector {
	return &MetricsCollector{
		requestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "netsuite_requests_total",
				Help: "Total number of NetSuite API requests completed",
			},
			[]string{"method", "status_code"},
		),
		requestDuration: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "netsuite_request_duration_seconds",
				Help:    "Duration of NetSuite API requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "status_code"},
		),
		requestsInFlight: promauto.With(registry).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "netsuite_requests_in_flight",
				Help: "Number of NetSuite API requests currently in flight",
			},
			[]string{"method"},
		),
		retriesTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "netsuite_retries_total",
				Help: "Total number of retry attempts",
			},
			[]string{"method", "attempt"},
		),
		errorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "netsuite_errors_total",
				Help: "Total number of failed requests by error code",
			},
			[]string{"code", "method"},
		),
		queryPagesTotal: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "netsuite_query_pages_total",
				Help: "Total number of SuiteQL pages fetched",
			},
		),
		queryRowsTotal: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "netsuite_query_rows_total",
				Help: "Total number of SuiteQL rows fetched",
			},
		),
	}
}

// RecordRequestStart marks a request as in flight.
func (mc *MetricsCollector) RecordRequestStart(method string) {
	mc.requestsInFlight.WithLabelValues(method).Inc()
}

// RecordRequestEnd marks a request as no longer in flight.
func (mc *MetricsCollector) RecordRequestEnd(method string) {
	mc.requestsInFlight.WithLabelValues(method).Dec()
}

// RecordRequest records a completed request and its duration. Failures with
// no HTTP response carry status 0.
func (mc *MetricsCollector) RecordRequest(method string, statusCode int, duration time.Duration) {
	status := strconv.Itoa(statusCode)
	mc.requestsTotal.WithLabelValues(method, status).Inc()
	mc.requestDuration.WithLabelValues(method, status).Observe(duration.Seconds())
}

// RecordRetry records one retry attempt.
func (mc *MetricsCollector) RecordRetry(method string, attempt int) {
	mc.retriesTotal.WithLabelValues(method, strconv.Itoa(attempt)).Inc()
}

// RecordError records a terminal failure by error code.
func (mc *MetricsCollector) RecordError(code, method string) {
	mc.errorsTotal.WithLabelValues(code, method).Inc()
}

// RecordQueryPage records one fetched SuiteQL page and its row count.
func (mc *MetricsCollector) RecordQueryPage(rows int) {
	mc.queryPagesTotal.Inc()
	mc.queryRowsTotal.Add(float64(rows))
}
