// Package metrics provides Prometheus metrics for the leaderboard board service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for source attempts.
const (
	OutcomeSuccess     = "success"
	OutcomeUnreachable = "unreachable"
	OutcomeMalformed   = "malformed"
	OutcomeCanceled    = "canceled"
)

// Manager manages all Prometheus metrics for the board service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Source Metrics - endpoint chain behaviour
	sourceAttempts     *prometheus.CounterVec
	sourceLoadDuration prometheus.Histogram
	sourceDemoLoads    prometheus.Counter

	// Board Metrics - what the last load produced
	boardScores        prometheus.Gauge
	boardUniquePlayers prometheus.Gauge
	boardMaxScore      prometheus.Gauge
	boardMaxWave       prometheus.Gauge
	boardDemo          prometheus.Gauge

	// View Metrics - filter queries
	viewQueries *prometheus.CounterVec
	viewSize    prometheus.Histogram

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpRateLimited     prometheus.Counter

	// Error Metrics
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec
	errorLatency        *prometheus.HistogramVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "cosmic",
		subsystem:        "board",
		histogramBuckets: prometheus.DefBuckets,
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
		Buckets:     buckets,
	}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every metric definition
	auto := promauto.With(m.registry)

	m.sourceAttempts = auto.NewCounterVec(
		m.counterOpts("source_attempts_total", "Endpoint attempts by endpoint name and outcome"),
		[]string{"endpoint", "outcome"},
	)
	m.sourceLoadDuration = auto.NewHistogram(
		m.histogramOpts("source_load_duration_milliseconds", "Duration of a full load across the endpoint chain", m.histogramBuckets),
	)
	m.sourceDemoLoads = auto.NewCounter(
		m.counterOpts("source_demo_loads_total", "Loads that fell back to the demo dataset"),
	)

	m.boardScores = auto.NewGauge(m.gaugeOpts("scores", "Number of score entries on the board"))
	m.boardUniquePlayers = auto.NewGauge(m.gaugeOpts("unique_players", "Distinct player names on the board"))
	m.boardMaxScore = auto.NewGauge(m.gaugeOpts("max_score", "Highest score on the board"))
	m.boardMaxWave = auto.NewGauge(m.gaugeOpts("max_wave", "Highest wave reached on the board"))
	m.boardDemo = auto.NewGauge(m.gaugeOpts("demo", "1 when the board shows the demo dataset"))

	m.viewQueries = auto.NewCounterVec(
		m.counterOpts("view_queries_total", "View requests by which filters were active"),
		[]string{"filters"},
	)
	m.viewSize = auto.NewHistogram(
		m.histogramOpts("view_size_entries", "Number of entries in computed views",
			[]float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000}),
	)

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRateLimited = auto.NewCounter(
		m.counterOpts("http_rate_limited_total", "Requests rejected by the per-IP rate limiter"),
	)

	m.errorRateByType = auto.NewCounterVec(
		m.counterOpts("errors_by_type_total", "Total number of errors by type"),
		[]string{"error_type", "severity"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Total number of errors by endpoint"),
		[]string{"endpoint", "method", "error_type"},
	)
	m.errorLatency = auto.NewHistogramVec(
		m.histogramOpts("error_latency_milliseconds", "Latency of operations that resulted in errors", m.histogramBuckets),
		[]string{"component", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(
		m.histogramOpts("system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
			[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}),
	)
}

// RecordSourceAttempt counts one endpoint attempt with its outcome.
func RecordSourceAttempt(endpoint, outcome string) {
	globalManager.sourceAttempts.WithLabelValues(endpoint, outcome).Inc()
}

// RecordSourceLoadDuration records the duration of a full load in milliseconds.
func RecordSourceLoadDuration(durationMs float64) {
	globalManager.sourceLoadDuration.Observe(durationMs)
}

// RecordSourceDemoLoad counts a load that ended on the demo dataset.
func RecordSourceDemoLoad() {
	globalManager.sourceDemoLoads.Inc()
}

// UpdateBoard publishes the aggregates of the currently loaded board.
func UpdateBoard(scores, uniquePlayers, maxScore, maxWave int, demo bool) {
	globalManager.boardScores.Set(float64(scores))
	globalManager.boardUniquePlayers.Set(float64(uniquePlayers))
	globalManager.boardMaxScore.Set(float64(maxScore))
	globalManager.boardMaxWave.Set(float64(maxWave))
	if demo {
		globalManager.boardDemo.Set(1)
	} else {
		globalManager.boardDemo.Set(0)
	}
}

// RecordViewQuery counts a view request by which filters it asked for:
// "none", "mode", "search" or "both".
func RecordViewQuery(filters string) {
	globalManager.viewQueries.WithLabelValues(filters).Inc()
}

// RecordViewSize observes the number of entries in a computed view.
func RecordViewSize(size int) {
	globalManager.viewSize.Observe(float64(size))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordRateLimited counts a request rejected by the rate limiter.
func RecordRateLimited() {
	globalManager.httpRateLimited.Inc()
}

// RecordErrorByType increments error counter by type and severity.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint increments error counter by endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records latency for operations that resulted in errors.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// UpdateSystemMemoryUsage sets the current memory usage.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the current goroutine count.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
