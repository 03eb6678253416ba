package monitoring

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/GriffinCanCode/bibkit/internal/domain/entry"
	"github.com/GriffinCanCode/bibkit/internal/providers/fulltext"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	Registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Operation metrics
	OperationsTotal   *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec

	// Cleanup metrics
	CleanupEntries prometheus.Counter
	CleanupChanges *prometheus.CounterVec
	StampedEntries prometheus.Counter

	// Full-text metrics
	FullTextLookups  *prometheus.CounterVec
	FullTextDuration *prometheus.HistogramVec

	// Upstream (publisher) metrics
	UpstreamRequests *prometheus.CounterVec
	UpstreamDuration *prometheus.HistogramVec

	startTime time.Time

	// Snapshot for JSON API - track current values
	snapshot MetricsSnapshot

	mu sync.RWMutex
}

// MetricsSnapshot holds current metric values for JSON API
type MetricsSnapshot struct {
	TotalRequests  int64   `json:"total_requests"`
	TotalErrors    int64   `json:"total_errors"`
	TotalDuration  float64 `json:"-"`
	RequestCount   int64   `json:"-"`
	AvgDurationMs  float64 `json:"avg_duration_ms"`
	EntriesCleaned int64   `json:"entries_cleaned"`
	FieldChanges   int64   `json:"field_changes"`
	FullTextFound  int64   `json:"fulltext_found"`
	UptimeSeconds  float64 `json:"uptime_seconds"`
}

// NewMetrics creates a new metrics collector on its own registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	m := &Metrics{
		Registry:  reg,
		startTime: time.Now(),

		// HTTP metrics
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bibkit_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bibkit_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		RequestSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bibkit_http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bibkit_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),

		// Operation metrics
		OperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bibkit_operations_total",
				Help: "Total number of cleanup, stamp and lookup operations",
			},
			[]string{"operation", "status"},
		),
		OperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bibkit_operation_duration_seconds",
				Help:    "Operation duration in seconds",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1, 5, 30},
			},
			[]string{"operation"},
		),

		// Cleanup metrics
		CleanupEntries: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "bibkit_cleanup_entries_total",
				Help: "Total number of entries passed through cleanup",
			},
		),
		CleanupChanges: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bibkit_cleanup_changes_total",
				Help: "Field changes emitted by cleanup, by field and kind",
			},
			[]string{"field", "kind"},
		),
		StampedEntries: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "bibkit_stamped_entries_total",
				Help: "Total number of entries passed through the owner/timestamp stamper",
			},
		),

		// Full-text metrics
		FullTextLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bibkit_fulltext_lookups_total",
				Help: "Full-text lookups by provider and outcome",
			},
			[]string{"provider", "outcome"},
		),
		FullTextDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bibkit_fulltext_duration_seconds",
				Help:    "Full-text lookup duration per provider in seconds",
				Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"provider"},
		),

		// Upstream metrics
		UpstreamRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bibkit_upstream_requests_total",
				Help: "Requests to publisher hosts by status code (0 for transport errors)",
			},
			[]string{"host", "status"},
		),
		UpstreamDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bibkit_upstream_duration_seconds",
				Help:    "Publisher request duration in seconds",
				Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"host"},
		),
	}

	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "bibkit_uptime_seconds",
			Help: "Server uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// Handler serves the registry in Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.TotalDuration += duration.Seconds()
	m.snapshot.RequestCount++
	if status[0] == '4' || status[0] == '5' {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordOperation records a cleanup, stamp or lookup operation
func (m *Metrics) RecordOperation(operation, status string, duration time.Duration) {
	m.OperationsTotal.WithLabelValues(operation, status).Inc()
	m.OperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordCleanup records one cleanup pass over entries
func (m *Metrics) RecordCleanup(entries int, changes []entry.FieldChange) {
	m.CleanupEntries.Add(float64(entries))
	for _, change := range changes {
		kind := "set"
		if change.IsClear() {
			kind = "clear"
		}
		m.CleanupChanges.WithLabelValues(change.Field, kind).Inc()
	}

	m.mu.Lock()
	m.snapshot.EntriesCleaned += int64(entries)
	m.snapshot.FieldChanges += int64(len(changes))
	m.mu.Unlock()
}

// RecordStamp records entries passed through the stamper
func (m *Metrics) RecordStamp(entries int) {
	m.StampedEntries.Add(float64(entries))
}

// RecordFullText implements fulltext.Recorder
func (m *Metrics) RecordFullText(provider string, outcome fulltext.Outcome, elapsed time.Duration) {
	m.FullTextLookups.WithLabelValues(provider, string(outcome)).Inc()
	m.FullTextDuration.WithLabelValues(provider).Observe(elapsed.Seconds())

	if outcome == fulltext.OutcomeFound {
		m.mu.Lock()
		m.snapshot.FullTextFound++
		m.mu.Unlock()
	}
}

// ObserveUpstream implements client.Observer
func (m *Metrics) ObserveUpstream(host string, status int, elapsed time.Duration) {
	m.UpstreamRequests.WithLabelValues(host, strconv.Itoa(status)).Inc()
	m.UpstreamDuration.WithLabelValues(host).Observe(elapsed.Seconds())
}
