// Package metrics provides Prometheus metrics for the quota result service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the service
type Metrics struct {
	// HTTP request metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Store metrics
	DocumentsTotal prometheus.Gauge
	EntriesTotal   prometheus.Gauge

	// Search metrics
	SearchesTotal *prometheus.CounterVec
	WinnersFound  prometheus.Counter

	// Ingestion metrics
	DownloadsTotal     *prometheus.CounterVec
	ParsedPagesTotal   prometheus.Counter
	ParseFailuresTotal prometheus.Counter
	RefreshesTotal     *prometheus.CounterVec

	ServerStartTime time.Time
}

// New creates and registers all Prometheus metrics on the default registry.
// Call it once per process; promauto panics on duplicate registration.
func New() *Metrics {
	m := &Metrics{
		ServerStartTime: time.Now(),
	}

	m.HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bjquota_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"path", "method", "status"},
	)

	m.HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bjquota_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)

	m.DocumentsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bjquota_documents_total",
			Help: "Number of parsed result documents held in the store",
		},
	)

	m.EntriesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bjquota_entries_total",
			Help: "Number of result entries held in the store",
		},
	)

	m.SearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bjquota_searches_total",
			Help: "Total number of search requests",
		},
		[]string{"kind", "found"},
	)

	m.WinnersFound = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bjquota_winners_found_total",
			Help: "Total number of searches that detected a winner",
		},
	)

	m.DownloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bjquota_downloads_total",
			Help: "Total number of PDF download attempts",
		},
		[]string{"status"},
	)

	m.ParsedPagesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bjquota_parsed_pages_total",
			Help: "Total number of PDF pages extracted",
		},
	)

	m.ParseFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bjquota_parse_failures_total",
			Help: "Total number of documents that failed to parse",
		},
	)

	m.RefreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bjquota_refreshes_total",
			Help: "Total number of data refresh runs",
		},
		[]string{"trigger", "status"},
	)

	return m
}

// RecordHTTPRequest records one completed HTTP request.
func (m *Metrics) RecordHTTPRequest(path, method, status string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(path, method, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(path).Observe(duration.Seconds())
}

// RecordSearch records a search request and whether it matched anything.
func (m *Metrics) RecordSearch(kind string, found bool) {
	label := "false"
	if found {
		label = "true"
	}
	m.SearchesTotal.WithLabelValues(kind, label).Inc()
}

// UpdateStoreStats refreshes the store gauges.
func (m *Metrics) UpdateStoreStats(documents, entries int) {
	m.DocumentsTotal.Set(float64(documents))
	m.EntriesTotal.Set(float64(entries))
}
