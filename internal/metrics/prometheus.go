// Package metrics exposes Prometheus metrics for imports, reads and upstream calls.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Import outcomes.
const (
	ImportSuccess = "success"
	ImportFailure = "failure"
)

// Cache lookup outcomes.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheStale = "stale"
	CacheError = "error"
)

// Manager owns a registry and every collector the service records into.
// A nil *Manager is valid and records nothing.
type Manager struct {
	namespace string
	buckets   []float64
	registry  *prometheus.Registry

	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	imports          *prometheus.CounterVec
	scoresWritten    prometheus.Counter
	importBatches    prometheus.Counter
	upstreamRequests *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	cacheLookups     *prometheus.CounterVec
}

// NewManager creates a Manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "stageboard",
		buckets:   prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}

	m.httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route, method and status code.",
	}, []string{"route", "method", "status"})
	m.httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   m.buckets,
	}, []string{"route", "method"})
	m.imports = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "import",
		Name:      "stages_total",
		Help:      "Stage imports by result.",
	}, []string{"result"})
	m.scoresWritten = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "import",
		Name:      "scores_written_total",
		Help:      "Score records written to the datastore.",
	})
	m.importBatches = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "import",
		Name:      "batches_committed_total",
		Help:      "Score write batches committed.",
	})
	m.upstreamRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "upstream",
		Name:      "requests_total",
		Help:      "Scoring platform requests by endpoint and status (0 = transport error).",
	}, []string{"endpoint", "status"})
	m.upstreamDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "upstream",
		Name:      "request_duration_seconds",
		Help:      "Scoring platform request latency by endpoint.",
		Buckets:   m.buckets,
	}, []string{"endpoint"})
	m.cacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "cache",
		Name:      "lookups_total",
		Help:      "Leaderboard cache lookups by result.",
	}, []string{"result"})

	m.registry.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.imports,
		m.scoresWritten,
		m.importBatches,
		m.upstreamRequests,
		m.upstreamDuration,
		m.cacheLookups,
	)
	return m
}

// Registry returns the registry backing this manager.
func (m *Manager) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordHTTPRequest records one served request.
func (m *Manager) RecordHTTPRequest(route, method string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route, method).Observe(d.Seconds())
}

// RecordImport counts one import attempt by outcome.
func (m *Manager) RecordImport(result string) {
	if m == nil {
		return
	}
	m.imports.WithLabelValues(result).Inc()
}

// RecordBatch counts one committed batch of n scores.
func (m *Manager) RecordBatch(n int) {
	if m == nil {
		return
	}
	m.importBatches.Inc()
	m.scoresWritten.Add(float64(n))
}

// ObserveUpstream records one scoring platform request.
func (m *Manager) ObserveUpstream(endpoint string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.upstreamRequests.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	m.upstreamDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

// RecordCacheLookup counts one cache lookup by outcome.
func (m *Manager) RecordCacheLookup(result string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}
