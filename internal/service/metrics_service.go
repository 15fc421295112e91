package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/campus-credit-api/internal/models"
)

// MetricsService encapsulates Prometheus instrumentation and provides lightweight snapshots for API consumption.
type MetricsService struct {
	registry          *prometheus.Registry
	handler           http.Handler
	requestDuration   *prometheus.HistogramVec
	requestTotal      *prometheus.CounterVec
	cacheLatency      prometheus.Observer
	cacheWrite        prometheus.Observer
	cacheHitRatio     prometheus.Gauge
	cacheHits         prometheus.Counter
	cacheMisses       prometheus.Counter
	datasetLoad       *prometheus.HistogramVec
	sessionsActive    prometheus.Gauge
	filterEvaluations *prometheus.CounterVec
	segmentSelections *prometheus.CounterVec

	cacheHitCount         uint64
	cacheMissCount        uint64
	requestCount          uint64
	requestDurationTotal  uint64
	datasetLoadCount      uint64
	datasetLoadTotal      uint64
	filterEvaluationCount uint64
	activeSessions        int64
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	cacheLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_latency_seconds",
		Help:    "Latency for cache operations",
		Buckets: prometheus.DefBuckets,
	})

	cacheWrite := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_write_seconds",
		Help:    "Latency for cache set operations",
		Buckets: prometheus.DefBuckets,
	})

	cacheHitRatio := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cache_hit_ratio",
		Help: "Ratio of cache hits to total cache lookups",
	})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Total cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Total cache misses",
	})

	datasetLoad := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dataset_load_duration_seconds",
		Help:    "Duration of dataset loads from the configured source",
		Buckets: prometheus.DefBuckets,
	}, []string{"dataset"})

	sessionsActive := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "view_sessions_active",
		Help: "Number of live view sessions",
	})

	filterEvaluations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "filter_evaluations_total",
		Help: "Filter evaluations per view",
	}, []string{"view"})

	segmentSelections := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "chart_segment_selections_total",
		Help: "Chart segment clicks split by resulting action",
	}, []string{"action"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, cacheLatency, cacheWrite, cacheHitRatio, cacheHits, cacheMisses,
		datasetLoad, sessionsActive, filterEvaluations, segmentSelections, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:          registry,
		handler:           handler,
		requestDuration:   requestDuration,
		requestTotal:      requestTotal,
		cacheLatency:      cacheLatency,
		cacheWrite:        cacheWrite,
		cacheHitRatio:     cacheHitRatio,
		cacheHits:         cacheHits,
		cacheMisses:       cacheMisses,
		datasetLoad:       datasetLoad,
		sessionsActive:    sessionsActive,
		filterEvaluations: filterEvaluations,
		segmentSelections: segmentSelections,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics and aggregates simple stats for snapshots.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
	atomic.AddUint64(&m.requestDurationTotal, uint64(duration.Nanoseconds()))
}

// RecordCacheOperation records cache hit/miss metrics and updates hit ratio.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheLatency.Observe(duration.Seconds())
	if hit {
		m.cacheHits.Inc()
		atomic.AddUint64(&m.cacheHitCount, 1)
	} else {
		m.cacheMisses.Inc()
		atomic.AddUint64(&m.cacheMissCount, 1)
	}
	hits := atomic.LoadUint64(&m.cacheHitCount)
	misses := atomic.LoadUint64(&m.cacheMissCount)
	if total := hits + misses; total > 0 {
		m.cacheHitRatio.Set(float64(hits) / float64(total))
	}
}

// ObserveCacheWrite tracks the duration for cache write operations.
func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheWrite.Observe(duration.Seconds())
}

// ObserveDatasetLoad records how long reading a dataset from its source took.
func (m *MetricsService) ObserveDatasetLoad(dataset string, duration time.Duration) {
	if m == nil {
		return
	}
	m.datasetLoad.WithLabelValues(dataset).Observe(duration.Seconds())
	atomic.AddUint64(&m.datasetLoadCount, 1)
	atomic.AddUint64(&m.datasetLoadTotal, uint64(duration.Nanoseconds()))
}

// IncFilterEvaluation counts one filter pass over a view's dataset.
func (m *MetricsService) IncFilterEvaluation(view models.View) {
	if m == nil {
		return
	}
	m.filterEvaluations.WithLabelValues(string(view)).Inc()
	atomic.AddUint64(&m.filterEvaluationCount, 1)
}

// RecordSegmentSelection counts a chart click as either "select" or "clear".
func (m *MetricsService) RecordSegmentSelection(action string) {
	if m == nil {
		return
	}
	m.segmentSelections.WithLabelValues(action).Inc()
}

// SetActiveSessions publishes the live session count.
func (m *MetricsService) SetActiveSessions(count int) {
	if m == nil {
		return
	}
	m.sessionsActive.Set(float64(count))
	atomic.StoreInt64(&m.activeSessions, int64(count))
}

// Snapshot returns aggregated metrics suitable for the system endpoint.
func (m *MetricsService) Snapshot() models.SystemMetrics {
	if m == nil {
		return models.SystemMetrics{}
	}
	hits := atomic.LoadUint64(&m.cacheHitCount)
	misses := atomic.LoadUint64(&m.cacheMissCount)
	requests := atomic.LoadUint64(&m.requestCount)
	reqDuration := atomic.LoadUint64(&m.requestDurationTotal)
	loads := atomic.LoadUint64(&m.datasetLoadCount)
	loadDuration := atomic.LoadUint64(&m.datasetLoadTotal)

	var cacheRatio float64
	if totalLookups := hits + misses; totalLookups > 0 {
		cacheRatio = float64(hits) / float64(totalLookups)
	}

	var avgRequestMs float64
	if requests > 0 {
		avgRequestMs = float64(reqDuration) / float64(requests) / float64(time.Millisecond)
	}

	var avgLoadMs float64
	if loads > 0 {
		avgLoadMs = float64(loadDuration) / float64(loads) / float64(time.Millisecond)
	}

	return models.SystemMetrics{
		CacheHitRatio:            cacheRatio,
		CacheHits:                hits,
		CacheMisses:              misses,
		RequestsTotal:            requests,
		AverageRequestDurationMs: avgRequestMs,
		DatasetLoads:             loads,
		AverageDatasetLoadMs:     avgLoadMs,
		FilterEvaluations:        atomic.LoadUint64(&m.filterEvaluationCount),
		ActiveSessions:           int(atomic.LoadInt64(&m.activeSessions)),
		Goroutines:               runtime.NumGoroutine(),
		GeneratedAt:              time.Now().UTC(),
	}
}
