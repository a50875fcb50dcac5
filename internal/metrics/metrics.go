// Package metrics holds the Prometheus collectors shared by the HTTP layer,
// the upstream readers and the snapshot cache.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds all Prometheus collectors for the dashboard service.
// Collectors exist from package init so callers never nil-check them;
// Register attaches them to a registry once at startup.
var Metrics = struct {
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge
	CacheHits        *prometheus.CounterVec
	CacheMisses      prometheus.Counter
	UpstreamDuration *prometheus.HistogramVec
	UpstreamFailures *prometheus.CounterVec
	SnapshotDuration prometheus.Histogram
}{
	RequestDuration: prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dashboard_api_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by endpoint and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	),
	RequestsInFlight: prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "dashboard_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	),
	CacheHits: prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_cache_hits_total",
			Help: "Snapshot cache hits, by tier (l1 memory, l2 redis).",
		},
		[]string{"tier"},
	),
	CacheMisses: prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dashboard_cache_misses_total",
			Help: "Snapshot cache misses that triggered a recomputation.",
		},
	),
	UpstreamDuration: prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dashboard_upstream_request_duration_seconds",
			Help:    "Duration of calls to the sheet export and YouTube APIs.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	),
	UpstreamFailures: prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_upstream_failures_total",
			Help: "Upstream calls that degraded to an empty or zero result.",
		},
		[]string{"source"},
	),
	SnapshotDuration: prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dashboard_snapshot_compute_duration_seconds",
			Help:    "Duration of a full dashboard aggregation.",
			Buckets: prometheus.DefBuckets,
		},
	),
}

// Register registers all collectors. Call once at startup.
func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		Metrics.RequestDuration,
		Metrics.RequestsInFlight,
		Metrics.CacheHits,
		Metrics.CacheMisses,
		Metrics.UpstreamDuration,
		Metrics.UpstreamFailures,
		Metrics.SnapshotDuration,
	)
}
