package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks request latency in seconds.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	// ResourceMutations counts successful create/update/delete calls.
	ResourceMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resource_mutations_total",
			Help: "Total number of resource mutations",
		},
		[]string{"resource", "operation"},
	)

	// CacheLookups counts list cache hits and misses.
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "list_cache_lookups_total",
			Help: "List cache lookups by result",
		},
		[]string{"resource", "result"}, // result: hit, miss, error
	)

	// PurgedTasks counts tasks removed by the purge job.
	PurgedTasks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "purged_tasks_total",
			Help: "Total number of soft-deleted tasks purged",
		},
	)
)

func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

func IncrementMutation(resource, operation string) {
	ResourceMutations.WithLabelValues(resource, operation).Inc()
}

func IncrementCacheLookup(resource, result string) {
	CacheLookups.WithLabelValues(resource, result).Inc()
}

func AddPurgedTasks(n int64) {
	if n > 0 {
		PurgedTasks.Add(float64(n))
	}
}
