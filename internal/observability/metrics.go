// Package observability provides Prometheus metrics and OpenTelemetry tracing.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hearth_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// KarmaPointsGranted counts karma points credited, by source type.
	KarmaPointsGranted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hearth_karma_points_granted_total",
		Help: "Total karma points credited to authors, by like source type",
	}, []string{"source_type"})

	// LikeConflicts counts like requests rejected by the uniqueness constraint.
	LikeConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hearth_like_conflicts_total",
		Help: "Total like requests rejected as duplicates by the storage constraint",
	})

	// LeaderboardQueryLatency records the latency of leaderboard aggregation queries.
	LeaderboardQueryLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "hearth_leaderboard_query_latency_seconds",
		Help:    "Karma leaderboard aggregation query latency in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hearth_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
