package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FavoriteToggles counts add/remove attempts by target kind and outcome.
	FavoriteToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "holocron_favorite_toggles_total",
		Help: "Favorites add/remove attempts by kind, action and result",
	}, []string{"kind", "action", "result"})

	// RedisErrors counts failed Redis commands.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "holocron_redis_errors_total",
		Help: "Total number of failed Redis commands",
	}, []string{"command"})

	// DatabaseQueryLatency records repository query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "holocron_database_query_latency_seconds",
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

