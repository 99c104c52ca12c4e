// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ScopeSingle = "single"
	ScopeAll    = "all"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "route", "status"},
	)

	StatsComputeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "habit_stats_compute_duration_seconds",
			Help:    "Time spent fetching completions and computing habit statistics",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
		[]string{"scope"},
	)

	StatsComputations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "habit_stats_computations_total",
			Help: "Number of per-habit statistics snapshots computed",
		},
		[]string{"scope"},
	)

	CompletionUpserts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "habit_completion_upserts_total",
			Help: "Number of completion records written",
		},
		[]string{"completed"},
	)
)

func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}

// RecordStats records one stats request that produced n snapshots.
func RecordStats(scope string, n int, duration time.Duration) {
	StatsComputeDuration.WithLabelValues(scope).Observe(duration.Seconds())
	StatsComputations.WithLabelValues(scope).Add(float64(n))
}

func RecordCompletionUpsert(completed bool) {
	CompletionUpserts.WithLabelValues(strconv.FormatBool(completed)).Inc()
}

func Handler() http.Handler {
	return promhttp.Handler()
}
