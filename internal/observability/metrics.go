// Package observability provides metrics and tracing for the store layer.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "postapi_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// DatabaseQueryErrors counts failed database queries by operation, table and error code.
	DatabaseQueryErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "postapi_database_query_errors_total",
		Help: "Total number of failed database queries",
	}, []string{"operation", "table", "code"})

	// DatabaseAcquireFailures counts failures to obtain a pooled connection.
	DatabaseAcquireFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "postapi_database_acquire_failures_total",
		Help: "Total number of failed database connection acquisitions",
	})
)

// ObserveQuery records the latency of a database query.
func ObserveQuery(operation, table string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		ObserveQuery(operation, table, start)
	}
}

// CountQueryError records a failed query under the given classification code.
func CountQueryError(operation, table, code string) {
	DatabaseQueryErrors.WithLabelValues(operation, table, code).Inc()
}
