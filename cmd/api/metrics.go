package main

import (
	"database/sql"
	"expvar"
	"net/http"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/felixge/httpsnoop"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	totalRequestsReceived           = expvar.NewInt("total_requests_received")
	totalResponsesSent              = expvar.NewInt("total_responses_sent")
	totalProcessingTimeMicroseconds = expvar.NewInt("total_processing_time_μs")
	totalResponsesSentByStatus      = expvar.NewMap("total_responses_sent_by_status")

	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviedb_http_requests_total",
			Help: "Total number of HTTP responses by resource, method and status code",
		},
		[]string{"resource", "method", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "moviedb_http_request_duration_seconds",
			Help:    "Duration of HTTP request handling",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"resource", "method"},
	)
)

// publishExpvars exposes build and runtime information on /debug/vars.
func publishExpvars(postgresDB *sql.DB) {
	expvar.NewString("version").Set(version)

	// Publish the number of active goroutines.
	expvar.Publish("goroutines", expvar.Func(func() interface{} {
		return runtime.NumGoroutine()
	}))

	// Publish the database connection pool statistics.
	expvar.Publish("database", expvar.Func(func() interface{} {
		return postgresDB.Stats()
	}))

	// Publish the current Unix timestamp.
	expvar.Publish("timestamp", expvar.Func(func() interface{} {
		return time.Now().Unix()
	}))
}

func (app *application) metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		totalRequestsReceived.Add(1)

		m := httpsnoop.CaptureMetrics(next, w, r)

		totalResponsesSent.Add(1)
		totalProcessingTimeMicroseconds.Add(m.Duration.Microseconds())
		totalResponsesSentByStatus.Add(strconv.Itoa(m.Code), 1)

		resource := resourceLabel(r.URL.Path)
		httpRequests.WithLabelValues(resource, r.Method, strconv.Itoa(m.Code)).Inc()
		httpRequestDuration.WithLabelValues(resource, r.Method).Observe(m.Duration.Seconds())
	})
}

// resourceLabel reduces a request path to its first segment, keeping label
// cardinality bounded.
func resourceLabel(path string) string {
	segment, _, _ := strings.Cut(strings.TrimPrefix(path, "/"), "/")

	switch segment {
	case "movies", "directors", "genres", "healthcheck", "metrics", "debug":
		return segment
	default:
		return "other"
	}
}
