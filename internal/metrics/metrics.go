// AngelaMos | 2026
// metrics.go

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "console"

var (
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	RequestErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_errors_total",
			Help:      "Total number of HTTP responses with status >= 400",
		},
		[]string{"method", "route", "status"},
	)

	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_attempts_total",
			Help:      "Login attempts by role, strategy and outcome",
		},
		[]string{"role", "strategy", "outcome"},
	)

	GuardRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "guard_rejections_total",
			Help:      "Requests rejected by the authorization guard",
		},
		[]string{"role", "reason"},
	)

	CascadeRows = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cascade_deleted_rows_total",
			Help:      "Rows removed by cascading deletes per table",
		},
		[]string{"table"},
	)

	RateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Requests rejected by a rate limiter bucket family",
		},
		[]string{"limiter"},
	)

	RemoteCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "remote_api_call_duration_seconds",
			Help:      "Duration of calls to the marketplace API",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "resource", "status"},
	)
)

func Handler() http.Handler {
	return promhttp.Handler()
}

func ObserveRequest(method, route string, status int, elapsed time.Duration) {
	code := strconv.Itoa(status)
	RequestDuration.WithLabelValues(method, route, code).Observe(elapsed.Seconds())
	if status >= http.StatusBadRequest {
		RequestErrors.WithLabelValues(method, route, code).Inc()
	}
}

func RecordLogin(role, strategy, outcome string) {
	LoginAttempts.WithLabelValues(role, strategy, outcome).Inc()
}

func RecordGuardRejection(role, reason string) {
	GuardRejections.WithLabelValues(role, reason).Inc()
}

func RecordRateLimited(limiter string) {
	RateLimited.WithLabelValues(limiter).Inc()
}

func RecordCascade(counts map[string]int64) {
	for table, n := range counts {
		CascadeRows.WithLabelValues(table).Add(float64(n))
	}
}

// TrackRemoteCall returns a func that records the call duration once the
// status is known. Status 0 means the request never got a response.
func TrackRemoteCall(method, resource string) func(status int) {
	start := time.Now()
	return func(status int) {
		RemoteCallDuration.
			WithLabelValues(method, resource, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
	}
}
