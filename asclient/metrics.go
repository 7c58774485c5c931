// Package asclient Prometheus metrics.
//
// Purpose:
//
//	Define and register Prometheus collectors for API request outcomes,
//	latencies and retries. Collectors register with the default registry when
//	the package is imported; exposing them is the host process's concern.
//
// Dependencies:
//   - github.com/prometheus/client_golang/prometheus: Prometheus Go client
package asclient

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace = "as_client"
	metricsSubsystem = "http"
)

var (
	// requestsTotal counts API requests by method, resource and status code.
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "requests_total",
			Help:      "Total number of Analysis Services API requests by method, resource and status",
		},
		[]string{"method", "resource", "status"}, // status: HTTP code, or "error" for transport failures
	)

	// requestDuration measures API request latency.
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "request_duration_seconds",
			Help:      "Duration of Analysis Services API requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "resource"},
	)

	// retriesTotal counts request retries.
	retriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "retries_total",
			Help:      "Total number of Analysis Services API request retries",
		},
	)
)

// recordRequest records the outcome of a single API request. A status of 0
// indicates a transport failure with no response.
func recordRequest(method, resource string, status int, elapsed time.Duration) {
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	requestsTotal.WithLabelValues(method, resource, code).Inc()
	requestDuration.WithLabelValues(method, resource).Observe(elapsed.Seconds())
}

// recordRetry records a single request retry.
func recordRetry() {
	retriesTotal.Inc()
}
