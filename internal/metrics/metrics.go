package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "bazzangee",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bazzangee",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bazzangee",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	uploads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bazzangee",
			Subsystem: "storage",
			Name:      "uploads_total",
			Help:      "Total number of image uploads to object storage.",
		},
		[]string{"result"},
	)

	uploadDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "bazzangee",
			Subsystem: "storage",
			Name:      "upload_duration_seconds",
			Help:      "Duration of image uploads.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~40s
		},
	)

	reviewOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bazzangee",
			Subsystem: "reviews",
			Name:      "operations_total",
			Help:      "Review mutations by operation and outcome.",
		},
		[]string{"operation", "result"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		uploads,
		uploadDuration,
		reviewOperations,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func IncInFlight() { httpInFlight.Inc() }
func DecInFlight() { httpInFlight.Dec() }

// ObserveHTTP records one finished request. path should be the route
// template so ids do not explode label cardinality.
func ObserveHTTP(method, path string, status int, duration time.Duration) {
	if path == "" {
		path = "unmatched"
	}
	method = strings.ToUpper(method)
	httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordUpload records an object storage upload.
func RecordUpload(success bool, duration time.Duration) {
	if duration <= 0 {
		duration = time.Millisecond
	}
	uploads.WithLabelValues(resultLabel(success)).Inc()
	uploadDuration.Observe(duration.Seconds())
}

// RecordReviewOperation counts create/update/delete/good outcomes.
func RecordReviewOperation(operation string, success bool) {
	reviewOperations.WithLabelValues(operation, resultLabel(success)).Inc()
}

func resultLabel(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
