// Package metrics exposes the API's Prometheus collectors on the default registry.
package metrics

import (
	"regexp"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "staybook"

var (
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method, route and status.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 15, 30},
	}, []string{"method", "route", "status"})

	RequestTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	RequestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "http_requests_in_flight",
		Help:      "Requests currently being served.",
	})

	ListingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listings_created_total",
		Help:      "Listings created.",
	})

	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_created_total",
		Help:      "Bookings created.",
	})

	// UploadsStored is labelled by source: "link" or "device".
	UploadsStored = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_stored_total",
		Help:      "Photo files written to the upload directory.",
	}, []string{"source"})
)

var (
	numericSegment = regexp.MustCompile(`/[0-9]+(/|$)`)
	uploadFile     = regexp.MustCompile(`^/uploads/.+`)
)

// NormalizePath maps a raw path to a low-cardinality route label for requests
// that matched no chi pattern: /listings/123 becomes /listings/{id} and every
// stored photo becomes /uploads/{file}.
func NormalizePath(path string) string {
	if uploadFile.MatchString(path) {
		return "/uploads/{file}"
	}
	return numericSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest observes one finished request.
func RecordRequest(method, route string, status int, seconds float64) {
	code := strconv.Itoa(status)
	RequestDuration.WithLabelValues(method, route, code).Observe(seconds)
	RequestTotal.WithLabelValues(method, route, code).Inc()
}

func IncListingsCreated() { ListingsCreated.Inc() }

func IncBookingsCreated() { BookingsCreated.Inc() }

func AddUploadsStored(source string, n int) {
	if n > 0 {
		UploadsStored.WithLabelValues(source).Add(float64(n))
	}
}
