// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	bookingTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hotel_booking_transitions_total",
			Help: "Bookings entering each status",
		},
		[]string{"status"},
	)

	bookingRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hotel_booking_rejections_total",
			Help: "Booking attempts rejected, by reason",
		},
		[]string{"reason"},
	)

	payments = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hotel_payments_total",
			Help: "Payment attempts by method and outcome",
		},
		[]string{"method", "outcome"},
	)

	cacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hotel_cache_lookups_total",
			Help: "Room type cache lookups by result",
		},
		[]string{"result"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hotel_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// BookingTransition counts a booking reaching status.
func BookingTransition(status string) {
	bookingTransitions.WithLabelValues(status).Inc()
}

// BookingRejected counts a failed booking attempt.
func BookingRejected(reason string) {
	bookingRejections.WithLabelValues(reason).Inc()
}

// PaymentAttempt counts a payment attempt. outcome is "completed" or a failure reason.
func PaymentAttempt(method, outcome string) {
	payments.WithLabelValues(method, outcome).Inc()
}

// CacheLookup counts a cache hit, miss, or error.
func CacheLookup(result string) {
	cacheLookups.WithLabelValues(result).Inc()
}

// GinMiddleware observes request latency by route template.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		requestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
