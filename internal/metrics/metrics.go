// Package metrics registers the Prometheus collectors of the service and
// the echo middleware that feeds the HTTP ones.
package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	Reservations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flight_reservations_total",
			Help: "Reservation attempts by outcome",
		},
		[]string{"outcome"},
	)
	Cancellations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flight_cancellations_total",
			Help: "Cancellation attempts by outcome",
		},
		[]string{"outcome"},
	)
	RefundAmount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "flight_refund_amount_total",
			Help: "Sum of refunds granted, in KRW",
		},
	)
	Notifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flight_notifications_total",
			Help: "Reservation notifications by delivery result",
		},
		[]string{"result"},
	)
)

// Outcome labels shared by the booking counters.
const (
	OutcomeSuccess      = "success"
	OutcomeInvalidInput = "invalid_input"
	OutcomeNotFound     = "not_found"
	OutcomeConflict     = "conflict"
	OutcomeExhausted    = "exhausted"
	OutcomeError        = "error"
)

// NormalizePath collapses a route to its first two segments so path
// parameters do not explode label cardinality.
func NormalizePath(p string) string {
	p = strings.Trim(p, "/")
	if p == "" {
		return "root"
	}
	parts := strings.SplitN(p, "/", 3)
	if len(parts) > 2 {
		parts = parts[:2]
	}
	return strings.Join(parts, "/")
}

// Middleware records request count and latency.  The matched route
// pattern is used when available.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().URL.Path == "/metrics" {
				return next(c)
			}
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			route := c.Path()
			if route == "" {
				route = c.Request().URL.Path
			}
			path := NormalizePath(route)
			status := strconv.Itoa(c.Response().Status)
			RequestTotal.WithLabelValues(c.Request().Method, path, status).Inc()
			RequestDuration.WithLabelValues(c.Request().Method, path).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}
