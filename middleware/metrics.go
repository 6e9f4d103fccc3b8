// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nomad_http_requests_total",
			Help: "Total number of HTTP requests by route, method and status",
		},
		[]string{"route", "method", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nomad_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	// CityVotes counts accepted vote mutations by old->new transition.
	CityVotes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nomad_city_votes_total",
			Help: "Total number of accepted city vote changes",
		},
		[]string{"transition"},
	)

	// DegradedFetches counts list/sub-resource reads served empty after a failure.
	DegradedFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nomad_degraded_fetches_total",
			Help: "Total number of fetches that degraded to an empty result",
		},
		[]string{"resource"},
	)
)

// WithMetrics records request count and latency, labelled by the matched
// ServeMux pattern.
func WithMetrics(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := record(w)

		next(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		HTTPRequests.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()
		HTTPDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	}
}
