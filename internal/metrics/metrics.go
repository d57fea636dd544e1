// Package metrics holds the Prometheus collectors shared by the API client,
// the response cache and the web shell.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// APIRequests counts outbound API calls by path template and outcome
	// ("ok", "http_error", "transport_error", "bad_body", "rejected").
	APIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movierec_api_requests_total",
			Help: "Total number of movie API requests by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "movierec_api_request_duration_seconds",
			Help:    "Latency of movie API requests in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25},
		},
		[]string{"endpoint"},
	)

	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "movierec_response_cache_hits_total",
			Help: "Total number of API responses served from the short-lived cache",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "movierec_response_cache_misses_total",
			Help: "Total number of API lookups that missed the cache",
		},
	)

	// BreakerState is 0 closed, 1 half-open, 2 open.
	BreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "movierec_api_circuit_breaker_state",
			Help: "Movie API circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	PageRenders = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movierec_page_renders_total",
			Help: "Total number of rendered screens by screen and outcome",
		},
		[]string{"screen", "outcome"},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "movierec_web_sessions",
			Help: "Number of browser sessions held in memory",
		},
	)
)
