package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestCounter counts HTTP requests by status code, method, and route pattern
	RequestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swiss_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"status", "method", "path"},
	)

	// RequestDuration measures HTTP request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "swiss_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status", "method", "path"},
	)

	// RequestInProgress counts HTTP requests currently being processed
	RequestInProgress = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "swiss_http_requests_in_progress",
			Help: "Number of HTTP requests currently being processed",
		},
		[]string{"method"},
	)

	// RateLimiterRejections counts requests rejected by the per-IP limiter
	RateLimiterRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "swiss_rate_limiter_rejections_total",
			Help: "Total number of requests rejected by rate limiter",
		},
	)

	// RoundsGenerated counts rounds produced by each pairing generator
	RoundsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swiss_rounds_generated_total",
			Help: "Total number of rounds generated",
		},
		[]string{"generator"},
	)

	// RepeatOpponentViolations counts boards where the generator had to pair a repeat
	RepeatOpponentViolations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "swiss_repeat_opponent_violations_total",
			Help: "Total number of generated boards pairing players who already met",
		},
	)

	// ResultsRecorded counts result edits by outcome ("1-0", "0-1", "0.5-0.5", "cleared")
	ResultsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swiss_results_recorded_total",
			Help: "Total number of pairing results entered or cleared",
		},
		[]string{"result"},
	)

	// TournamentsFinished counts tournaments that reached their last round
	TournamentsFinished = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "swiss_tournaments_finished_total",
			Help: "Total number of finished tournaments",
		},
	)

	// WebSocketConnections tracks open websocket clients
	WebSocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "swiss_websocket_connections",
			Help: "Number of open websocket connections",
		},
	)
)
