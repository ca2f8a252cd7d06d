package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Backend client
	APIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movierecs_api_requests_total",
			Help: "Backend requests by operation and outcome",
		},
		[]string{"operation", "outcome"}, // outcome: "success", "failure", "rejected"
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "movierecs_api_request_duration_seconds",
			Help:    "Duration of backend requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "movierecs_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movierecs_circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// Interaction flows
	PreconditionBlocks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movierecs_precondition_blocks_total",
			Help: "Recommendation requests blocked before any network activity",
		},
		[]string{"flow"}, // "movie", "preferences"
	)
)

// RecordAPIRequest records one backend call. rejected marks calls refused
// by the circuit breaker without reaching the backend.
func RecordAPIRequest(operation string, duration time.Duration, err error, rejected bool) {
	outcome := "success"
	switch {
	case rejected:
		outcome = "rejected"
	case err != nil:
		outcome = "failure"
	}

	APIRequests.WithLabelValues(operation, outcome).Inc()
	if !rejected {
		APIRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
	}
}
