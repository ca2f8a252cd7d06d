package api

import (
	"context"
	"errors"
	"log/slog"

	"github.com/icco/movierecs/lib/config"
	"github.com/icco/movierecs/lib/metrics"
	"github.com/icco/movierecs/models"
	gobreaker "github.com/sony/gobreaker/v2"
)

const breakerName = "recommendation-api"

// WithBreaker puts a circuit breaker in front of every backend call. An
// open breaker fails calls immediately with gobreaker.ErrOpenState, which
// callers handle like any transport failure.
func WithBreaker(cfg config.BreakerConfig) Option {
	return func(c *Client) {
		if !cfg.Enabled {
			return
		}

		metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

		c.breaker = gobreaker.NewCircuitBreaker[[]models.Movie](gobreaker.Settings{
			Name:        breakerName,
			MaxRequests: 1,
			Timeout:     cfg.Timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= cfg.Failures
			},
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, context.Canceled)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				c.logger.Warn("Circuit breaker state change",
					slog.String("name", name),
					slog.String("from", from.String()),
					slog.String("to", to.String()))
				metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
				metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
			},
		})
	}
}

// BreakerState reports the breaker state, or "disabled".
func (c *Client) BreakerState() string {
	if c.breaker == nil {
		return "disabled"
	}
	return c.breaker.State().String()
}

func (c *Client) execute(fn func() ([]models.Movie, error)) ([]models.Movie, error) {
	if c.breaker == nil {
		return fn()
	}
	return c.breaker.Execute(fn)
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
