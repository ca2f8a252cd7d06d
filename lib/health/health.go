package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/icco/movierecs/models"
)

// Backend is what the health check needs from the recommendation client.
type Backend interface {
	ListMovies(ctx context.Context) ([]models.Movie, error)
	BaseURL() string
	BreakerState() string
}

// Health represents the health check response structure.
type Health struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Backend   struct {
		Status  string `json:"status"`
		URL     string `json:"url"`
		Breaker string `json:"breaker"`
		Movies  int    `json:"movies"`
		Message string `json:"message,omitempty"`
	} `json:"backend"`
}

// Check returns an HTTP handler that reports whether the recommendation
// backend answers and what state the circuit breaker is in.
func Check(backend Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		health := Health{
			Status:    "ok",
			Timestamp: time.Now(),
		}
		health.Backend.URL = backend.BaseURL()

		movies, err := backend.ListMovies(ctx)
		health.Backend.Breaker = backend.BreakerState()
		if err != nil {
			slog.WarnContext(ctx, "Backend health check failed", slog.Any("error", err))
			health.Status = "degraded"
			health.Backend.Status = "error"
			health.Backend.Message = "Recommendation backend unreachable"
			writeHealth(w, health, http.StatusServiceUnavailable)
			return
		}

		health.Backend.Status = "ok"
		health.Backend.Movies = len(movies)
		writeHealth(w, health, http.StatusOK)
	}
}

func writeHealth(w http.ResponseWriter, health Health, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(health); err != nil {
		slog.Error("Failed to encode health response", slog.Any("error", err))
	}
}
