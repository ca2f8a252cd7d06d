package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/icco/movierecs/lib/api"
	"github.com/icco/movierecs/models"
)

// runCheck calls every backend operation once and logs what came back. It
// keeps going after a failure and reports how many steps failed.
func runCheck(ctx context.Context, client *api.Client, logger *slog.Logger) error {
	logger.Info("=== CHECKING BACKEND ===", slog.String("base_url", client.BaseURL()))

	failures := 0
	step := func(name string, fn func(ctx context.Context) ([]models.Movie, error)) []models.Movie {
		start := time.Now()
		movies, err := fn(ctx)
		if err != nil {
			failures++
			logger.Error("Check failed", slog.String("step", name), slog.Any("error", err))
			return nil
		}
		logger.Info("Check passed",
			slog.String("step", name),
			slog.Int("count", len(movies)),
			slog.Duration("duration", time.Since(start)))
		return movies
	}

	step("search", func(ctx context.Context) ([]models.Movie, error) {
		return client.Search(ctx, "the")
	})

	before := failures
	all := step("list movies", client.ListMovies)
	if len(all) == 0 {
		if failures == before {
			failures++
		}
		logger.Warn("No movies listed, skipping recommendation checks")
		return checkResult(failures)
	}

	seed := all[0]
	step("recommend by movie", func(ctx context.Context) ([]models.Movie, error) {
		return client.RecommendByMovie(ctx, seed.Title)
	})

	q := seedPreferences(seed)
	step("recommend by preferences", func(ctx context.Context) ([]models.Movie, error) {
		return client.RecommendByPreferences(ctx, q)
	})

	logger.Info("=== BACKEND CHECK COMPLETED ===", slog.Int("failures", failures))
	return checkResult(failures)
}

// seedPreferences builds a preference query from the first genre of m, or
// its director when it has no genres.
func seedPreferences(m models.Movie) models.PreferenceQuery {
	genre, _, _ := strings.Cut(m.Genres, ",")
	if strings.TrimSpace(genre) == "" {
		return models.NewPreferenceQuery("", m.Director, "")
	}
	return models.NewPreferenceQuery(genre, "", "")
}

func checkResult(failures int) error {
	if failures > 0 {
		return fmt.Errorf("backend check failed: %d step(s) failed", failures)
	}
	return nil
}
