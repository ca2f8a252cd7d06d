package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/icco/movierecs/lib/api"
	"github.com/icco/movierecs/models"
)

type checkBackend struct {
	mu     sync.Mutex
	paths  []string
	movies string
	failOn string
}

func (b *checkBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.paths = append(b.paths, r.URL.Path+"?"+r.URL.RawQuery)
	b.mu.Unlock()

	if r.URL.Path == b.failOn {
		http.Error(w, "boom", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, b.movies)
}

func newCheckClient(t *testing.T, b *checkBackend) *api.Client {
	t.Helper()
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)
	return api.NewClient(srv.URL+"/api", slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRunCheck(t *testing.T) {
	const heat = `[{"title": "Heat", "year": 1995, "genres": "Crime,Drama", "rating": 8.3, "director": "Michael Mann", "poster": ""}]`
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name      string
		backend   *checkBackend
		wantErr   bool
		wantCalls int
	}{
		{"all pass", &checkBackend{movies: heat}, false, 4},
		{"recommendation fails", &checkBackend{movies: heat, failOn: "/api/recommendations/movie"}, true, 4},
		{"listing fails", &checkBackend{movies: heat, failOn: "/api/movies"}, true, 2},
		{"empty listing", &checkBackend{movies: `[]`}, true, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runCheck(context.Background(), newCheckClient(t, tt.backend), logger)
			if (err != nil) != tt.wantErr {
				t.Errorf("runCheck() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got := len(tt.backend.paths); got != tt.wantCalls {
				t.Errorf("backend calls = %d, want %d: %v", got, tt.wantCalls, tt.backend.paths)
			}
		})
	}
}

func TestRunCheckSeedsPreferencesFromFirstGenre(t *testing.T) {
	b := &checkBackend{movies: `[{"title": "Heat", "genres": "Crime, Drama", "director": "Michael Mann"}]`}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	if err := runCheck(context.Background(), newCheckClient(t, b), logger); err != nil {
		t.Fatalf("runCheck() error = %v", err)
	}

	last := b.paths[len(b.paths)-1]
	if last != "/api/recommendations/preferences?genres=Crime&num=8" {
		t.Errorf("preferences request = %q", last)
	}
}

func TestSeedPreferences(t *testing.T) {
	tests := []struct {
		movie models.Movie
		want  models.PreferenceQuery
	}{
		{models.Movie{Genres: "Action,Sci-Fi"}, models.PreferenceQuery{Genres: "Action"}},
		{models.Movie{Genres: " ", Director: "Ridley Scott"}, models.PreferenceQuery{Director: "Ridley Scott"}},
		{models.Movie{Genres: "", Director: ""}, models.PreferenceQuery{}},
	}

	for _, tt := range tests {
		if got := seedPreferences(tt.movie); got != tt.want {
			t.Errorf("seedPreferences(%+v) = %+v, want %+v", tt.movie, got, tt.want)
		}
	}
}
