package validation

import (
	"errors"
	"testing"

	"github.com/icco/movierecs/models"
)

func TestValidateSelection(t *testing.T) {
	if err := ValidateSelection(nil); !errors.Is(err, ErrNoSelection) {
		t.Errorf("nil selection: got %v, want ErrNoSelection", err)
	}
	if err := ValidateSelection(&models.Movie{}); !errors.Is(err, ErrNoSelection) {
		t.Errorf("untitled selection: got %v, want ErrNoSelection", err)
	}
	if err := ValidateSelection(&models.Movie{Title: "Heat"}); err != nil {
		t.Errorf("valid selection: unexpected error %v", err)
	}
}

func TestValidatePreferences(t *testing.T) {
	tests := []struct {
		name    string
		query   models.PreferenceQuery
		wantErr bool
	}{
		{"all empty", models.NewPreferenceQuery("", "", ""), true},
		{"whitespace only", models.NewPreferenceQuery("  ", "\t", " "), true},
		{"genres only", models.NewPreferenceQuery("Drama", "", ""), false},
		{"director only", models.NewPreferenceQuery("", "Nolan", ""), false},
		{"keywords only", models.NewPreferenceQuery("", "", "heist"), false},
		{"all set", models.NewPreferenceQuery("Crime", "Mann", "heist"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePreferences(tt.query)
			if tt.wantErr && !errors.Is(err, ErrNoPreferences) {
				t.Errorf("got %v, want ErrNoPreferences", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error %v", err)
			}
		})
	}
}

func TestSearchQuery(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"", "", false},
		{"a", "a", false},
		{"  a  ", "a", false},
		{"ab", "ab", true},
		{" heat ", "heat", true},
		{"é", "é", false},
		{"él", "él", true},
	}

	for _, tt := range tests {
		got, ok := SearchQuery(tt.in, 2)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("SearchQuery(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestValidateAndParseMovieList(t *testing.T) {
	movies, err := ValidateAndParseMovieList([]byte(`[
		{"title": "Heat", "year": 1995, "genres": "Crime,Drama", "rating": 8.3, "director": "Michael Mann", "poster": "http://x/heat.jpg", "keywords": "heist"},
		{"title": "Alien", "year": 1979, "genres": "Horror", "rating": 8.5, "director": "Ridley Scott", "poster": ""}
	]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(movies) != 2 {
		t.Fatalf("got %d movies, want 2", len(movies))
	}
	if movies[0].Title != "Heat" || movies[0].Year != 1995 || movies[0].Rating != 8.3 || movies[0].Keywords != "heist" {
		t.Errorf("unexpected first movie: %+v", movies[0])
	}
	if movies[1].Director != "Ridley Scott" {
		t.Errorf("unexpected second movie: %+v", movies[1])
	}

	empty, err := ValidateAndParseMovieList([]byte(`[]`))
	if err != nil {
		t.Fatalf("unexpected error for empty list: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("empty list: got %#v, want non-nil empty slice", empty)
	}
}

func TestValidateAndParseMovieListYear(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"integer", `[{"title": "Heat", "year": 1995}]`, 1995},
		{"whole float", `[{"title": "Heat", "year": 1995.0}]`, 1995},
		{"null", `[{"title": "Heat", "year": null}]`, 0},
		{"missing", `[{"title": "Heat"}]`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			movies, err := ValidateAndParseMovieList([]byte(tt.body))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(movies) != 1 || movies[0].Year != tt.want || movies[0].Title != "Heat" {
				t.Errorf("got %+v, want Heat with year %d", movies, tt.want)
			}
		})
	}
}

func TestValidateMovieListSchemaReused(t *testing.T) {
	for i := 0; i < 3; i++ {
		if err := ValidateMovieList([]byte(`[{"title": "Heat"}]`)); err != nil {
			t.Fatalf("call %d: unexpected error: %v", i, err)
		}
		if err := ValidateMovieList([]byte(`[{"year": 1995}]`)); err == nil {
			t.Fatalf("call %d: expected an error", i)
		}
	}
}

func TestValidateMovieListRejects(t *testing.T) {
	bodies := map[string]string{
		"error object":  `{"error": "Query parameter is required"}`,
		"missing title": `[{"year": 2000}]`,
		"title type":    `[{"title": 5}]`,
		"not json":      `<html>oops</html>`,
		"fraction year": `[{"title": "Heat", "year": 1995.5}]`,
		"string year":   `[{"title": "Heat", "year": "1995"}]`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			if _, err := ValidateAndParseMovieList([]byte(body)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
