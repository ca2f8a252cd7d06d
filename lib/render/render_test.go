package render

import (
	"math"
	"strings"
	"testing"

	"github.com/icco/movierecs/models"
)

func TestStars(t *testing.T) {
	tests := []struct {
		rating float64
		filled int
	}{
		{0, 0},
		{0.9, 0},
		{1, 1}, // 0.5 rounds up
		{2.9, 1},
		{3, 2}, // 1.5 rounds up
		{4.4, 2},
		{5, 3},
		{6.9, 3},
		{7, 4},
		{8.3, 4},
		{8.9, 4},
		{9, 5},
		{10, 5},
	}

	for _, tt := range tests {
		filled, empty := Stars(tt.rating)
		if filled != tt.filled {
			t.Errorf("Stars(%v) filled = %d, want %d", tt.rating, filled, tt.filled)
		}
		if filled+empty != MaxStars {
			t.Errorf("Stars(%v) = %d+%d, want total %d", tt.rating, filled, empty, MaxStars)
		}
	}
}

func TestStarsDomain(t *testing.T) {
	for r := 0.0; r <= 10.0; r += 0.05 {
		filled, empty := Stars(r)
		want := int(math.Floor(r/2 + 0.5))
		if filled != want {
			t.Fatalf("Stars(%v) = %d, want round(r/2) = %d", r, filled, want)
		}
		if filled < 0 || filled > MaxStars || empty != MaxStars-filled {
			t.Fatalf("Stars(%v) = %d, %d out of range", r, filled, empty)
		}
	}
}

func TestStarsClampsOutOfRange(t *testing.T) {
	if filled, empty := Stars(-3); filled != 0 || empty != 5 {
		t.Errorf("Stars(-3) = %d, %d", filled, empty)
	}
	if filled, empty := Stars(42); filled != 5 || empty != 0 {
		t.Errorf("Stars(42) = %d, %d", filled, empty)
	}
	if filled, empty := Stars(math.NaN()); filled != 0 || empty != 5 {
		t.Errorf("Stars(NaN) = %d, %d", filled, empty)
	}
}

func TestRenderEmpty(t *testing.T) {
	v := Render([]models.Movie{}, "Movies similar to Heat")
	if !v.Empty() {
		t.Fatal("expected empty view")
	}
	heading, hint := v.Placeholder()
	if heading != NoRecommendations || hint != NoRecommendationsHint {
		t.Errorf("placeholder = %q, %q", heading, hint)
	}
	if v.Title != "Movies similar to Heat" {
		t.Errorf("title = %q", v.Title)
	}

	text := v.Text(120)
	if !strings.Contains(text, NoRecommendations) {
		t.Errorf("text missing placeholder: %s", text)
	}
	if strings.Contains(text, FilledStar) || strings.Contains(text, EmptyStar) {
		t.Errorf("empty view rendered stars: %s", text)
	}

	if v := Render(nil, "t"); !v.Empty() {
		t.Error("nil input should render the empty view")
	}
}

func TestRenderPreservesOrderAndCount(t *testing.T) {
	movies := []models.Movie{
		{Title: "Zodiac", Rating: 7.7},
		{Title: "Alien", Rating: 8.5},
		{Title: "Zodiac", Rating: 7.7},
	}

	v := Render(movies, "Movies matching your preferences")
	if len(v.Cards) != 3 {
		t.Fatalf("got %d cards, want 3", len(v.Cards))
	}

	wantTitles := []string{"Zodiac", "Alien", "Zodiac"}
	wantStars := []int{4, 4, 4}
	for i, c := range v.Cards {
		if c.Movie.Title != wantTitles[i] {
			t.Errorf("card %d title = %q, want %q", i, c.Movie.Title, wantTitles[i])
		}
		if c.Stars != wantStars[i] || c.EmptyStars != MaxStars-wantStars[i] {
			t.Errorf("card %d stars = %d/%d", i, c.Stars, c.EmptyStars)
		}
	}
}

func TestCardStarIcons(t *testing.T) {
	c := NewCard(models.Movie{Title: "Heat", Rating: 6})
	if got := c.StarIcons(); got != "★★★☆☆" {
		t.Errorf("StarIcons() = %q", got)
	}
	if got := c.RatingLabel(); got != "6" {
		t.Errorf("RatingLabel() = %q", got)
	}
	if got := NewCard(models.Movie{Rating: 8.3}).RatingLabel(); got != "8.3" {
		t.Errorf("RatingLabel() = %q", got)
	}
}

func TestCardSubtitle(t *testing.T) {
	tests := []struct {
		movie models.Movie
		want  string
	}{
		{models.Movie{Year: 1995, Genres: "Crime"}, "1995 • Crime"},
		{models.Movie{Genres: "Crime"}, "Crime"},
		{models.Movie{}, ""},
	}

	for _, tt := range tests {
		if got := NewCard(tt.movie).Subtitle(); got != tt.want {
			t.Errorf("Subtitle(%+v) = %q, want %q", tt.movie, got, tt.want)
		}
	}

	text := NewCard(models.Movie{Title: "Heat", Genres: "Crime"}).Text()
	if strings.Contains(text, "0 •") || !strings.Contains(text, "Crime") {
		t.Errorf("card without a year rendered as:\n%s", text)
	}
}

func TestRenderBrowse(t *testing.T) {
	v := RenderBrowse(nil)
	if v.Title != "" || !v.Browse {
		t.Errorf("unexpected browse view %+v", v)
	}
	if heading, hint := v.Placeholder(); heading != NoMovies || hint != "" {
		t.Errorf("placeholder = %q, %q", heading, hint)
	}

	v = RenderBrowse([]models.Movie{{Title: "Heat", Year: 1995, Genres: "Crime", Director: "Michael Mann", Rating: 8.3}})
	text := v.Text(80)
	for _, want := range []string{"Heat", "1995 • Crime", "Michael Mann", "★★★★☆", "8.3"} {
		if !strings.Contains(text, want) {
			t.Errorf("text missing %q:\n%s", want, text)
		}
	}
}
