// Package render maps movie records onto display cards. Rendering is pure:
// the same input always yields the same View, in input order.
package render

import (
	"math"
	"strconv"
	"strings"

	"github.com/icco/movierecs/models"
)

// MaxStars is the size of the star scale a 0-10 rating is mapped onto.
const MaxStars = 5

const (
	FilledStar = "★"
	EmptyStar  = "☆"
)

// Placeholder text for empty results.
const (
	NoRecommendations     = "No recommendations found"
	NoRecommendationsHint = "Try different search criteria"
	NoMovies              = "No movies found"
)

// Card is the display form of one movie.
type Card struct {
	Movie      models.Movie
	Stars      int
	EmptyStars int
}

// StarIcons returns the filled stars followed by the empty ones.
func (c Card) StarIcons() string {
	return strings.Repeat(FilledStar, c.Stars) + strings.Repeat(EmptyStar, c.EmptyStars)
}

// RatingLabel formats the raw rating the way the backend sent it.
func (c Card) RatingLabel() string {
	return strconv.FormatFloat(c.Movie.Rating, 'f', -1, 64)
}

// View is a rendered result set.
type View struct {
	// Title is the heading; browse views have none.
	Title  string
	Cards  []Card
	Browse bool
}

// Empty reports whether the view shows the placeholder instead of cards.
func (v View) Empty() bool {
	return len(v.Cards) == 0
}

// Placeholder returns the heading and hint shown for an empty view.
func (v View) Placeholder() (heading, hint string) {
	return v.PlaceholderHeading(), v.PlaceholderHint()
}

func (v View) PlaceholderHeading() string {
	if v.Browse {
		return NoMovies
	}
	return NoRecommendations
}

func (v View) PlaceholderHint() string {
	if v.Browse {
		return ""
	}
	return NoRecommendationsHint
}

// Stars converts a 0-10 rating into filled and empty counts on a five star
// scale: filled = round(rating / 2), with halves rounded up.
func Stars(rating float64) (filled, empty int) {
	if math.IsNaN(rating) {
		return 0, MaxStars
	}
	filled = int(math.Floor(rating/2 + 0.5))
	filled = max(0, min(MaxStars, filled))
	return filled, MaxStars - filled
}

func NewCard(m models.Movie) Card {
	filled, empty := Stars(m.Rating)
	return Card{Movie: m, Stars: filled, EmptyStars: empty}
}

// Render builds the recommendation view for movies under title.
func Render(movies []models.Movie, title string) View {
	return View{Title: title, Cards: cards(movies)}
}

// RenderBrowse builds the full listing view, which has no heading.
func RenderBrowse(movies []models.Movie) View {
	return View{Cards: cards(movies), Browse: true}
}

func cards(movies []models.Movie) []Card {
	out := make([]Card, 0, len(movies))
	for _, m := range movies {
		out = append(out, NewCard(m))
	}
	return out
}
