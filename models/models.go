package models

import (
	"strings"

	"github.com/goccy/go-json"
)

// Movie is a movie record as returned by the recommendation backend.
// Records are decoded verbatim and never mutated locally.
type Movie struct {
	Title    string  `json:"title"`
	Year     int     `json:"year"`
	Genres   string  `json:"genres"`
	Rating   float64 `json:"rating"`
	Director string  `json:"director"`
	Poster   string  `json:"poster"`
	Keywords string  `json:"keywords,omitempty"`
}

// movieWire mirrors Movie on the wire. Year is decoded as a float so that
// whole numbers written as 1995.0 are accepted.
type movieWire struct {
	Title    string   `json:"title"`
	Year     *float64 `json:"year"`
	Genres   string   `json:"genres"`
	Rating   float64  `json:"rating"`
	Director string   `json:"director"`
	Poster   string   `json:"poster"`
	Keywords string   `json:"keywords"`
}

// UnmarshalJSON decodes a backend record. A null or missing year leaves
// Year at zero.
func (m *Movie) UnmarshalJSON(data []byte) error {
	var w movieWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*m = Movie{
		Title:    w.Title,
		Genres:   w.Genres,
		Rating:   w.Rating,
		Director: w.Director,
		Poster:   w.Poster,
		Keywords: w.Keywords,
	}
	if w.Year != nil {
		m.Year = int(*w.Year)
	}
	return nil
}

// GetTitle returns the movie title, which is also its identity.
func (m Movie) GetTitle() string {
	return m.Title
}

// PreferenceQuery holds the free-text fields of a by-preferences request.
// It is built fresh for every request.
type PreferenceQuery struct {
	Genres   string `validate:"required_without_all=Director Keywords"`
	Director string `validate:"required_without_all=Genres Keywords"`
	Keywords string `validate:"required_without_all=Genres Director"`
}

// NewPreferenceQuery builds a query with surrounding whitespace removed
// from every field.
func NewPreferenceQuery(genres, director, keywords string) PreferenceQuery {
	return PreferenceQuery{
		Genres:   strings.TrimSpace(genres),
		Director: strings.TrimSpace(director),
		Keywords: strings.TrimSpace(keywords),
	}
}

// IsEmpty reports whether no preference field is set.
func (q PreferenceQuery) IsEmpty() bool {
	return q.Genres == "" && q.Director == "" && q.Keywords == ""
}
