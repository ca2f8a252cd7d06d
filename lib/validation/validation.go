package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/icco/movierecs/models"
)

var (
	// ErrNoSelection is returned when a by-movie request is attempted
	// before any movie was selected.
	ErrNoSelection = errors.New("no movie selected")
	// ErrNoPreferences is returned when a by-preferences request has no
	// non-empty field.
	ErrNoPreferences = errors.New("no preference entered")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct validates s against its `validate` tags and flattens the
// failures into a single error.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed on %s", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
}

// ValidateSelection checks that a seed movie exists for a by-movie request.
func ValidateSelection(m *models.Movie) error {
	if m == nil || m.Title == "" {
		return ErrNoSelection
	}
	return nil
}

// ValidatePreferences checks that at least one preference field is set.
func ValidatePreferences(q models.PreferenceQuery) error {
	if err := validate.Struct(q); err != nil {
		return ErrNoPreferences
	}
	return nil
}

// SearchQuery trims q and reports whether it is long enough to be sent
// to the search endpoint. Length is counted in runes.
func SearchQuery(q string, minLength int) (string, bool) {
	q = strings.TrimSpace(q)
	return q, utf8.RuneCountInString(q) >= minLength
}
