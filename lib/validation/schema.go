package validation

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/icco/movierecs/models"
	"github.com/xeipuuv/gojsonschema"
)

// MovieListSchema is the JSON schema every backend listing, search and
// recommendation response must satisfy.
var MovieListSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"properties": {
			"title": {"type": "string"},
			"year": {"type": ["integer", "null"]},
			"genres": {"type": ["string", "null"]},
			"rating": {"type": ["number", "null"]},
			"director": {"type": ["string", "null"]},
			"poster": {"type": ["string", "null"]},
			"keywords": {"type": ["string", "null"]}
		},
		"required": ["title"]
	}
}`

var movieListSchema = mustCompile(MovieListSchema)

func mustCompile(schema string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schema))
	if err != nil {
		panic(fmt.Sprintf("invalid JSON schema: %v", err))
	}
	return s
}

// ValidateMovieList validates a JSON document against MovieListSchema.
// Years must be whole numbers; 1995 and 1995.0 are both accepted.
func ValidateMovieList(jsonData []byte) error {
	result, err := movieListSchema.Validate(gojsonschema.NewBytesLoader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to validate JSON schema: %w", err)
	}

	if !result.Valid() {
		var errorMessages []string
		for _, desc := range result.Errors() {
			errorMessages = append(errorMessages, desc.String())
		}
		return fmt.Errorf("JSON validation failed: %s", strings.Join(errorMessages, "; "))
	}

	return nil
}

// ValidateAndParseMovieList validates and decodes a movie array. The
// returned slice is never nil on success.
func ValidateAndParseMovieList(jsonData []byte) ([]models.Movie, error) {
	if err := ValidateMovieList(jsonData); err != nil {
		return nil, err
	}

	movies := []models.Movie{}
	if err := json.Unmarshal(jsonData, &movies); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	return movies, nil
}
