package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/icco/movierecs/lib/metrics"
	"github.com/icco/movierecs/lib/validation"
	"github.com/icco/movierecs/models"
	gobreaker "github.com/sony/gobreaker/v2"
)

// RecommendationCount is the number of recommendations requested per call.
const RecommendationCount = 8

// Operation names used in logs and metrics.
const (
	OpSearch               = "search"
	OpListMovies           = "list_movies"
	OpRecommendMovie       = "recommend_movie"
	OpRecommendPreferences = "recommend_preferences"
)

// maxBodySize bounds how much of a response body is read.
const maxBodySize = 16 << 20

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// Client talks to the movie recommendation backend. It is safe for
// concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	breaker    *gobreaker.CircuitBreaker[[]models.Movie]
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

func NewClient(baseURL string, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Search looks up movies whose title contains query.
func (c *Client) Search(ctx context.Context, query string) ([]models.Movie, error) {
	return c.getMovies(ctx, OpSearch, "/search", url.Values{"q": {query}})
}

// ListMovies returns every movie the backend knows about.
func (c *Client) ListMovies(ctx context.Context) ([]models.Movie, error) {
	return c.getMovies(ctx, OpListMovies, "/movies", nil)
}

// RecommendByMovie returns movies similar to the one titled title.
func (c *Client) RecommendByMovie(ctx context.Context, title string) ([]models.Movie, error) {
	params := url.Values{
		"title": {title},
		"num":   {strconv.Itoa(RecommendationCount)},
	}
	return c.getMovies(ctx, OpRecommendMovie, "/recommendations/movie", params)
}

// RecommendByPreferences returns movies matching q. Only non-empty fields
// are sent.
func (c *Client) RecommendByPreferences(ctx context.Context, q models.PreferenceQuery) ([]models.Movie, error) {
	params := url.Values{"num": {strconv.Itoa(RecommendationCount)}}
	if q.Genres != "" {
		params.Set("genres", q.Genres)
	}
	if q.Director != "" {
		params.Set("director", q.Director)
	}
	if q.Keywords != "" {
		params.Set("keywords", q.Keywords)
	}
	return c.getMovies(ctx, OpRecommendPreferences, "/recommendations/preferences", params)
}

func (c *Client) getMovies(ctx context.Context, op, path string, params url.Values) ([]models.Movie, error) {
	start := time.Now()
	movies, err := c.execute(func() ([]models.Movie, error) {
		body, err := c.get(ctx, path, params)
		if err != nil {
			return nil, err
		}
		movies, err := validation.ValidateAndParseMovieList(body)
		if err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
		return movies, nil
	})
	rejected := errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
	metrics.RecordAPIRequest(op, time.Since(start), err, rejected)

	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c.logger.DebugContext(ctx, "Backend request complete",
		slog.String("operation", op),
		slog.Int("count", len(movies)),
		slog.Duration("elapsed", time.Since(start)))
	return movies, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path, params), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Error("failed to close response body", slog.Any("error", err))
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	return body, nil
}

// endpoint joins path onto the base URL and percent-encodes params, with
// spaces as %20.
func (c *Client) endpoint(path string, params url.Values) string {
	u := c.baseURL + path
	if len(params) == 0 {
		return u
	}
	return u + "?" + strings.ReplaceAll(params.Encode(), "+", "%20")
}
