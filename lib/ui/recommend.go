package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/icco/movierecs/lib/metrics"
	"github.com/icco/movierecs/lib/render"
	"github.com/icco/movierecs/lib/validation"
	"github.com/icco/movierecs/models"
)

// Recommendation flows.
const (
	FlowMovie       = "movie"
	FlowPreferences = "preferences"
)

// PreferencesTitle is the results heading for the by-preferences flow.
const PreferencesTitle = "Movies matching your preferences"

// SimilarTitle is the results heading for the by-movie flow.
func SimilarTitle(title string) string {
	return "Movies similar to " + title
}

type recommendationsMsg struct {
	flow   string
	title  string
	movies []models.Movie
	err    error
}

type browseLoadedMsg struct {
	movies []models.Movie
	err    error
}

// RecommendByMovie requests movies similar to the selected movie. With
// nothing selected it raises a warning and makes no request.
func (m Model) RecommendByMovie() (Model, tea.Cmd) {
	selected := m.state.Selected()
	if err := validation.ValidateSelection(selected); err != nil {
		return m.block(FlowMovie, err), nil
	}

	title := selected.Title
	return m.request(FlowMovie, SimilarTitle(title), func(ctx context.Context) ([]models.Movie, error) {
		return m.backend.RecommendByMovie(ctx, title)
	})
}

// RecommendByPreferences requests movies matching the preference form.
// With every field empty it raises a warning and makes no request.
func (m Model) RecommendByPreferences() (Model, tea.Cmd) {
	q := m.prefs.query()
	if err := validation.ValidatePreferences(q); err != nil {
		return m.block(FlowPreferences, err), nil
	}

	return m.request(FlowPreferences, PreferencesTitle, func(ctx context.Context) ([]models.Movie, error) {
		return m.backend.RecommendByPreferences(ctx, q)
	})
}

func (m Model) block(flow string, err error) Model {
	metrics.PreconditionBlocks.WithLabelValues(flow).Inc()
	m.warning = WarningFor(err)
	return m
}

// WarningFor maps a precondition error onto the warning shown to the user.
func WarningFor(err error) string {
	switch {
	case errors.Is(err, validation.ErrNoSelection):
		return WarnNoSelection
	case errors.Is(err, validation.ErrNoPreferences):
		return WarnNoPreferences
	default:
		return err.Error()
	}
}

// request marks the client busy and returns the command performing fetch.
// The command always yields a recommendationsMsg, even if fetch panics, so
// the busy mark is always released.
func (m Model) request(flow, title string, fetch func(context.Context) ([]models.Movie, error)) (Model, tea.Cmd) {
	m.busy++
	ctx := m.ctx
	cmd := func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				msg = recommendationsMsg{flow: flow, title: title, err: fmt.Errorf("recommendation request panicked: %v", r)}
			}
		}()
		movies, err := fetch(ctx)
		return recommendationsMsg{flow: flow, title: title, movies: movies, err: err}
	}

	if m.busy == 1 {
		return m, tea.Batch(cmd, m.spinner.Tick)
	}
	return m, cmd
}

// applyRecommendations releases the busy mark and shows the response. On
// failure the previous results stay as they were.
func (m Model) applyRecommendations(msg recommendationsMsg) Model {
	m.busy = max(0, m.busy-1)

	if msg.err != nil {
		m.logError("Error getting recommendations", msg.err, slog.String("flow", msg.flow))
		m.warning = WarnRequestFailed
		return m
	}

	m.results = render.Render(msg.movies, msg.title)
	m.showResults = true
	m.resultsView.SetContent(m.results.Text(m.width))
	m.resultsView.GotoTop()
	m.logger.InfoContext(m.ctx, "Rendered recommendations",
		slog.String("flow", msg.flow),
		slog.Int("count", len(msg.movies)))
	return m
}

func (m Model) loadBrowse() tea.Cmd {
	backend, ctx := m.backend, m.ctx
	return func() tea.Msg {
		movies, err := backend.ListMovies(ctx)
		return browseLoadedMsg{movies: movies, err: err}
	}
}

// applyBrowse replaces the listing. Failures are logged and the listing is
// left unchanged.
func (m Model) applyBrowse(msg browseLoadedMsg) Model {
	if msg.err != nil {
		m.logError("Error loading movies", msg.err)
		return m
	}
	m.browse = render.RenderBrowse(msg.movies)
	m.browseView.SetContent(m.browse.Text(m.width))
	return m
}
