package ui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/icco/movierecs/lib/debounce"
	"github.com/icco/movierecs/lib/validation"
	"github.com/icco/movierecs/models"
)

const searchPrompt = "Movie: "

type searchResultsMsg struct {
	query  string
	movies []models.Movie
	err    error
}

// candidate is one row of the search result list. Rows are addressed by
// id; the movie itself never leaves the controller.
type candidate struct {
	id    string
	movie models.Movie
}

type searchController struct {
	input     textinput.Model
	debounce  debounce.Debouncer
	minLength int

	candidates []candidate
	byID       map[string]models.Movie
	open       bool
	cursor     int
}

func newSearchController(delay time.Duration, minLength int) searchController {
	ti := textinput.New()
	ti.Prompt = searchPrompt
	ti.Placeholder = "Start typing a movie title..."
	ti.CharLimit = 200

	return searchController{
		input:     ti,
		debounce:  debounce.New(delay),
		minLength: minLength,
		byID:      map[string]models.Movie{},
	}
}

func (s *searchController) focus() tea.Cmd {
	return s.input.Focus()
}

func (s *searchController) close() {
	s.open = false
}

// setCandidates replaces the list, giving every row a fresh identifier.
func (s *searchController) setCandidates(movies []models.Movie) {
	s.candidates = make([]candidate, 0, len(movies))
	s.byID = make(map[string]models.Movie, len(movies))
	for _, m := range movies {
		id := uuid.NewString()
		s.candidates = append(s.candidates, candidate{id: id, movie: m})
		s.byID[id] = m
	}
	s.cursor = 0
	s.open = true
}

// listRows is the number of screen rows the open list occupies; an empty
// result still shows its placeholder row.
func (s searchController) listRows() int {
	if !s.open {
		return 0
	}
	return max(1, len(s.candidates))
}

// CandidateIDs returns the row identifiers of the current result list in
// display order.
func (m Model) CandidateIDs() []string {
	ids := make([]string, 0, len(m.search.candidates))
	for _, c := range m.search.candidates {
		ids = append(ids, c.id)
	}
	return ids
}

// CandidatesOpen reports whether the result list is visible.
func (m Model) CandidatesOpen() bool {
	return m.search.open
}

// SearchValue returns the text of the search field.
func (m Model) SearchValue() string {
	return m.search.input.Value()
}

// Search issues a lookup for query. Queries shorter than the minimum
// length hide the list instead and make no request.
func (m Model) Search(query string) (Model, tea.Cmd) {
	query, ok := validation.SearchQuery(query, m.search.minLength)
	if !ok {
		m.search.close()
		return m, nil
	}

	backend, ctx := m.backend, m.ctx
	return m, func() tea.Msg {
		movies, err := backend.Search(ctx, query)
		return searchResultsMsg{query: query, movies: movies, err: err}
	}
}

// applySearchResults shows a completed search. Failures are logged and
// leave the UI as it was.
func (m Model) applySearchResults(msg searchResultsMsg) Model {
	if msg.err != nil {
		m.logError("Search error", msg.err, slog.String("query", msg.query))
		return m
	}
	m.search.setCandidates(msg.movies)
	return m
}

// SelectCandidate makes the movie in row id the selected movie, puts its
// title in the search field and closes the list. Unknown ids are ignored.
func (m Model) SelectCandidate(id string) Model {
	movie, ok := m.search.byID[id]
	if !ok {
		return m
	}
	m.state.Select(movie)
	m.search.debounce.Cancel()
	m.search.input.SetValue(movie.Title)
	m.search.input.CursorEnd()
	m.search.close()
	m.logger.DebugContext(m.ctx, "Selected movie", slog.String("title", movie.Title))
	return m
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.search
	switch {
	case key.Matches(msg, m.keys.Dismiss):
		s.close()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if s.open {
			s.cursor = max(0, s.cursor-1)
		} else {
			m.resultsView.LineUp(1)
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if s.open {
			s.cursor = min(max(0, len(s.candidates)-1), s.cursor+1)
		} else {
			m.resultsView.LineDown(1)
		}
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.resultsView.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.resultsView.HalfViewDown()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		if s.open {
			if len(s.candidates) == 0 {
				s.close()
				return m, nil
			}
			return m.SelectCandidate(s.candidates[s.cursor].id), nil
		}
		return m.RecommendByMovie()
	}

	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	if s.input.Value() == before {
		return m, cmd
	}
	return m, tea.Batch(cmd, s.debounce.Schedule())
}

// handleMouse closes the result list on any press outside both the list
// and the search field. A left press on a list row selects that row; wheel
// events never select or dismiss.
func (m Model) handleMouse(msg tea.MouseMsg) Model {
	if msg.Action != tea.MouseActionPress || tea.MouseEvent(msg).IsWheel() || m.warning != "" {
		return m
	}
	if !m.search.open {
		return m
	}

	if m.state.Panel() == PanelSearch {
		if msg.Y == searchInputRow {
			return m
		}
		if row := msg.Y - searchListTopRow; row >= 0 && row < m.search.listRows() {
			if row < len(m.search.candidates) && msg.Button == tea.MouseButtonLeft {
				return m.SelectCandidate(m.search.candidates[row].id)
			}
			return m
		}
	}

	m.search.close()
	return m
}
