// Package ui is the interactive terminal client: a Bubble Tea program that
// searches the backend as the user types, lets them pick a seed movie or
// enter preferences, and renders the recommendations it gets back.
//
// All state changes happen in Update on the program's event loop. Network
// calls run as commands and report back through messages, so a second
// request may be issued while the first is still outstanding; whichever
// response arrives last is what gets displayed.
package ui

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/icco/movierecs/lib/debounce"
	"github.com/icco/movierecs/lib/render"
	"github.com/icco/movierecs/models"
)

// Backend is the subset of the recommendation API the client uses.
type Backend interface {
	Search(ctx context.Context, query string) ([]models.Movie, error)
	ListMovies(ctx context.Context) ([]models.Movie, error)
	RecommendByMovie(ctx context.Context, title string) ([]models.Movie, error)
	RecommendByPreferences(ctx context.Context, q models.PreferenceQuery) ([]models.Movie, error)
}

// User-facing warnings. They block the UI until dismissed.
const (
	WarnNoSelection   = "Please select a movie first"
	WarnNoPreferences = "Please enter at least one preference"
	WarnRequestFailed = "Failed to get recommendations. Please try again."
)

type Options struct {
	// Debounce is how long search input must be idle before a search fires.
	Debounce time.Duration
	// MinQueryLength is the shortest query sent to the backend.
	MinQueryLength int
	Logger         *slog.Logger
	// Context is passed to every backend call.
	Context context.Context
}

// Model is the root Bubble Tea model.
type Model struct {
	backend Backend
	logger  *slog.Logger
	ctx     context.Context
	keys    keyMap
	help    help.Model

	state  State
	search searchController
	prefs  preferenceForm

	// busy counts outstanding recommendation requests; both flows share
	// one indicator.
	busy    int
	spinner spinner.Model

	results     render.View
	showResults bool
	resultsView viewport.Model

	browse     render.View
	browseView viewport.Model

	warning string

	width  int
	height int
}

func NewModel(backend Backend, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.MinQueryLength < 1 {
		opts.MinQueryLength = 2
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(accentColor)

	m := Model{
		backend:     backend,
		logger:      opts.Logger,
		ctx:         opts.Context,
		keys:        defaultKeyMap(),
		help:        help.New(),
		search:      newSearchController(opts.Debounce, opts.MinQueryLength),
		prefs:       newPreferenceForm(),
		spinner:     sp,
		resultsView: viewport.New(80, 10),
		browseView:  viewport.New(80, 20),
		browse:      render.RenderBrowse(nil),
		width:       80,
		height:      24,
	}
	m.search.focus()
	m.resize()
	return m
}

// Init starts the cursor blinking and loads the full listing once.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadBrowse())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg), nil

	case debounce.TickMsg:
		if !m.search.debounce.Fired(msg) {
			return m, nil
		}
		return m.Search(m.search.input.Value())

	case searchResultsMsg:
		return m.applySearchResults(msg), nil

	case recommendationsMsg:
		return m.applyRecommendations(msg), nil

	case browseLoadedMsg:
		return m.applyBrowse(msg), nil

	case spinner.TickMsg:
		if m.busy == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	switch m.state.Panel() {
	case PanelSearch:
		m.search.input, cmd = m.search.input.Update(msg)
	case PanelPreferences:
		cmd = m.prefs.update(msg)
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	// A warning blocks everything until it is acknowledged.
	if m.warning != "" {
		m.warning = ""
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Search):
		return m.SwitchPanel(PanelSearch)
	case key.Matches(msg, m.keys.Preferences):
		return m.SwitchPanel(PanelPreferences)
	case key.Matches(msg, m.keys.Browse):
		return m.SwitchPanel(PanelBrowse)
	case key.Matches(msg, m.keys.NextPanel):
		return m.SwitchPanel(Panels[(int(m.state.Panel())+1)%len(Panels)])
	case key.Matches(msg, m.keys.PrevPanel):
		return m.SwitchPanel(Panels[(int(m.state.Panel())+len(Panels)-1)%len(Panels)])
	}

	switch m.state.Panel() {
	case PanelSearch:
		return m.handleSearchKey(msg)
	case PanelPreferences:
		return m.handlePreferencesKey(msg)
	default:
		var cmd tea.Cmd
		m.browseView, cmd = m.browseView.Update(msg)
		return m, cmd
	}
}

// SwitchPanel shows p and hides every other panel. Entering the browse
// panel always reloads the listing.
func (m Model) SwitchPanel(p Panel) (Model, tea.Cmd) {
	m.state.panel = p
	m.search.close()

	var cmds []tea.Cmd
	switch p {
	case PanelSearch:
		m.prefs.blur()
		cmds = append(cmds, m.search.focus())
	case PanelPreferences:
		m.search.input.Blur()
		cmds = append(cmds, m.prefs.focus())
	case PanelBrowse:
		m.search.input.Blur()
		m.prefs.blur()
		cmds = append(cmds, m.loadBrowse())
	}
	return m, tea.Batch(cmds...)
}

// Panel returns the visible panel.
func (m Model) Panel() Panel {
	return m.state.Panel()
}

// Selected returns the selected movie, or nil.
func (m Model) Selected() *models.Movie {
	return m.state.Selected()
}

// Warning returns the pending warning, or "".
func (m Model) Warning() string {
	return m.warning
}

// Busy reports whether a recommendation request is outstanding.
func (m Model) Busy() bool {
	return m.busy > 0
}

// Results returns the last recommendation view and whether the results
// section is visible.
func (m Model) Results() (render.View, bool) {
	return m.results, m.showResults
}

// Browse returns the current listing view.
func (m Model) Browse() render.View {
	return m.browse
}

func (m *Model) resize() {
	m.help.Width = m.width
	m.resultsView.Width = m.width
	m.resultsView.Height = max(5, m.height-resultsOffset)
	m.browseView.Width = m.width
	m.browseView.Height = max(5, m.height-browseOffset)
	m.search.input.Width = max(10, m.width-len(searchPrompt)-2)
	m.prefs.setWidth(m.width)

	if m.showResults {
		m.resultsView.SetContent(m.results.Text(m.width))
	}
	m.browseView.SetContent(m.browse.Text(m.width))
}

func (m Model) logError(msg string, err error, attrs ...any) {
	m.logger.ErrorContext(m.ctx, msg, append([]any{slog.Any("error", err)}, attrs...)...)
}
