package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// Screen rows of the search panel, used to hit-test mouse presses. The
// header, tab bar and a blank line come first.
const (
	searchInputRow   = 3
	searchListTopRow = 4
)

// Rows used by everything except the scrollable area.
const (
	resultsOffset = 10
	browseOffset  = 6
)

var (
	accentColor = lipgloss.Color("#7C3AED")
	mutedColor  = lipgloss.Color("#9CA3AF")

	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(mutedColor)
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(accentColor)
	mutedStyle     = lipgloss.NewStyle().Foreground(mutedColor)
	cursorStyle    = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	warningStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#F59E0B")).
			Padding(1, 3).
			Bold(true)
)

func (m Model) View() string {
	if m.warning != "" {
		box := warningStyle.Render(m.warning + "\n\n" + mutedStyle.Render("Press any key to continue"))
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("Movie Recommendations"))
	b.WriteString("\n")
	b.WriteString(m.tabsView())
	b.WriteString("\n\n")

	switch m.state.Panel() {
	case PanelSearch:
		b.WriteString(m.search.input.View())
		b.WriteString("\n")
		if list := m.candidatesView(); list != "" {
			b.WriteString(list)
			b.WriteString("\n")
		}
		b.WriteString(m.resultsSection())
	case PanelPreferences:
		for _, in := range m.prefs.inputs {
			b.WriteString(in.View())
			b.WriteString("\n")
		}
		b.WriteString(m.resultsSection())
	case PanelBrowse:
		b.WriteString(m.browseView.View())
		b.WriteString("\n")
	}

	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(m.helpBindings()))
	return b.String()
}

func (m Model) tabsView() string {
	tabs := make([]string, 0, len(Panels))
	for _, p := range Panels {
		style := tabStyle
		if p == m.state.Panel() {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(p.Label()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// candidatesView renders one line per candidate, or the placeholder row
// when the list is open but empty.
func (m Model) candidatesView() string {
	s := m.search
	if !s.open {
		return ""
	}
	if len(s.candidates) == 0 {
		return mutedStyle.Render("  No movies found")
	}

	lines := make([]string, 0, len(s.candidates))
	for i, c := range s.candidates {
		label := c.movie.Title
		if c.movie.Year != 0 {
			label = fmt.Sprintf("%s (%d)", c.movie.Title, c.movie.Year)
		}
		label = truncate(label, m.width-4)
		if i == s.cursor {
			lines = append(lines, cursorStyle.Render("> "+label))
		} else {
			lines = append(lines, "  "+label)
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) resultsSection() string {
	if !m.showResults {
		return "\n"
	}
	return "\n" + m.resultsView.View() + "\n"
}

func (m Model) statusLine() string {
	if m.busy > 0 {
		return m.spinner.View() + " Getting recommendations..."
	}
	if sel := m.state.Selected(); sel != nil {
		return mutedStyle.Render("Selected: " + truncate(sel.Title, m.width-10))
	}
	return ""
}

func (m Model) helpBindings() []key.Binding {
	k := m.keys
	switch m.state.Panel() {
	case PanelPreferences:
		return []key.Binding{k.NextField, k.Submit, k.PageDown, k.NextPanel, k.Quit}
	case PanelBrowse:
		return []key.Binding{k.Up, k.Down, k.PageDown, k.NextPanel, k.Quit}
	default:
		return []key.Binding{k.Up, k.Down, k.Submit, k.Dismiss, k.NextPanel, k.Quit}
	}
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if n < 1 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
