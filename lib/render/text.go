package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const cardWidth = 34

var (
	accentColor = lipgloss.Color("#7C3AED")
	mutedColor  = lipgloss.Color("#9CA3AF")

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#374151")).
			Padding(0, 1).
			Width(cardWidth)

	cardTitleStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle     = lipgloss.NewStyle().Foreground(mutedColor)
	starStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FBBF24"))
	badgeStyle     = lipgloss.NewStyle().Background(accentColor).Padding(0, 1)
	headingStyle   = lipgloss.NewStyle().Bold(true).Foreground(accentColor).MarginBottom(1)
)

// Text renders the view for a terminal of the given width, laying cards
// out left to right, top to bottom in input order.
func (v View) Text(width int) string {
	var sb strings.Builder
	if v.Title != "" {
		sb.WriteString(headingStyle.Render(v.Title))
		sb.WriteString("\n")
	}

	if v.Empty() {
		heading, hint := v.Placeholder()
		sb.WriteString(cardTitleStyle.Render(heading))
		if hint != "" {
			sb.WriteString("\n")
			sb.WriteString(mutedStyle.Render(hint))
		}
		return sb.String()
	}

	perRow := max(1, width/(cardWidth+2))
	rows := make([]string, 0, len(v.Cards)/perRow+1)
	for i := 0; i < len(v.Cards); i += perRow {
		end := min(i+perRow, len(v.Cards))
		row := make([]string, 0, end-i)
		for _, c := range v.Cards[i:end] {
			row = append(row, c.Text())
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	sb.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))
	return sb.String()
}

// Subtitle is the year and genres line. A zero year is left out.
func (c Card) Subtitle() string {
	if c.Movie.Year == 0 {
		return c.Movie.Genres
	}
	return fmt.Sprintf("%d • %s", c.Movie.Year, c.Movie.Genres)
}

// Text renders a single card.
func (c Card) Text() string {
	m := c.Movie
	lines := []string{
		cardTitleStyle.Render(m.Title),
		mutedStyle.Render(c.Subtitle()),
		starStyle.Render(c.StarIcons()) + " " + badgeStyle.Render(c.RatingLabel()),
		mutedStyle.Render("Director: ") + m.Director,
	}
	if m.Poster != "" {
		lines = append(lines, mutedStyle.Render(m.Poster))
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}
