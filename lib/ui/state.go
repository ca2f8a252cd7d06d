package ui

import (
	"strings"

	"github.com/icco/movierecs/models"
)

// Panel is one of the mutually exclusive views of the application.
type Panel int

const (
	PanelSearch Panel = iota
	PanelPreferences
	PanelBrowse
)

// Panels lists every panel in tab order.
var Panels = []Panel{PanelSearch, PanelPreferences, PanelBrowse}

func (p Panel) String() string {
	switch p {
	case PanelPreferences:
		return "preferences"
	case PanelBrowse:
		return "browse"
	default:
		return "search"
	}
}

// Label is the tab caption.
func (p Panel) Label() string {
	switch p {
	case PanelPreferences:
		return "Preferences"
	case PanelBrowse:
		return "Browse All"
	default:
		return "Search Movie"
	}
}

// ParsePanel maps a panel name back onto a Panel.
func ParsePanel(name string) (Panel, bool) {
	for _, p := range Panels {
		if strings.EqualFold(name, p.String()) {
			return p, true
		}
	}
	return PanelSearch, false
}

// State is the application state shared by the controllers. The selected
// movie only changes through Select.
type State struct {
	selected *models.Movie
	panel    Panel
}

// Selected returns the seed movie for similarity requests, or nil.
func (s State) Selected() *models.Movie {
	return s.selected
}

// Select replaces the selected movie. Last write wins.
func (s *State) Select(m models.Movie) {
	s.selected = &m
}

func (s State) Panel() Panel {
	return s.panel
}
