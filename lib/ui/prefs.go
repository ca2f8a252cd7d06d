package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/icco/movierecs/models"
)

const (
	fieldGenres = iota
	fieldDirector
	fieldKeywords
)

type preferenceForm struct {
	inputs [3]textinput.Model
	active int
}

func newPreferenceForm() preferenceForm {
	var f preferenceForm
	for i := range f.inputs {
		ti := textinput.New()
		ti.CharLimit = 200
		switch i {
		case fieldGenres:
			ti.Prompt = "Genres:   "
			ti.Placeholder = "e.g. Action, Sci-Fi"
		case fieldDirector:
			ti.Prompt = "Director: "
			ti.Placeholder = "e.g. Christopher Nolan"
		case fieldKeywords:
			ti.Prompt = "Keywords: "
			ti.Placeholder = "e.g. space, time travel"
		}
		f.inputs[i] = ti
	}
	return f
}

func (f *preferenceForm) focus() tea.Cmd {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	return f.inputs[f.active].Focus()
}

func (f *preferenceForm) blur() {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

// cycle moves focus by delta fields, wrapping around.
func (f *preferenceForm) cycle(delta int) tea.Cmd {
	n := len(f.inputs)
	f.active = ((f.active+delta)%n + n) % n
	return f.focus()
}

func (f *preferenceForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.active], cmd = f.inputs[f.active].Update(msg)
	return cmd
}

func (f *preferenceForm) setWidth(width int) {
	for i := range f.inputs {
		f.inputs[i].Width = max(10, width-len(f.inputs[i].Prompt)-2)
	}
}

// setValues fills the three fields, in form order.
func (f *preferenceForm) setValues(genres, director, keywords string) {
	f.inputs[fieldGenres].SetValue(genres)
	f.inputs[fieldDirector].SetValue(director)
	f.inputs[fieldKeywords].SetValue(keywords)
}

// query reads the form into a fresh query.
func (f preferenceForm) query() models.PreferenceQuery {
	return models.NewPreferenceQuery(
		f.inputs[fieldGenres].Value(),
		f.inputs[fieldDirector].Value(),
		f.inputs[fieldKeywords].Value(),
	)
}

// SetPreferences fills the preference form.
func (m Model) SetPreferences(genres, director, keywords string) Model {
	m.prefs.setValues(genres, director, keywords)
	return m
}

func (m Model) handlePreferencesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.NextField), key.Matches(msg, m.keys.Down):
		return m, m.prefs.cycle(1)
	case key.Matches(msg, m.keys.PrevField), key.Matches(msg, m.keys.Up):
		return m, m.prefs.cycle(-1)
	case key.Matches(msg, m.keys.PageUp):
		m.resultsView.HalfViewUp()
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.resultsView.HalfViewDown()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		return m.RecommendByPreferences()
	}
	return m, m.prefs.update(msg)
}
