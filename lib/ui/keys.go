package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit        key.Binding
	NextPanel   key.Binding
	PrevPanel   key.Binding
	Search      key.Binding
	Preferences key.Binding
	Browse      key.Binding
	Up          key.Binding
	Down        key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Submit      key.Binding
	Dismiss     key.Binding
	NextField   key.Binding
	PrevField   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:        key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		NextPanel:   key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "next tab")),
		PrevPanel:   key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "previous tab")),
		Search:      key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "search")),
		Preferences: key.NewBinding(key.WithKeys("f2"), key.WithHelp("f2", "preferences")),
		Browse:      key.NewBinding(key.WithKeys("f3"), key.WithHelp("f3", "browse")),
		Up:          key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:        key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		PageUp:      key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
		PageDown:    key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll down")),
		Submit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select / recommend")),
		Dismiss:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close list")),
		NextField:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevField:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous field")),
	}
}
