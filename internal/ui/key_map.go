package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up      key.Binding
	down    key.Binding
	search  key.Binding
	watched key.Binding
	color   key.Binding
	sample  key.Binding
	add     key.Binding
	remove  key.Binding
	refresh key.Binding
	theme   key.Binding
	focus   key.Binding
	submit  key.Binding
	back    key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		search:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "search")),
		watched: key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "watched")),
		color:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "color")),
		sample:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "poster color")),
		add:     key.NewBinding(key.WithKeys("a", "enter"), key.WithHelp("a", "add")),
		remove:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		theme:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		focus:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus")),
		submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
		back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.search},
		{k.watched, k.color, k.remove, k.refresh},
		{k.sample, k.add, k.focus, k.back},
		{k.theme, k.quit},
	}
}
