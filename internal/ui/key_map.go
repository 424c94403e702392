package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up           key.Binding
	down         key.Binding
	enter        key.Binding
	back         key.Binding
	search       key.Binding
	genre        key.Binding
	genreBack    key.Binding
	location     key.Binding
	locationBack key.Binding
	clear        key.Binding
	buy          key.Binding
	open         key.Binding
	yes          key.Binding
	no           key.Binding
	refresh      key.Binding
	quit         key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		back:         key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		search:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		genre:        key.NewBinding(key.WithKeys("g"), key.WithHelp("g/G", "genre")),
		genreBack:    key.NewBinding(key.WithKeys("G")),
		location:     key.NewBinding(key.WithKeys("l"), key.WithHelp("l/L", "location")),
		locationBack: key.NewBinding(key.WithKeys("L")),
		clear:        key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear filters")),
		buy:          key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "buy")),
		open:         key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open in browser")),
		yes:          key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		no:           key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "no")),
		refresh:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.search, k.genre, k.location, k.enter, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter},
		{k.search, k.genre, k.location, k.clear},
		{k.buy, k.open, k.yes, k.no},
		{k.refresh, k.back, k.quit},
	}
}
