package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Home         key.Binding
	FocusNext    key.Binding
	FocusPrev    key.Binding
	NextCategory key.Binding
	PrevCategory key.Binding
	MoreColumns  key.Binding
	FewerColumns key.Binding
	Up           key.Binding
	Down         key.Binding
	Left         key.Binding
	Right        key.Binding
	Open         key.Binding
	Poster       key.Binding
	Help         key.Binding
	Quit         key.Binding
	ForceQuit    key.Binding
}

var keys = keyMap{
	Home: key.NewBinding(
		key.WithKeys("esc", "ctrl+h"),
		key.WithHelp("esc", "home"),
	),
	FocusNext: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "search/grid"),
	),
	FocusPrev: key.NewBinding(
		key.WithKeys("shift+tab"),
	),
	NextCategory: key.NewBinding(
		key.WithKeys("ctrl+n"),
		key.WithHelp("ctrl+n/p", "feed"),
	),
	PrevCategory: key.NewBinding(
		key.WithKeys("ctrl+p"),
	),
	MoreColumns: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+/-", "columns"),
	),
	FewerColumns: key.NewBinding(
		key.WithKeys("-", "_"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/↓/←/→", "move"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	Poster: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "poster in browser"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
	),
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.FocusNext, k.Open, k.Home, k.NextCategory, k.MoreColumns, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.FocusNext, k.Open, k.Home},
		{k.Up, k.NextCategory, k.MoreColumns},
		{k.Poster, k.Help, k.Quit},
	}
}
