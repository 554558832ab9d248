package picker

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the link panel and folder picker.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Toggle    key.Binding
	ToggleAll key.Binding
	Open      key.Binding
	Save      key.Binding
	Folder    key.Binding
	CopyURL   key.Binding
	CopyAll   key.Binding
	Filter    key.Binding
	Confirm   key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the default vim-style key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "move down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "toggle"),
		),
		ToggleAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "toggle all"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open checked"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "bookmark checked"),
		),
		Folder: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "bookmark into folder"),
		),
		CopyURL: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy url"),
		),
		CopyAll: key.NewBinding(
			key.WithKeys("Y"),
			key.WithHelp("Y", "copy checked"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
