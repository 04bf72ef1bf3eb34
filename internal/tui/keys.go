package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Confirm key.Binding
	Quit    key.Binding
	Erase   key.Binding
	Prev    key.Binding
	Next    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "confirm"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("Esc", "quit"),
		),
		Erase: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("Backspace", "erase"),
		),
		Prev: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("Up", "previous"),
		),
		Next: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("Down", "next"),
		),
	}
}
