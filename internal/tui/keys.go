package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit     key.Binding
	Back     key.Binding
	Help     key.Binding
	Settings key.Binding
	Enter    key.Binding
	Up       key.Binding
	Down     key.Binding

	Shorten  key.Binding
	Lengthen key.Binding
	Tone     key.Binding
	NextTone key.Binding
	Model    key.Binding
	Retry    key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "q"),
		key.WithHelp("q", "quit"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Settings: key.NewBinding(
		key.WithKeys(","),
		key.WithHelp(",", "settings"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("up/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("down/j", "down"),
	),
	Shorten: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "shorten"),
	),
	Lengthen: key.NewBinding(
		key.WithKeys("l"),
		key.WithHelp("l", "lengthen"),
	),
	Tone: key.NewBinding(
		key.WithKeys("T"),
		key.WithHelp("T", "change tone"),
	),
	NextTone: key.NewBinding(
		key.WithKeys("t", "tab"),
		key.WithHelp("t/tab", "next tone"),
	),
	Model: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "next model"),
	),
	Retry: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "retry"),
	),
}
