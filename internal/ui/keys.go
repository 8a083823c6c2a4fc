package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit   key.Binding
	Pause  key.Binding
	Stress key.Binding
	Reset  key.Binding
	Help   key.Binding
	Narrow key.Binding
	Widen  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Stress: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "stress/sim"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "help"),
		),
		Narrow: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "narrow core"),
		),
		Widen: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "widen core"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Pause, k.Stress, k.Reset, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause, k.Stress, k.Reset},
		{k.Narrow, k.Widen},
		{k.Help, k.Quit},
	}
}
