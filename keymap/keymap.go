package keymap

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type Mapping struct {
	Answer key.Binding
	Play   key.Binding
	Next   key.Binding
	Quit   key.Binding
}

var DefaultMapping = Mapping{
	Answer: key.NewBinding(
		key.WithKeys("1", "2", "3", "4"),
		key.WithHelp("1-4", "answer"),
	),
	Play: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "play the scale"),
	),
	Next: key.NewBinding(
		key.WithKeys(tea.KeyEnter.String()),
		key.WithHelp("enter", "next question"),
	),
	Quit: key.NewBinding(
		key.WithKeys(tea.KeyCtrlC.String(), "esc"),
		key.WithHelp("ctrl+c/esc", "quit"),
	),
}

// ShortHelp implements help.KeyMap.
func (m Mapping) ShortHelp() []key.Binding {
	return []key.Binding{m.Answer, m.Play, m.Next, m.Quit}
}

// FullHelp implements help.KeyMap.
func (m Mapping) FullHelp() [][]key.Binding {
	return [][]key.Binding{m.ShortHelp()}
}
