package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the recorder
type KeyMap struct {
	// Navigation
	Up        key.Binding
	Down      key.Binding
	NextField key.Binding
	SwitchTab key.Binding

	// Recorder
	Toggle key.Binding

	// Steps pane
	Delete   key.Binding
	Flow     key.Binding
	Generate key.Binding
	Save     key.Binding

	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		NextField: key.NewBinding(
			key.WithKeys("shift+tab", "up", "down"),
			key.WithHelp("↑/↓", "next field"),
		),
		SwitchTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "recorder/steps"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", "ctrl+r"),
			key.WithHelp("enter", "start/stop recording"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete", "backspace"),
			key.WithHelp("d", "delete step"),
		),
		Flow: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "list/flow"),
		),
		Generate: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "generate test"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save recording"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// ShortHelp returns a short help string
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SwitchTab, k.Toggle, k.Delete, k.Save, k.Quit}
}

// FullHelp returns the full help string
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextField, k.SwitchTab},
		{k.Toggle, k.Delete, k.Flow},
		{k.Generate, k.Save, k.Help, k.Quit},
	}
}
