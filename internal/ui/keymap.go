package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextPane key.Binding
	Enter    key.Binding
	Back     key.Binding
	Search   key.Binding
	NewItem  key.Binding
	NewGroup key.Binding
	Edit     key.Binding
	Delete   key.Binding
	CopyPass key.Binding
	CopyUser key.Binding
	CopyTOTP key.Binding
	Generate key.Binding
	Reveal   key.Binding
	Lock     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	NextPane: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "switch pane"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	NewItem: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new item"),
	),
	NewGroup: key.NewBinding(
		key.WithKeys("N"),
		key.WithHelp("N", "new group"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	CopyPass: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy password"),
	),
	CopyUser: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "copy username"),
	),
	CopyTOTP: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "copy totp"),
	),
	Generate: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "generate"),
	),
	Reveal: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reveal"),
	),
	Lock: key.NewBinding(
		key.WithKeys("L", "ctrl+l"),
		key.WithHelp("L", "lock"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextPane, k.Search, k.NewItem, k.CopyPass, k.Lock, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextPane, k.Enter, k.Back},
		{k.Search, k.NewItem, k.NewGroup, k.Edit, k.Delete},
		{k.CopyPass, k.CopyUser, k.CopyTOTP, k.Generate, k.Reveal},
		{k.Lock, k.Quit},
	}
}
