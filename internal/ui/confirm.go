package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type confirmResult struct {
	ok     bool
	action confirmAction
}

type confirmAction int

const (
	confirmDeleteItem confirmAction = iota
	confirmDeleteGroup
)

// confirmModel is a yes/no prompt for destructive actions.
type confirmModel struct {
	prompt string
	action confirmAction
}

func newConfirmModel(prompt string, action confirmAction) confirmModel {
	return confirmModel{prompt: prompt, action: action}
}

func (m confirmModel) update(msg tea.Msg) (confirmModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch strings.ToLower(keyMsg.String()) {
	case "y", "enter":
		return m, func() tea.Msg { return confirmResult{ok: true, action: m.action} }
	case "n", "esc":
		return m, func() tea.Msg { return confirmResult{ok: false, action: m.action} }
	}
	return m, nil
}

func (m confirmModel) view() string {
	var b strings.Builder
	b.WriteString(m.prompt + "\n\n")
	b.WriteString(helpStyle.Render("y: confirm · n: cancel"))
	return dialogStyle.Render(b.String())
}
