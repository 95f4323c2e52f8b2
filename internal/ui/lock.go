package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// lockModel is the password prompt shown while the vault is locked. In
// create mode it asks twice before initialising a new vault file.
type lockModel struct {
	password textinput.Model
	confirm  textinput.Model
	creating bool
	onSecond bool
	errText  string
}

type unlockSubmitted struct {
	password string
	create   bool
}

func newLockModel(creating bool) lockModel {
	pw := textinput.New()
	pw.Placeholder = "master password"
	pw.EchoMode = textinput.EchoPassword
	pw.EchoCharacter = '•'
	pw.CharLimit = 256
	pw.Width = 40
	pw.Focus()

	conf := textinput.New()
	conf.Placeholder = "repeat password"
	conf.EchoMode = textinput.EchoPassword
	conf.EchoCharacter = '•'
	conf.CharLimit = 256
	conf.Width = 40

	return lockModel{password: pw, confirm: conf, creating: creating}
}

func (m lockModel) update(msg tea.Msg) (lockModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEnter {
		return m.submit()
	}

	var cmd tea.Cmd
	if m.onSecond {
		m.confirm, cmd = m.confirm.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m lockModel) submit() (lockModel, tea.Cmd) {
	if !m.creating {
		pw := m.password.Value()
		m.password.SetValue("")
		return m, func() tea.Msg { return unlockSubmitted{password: pw} }
	}

	if !m.onSecond {
		if m.password.Value() == "" {
			m.errText = "password must not be empty"
			return m, nil
		}
		m.onSecond = true
		m.errText = ""
		m.password.Blur()
		m.confirm.Focus()
		return m, textinput.Blink
	}

	if m.password.Value() != m.confirm.Value() {
		m.errText = "passwords do not match"
		m.onSecond = false
		m.confirm.SetValue("")
		m.confirm.Blur()
		m.password.SetValue("")
		m.password.Focus()
		return m, textinput.Blink
	}
	pw := m.password.Value()
	m.password.SetValue("")
	m.confirm.SetValue("")
	return m, func() tea.Msg { return unlockSubmitted{password: pw, create: true} }
}

func (m lockModel) view() string {
	var b strings.Builder

	if m.creating {
		b.WriteString(titleStyle.Render("Create a new vault"))
		b.WriteString("\n\n")
		b.WriteString("  Choose a master password. It cannot be recovered if lost.\n\n")
		b.WriteString("  " + m.password.View() + "\n")
		if m.onSecond {
			b.WriteString("  " + m.confirm.View() + "\n")
		}
	} else {
		b.WriteString(titleStyle.Render("Vault locked"))
		b.WriteString("\n\n")
		b.WriteString("  " + m.password.View() + "\n")
		b.WriteString("\n" + dimStyle.Render("  enter with an empty field to use the stored password") + "\n")
	}

	if m.errText != "" {
		b.WriteString("\n" + errorStyle.Render("  "+m.errText) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("enter: submit · ctrl+c: quit"))
	return b.String()
}
