package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zombocoder/vaultura/internal/generator"
)

type genRegenerate struct{ opts generator.Options }

type genAccepted struct{ password string }

// generatorModel is the password generator modal. Toggling any option
// regenerates immediately so the preview always matches the settings.
type generatorModel struct {
	opts     generator.Options
	password string
	forForm  bool // result goes to the open item form instead of clipboard
	errText  string
}

func newGeneratorModel(forForm bool) generatorModel {
	return generatorModel{opts: generator.DefaultOptions(), forForm: forForm}
}

func (m generatorModel) update(msg tea.Msg) (generatorModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, func() tea.Msg { return formCancelled{} }
	case "enter":
		if m.password == "" {
			return m, m.regen()
		}
		pw := m.password
		return m, func() tea.Msg { return genAccepted{password: pw} }
	case "g", " ":
		return m, m.regen()
	case "+", "=", "right":
		if m.opts.Length < generator.MaxLength {
			m.opts.Length++
		}
		return m, m.regen()
	case "-", "left":
		if m.opts.Length > 1 {
			m.opts.Length--
		}
		return m, m.regen()
	case "u":
		m.opts.Uppercase = !m.opts.Uppercase
		return m, m.regen()
	case "l":
		m.opts.Lowercase = !m.opts.Lowercase
		return m, m.regen()
	case "d":
		m.opts.Digits = !m.opts.Digits
		return m, m.regen()
	case "s":
		m.opts.Symbols = !m.opts.Symbols
		return m, m.regen()
	case "a":
		m.opts.ExcludeAmbiguous = !m.opts.ExcludeAmbiguous
		return m, m.regen()
	}
	return m, nil
}

func (m generatorModel) regen() tea.Cmd {
	opts := m.opts
	return func() tea.Msg { return genRegenerate{opts: opts} }
}

func (m *generatorModel) setResult(password string, err error) {
	if err != nil {
		m.password = ""
		m.errText = err.Error()
		return
	}
	m.password = password
	m.errText = ""
}

func (m generatorModel) view() string {
	onOff := func(v bool) string {
		if v {
			return successStyle.Render("on")
		}
		return dimStyle.Render("off")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Password generator") + "\n\n")
	if m.errText != "" {
		b.WriteString(errorStyle.Render(m.errText) + "\n\n")
	} else if m.password != "" {
		b.WriteString("  " + selectedStyle.Render(" "+m.password+" ") + "\n\n")
	} else {
		b.WriteString(dimStyle.Render("  press g to generate") + "\n\n")
	}

	b.WriteString(fmt.Sprintf("  length     %d  (-/+)\n", m.opts.Length))
	b.WriteString("  uppercase  " + onOff(m.opts.Uppercase) + "  (u)\n")
	b.WriteString("  lowercase  " + onOff(m.opts.Lowercase) + "  (l)\n")
	b.WriteString("  digits     " + onOff(m.opts.Digits) + "  (d)\n")
	b.WriteString("  symbols    " + onOff(m.opts.Symbols) + "  (s)\n")
	b.WriteString("  ambiguous  " + onOff(!m.opts.ExcludeAmbiguous) + "  (a)\n")

	b.WriteString("\n" + helpStyle.Render("g: regenerate · enter: accept · esc: cancel"))
	return dialogStyle.Render(b.String())
}
