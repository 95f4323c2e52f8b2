package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/zombocoder/vaultura/internal/vault"
)

const (
	fieldTitle = iota
	fieldUsername
	fieldPassword
	fieldURL
	fieldTags
	fieldTOTP
	fieldNotes
	fieldCount
)

type itemFormSubmitted struct {
	id    *uuid.UUID // nil means create
	draft vault.ItemDraft
}

type groupFormSubmitted struct {
	id   *uuid.UUID
	name string
}

type formCancelled struct{}

// generateRequested asks the root to open the generator; the result lands
// back in the form's password field.
type generateRequested struct{}

// itemFormModel edits one item. The group assignment is inherited from the
// sidebar selection at open time rather than edited in the form.
type itemFormModel struct {
	inputs  []textinput.Model
	focus   int
	editing *uuid.UUID
	group   *uuid.UUID
	errText string
}

func newItemForm(editing *vault.Item, group *uuid.UUID) itemFormModel {
	labels := [fieldCount]string{"title", "username", "password", "url", "tags (comma separated)", "totp secret", "notes"}

	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		in := textinput.New()
		in.Placeholder = labels[i]
		in.CharLimit = 512
		in.Width = 48
		inputs[i] = in
	}
	inputs[fieldPassword].EchoMode = textinput.EchoPassword
	inputs[fieldPassword].EchoCharacter = '•'

	m := itemFormModel{inputs: inputs, group: group}
	if editing != nil {
		id := editing.ID
		m.editing = &id
		m.group = editing.GroupID
		inputs[fieldTitle].SetValue(editing.Title)
		inputs[fieldUsername].SetValue(editing.Username)
		inputs[fieldPassword].SetValue(editing.Password)
		inputs[fieldURL].SetValue(editing.URL)
		inputs[fieldTags].SetValue(strings.Join(editing.Tags, ", "))
		inputs[fieldTOTP].SetValue(editing.TOTPSecret)
		inputs[fieldNotes].SetValue(editing.Notes)
	}
	m.inputs[0].Focus()
	return m
}

func (m *itemFormModel) setPassword(pw string) {
	m.inputs[fieldPassword].SetValue(pw)
}

func (m itemFormModel) update(msg tea.Msg) (itemFormModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			return m, func() tea.Msg { return formCancelled{} }
		case tea.KeyCtrlG:
			return m, func() tea.Msg { return generateRequested{} }
		case tea.KeyCtrlS:
			return m.submit()
		case tea.KeyEnter:
			if m.focus == fieldCount-1 {
				return m.submit()
			}
			return m.cycle(1), textinput.Blink
		case tea.KeyTab, tea.KeyDown:
			return m.cycle(1), textinput.Blink
		case tea.KeyShiftTab, tea.KeyUp:
			return m.cycle(-1), textinput.Blink
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m itemFormModel) cycle(dir int) itemFormModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + dir + fieldCount) % fieldCount
	m.inputs[m.focus].Focus()
	return m
}

func (m itemFormModel) submit() (itemFormModel, tea.Cmd) {
	if strings.TrimSpace(m.inputs[fieldTitle].Value()) == "" {
		m.errText = "title must not be empty"
		return m, nil
	}
	draft := vault.ItemDraft{
		Title:      m.inputs[fieldTitle].Value(),
		Username:   m.inputs[fieldUsername].Value(),
		Password:   m.inputs[fieldPassword].Value(),
		URL:        m.inputs[fieldURL].Value(),
		Notes:      m.inputs[fieldNotes].Value(),
		Tags:       splitTags(m.inputs[fieldTags].Value()),
		TOTPSecret: strings.TrimSpace(m.inputs[fieldTOTP].Value()),
		GroupID:    m.group,
	}
	id := m.editing
	return m, func() tea.Msg { return itemFormSubmitted{id: id, draft: draft} }
}

func splitTags(raw string) []string {
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func (m itemFormModel) view() string {
	var b strings.Builder
	if m.editing != nil {
		b.WriteString(titleStyle.Render("Edit item"))
	} else {
		b.WriteString(titleStyle.Render("New item"))
	}
	b.WriteString("\n\n")
	for i := range m.inputs {
		b.WriteString("  " + m.inputs[i].View() + "\n")
	}
	if m.errText != "" {
		b.WriteString("\n" + errorStyle.Render("  "+m.errText) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("enter/tab: next · ctrl+s: save · ctrl+g: generate password · esc: cancel"))
	return b.String()
}

// groupFormModel edits a group name.
type groupFormModel struct {
	input   textinput.Model
	editing *uuid.UUID
	parent  *uuid.UUID
	errText string
}

func newGroupForm(editing *vault.Group) groupFormModel {
	in := textinput.New()
	in.Placeholder = "group name"
	in.CharLimit = 128
	in.Width = 40
	in.Focus()

	m := groupFormModel{input: in}
	if editing != nil {
		id := editing.ID
		m.editing = &id
		m.parent = editing.ParentID
		in.SetValue(editing.Name)
		m.input = in
	}
	return m
}

func (m groupFormModel) update(msg tea.Msg) (groupFormModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			return m, func() tea.Msg { return formCancelled{} }
		case tea.KeyEnter:
			if strings.TrimSpace(m.input.Value()) == "" {
				m.errText = "name must not be empty"
				return m, nil
			}
			id, name := m.editing, m.input.Value()
			return m, func() tea.Msg { return groupFormSubmitted{id: id, name: name} }
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m groupFormModel) view() string {
	var b strings.Builder
	if m.editing != nil {
		b.WriteString(titleStyle.Render("Rename group"))
	} else {
		b.WriteString(titleStyle.Render("New group"))
	}
	b.WriteString("\n\n  " + m.input.View() + "\n")
	if m.errText != "" {
		b.WriteString("\n" + errorStyle.Render("  "+m.errText) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("enter: save · esc: cancel"))
	return b.String()
}
