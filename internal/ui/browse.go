package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/zombocoder/vaultura/internal/vault"
)

type pane int

const (
	paneGroups pane = iota
	paneItems
	paneDetail
)

// browseModel renders the unlocked vault: a group sidebar, the item table
// and a detail pane. It holds display copies of the data; the vault service
// stays authoritative and refresh() re-reads after every mutation.
type browseModel struct {
	groups      []vault.Group
	items       []vault.Item
	groupCursor int // 0 is the synthetic "All items" row
	itemTable   table.Model
	search      textinput.Model
	searching   bool
	focus       pane
	reveal      bool
	width       int
	height      int
}

func newBrowseModel() browseModel {
	cols := []table.Column{
		{Title: "Title", Width: 24},
		{Title: "Username", Width: 24},
		{Title: "URL", Width: 28},
	}
	t := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#3B4261")).
		BorderBottom(true).
		Bold(true)
	s.Selected = selectedStyle
	t.SetStyles(s)

	search := textinput.New()
	search.Placeholder = "search"
	search.CharLimit = 128
	search.Width = 30

	return browseModel{itemTable: t, search: search, focus: paneItems}
}

// selectedGroup returns the filter for the current sidebar row; nil means
// all items.
func (m *browseModel) selectedGroup() *uuid.UUID {
	if m.groupCursor == 0 || m.groupCursor > len(m.groups) {
		return nil
	}
	id := m.groups[m.groupCursor-1].ID
	return &id
}

func (m *browseModel) selectedItem() *vault.Item {
	row := m.itemTable.Cursor()
	if row < 0 || row >= len(m.items) {
		return nil
	}
	return &m.items[row]
}

func (m *browseModel) setData(groups []vault.Group, items []vault.Item) {
	m.groups = groups
	m.items = items
	if m.groupCursor > len(groups) {
		m.groupCursor = 0
	}

	rows := make([]table.Row, len(items))
	for i, it := range items {
		rows[i] = table.Row{it.Title, it.Username, it.URL}
	}
	m.itemTable.SetRows(rows)
	if m.itemTable.Cursor() >= len(rows) && len(rows) > 0 {
		m.itemTable.SetCursor(len(rows) - 1)
	}
}

func (m browseModel) update(msg tea.Msg) (browseModel, tea.Cmd) {
	var cmd tea.Cmd

	if m.searching {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.Type {
			case tea.KeyEnter:
				m.searching = false
				m.search.Blur()
				return m, nil
			case tea.KeyEsc:
				m.searching = false
				m.search.SetValue("")
				m.search.Blur()
				return m, func() tea.Msg { return searchChanged{} }
			}
		}
		before := m.search.Value()
		m.search, cmd = m.search.Update(msg)
		if m.search.Value() != before {
			return m, tea.Batch(cmd, func() tea.Msg { return searchChanged{} })
		}
		return m, cmd
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case keyMsg.String() == "tab":
			m.focus = (m.focus + 1) % 3
			return m, nil
		case keyMsg.String() == "/":
			m.searching = true
			m.search.Focus()
			return m, textinput.Blink
		case keyMsg.String() == "r":
			m.reveal = !m.reveal
			return m, nil
		}

		if m.focus == paneGroups {
			switch keyMsg.String() {
			case "up", "k":
				if m.groupCursor > 0 {
					m.groupCursor--
					return m, func() tea.Msg { return searchChanged{} }
				}
			case "down", "j":
				if m.groupCursor < len(m.groups) {
					m.groupCursor++
					return m, func() tea.Msg { return searchChanged{} }
				}
			}
			return m, nil
		}
	}

	if m.focus == paneItems {
		m.itemTable, cmd = m.itemTable.Update(msg)
	}
	return m, cmd
}

// searchChanged asks the root model to re-run the query and refresh rows.
type searchChanged struct{}

func (m browseModel) view() string {
	sidebar := m.renderGroups()
	items := m.renderItems()
	detail := m.renderDetail()

	panes := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, items, detail)

	var b strings.Builder
	if m.searching || m.search.Value() != "" {
		b.WriteString("  " + m.search.View() + "\n")
	}
	b.WriteString(panes)
	return b.String()
}

func (m browseModel) paneFrame(p pane) lipgloss.Style {
	if m.focus == p {
		return focusedPaneStyle
	}
	return paneStyle
}

func (m browseModel) renderGroups() string {
	var b strings.Builder
	b.WriteString(paneTitleStyle.Render("Groups") + "\n")

	rows := append([]string{"All items"}, groupNames(m.groups)...)
	for i, name := range rows {
		line := " " + name + " "
		if i == m.groupCursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return m.paneFrame(paneGroups).Width(22).Render(b.String())
}

func groupNames(groups []vault.Group) []string {
	names := make([]string, len(groups))
	for i, g := range groups {
		if g.ParentID != nil {
			names[i] = "· " + g.Name
		} else {
			names[i] = g.Name
		}
	}
	return names
}

func (m browseModel) renderItems() string {
	var b strings.Builder
	b.WriteString(paneTitleStyle.Render(fmt.Sprintf("Items (%d)", len(m.items))) + "\n")
	b.WriteString(m.itemTable.View())
	return m.paneFrame(paneItems).Render(b.String())
}

func (m browseModel) renderDetail() string {
	it := m.selectedItem()
	var b strings.Builder
	b.WriteString(paneTitleStyle.Render("Detail") + "\n")

	if it == nil {
		b.WriteString(dimStyle.Render("no item selected"))
		return m.paneFrame(paneDetail).Width(40).Render(b.String())
	}

	password := strings.Repeat("•", 8)
	if m.reveal {
		password = it.Password
	}

	field := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(labelStyle.Render(label) + value + "\n")
	}
	field("Title", it.Title)
	field("User", it.Username)
	field("Password", password)
	field("URL", it.URL)
	field("Tags", strings.Join(it.Tags, ", "))
	if it.TOTPSecret != "" {
		b.WriteString(labelStyle.Render("TOTP") + "configured\n")
	}
	if it.Notes != "" {
		b.WriteString("\n" + it.Notes + "\n")
	}
	if len(it.History) > 0 {
		b.WriteString("\n" + dimStyle.Render(fmt.Sprintf("%d previous password(s)", len(it.History))) + "\n")
	}
	b.WriteString("\n" + dimStyle.Render("modified "+it.ModifiedAt.Format("2006-01-02 15:04")))

	return m.paneFrame(paneDetail).Width(40).Render(b.String())
}
