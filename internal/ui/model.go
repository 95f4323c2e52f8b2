package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/zombocoder/vaultura/internal/app"
	"github.com/zombocoder/vaultura/internal/vault"
)

type screen int

const (
	screenLock screen = iota
	screenBrowse
	screenItemForm
	screenGroupForm
	screenConfirm
	screenGenerator
)

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model is the root bubbletea model. It routes input to the active screen
// and turns screen events into dispatched intents.
type Model struct {
	dispatcher *app.Dispatcher
	keys       keyMap
	help       help.Model

	screen    screen
	lock      lockModel
	browse    browseModel
	itemForm  itemFormModel
	groupForm groupFormModel
	confirm   confirmModel
	gen       generatorModel

	pendingItem  *uuid.UUID
	pendingGroup *uuid.UUID

	width     int
	height    int
	status    string
	statusErr bool

	autoLock  time.Duration
	lastInput time.Time
}

func New(dispatcher *app.Dispatcher, autoLock time.Duration) Model {
	creating := !dispatcher.Service().Exists()
	return Model{
		dispatcher: dispatcher,
		keys:       keys,
		help:       help.New(),
		screen:     screenLock,
		lock:       newLockModel(creating),
		browse:     newBrowseModel(),
		autoLock:   autoLock,
		lastInput:  time.Now(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tickCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		if m.screen != screenLock && m.autoLock > 0 && time.Since(m.lastInput) > m.autoLock {
			return m.lockNow("auto-locked after inactivity"), tickCmd()
		}
		return m, tickCmd()

	case tea.KeyMsg:
		m.lastInput = time.Now()
		if msg.Type == tea.KeyCtrlC {
			return m.quit()
		}

	case unlockSubmitted:
		return m.handleUnlock(msg)
	case searchChanged:
		m.refresh()
		return m, nil
	case itemFormSubmitted:
		return m.handleItemForm(msg)
	case groupFormSubmitted:
		return m.handleGroupForm(msg)
	case formCancelled:
		return m.toBrowse(), nil
	case generateRequested:
		m.screen = screenGenerator
		m.gen = newGeneratorModel(true)
		return m, m.gen.regen()
	case genRegenerate:
		out, err := m.dispatcher.Dispatch(app.GeneratePassword{Options: msg.opts})
		m.gen.setResult(out.Password, err)
		return m, nil
	case genAccepted:
		return m.handleGenerated(msg.password)
	case confirmResult:
		return m.handleConfirm(msg)
	}

	return m.routeToScreen(msg)
}

func (m Model) routeToScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.screen {
	case screenLock:
		m.lock, cmd = m.lock.update(msg)
	case screenBrowse:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && !m.browse.searching {
			if handled, model, c := m.browseKeys(keyMsg); handled {
				return model, c
			}
		}
		m.browse, cmd = m.browse.update(msg)
	case screenItemForm:
		m.itemForm, cmd = m.itemForm.update(msg)
	case screenGroupForm:
		m.groupForm, cmd = m.groupForm.update(msg)
	case screenConfirm:
		m.confirm, cmd = m.confirm.update(msg)
	case screenGenerator:
		m.gen, cmd = m.gen.update(msg)
	}
	return m, cmd
}

// browseKeys handles the action keys on the browse screen; navigation keys
// fall through to the browse model.
func (m Model) browseKeys(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		model, cmd := m.quit()
		return true, model, cmd

	case key.Matches(msg, m.keys.Lock):
		return true, m.lockNow("vault locked"), nil

	case key.Matches(msg, m.keys.NewItem):
		m.screen = screenItemForm
		m.itemForm = newItemForm(nil, m.browse.selectedGroup())
		return true, m, textinput.Blink

	case key.Matches(msg, m.keys.NewGroup):
		m.screen = screenGroupForm
		m.groupForm = newGroupForm(nil)
		return true, m, textinput.Blink

	case key.Matches(msg, m.keys.Edit):
		if m.browse.focus == paneGroups {
			if g := m.selectedBrowseGroup(); g != nil {
				m.screen = screenGroupForm
				m.groupForm = newGroupForm(g)
				return true, m, textinput.Blink
			}
			return true, m, nil
		}
		if it := m.browse.selectedItem(); it != nil {
			m.screen = screenItemForm
			m.itemForm = newItemForm(it, it.GroupID)
			return true, m, textinput.Blink
		}
		return true, m, nil

	case key.Matches(msg, m.keys.Delete):
		if m.browse.focus == paneGroups {
			if g := m.selectedBrowseGroup(); g != nil {
				id := g.ID
				m.pendingGroup = &id
				m.screen = screenConfirm
				m.confirm = newConfirmModel(
					fmt.Sprintf("Delete group %q and every item in it?", g.Name),
					confirmDeleteGroup)
			}
			return true, m, nil
		}
		if it := m.browse.selectedItem(); it != nil {
			id := it.ID
			m.pendingItem = &id
			m.screen = screenConfirm
			m.confirm = newConfirmModel(
				fmt.Sprintf("Delete item %q?", it.Title),
				confirmDeleteItem)
		}
		return true, m, nil

	case key.Matches(msg, m.keys.CopyPass):
		if it := m.browse.selectedItem(); it != nil {
			m.dispatchStatus(app.CopySecret{ID: it.ID})
		}
		return true, m, nil

	case key.Matches(msg, m.keys.CopyUser):
		if it := m.browse.selectedItem(); it != nil {
			m.dispatchStatus(app.CopyUsername{ID: it.ID})
		}
		return true, m, nil

	case key.Matches(msg, m.keys.CopyTOTP):
		if it := m.browse.selectedItem(); it != nil {
			if it.TOTPSecret == "" {
				m.setStatus("item has no totp secret", true)
			} else {
				m.dispatchStatus(app.CopyTOTP{ID: it.ID})
			}
		}
		return true, m, nil

	case key.Matches(msg, m.keys.Generate):
		m.screen = screenGenerator
		m.gen = newGeneratorModel(false)
		return true, m, m.gen.regen()
	}

	return false, m, nil
}

func (m Model) handleUnlock(msg unlockSubmitted) (tea.Model, tea.Cmd) {
	var intent app.Intent
	if msg.create {
		intent = app.CreateVault{Password: msg.password}
	} else {
		intent = app.UnlockVault{Password: msg.password}
	}

	out, err := m.dispatcher.Dispatch(intent)
	if err != nil {
		m.lock.errText = unlockErrorText(err)
		return m, nil
	}
	m.setStatus(out.Message, false)
	return m.toBrowse(), nil
}

// unlockErrorText keeps the auth failure message generic on purpose.
func unlockErrorText(err error) string {
	switch {
	case err == app.ErrThrottled:
		return "too many attempts, wait a moment"
	case err == app.ErrNoStoredPassword:
		return "no stored password, type one"
	default:
		return "unlock failed: wrong password or corrupted vault"
	}
}

func (m Model) handleItemForm(msg itemFormSubmitted) (tea.Model, tea.Cmd) {
	if msg.id != nil {
		m.dispatchStatus(app.EditItem{ID: *msg.id, Draft: msg.draft})
	} else {
		m.dispatchStatus(app.AddItem{Draft: msg.draft})
	}
	if m.statusErr {
		m.itemForm.errText = m.status
		return m, nil
	}
	return m.toBrowse(), nil
}

func (m Model) handleGroupForm(msg groupFormSubmitted) (tea.Model, tea.Cmd) {
	if msg.id != nil {
		m.dispatchStatus(app.EditGroup{ID: *msg.id, Name: msg.name, Parent: m.groupForm.parent})
	} else {
		m.dispatchStatus(app.AddGroup{Name: msg.name})
	}
	if m.statusErr {
		m.groupForm.errText = m.status
		return m, nil
	}
	return m.toBrowse(), nil
}

func (m Model) handleGenerated(password string) (tea.Model, tea.Cmd) {
	if m.gen.forForm {
		m.itemForm.setPassword(password)
		m.screen = screenItemForm
		return m, textinput.Blink
	}
	// From the browse screen the generated password seeds a new item.
	m.screen = screenItemForm
	m.itemForm = newItemForm(nil, m.browse.selectedGroup())
	m.itemForm.setPassword(password)
	return m, textinput.Blink
}

func (m Model) handleConfirm(msg confirmResult) (tea.Model, tea.Cmd) {
	if !msg.ok {
		m.pendingItem = nil
		m.pendingGroup = nil
		return m.toBrowse(), nil
	}

	switch msg.action {
	case confirmDeleteItem:
		if m.pendingItem != nil {
			m.dispatchStatus(app.DeleteItem{ID: *m.pendingItem})
			m.pendingItem = nil
		}
	case confirmDeleteGroup:
		if m.pendingGroup != nil {
			m.dispatchStatus(app.DeleteGroup{ID: *m.pendingGroup})
			m.pendingGroup = nil
			m.browse.groupCursor = 0
		}
	}
	return m.toBrowse(), nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	// Locking wipes the key and clears the clipboard before exit.
	if m.dispatcher.Service().IsUnlocked() {
		m.dispatcher.Dispatch(app.LockVault{})
	}
	return m, tea.Quit
}

func (m Model) lockNow(status string) Model {
	m.dispatcher.Dispatch(app.LockVault{})
	m.screen = screenLock
	m.lock = newLockModel(false)
	m.browse = newBrowseModel()
	m.setStatus(status, false)
	return m
}

func (m Model) toBrowse() Model {
	m.screen = screenBrowse
	m.refresh()
	return m
}

// refresh re-reads groups and the current search results into the browse
// model.
func (m *Model) refresh() {
	groups, err := m.dispatcher.Service().Groups()
	if err != nil {
		return
	}
	out, err := m.dispatcher.Dispatch(app.SearchItems{
		Query: m.browse.search.Value(),
		Group: m.browse.selectedGroup(),
	})
	if err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.browse.setData(groups, out.Items)
}

func (m *Model) selectedBrowseGroup() *vault.Group {
	id := m.browse.selectedGroup()
	if id == nil {
		return nil
	}
	g, err := m.dispatcher.Service().Group(*id)
	if err != nil {
		return nil
	}
	return &g
}

func (m *Model) dispatchStatus(intent app.Intent) {
	out, err := m.dispatcher.Dispatch(intent)
	if err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.setStatus(out.Message, false)
	m.refresh()
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func (m Model) View() string {
	var body string
	switch m.screen {
	case screenLock:
		body = m.lock.view()
	case screenBrowse:
		body = m.browse.view()
	case screenItemForm:
		body = m.itemForm.view()
	case screenGroupForm:
		body = m.groupForm.view()
	case screenConfirm:
		body = m.confirm.view()
	case screenGenerator:
		body = m.gen.view()
	}

	title := "vaultura"
	if m.dispatcher.Service().IsDirty() {
		title += " •"
	}
	out := titleStyle.Render(title) + "\n" + body + "\n"
	if m.status != "" {
		if m.statusErr {
			out += "\n" + errorStyle.Render("✗ "+m.status)
		} else {
			out += "\n" + successStyle.Render("✓ "+m.status)
		}
	}
	if m.screen == screenBrowse {
		out += "\n" + helpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
	}
	return out
}
