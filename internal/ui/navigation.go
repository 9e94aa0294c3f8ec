package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/solterra/towny-catalog/internal/dispatcher"
	"github.com/solterra/towny-catalog/internal/host"
	"github.com/solterra/towny-catalog/internal/logging/events"
	"github.com/solterra/towny-catalog/internal/menu"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if m.mode != ModeMenu {
		return nil
	}
	switch keyMsg.String() {
	case "ctrl+c", "q":
		return tea.Quit
	case "esc":
		return m.handleEscapeKey()
	case "enter", " ":
		return m.handleEnterKey()
	case "/", ":":
		return m.openPrompt("/")
	case "up", "k":
		m.cursor.MoveBy(-1, 0)
	case "down", "j":
		m.cursor.MoveBy(1, 0)
	case "left", "h":
		m.cursor.MoveBy(0, -1)
	case "right", "l":
		m.cursor.MoveBy(0, 1)
	case "home":
		m.cursor.MoveHome()
	case "end":
		m.cursor.MoveEnd()
	case "pgup", "[":
		return m.clickControl(menu.PurposePrevious)
	case "pgdown", "]":
		return m.clickControl(menu.PurposeNext)
	case "backspace", "b":
		return m.clickControl(menu.PurposeBack)
	case "ctrl+r":
		m.refreshRegistry()
	}
	return nil
}

// handleEscapeKey closes the open menu, or quits when nothing is open.
func (m *Model) handleEscapeKey() tea.Cmd {
	m.errMsg = ""
	session, _ := m.viewer.Menu()
	if session == nil {
		return tea.Quit
	}
	m.viewer.CloseMenu()
	events.Menu.Close(m.viewer.ID().String())
	return nil
}

// handleEnterKey clicks the highlighted slot. With no menu open it runs the
// catalog command instead.
func (m *Model) handleEnterKey() tea.Cmd {
	session, _ := m.viewer.Menu()
	if session == nil {
		return m.runLine(catalogLine)
	}
	m.clickSlot(m.cursor.Slot)
	return nil
}

// clickControl clicks the slot holding the given control, if the open
// menu's layout has one.
func (m *Model) clickControl(p menu.Purpose) tea.Cmd {
	session, _ := m.viewer.Menu()
	if session == nil {
		return nil
	}
	slot, ok := session.Layout().Slot(p)
	if !ok {
		return nil
	}
	m.clickSlot(slot)
	return nil
}

func (m *Model) clickSlot(slot int) {
	session, _ := m.viewer.Menu()
	if session == nil || m.dispatcher == nil {
		return
	}
	m.errMsg = ""
	switch out := m.dispatcher.Click(m.viewer, session, slot); out {
	case dispatcher.OutcomeTravelled:
		loc, _ := m.viewer.Position()
		m.setInfo(fmt.Sprintf("Travelled to %s", loc))
	case dispatcher.OutcomeTravelFailed, dispatcher.OutcomeUnavailable:
		m.errMsg = m.viewer.LastMessage()
	}
}

// syncMenu moves the cursor home whenever a different menu is shown.
func (m *Model) syncMenu() {
	if m.viewer == nil {
		return
	}
	session, _ := m.viewer.Menu()
	if session != m.shown {
		m.shown = session
		m.cursor.MoveHome()
	}
}

// noteSounds surfaces the newest sound the viewer heard.
func (m *Model) noteSounds() {
	if m.viewer == nil {
		return
	}
	sounds := m.viewer.Sounds()
	if len(sounds) < m.soundsSeen {
		m.soundsSeen = 0
	}
	if len(sounds) == m.soundsSeen {
		return
	}
	m.soundsSeen = len(sounds)
	if m.infoMsg != "" {
		return
	}
	switch sounds[len(sounds)-1] {
	case host.SoundTeleport:
		m.setInfo("♪ whoosh")
	case host.SoundClick:
		m.setInfo("♪ click")
	}
}

func (m *Model) refreshRegistry() {
	if m.backend == nil {
		m.setInfo("Registry polling is disabled")
		return
	}
	m.backend.Refresh()
	m.setInfo("Reloading registry…")
}
