package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/solterra/towny-catalog/internal/backend"
	"github.com/solterra/towny-catalog/internal/logging/events"
	"github.com/solterra/towny-catalog/internal/towny"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(msg tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

// applyBackendEvent swaps a freshly loaded registry into the catalog. Open
// menus keep the snapshot they were built from until they are reopened.
func (m *Model) applyBackendEvent(evt backend.Event) {
	if m.backendState == nil {
		m.backendState = make(map[backend.Kind]error)
	}
	m.backendState[evt.Kind] = evt.Err
	if evt.Err != nil {
		m.backendLastErr = evt.Err.Error()
		events.Registry.Error(evt.Err)
		return
	}

	if snap, ok := evt.Data.(*towny.Snapshot); ok && snap != nil && m.dispatcher != nil {
		m.dispatcher.Catalog().SetRegistry(snap)
		events.Registry.Refreshed(len(snap.Towns()))
	}

	if warn, _ := m.hasBackendIssue(); !warn {
		m.backendLastErr = ""
	}
}

func (m *Model) hasBackendIssue() (bool, string) {
	for _, err := range m.backendState {
		if err != nil {
			msg := m.backendLastErr
			if msg == "" {
				msg = err.Error()
			}
			return true, msg
		}
	}
	return false, ""
}
