package ui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	catalogcmd "github.com/solterra/towny-catalog/internal/command"
	"github.com/solterra/towny-catalog/internal/logging"
	"github.com/solterra/towny-catalog/internal/ui/command"
)

const unknownCommandNotice = "Unknown command. Type /tcatalog for help."

// openPrompt switches to prompt mode with initial typed in.
func (m *Model) openPrompt(initial string) tea.Cmd {
	m.mode = ModePrompt
	m.errMsg = ""
	m.resetCompletions()
	m.prompt.SetValue(initial)
	m.prompt.CursorEnd()
	return m.prompt.Focus()
}

func (m *Model) closePrompt() {
	m.mode = ModeMenu
	m.resetCompletions()
	m.prompt.Blur()
	m.prompt.Reset()
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyCtrlC:
		return tea.Quit
	case tea.KeyEsc:
		m.closePrompt()
		return nil
	case tea.KeyEnter:
		line := strings.TrimSpace(m.prompt.Value())
		m.closePrompt()
		if line == "" || line == "/" {
			return nil
		}
		if !strings.HasPrefix(line, "/") {
			line = "/" + line
		}
		return m.runLine(line)
	case tea.KeyTab:
		m.completeLine()
		return nil
	}
	m.resetCompletions()
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return cmd
}

// completeLine fills the prompt with the next completion candidate. The
// candidates are computed once per edit and cycled on repeated tabs.
func (m *Model) completeLine() {
	if m.commands == nil {
		return
	}
	if m.completions == nil {
		m.completions = m.commands.Complete(m.viewer, m.prompt.Value())
		m.completionIndex = 0
		if m.completions == nil {
			m.completions = []string{}
		}
	} else if len(m.completions) > 0 {
		m.completionIndex = (m.completionIndex + 1) % len(m.completions)
	}
	if len(m.completions) == 0 {
		m.setInfo("No completions")
		return
	}
	m.prompt.SetValue(m.completions[m.completionIndex])
	m.prompt.CursorEnd()
}

func (m *Model) resetCompletions() {
	m.completions = nil
	m.completionIndex = 0
}

// runLine queues a command line on the bus.
func (m *Model) runLine(line string) tea.Cmd {
	if m.viewer == nil || m.commands == nil {
		return nil
	}
	m.pending++
	return m.bus.Execute(command.Request{Line: line, Viewer: m.viewer})
}

func (m *Model) handleCommandResultMsg(msg tea.Msg) tea.Cmd {
	res, ok := msg.(command.Result)
	if !ok {
		return nil
	}
	if m.pending > 0 {
		m.pending--
	}
	switch {
	case res.Err == nil:
		m.errMsg = ""
	case errors.Is(res.Err, catalogcmd.ErrUnknownCommand):
		m.errMsg = unknownCommandNotice
	default:
		m.errMsg = res.Err.Error()
		logging.Error(res.Err)
	}
	return nil
}
