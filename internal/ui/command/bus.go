package command

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/solterra/towny-catalog/internal/host"
	"github.com/solterra/towny-catalog/internal/logging/events"
)

// Runner executes one chat command line on behalf of a viewer.
type Runner interface {
	Execute(v host.Viewer, line string) error
}

// Request encapsulates a command line invocation.
type Request struct {
	ID     string
	Line   string
	Viewer host.Viewer
}

// Result reports how a queued command line finished.
type Result struct {
	ID   string
	Line string
	Err  error
}

// Bus coordinates the execution of command lines.
type Bus struct {
	runner Runner
}

// New initialises a command bus that hands lines to runner.
func New(runner Runner) *Bus {
	return &Bus{runner: runner}
}

// Execute runs the command line on the caller's goroutine, which is the
// Bubble Tea event loop, and returns a command that reports the Result.
func (b *Bus) Execute(req Request) tea.Cmd {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	events.Command.Queue(req.ID, req.Line)
	if b.runner == nil || req.Viewer == nil {
		return func() tea.Msg { return nil }
	}
	err := b.runner.Execute(req.Viewer, req.Line)
	res := Result{ID: req.ID, Line: req.Line, Err: err}
	outcome := "ok"
	if err != nil {
		outcome = fmt.Sprintf("error: %v", err)
	}
	events.Command.Result(req.ID, req.Line, outcome)
	return func() tea.Msg { return res }
}
