package ui

import (
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/solterra/towny-catalog/internal/backend"
	catalogcmd "github.com/solterra/towny-catalog/internal/command"
	"github.com/solterra/towny-catalog/internal/dispatcher"
	"github.com/solterra/towny-catalog/internal/host"
	"github.com/solterra/towny-catalog/internal/menu"
	"github.com/solterra/towny-catalog/internal/theme"
	"github.com/solterra/towny-catalog/internal/ui/command"
	uistate "github.com/solterra/towny-catalog/internal/ui/state"
)

type Mode int

const (
	ModeMenu Mode = iota
	ModePrompt
)

const (
	catalogLine  = "/town catalog"
	promptPrefix = "> "
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Deps are the catalog services a Model drives.
type Deps struct {
	Viewer     *host.Local
	Dispatcher *dispatcher.Dispatcher
	Commands   *catalogcmd.Handler
}

// Model implements the Bubble Tea model for the plot catalog client.
type Model struct {
	viewer     *host.Local
	dispatcher *dispatcher.Dispatcher
	commands   *catalogcmd.Handler
	bus        *command.Bus

	backend        *backend.Watcher
	backendState   map[backend.Kind]error
	backendLastErr string

	mode            Mode
	cursor          *uistate.GridCursor
	shown           *menu.Session
	prompt          textinput.Model
	completions     []string
	completionIndex int
	pending         int
	soundsSeen      int

	errMsg      string
	infoMsg     string
	infoExpire  time.Time
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the UI around a viewer and the catalog services.
func NewModel(deps Deps, width, height int, showFooter bool, watcher *backend.Watcher) *Model {
	m := &Model{
		viewer:       deps.Viewer,
		dispatcher:   deps.Dispatcher,
		commands:     deps.Commands,
		backend:      watcher,
		backendState: map[backend.Kind]error{},
		showFooter:   showFooter,
		mode:         ModeMenu,
		cursor:       uistate.NewGridCursor(menu.Rows, menu.Columns),
	}
	if deps.Commands != nil {
		m.bus = command.New(deps.Commands)
	} else {
		m.bus = command.New(nil)
	}
	if width > 0 {
		m.width = width
		m.fixedWidth = true
	}
	if height > 0 {
		m.height = height
		m.fixedHeight = true
	}
	m.prompt = newPrompt()
	m.registerHandlers()
	return m
}

func newPrompt() textinput.Model {
	ti := textinput.New()
	ti.Prompt = promptPrefix
	ti.Placeholder = "/tcatalog"
	ti.CharLimit = 256
	if styles.Prompt != nil {
		ti.PromptStyle = styles.Prompt.Copy()
	}
	if styles.PromptHint != nil {
		ti.PlaceholderStyle = styles.PromptHint.Copy()
	}
	if styles.Cursor != nil {
		ti.Cursor.Style = styles.Cursor.Copy()
	}
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	if cmd := m.runLine(catalogLine); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 2)
	if key, ok := msg.(tea.KeyMsg); ok && m.mode == ModePrompt {
		if cmd := m.handlePromptKey(key); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, m.finishUpdate(cmds)
	}

	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(command.Result{}):    m.handleCommandResultMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// finishUpdate keeps the cursor in step with the open menu and surfaces the
// newest sound before batching cmds.
func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	m.syncMenu()
	m.noteSounds()
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Mode reports whether the model is in menu or prompt mode.
func (m *Model) Mode() Mode {
	return m.mode
}

// Cursor returns the highlighted grid slot.
func (m *Model) Cursor() int {
	return m.cursor.Slot
}

// Err returns the error currently shown on the status line.
func (m *Model) Err() string {
	return m.errMsg
}
