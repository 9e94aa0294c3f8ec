package host

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/solterra/towny-catalog/internal/catalog"
	"github.com/solterra/towny-catalog/internal/format/text"
	"github.com/solterra/towny-catalog/internal/menu"
)

// PermissionAll grants every permission node.
const PermissionAll = "*"

// ErrTeleportBlocked is returned by Local when teleports are disabled.
var ErrTeleportBlocked = errors.New("teleport blocked")

// Local is an in-process Viewer. The terminal client drives one, and tests
// use it to observe what the catalog sent.
type Local struct {
	mu          sync.Mutex
	id          uuid.UUID
	name        string
	permissions map[string]bool
	chat        []text.Line
	sounds      []string
	position    catalog.Location
	teleports   int
	session     *menu.Session
	grid        *menu.Grid
	blockTravel bool
}

// NewLocal returns a viewer holding the given permission nodes.
func NewLocal(id uuid.UUID, name string, permissions ...string) *Local {
	l := &Local{id: id, name: name, permissions: make(map[string]bool)}
	for _, p := range permissions {
		l.permissions[p] = true
	}
	return l
}

func (l *Local) ID() uuid.UUID { return l.id }
func (l *Local) Name() string  { return l.name }

func (l *Local) HasPermission(node string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.permissions[PermissionAll] || l.permissions[node]
}

// Grant adds or removes a permission node.
func (l *Local) Grant(node string, allowed bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if allowed {
		l.permissions[node] = true
		return
	}
	delete(l.permissions, node)
}

func (l *Local) Message(lines ...text.Line) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.chat = append(l.chat, lines...)
}

func (l *Local) PlaySound(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sounds = append(l.sounds, name)
}

// BlockTravel makes the next teleports fail with ErrTeleportBlocked.
func (l *Local) BlockTravel(blocked bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.blockTravel = blocked
}

func (l *Local) Teleport(loc catalog.Location) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.blockTravel {
		return ErrTeleportBlocked
	}
	l.position = loc
	l.teleports++
	return nil
}

func (l *Local) ShowMenu(session *menu.Session, grid *menu.Grid) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.session = session
	l.grid = grid
}

func (l *Local) CloseMenu() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.session = nil
	l.grid = nil
}

// Menu returns the open session and its grid, both nil when closed.
func (l *Local) Menu() (*menu.Session, *menu.Grid) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.session, l.grid
}

// Chat returns every line received so far.
func (l *Local) Chat() []text.Line {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]text.Line(nil), l.chat...)
}

// LastMessage returns the plain text of the newest chat line.
func (l *Local) LastMessage() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.chat) == 0 {
		return ""
	}
	return l.chat[len(l.chat)-1].String()
}

// Sounds returns every sound played so far.
func (l *Local) Sounds() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.sounds...)
}

// Position returns the last teleport destination and the teleport count.
func (l *Local) Position() (catalog.Location, int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.position, l.teleports
}

// ClearChat drops received chat lines and sounds.
func (l *Local) ClearChat() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.chat = nil
	l.sounds = nil
}
