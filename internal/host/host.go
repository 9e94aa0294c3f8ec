// Package host describes what the catalog needs from the game server that
// embeds it.
package host

import (
	"github.com/google/uuid"

	"github.com/solterra/towny-catalog/internal/catalog"
	"github.com/solterra/towny-catalog/internal/format/text"
	"github.com/solterra/towny-catalog/internal/menu"
)

// Sound names played back to viewers.
const (
	SoundClick    = "ui.button.click"
	SoundTeleport = "entity.enderman.teleport"
)

// Permission nodes checked by commands.
const (
	PermissionUse   = "townycatalog.use"
	PermissionAdmin = "townycatalog.admin"
)

// Viewer is a connected player as seen by the catalog. All calls happen on the
// host's event loop.
type Viewer interface {
	ID() uuid.UUID
	Name() string
	HasPermission(node string) bool
	Message(lines ...text.Line)
	PlaySound(name string)
	Teleport(loc catalog.Location) error
	// ShowMenu displays grid and makes session the viewer's open menu,
	// replacing any previous one.
	ShowMenu(session *menu.Session, grid *menu.Grid)
	CloseMenu()
}
