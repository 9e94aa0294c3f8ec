package menu

import (
	"fmt"
	"strings"

	"github.com/go-mclib/data/pkg/data/items"
	"github.com/google/uuid"

	"github.com/solterra/towny-catalog/internal/format/text"
)

// Materials used by the catalog tiles.
const (
	MaterialBeacon     = "minecraft:beacon"
	MaterialGrassBlock = "minecraft:grass_block"
	MaterialBook       = "minecraft:book"
	MaterialArrow      = "minecraft:arrow"
	MaterialBarrier    = "minecraft:barrier"
	MaterialEmerald    = "minecraft:emerald"
	MaterialGoldIngot  = "minecraft:gold_ingot"
	MaterialPlayerHead = "minecraft:player_head"
)

// Tile is one item drawn in a menu slot.
type Tile struct {
	Material   string
	ItemID     int32
	Purpose    Purpose
	Name       text.Line
	Lore       []text.Line
	SkullOwner uuid.UUID
}

// NewTile builds a tile and resolves the protocol item id of material. Unknown
// materials get id -1.
func NewTile(material string, purpose Purpose, name text.Line, lore ...text.Line) *Tile {
	if !strings.Contains(material, ":") {
		material = "minecraft:" + material
	}
	return &Tile{
		Material: material,
		ItemID:   items.ItemID(material),
		Purpose:  purpose,
		Name:     name,
		Lore:     lore,
	}
}

// Label is the plain display name.
func (t *Tile) Label() string {
	if t == nil {
		return ""
	}
	return t.Name.String()
}

// Grid is a rendered menu.
type Grid struct {
	Kind  Kind
	Title text.Line
	Slots [Size]*Tile
}

// At returns the tile in slot or nil.
func (g *Grid) At(slot int) *Tile {
	if g == nil || slot < 0 || slot >= Size {
		return nil
	}
	return g.Slots[slot]
}

func (g *Grid) set(slot int, t *Tile) {
	if slot < 0 || slot >= Size {
		return
	}
	g.Slots[slot] = t
}

// Filled counts the occupied slots.
func (g *Grid) Filled() int {
	n := 0
	for _, t := range g.Slots {
		if t != nil {
			n++
		}
	}
	return n
}

// Dump renders the grid as plain text, one block per occupied slot.
func (g *Grid) Dump() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", g.Title.String())
	for slot, t := range g.Slots {
		if t == nil {
			continue
		}
		fmt.Fprintf(&b, "\n[%02d] %s %s\n", slot, strings.TrimPrefix(t.Material, "minecraft:"), t.Name.String())
		for _, l := range t.Lore {
			b.WriteString(strings.TrimRight("    "+l.String(), " "))
			b.WriteString("\n")
		}
	}
	return b.String()
}
