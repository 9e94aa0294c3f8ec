// Package towny models the read-only town registry the catalog queries:
// towns, their plots, residents, economy state and loaded worlds.
package towny

import (
	"strings"

	"github.com/google/uuid"
)

// PlotType tags what a plot may be used for.
type PlotType string

const (
	PlotResidential PlotType = "residential"
	PlotCommercial  PlotType = "commercial"
	PlotArena       PlotType = "arena"
	PlotEmbassy     PlotType = "embassy"
	PlotFarm        PlotType = "farm"
	PlotBank        PlotType = "bank"
	PlotInn         PlotType = "inn"
	PlotJail        PlotType = "jail"
	PlotWilds       PlotType = "wilds"
)

// ParsePlotType normalises a stored plot type, falling back to residential.
func ParsePlotType(raw string) PlotType {
	switch t := PlotType(strings.ToLower(strings.TrimSpace(raw))); t {
	case PlotResidential, PlotCommercial, PlotArena, PlotEmbassy, PlotFarm,
		PlotBank, PlotInn, PlotJail, PlotWilds:
		return t
	default:
		return PlotResidential
	}
}

// String renders the type the way the host prints it in plot lore.
func (t PlotType) String() string {
	return strings.ToUpper(string(t))
}

// Resident is a registered player identity with an economy account.
type Resident struct {
	UUID    uuid.UUID
	Name    string
	Town    string
	Balance float64
}

// Mayor identifies the resident that runs a town.
type Mayor struct {
	UUID uuid.UUID
	Name string
}

// Town is a named territory made up of plots.
type Town struct {
	UUID          uuid.UUID
	Name          string
	Open          bool
	Public        bool
	Mayor         *Mayor
	Nation        string
	Residents     []string
	Taxes         float64
	TaxPercentage bool
	Plots         []*Plot
}

// HasMayor reports whether the town has a mayor assigned.
func (t *Town) HasMayor() bool {
	return t != nil && t.Mayor != nil && t.Mayor.Name != ""
}

// HasNation reports whether the town belongs to a nation.
func (t *Town) HasNation() bool {
	return t != nil && strings.TrimSpace(t.Nation) != ""
}

// Plot is a single town block.
type Plot struct {
	Town    *Town
	World   string
	X       int
	Z       int
	Name    string
	Type    PlotType
	Price   float64
	ForSale bool
}

// TownName returns the owning town's name or "Unknown" for orphaned plots.
func (p *Plot) TownName() string {
	if p == nil || p.Town == nil {
		return "Unknown"
	}
	return p.Town.Name
}

// World answers terrain questions for a loaded world.
type World interface {
	Name() string
	HighestBlockYAt(x, z int) int
}

// Registry is the read-only view of the town system used by the catalog.
type Registry interface {
	Towns() []*Town
	Town(name string) (*Town, bool)
	Resident(id uuid.UUID) (*Resident, bool)
	EconomyActive() bool
	TownBlockSize() int
	World(name string) (World, bool)
}
