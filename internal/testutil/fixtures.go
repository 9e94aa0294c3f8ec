package testutil

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/solterra/towny-catalog/internal/settings"
	"github.com/solterra/towny-catalog/internal/towny"
)

var (
	ViewerID  = uuid.MustParse("7f1c6a3e-0d7b-4b8e-9a55-2f0c4e1b9d10")
	MayorID   = uuid.MustParse("0b6f1d7a-5c2e-4f3b-8d9a-6e4c2a1f7b35")
	NomadID   = uuid.MustParse("c3d2e1f0-1a2b-4c3d-9e8f-0a1b2c3d4e5f")
	StrangeID = uuid.MustParse("00000000-0000-4000-8000-00000000dead")
)

// Settings is a fixed settings source for tests.
type Settings settings.Settings

func (s Settings) Current() settings.Settings { return settings.Settings(s) }

// DefaultSettings returns settings.Defaults as a fixed source.
func DefaultSettings() Settings {
	return Settings(settings.Defaults())
}

// Snapshot builds a small registry:
//
//   - Oakridge: open, public, mayor Brindle, nation Verdant, four plots of
//     which three are for sale (75, 150 commercial, 50)
//   - applewood: open, public, no mayor, one plot at 40
//   - Hollow: closed, one plot at 10
//   - Nether Reach: open, public, one plot at 30 in an unloaded world
//
// Aster (ViewerID) has a balance of 100; Nomad has no town and 5.
func Snapshot() *towny.Snapshot {
	snap := towny.NewSnapshot()
	snap.AddResident(&towny.Resident{UUID: ViewerID, Name: "Aster", Town: "Oakridge", Balance: 100})
	snap.AddResident(&towny.Resident{UUID: MayorID, Name: "Brindle", Town: "Oakridge", Balance: 2500})
	snap.AddResident(&towny.Resident{UUID: NomadID, Name: "Nomad", Balance: 5})
	snap.AddWorld(&towny.Terrain{
		WorldName: "world",
		Loaded:    true,
		SurfaceY:  64,
		Columns:   map[[2]int]int{{40, -24}: 71},
	})
	snap.AddWorld(&towny.Terrain{WorldName: "world_nether", Loaded: false})

	snap.AddTown(&towny.Town{
		UUID:      uuid.MustParse("9a8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d"),
		Name:      "Oakridge",
		Open:      true,
		Public:    true,
		Mayor:     &towny.Mayor{UUID: MayorID, Name: "Brindle"},
		Nation:    "Verdant",
		Residents: []string{"Aster", "Brindle", "Cato"},
		Taxes:     12.5,
		Plots: []*towny.Plot{
			{World: "world", X: 2, Z: -2, Name: "Lakeside", Type: towny.PlotResidential, Price: 75, ForSale: true},
			{World: "world", X: 3, Z: -2, Type: towny.PlotCommercial, Price: 150, ForSale: true},
			{World: "world", X: 4, Z: -2, Type: towny.PlotResidential, Price: 50, ForSale: true},
			{World: "world", X: 5, Z: -2, Type: towny.PlotResidential, Price: 20},
		},
	})
	snap.AddTown(&towny.Town{
		UUID:          uuid.MustParse("1b2c3d4e-5f60-4718-9a0b-c1d2e3f4a5b6"),
		Name:          "applewood",
		Open:          true,
		Public:        true,
		Residents:     []string{"Wren"},
		Taxes:         5,
		TaxPercentage: true,
		Plots: []*towny.Plot{
			{World: "world", X: 10, Z: 10, Type: towny.PlotResidential, Price: 40, ForSale: true},
		},
	})
	snap.AddTown(&towny.Town{
		Name:   "Hollow",
		Public: true,
		Plots: []*towny.Plot{
			{World: "world", X: -5, Z: 1, Type: towny.PlotResidential, Price: 10, ForSale: true},
		},
	})
	snap.AddTown(&towny.Town{
		Name:   "Nether Reach",
		Open:   true,
		Public: true,
		Plots: []*towny.Plot{
			{World: "world_nether", X: 0, Z: 0, Type: towny.PlotResidential, Price: 30, ForSale: true},
		},
	})
	return snap
}

// AddTowns appends n open, public towns named "Town 001" onwards, each with
// one residential plot priced at 1.
func AddTowns(snap *towny.Snapshot, n int) {
	for i := 1; i <= n; i++ {
		snap.AddTown(&towny.Town{
			Name:   fmt.Sprintf("Town %03d", i),
			Open:   true,
			Public: true,
			Plots: []*towny.Plot{
				{World: "world", X: i, Z: 100, Type: towny.PlotResidential, Price: 1, ForSale: true},
			},
		})
	}
}

// AddPlots appends n for-sale plots priced 1..n to town.
func AddPlots(town *towny.Town, n int) {
	for i := 1; i <= n; i++ {
		town.Plots = append(town.Plots, &towny.Plot{
			Town:    town,
			World:   "world",
			X:       i,
			Z:       200,
			Type:    towny.PlotResidential,
			Price:   float64(i),
			ForSale: true,
		})
	}
}
