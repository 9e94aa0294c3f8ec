package store

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/solterra/towny-catalog/internal/testutil"
	"github.com/solterra/towny-catalog/internal/towny"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "registry.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func importSeed(t *testing.T, s *Store) {
	t.Helper()
	path := filepath.Join(testutil.RepoRoot(t), "testdata", "seed.yaml")
	if err := s.ImportFile(context.Background(), path); err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(""); !errors.Is(err, ErrEmptyPath) {
		t.Fatalf("expected ErrEmptyPath, got %v", err)
	}
}

func TestLoadEmpty(t *testing.T) {
	s := openStore(t)
	snap, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(snap.Towns()) != 0 || len(snap.Residents) != 0 {
		t.Fatalf("expected empty snapshot, got %d towns", len(snap.Towns()))
	}
	if !snap.EconomyActive() || snap.TownBlockSize() != towny.DefaultTownBlockSize {
		t.Fatalf("expected defaults, got economy=%v size=%d", snap.EconomyActive(), snap.TownBlockSize())
	}
}

func TestImportAndLoad(t *testing.T) {
	s := openStore(t)
	importSeed(t, s)

	snap, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	var names []string
	for _, town := range snap.Towns() {
		names = append(names, town.Name)
	}
	if want := []string{"Oakridge", "applewood", "Hollow", "Nether Reach"}; !reflect.DeepEqual(names, want) {
		t.Fatalf("expected seed order %v, got %v", want, names)
	}

	oak, ok := snap.Town("oakridge")
	if !ok {
		t.Fatalf("expected Oakridge")
	}
	if !oak.Open || !oak.Public || oak.Nation != "Verdant" || oak.Taxes != 12.5 || oak.TaxPercentage {
		t.Fatalf("unexpected town fields %+v", oak)
	}
	if oak.Mayor == nil || oak.Mayor.Name != "Brindle" || oak.Mayor.UUID != testutil.MayorID {
		t.Fatalf("expected mayor Brindle resolved to resident id, got %+v", oak.Mayor)
	}
	if want := []string{"Aster", "Brindle"}; !reflect.DeepEqual(oak.Residents, want) {
		t.Fatalf("expected residents %v, got %v", want, oak.Residents)
	}
	if len(oak.Plots) != 4 {
		t.Fatalf("expected 4 plots, got %d", len(oak.Plots))
	}
	first := oak.Plots[0]
	if first.Name != "Lakeside" || first.Price != 75 || !first.ForSale || first.Town != oak || first.X != 2 || first.Z != -2 {
		t.Fatalf("unexpected first plot %+v", first)
	}
	if oak.Plots[1].Type != towny.PlotCommercial || oak.Plots[3].ForSale {
		t.Fatalf("unexpected plot flags %+v %+v", oak.Plots[1], oak.Plots[3])
	}

	nether, _ := snap.Town("Nether Reach")
	if nether.Plots[0].Type != towny.PlotResidential {
		t.Fatalf("expected missing type to default to residential, got %s", nether.Plots[0].Type)
	}
	if _, ok := snap.World("world_nether"); ok {
		t.Fatalf("expected unloaded world to be unavailable")
	}
	w, ok := snap.World("world")
	if !ok || w.HighestBlockYAt(40, -24) != 71 || w.HighestBlockYAt(0, 0) != 64 {
		t.Fatalf("unexpected terrain")
	}

	hollow, _ := snap.Town("Hollow")
	if hollow.Open || hollow.Mayor == nil || hollow.Mayor.UUID == uuid.Nil {
		t.Fatalf("expected closed town with a derived mayor id, got %+v", hollow)
	}
	if hollow.UUID == uuid.Nil {
		t.Fatalf("expected a generated town id")
	}

	aster, ok := snap.Resident(testutil.ViewerID)
	if !ok || aster.Balance != 100 || aster.Town != "Oakridge" {
		t.Fatalf("unexpected resident %+v", aster)
	}

	towns, residents, err := s.Counts(context.Background())
	if err != nil || towns != 4 || residents != 3 {
		t.Fatalf("expected 4 towns and 3 residents, got %d %d (%v)", towns, residents, err)
	}
}

func TestImportReplaces(t *testing.T) {
	s := openStore(t)
	importSeed(t, s)

	off := false
	seed := &Seed{
		Economy: &off,
		Towns: []SeedTown{
			{Name: "Solo", Open: true, Public: true, Plots: []SeedPlot{{World: "world", X: 1, Z: 1, Price: 3, ForSale: true}}},
		},
	}
	if err := s.Import(context.Background(), seed); err != nil {
		t.Fatalf("Import: %v", err)
	}
	snap, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(snap.Towns()) != 1 || snap.Towns()[0].Name != "Solo" {
		t.Fatalf("expected only Solo, got %v", snap.Towns())
	}
	if snap.EconomyActive() || len(snap.Residents) != 0 || len(snap.Worlds) != 0 {
		t.Fatalf("expected previous registry to be gone")
	}
}

func TestImportRejectsBadSeed(t *testing.T) {
	s := openStore(t)
	importSeed(t, s)

	cases := map[string]*Seed{
		"resident id":  {Residents: []SeedResident{{UUID: "nope", Name: "X"}}},
		"town name":    {Towns: []SeedTown{{Name: " "}}},
		"world name":   {Worlds: []SeedWorld{{}}},
		"nil":          nil,
		"duplicate":    {Towns: []SeedTown{{Name: "Twin"}, {Name: "twin"}}},
		"shared block": {Towns: []SeedTown{{Name: "A", Plots: []SeedPlot{{World: "w", X: 1}, {World: "w", X: 1}}}}},
	}
	for name, seed := range cases {
		if err := s.Import(context.Background(), seed); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}

	snap, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(snap.Towns()) != 4 {
		t.Fatalf("expected failed imports to leave the registry intact, got %d towns", len(snap.Towns()))
	}
}

func TestParseSeed(t *testing.T) {
	if _, err := ParseSeed(strings.NewReader("towns:\n  - name: A\n    colour: red\n")); !errors.Is(err, ErrInvalidSeed) {
		t.Fatalf("expected unknown keys to be rejected, got %v", err)
	}
	seed, err := ParseSeed(strings.NewReader(""))
	if err != nil || len(seed.Towns) != 0 {
		t.Fatalf("expected empty seed, got %+v (%v)", seed, err)
	}
}
