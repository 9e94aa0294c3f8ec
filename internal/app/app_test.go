package app

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/solterra/towny-catalog/internal/host"
	"github.com/solterra/towny-catalog/internal/logging"
	"github.com/solterra/towny-catalog/internal/testutil"
	"github.com/solterra/towny-catalog/internal/towny"
	"github.com/solterra/towny-catalog/internal/ui"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	logging.Configure(filepath.Join(dir, "app.log"))
	return Config{
		DataPath:     filepath.Join(dir, "towny.db"),
		SeedPath:     filepath.Join(testutil.RepoRoot(t), "testdata", "seed.yaml"),
		SettingsPath: filepath.Join(dir, "config.yml"),
		Width:        120,
		Height:       40,
	}
}

func TestSetupSeedsAndPicksFirstResident(t *testing.T) {
	env, err := setup(context.Background(), testConfig(t))
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	defer env.close()
	if env.viewer.Name() != "Aster" {
		t.Fatalf("expected Aster as default viewer, got %s", env.viewer.Name())
	}
	if !env.viewer.HasPermission(host.PermissionUse) || env.viewer.HasPermission(host.PermissionAdmin) {
		t.Fatalf("expected use permission only")
	}

	h := ui.NewHarness(env.model)
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	if s, _ := env.viewer.Menu(); s == nil {
		t.Fatalf("expected enter to open the catalog")
	}
	if !strings.Contains(h.View(), "Oakridge") {
		t.Fatalf("expected seeded towns in view, got:\n%s", h.View())
	}
}

func TestSetupNamedAdminViewer(t *testing.T) {
	cfg := testConfig(t)
	cfg.Viewer = "brindle"
	cfg.Admin = true
	env, err := setup(context.Background(), cfg)
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	defer env.close()
	if env.viewer.Name() != "Brindle" || !env.viewer.HasPermission(host.PermissionAdmin) {
		t.Fatalf("expected admin Brindle, got %s", env.viewer.Name())
	}
}

func TestSetupReusesDatabaseWithoutSeed(t *testing.T) {
	cfg := testConfig(t)
	env, err := setup(context.Background(), cfg)
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	env.close()

	cfg.SeedPath = ""
	cfg.Viewer = "Nomad"
	env, err = setup(context.Background(), cfg)
	if err != nil {
		t.Fatalf("setup without seed failed: %v", err)
	}
	defer env.close()
	if env.viewer.Name() != "Nomad" {
		t.Fatalf("expected Nomad, got %s", env.viewer.Name())
	}
}

func TestSetupErrors(t *testing.T) {
	cfg := testConfig(t)
	cfg.Viewer = "Ghost"
	if _, err := setup(context.Background(), cfg); err == nil || !strings.Contains(err.Error(), "Ghost") {
		t.Fatalf("expected unknown viewer error, got %v", err)
	}

	cfg = testConfig(t)
	cfg.SeedPath = filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := setup(context.Background(), cfg); err == nil || !strings.Contains(err.Error(), "import seed") {
		t.Fatalf("expected seed error, got %v", err)
	}

	cfg = testConfig(t)
	cfg.SeedPath = ""
	if _, err := setup(context.Background(), cfg); !errors.Is(err, ErrNoResidents) {
		t.Fatalf("expected empty registry error, got %v", err)
	}
}

func TestPickViewerOrdersByName(t *testing.T) {
	snap := towny.NewSnapshot()
	snap.AddResident(&towny.Resident{UUID: testutil.MayorID, Name: "zed"})
	snap.AddResident(&towny.Resident{UUID: testutil.NomadID, Name: "Bea"})
	r, err := pickViewer(snap, " ")
	if err != nil || r.Name != "Bea" {
		t.Fatalf("expected Bea, got %v %v", r, err)
	}
}
