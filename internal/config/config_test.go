package config

import (
	"testing"
	"time"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.DataPath != defaultDataPath || cfg.App.SettingsPath != defaultSettingsPath {
		t.Fatalf("expected default paths, got %+v", cfg.App)
	}
	if cfg.App.Refresh != defaultRefresh || cfg.App.Admin || cfg.Logging.Trace {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

func TestLoadArgsEnvironmentAndFlags(t *testing.T) {
	env := []string{
		"TOWNY_CATALOG_DATA=/srv/towny.db",
		"TOWNY_CATALOG_VIEWER=Aster",
		"TOWNY_CATALOG_REFRESH=2s",
		"TOWNY_CATALOG_TRACE=true",
		"TOWNY_CATALOG_WIDTH=notanumber",
		"UNRELATED",
	}
	cfg, err := LoadArgs([]string{"-viewer", "Brindle", "-seed", "seed.yaml", "-height", "30"}, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.DataPath != "/srv/towny.db" {
		t.Fatalf("expected data path from environment, got %q", cfg.App.DataPath)
	}
	if cfg.App.Viewer != "Brindle" {
		t.Fatalf("expected flag to override environment, got %q", cfg.App.Viewer)
	}
	if cfg.App.SeedPath != "seed.yaml" || cfg.App.Height != 30 || cfg.App.Width != 0 {
		t.Fatalf("unexpected app config %+v", cfg.App)
	}
	if cfg.App.Refresh != 2*time.Second || !cfg.Logging.Trace {
		t.Fatalf("expected refresh and trace from environment, got %+v", cfg)
	}
	if cfg.Flags["refresh"] != "2s" || cfg.Flags["viewer"] != "Brindle" {
		t.Fatalf("unexpected flag map %v", cfg.Flags)
	}
	if len(cfg.Args) != 6 {
		t.Fatalf("expected args to be kept, got %v", cfg.Args)
	}
}

func TestLoadArgsRejectsBadValues(t *testing.T) {
	cases := [][]string{
		{"-width", "-1"},
		{"-height", "-4"},
		{"-refresh", "-1s"},
		{"-unknown"},
	}
	for _, args := range cases {
		if _, err := LoadArgs(args, nil); err == nil {
			t.Fatalf("%v: expected error", args)
		}
	}
}

func TestValidateRequiresPaths(t *testing.T) {
	cfg, _ := LoadArgs([]string{"-data", " "}, nil)
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected empty data path to be rejected")
	}
	cfg, _ = LoadArgs([]string{"-settings", ""}, nil)
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected empty settings path to be rejected")
	}
}
