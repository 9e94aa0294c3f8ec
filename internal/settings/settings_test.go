package settings

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewManagerWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yml")
	m, err := NewManager(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Current() != Defaults() {
		t.Fatalf("expected defaults, got %+v", m.Current())
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected file to be created: %v", err)
	}
	for _, want := range []string{
		"plots:",
		"  show-custom-plot-name: true",
		"filters:",
		"  require-town-open: true",
		"  require-affordable: false",
		"  residential-only: false",
	} {
		if !strings.Contains(string(raw), want) {
			t.Fatalf("expected %q in\n%s", want, raw)
		}
	}
}

func TestNewManagerMergesWithoutOverwriting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	doc := "# operator notes\nfilters:\n  require-town-open: false # keep closed towns\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	m, err := NewManager(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Current().RequireTownOpen {
		t.Fatalf("expected operator value to win")
	}
	if !m.Current().RequireTownPublic {
		t.Fatalf("expected missing key to take its default")
	}
	raw, _ := os.ReadFile(path)
	got := string(raw)
	for _, want := range []string{"# operator notes", "require-town-open: false # keep closed towns", "require-town-public: true", "show-custom-plot-name: true"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in\n%s", want, got)
		}
	}
}

func TestNewManagerLeavesCompleteFileAlone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	doc := "plots:\n    show-custom-plot-name: false\nfilters:\n    require-town-open: true\n    require-town-public: true\n    require-affordable: true\n    residential-only: true\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	m, err := NewManager(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	raw, _ := os.ReadFile(path)
	if string(raw) != doc {
		t.Fatalf("expected file untouched, got\n%s", raw)
	}
	want := Settings{RequireTownOpen: true, RequireTownPublic: true, RequireAffordable: true, ResidentialOnly: true}
	if m.Current() != want {
		t.Fatalf("expected %+v, got %+v", want, m.Current())
	}
}

func TestNewManagerRejectsInvalidDocument(t *testing.T) {
	cases := map[string]string{
		"wrong type":    "filters:\n  residential-only: sometimes\n",
		"scalar root":   "just a string\n",
		"section shape": "filters: [1, 2]\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yml")
			if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}
			if _, err := NewManager(path); !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestNewManagerRequiresPath(t *testing.T) {
	if _, err := NewManager("  "); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	m, err := NewManager(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := os.WriteFile(path, []byte("filters:\n  residential-only: true\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := m.Reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !m.Current().ResidentialOnly || !m.Current().ShowCustomPlotNames {
		t.Fatalf("expected reloaded values over defaults, got %+v", m.Current())
	}

	if err := os.WriteFile(path, []byte("filters: [\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := m.Reload(); err == nil {
		t.Fatalf("expected parse error")
	}
	if !m.Current().ResidentialOnly {
		t.Fatalf("expected previous settings to survive a failed reload")
	}

	if err := os.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := m.Reload(); err == nil {
		t.Fatalf("expected missing file error")
	}
	if !m.Current().ResidentialOnly {
		t.Fatalf("expected previous settings to survive a missing file")
	}
}

func TestNewManagerFillsEmptySection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("plots:\nfilters:\n  require-affordable: true\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	m, err := NewManager(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !m.Current().RequireAffordable {
		t.Fatalf("expected operator value to survive, got %+v", m.Current())
	}
	if !m.Current().ShowCustomPlotNames {
		t.Fatalf("expected empty section to take its defaults, got %+v", m.Current())
	}
	raw, _ := os.ReadFile(path)
	got := string(raw)
	for _, want := range []string{"plots:\n  show-custom-plot-name: true", "require-affordable: true", "require-town-open: true"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in\n%s", want, got)
		}
	}
}

func TestReloadFillsEmptySection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	m, err := NewManager(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := os.WriteFile(path, []byte("plots:\nfilters:\n  residential-only: true\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := m.Reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !m.Current().ResidentialOnly || !m.Current().ShowCustomPlotNames {
		t.Fatalf("expected reloaded values over defaults, got %+v", m.Current())
	}
}

func TestNewManagerAcceptsBukkitBooleans(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	doc := "plots:\n  show-custom-plot-name: no\nfilters:\n  require-town-open: OFF\n  require-town-public: on\n  require-affordable: yes\n  residential-only: false\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	m, err := NewManager(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Settings{RequireTownPublic: true, RequireAffordable: true}
	if m.Current() != want {
		t.Fatalf("expected %+v, got %+v", want, m.Current())
	}
	raw, _ := os.ReadFile(path)
	if string(raw) != doc {
		t.Fatalf("expected file untouched, got\n%s", raw)
	}
}

func TestNewManagerRejectsQuotedBoolean(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("filters:\n  require-affordable: 'yes'\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := NewManager(path); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}
