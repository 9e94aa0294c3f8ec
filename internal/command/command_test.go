package command

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/solterra/towny-catalog/internal/catalog"
	"github.com/solterra/towny-catalog/internal/dispatcher"
	"github.com/solterra/towny-catalog/internal/format/text"
	"github.com/solterra/towny-catalog/internal/host"
	"github.com/solterra/towny-catalog/internal/logging"
	"github.com/solterra/towny-catalog/internal/menu"
	"github.com/solterra/towny-catalog/internal/settings"
	"github.com/solterra/towny-catalog/internal/testutil"
)

func newHandler(t *testing.T) (*Handler, *settings.Manager) {
	t.Helper()
	dir := t.TempDir()
	logging.Configure(filepath.Join(dir, "catalog.log"))
	mgr, err := settings.NewManager(filepath.Join(dir, "config.yml"))
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	d := dispatcher.New(catalog.New(testutil.Snapshot(), mgr))
	return New(d, mgr, "1.2.0"), mgr
}

func chatContains(lines []text.Line, want string) bool {
	for _, l := range lines {
		if strings.Contains(l.String(), want) {
			return true
		}
	}
	return false
}

func TestExecuteRejectsForeignCommands(t *testing.T) {
	h, _ := newHandler(t)
	v := host.NewLocal(testutil.ViewerID, "Aster", host.PermissionUse)
	for _, line := range []string{"", "/spawn", "/plot claim", "/help"} {
		if err := h.Execute(v, line); !errors.Is(err, ErrUnknownCommand) {
			t.Fatalf("%q: expected unknown command, got %v", line, err)
		}
	}
	if err := h.Execute(v, "/town spawn"); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected other /town verbs to be refused, got %v", err)
	}
}

func TestTownCatalogOpensSelection(t *testing.T) {
	h, _ := newHandler(t)
	v := host.NewLocal(testutil.ViewerID, "Aster", host.PermissionUse)
	if err := h.Execute(v, "/Town CATALOG"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s, _ := v.Menu()
	if s == nil || s.Kind != menu.TownSelection {
		t.Fatalf("expected town selection, got %+v", s)
	}
}

func TestTownCatalogRequiresPermission(t *testing.T) {
	h, _ := newHandler(t)
	v := host.NewLocal(testutil.ViewerID, "Aster")
	if err := h.Execute(v, "/town catalog"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s, _ := v.Menu(); s != nil {
		t.Fatalf("expected no menu without permission")
	}
	if got := v.LastMessage(); !strings.Contains(got, "permission") {
		t.Fatalf("expected permission notice, got %q", got)
	}
}

func TestTownCatalogByName(t *testing.T) {
	h, _ := newHandler(t)
	v := host.NewLocal(testutil.ViewerID, "Aster", host.PermissionUse)
	if err := h.Execute(v, "/town catalog nether reach"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s, _ := v.Menu()
	if s == nil || s.Kind != menu.PlotCatalog || s.Town.Name != "Nether Reach" {
		t.Fatalf("expected Nether Reach catalog, got %+v", s)
	}
}

func TestTownCatalogByNameNotices(t *testing.T) {
	h, _ := newHandler(t)
	v := host.NewLocal(testutil.ViewerID, "Aster", host.PermissionUse)

	h.Execute(v, "/town catalog Atlantis")
	if got := v.LastMessage(); got != "Town Atlantis was not found!" {
		t.Fatalf("expected not-found notice, got %q", got)
	}
	h.Execute(v, "/town catalog Hollow")
	if got := v.LastMessage(); got != dispatcher.NoticeNoPlots {
		t.Fatalf("expected closed town to be hidden, got %q", got)
	}
	if s, _ := v.Menu(); s != nil {
		t.Fatalf("expected no menu")
	}

	stranger := host.NewLocal(testutil.StrangeID, "Stranger", host.PermissionUse)
	h.Execute(stranger, "/town catalog Oakridge")
	if got := stranger.LastMessage(); got != dispatcher.NoticeNotResident {
		t.Fatalf("expected resident notice, got %q", got)
	}
}

func TestTcatalogHelpAndInfo(t *testing.T) {
	h, _ := newHandler(t)
	v := host.NewLocal(testutil.ViewerID, "Aster")

	if err := h.Execute(v, "/tcatalog"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !chatContains(v.Chat(), "TownyCatalog Commands") || !chatContains(v.Chat(), "/tcatalog reload - Reload configuration") {
		t.Fatalf("expected help, got %v", text.Strings(v.Chat()))
	}

	v.ClearChat()
	if err := h.Execute(v, "/tcatalog info"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	chat := text.Strings(v.Chat())
	if !chatContains(v.Chat(), "TownyCatalog v1.2.0") {
		t.Fatalf("expected version line, got %v", chat)
	}
	wantSuffix := map[string]string{
		"Require Town Open:":  "✓ Enabled",
		"Require Affordable:": "✗ Disabled",
		"Total Towns:":        "4",
		"  Plots For Sale:":   "6",
		"Economy:":            "Active",
	}
	for label, value := range wantSuffix {
		found := false
		for _, line := range chat {
			if strings.Contains(line, label) {
				found = true
				if !strings.HasSuffix(line, value) {
					t.Fatalf("%s: expected %q, got %q", label, value, line)
				}
			}
		}
		if !found {
			t.Fatalf("expected a %s line in %v", label, chat)
		}
	}
}

func TestReloadRequiresAdmin(t *testing.T) {
	h, _ := newHandler(t)
	v := host.NewLocal(testutil.ViewerID, "Aster", host.PermissionUse)
	h.Execute(v, "/tcatalog reload")
	if got := v.LastMessage(); got != "You don't have permission to reload the config!" {
		t.Fatalf("expected admin notice, got %q", got)
	}
}

func TestReloadAppliesAndKeepsPreviousOnError(t *testing.T) {
	h, mgr := newHandler(t)
	v := host.NewLocal(testutil.ViewerID, "Aster", host.PermissionAdmin)

	doc := "filters:\n  require-affordable: true\n"
	if err := os.WriteFile(mgr.Path(), []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	h.Execute(v, "/tcatalog reload")
	if got := v.LastMessage(); got != "TownyCatalog configuration reloaded successfully!" {
		t.Fatalf("expected success, got %q", got)
	}
	if !mgr.Current().RequireAffordable {
		t.Fatalf("expected reloaded value")
	}

	if err := os.WriteFile(mgr.Path(), []byte("filters:\n  require-affordable: maybe\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	h.Execute(v, "/tcatalog reload")
	if got := v.LastMessage(); !strings.HasPrefix(got, "Failed to reload configuration: ") {
		t.Fatalf("expected failure notice, got %q", got)
	}
	if !mgr.Current().RequireAffordable {
		t.Fatalf("expected previous settings to stay active")
	}
}

func TestComplete(t *testing.T) {
	h, _ := newHandler(t)
	v := host.NewLocal(testutil.ViewerID, "Aster", host.PermissionUse)

	cases := []struct {
		line string
		want []string
	}{
		{"", []string{"/tcatalog", "/town catalog"}},
		{"/t", []string{"/tcatalog", "/town catalog"}},
		{"/tc", []string{"/tcatalog"}},
		{"/tcatalog ", []string{"/tcatalog info", "/tcatalog reload"}},
		{"/tcatalog re", []string{"/tcatalog reload"}},
		{"/town ca", []string{"/town catalog"}},
		{"/town catalog ", []string{"/town catalog applewood", "/town catalog Nether Reach", "/town catalog Oakridge"}},
		{"/town catalog oak", []string{"/town catalog Oakridge"}},
		{"/town catalog ne", []string{"/town catalog Nether Reach"}},
		{"/town catalog zz", nil},
		{"/spawn", nil},
	}
	for _, tc := range cases {
		got := h.Complete(v, tc.line)
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("%q: expected %v, got %v", tc.line, tc.want, got)
		}
	}
}

func TestInfoShowsDiagnosticsToAdmins(t *testing.T) {
	h, _ := newHandler(t)
	logPath := filepath.Join(t.TempDir(), "diag.log")
	logging.Configure(logPath)
	logging.SetTraceEnabled(true)
	defer logging.SetTraceEnabled(false)

	admin := host.NewLocal(testutil.ViewerID, "Aster", host.PermissionAdmin)
	if err := h.Execute(admin, "/tcatalog info"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	chat := text.Strings(admin.Chat())
	var logLine, traceLine string
	for _, line := range chat {
		switch {
		case strings.Contains(line, "Log File:"):
			logLine = line
		case strings.Contains(line, "Tracing:"):
			traceLine = line
		}
	}
	if !strings.HasSuffix(logLine, logPath) {
		t.Fatalf("expected log path %q, got %q", logPath, logLine)
	}
	if !strings.HasSuffix(traceLine, "✓ Enabled") {
		t.Fatalf("expected tracing enabled, got %q", traceLine)
	}

	player := host.NewLocal(testutil.ViewerID, "Aster", host.PermissionUse)
	h.Execute(player, "/tcatalog info")
	if chatContains(player.Chat(), "Diagnostics:") {
		t.Fatalf("expected diagnostics hidden from players, got %v", text.Strings(player.Chat()))
	}
}
