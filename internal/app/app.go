package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/solterra/towny-catalog/internal/backend"
	"github.com/solterra/towny-catalog/internal/catalog"
	"github.com/solterra/towny-catalog/internal/command"
	"github.com/solterra/towny-catalog/internal/dispatcher"
	"github.com/solterra/towny-catalog/internal/host"
	"github.com/solterra/towny-catalog/internal/logging/events"
	"github.com/solterra/towny-catalog/internal/settings"
	"github.com/solterra/towny-catalog/internal/store"
	"github.com/solterra/towny-catalog/internal/towny"
	"github.com/solterra/towny-catalog/internal/ui"
)

// ErrNoResidents is returned when no viewer could be picked from the registry.
var ErrNoResidents = errors.New("registry has no residents to browse as")

// Config describes user-provided application options.
type Config struct {
	DataPath     string
	SeedPath     string
	SettingsPath string
	Viewer       string
	Admin        bool
	Width        int
	Height       int
	ShowFooter   bool
	Refresh      time.Duration
	Version      string
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	env, err := setup(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer env.close()

	program := tea.NewProgram(env.model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		err = nil
	}
	reason := "quit"
	if err != nil {
		reason = err.Error()
	}
	events.App.Stop(reason)
	return err
}

type environment struct {
	store   *store.Store
	watcher *backend.Watcher
	viewer  *host.Local
	model   *ui.Model
}

func (e *environment) close() {
	if e.watcher != nil {
		e.watcher.Stop()
		e.watcher.Wait()
	}
	if e.store != nil {
		e.store.Close()
	}
}

// setup opens the registry, applies the seed export, and wires the catalog
// services around the chosen viewer.
func setup(ctx context.Context, cfg Config) (*environment, error) {
	st, err := store.Open(cfg.DataPath)
	if err != nil {
		return nil, fmt.Errorf("open registry: %w", err)
	}
	env := &environment{store: st}

	if cfg.SeedPath != "" {
		if err := st.ImportFile(ctx, cfg.SeedPath); err != nil {
			env.close()
			return nil, fmt.Errorf("import seed: %w", err)
		}
		towns, residents, err := st.Counts(ctx)
		if err != nil {
			env.close()
			return nil, fmt.Errorf("count registry: %w", err)
		}
		events.Registry.Seeded(cfg.SeedPath, towns, residents)
	}

	snap, err := st.Load(ctx)
	if err != nil {
		env.close()
		return nil, fmt.Errorf("load registry: %w", err)
	}
	mgr, err := settings.NewManager(cfg.SettingsPath)
	if err != nil {
		env.close()
		return nil, fmt.Errorf("load settings: %w", err)
	}
	resident, err := pickViewer(snap, cfg.Viewer)
	if err != nil {
		env.close()
		return nil, err
	}

	perms := []string{host.PermissionUse}
	if cfg.Admin {
		perms = append(perms, host.PermissionAdmin)
	}
	env.viewer = host.NewLocal(resident.UUID, resident.Name, perms...)

	d := dispatcher.New(catalog.New(snap, mgr))
	env.watcher = backend.NewWatcher(st, cfg.Refresh)
	env.model = ui.NewModel(ui.Deps{
		Viewer:     env.viewer,
		Dispatcher: d,
		Commands:   command.New(d, mgr, cfg.Version),
	}, cfg.Width, cfg.Height, cfg.ShowFooter, env.watcher)
	return env, nil
}

// pickViewer finds the named resident, or the first resident by name when
// name is empty.
func pickViewer(snap *towny.Snapshot, name string) (*towny.Resident, error) {
	if name = strings.TrimSpace(name); name != "" {
		r, ok := snap.ResidentByName(name)
		if !ok {
			return nil, fmt.Errorf("resident %q not found", name)
		}
		return r, nil
	}
	residents := make([]*towny.Resident, 0, len(snap.Residents))
	for _, r := range snap.Residents {
		residents = append(residents, r)
	}
	if len(residents) == 0 {
		return nil, ErrNoResidents
	}
	sort.Slice(residents, func(i, j int) bool {
		return strings.ToLower(residents[i].Name) < strings.ToLower(residents[j].Name)
	})
	return residents[0], nil
}
