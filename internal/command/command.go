// Package command parses and runs the catalog's chat commands:
//
//	/town catalog [town]   open the catalog
//	/tcatalog [info|reload]
//
// Each line is executed through a fresh cobra command tree bound to the
// viewer that typed it.
package command

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/solterra/towny-catalog/internal/dispatcher"
	"github.com/solterra/towny-catalog/internal/format/text"
	"github.com/solterra/towny-catalog/internal/host"
	"github.com/solterra/towny-catalog/internal/logging/events"
)

// ErrUnknownCommand is returned for lines that are not catalog commands.
var ErrUnknownCommand = errors.New("unknown command")

// Reloader reloads the settings document on demand.
type Reloader interface {
	Reload() error
	Path() string
}

// Handler runs chat command lines for viewers.
type Handler struct {
	dispatcher *dispatcher.Dispatcher
	settings   Reloader
	version    string
}

func New(d *dispatcher.Dispatcher, settings Reloader, version string) *Handler {
	if strings.TrimSpace(version) == "" {
		version = "dev"
	}
	return &Handler{dispatcher: d, settings: settings, version: version}
}

// Execute runs one command line for v. Command output goes to v's chat;
// the returned error is ErrUnknownCommand for lines that are not ours.
func (h *Handler) Execute(v host.Viewer, line string) error {
	args := tokenize(line)
	if len(args) == 0 {
		return fmt.Errorf("%w: empty line", ErrUnknownCommand)
	}
	if args[0] != "town" && args[0] != "tcatalog" {
		return fmt.Errorf("%w: /%s", ErrUnknownCommand, args[0])
	}
	events.Command.Execute(v.ID().String(), line)

	root := h.root(v)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		events.Command.Error(line, err)
		return err
	}
	return nil
}

// tokenize strips the leading slash and lowercases the command and verb.
// Later arguments keep their case.
func tokenize(line string) []string {
	fields := strings.Fields(strings.TrimPrefix(strings.TrimSpace(line), "/"))
	for i := 0; i < len(fields) && i < 2; i++ {
		fields[i] = strings.ToLower(fields[i])
	}
	return fields
}

func (h *Handler) root(v host.Viewer) *cobra.Command {
	root := &cobra.Command{
		Use:           "/",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.AddCommand(h.townCmd(v), h.tcatalogCmd(v))
	return root
}

func (h *Handler) townCmd(v host.Viewer) *cobra.Command {
	town := &cobra.Command{
		Use:                "town",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("%w: /town %s", ErrUnknownCommand, strings.Join(args, " "))
		},
	}
	town.AddCommand(&cobra.Command{
		Use:                "catalog [town]",
		Short:              "Open the plot catalog",
		DisableFlagParsing: true,
		Args:               cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h.runCatalog(v, strings.Join(args, " "))
			return nil
		},
	})
	return town
}

func (h *Handler) runCatalog(v host.Viewer, townName string) {
	if !v.HasPermission(host.PermissionUse) {
		v.Message(text.Colored(text.Red, "You don't have permission to use the catalog!"))
		events.Command.Denied(v.ID().String(), "/town catalog", host.PermissionUse)
		return
	}
	if townName == "" {
		h.dispatcher.OpenTownSelection(v)
		return
	}
	svc := h.dispatcher.Catalog()
	if _, ok := svc.Resident(v.ID()); !ok {
		v.Message(text.Colored(text.Red, dispatcher.NoticeNotResident))
		return
	}
	town, ok := svc.FindTown(townName)
	if !ok {
		v.Message(text.Of(
			text.S(text.Red, "Town "),
			text.S(text.Yellow, townName),
			text.S(text.Red, " was not found!"),
		))
		return
	}
	if !svc.TownVisible(town) {
		v.Message(text.Colored(text.Yellow, dispatcher.NoticeNoPlots))
		return
	}
	h.dispatcher.OpenPlotCatalog(v, town)
}

func (h *Handler) tcatalogCmd(v host.Viewer) *cobra.Command {
	tc := &cobra.Command{
		Use:                "tcatalog",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			h.sendHelp(v)
			return nil
		},
	}
	tc.AddCommand(
		&cobra.Command{
			Use:                "info",
			Short:              "Show plugin info and settings",
			DisableFlagParsing: true,
			RunE: func(cmd *cobra.Command, args []string) error {
				h.sendInfo(v)
				return nil
			},
		},
		&cobra.Command{
			Use:                "reload",
			Short:              "Reload configuration",
			DisableFlagParsing: true,
			RunE: func(cmd *cobra.Command, args []string) error {
				h.reload(v)
				return nil
			},
		},
	)
	return tc
}
