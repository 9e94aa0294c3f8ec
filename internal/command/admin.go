package command

import (
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/solterra/towny-catalog/internal/format/table"
	"github.com/solterra/towny-catalog/internal/format/text"
	"github.com/solterra/towny-catalog/internal/host"
	"github.com/solterra/towny-catalog/internal/logging"
	"github.com/solterra/towny-catalog/internal/logging/events"
)

const rule = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"

func (h *Handler) sendHelp(v host.Viewer) {
	entry := func(cmd, desc string) text.Line {
		return text.Of(text.S(text.Yellow, cmd), text.S(text.Gray, " - "+desc))
	}
	v.Message(
		text.Colored(text.DarkGreen, rule),
		text.Colored(text.Gold, "TownyCatalog Commands").Bold(),
		text.Empty(),
		entry("/tcatalog info", "Show plugin info and settings"),
		entry("/tcatalog reload", "Reload configuration"),
		entry("/town catalog", "Open the plot catalog"),
		entry("/town catalog <town>", "Open one town's plots"),
		text.Colored(text.DarkGreen, rule),
	)
}

func (h *Handler) sendInfo(v host.Viewer) {
	svc := h.dispatcher.Catalog()
	cfg := svc.Settings()
	stats := svc.Stats()

	lines := []text.Line{
		text.Colored(text.DarkGreen, rule),
		text.Of(
			text.Span{Text: "TownyCatalog", Color: text.Gold, Bold: true},
			text.S(text.Yellow, " v"+h.version),
		),
		text.Empty(),
		text.Colored(text.Aqua, "Filter Settings:").Bold(),
	}
	lines = append(lines, flagLines([]flagRow{
		{"Show Custom Plot Names", cfg.ShowCustomPlotNames},
		{"Require Town Open", cfg.RequireTownOpen},
		{"Require Town Public", cfg.RequireTownPublic},
		{"Require Affordable", cfg.RequireAffordable},
		{"Residential Only", cfg.ResidentialOnly},
	})...)

	economy := "Inactive"
	if stats.EconomyActive {
		economy = "Active"
	}
	lines = append(lines, text.Empty(), text.Colored(text.Aqua, "Statistics:").Bold())
	lines = append(lines, valueLines([][2]string{
		{"Total Towns", humanize.Comma(int64(stats.TotalTowns))},
		{"Towns With Plots For Sale", humanize.Comma(int64(stats.TownsForSale))},
		{"Plots For Sale", humanize.Comma(int64(stats.PlotsForSale))},
		{"Economy", economy},
	})...)
	if v.HasPermission(host.PermissionAdmin) {
		lines = append(lines, text.Empty(), text.Colored(text.Aqua, "Diagnostics:").Bold())
		lines = append(lines, valueLines([][2]string{{"Log File", logging.Path()}})...)
		lines = append(lines, flagLines([]flagRow{{"Tracing", logging.TraceEnabled()}})...)
	}
	lines = append(lines,
		text.Empty(),
		text.Of(text.S(text.Gray, "Use "), text.S(text.Yellow, "/tcatalog reload"), text.S(text.Gray, " to reload config")),
		text.Colored(text.DarkGreen, rule),
	)
	v.Message(lines...)
}

type flagRow struct {
	label string
	on    bool
}

func flagLines(rows []flagRow) []text.Line {
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = []string{"  " + r.label + ":", flagValue(r.on)}
	}
	formatted := table.Format(cells, []table.Alignment{table.AlignLeft, table.AlignLeft})
	out := make([]text.Line, len(rows))
	for i, r := range rows {
		value := flagValue(r.on)
		color := text.Red
		if r.on {
			color = text.Green
		}
		out[i] = text.Of(text.S(text.Gray, strings.TrimSuffix(formatted[i], value)), text.S(color, value))
	}
	return out
}

func flagValue(on bool) string {
	if on {
		return "✓ Enabled"
	}
	return "✗ Disabled"
}

func valueLines(rows [][2]string) []text.Line {
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = []string{"  " + r[0] + ":", r[1]}
	}
	formatted := table.Format(cells, []table.Alignment{table.AlignLeft, table.AlignRight})
	out := make([]text.Line, len(rows))
	for i, r := range rows {
		out[i] = text.Of(text.S(text.Gray, strings.TrimSuffix(formatted[i], r[1])), text.S(text.White, r[1]))
	}
	return out
}

func (h *Handler) reload(v host.Viewer) {
	if !v.HasPermission(host.PermissionAdmin) {
		v.Message(text.Colored(text.Red, "You don't have permission to reload the config!"))
		events.Command.Denied(v.ID().String(), "/tcatalog reload", host.PermissionAdmin)
		return
	}
	if h.settings == nil {
		v.Message(text.Colored(text.Red, "Failed to reload configuration: no settings file"))
		return
	}
	if err := h.settings.Reload(); err != nil {
		v.Message(text.Colored(text.Red, "Failed to reload configuration: "+err.Error()))
		logging.Errorf("reload settings %s: %w", h.settings.Path(), err)
		events.Settings.ReloadFailed(h.settings.Path(), err)
		return
	}
	cfg := h.dispatcher.Catalog().Settings()
	events.Settings.Loaded(h.settings.Path(), map[string]bool{
		"show-custom-plot-name": cfg.ShowCustomPlotNames,
		"require-town-open":     cfg.RequireTownOpen,
		"require-town-public":   cfg.RequireTownPublic,
		"require-affordable":    cfg.RequireAffordable,
		"residential-only":      cfg.ResidentialOnly,
	})
	v.Message(text.Colored(text.Green, "TownyCatalog configuration reloaded successfully!"))
}
