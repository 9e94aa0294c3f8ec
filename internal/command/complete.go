package command

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/solterra/towny-catalog/internal/catalog"
	"github.com/solterra/towny-catalog/internal/host"
	"github.com/solterra/towny-catalog/internal/logging/events"
)

var (
	rootCompletions     = []string{"/tcatalog", "/town catalog"}
	tcatalogCompletions = []string{"info", "reload"}
)

// Complete returns full-line candidates for a partially typed command.
// Town names are ranked by fuzzy match against what has been typed so far.
func (h *Handler) Complete(v host.Viewer, line string) []string {
	out := h.complete(v, line)
	events.Command.Complete(line, len(out))
	return out
}

func (h *Handler) complete(v host.Viewer, line string) []string {
	trimmed := strings.TrimPrefix(strings.TrimLeft(line, " "), "/")
	fields := strings.Fields(trimmed)
	trailing := strings.HasSuffix(trimmed, " ")

	if len(fields) == 0 || (len(fields) == 1 && !trailing) {
		prefix := ""
		if len(fields) == 1 {
			prefix = "/" + strings.ToLower(fields[0])
		}
		return withPrefix(rootCompletions, prefix)
	}

	cmd := strings.ToLower(fields[0])
	switch cmd {
	case "tcatalog":
		if len(fields) > 2 || (len(fields) == 2 && trailing) {
			return nil
		}
		prefix := ""
		if len(fields) == 2 {
			prefix = strings.ToLower(fields[1])
		}
		var out []string
		for _, sub := range withPrefix(tcatalogCompletions, prefix) {
			out = append(out, "/tcatalog "+sub)
		}
		return out
	case "town":
		if len(fields) == 1 || (len(fields) == 2 && !trailing) {
			prefix := ""
			if len(fields) == 2 {
				prefix = strings.ToLower(fields[1])
			}
			if strings.HasPrefix("catalog", prefix) {
				return []string{"/town catalog"}
			}
			return nil
		}
		if strings.ToLower(fields[1]) != "catalog" {
			return nil
		}
		partial := ""
		if len(fields) > 2 {
			partial = strings.Join(fields[2:], " ")
		}
		var out []string
		for _, name := range h.townNames(v, partial) {
			out = append(out, "/town catalog "+name)
		}
		return out
	}
	return nil
}

// townNames returns the towns v could open, best match first. An empty
// partial lists every town by name.
func (h *Handler) townNames(v host.Viewer, partial string) []string {
	svc := h.dispatcher.Catalog()
	towns := catalog.SortTownsByName(svc.TownsWithPurchasablePlots(v.ID()))
	names := make([]string, len(towns))
	for i, t := range towns {
		names[i] = t.Name
	}
	if partial == "" {
		return names
	}
	ranks := fuzzy.RankFindNormalizedFold(partial, names)
	sort.Stable(ranks)
	out := make([]string, len(ranks))
	for i, r := range ranks {
		out[i] = r.Target
	}
	return out
}

func withPrefix(candidates []string, prefix string) []string {
	var out []string
	for _, c := range candidates {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}
