// Package dispatcher opens catalog menus and turns slot clicks into actions.
//
// A dispatcher holds no per-viewer state. The host keeps each viewer's open
// session and passes it back with every click.
package dispatcher

import (
	"fmt"

	"github.com/solterra/towny-catalog/internal/catalog"
	"github.com/solterra/towny-catalog/internal/format/text"
	"github.com/solterra/towny-catalog/internal/host"
	"github.com/solterra/towny-catalog/internal/logging"
	"github.com/solterra/towny-catalog/internal/logging/events"
	"github.com/solterra/towny-catalog/internal/menu"
	"github.com/solterra/towny-catalog/internal/towny"
)

// Outcome reports what a click did.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomePaged
	OutcomeOpened
	OutcomeBack
	OutcomeTravelled
	OutcomeUnavailable
	OutcomeTravelFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomePaged:
		return "paged"
	case OutcomeOpened:
		return "opened"
	case OutcomeBack:
		return "back"
	case OutcomeTravelled:
		return "travelled"
	case OutcomeUnavailable:
		return "unavailable"
	case OutcomeTravelFailed:
		return "travel-failed"
	default:
		return "none"
	}
}

// Notices shown to viewers.
const (
	NoticeNotResident  = "You must be a Towny resident to use the catalog!"
	NoticeNoTowns      = "No towns have plots available for purchase!"
	NoticeNoPlots      = "No plots available for purchase in this town!"
	NoticeNoLocation   = "Unable to get plot location!"
	NoticeTeleportFail = "Teleport failed: %v"
)

type Dispatcher struct {
	catalog  *catalog.Service
	renderer *menu.Renderer
}

func New(svc *catalog.Service) *Dispatcher {
	return &Dispatcher{catalog: svc, renderer: menu.NewRenderer(svc)}
}

// Catalog exposes the query layer the dispatcher reads from.
func (d *Dispatcher) Catalog() *catalog.Service {
	return d.catalog
}

// OpenTownSelection queries the towns v can browse and shows the first page.
// It reports false and notifies v when nothing can be shown.
func (d *Dispatcher) OpenTownSelection(v host.Viewer) bool {
	id := v.ID().String()
	if _, ok := d.catalog.Resident(v.ID()); !ok {
		v.Message(text.Colored(text.Red, NoticeNotResident))
		events.Menu.Empty(id, menu.TownSelection.String(), "not-resident")
		return false
	}
	towns := d.catalog.TownsWithPurchasablePlots(v.ID())
	if len(towns) == 0 {
		v.Message(text.Colored(text.Yellow, NoticeNoTowns))
		events.Menu.Empty(id, menu.TownSelection.String(), "no-towns")
		return false
	}
	s := menu.NewTownSelection(v.ID(), catalog.SortTownsByName(towns))
	v.ShowMenu(s, d.renderer.Render(s, 0))
	events.Menu.Open(id, s.Kind.String(), "", s.Len())
	return true
}

// OpenPlotCatalog queries the plots of town that v can browse, cheapest
// first, and shows the first page. It reports false and notifies v when there
// are none.
func (d *Dispatcher) OpenPlotCatalog(v host.Viewer, town *towny.Town) bool {
	id := v.ID().String()
	plots := d.catalog.PurchasablePlots(town, v.ID())
	if len(plots) == 0 {
		v.Message(text.Colored(text.Yellow, NoticeNoPlots))
		events.Menu.Empty(id, menu.PlotCatalog.String(), "no-plots")
		return false
	}
	s := menu.NewPlotCatalog(v.ID(), town, catalog.SortPlotsByPrice(plots, true))
	v.ShowMenu(s, d.renderer.Render(s, 0))
	events.Menu.Open(id, s.Kind.String(), town.Name, s.Len())
	return true
}

// Click handles a click on slot of the open session s.
func (d *Dispatcher) Click(v host.Viewer, s *menu.Session, slot int) Outcome {
	if s == nil {
		return OutcomeNone
	}
	var out Outcome
	switch s.Kind {
	case menu.TownSelection:
		out = d.clickTownSelection(v, s, slot)
	case menu.PlotCatalog:
		out = d.clickPlotCatalog(v, s, slot)
	}
	events.Click.Slot(v.ID().String(), s.Kind.String(), slot, out.String())
	return out
}

func (d *Dispatcher) clickTownSelection(v host.Viewer, s *menu.Session, slot int) Outcome {
	switch s.Layout().Purpose(slot) {
	case menu.PurposeEntity:
		town, ok := s.TownAt(slot)
		if !ok {
			events.Click.Stale(v.ID().String(), s.Kind.String(), slot)
			return OutcomeNone
		}
		v.PlaySound(host.SoundClick)
		if d.OpenPlotCatalog(v, town) {
			return OutcomeOpened
		}
		return OutcomeNone
	case menu.PurposePrevious, menu.PurposeNext:
		return d.turnPage(v, s, slot)
	default:
		return OutcomeNone
	}
}

func (d *Dispatcher) clickPlotCatalog(v host.Viewer, s *menu.Session, slot int) Outcome {
	switch s.Layout().Purpose(slot) {
	case menu.PurposeBack:
		v.PlaySound(host.SoundClick)
		v.CloseMenu()
		events.Menu.Close(v.ID().String())
		d.OpenTownSelection(v)
		return OutcomeBack
	case menu.PurposePrevious, menu.PurposeNext:
		return d.turnPage(v, s, slot)
	case menu.PurposeEntity:
		plot, ok := s.PlotAt(slot)
		if !ok {
			events.Click.Stale(v.ID().String(), s.Kind.String(), slot)
			return OutcomeNone
		}
		return d.Travel(v, plot)
	default:
		return OutcomeNone
	}
}

func (d *Dispatcher) turnPage(v host.Viewer, s *menu.Session, slot int) Outcome {
	target := s.Page()
	switch s.Layout().Purpose(slot) {
	case menu.PurposePrevious:
		if !s.HasPrevious() {
			return OutcomeNone
		}
		target--
	case menu.PurposeNext:
		if !s.HasNext() {
			return OutcomeNone
		}
		target++
	default:
		return OutcomeNone
	}
	v.ShowMenu(s, d.renderer.Render(s, target))
	v.PlaySound(host.SoundClick)
	events.Menu.Page(v.ID().String(), s.Kind.String(), target, s.TotalPages())
	return OutcomePaged
}

// Travel teleports v to the centre of plot and closes the menu. When the
// plot's world is not loaded, or the host refuses the teleport, v is told and
// the menu stays open.
func (d *Dispatcher) Travel(v host.Viewer, plot *towny.Plot) Outcome {
	id := v.ID().String()
	town := plot.TownName()
	loc, ok := d.catalog.PlotCenter(plot)
	if !ok {
		v.Message(text.Colored(text.Red, NoticeNoLocation))
		events.Travel.Unavailable(id, town, plot.World)
		return OutcomeUnavailable
	}
	if err := v.Teleport(loc); err != nil {
		v.Message(text.Colored(text.Red, fmt.Sprintf(NoticeTeleportFail, err)))
		err = fmt.Errorf("teleport %s to plot in %s: %w", v.Name(), town, err)
		logging.Error(err)
		events.Travel.Error(err)
		return OutcomeTravelFailed
	}
	v.PlaySound(host.SoundTeleport)
	v.Message(
		text.Of(text.S(text.Green, "Teleported to plot in "), text.S(text.Gold, town), text.S(text.Green, "!")),
		text.Of(text.S(text.Gray, "Price: "), text.S(text.Gold, "$"+catalog.FormatPrice(plot.Price))),
		text.Of(text.S(text.Gray, "Use "), text.S(text.Yellow, "/plot claim"), text.S(text.Gray, " to purchase this plot")),
	)
	v.CloseMenu()
	events.Travel.Teleport(id, town, loc.World, loc.Pos.X(), loc.Pos.Y(), loc.Pos.Z())
	return OutcomeTravelled
}
