package menu

import (
	"fmt"
	"strconv"

	"github.com/solterra/towny-catalog/internal/catalog"
	"github.com/solterra/towny-catalog/internal/format/text"
	"github.com/solterra/towny-catalog/internal/towny"
)

// Renderer turns a session page into a grid. It reads the catalog for
// per-viewer details such as affordability and never changes domain data.
type Renderer struct {
	catalog *catalog.Service
}

func NewRenderer(svc *catalog.Service) *Renderer {
	return &Renderer{catalog: svc}
}

// Render draws page of s and records it as the session's current page.
func (r *Renderer) Render(s *Session, page int) *Grid {
	g := &Grid{Kind: s.Kind, Title: text.Colored(text.DarkGreen, s.Title()).Bold()}
	layout := s.Layout()

	// navigation flags are evaluated against the page being drawn
	hasPrev, hasNext := page > 0, page < s.TotalPages()-1

	switch s.Kind {
	case TownSelection:
		for i, town := range s.Towns.PageSlice(page) {
			g.set(i, r.townTile(town, s))
		}
		r.place(g, layout, PurposeInfo, infoTile("Town Selection", page, s.TotalPages(), "Total Towns", s.Len(),
			"Select a town to browse plots"))
	case PlotCatalog:
		for i, p := range s.Plots.PageSlice(page) {
			g.set(i, r.plotTile(p, s))
		}
		r.place(g, layout, PurposeBack, backTile())
		r.place(g, layout, PurposeTownInfo, townInfoTile(s.Town))
		r.place(g, layout, PurposeTaxInfo, taxInfoTile(s.Town))
		r.place(g, layout, PurposeMayor, mayorTile(s.Town))
		footer := "Showing all plots for sale"
		if r.catalog.Settings().RequireAffordable {
			footer = "Showing affordable plots only"
		}
		r.place(g, layout, PurposeInfo, infoTile("Catalog Info", page, s.TotalPages(), "Total Plots", s.Len(), footer))
	}

	if hasPrev {
		r.place(g, layout, PurposePrevious, navTile(PurposePrevious, "Previous Page", page))
	}
	if hasNext {
		r.place(g, layout, PurposeNext, navTile(PurposeNext, "Next Page", page+2))
	}

	s.SetPage(page)
	return g
}

func (r *Renderer) place(g *Grid, layout Layout, p Purpose, t *Tile) {
	if slot, ok := layout.Slot(p); ok {
		g.set(slot, t)
	}
}

func price(v float64) string {
	return "$" + catalog.FormatPrice(v)
}

func (r *Renderer) townTile(town *towny.Town, s *Session) *Tile {
	plots := r.catalog.PurchasablePlots(town, s.Viewer)
	lo, hi := catalog.PriceRange(plots)
	var priceLine text.Line
	if lo == hi {
		priceLine = text.Labeled("Price", text.Gold, price(lo))
	} else {
		priceLine = text.Of(
			text.S(text.Gray, "Price Range: "),
			text.S(text.Gold, price(lo)),
			text.S(text.Gray, " - "),
			text.S(text.Gold, price(hi)),
		)
	}
	return NewTile(MaterialBeacon, PurposeEntity,
		text.Colored(text.Gold, town.Name),
		text.Empty(),
		text.Labeled("Plots Available", text.Green, strconv.Itoa(len(plots))),
		priceLine,
		text.Empty(),
		text.Colored(text.DarkGray, "Click to view plots").Italic(),
	)
}

func (r *Renderer) plotTile(p *towny.Plot, s *Session) *Tile {
	info := r.catalog.DisplayInfo(p)
	priceColor := text.Red
	if r.catalog.CanAfford(info.Price, s.Viewer) {
		priceColor = text.Gold
	}
	return NewTile(MaterialGrassBlock, PurposeEntity,
		text.Colored(text.Green, info.Name),
		text.Empty(),
		text.Labeled("Price", priceColor, price(info.Price)),
		text.Labeled("Type", text.Yellow, info.Type.String()),
		text.Labeled("Location", text.Aqua, info.Coordinates),
		text.Empty(),
		text.Colored(text.DarkGray, "Click to view location").Italic(),
	)
}

func infoTile(title string, page, total int, countLabel string, count int, footer string) *Tile {
	return NewTile(MaterialBook, PurposeInfo,
		text.Colored(text.Aqua, title),
		text.Empty(),
		text.Labeled("Page", text.White, fmt.Sprintf("%d/%d", page+1, total)),
		text.Labeled(countLabel, text.White, strconv.Itoa(count)),
		text.Empty(),
		text.Colored(text.DarkGray, footer).Italic(),
	)
}

func navTile(p Purpose, label string, target int) *Tile {
	return NewTile(MaterialArrow, p,
		text.Colored(text.Yellow, label),
		text.Colored(text.Gray, fmt.Sprintf("Click to go to page %d", target)),
	)
}

func backTile() *Tile {
	return NewTile(MaterialBarrier, PurposeBack,
		text.Colored(text.Red, "Back to Town Selection"),
		text.Colored(text.Gray, "Click to return"),
	)
}

func townInfoTile(town *towny.Town) *Tile {
	nation := text.Labeled("Nation", text.DarkGray, "None")
	if town.HasNation() {
		nation = text.Labeled("Nation", text.Gold, town.Nation)
	}
	status := text.Labeled("Status", text.Yellow, "Invite Only")
	if town.Open {
		status = text.Labeled("Status", text.Green, "Open")
	}
	return NewTile(MaterialEmerald, PurposeTownInfo,
		text.Colored(text.Green, town.Name).Bold(),
		text.Empty(),
		text.Labeled("Residents", text.White, strconv.Itoa(len(town.Residents))),
		nation,
		status,
	)
}

func taxInfoTile(town *towny.Town) *Tile {
	kind := "Flat Rate"
	if town.TaxPercentage {
		kind = "Percentage"
	}
	return NewTile(MaterialGoldIngot, PurposeTaxInfo,
		text.Colored(text.Gold, "Town Taxes").Bold(),
		text.Empty(),
		text.Labeled("Plot Tax", text.Yellow, price(town.Taxes)),
		text.Labeled("Type", text.Aqua, kind),
		text.Empty(),
		text.Colored(text.DarkGray, "Taxes are paid daily").Italic(),
	)
}

func mayorTile(town *towny.Town) *Tile {
	name := "No Mayor"
	if town.HasMayor() {
		name = town.Mayor.Name
	}
	t := NewTile(MaterialPlayerHead, PurposeMayor,
		text.Colored(text.Gold, "Mayor: "+name),
		text.Empty(),
		text.Labeled("Town", text.Yellow, town.Name),
	)
	if town.HasMayor() {
		t.SkullOwner = town.Mayor.UUID
	}
	return t
}
