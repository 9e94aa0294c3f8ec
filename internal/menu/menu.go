// Package menu models the two chest menus of the catalog and renders them
// into slot grids.
package menu

import (
	"fmt"
	"sort"

	"github.com/solterra/towny-catalog/internal/ui/state"
)

const (
	Rows    = 6
	Columns = 9
	// Size is the number of slots in a menu grid.
	Size = Rows * Columns
)

// Kind identifies which menu a session shows.
type Kind int

const (
	TownSelection Kind = iota
	PlotCatalog
)

func (k Kind) String() string {
	switch k {
	case TownSelection:
		return "town-selection"
	case PlotCatalog:
		return "plot-catalog"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Purpose is what a slot is for.
type Purpose int

const (
	PurposeNone Purpose = iota
	PurposeEntity
	PurposeBack
	PurposeTownInfo
	PurposeTaxInfo
	PurposePrevious
	PurposeInfo
	PurposeNext
	PurposeMayor
)

func (p Purpose) String() string {
	switch p {
	case PurposeEntity:
		return "entity"
	case PurposeBack:
		return "back"
	case PurposeTownInfo:
		return "town-info"
	case PurposeTaxInfo:
		return "tax-info"
	case PurposePrevious:
		return "previous"
	case PurposeInfo:
		return "info"
	case PurposeNext:
		return "next"
	case PurposeMayor:
		return "mayor"
	default:
		return "none"
	}
}

// Layout maps control purposes to slots. Slots 0 to EntitySlots-1 always
// hold entities. Rendering and click dispatch share the same table.
type Layout struct {
	Kind        Kind
	EntitySlots int
	controls    map[Purpose]int
}

var layouts = map[Kind]Layout{
	TownSelection: {
		Kind:        TownSelection,
		EntitySlots: state.PageSize,
		controls: map[Purpose]int{
			PurposePrevious: 48,
			PurposeInfo:     49,
			PurposeNext:     50,
		},
	},
	PlotCatalog: {
		Kind:        PlotCatalog,
		EntitySlots: state.PageSize,
		controls: map[Purpose]int{
			PurposeBack:     45,
			PurposeTownInfo: 46,
			PurposeTaxInfo:  47,
			PurposePrevious: 48,
			PurposeInfo:     49,
			PurposeNext:     50,
			PurposeMayor:    53,
		},
	},
}

// LayoutFor returns the layout of kind.
func LayoutFor(kind Kind) Layout {
	return layouts[kind]
}

// Slot returns where p lives in the layout.
func (l Layout) Slot(p Purpose) (int, bool) {
	slot, ok := l.controls[p]
	return slot, ok
}

// Purpose returns what slot is for. Slots outside the grid and unused
// control-row slots report PurposeNone.
func (l Layout) Purpose(slot int) Purpose {
	if slot < 0 || slot >= Size {
		return PurposeNone
	}
	if slot < l.EntitySlots {
		return PurposeEntity
	}
	for p, s := range l.controls {
		if s == slot {
			return p
		}
	}
	return PurposeNone
}

// Controls lists the control purposes in slot order.
func (l Layout) Controls() []Purpose {
	out := make([]Purpose, 0, len(l.controls))
	for p := range l.controls {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return l.controls[out[i]] < l.controls[out[j]] })
	return out
}
