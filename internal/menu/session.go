package menu

import (
	"github.com/google/uuid"

	"github.com/solterra/towny-catalog/internal/towny"
	"github.com/solterra/towny-catalog/internal/ui/state"
)

// Session is one open menu for one viewer. Kind selects which pager is
// populated: Towns for TownSelection, Plots and Town for PlotCatalog.
type Session struct {
	Kind   Kind
	Viewer uuid.UUID
	Town   *towny.Town
	Towns  *state.Pager[*towny.Town]
	Plots  *state.Pager[*towny.Plot]
}

// NewTownSelection starts a town selection session over towns.
func NewTownSelection(viewer uuid.UUID, towns []*towny.Town) *Session {
	return &Session{
		Kind:   TownSelection,
		Viewer: viewer,
		Towns:  state.NewPager(towns, state.PageSize),
	}
}

// NewPlotCatalog starts a plot catalog session for town over plots.
func NewPlotCatalog(viewer uuid.UUID, town *towny.Town, plots []*towny.Plot) *Session {
	return &Session{
		Kind:   PlotCatalog,
		Viewer: viewer,
		Town:   town,
		Plots:  state.NewPager(plots, state.PageSize),
	}
}

// Layout returns the slot layout for the session kind.
func (s *Session) Layout() Layout {
	return LayoutFor(s.Kind)
}

type pageState interface {
	Len() int
	Page() int
	TotalPages() int
	HasPrevious() bool
	HasNext() bool
	SetPage(int)
}

func (s *Session) pager() pageState {
	switch s.Kind {
	case TownSelection:
		if s.Towns != nil {
			return s.Towns
		}
	case PlotCatalog:
		if s.Plots != nil {
			return s.Plots
		}
	}
	return state.NewPager[struct{}](nil, state.PageSize)
}

func (s *Session) Len() int          { return s.pager().Len() }
func (s *Session) Page() int         { return s.pager().Page() }
func (s *Session) TotalPages() int   { return s.pager().TotalPages() }
func (s *Session) HasPrevious() bool { return s.pager().HasPrevious() }
func (s *Session) HasNext() bool     { return s.pager().HasNext() }
func (s *Session) SetPage(page int)  { s.pager().SetPage(page) }

// TownAt resolves an entity slot of a town selection session.
func (s *Session) TownAt(slot int) (*towny.Town, bool) {
	if s.Kind != TownSelection || s.Towns == nil {
		return nil, false
	}
	return s.Towns.Resolve(slot)
}

// PlotAt resolves an entity slot of a plot catalog session.
func (s *Session) PlotAt(slot int) (*towny.Plot, bool) {
	if s.Kind != PlotCatalog || s.Plots == nil {
		return nil, false
	}
	return s.Plots.Resolve(slot)
}

// Title is the menu heading.
func (s *Session) Title() string {
	if s.Kind == PlotCatalog && s.Town != nil {
		return s.Town.Name + " - Plots"
	}
	return "Select a Town"
}
