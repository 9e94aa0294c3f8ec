// Package catalog answers which towns and plots a viewer may browse.
//
// Every query runs against the registry snapshot currently installed and the
// settings current at call time. Nothing here mutates domain data.
package catalog

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/solterra/towny-catalog/internal/settings"
	"github.com/solterra/towny-catalog/internal/towny"
)

// SettingsSource supplies the active configuration.
type SettingsSource interface {
	Current() settings.Settings
}

// Service is the catalog query layer.
type Service struct {
	mu       sync.RWMutex
	registry towny.Registry
	settings SettingsSource
}

// New returns a service over reg using the settings from src.
func New(reg towny.Registry, src SettingsSource) *Service {
	return &Service{registry: reg, settings: src}
}

// Registry returns the installed registry.
func (s *Service) Registry() towny.Registry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry
}

// SetRegistry installs a new registry snapshot. Open menus keep the entities
// they were built from; the next query sees the new data.
func (s *Service) SetRegistry(reg towny.Registry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registry = reg
}

// Settings returns the current configuration.
func (s *Service) Settings() settings.Settings {
	if s.settings == nil {
		return settings.Defaults()
	}
	return s.settings.Current()
}

// Resident looks up the viewer's domain identity.
func (s *Service) Resident(viewer uuid.UUID) (*towny.Resident, bool) {
	reg := s.Registry()
	if reg == nil {
		return nil, false
	}
	return reg.Resident(viewer)
}

// CanAfford reports whether viewer can pay price. An inactive economy makes
// everything affordable; an unknown viewer can afford nothing.
func (s *Service) CanAfford(price float64, viewer uuid.UUID) bool {
	reg := s.Registry()
	if reg == nil || !reg.EconomyActive() {
		return true
	}
	res, ok := reg.Resident(viewer)
	if !ok || res == nil {
		return false
	}
	return res.Balance >= price
}

// PurchasablePlots returns the plots of town that are for sale and pass the
// configured plot filters, in registry order. A viewer without a resident
// record gets no results.
func (s *Service) PurchasablePlots(town *towny.Town, viewer uuid.UUID) []*towny.Plot {
	if town == nil {
		return nil
	}
	if _, ok := s.Resident(viewer); !ok {
		return nil
	}
	cfg := s.Settings()
	var out []*towny.Plot
	for _, p := range town.Plots {
		if p == nil || !p.ForSale {
			continue
		}
		if cfg.ResidentialOnly && p.Type != towny.PlotResidential {
			continue
		}
		if cfg.RequireAffordable && !s.CanAfford(p.Price, viewer) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// TownsWithPurchasablePlots returns towns passing the visibility filters that
// have at least one purchasable plot for viewer, in registry order.
func (s *Service) TownsWithPurchasablePlots(viewer uuid.UUID) []*towny.Town {
	if _, ok := s.Resident(viewer); !ok {
		return nil
	}
	reg := s.Registry()
	if reg == nil {
		return nil
	}
	cfg := s.Settings()
	var out []*towny.Town
	for _, t := range reg.Towns() {
		if !townVisible(t, cfg) {
			continue
		}
		if len(s.PurchasablePlots(t, viewer)) == 0 {
			continue
		}
		out = append(out, t)
	}
	return out
}

// TownVisible reports whether town passes the open and public filters.
func (s *Service) TownVisible(town *towny.Town) bool {
	return townVisible(town, s.Settings())
}

func townVisible(t *towny.Town, cfg settings.Settings) bool {
	if t == nil {
		return false
	}
	if cfg.RequireTownOpen && !t.Open {
		return false
	}
	if cfg.RequireTownPublic && !t.Public {
		return false
	}
	return true
}

// FindTown resolves a town by name, case-insensitively.
func (s *Service) FindTown(name string) (*towny.Town, bool) {
	reg := s.Registry()
	if reg == nil {
		return nil, false
	}
	return reg.Town(name)
}

// SortPlotsByPrice returns a new slice ordered by price. Equal prices keep
// their relative order.
func SortPlotsByPrice(plots []*towny.Plot, ascending bool) []*towny.Plot {
	out := append([]*towny.Plot(nil), plots...)
	sort.SliceStable(out, func(i, j int) bool {
		if ascending {
			return out[i].Price < out[j].Price
		}
		return out[i].Price > out[j].Price
	})
	return out
}

// SortTownsByName returns a new slice ordered case-insensitively by name.
func SortTownsByName(towns []*towny.Town) []*towny.Town {
	out := append([]*towny.Town(nil), towns...)
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// PriceRange returns the lowest and highest price. Both are zero for an
// empty slice.
func PriceRange(plots []*towny.Plot) (float64, float64) {
	if len(plots) == 0 {
		return 0, 0
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range plots {
		lo = math.Min(lo, p.Price)
		hi = math.Max(hi, p.Price)
	}
	return lo, hi
}

// FormatPrice renders a price with two decimals and no currency sign.
func FormatPrice(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// PlotInfo is the display view of one plot.
type PlotInfo struct {
	Plot        *towny.Plot
	Name        string
	TownName    string
	Price       float64
	Type        towny.PlotType
	X, Z        int
	World       string
	Coordinates string
}

// FormattedPrice is the price with two decimals.
func (p PlotInfo) FormattedPrice() string {
	return FormatPrice(p.Price)
}

// DisplayInfo builds the display view of p. Custom plot names are used only
// when enabled; otherwise the name is "<Town> Plot".
func (s *Service) DisplayInfo(p *towny.Plot) PlotInfo {
	town := p.TownName()
	name := ""
	if s.Settings().ShowCustomPlotNames {
		name = strings.TrimSpace(p.Name)
	}
	if name == "" {
		name = town + " Plot"
	}
	world := p.World
	if world == "" {
		world = "Unknown"
	}
	return PlotInfo{
		Plot:        p,
		Name:        name,
		TownName:    town,
		Price:       p.Price,
		Type:        p.Type,
		X:           p.X,
		Z:           p.Z,
		World:       world,
		Coordinates: fmt.Sprintf("X: %d, Z: %d", p.X, p.Z),
	}
}

// Location is a position inside a named world.
type Location struct {
	World string
	Pos   mgl64.Vec3
}

func (l Location) String() string {
	return fmt.Sprintf("%s (%.1f, %.1f, %.1f)", l.World, l.Pos.X(), l.Pos.Y(), l.Pos.Z())
}

// PlotCenter returns the standing position at the middle of p's town block:
// one above the highest block of the centre column. It reports false when the
// plot's world is not loaded.
func (s *Service) PlotCenter(p *towny.Plot) (Location, bool) {
	reg := s.Registry()
	if p == nil || reg == nil {
		return Location{}, false
	}
	world, ok := reg.World(p.World)
	if !ok || world == nil {
		return Location{}, false
	}
	size := reg.TownBlockSize()
	if size <= 0 {
		size = towny.DefaultTownBlockSize
	}
	half := size / 2
	bx := p.X*size + half
	bz := p.Z*size + half
	y := world.HighestBlockYAt(bx, bz) + 1
	return Location{
		World: world.Name(),
		Pos:   mgl64.Vec3{float64(bx), float64(y), float64(bz)},
	}, true
}

// Stats summarises the registry for the admin info command.
type Stats struct {
	TotalTowns    int
	TownsForSale  int
	PlotsForSale  int
	EconomyActive bool
}

// Stats counts towns and for-sale plots without applying viewer filters.
func (s *Service) Stats() Stats {
	reg := s.Registry()
	if reg == nil {
		return Stats{}
	}
	st := Stats{EconomyActive: reg.EconomyActive()}
	for _, t := range reg.Towns() {
		st.TotalTowns++
		forSale := 0
		for _, p := range t.Plots {
			if p != nil && p.ForSale {
				forSale++
			}
		}
		if forSale > 0 {
			st.TownsForSale++
		}
		st.PlotsForSale += forSale
	}
	return st
}
