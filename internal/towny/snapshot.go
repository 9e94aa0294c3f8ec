package towny

import (
	"strings"

	"github.com/google/uuid"
)

const (
	DefaultTownBlockSize = 16
	DefaultSurfaceY      = 64
)

// Snapshot is an in-memory Registry. Stores build one per load and the
// catalog swaps whole snapshots, so a Snapshot is never mutated once shared.
type Snapshot struct {
	TownList  []*Town
	Residents map[uuid.UUID]*Resident
	Worlds    map[string]*Terrain
	Economy   bool
	BlockSize int
}

// NewSnapshot returns an empty snapshot with default settings.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Residents: make(map[uuid.UUID]*Resident),
		Worlds:    make(map[string]*Terrain),
		Economy:   true,
		BlockSize: DefaultTownBlockSize,
	}
}

// AddTown appends a town and links its plots back to it.
func (s *Snapshot) AddTown(t *Town) *Town {
	for _, p := range t.Plots {
		p.Town = t
	}
	s.TownList = append(s.TownList, t)
	return t
}

// AddResident registers a resident by UUID.
func (s *Snapshot) AddResident(r *Resident) *Resident {
	if s.Residents == nil {
		s.Residents = make(map[uuid.UUID]*Resident)
	}
	s.Residents[r.UUID] = r
	return r
}

// AddWorld registers loaded terrain.
func (s *Snapshot) AddWorld(t *Terrain) *Terrain {
	if s.Worlds == nil {
		s.Worlds = make(map[string]*Terrain)
	}
	s.Worlds[t.WorldName] = t
	return t
}

func (s *Snapshot) Towns() []*Town {
	out := make([]*Town, len(s.TownList))
	copy(out, s.TownList)
	return out
}

func (s *Snapshot) Town(name string) (*Town, bool) {
	trimmed := strings.TrimSpace(name)
	for _, t := range s.TownList {
		if strings.EqualFold(t.Name, trimmed) {
			return t, true
		}
	}
	return nil, false
}

func (s *Snapshot) Resident(id uuid.UUID) (*Resident, bool) {
	r, ok := s.Residents[id]
	return r, ok
}

// ResidentByName finds a resident case-insensitively.
func (s *Snapshot) ResidentByName(name string) (*Resident, bool) {
	for _, r := range s.Residents {
		if strings.EqualFold(r.Name, name) {
			return r, true
		}
	}
	return nil, false
}

func (s *Snapshot) EconomyActive() bool {
	return s.Economy
}

func (s *Snapshot) TownBlockSize() int {
	if s.BlockSize <= 0 {
		return DefaultTownBlockSize
	}
	return s.BlockSize
}

func (s *Snapshot) World(name string) (World, bool) {
	t, ok := s.Worlds[name]
	if !ok || t == nil || !t.Loaded {
		return nil, false
	}
	return t, true
}

// Terrain is a height map for one world. Columns without an entry report
// SurfaceY.
type Terrain struct {
	WorldName string
	Loaded    bool
	SurfaceY  int
	Columns   map[[2]int]int
}

func (t *Terrain) Name() string {
	return t.WorldName
}

func (t *Terrain) HighestBlockYAt(x, z int) int {
	if y, ok := t.Columns[[2]int{x, z}]; ok {
		return y
	}
	if t.SurfaceY == 0 {
		return DefaultSurfaceY
	}
	return t.SurfaceY
}
