package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/solterra/towny-catalog/internal/towny"
)

// Load reads the whole registry into a new snapshot.
func (s *Store) Load(ctx context.Context) (*towny.Snapshot, error) {
	snap := towny.NewSnapshot()

	if v, ok, err := s.meta(ctx, "economy"); err != nil {
		return nil, err
	} else if ok {
		snap.Economy, _ = strconv.ParseBool(v)
	}
	if v, ok, err := s.meta(ctx, "town_block_size"); err != nil {
		return nil, err
	} else if ok {
		if n, err := strconv.Atoi(v); err == nil {
			snap.BlockSize = n
		}
	}

	if err := s.loadWorlds(ctx, snap); err != nil {
		return nil, err
	}
	members, err := s.loadResidents(ctx, snap)
	if err != nil {
		return nil, err
	}
	towns, err := s.loadTowns(ctx, members)
	if err != nil {
		return nil, err
	}
	if err := s.loadPlots(ctx, towns); err != nil {
		return nil, err
	}
	for _, t := range towns.ordered {
		snap.AddTown(t)
	}
	return snap, nil
}

func (s *Store) loadWorlds(ctx context.Context, snap *towny.Snapshot) error {
	rows, err := s.db.QueryContext(ctx, `SELECT name, loaded, surface_y FROM worlds ORDER BY name`)
	if err != nil {
		return fmt.Errorf("query worlds: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			name    string
			loaded  int
			surface int
		)
		if err := rows.Scan(&name, &loaded, &surface); err != nil {
			return fmt.Errorf("scan world: %w", err)
		}
		snap.AddWorld(&towny.Terrain{
			WorldName: name,
			Loaded:    loaded != 0,
			SurfaceY:  surface,
			Columns:   make(map[[2]int]int),
		})
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("query worlds: %w", err)
	}

	cols, err := s.db.QueryContext(ctx, `SELECT world, x, z, y FROM heights`)
	if err != nil {
		return fmt.Errorf("query heights: %w", err)
	}
	defer cols.Close()
	for cols.Next() {
		var (
			world   string
			x, z, y int
		)
		if err := cols.Scan(&world, &x, &z, &y); err != nil {
			return fmt.Errorf("scan height: %w", err)
		}
		if t, ok := snap.Worlds[world]; ok {
			t.Columns[[2]int{x, z}] = y
		}
	}
	return cols.Err()
}

// loadResidents registers residents and returns their names grouped by
// lower-cased town name.
func (s *Store) loadResidents(ctx context.Context, snap *towny.Snapshot) (map[string][]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT uuid, name, town, balance FROM residents ORDER BY name COLLATE NOCASE`)
	if err != nil {
		return nil, fmt.Errorf("query residents: %w", err)
	}
	defer rows.Close()
	members := make(map[string][]string)
	for rows.Next() {
		var (
			raw     string
			r       towny.Resident
			balance float64
		)
		if err := rows.Scan(&raw, &r.Name, &r.Town, &balance); err != nil {
			return nil, fmt.Errorf("scan resident: %w", err)
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("resident %s: %w", r.Name, err)
		}
		r.UUID = id
		r.Balance = balance
		snap.AddResident(&r)
		if r.Town != "" {
			key := strings.ToLower(r.Town)
			members[key] = append(members[key], r.Name)
		}
	}
	return members, rows.Err()
}

type townIndex struct {
	ordered []*towny.Town
	byID    map[string]*towny.Town
}

func (s *Store) loadTowns(ctx context.Context, members map[string][]string) (*townIndex, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT uuid, name, open, public, mayor_uuid, mayor_name, nation, taxes, tax_percentage
		FROM towns ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query towns: %w", err)
	}
	defer rows.Close()
	idx := &townIndex{byID: make(map[string]*towny.Town)}
	for rows.Next() {
		var (
			raw, mayorID, mayorName string
			open, public, percent   int
			t                       towny.Town
		)
		if err := rows.Scan(&raw, &t.Name, &open, &public, &mayorID, &mayorName, &t.Nation, &t.Taxes, &percent); err != nil {
			return nil, fmt.Errorf("scan town: %w", err)
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("town %s: %w", t.Name, err)
		}
		t.UUID = id
		t.Open = open != 0
		t.Public = public != 0
		t.TaxPercentage = percent != 0
		if mayorName != "" {
			m := &towny.Mayor{Name: mayorName}
			if parsed, err := uuid.Parse(mayorID); err == nil {
				m.UUID = parsed
			}
			t.Mayor = m
		}
		t.Residents = members[strings.ToLower(t.Name)]
		idx.ordered = append(idx.ordered, &t)
		idx.byID[raw] = &t
	}
	return idx, rows.Err()
}

func (s *Store) loadPlots(ctx context.Context, towns *townIndex) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT town_uuid, world, x, z, name, type, price, for_sale
		FROM plots ORDER BY town_uuid, id`)
	if err != nil {
		return fmt.Errorf("query plots: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			townID, kind string
			forSale      int
			p            towny.Plot
		)
		if err := rows.Scan(&townID, &p.World, &p.X, &p.Z, &p.Name, &kind, &p.Price, &forSale); err != nil {
			return fmt.Errorf("scan plot: %w", err)
		}
		t, ok := towns.byID[townID]
		if !ok {
			continue
		}
		p.Type = towny.ParsePlotType(kind)
		p.ForSale = forSale != 0
		t.Plots = append(t.Plots, &p)
	}
	return rows.Err()
}

// Counts reports how many towns and residents are stored.
func (s *Store) Counts(ctx context.Context) (towns, residents int, err error) {
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM towns`).Scan(&towns); err != nil {
		return 0, 0, fmt.Errorf("count towns: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM residents`).Scan(&residents); err != nil {
		return 0, 0, fmt.Errorf("count residents: %w", err)
	}
	return towns, residents, nil
}
