package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/solterra/towny-catalog/internal/towny"
)

// ErrInvalidSeed marks seed documents that cannot be imported.
var ErrInvalidSeed = errors.New("invalid seed")

// Seed is the YAML export format of a registry.
type Seed struct {
	Economy       *bool          `yaml:"economy"`
	TownBlockSize int            `yaml:"town-block-size"`
	Worlds        []SeedWorld    `yaml:"worlds"`
	Residents     []SeedResident `yaml:"residents"`
	Towns         []SeedTown     `yaml:"towns"`
}

type SeedWorld struct {
	Name     string       `yaml:"name"`
	Loaded   *bool        `yaml:"loaded"`
	SurfaceY int          `yaml:"surface-y"`
	Columns  []SeedColumn `yaml:"columns"`
}

type SeedColumn struct {
	X int `yaml:"x"`
	Z int `yaml:"z"`
	Y int `yaml:"y"`
}

type SeedResident struct {
	UUID    string  `yaml:"uuid"`
	Name    string  `yaml:"name"`
	Town    string  `yaml:"town"`
	Balance float64 `yaml:"balance"`
}

type SeedTown struct {
	UUID          string     `yaml:"uuid"`
	Name          string     `yaml:"name"`
	Open          bool       `yaml:"open"`
	Public        bool       `yaml:"public"`
	Mayor         string     `yaml:"mayor"`
	Nation        string     `yaml:"nation"`
	Taxes         float64    `yaml:"taxes"`
	TaxPercentage bool       `yaml:"tax-percentage"`
	Plots         []SeedPlot `yaml:"plots"`
}

type SeedPlot struct {
	World   string  `yaml:"world"`
	X       int     `yaml:"x"`
	Z       int     `yaml:"z"`
	Name    string  `yaml:"name"`
	Type    string  `yaml:"type"`
	Price   float64 `yaml:"price"`
	ForSale bool    `yaml:"for-sale"`
}

// ParseSeed decodes a YAML seed. Unknown keys are rejected.
func ParseSeed(r io.Reader) (*Seed, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var seed Seed
	if err := dec.Decode(&seed); err != nil {
		if errors.Is(err, io.EOF) {
			return &seed, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}
	return &seed, nil
}

// ImportFile parses the seed at path and imports it.
func (s *Store) ImportFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open seed: %w", err)
	}
	defer f.Close()
	seed, err := ParseSeed(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return s.Import(ctx, seed)
}

// Import replaces the registry with seed in one transaction. Town order in
// the seed becomes registry order.
func (s *Store) Import(ctx context.Context, seed *Seed) error {
	if seed == nil {
		return fmt.Errorf("%w: nil seed", ErrInvalidSeed)
	}
	residents, err := seedResidents(seed.Residents)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"plots", "towns", "residents", "heights", "worlds", "meta"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	economy := true
	if seed.Economy != nil {
		economy = *seed.Economy
	}
	blockSize := seed.TownBlockSize
	if blockSize <= 0 {
		blockSize = towny.DefaultTownBlockSize
	}
	meta := map[string]string{
		"economy":         strconv.FormatBool(economy),
		"town_block_size": strconv.Itoa(blockSize),
		"imported_at":     time.Now().UTC().Format(time.RFC3339),
	}
	for k, v := range meta {
		if _, err := tx.ExecContext(ctx, `INSERT INTO meta(key, value) VALUES (?, ?)`, k, v); err != nil {
			return fmt.Errorf("write meta %s: %w", k, err)
		}
	}

	if err := importWorlds(ctx, tx, seed.Worlds); err != nil {
		return err
	}
	for _, r := range residents {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO residents(uuid, name, town, balance) VALUES (?, ?, ?, ?)`,
			r.UUID.String(), r.Name, r.Town, r.Balance,
		); err != nil {
			return fmt.Errorf("insert resident %s: %w", r.Name, err)
		}
	}
	if err := importTowns(ctx, tx, seed.Towns, residents); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	return nil
}

func seedResidents(in []SeedResident) ([]*towny.Resident, error) {
	out := make([]*towny.Resident, 0, len(in))
	for i, r := range in {
		id, err := uuid.Parse(strings.TrimSpace(r.UUID))
		if err != nil {
			return nil, fmt.Errorf("%w: resident %d (%s): %v", ErrInvalidSeed, i, r.Name, err)
		}
		if strings.TrimSpace(r.Name) == "" {
			return nil, fmt.Errorf("%w: resident %d has no name", ErrInvalidSeed, i)
		}
		out = append(out, &towny.Resident{UUID: id, Name: r.Name, Town: r.Town, Balance: r.Balance})
	}
	return out, nil
}

func importWorlds(ctx context.Context, tx *sql.Tx, worlds []SeedWorld) error {
	for _, w := range worlds {
		if strings.TrimSpace(w.Name) == "" {
			return fmt.Errorf("%w: world without a name", ErrInvalidSeed)
		}
		loaded := true
		if w.Loaded != nil {
			loaded = *w.Loaded
		}
		surface := w.SurfaceY
		if surface == 0 {
			surface = towny.DefaultSurfaceY
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO worlds(name, loaded, surface_y) VALUES (?, ?, ?)`,
			w.Name, boolInt(loaded), surface,
		); err != nil {
			return fmt.Errorf("insert world %s: %w", w.Name, err)
		}
		for _, c := range w.Columns {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO heights(world, x, z, y) VALUES (?, ?, ?, ?)`,
				w.Name, c.X, c.Z, c.Y,
			); err != nil {
				return fmt.Errorf("insert height %s (%d, %d): %w", w.Name, c.X, c.Z, err)
			}
		}
	}
	return nil
}

func importTowns(ctx context.Context, tx *sql.Tx, towns []SeedTown, residents []*towny.Resident) error {
	for i, t := range towns {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			return fmt.Errorf("%w: town %d has no name", ErrInvalidSeed, i)
		}
		id := uuid.New()
		if raw := strings.TrimSpace(t.UUID); raw != "" {
			parsed, err := uuid.Parse(raw)
			if err != nil {
				return fmt.Errorf("%w: town %s: %v", ErrInvalidSeed, name, err)
			}
			id = parsed
		}
		mayorID := ""
		if t.Mayor != "" {
			mayorID = mayorUUID(t.Mayor, residents).String()
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO towns(uuid, position, name, open, public, mayor_uuid, mayor_name, nation, taxes, tax_percentage)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id.String(), i, name, boolInt(t.Open), boolInt(t.Public),
			mayorID, t.Mayor, t.Nation, t.Taxes, boolInt(t.TaxPercentage),
		); err != nil {
			return fmt.Errorf("insert town %s: %w", name, err)
		}
		for _, p := range t.Plots {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO plots(town_uuid, world, x, z, name, type, price, for_sale)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				id.String(), p.World, p.X, p.Z, p.Name, string(towny.ParsePlotType(p.Type)),
				p.Price, boolInt(p.ForSale),
			); err != nil {
				return fmt.Errorf("insert plot %s (%d, %d) of %s: %w", p.World, p.X, p.Z, name, err)
			}
		}
	}
	return nil
}

// mayorUUID resolves a mayor by resident name. Mayors without a resident
// record get an id derived from their name so skulls stay stable.
func mayorUUID(name string, residents []*towny.Resident) uuid.UUID {
	for _, r := range residents {
		if strings.EqualFold(r.Name, name) {
			return r.UUID
		}
	}
	return uuid.NewMD5(uuid.NameSpaceOID, []byte("OfflinePlayer:"+name))
}
