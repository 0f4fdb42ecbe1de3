package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/gridnav/internal/terrain"
)

// ErrLevelNotFound is returned when no level is stored under a name.
var ErrLevelNotFound = errors.New("level not found")

// LevelInfo describes a stored level without its cells.
type LevelInfo struct {
	Name      string
	Width     int
	Height    int
	UpdatedAt time.Time
}

// LevelRepository persists terrain grids, one packed byte per cell.
type LevelRepository struct {
	pool *pgxpool.Pool
}

// NewLevelRepository creates a new level repository.
func NewLevelRepository(pool *pgxpool.Pool) *LevelRepository {
	return &LevelRepository{pool: pool}
}

// Save inserts or replaces the level stored under name.
func (r *LevelRepository) Save(ctx context.Context, name string, g terrain.Grid) error {
	cells := terrain.EncodeCells(terrain.CellsOf(g))
	_, err := r.pool.Exec(ctx, `
		INSERT INTO levels (name, width, height, cells, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (name) DO UPDATE
		SET width = EXCLUDED.width,
		    height = EXCLUDED.height,
		    cells = EXCLUDED.cells,
		    updated_at = NOW()`,
		name, g.Width(), g.Height(), cells,
	)
	if err != nil {
		return fmt.Errorf("saving level %q: %w", name, err)
	}
	return nil
}

// Load reads the level stored under name.
func (r *LevelRepository) Load(ctx context.Context, name string) (*terrain.Map, error) {
	var (
		width, height int
		cells         []byte
	)
	err := r.pool.QueryRow(ctx,
		`SELECT width, height, cells FROM levels WHERE name = $1`, name,
	).Scan(&width, &height, &cells)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("loading level %q: %w", name, ErrLevelNotFound)
		}
		return nil, fmt.Errorf("loading level %q: %w", name, err)
	}

	m, err := terrain.FromCells(width, height, terrain.DecodeCells(cells))
	if err != nil {
		return nil, fmt.Errorf("decoding level %q: %w", name, err)
	}
	return m, nil
}

// List returns all stored levels ordered by name.
func (r *LevelRepository) List(ctx context.Context) ([]LevelInfo, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT name, width, height, updated_at FROM levels ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing levels: %w", err)
	}
	defer rows.Close()

	var levels []LevelInfo
	for rows.Next() {
		var l LevelInfo
		if err := rows.Scan(&l.Name, &l.Width, &l.Height, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning level row: %w", err)
		}
		levels = append(levels, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating level rows: %w", err)
	}
	return levels, nil
}

// Delete removes the level stored under name.
func (r *LevelRepository) Delete(ctx context.Context, name string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM levels WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("deleting level %q: %w", name, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("deleting level %q: %w", name, ErrLevelNotFound)
	}
	return nil
}
