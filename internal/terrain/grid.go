package terrain

import (
	"errors"
	"fmt"
)

// ErrInvalidDimensions is returned for grids with non-positive width or height.
var ErrInvalidDimensions = errors.New("invalid grid dimensions")

// Grid is the read-only terrain source the navigation graph is built from.
// Coordinates outside [0,Width)×[0,Height) are never passed in by nav.
type Grid interface {
	Width() int
	Height() int
	IsNavigable(x, y int) bool
	KindAt(x, y int) Kind
}

// Map is an in-memory row-major terrain grid.
// Not safe for concurrent mutation; build a new Map and rebind instead.
type Map struct {
	width, height int
	cells         []Cell
}

// NewMap creates a width×height map filled with fill.
func NewMap(width, height int, fill Kind) (*Map, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	m := &Map{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
	c := PackCell(fill, false)
	for i := range m.cells {
		m.cells[i] = c
	}
	return m, nil
}

// FromCells wraps packed cells (row-major, len == width*height) into a Map.
// The slice is copied.
func FromCells(width, height int, cells []Cell) (*Map, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if len(cells) != width*height {
		return nil, fmt.Errorf("cell count %d does not match %dx%d", len(cells), width, height)
	}
	for i, c := range cells {
		if !c.Kind().Valid() {
			return nil, fmt.Errorf("cell %d: %w: %d", i, ErrUnknownKind, uint8(c.Kind()))
		}
	}
	m := &Map{width: width, height: height, cells: make([]Cell, len(cells))}
	copy(m.cells, cells)
	return m, nil
}

func (m *Map) Width() int  { return m.width }
func (m *Map) Height() int { return m.height }

// InBounds returns true if (x, y) lies inside the map.
func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.width && y < m.height
}

// IsNavigable returns false for out-of-bounds coordinates.
func (m *Map) IsNavigable(x, y int) bool {
	if !m.InBounds(x, y) {
		return false
	}
	return m.cells[y*m.width+x].Navigable()
}

// KindAt returns Grass for out-of-bounds coordinates.
func (m *Map) KindAt(x, y int) Kind {
	if !m.InBounds(x, y) {
		return Grass
	}
	return m.cells[y*m.width+x].Kind()
}

// Set changes the terrain kind of a cell, keeping its blocked override.
func (m *Map) Set(x, y int, kind Kind) {
	if !m.InBounds(x, y) {
		return
	}
	i := y*m.width + x
	m.cells[i] = PackCell(kind, m.cells[i].Blocked())
}

// SetBlocked marks a cell as blocked regardless of its kind (e.g. a building footprint).
func (m *Map) SetBlocked(x, y int, blocked bool) {
	if !m.InBounds(x, y) {
		return
	}
	i := y*m.width + x
	m.cells[i] = PackCell(m.cells[i].Kind(), blocked)
}

// Cells returns a copy of the packed cells in row-major order.
func (m *Map) Cells() []Cell {
	out := make([]Cell, len(m.cells))
	copy(out, m.cells)
	return out
}

// Clone returns a deep copy of the map.
func (m *Map) Clone() *Map {
	return &Map{width: m.width, height: m.height, cells: m.Cells()}
}
