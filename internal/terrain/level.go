package terrain

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Level is the YAML file form of a terrain map.
//
// Rows hold one glyph per cell (see Kind.Symbol); rows[0] is y = 0.
// Blocked lists cells that are impassable regardless of terrain.
type Level struct {
	Name    string    `yaml:"name"`
	Width   int       `yaml:"width"`
	Height  int       `yaml:"height"`
	Rows    []string  `yaml:"rows"`
	Blocked []CellRef `yaml:"blocked,omitempty"`
}

// CellRef addresses a single cell in a level file.
type CellRef struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// ParseLevel decodes a YAML level and validates it.
func ParseLevel(data []byte) (*Level, error) {
	var lvl Level
	if err := yaml.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("decoding level: %w", err)
	}
	if lvl.Width == 0 && len(lvl.Rows) > 0 {
		lvl.Width = len(lvl.Rows[0])
	}
	if lvl.Height == 0 {
		lvl.Height = len(lvl.Rows)
	}
	if lvl.Width <= 0 || lvl.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, lvl.Width, lvl.Height)
	}
	if len(lvl.Rows) != lvl.Height {
		return nil, fmt.Errorf("level %q: %d rows, want %d", lvl.Name, len(lvl.Rows), lvl.Height)
	}
	for y, row := range lvl.Rows {
		if len(row) != lvl.Width {
			return nil, fmt.Errorf("level %q: row %d has %d cells, want %d", lvl.Name, y, len(row), lvl.Width)
		}
	}
	return &lvl, nil
}

// LoadLevel reads and parses a YAML level file.
func LoadLevel(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading level %s: %w", path, err)
	}
	lvl, err := ParseLevel(data)
	if err != nil {
		return nil, fmt.Errorf("parsing level %s: %w", path, err)
	}
	return lvl, nil
}

// Map builds the in-memory grid described by the level.
func (l *Level) Map() (*Map, error) {
	m, err := NewMap(l.Width, l.Height, Grass)
	if err != nil {
		return nil, err
	}
	for y, row := range l.Rows {
		for x := range len(row) {
			k, err := KindFromSymbol(row[x])
			if err != nil {
				return nil, fmt.Errorf("level %q cell (%d,%d): %w", l.Name, x, y, err)
			}
			m.Set(x, y, k)
		}
	}
	for _, p := range l.Blocked {
		if !m.InBounds(p.X, p.Y) {
			return nil, fmt.Errorf("level %q: blocked cell (%d,%d) out of bounds", l.Name, p.X, p.Y)
		}
		m.SetBlocked(p.X, p.Y, true)
	}
	return m, nil
}

// NewLevel converts a grid back to its file form.
func NewLevel(name string, g Grid) *Level {
	lvl := &Level{
		Name:   name,
		Width:  g.Width(),
		Height: g.Height(),
		Rows:   make([]string, g.Height()),
	}
	var sb strings.Builder
	for y := range g.Height() {
		sb.Reset()
		for x := range g.Width() {
			k := g.KindAt(x, y)
			sb.WriteByte(k.Symbol())
			if k.Passable() && !g.IsNavigable(x, y) {
				lvl.Blocked = append(lvl.Blocked, CellRef{X: x, Y: y})
			}
		}
		lvl.Rows[y] = sb.String()
	}
	return lvl
}

// Marshal encodes the level as YAML.
func (l *Level) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("encoding level %q: %w", l.Name, err)
	}
	return data, nil
}

// SaveLevel writes the grid to path as a YAML level.
func SaveLevel(path, name string, g Grid) error {
	data, err := NewLevel(name, g).Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing level %s: %w", path, err)
	}
	return nil
}
