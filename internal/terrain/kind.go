package terrain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKind is returned when a terrain name cannot be parsed.
var ErrUnknownKind = errors.New("unknown terrain kind")

// Kind identifies the terrain type of a single cell.
type Kind uint8

// Terrain kinds. Values are persisted (level files, database) and must not be renumbered.
const (
	Grass Kind = iota
	Mud
	Water
	Tree
	Rock

	kindCount
)

// Movement weights per terrain kind.
const (
	WeightGrass = 1
	WeightMud   = 2
	WeightWater = 4
)

var kindNames = [kindCount]string{
	Grass: "grass",
	Mud:   "mud",
	Water: "water",
	Tree:  "tree",
	Rock:  "rock",
}

// Weight returns the movement-cost weight of the terrain kind.
// Kinds without an explicit weight cost the same as grass.
func (k Kind) Weight() int {
	switch k {
	case Mud:
		return WeightMud
	case Water:
		return WeightWater
	default:
		return WeightGrass
	}
}

// Passable reports the default navigability of the kind.
// A Map can override it per cell with SetBlocked.
func (k Kind) Passable() bool {
	switch k {
	case Tree, Rock:
		return false
	default:
		return k < kindCount
	}
}

// Valid returns true if k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k < kindCount
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Symbol returns the single-character glyph used in level rows.
func (k Kind) Symbol() byte {
	switch k {
	case Grass:
		return '.'
	case Mud:
		return ','
	case Water:
		return '~'
	case Tree:
		return 'T'
	case Rock:
		return '#'
	default:
		return '?'
	}
}

// ParseKind parses a terrain name (case-insensitive).
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// KindFromSymbol maps a level glyph back to its kind.
func KindFromSymbol(c byte) (Kind, error) {
	for k := range kindCount {
		if k.Symbol() == c {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: symbol %q", ErrUnknownKind, c)
}

// Kinds returns all declared terrain kinds in value order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := range kindCount {
		out = append(out, k)
	}
	return out
}
