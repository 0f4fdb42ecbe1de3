package terrain

// Cell is the packed storage form of one grid cell.
// Bit packing: [7] = blocked override, [6:0] = terrain kind.
type Cell uint8

const (
	cellBlockedBit Cell = 1 << 7
	cellKindMask   Cell = 0x7F
)

// PackCell combines a kind and a blocked override into a Cell.
func PackCell(kind Kind, blocked bool) Cell {
	c := Cell(kind) & cellKindMask
	if blocked {
		c |= cellBlockedBit
	}
	return c
}

// Kind returns the terrain kind stored in the cell.
func (c Cell) Kind() Kind { return Kind(c & cellKindMask) }

// Blocked returns true if the cell is blocked independently of its kind.
func (c Cell) Blocked() bool { return c&cellBlockedBit != 0 }

// Navigable combines the kind's default passability with the override.
func (c Cell) Navigable() bool {
	return !c.Blocked() && c.Kind().Passable()
}

// EncodeCells converts cells to raw bytes (database / wire form).
func EncodeCells(cells []Cell) []byte {
	out := make([]byte, len(cells))
	for i, c := range cells {
		out[i] = byte(c)
	}
	return out
}

// DecodeCells converts raw bytes back to cells.
func DecodeCells(data []byte) []Cell {
	out := make([]Cell, len(data))
	for i, b := range data {
		out[i] = Cell(b)
	}
	return out
}

// CellsOf packs any grid into row-major cells. A cell is marked blocked
// only when its kind would otherwise be passable.
func CellsOf(g Grid) []Cell {
	if m, ok := g.(*Map); ok {
		return m.Cells()
	}
	out := make([]Cell, 0, g.Width()*g.Height())
	for y := range g.Height() {
		for x := range g.Width() {
			k := g.KindAt(x, y)
			out = append(out, PackCell(k, k.Passable() && !g.IsNavigable(x, y)))
		}
	}
	return out
}
