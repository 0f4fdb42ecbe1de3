package nav

import (
	"iter"
	"log/slog"
)

// CellsBetween yields the nodes on the rasterized segment from a to b,
// both endpoints included, in a→b order. The sequence is lazy and can be
// ranged over any number of times. Out-of-range endpoints yield nothing.
func (g *Graph) CellsBetween(a, b Coord) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		if !g.Contains(a) || !g.Contains(b) {
			return
		}
		it := newLineIterator(a, b)
		for it.Next() {
			if !yield(g.nodeAt(it.X(), it.Y())) {
				return
			}
		}
	}
}

// HasLineOfSight reports whether every cell on the segment between a and b,
// endpoints included, is navigable. A cell always sees itself.
// Out-of-range coordinates never have line of sight.
func (g *Graph) HasLineOfSight(a, b Coord) bool {
	if !g.Contains(a) || !g.Contains(b) {
		if IsDebugEnabled() {
			slog.Debug("line of sight out of range", "from", a, "to", b)
		}
		return false
	}
	if a == b {
		return true
	}
	for n := range g.CellsBetween(a, b) {
		if !n.Navigable {
			return false
		}
	}
	return true
}

// FirstBlocked returns the first non-navigable cell on the segment from a
// to b, or nil if the line is clear.
func (g *Graph) FirstBlocked(a, b Coord) *Node {
	for n := range g.CellsBetween(a, b) {
		if !n.Navigable {
			return n
		}
	}
	return nil
}
