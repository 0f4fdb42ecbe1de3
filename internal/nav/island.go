package nav

import "github.com/udisondev/gridnav/internal/terrain"

// Island is a maximal 8-connected region of cells sharing one terrain kind.
// Islands partition every cell of the grid, navigable or not.
type Island struct {
	ID    int
	Kind  terrain.Kind
	Nodes []*Node
}

// Size returns the number of member cells.
func (is *Island) Size() int {
	return len(is.Nodes)
}

// Centroid returns the centre of gravity of the member cells.
func (is *Island) Centroid() (x, y float64) {
	if len(is.Nodes) == 0 {
		return 0, 0
	}
	var sx, sy int
	for _, n := range is.Nodes {
		sx += n.Coord.X
		sy += n.Coord.Y
	}
	size := float64(len(is.Nodes))
	return float64(sx) / size, float64(sy) / size
}

// Contains returns true if n belongs to the island.
func (is *Island) Contains(n *Node) bool {
	return n != nil && n.island == is.ID
}

// detectIslands flood-fills the full 8-neighbourhood (not filtered by
// navigability), assigning sequential ids from 1 in row-major discovery order.
func (g *Graph) detectIslands() {
	g.islands = g.islands[:0]
	clear(g.byKind)

	queue := make([]int32, 0, 64)
	for i := range g.nodes {
		seed := &g.nodes[i]
		if seed.island != NoIsland {
			continue
		}

		is := &Island{ID: len(g.islands) + 1, Kind: seed.Kind}
		seed.island = is.ID
		queue = append(queue[:0], seed.index)

		for head := 0; head < len(queue); head++ {
			n := &g.nodes[queue[head]]
			is.Nodes = append(is.Nodes, n)

			for _, d := range neighborOffsets {
				m := g.nodeAt(n.Coord.X+d.dx, n.Coord.Y+d.dy)
				if m == nil || m.island != NoIsland || m.Kind != is.Kind {
					continue
				}
				m.island = is.ID
				queue = append(queue, m.index)
			}
		}

		g.islands = append(g.islands, is)
		g.byKind[is.Kind] = append(g.byKind[is.Kind], is)
	}
}
