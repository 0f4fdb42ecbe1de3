package nav

import (
	"log/slog"
	"slices"

	"github.com/udisondev/gridnav/internal/terrain"
)

// Edge links a node to one navigable neighbour.
type Edge struct {
	To   *Node
	Cost int
}

// Node is one grid cell in the navigation graph.
// Nodes are owned by their Graph and are read-only after Build.
type Node struct {
	Coord     Coord
	Kind      terrain.Kind
	Navigable bool

	edges  []Edge
	island int
	index  int32 // position in Graph.nodes
}

// Edges returns the node's outgoing links (empty for non-navigable nodes).
func (n *Node) Edges() []Edge {
	return n.edges
}

// IslandID returns the id of the island the node belongs to, or NoIsland.
func (n *Node) IslandID() int {
	return n.island
}

// EdgeCost returns the cost of moving from n to m, or false if they are not linked.
func (n *Node) EdgeCost(m *Node) (int, bool) {
	for _, e := range n.edges {
		if e.To == m {
			return e.Cost, true
		}
	}
	return 0, false
}

// Graph is the per-cell navigation graph of one terrain grid.
// Immutable once built; safe for concurrent readers.
type Graph struct {
	width, height int
	nodes         []Node

	islands []*Island
	byKind  map[terrain.Kind][]*Island
}

// Build creates the graph for grid: one node per cell, 8-neighbour edges
// between navigable cells, then island detection.
func Build(grid terrain.Grid) *Graph {
	w, h := grid.Width(), grid.Height()
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}

	g := &Graph{
		width:  w,
		height: h,
		nodes:  make([]Node, w*h),
		byKind: make(map[terrain.Kind][]*Island),
	}

	for y := range h {
		for x := range w {
			i := y*w + x
			g.nodes[i] = Node{
				Coord:     Coord{X: x, Y: y},
				Kind:      grid.KindAt(x, y),
				Navigable: grid.IsNavigable(x, y),
				index:     int32(i),
			}
		}
	}

	g.linkNeighbors()
	g.detectIslands()
	return g
}

// linkNeighbors establishes edges. All edge slices share one backing array.
func (g *Graph) linkNeighbors() {
	count := 0
	for i := range g.nodes {
		n := &g.nodes[i]
		if !n.Navigable {
			continue
		}
		for _, d := range neighborOffsets {
			if m := g.nodeAt(n.Coord.X+d.dx, n.Coord.Y+d.dy); m != nil && m.Navigable {
				count++
			}
		}
	}

	backing := make([]Edge, 0, count)
	for i := range g.nodes {
		n := &g.nodes[i]
		if !n.Navigable {
			continue
		}
		start := len(backing)
		for _, d := range neighborOffsets {
			m := g.nodeAt(n.Coord.X+d.dx, n.Coord.Y+d.dy)
			if m == nil || !m.Navigable {
				continue
			}
			backing = append(backing, Edge{To: m, Cost: edgeCost(n, m)})
		}
		n.edges = backing[start:len(backing):len(backing)]
	}
}

// edgeCost is (weight(a)+weight(b)) * travel(a,b).
func edgeCost(a, b *Node) int {
	return (a.Kind.Weight() + b.Kind.Weight()) * travelCost(a.Coord, b.Coord)
}

// Width returns the grid width the graph was built from.
func (g *Graph) Width() int { return g.width }

// Height returns the grid height the graph was built from.
func (g *Graph) Height() int { return g.height }

// Contains returns true if c lies inside the graph.
func (g *Graph) Contains(c Coord) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < g.width && c.Y < g.height
}

// Node returns the node at c, or nil when c is out of range.
func (g *Graph) Node(c Coord) *Node {
	n := g.nodeAt(c.X, c.Y)
	if n == nil && IsDebugEnabled() {
		slog.Debug("coordinate out of range", "coord", c, "width", g.width, "height", g.height)
	}
	return n
}

// Nodes returns all nodes in row-major order. The slice is a copy; the
// nodes are shared.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, len(g.nodes))
	for i := range g.nodes {
		out[i] = &g.nodes[i]
	}
	return out
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// NodeAt is Node for callers holding raw x, y. It never logs.
func (g *Graph) NodeAt(x, y int) *Node {
	return g.nodeAt(x, y)
}

func (g *Graph) nodeAt(x, y int) *Node {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return nil
	}
	return &g.nodes[y*g.width+x]
}

// Islands returns the islands of the given terrain kind in id order.
func (g *Graph) Islands(kind terrain.Kind) []*Island {
	return slices.Clone(g.byKind[kind])
}

// AllIslands returns every island in id order.
func (g *Graph) AllIslands() []*Island {
	return slices.Clone(g.islands)
}

// Island returns the island with the given id, or nil.
func (g *Graph) Island(id int) *Island {
	if id <= 0 || id > len(g.islands) {
		return nil
	}
	return g.islands[id-1]
}

// IslandOf returns the island containing c, or nil when c is out of range.
func (g *Graph) IslandOf(c Coord) *Island {
	n := g.Node(c)
	if n == nil {
		return nil
	}
	return g.Island(n.island)
}
