package nav

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/gridnav/internal/terrain"
)

func TestBuildNodes(t *testing.T) {
	g := Build(gridFromRows(t,
		"..~",
		",T.",
	))

	assert.Equal(t, 3, g.Width())
	assert.Equal(t, 2, g.Height())
	assert.Equal(t, 6, g.Len())

	n := g.Node(C(2, 0))
	require.NotNil(t, n)
	assert.Equal(t, C(2, 0), n.Coord)
	assert.Equal(t, terrain.Water, n.Kind)
	assert.True(t, n.Navigable)

	tree := g.Node(C(1, 1))
	require.NotNil(t, tree)
	assert.Equal(t, terrain.Tree, tree.Kind)
	assert.False(t, tree.Navigable)
}

func TestBuildEdgeCounts(t *testing.T) {
	g := Build(grassGrid(t, 3, 3))

	tests := []struct {
		name string
		at   Coord
		want int
	}{
		{"centre", C(1, 1), 8},
		{"corner", C(0, 0), 3},
		{"edge", C(1, 0), 5},
		{"far corner", C(2, 2), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, g.Node(tt.at).Edges(), tt.want)
		})
	}
}

func TestBuildEdgeCosts(t *testing.T) {
	g := Build(gridFromRows(t,
		"...",
		".~,",
		"...",
	))

	tests := []struct {
		name     string
		from, to Coord
		want     int
	}{
		{"grass orthogonal", C(0, 0), C(1, 0), (1 + 1) * TravelOrthogonal},
		{"grass to water diagonal", C(0, 0), C(1, 1), (1 + 4) * TravelDiagonal},
		{"grass diagonal", C(1, 0), C(0, 1), (1 + 1) * TravelDiagonal},
		{"grass to water orthogonal", C(1, 0), C(1, 1), (1 + 4) * TravelOrthogonal},
		{"water to mud orthogonal", C(1, 1), C(2, 1), (4 + 2) * TravelOrthogonal},
		{"mud to grass diagonal", C(2, 1), C(1, 2), (2 + 1) * TravelDiagonal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to := g.Node(tt.from), g.Node(tt.to)
			cost, ok := from.EdgeCost(to)
			require.True(t, ok)
			assert.Equal(t, tt.want, cost)

			back, ok := to.EdgeCost(from)
			require.True(t, ok)
			assert.Equal(t, cost, back, "edge cost must be symmetric")
		})
	}
}

func TestBuildSkipsNonNavigable(t *testing.T) {
	g := Build(gridFromRows(t,
		"...",
		".T.",
		"...",
	))

	tree := g.Node(C(1, 1))
	assert.Empty(t, tree.Edges(), "non-navigable node has no outgoing edges")

	corner := g.Node(C(0, 0))
	assert.Len(t, corner.Edges(), 2)
	for _, e := range corner.Edges() {
		assert.NotEqual(t, tree, e.To)
	}

	_, ok := corner.EdgeCost(tree)
	assert.False(t, ok)
}

func TestBuildBlockedOverride(t *testing.T) {
	m := grassGrid(t, 2, 1)
	m.SetBlocked(1, 0, true)

	g := Build(m)
	assert.False(t, g.Node(C(1, 0)).Navigable)
	assert.Equal(t, terrain.Grass, g.Node(C(1, 0)).Kind)
	assert.Empty(t, g.Node(C(0, 0)).Edges())
}

func TestNodeOutOfRange(t *testing.T) {
	g := Build(grassGrid(t, 4, 4))

	for _, c := range []Coord{C(-1, 0), C(0, -1), C(4, 0), C(0, 4), C(100, 100)} {
		assert.Nil(t, g.Node(c), "coord %v", c)
		assert.False(t, g.Contains(c), "coord %v", c)
		assert.Nil(t, g.NodeAt(c.X, c.Y), "coord %v", c)
	}
	assert.NotNil(t, g.Node(C(3, 3)))
	assert.Same(t, g.Node(C(2, 1)), g.NodeAt(2, 1))
}

func TestNodesCopy(t *testing.T) {
	g := Build(grassGrid(t, 3, 2))

	nodes := g.Nodes()
	require.Len(t, nodes, 6)
	assert.Equal(t, C(0, 0), nodes[0].Coord)
	assert.Equal(t, C(2, 1), nodes[5].Coord)

	nodes[0] = nil
	assert.NotNil(t, g.Nodes()[0], "returned slice must be a copy")
}

func TestContextBuildIsIdempotent(t *testing.T) {
	c := NewContext(grassGrid(t, 4, 4))
	assert.False(t, c.Built())

	g1 := c.Graph()
	g2 := c.Graph()
	assert.Same(t, g1, g2)
	assert.True(t, c.Built())
}

func TestContextInvalidate(t *testing.T) {
	c := NewContext(grassGrid(t, 4, 4))
	g1 := c.Graph()
	gen := c.Generation()

	c.Invalidate()
	assert.False(t, c.Built())
	assert.Greater(t, c.Generation(), gen)

	g2 := c.Graph()
	assert.NotSame(t, g1, g2)
}

func TestContextRebind(t *testing.T) {
	m := grassGrid(t, 4, 4)
	c := NewContext(m)
	g1 := c.Graph()

	assert.False(t, c.Rebind(m.Clone()), "identical content keeps the graph")
	assert.Same(t, g1, c.Graph())

	changed := m.Clone()
	changed.Set(2, 2, terrain.Tree)
	assert.True(t, c.Rebind(changed))
	assert.Same(t, changed, c.Grid())

	g2 := c.Graph()
	assert.NotSame(t, g1, g2)
	assert.False(t, g2.Node(C(2, 2)).Navigable)
}

func TestContextStaleAfterInPlaceEdit(t *testing.T) {
	m := grassGrid(t, 4, 4)
	c := NewContext(m)
	c.Graph()
	assert.False(t, c.Stale())

	m.Set(1, 1, terrain.Rock)
	assert.True(t, c.Stale())

	assert.True(t, c.Refresh())
	assert.False(t, c.Stale())
	assert.False(t, c.Node(C(1, 1)).Navigable)
}

func TestContextConcurrentBuild(t *testing.T) {
	c := NewContext(grassGrid(t, 64, 64))

	const workers = 16
	graphs := make([]*Graph, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			graphs[i] = c.Graph()
		}()
	}
	wg.Wait()

	for _, g := range graphs[1:] {
		assert.Same(t, graphs[0], g)
	}
}

func BenchmarkBuild(b *testing.B) {
	m := gridFromRows(b,
		"....~~~~....TTTT",
		"....~~~~....TTTT",
		",,,,....~~~~....",
		",,,,....~~~~....",
		"TTTT,,,,....~~~~",
		"TTTT,,,,....~~~~",
		"....TTTT,,,,....",
		"....TTTT,,,,....",
	)

	b.ResetTimer()
	for range b.N {
		_ = Build(m)
	}
}

// brokenGrid reports dimensions no real grid has.
type brokenGrid struct{ w, h int }

func (b brokenGrid) Width() int                   { return b.w }
func (b brokenGrid) Height() int                  { return b.h }
func (b brokenGrid) IsNavigable(x, y int) bool    { return true }
func (b brokenGrid) KindAt(x, y int) terrain.Kind { return terrain.Grass }

func TestContextNegativeDimensions(t *testing.T) {
	var c *Context
	require.NotPanics(t, func() { c = NewContext(brokenGrid{w: -1, h: 4}) })

	g := c.Graph()
	assert.Zero(t, g.Len())
	assert.Nil(t, c.Node(C(0, 0)))
	assert.False(t, c.HasLineOfSight(C(0, 0), C(0, 1)))
	assert.True(t, NewPathFinder(c).FindPath(C(0, 0), C(0, 1)).Empty())
}
