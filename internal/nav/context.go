package nav

import (
	"iter"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/udisondev/gridnav/internal/terrain"
)

// Context owns the navigation graph of one bound terrain grid.
// It is created once per level and shared by reference with every
// PathFinder; the graph is built lazily on first use.
//
// Thread-safe: the graph is immutable once published, and concurrent first
// callers share a single build.
type Context struct {
	mu          sync.RWMutex
	grid        terrain.Grid
	fingerprint [32]byte
	graph       *Graph
	generation  uint64

	builds singleflight.Group
}

// NewContext binds a context to grid. No graph is built yet.
func NewContext(grid terrain.Grid) *Context {
	return &Context{
		grid:        grid,
		fingerprint: terrain.Fingerprint(grid),
	}
}

// Grid returns the currently bound terrain grid.
func (c *Context) Grid() terrain.Grid {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.grid
}

// Built returns true if a graph is currently built.
func (c *Context) Built() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.graph != nil
}

// Generation counts invalidations. Values from before an invalidation never
// match values after it.
func (c *Context) Generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generation
}

// Graph returns the graph for the bound grid, building it if necessary.
// Repeated calls return the same graph until Invalidate or Rebind.
func (c *Context) Graph() *Graph {
	c.mu.RLock()
	g := c.graph
	c.mu.RUnlock()
	if g != nil {
		return g
	}

	v, _, _ := c.builds.Do("graph", func() (any, error) {
		c.mu.RLock()
		if c.graph != nil {
			g := c.graph
			c.mu.RUnlock()
			return g, nil
		}
		grid, gen := c.grid, c.generation
		c.mu.RUnlock()

		start := time.Now()
		g := Build(grid)

		c.mu.Lock()
		if c.generation == gen {
			c.graph = g
		}
		c.mu.Unlock()

		slog.Info("navigation graph built",
			"width", g.Width(),
			"height", g.Height(),
			"islands", len(g.islands),
			"took", time.Since(start))
		return g, nil
	})
	return v.(*Graph)
}

// Invalidate discards the graph and its islands. The next query rebuilds.
// Must be called by the owner whenever the bound terrain changes.
func (c *Context) Invalidate() {
	c.mu.Lock()
	c.invalidateLocked()
	c.mu.Unlock()
	slog.Debug("navigation graph invalidated")
}

func (c *Context) invalidateLocked() {
	c.graph = nil
	c.generation++
	c.builds.Forget("graph")
}

// Rebind binds the context to grid (a reloaded or new level). The graph is
// invalidated only when the new grid's content differs from the old one.
// Returns true if the graph was invalidated.
func (c *Context) Rebind(grid terrain.Grid) bool {
	sum := terrain.Fingerprint(grid)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.grid = grid
	if sum == c.fingerprint {
		return false
	}
	c.fingerprint = sum
	c.invalidateLocked()
	slog.Info("navigation grid rebound", "width", grid.Width(), "height", grid.Height())
	return true
}

// Stale returns true if the bound grid was mutated in place since it was bound.
func (c *Context) Stale() bool {
	grid := c.Grid()
	sum := terrain.Fingerprint(grid)

	c.mu.RLock()
	defer c.mu.RUnlock()
	return sum != c.fingerprint
}

// Refresh invalidates the graph if the bound grid was mutated in place.
// Returns true if it did.
func (c *Context) Refresh() bool {
	return c.Rebind(c.Grid())
}

// Node returns the node at p, or nil when p is out of range.
func (c *Context) Node(p Coord) *Node {
	return c.Graph().Node(p)
}

// Islands returns the islands of the given terrain kind.
func (c *Context) Islands(kind terrain.Kind) []*Island {
	return c.Graph().Islands(kind)
}

// HasLineOfSight reports whether the straight segment a–b is fully navigable.
func (c *Context) HasLineOfSight(a, b Coord) bool {
	return c.Graph().HasLineOfSight(a, b)
}

// CellsBetween yields the nodes on the segment from a to b.
func (c *Context) CellsBetween(a, b Coord) iter.Seq[*Node] {
	return c.Graph().CellsBetween(a, b)
}
