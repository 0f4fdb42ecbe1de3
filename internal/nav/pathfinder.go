package nav

import (
	"log/slog"
	"sync"
)

// PathFinder answers shortest-path queries over a Context's graph and keeps
// a single-slot cache of the last path it found.
//
// One PathFinder shared by every agent reproduces a single global cache; a
// PathFinder per agent gives each agent its own slot and lets agents search
// concurrently. Calls on one PathFinder are serialized.
type PathFinder struct {
	nav       *Context
	heuristic Heuristic

	mu    sync.Mutex
	cache pathCache
	stats Stats
}

// pathCache holds the last simplified path and the graph it was found on.
type pathCache struct {
	graph *Graph
	goal  *Node
	nodes []*Node
}

// Stats counts PathFinder outcomes.
type Stats struct {
	Searches  int // fresh A* searches that found a path
	CacheHits int
	Failures  int // searches that exhausted the open set
	Rejected  int // out of range or non-navigable endpoints
}

// Option configures a PathFinder.
type Option func(*PathFinder)

// WithHeuristic replaces the default Euclidean heuristic.
func WithHeuristic(h Heuristic) Option {
	return func(f *PathFinder) {
		if h != nil {
			f.heuristic = h
		}
	}
}

// NewPathFinder creates a PathFinder over nav.
func NewPathFinder(nav *Context, opts ...Option) *PathFinder {
	f := &PathFinder{
		nav:       nav,
		heuristic: Euclidean,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FindPath returns a path from start to goal, or an empty path when either
// endpoint is invalid or no route exists.
//
// Before searching, the cached path is reused when it ends at goal and start
// has line of sight to one of its waypoints: the suffix from the first such
// waypoint is returned. This trades optimality for skipping a search when an
// agent has only moved a little; the agent is expected to walk straight to
// the first returned waypoint.
func (f *PathFinder) FindPath(start, goal Coord) Path {
	g := f.nav.Graph()

	s, e := g.Node(start), g.Node(goal)
	if s == nil || e == nil || !s.Navigable || !e.Navigable {
		f.mu.Lock()
		f.stats.Rejected++
		f.mu.Unlock()
		if IsDebugEnabled() {
			slog.Debug("path request rejected", "start", start, "goal", goal,
				"start_ok", s != nil && s.Navigable, "goal_ok", e != nil && e.Navigable)
		}
		return noPath()
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if p, ok := f.fromCache(g, s, e); ok {
		f.stats.CacheHits++
		return p
	}

	nodes, cost, ok := astar(g, s, e, f.heuristic)
	if !ok {
		f.stats.Failures++
		slog.Warn("path search exhausted", "start", start, "goal", goal)
		return noPath()
	}
	f.stats.Searches++

	raw := len(nodes)
	nodes = Simplify(nodes)
	f.cache = pathCache{graph: g, goal: e, nodes: nodes}

	if IsDebugEnabled() {
		slog.Debug("path found", "start", start, "goal", goal,
			"cost", cost, "raw_len", raw, "len", len(nodes))
	}
	return Path{Nodes: append([]*Node(nil), nodes...), Cost: cost}
}

// fromCache returns the cached suffix usable from s, if any.
// Entries from a graph that has since been rebuilt are never reused.
func (f *PathFinder) fromCache(g *Graph, s, e *Node) (Path, bool) {
	c := f.cache
	if c.graph != g || c.goal != e || len(c.nodes) == 0 {
		return Path{}, false
	}
	for i, w := range c.nodes {
		if g.HasLineOfSight(s.Coord, w.Coord) {
			return Path{
				Nodes:  append([]*Node(nil), c.nodes[i:]...),
				Cost:   NoCost,
				Cached: true,
			}, true
		}
	}
	return Path{}, false
}

// ClearCache empties the cache slot.
func (f *PathFinder) ClearCache() {
	f.mu.Lock()
	f.cache = pathCache{}
	f.mu.Unlock()
}

// CachedGoal returns the goal of the cached path, if any.
func (f *PathFinder) CachedGoal() (Coord, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cache.goal == nil {
		return Coord{}, false
	}
	return f.cache.goal.Coord, true
}

// Stats returns a snapshot of the outcome counters.
func (f *PathFinder) Stats() Stats {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stats
}
