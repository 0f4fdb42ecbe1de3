package main

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"runtime"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/gridnav/internal/nav"
)

const (
	progressEvery = 100
	replanEvery   = 8 // ticks between path refreshes while a route is still valid
)

// Simulation moves agents across the navigation graph, one cell per tick.
// Each agent owns a PathFinder, so agents search concurrently and keep
// independent path caches.
type Simulation struct {
	nav    *nav.Context
	agents []*agent
	tick   int

	walkable   []nav.Coord
	walkableOf *nav.Graph
}

// Summary aggregates agent and path finder counters over a run.
type Summary struct {
	Ticks    int
	Agents   int
	Moves    int
	Arrivals int
	InSight  int // plans that walked straight at a visible goal
	Stuck    int // goals abandoned because no path was found
	Respawns int

	Finder nav.Stats
}

type agentStats struct {
	Moves, Arrivals, InSight, Stuck, Respawns int
}

type agent struct {
	id      int
	pos     nav.Coord
	goal    nav.Coord
	hasGoal bool
	placed  bool

	route     []nav.Coord // remaining waypoints, pos excluded
	sincePlan int

	finder *nav.PathFinder
	rng    *rand.Rand
	stats  agentStats
}

// NewSimulation creates n agents over navCtx. Agent randomness is derived
// from seed and the agent id, so runs are reproducible.
func NewSimulation(navCtx *nav.Context, n int, seed uint64, h nav.Heuristic) *Simulation {
	s := &Simulation{
		nav:    navCtx,
		agents: make([]*agent, n),
	}
	for i := range n {
		s.agents[i] = &agent{
			id:     i,
			finder: nav.NewPathFinder(navCtx, nav.WithHeuristic(h)),
			rng:    rand.New(rand.NewPCG(seed, uint64(i))),
		}
	}
	return s
}

// Run steps the simulation every interval until ticks have elapsed or ctx
// is cancelled. ticks == 0 runs until cancellation.
func (s *Simulation) Run(ctx context.Context, ticks int, interval time.Duration) error {
	var tc <-chan time.Time
	if interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tc = ticker.C
	}
	slog.Info("simulation started", "agents", len(s.agents), "ticks", ticks, "interval", interval)

	for ticks == 0 || s.tick < ticks {
		if tc != nil {
			select {
			case <-ctx.Done():
				return nil
			case <-tc:
			}
		} else if ctx.Err() != nil {
			return nil
		}

		if err := s.Step(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if s.tick%progressEvery == 0 {
			slog.Info("simulation progress", "tick", s.tick, "generation", s.nav.Generation())
		}
	}
	return nil
}

// Step advances every agent by one tick, in parallel.
func (s *Simulation) Step(ctx context.Context) error {
	g := s.nav.Graph()
	if g != s.walkableOf {
		s.refreshWalkable(g)
	}
	if len(s.walkable) == 0 {
		s.tick++
		return nil
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for _, a := range s.agents {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			a.step(g, s.walkable)
			return nil
		})
	}
	err := eg.Wait()
	s.tick++
	return err
}

func (s *Simulation) refreshWalkable(g *nav.Graph) {
	s.walkable = s.walkable[:0]
	for _, n := range g.Nodes() {
		if n.Navigable {
			s.walkable = append(s.walkable, n.Coord)
		}
	}
	s.walkableOf = g
	slog.Debug("walkable cells refreshed", "count", len(s.walkable))
}

// Positions returns the current agent coordinates in id order.
func (s *Simulation) Positions() []nav.Coord {
	out := make([]nav.Coord, len(s.agents))
	for i, a := range s.agents {
		out[i] = a.pos
	}
	return out
}

// Summary returns the counters accumulated so far.
func (s *Simulation) Summary() Summary {
	sum := Summary{Ticks: s.tick, Agents: len(s.agents)}
	for _, a := range s.agents {
		sum.Moves += a.stats.Moves
		sum.Arrivals += a.stats.Arrivals
		sum.InSight += a.stats.InSight
		sum.Stuck += a.stats.Stuck
		sum.Respawns += a.stats.Respawns

		fs := a.finder.Stats()
		sum.Finder.Searches += fs.Searches
		sum.Finder.CacheHits += fs.CacheHits
		sum.Finder.Failures += fs.Failures
		sum.Finder.Rejected += fs.Rejected
	}
	return sum
}

func (a *agent) pick(walkable []nav.Coord) nav.Coord {
	return walkable[a.rng.IntN(len(walkable))]
}

// step places the agent if needed, keeps or picks a goal, replans when the
// route is used up, blocked or old, and moves one cell.
func (a *agent) step(g *nav.Graph, walkable []nav.Coord) {
	if n := g.Node(a.pos); !a.placed || n == nil || !n.Navigable {
		if a.placed {
			a.stats.Respawns++
		}
		a.pos = a.pick(walkable)
		a.placed = true
		a.hasGoal = false
	}
	if !a.hasGoal {
		a.goal = a.pick(walkable)
		a.hasGoal = true
		a.route = nil
	}
	if a.goal == a.pos {
		a.arrive()
		return
	}

	a.sincePlan++
	if len(a.route) == 0 || a.sincePlan > replanEvery || !g.HasLineOfSight(a.pos, a.route[0]) {
		if !a.plan(g) {
			a.stats.Stuck++
			a.hasGoal = false
			return
		}
	}

	for len(a.route) > 0 && a.route[0] == a.pos {
		a.route = a.route[1:]
	}
	if len(a.route) == 0 {
		return
	}

	if !a.advance(g, a.route[0]) {
		a.route = nil
		return
	}
	if a.pos == a.route[0] {
		a.route = a.route[1:]
	}
	if a.pos == a.goal {
		a.arrive()
	}
}

// plan walks straight at a visible goal, otherwise asks the path finder.
// A replan that returns the cached path resumes at the waypoint the agent
// was already heading for.
func (a *agent) plan(g *nav.Graph) bool {
	a.sincePlan = 0
	if g.HasLineOfSight(a.pos, a.goal) {
		a.stats.InSight++
		a.route = []nav.Coord{a.goal}
		return true
	}

	p := a.finder.FindPath(a.pos, a.goal)
	if p.Empty() {
		return false
	}
	a.route = resume(p.Coords(), a.route, a.pos)
	return len(a.route) > 0
}

func (a *agent) arrive() {
	a.stats.Arrivals++
	a.hasGoal = false
	a.route = nil
}

// advance moves one cell along the line towards target.
func (a *agent) advance(g *nav.Graph, target nav.Coord) bool {
	first := true
	for n := range g.CellsBetween(a.pos, target) {
		if first {
			first = false
			continue
		}
		if !n.Navigable {
			return false
		}
		a.pos = n.Coord
		a.stats.Moves++
		return true
	}
	return false
}

// resume picks the part of a fresh route the agent should follow: from the
// waypoint it was already heading for when that is still on the route,
// otherwise everything after pos.
func resume(route, old []nav.Coord, pos nav.Coord) []nav.Coord {
	if len(old) > 0 {
		if i := slices.Index(route, old[0]); i >= 0 {
			return route[i:]
		}
	}
	if len(route) > 0 && route[0] == pos {
		return route[1:]
	}
	return route
}
