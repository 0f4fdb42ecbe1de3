package nav

import (
	"container/heap"
	"sync"
)

// searchState is the per-search side table for A*. Entries are indexed by
// Node.index, so nothing is written to the shared nodes and concurrent
// searches over one Graph never interfere.
type searchState struct {
	g, h   []int
	parent []int32
	pos    []int32 // heap position, -1 when not open
	closed []bool

	dirty   []bool
	touched []int32

	open []int32 // binary heap ordered by f = g + h
}

var statePool = sync.Pool{
	New: func() any { return &searchState{} },
}

// acquireState returns a clean state sized for n nodes.
func acquireState(n int) *searchState {
	s := statePool.Get().(*searchState)
	if len(s.g) != n {
		s.g = make([]int, n)
		s.h = make([]int, n)
		s.parent = make([]int32, n)
		s.pos = make([]int32, n)
		s.closed = make([]bool, n)
		s.dirty = make([]bool, n)
		for i := range n {
			s.parent[i] = -1
			s.pos[i] = -1
		}
		s.touched = s.touched[:0]
	}
	return s
}

// release resets every entry the search touched and returns the state to the pool.
func (s *searchState) release() {
	for _, i := range s.touched {
		s.g[i] = 0
		s.h[i] = 0
		s.parent[i] = -1
		s.pos[i] = -1
		s.closed[i] = false
		s.dirty[i] = false
	}
	s.touched = s.touched[:0]
	s.open = s.open[:0]
	statePool.Put(s)
}

func (s *searchState) touch(i int32) {
	if !s.dirty[i] {
		s.dirty[i] = true
		s.touched = append(s.touched, i)
	}
}

func (s *searchState) f(i int32) int { return s.g[i] + s.h[i] }

func (s *searchState) isOpen(i int32) bool { return s.pos[i] >= 0 }

// heap.Interface over the open list. Ties on f prefer the lower h.
func (s *searchState) Len() int { return len(s.open) }

func (s *searchState) Less(i, j int) bool {
	a, b := s.open[i], s.open[j]
	fa, fb := s.f(a), s.f(b)
	if fa != fb {
		return fa < fb
	}
	return s.h[a] < s.h[b]
}

func (s *searchState) Swap(i, j int) {
	s.open[i], s.open[j] = s.open[j], s.open[i]
	s.pos[s.open[i]] = int32(i)
	s.pos[s.open[j]] = int32(j)
}

func (s *searchState) Push(x any) {
	n := x.(int32)
	s.pos[n] = int32(len(s.open))
	s.open = append(s.open, n)
}

func (s *searchState) Pop() any {
	old := s.open
	last := len(old) - 1
	n := old[last]
	s.open = old[:last]
	s.pos[n] = -1
	return n
}

// astar searches from start to goal and returns the start-first node
// sequence and g(goal), or ok=false when the open set empties first.
//
// The relaxation rule is non-canonical: a neighbour's parent
// and costs are overwritten whenever g'+h' <= f(m), or when m is not open,
// so equal-cost alternatives replace earlier ones.
func astar(g *Graph, start, goal *Node, h Heuristic) (path []*Node, cost int, ok bool) {
	s := acquireState(len(g.nodes))
	defer s.release()

	si := start.index
	s.touch(si)
	s.g[si] = 0
	s.h[si] = h(start.Coord, goal.Coord)
	heap.Push(s, si)

	for s.Len() > 0 {
		cur := heap.Pop(s).(int32)
		s.closed[cur] = true

		if cur == goal.index {
			return s.reconstruct(g, cur), s.g[cur], true
		}

		for _, e := range g.nodes[cur].edges {
			m := e.To.index
			if s.closed[m] {
				continue
			}

			gNew := s.g[cur] + e.Cost
			hNew := h(e.To.Coord, goal.Coord)
			open := s.isOpen(m)

			if gNew+hNew <= s.f(m) || !open {
				s.touch(m)
				s.parent[m] = cur
				s.g[m] = gNew
				s.h[m] = hNew
				if open {
					heap.Fix(s, int(s.pos[m]))
				}
			}
			if !open {
				heap.Push(s, m)
			}
		}
	}

	return nil, 0, false
}

// reconstruct walks parent links from end back to the start, then reverses.
func (s *searchState) reconstruct(g *Graph, end int32) []*Node {
	path := make([]*Node, 0, 32)
	for i := end; i >= 0; i = s.parent[i] {
		path = append(path, &g.nodes[i])
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
