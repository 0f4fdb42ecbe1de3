package nav

// Path is an ordered list of waypoints from start to goal.
type Path struct {
	Nodes []*Node
	// Cost is g(goal) of the search that produced the path, or NoCost when
	// the path came from the cache or no search ran.
	Cost int
	// Cached is true when the path is a suffix of a previously found path.
	Cached bool
}

// Empty returns true when no path was found.
func (p Path) Empty() bool { return len(p.Nodes) == 0 }

// Len returns the number of waypoints.
func (p Path) Len() int { return len(p.Nodes) }

// Start returns the first waypoint, or nil for an empty path.
func (p Path) Start() *Node {
	if len(p.Nodes) == 0 {
		return nil
	}
	return p.Nodes[0]
}

// Goal returns the last waypoint, or nil for an empty path.
func (p Path) Goal() *Node {
	if len(p.Nodes) == 0 {
		return nil
	}
	return p.Nodes[len(p.Nodes)-1]
}

// Coords returns the waypoint coordinates.
func (p Path) Coords() []Coord {
	out := make([]Coord, len(p.Nodes))
	for i, n := range p.Nodes {
		out[i] = n.Coord
	}
	return out
}

func noPath() Path {
	return Path{Cost: NoCost}
}
