package nav

import (
	"fmt"
	"math"
	"strings"
)

// Heuristic estimates the remaining cost from a to b on the edge-cost scale.
type Heuristic func(a, b Coord) int

// Euclidean is the straight-line distance ×10, truncated. Default for A*.
func Euclidean(a, b Coord) int {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	return int(math.Sqrt(dx*dx+dy*dy) * HeuristicScale)
}

// Chebyshev is the king-move distance ×10.
func Chebyshev(a, b Coord) int {
	return max(absInt(b.X-a.X), absInt(b.Y-a.Y)) * HeuristicScale
}

// Manhattan is the taxicab distance ×10.
func Manhattan(a, b Coord) int {
	return (absInt(b.X-a.X) + absInt(b.Y-a.Y)) * HeuristicScale
}

// ParseHeuristic resolves a heuristic by name. Empty selects Euclidean.
func ParseHeuristic(name string) (Heuristic, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "euclidean":
		return Euclidean, nil
	case "chebyshev":
		return Chebyshev, nil
	case "manhattan":
		return Manhattan, nil
	default:
		return nil, fmt.Errorf("unknown heuristic %q", name)
	}
}
