package nav

// Travel costs between adjacent cells.
// 14/10 approximates sqrt(2) while keeping every edge cost integral.
const (
	TravelOrthogonal = 10
	TravelDiagonal   = 14
)

// HeuristicScale brings grid distances onto the edge-cost scale.
const HeuristicScale = 10

// NoIsland is the island id of a node that island detection has not reached.
const NoIsland = 0

// NoCost is the Path.Cost reported when no fresh search produced the path.
const NoCost = -1

// neighborOffsets lists the 8 compass directions, row by row from the
// top-left; edges are stored in this order.
var neighborOffsets = [8]struct{ dx, dy int }{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}
