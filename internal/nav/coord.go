package nav

import "fmt"

// Coord is an integer grid coordinate.
type Coord struct {
	X, Y int
}

// C is shorthand for Coord{X: x, Y: y}.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Sub returns the vector c - o.
func (c Coord) Sub(o Coord) Coord {
	return Coord{X: c.X - o.X, Y: c.Y - o.Y}
}

// Sign clamps each axis of c to -1, 0 or 1.
func (c Coord) Sign() Coord {
	return Coord{X: sign(c.X), Y: sign(c.Y)}
}

// travelCost returns the step cost between two adjacent coordinates.
func travelCost(a, b Coord) int {
	if a.X != b.X && a.Y != b.Y {
		return TravelDiagonal
	}
	return TravelOrthogonal
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
