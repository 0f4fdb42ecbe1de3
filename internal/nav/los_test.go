package nav

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellsBetweenSameCell(t *testing.T) {
	g := Build(grassGrid(t, 5, 5))

	assert.Equal(t, []Coord{C(2, 3)}, coordsOf(g.CellsBetween(C(2, 3), C(2, 3))))
}

func TestCellsBetweenIncludesEndpoints(t *testing.T) {
	g := Build(grassGrid(t, 8, 8))

	tests := []struct {
		name string
		a, b Coord
		want []Coord
	}{
		{"horizontal", C(1, 2), C(4, 2), []Coord{C(1, 2), C(2, 2), C(3, 2), C(4, 2)}},
		{"vertical up", C(3, 4), C(3, 1), []Coord{C(3, 4), C(3, 3), C(3, 2), C(3, 1)}},
		{"diagonal", C(0, 0), C(3, 3), []Coord{C(0, 0), C(1, 1), C(2, 2), C(3, 3)}},
		{"shallow", C(0, 0), C(3, 1), []Coord{C(0, 0), C(1, 0), C(2, 1), C(3, 1)}},
		{"shallow reversed", C(3, 1), C(0, 0), []Coord{C(3, 1), C(2, 1), C(1, 0), C(0, 0)}},
		{"steep negative", C(1, 5), C(2, 1), []Coord{C(1, 5), C(1, 4), C(2, 3), C(2, 2), C(2, 1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, coordsOf(g.CellsBetween(tt.a, tt.b)))
		})
	}
}

func TestCellsBetweenSymmetric(t *testing.T) {
	g := Build(grassGrid(t, 7, 6))

	for _, a := range g.Nodes() {
		for _, b := range g.Nodes() {
			fwd := coordsOf(g.CellsBetween(a.Coord, b.Coord))
			back := coordsOf(g.CellsBetween(b.Coord, a.Coord))
			slices.Reverse(back)
			require.Equal(t, fwd, back, "%v -> %v", a.Coord, b.Coord)
			require.Equal(t, max(absInt(b.Coord.X-a.Coord.X), absInt(b.Coord.Y-a.Coord.Y))+1, len(fwd))
		}
	}
}

func TestCellsBetweenIsContiguous(t *testing.T) {
	g := Build(grassGrid(t, 9, 9))

	for _, b := range g.Nodes() {
		cells := coordsOf(g.CellsBetween(C(4, 4), b.Coord))
		for i := 1; i < len(cells); i++ {
			step := cells[i].Sub(cells[i-1])
			assert.LessOrEqual(t, absInt(step.X), 1)
			assert.LessOrEqual(t, absInt(step.Y), 1)
			assert.NotEqual(t, Coord{}, step)
		}
	}
}

func TestCellsBetweenRestartableAndLazy(t *testing.T) {
	g := Build(grassGrid(t, 10, 3))
	seq := g.CellsBetween(C(0, 1), C(9, 1))

	first := coordsOf(seq)
	second := coordsOf(seq)
	assert.Equal(t, first, second)
	assert.Len(t, first, 10)

	count := 0
	for range seq {
		count++
		if count == 3 {
			break
		}
	}
	assert.Equal(t, 3, count)
}

func TestCellsBetweenOutOfRange(t *testing.T) {
	g := Build(grassGrid(t, 3, 3))

	assert.Empty(t, coordsOf(g.CellsBetween(C(0, 0), C(5, 5))))
	assert.Empty(t, coordsOf(g.CellsBetween(C(-1, 0), C(1, 1))))
}

func TestHasLineOfSight(t *testing.T) {
	g := Build(gridFromRows(t,
		".....",
		"..T..",
		".....",
		"~~~~~",
		".....",
	))

	tests := []struct {
		name string
		a, b Coord
		want bool
	}{
		{"same cell", C(0, 0), C(0, 0), true},
		{"clear row", C(0, 0), C(4, 0), true},
		{"blocked by tree", C(0, 1), C(4, 1), false},
		{"diagonal through tree", C(1, 0), C(3, 2), false},
		{"passes beside tree", C(0, 2), C(4, 2), true},
		{"water is navigable", C(0, 4), C(4, 2), true},
		{"ends on tree", C(2, 4), C(2, 1), false},
		{"starts on tree", C(2, 1), C(2, 4), false},
		{"out of range", C(0, 0), C(5, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.HasLineOfSight(tt.a, tt.b))
		})
	}
}

func TestHasLineOfSightSameNonNavigableCell(t *testing.T) {
	g := Build(gridFromRows(t, ".T."))

	assert.True(t, g.HasLineOfSight(C(1, 0), C(1, 0)), "a cell always sees itself")
	assert.False(t, g.HasLineOfSight(C(0, 0), C(1, 0)), "non-navigable endpoint blocks")
}

func TestHasLineOfSightSymmetric(t *testing.T) {
	g := Build(gridFromRows(t,
		"..T...",
		"....#.",
		".T....",
		"...~..",
		"#....T",
		"..T...",
	))

	for _, a := range g.Nodes() {
		for _, b := range g.Nodes() {
			require.Equal(t,
				g.HasLineOfSight(a.Coord, b.Coord),
				g.HasLineOfSight(b.Coord, a.Coord),
				"%v <-> %v", a.Coord, b.Coord)
		}
	}
}

func TestFirstBlocked(t *testing.T) {
	g := Build(gridFromRows(t, "..T.T"))

	n := g.FirstBlocked(C(0, 0), C(4, 0))
	require.NotNil(t, n)
	assert.Equal(t, C(2, 0), n.Coord)

	n = g.FirstBlocked(C(4, 0), C(0, 0))
	require.NotNil(t, n)
	assert.Equal(t, C(4, 0), n.Coord)

	assert.Nil(t, g.FirstBlocked(C(0, 0), C(1, 0)))
}

func TestLineIteratorLen(t *testing.T) {
	it := newLineIterator(C(0, 0), C(6, 2))
	assert.Equal(t, 7, it.Len())

	n := 0
	for it.Next() {
		n++
	}
	assert.Equal(t, 7, n)
	assert.False(t, it.Next(), "exhausted iterator stays exhausted")
}

func BenchmarkHasLineOfSight(b *testing.B) {
	g := Build(grassGrid(b, 128, 128))

	b.ResetTimer()
	for range b.N {
		g.HasLineOfSight(C(0, 0), C(127, 93))
	}
}
