package nav

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/udisondev/gridnav/internal/terrain"
)

// gridFromRows builds a map from glyph rows (see terrain.Kind.Symbol); rows[0] is y = 0.
func gridFromRows(t testing.TB, rows ...string) *terrain.Map {
	t.Helper()
	require.NotEmpty(t, rows)

	m, err := terrain.NewMap(len(rows[0]), len(rows), terrain.Grass)
	require.NoError(t, err)
	for y, row := range rows {
		require.Len(t, row, len(rows[0]), "row %d", y)
		for x := range len(row) {
			k, err := terrain.KindFromSymbol(row[x])
			require.NoError(t, err)
			m.Set(x, y, k)
		}
	}
	return m
}

func grassGrid(t testing.TB, w, h int) *terrain.Map {
	t.Helper()
	m, err := terrain.NewMap(w, h, terrain.Grass)
	require.NoError(t, err)
	return m
}

func coordsOf(seq func(func(*Node) bool)) []Coord {
	var out []Coord
	for n := range seq {
		out = append(out, n.Coord)
	}
	return out
}
