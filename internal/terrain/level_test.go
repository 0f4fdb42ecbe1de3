package terrain

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLevel = `
name: ford
rows:
  - "..~~.."
  - ".T~~,,"
  - "..~~#."
blocked:
  - {x: 0, y: 2}
`

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel([]byte(sampleLevel))
	require.NoError(t, err)
	assert.Equal(t, "ford", lvl.Name)
	assert.Equal(t, 6, lvl.Width)
	assert.Equal(t, 3, lvl.Height)

	m, err := lvl.Map()
	require.NoError(t, err)
	assert.Equal(t, Water, m.KindAt(2, 0))
	assert.Equal(t, Tree, m.KindAt(1, 1))
	assert.Equal(t, Mud, m.KindAt(5, 1))
	assert.Equal(t, Rock, m.KindAt(4, 2))
	assert.False(t, m.IsNavigable(0, 2))
	assert.Equal(t, Grass, m.KindAt(0, 2))
}

func TestParseLevelErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not yaml", "rows: [unterminated"},
		{"no rows", "name: empty"},
		{"ragged rows", "rows: [\"...\", \"..\"]"},
		{"height mismatch", "height: 3\nrows: [\"..\"]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLevel([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLevelMapErrors(t *testing.T) {
	lvl, err := ParseLevel([]byte("rows: [\".?\"]"))
	require.NoError(t, err)
	_, err = lvl.Map()
	assert.ErrorIs(t, err, ErrUnknownKind)

	lvl, err = ParseLevel([]byte("rows: [\"..\"]\nblocked: [{x: 5, y: 0}]"))
	require.NoError(t, err)
	_, err = lvl.Map()
	assert.Error(t, err)
}

func TestSaveLoadLevel(t *testing.T) {
	lvl, err := ParseLevel([]byte(sampleLevel))
	require.NoError(t, err)
	m, err := lvl.Map()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "ford.yaml")
	require.NoError(t, SaveLevel(path, "ford", m))

	loaded, err := LoadLevel(path)
	require.NoError(t, err)
	assert.Equal(t, lvl.Rows, loaded.Rows)
	assert.Equal(t, []CellRef{{X: 0, Y: 2}}, loaded.Blocked)

	back, err := loaded.Map()
	require.NoError(t, err)
	assert.Equal(t, Fingerprint(m), Fingerprint(back))
}

func TestLoadLevelMissing(t *testing.T) {
	_, err := LoadLevel(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
