package terrain

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// Fingerprint hashes the dimensions and every cell's (kind, navigable) pair.
// Two grids with equal fingerprints produce identical navigation graphs.
// Negative dimensions hash as zero, matching how the graph treats them.
func Fingerprint(g Grid) [32]byte {
	h, _ := blake2b.New256(nil) // nil key never errors

	w, ht := max(g.Width(), 0), max(g.Height(), 0)
	var hdr [16]byte
	binary.LittleEndian.PutUint64(hdr[0:], uint64(w))
	binary.LittleEndian.PutUint64(hdr[8:], uint64(ht))
	h.Write(hdr[:])

	row := make([]byte, w)
	for y := range ht {
		for x := range w {
			row[x] = byte(PackCell(g.KindAt(x, y), !g.IsNavigable(x, y)))
		}
		h.Write(row)
	}

	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum
}
