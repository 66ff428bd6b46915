package memory

import (
	"math/rand"
	"time"
)

// TileCount is the number of input targets on the board.
const TileCount = 4

// TileIndex identifies one of the four tiles.
type TileIndex int

// NoTile is the "no tile active" sentinel.
const NoTile TileIndex = -1

// Valid reports whether t names a tile on the board.
func (t TileIndex) Valid() bool {
	return t >= 0 && t < TileCount
}

// TileSource produces random tiles for sequence generation.
// Implementations are treated as infallible.
type TileSource interface {
	NextTile() TileIndex
}

// TileSourceFunc adapts a function to TileSource.
type TileSourceFunc func() TileIndex

// NextTile calls f.
func (f TileSourceFunc) NextTile() TileIndex {
	return f()
}

// RandSource draws tiles uniformly from [0, TileCount).
type RandSource struct {
	rng *rand.Rand
}

// NewRandSource creates a tile source. A zero seed uses the current time.
func NewRandSource(seed int64) *RandSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandSource{rng: rand.New(rand.NewSource(seed))}
}

// NextTile returns a uniformly random tile.
func (r *RandSource) NextTile() TileIndex {
	return TileIndex(r.rng.Intn(TileCount))
}

// Sequence is an ordered list of tiles. Values are never mutated in place:
// Extend returns a new sequence.
type Sequence []TileIndex

// Generate builds a fresh sequence of length n.
func Generate(src TileSource, n int) Sequence {
	seq := make(Sequence, n)
	for i := range seq {
		seq[i] = src.NextTile()
	}
	return seq
}

// Extend returns a new sequence with one random tile appended.
// The receiver's backing array is never shared with the result.
func (s Sequence) Extend(src TileSource) Sequence {
	next := make(Sequence, len(s), len(s)+1)
	copy(next, s)
	return append(next, src.NextTile())
}

// Reversed returns a reversed copy.
func (s Sequence) Reversed() Sequence {
	out := make(Sequence, len(s))
	for i, t := range s {
		out[len(s)-1-i] = t
	}
	return out
}

// Clone returns a copy of s.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}

// Equal reports whether s and other contain the same tiles in order.
func (s Sequence) Equal(other Sequence) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}
