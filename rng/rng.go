// Package rng supplies the uniform random sources used by playouts.
package rng

import (
	"encoding/binary"

	"lukechampine.com/frand"
)

// Source returns uniform integers in [0, n). n is always positive.
type Source interface {
	Intn(n int) int
}

// SeedSize is the length of a ChaCha key.
const SeedSize = 32

// Seed is the key of a deterministic source.
type Seed [SeedSize]byte

const (
	bufSize = 1024
	rounds  = 12
)

// New returns a source keyed from the system entropy pool.
func New() Source {
	return frand.New()
}

// NewSeeded returns a deterministic source. Two sources with the same seed
// produce the same sequence.
func NewSeeded(seed Seed) Source {
	return frand.NewCustom(seed[:], bufSize, rounds)
}

// SeedFromInt expands a small integer seed, as found in config files, into a
// full key.
func SeedFromInt(v int64) Seed {
	var s Seed
	binary.LittleEndian.PutUint64(s[:8], uint64(v))
	return s
}

// RandomSeed draws a fresh key.
func RandomSeed() Seed {
	var s Seed
	frand.Read(s[:])
	return s
}

// Derive returns the key of an independent stream identified by ids, e.g.
// (option, trial). Every id lands in its own 8-byte word of the key.
func (s Seed) Derive(ids ...uint64) Seed {
	out := s
	for i, id := range ids {
		off := (8 + 8*i) % SeedSize
		w := binary.LittleEndian.Uint64(out[off:]) ^ (id + 1)
		binary.LittleEndian.PutUint64(out[off:], w)
	}
	return out
}
