// Package random provides the seedable random source shared by every
// resolver, so a session can be replayed deterministically from its seed.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

// Source is the minimal random surface the resolvers depend on.
type Source interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// IntN returns a value in [0, n). It panics if n <= 0.
	IntN(n int) int
}

// New returns a PCG-backed source derived from seed.
func New(seed int64) *rand.Rand {
	// Non-cryptographic PRNG is intentional for replayable sessions.
	// #nosec G404
	return rand.New(rand.NewPCG(seedWord(seed, "a"), seedWord(seed, "b")))
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

func seedWord(seed int64, salt string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%d:%s", seed, salt)))
	return h.Sum64()
}

// Chance reports whether a roll lands under p.
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}

// Between returns an integer in the closed range [lo, hi].
func Between(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.IntN(hi-lo+1)
}

// Sample picks k distinct indexes out of [0, n) without replacement.
// The returned order is the draw order.
func Sample(src Source, n, k int) []int {
	if k > n {
		k = n
	}
	if k <= 0 {
		return nil
	}
	pool := make([]int, n)
	for i := range pool {
		pool[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + src.IntN(n-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}

// Sequence is a scripted Source. Floats and Ints are consumed in order;
// once exhausted, the last value repeats (or zero if none were given).
type Sequence struct {
	Floats []float64
	Ints   []int

	fi, ii int
}

func (s *Sequence) Float64() float64 {
	if len(s.Floats) == 0 {
		return 0
	}
	if s.fi >= len(s.Floats) {
		return s.Floats[len(s.Floats)-1]
	}
	v := s.Floats[s.fi]
	s.fi++
	return v
}

// IntN returns the next scripted int clamped into [0, n).
func (s *Sequence) IntN(n int) int {
	if n <= 0 {
		panic("random: invalid argument to IntN")
	}
	v := 0
	if len(s.Ints) > 0 {
		if s.ii >= len(s.Ints) {
			v = s.Ints[len(s.Ints)-1]
		} else {
			v = s.Ints[s.ii]
			s.ii++
		}
	}
	if v < 0 {
		v = 0
	}
	if v >= n {
		v = n - 1
	}
	return v
}
