// Package randsrc provides the random source shared by the name synthesizer,
// tagline provider and domain checker. The default source is process-wide and
// unseeded, so output is not reproducible across runs; tests inject a seeded
// source instead.
package randsrc

import (
	"math/rand/v2"
	"sync"
)

// Source is the randomness capability the generators need.
type Source interface {
	// IntN returns a uniform value in [0, n). It panics if n <= 0.
	IntN(n int) int
	// Shuffle pseudo-randomizes the order of n elements using swap.
	Shuffle(n int, swap func(i, j int))
}

// global uses the math/rand/v2 top-level functions, which are safe for concurrent use.
type global struct{}

func (global) IntN(n int) int                     { return rand.IntN(n) }
func (global) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// Default returns the process-wide source.
func Default() Source {
	return global{}
}

// Seeded is a deterministic source. It is safe for concurrent use.
type Seeded struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewSeeded returns a deterministic source for the given seed.
func NewSeeded(seed uint64) *Seeded {
	return &Seeded{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// IntN implements Source.
func (s *Seeded) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.IntN(n)
}

// Shuffle implements Source.
func (s *Seeded) Shuffle(n int, swap func(i, j int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rnd.Shuffle(n, swap)
}

// Choice returns a uniformly chosen element of items. items must not be empty.
func Choice[T any](src Source, items []T) T {
	return items[src.IntN(len(items))]
}

// Sample returns k distinct elements of items in random order.
// If k exceeds len(items) all items are returned shuffled.
func Sample[T any](src Source, items []T, k int) []T {
	pool := make([]T, len(items))
	copy(pool, items)
	if k > len(pool) {
		k = len(pool)
	}
	// Partial Fisher-Yates: only the first k positions are settled.
	for i := 0; i < k; i++ {
		j := i + src.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}

// CoinFlip returns true with probability one half.
func CoinFlip(src Source) bool {
	return src.IntN(2) == 0
}
