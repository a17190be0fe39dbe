// Package rng provides a splittable pseudorandom generator for samplers.
//
// A [Source] wraps a PCG generator from math/rand/v2. [Source.Split]
// derives a statistically independent child stream, so every sampler copy
// running on its own goroutine owns its own generator instead of
// contending for a shared one.
//
// Determinism: the same seed produces the same sequence of draws, and the
// same sequence of Split calls produces the same children.
//
// Concurrency: a Source is NOT goroutine-safe. Split from the owning
// goroutine during setup, then hand each child to one worker.
package rng

import "math/rand/v2"

// golden is the 64-bit golden-ratio increment used by SplitMix64.
const golden = 0x9e3779b97f4a7c15

// Source is a seeded, splittable random stream.
type Source struct {
	r *rand.Rand
}

// New returns a deterministic stream for seed.
func New(seed uint64) *Source {
	return &Source{r: rand.New(rand.NewPCG(mix(seed), mix(seed^golden)))}
}

// NewRandom returns a stream seeded from the runtime's random source.
// Results are not reproducible.
func NewRandom() *Source {
	return New(rand.Uint64())
}

// Split returns a new independent stream. It consumes two draws from s so
// consecutive splits yield different children.
func (s *Source) Split() *Source {
	a, b := s.r.Uint64(), s.r.Uint64()
	return &Source{r: rand.New(rand.NewPCG(mix(a), mix(b+golden)))}
}

// Float64 returns a uniform value in [0,1).
func (s *Source) Float64() float64 {
	return s.r.Float64()
}

// IntN returns a uniform value in [0,n). It panics if n <= 0.
func (s *Source) IntN(n int) int {
	return s.r.IntN(n)
}

// Uint64 returns a uniform 64-bit value.
func (s *Source) Uint64() uint64 {
	return s.r.Uint64()
}

// Shuffle performs an in-place Fisher–Yates shuffle of a.
func (s *Source) Shuffle(a []int) {
	s.r.Shuffle(len(a), func(i, j int) { a[i], a[j] = a[j], a[i] })
}

// mix is the SplitMix64 finalizer; small input changes produce large,
// well-distributed output changes.
func mix(x uint64) uint64 {
	x += golden
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
