// Package random defines the entropy source threaded through a schematic
// build, plus seeded and scripted implementations.
package random

import (
	"math/rand/v2"
	"sync"
)

// Source draws uniform random numbers.
type Source interface {
	// IntRange returns an integer in [lo, hi).
	IntRange(lo, hi int) int
	// Float64 returns a float in [0, 1).
	Float64() float64
}

// PCG is a seeded Source. It is safe for concurrent use.
type PCG struct {
	mu  sync.Mutex
	rng *rand.Rand
}

var _ Source = (*PCG)(nil)

// New returns a deterministic source for the given seed.
func New(seed uint64) *PCG {
	return &PCG{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (p *PCG) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return lo + p.rng.IntN(hi-lo)
}

func (p *PCG) Float64() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.Float64()
}
