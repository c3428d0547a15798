package random

import "fmt"

// Script replays queued draws, for tests that need to force a particular
// outcome. Once a queue is exhausted it keeps returning its fallback:
// lo for IntRange and 0 for Float64.
type Script struct {
	Ints   []int
	Floats []float64

	// IntCalls and FloatCalls count draws made so far.
	IntCalls   int
	FloatCalls int
}

var _ Source = (*Script)(nil)

func (s *Script) IntRange(lo, hi int) int {
	s.IntCalls++
	if len(s.Ints) == 0 {
		return lo
	}
	v := s.Ints[0]
	s.Ints = s.Ints[1:]
	if v < lo || v >= hi {
		panic(fmt.Sprintf("scripted draw %d outside [%d, %d)", v, lo, hi))
	}
	return v
}

func (s *Script) Float64() float64 {
	s.FloatCalls++
	if len(s.Floats) == 0 {
		return 0
	}
	v := s.Floats[0]
	s.Floats = s.Floats[1:]
	return v
}
