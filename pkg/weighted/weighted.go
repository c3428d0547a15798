// Package weighted implements proportional random selection and
// draw-without-replacement shuffling.
package weighted

import "github.com/jwebster45206/schematic-engine/pkg/random"

// Entry pairs a value with its relative weight. Weights need not sum to 1.
type Entry[T any] struct {
	Value  T
	Weight float64
}

// Total sums the positive weights of entries. Entries with zero or negative
// weight are never selected and take no share of the draw range.
func Total[T any](entries []Entry[T]) float64 {
	var total float64
	for _, e := range entries {
		if e.Weight > 0 {
			total += e.Weight
		}
	}
	return total
}

// Select draws r uniformly in [0, total) and returns the first entry whose
// running weight sum is strictly greater than r, so a draw landing exactly
// on a boundary goes to the next entry.
//
// ok is false only when no entry has positive weight. If rounding leaves the
// running sum short of r, the last positively weighted entry is returned.
func Select[T any](src random.Source, entries []Entry[T]) (value T, ok bool) {
	total := Total(entries)
	if total <= 0 {
		return value, false
	}
	return pick(entries, src.Float64()*total)
}

func pick[T any](entries []Entry[T], r float64) (value T, ok bool) {
	var sum float64
	last := -1
	for i, e := range entries {
		if e.Weight <= 0 {
			continue
		}
		last = i
		sum += e.Weight
		if sum > r {
			return e.Value, true
		}
	}
	if last < 0 {
		return value, false
	}
	return entries[last].Value, true
}

// Shuffle returns a permutation of keys built by repeatedly removing a
// uniformly chosen remaining key. keys is not modified.
func Shuffle[K any](src random.Source, keys []K) []K {
	pool := make([]K, len(keys))
	copy(pool, keys)

	out := make([]K, 0, len(keys))
	for len(pool) > 0 {
		i := src.IntRange(0, len(pool))
		out = append(out, pool[i])
		pool = append(pool[:i], pool[i+1:]...)
	}
	return out
}
