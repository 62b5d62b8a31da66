// Package rng provides the deterministic random source every stochastic
// decision in the generator routes through. The same seed and the same call
// sequence always yield the same stream; there is no hidden global state.
package rng

import "errors"

// ErrEmptyInput is returned when a selection is requested from an empty
// candidate list, or when no candidate carries positive weight.
var ErrEmptyInput = errors.New("rng: empty input")

// Source is a seeded xorshift32 generator. State is 32 bits so the stream is
// reproducible across platforms for a given seed. Not safe for concurrent use;
// each generation session owns exactly one Source.
type Source struct {
	state uint32
}

// New returns a Source seeded with n.
func New(n int64) *Source {
	s := &Source{}
	s.Seed(n)
	return s
}

// Seed resets the internal state. A zero state would make xorshift produce
// zeros forever, so it is replaced with a fixed nonzero constant.
func (s *Source) Seed(n int64) {
	s.state = uint32(n)
	if s.state == 0 {
		s.state = 0x9e3779b9
	}
}

// Float returns the next value in [0, 1).
//
// Algorithm: xorshift32 (Marsaglia, shifts 13/17/5) scaled by 2^-32. Exact
// output compatibility across implementations requires this exact algorithm.
func (s *Source) Float() float64 {
	s.state ^= s.state << 13
	s.state ^= s.state >> 17
	s.state ^= s.state << 5
	return float64(s.state) / 4294967296.0
}

// IntRange returns an integer in [min, max], inclusive. Inverted bounds are
// swapped rather than rejected.
func (s *Source) IntRange(min, max int) int {
	if min > max {
		min, max = max, min
	}
	span := max - min + 1
	n := min + int(s.Float()*float64(span))
	if n > max {
		n = max
	}
	return n
}

// Chance reports whether an event with probability p occurred. Chance(0) is
// always false and Chance(1) is always true.
func (s *Source) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return s.Float() < p
}

// PickIndex returns a uniformly chosen index in [0, n).
func (s *Source) PickIndex(n int) (int, error) {
	if n <= 0 {
		return 0, ErrEmptyInput
	}
	return int(s.Float() * float64(n)), nil
}

// WeightedIndex selects an index proportionally to weights. Non-positive
// weights are treated as absent: they are never selected and contribute
// nothing to the total. Selection walks the list subtracting weights from a
// single Float()*total draw; the last positive-weight index is the fallback
// against accumulated floating-point error.
func (s *Source) WeightedIndex(weights []float64) (int, error) {
	var total float64
	last := -1
	for i, w := range weights {
		if w > 0 {
			total += w
			last = i
		}
	}
	if last < 0 {
		return 0, ErrEmptyInput
	}

	target := s.Float() * total
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		target -= w
		if target <= 0 {
			return i, nil
		}
	}
	return last, nil
}

// Pick selects one item uniformly.
func Pick[T any](s *Source, items []T) (T, error) {
	var zero T
	idx, err := s.PickIndex(len(items))
	if err != nil {
		return zero, err
	}
	return items[idx], nil
}

// Shuffle returns a new slice holding a Fisher-Yates permutation of items.
// The input is not modified.
func Shuffle[T any](s *Source, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := s.IntRange(0, i)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
