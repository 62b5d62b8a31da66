package rng

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeterministicStream(t *testing.T) {
	a := New(42)
	b := New(42)

	for i := 0; i < 1000; i++ {
		require.Equal(t, a.Float(), b.Float(), "streams diverged at draw %d", i)
	}
}

func TestSeedResetsStream(t *testing.T) {
	s := New(7)
	first := []float64{s.Float(), s.Float(), s.Float()}

	s.Seed(7)
	require.Equal(t, first[0], s.Float())
	require.Equal(t, first[1], s.Float())
	require.Equal(t, first[2], s.Float())
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := New(1)
	b := New(2)

	same := 0
	for i := 0; i < 100; i++ {
		if a.Float() == b.Float() {
			same++
		}
	}
	require.Less(t, same, 5)
}

func TestZeroSeedStillProduces(t *testing.T) {
	s := New(0)
	v := s.Float()
	require.GreaterOrEqual(t, v, 0.0)
	require.Less(t, v, 1.0)
	require.NotEqual(t, v, s.Float())
}

func TestFloatRange(t *testing.T) {
	s := New(99)
	for i := 0; i < 10000; i++ {
		v := s.Float()
		require.GreaterOrEqual(t, v, 0.0)
		require.Less(t, v, 1.0)
	}
}

func TestIntRangeInclusive(t *testing.T) {
	s := New(3)
	seen := map[int]bool{}
	for i := 0; i < 1000; i++ {
		n := s.IntRange(2, 5)
		require.GreaterOrEqual(t, n, 2)
		require.LessOrEqual(t, n, 5)
		seen[n] = true
	}
	require.Len(t, seen, 4, "all values in [2,5] should appear")
}

func TestIntRangeSwapsInvertedBounds(t *testing.T) {
	s := New(3)
	for i := 0; i < 100; i++ {
		n := s.IntRange(5, 2)
		require.GreaterOrEqual(t, n, 2)
		require.LessOrEqual(t, n, 5)
	}
}

func TestChanceExtremes(t *testing.T) {
	s := New(11)
	for i := 0; i < 100; i++ {
		require.False(t, s.Chance(0))
		require.True(t, s.Chance(1))
	}
}

func TestPickEmpty(t *testing.T) {
	s := New(1)
	_, err := Pick(s, []string{})
	require.ErrorIs(t, err, ErrEmptyInput)
}

func TestPickUniform(t *testing.T) {
	s := New(17)
	counts := map[string]int{}
	items := []string{"a", "b", "c", "d"}
	for i := 0; i < 8000; i++ {
		v, err := Pick(s, items)
		require.NoError(t, err)
		counts[v]++
	}
	for _, item := range items {
		require.Greater(t, counts[item], 1500, "item %q undersampled", item)
	}
}

func TestWeightedIndexRatio(t *testing.T) {
	s := New(23)
	weights := []float64{90, 10}
	counts := [2]int{}
	for i := 0; i < 10000; i++ {
		idx, err := s.WeightedIndex(weights)
		require.NoError(t, err)
		counts[idx]++
	}
	// 9:1 within tolerance
	require.InDelta(t, 9000, counts[0], 400)
	require.InDelta(t, 1000, counts[1], 400)
}

func TestWeightedIndexSkipsNonPositive(t *testing.T) {
	s := New(5)
	weights := []float64{0, 1, -3, 2}
	for i := 0; i < 2000; i++ {
		idx, err := s.WeightedIndex(weights)
		require.NoError(t, err)
		require.Contains(t, []int{1, 3}, idx)
	}
}

func TestWeightedIndexAllNonPositive(t *testing.T) {
	s := New(5)
	_, err := s.WeightedIndex([]float64{0, -1})
	require.ErrorIs(t, err, ErrEmptyInput)

	_, err = s.WeightedIndex(nil)
	require.ErrorIs(t, err, ErrEmptyInput)
}

func TestShufflePreservesInput(t *testing.T) {
	s := New(31)
	in := []int{1, 2, 3, 4, 5}
	out := Shuffle(s, in)

	require.Equal(t, []int{1, 2, 3, 4, 5}, in, "input must not be modified")
	require.ElementsMatch(t, in, out)
}

func TestShuffleDeterministic(t *testing.T) {
	a := Shuffle(New(42), []int{1, 2, 3, 4, 5, 6, 7, 8})
	b := Shuffle(New(42), []int{1, 2, 3, 4, 5, 6, 7, 8})
	require.Equal(t, a, b)
}
