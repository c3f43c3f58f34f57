package bloom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterNoFalseNegatives(t *testing.T) {
	f, err := New[int](1000, 0.01)
	require.NoError(t, err)
	for i := 0; i < 1000; i++ {
		f.Add(i)
	}
	for i := 0; i < 1000; i++ {
		require.True(t, f.Has(i), "expecting added key %d to be reported present", i)
	}
}

func TestFilterFalsePositiveRate(t *testing.T) {
	f, err := New[int](1000, 0.01)
	require.NoError(t, err)
	for i := 0; i < 1000; i++ {
		f.Add(i)
	}
	// Probe disjoint keys; a correctly sized filter stays far from
	// saturation, so allow a loose factor over the configured rate.
	falsePositives := 0
	for i := 1000; i < 11000; i++ {
		if f.Has(i) {
			falsePositives++
		}
	}
	require.Less(t, falsePositives, 1000, "expecting false-positive rate well below 10%%")
}

func TestFilterCardinality(t *testing.T) {
	f, err := New[string](1000, 0.01)
	require.NoError(t, err)
	require.Equal(t, 0.0, f.Cardinality(), "expecting empty filter estimate of zero")
	for _, k := range []string{"a", "b", "c", "d"} {
		f.Add(k)
	}
	est := f.Cardinality()
	require.InDelta(t, 4, est, 2, "expecting estimate near the number of added keys")
}

func TestFilterClear(t *testing.T) {
	f, err := New[int](100, 0.05)
	require.NoError(t, err)
	f.Add(1)
	require.True(t, f.Has(1))
	f.Clear()
	require.False(t, f.Has(1), "expecting cleared filter to forget keys")
	require.Equal(t, 0.0, f.Cardinality())
}

func TestFilterInvalidConfig(t *testing.T) {
	_, err := New[int](0, 0.01)
	require.ErrorIs(t, err, ErrorInvalidConfig, "expecting zero capacity rejected")
	_, err = New[int](-5, 0.01)
	require.ErrorIs(t, err, ErrorInvalidConfig)
	_, err = New[int](100, 0)
	require.ErrorIs(t, err, ErrorInvalidConfig, "expecting zero rate rejected")
	_, err = New[int](100, 1)
	require.ErrorIs(t, err, ErrorInvalidConfig, "expecting rate of 1 rejected")
}
