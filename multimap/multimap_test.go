package multimap

import (
	"cmp"
	"math/rand"
	"slices"
	"testing"

	"github.com/d4l3k/messagediff"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/amardeepsingh/vds-common/tree"
)

func TestMapBasics(t *testing.T) {
	m, err := New[int, string]()
	require.NoError(t, err)

	require.NoError(t, m.Add(1, "one"))
	require.NoError(t, m.Add(2, "two"))
	require.Equal(t, 2, m.Size(), "expecting two entries")

	v, err := m.Get(1)
	require.NoError(t, err)
	require.Equal(t, "one", v)

	ok, err := m.ContainsKey(2)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = m.ContainsKey(3)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMapTryGet(t *testing.T) {
	m, err := New[int, string]()
	require.NoError(t, err)
	require.NoError(t, m.Add(7, "seven"))

	v, ok, err := m.TryGet(7)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "seven", v)

	_, ok, err = m.TryGet(8)
	require.NoError(t, err, "expecting no error from try variant on absent key")
	require.False(t, ok)

	_, err = m.Get(8)
	require.ErrorIs(t, err, ErrorKeyNotFound, "expecting Get to fail on absent key")
}

func TestMapSetOverwrites(t *testing.T) {
	m, err := New[string, int]()
	require.NoError(t, err)
	require.NoError(t, m.Set("k", 1))
	require.NoError(t, m.Set("k", 2))
	require.Equal(t, 1, m.Size(), "expecting overwrite to keep one entry")
	v, err := m.Get("k")
	require.NoError(t, err)
	require.Equal(t, 2, v, "expecting last written value")
}

func TestMapRemove(t *testing.T) {
	m, err := New[int, int]()
	require.NoError(t, err)
	require.NoError(t, m.Add(1, 10))
	removed, err := m.Remove(1)
	require.NoError(t, err)
	require.True(t, removed)
	removed, err = m.Remove(1)
	require.NoError(t, err)
	require.False(t, removed, "expecting no removal for absent key")
	ok, err := m.ContainsKey(1)
	require.NoError(t, err)
	require.False(t, ok)
}

// Keys 1,3,5 hash to bucket 1 and keys 2,4 to bucket 0; every key stays
// independently retrievable and the odd bucket holds exactly {1,3,5} in
// comparator order.
func TestMapCollidingHashes(t *testing.T) {
	m, err := NewFunc[int, string](
		func(k int) uint64 { return uint64(k % 2) },
		cmp.Compare[int],
	)
	require.NoError(t, err)
	for _, k := range []int{1, 3, 5, 2, 4} {
		require.NoError(t, m.Add(k, "v"))
	}
	require.Equal(t, 5, m.Size(), "expecting all five keys stored")
	require.Len(t, m.buckets, 2, "expecting two buckets")

	var odd []int
	for k := range m.buckets[1].Keys() {
		odd = append(odd, k)
	}
	require.Equal(t, []int{1, 3, 5}, odd, "expecting odd bucket contents in order")

	for _, k := range []int{1, 2, 3, 4, 5} {
		ok, err := m.ContainsKey(k)
		require.NoError(t, err)
		require.True(t, ok, "expecting key %d retrievable", k)
	}
}

// Keys with equal hash and equal comparator order collapse onto one
// entry: last value wins, and the AVL bucket keeps the replacement key
// as canonical.
func TestMapEqualKeysCollapse(t *testing.T) {
	m, err := NewFunc[int, string](
		func(int) uint64 { return 0 },
		func(a, b int) int { return cmp.Compare(a%10, b%10) },
	)
	require.NoError(t, err)
	require.NoError(t, m.Add(12, "first"))
	require.NoError(t, m.Add(22, "second"))
	require.Equal(t, 1, m.Size(), "expecting equal keys to collapse")

	v, err := m.Get(42)
	require.NoError(t, err)
	require.Equal(t, "second", v, "expecting last written value")

	k, ok, err := m.TryGetKey(2)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 22, k, "expecting replacement key instance as canonical")
}

// Entries visits buckets in ascending hash order; consecutive walks
// without mutation match exactly.
func TestMapIterationDeterminism(t *testing.T) {
	m, err := NewFunc[int, int](
		func(k int) uint64 { return uint64(k % 7) },
		cmp.Compare[int],
	)
	require.NoError(t, err)
	for _, k := range rand.Perm(100) {
		require.NoError(t, m.Add(k, k*k))
	}

	walk := func() ([]int, []int) {
		var ks, vs []int
		for k, v := range m.Entries() {
			ks = append(ks, k)
			vs = append(vs, v)
		}
		return ks, vs
	}
	k1, v1 := walk()
	k2, v2 := walk()
	if diff, equal := messagediff.PrettyDiff(k1, k2); !equal {
		t.Fatalf("expecting identical key walks, diff: %s", diff)
	}
	if diff, equal := messagediff.PrettyDiff(v1, v2); !equal {
		t.Fatalf("expecting identical value walks, diff: %s", diff)
	}
	require.Len(t, k1, 100)

	// Bucket-major order: hash(k) is non-decreasing along the walk.
	for i := 1; i < len(k1); i++ {
		require.LessOrEqual(t, k1[i-1]%7, k1[i]%7, "expecting ascending hash order")
	}

	var keys, vals []int
	for k := range m.Keys() {
		keys = append(keys, k)
	}
	for v := range m.Values() {
		vals = append(vals, v)
	}
	require.Equal(t, k1, keys, "expecting Keys to follow Entries order")
	require.Equal(t, v1, vals, "expecting Values to follow Entries order")
}

// Emptied buckets stay allocated.
func TestMapEmptyBucketPersists(t *testing.T) {
	m, err := New[int, int]()
	require.NoError(t, err)
	require.NoError(t, m.Add(1, 1))
	require.Len(t, m.buckets, 1)
	removed, err := m.Remove(1)
	require.NoError(t, err)
	require.True(t, removed)
	require.Equal(t, 0, m.Size())
	require.Len(t, m.buckets, 1, "expecting emptied bucket to persist")

	m.Clear()
	require.Len(t, m.buckets, 0, "expecting Clear to drop buckets")
}

func TestMapModes(t *testing.T) {
	for _, mode := range []tree.Mode{tree.Unbalanced, tree.Scapegoat, tree.AVL} {
		m, err := New[int, int](WithMode[int, int](mode))
		require.NoError(t, err, "expecting mode %s constructible", mode)
		perm := rand.Perm(200)
		for _, k := range perm {
			require.NoError(t, m.Add(k, k))
		}
		for _, k := range perm[:100] {
			removed, err := m.Remove(k)
			require.NoError(t, err)
			require.True(t, removed)
		}
		require.Equal(t, 100, m.Size(), "mode %s: expecting size to track mutations", mode)
		var keys []int
		for k := range m.Keys() {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		want := slices.Clone(perm[100:])
		slices.Sort(want)
		require.Equal(t, want, keys, "mode %s: expecting surviving keys", mode)
	}
}

func TestMapScapegoatAlpha(t *testing.T) {
	m, err := New[int, int](
		WithMode[int, int](tree.Scapegoat),
		WithAlpha[int, int](0.5),
	)
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		require.NoError(t, m.Add(i, i))
	}
	require.Equal(t, 100, m.Size())
}

func TestMapConfigValidation(t *testing.T) {
	_, err := New[int, int](WithAlpha[int, int](0.4))
	require.ErrorIs(t, err, tree.ErrorInvalidAlpha)
	_, err = New[int, int](WithAlpha[int, int](1.0))
	require.ErrorIs(t, err, tree.ErrorInvalidAlpha)
	_, err = New[int, int](WithHash[int, int](nil))
	require.ErrorIs(t, err, ErrorNilHash)
	_, err = New[int, int](WithComparator[int, int](nil))
	require.ErrorIs(t, err, tree.ErrorNilComparator)
	_, err = New[int, int](WithMode[int, int](tree.Mode(9)))
	require.ErrorIs(t, err, tree.ErrorUnknownMode)
	_, err = NewFunc[int, int](nil, cmp.Compare[int])
	require.ErrorIs(t, err, ErrorNilHash)
	_, err = NewFunc[int, int](func(int) uint64 { return 0 }, nil)
	require.ErrorIs(t, err, tree.ErrorNilComparator)
}

func TestMapNilKeyRejected(t *testing.T) {
	m, err := NewFunc[*int, int](
		func(k *int) uint64 { return uint64(*k) },
		func(a, b *int) int { return cmp.Compare(*a, *b) },
	)
	require.NoError(t, err)

	require.True(t, errors.Is(m.Add(nil, 1), tree.ErrorNilKey), "expecting nil key error on Add")
	_, err = m.Get(nil)
	require.ErrorIs(t, err, tree.ErrorNilKey)
	_, err = m.Remove(nil)
	require.ErrorIs(t, err, tree.ErrorNilKey)
	_, err = m.ContainsKey(nil)
	require.ErrorIs(t, err, tree.ErrorNilKey)
	_, _, err = m.TryGet(nil)
	require.ErrorIs(t, err, tree.ErrorNilKey)
	_, _, err = m.TryGetKey(nil)
	require.ErrorIs(t, err, tree.ErrorNilKey)
	require.Equal(t, 0, m.Size(), "expecting no mutation from rejected operations")
}
