// Package multimap provides a hash-bucketed map: keys are grouped into
// buckets by a caller-supplied hash function and each bucket is one
// binary search tree ordered by a caller-supplied comparator. Two keys
// with equal hash but different comparator order live in the same bucket
// as distinct entries; keys that hash equal and compare equal collapse
// into one entry, last written value wins.
//
// The map is not safe for concurrent use; callers synchronize
// externally.
package multimap

import (
	"cmp"
	"hash/maphash"
	"iter"
	"slices"

	"github.com/pkg/errors"

	"github.com/amardeepsingh/vds-common/tree"
)

var ErrorKeyNotFound = errors.New("KEY NOT FOUND")
var ErrorNilHash = errors.New("NIL HASH FUNCTION")

// Map is a hash-bucketed multi-map. Each bucket holds every key sharing
// one hash value, ordered by the comparator, in a tree of the strategy
// selected at construction.
type Map[K, V any] struct {
	hash  func(K) uint64
	cmp   func(K, K) int
	mode  tree.Mode
	alpha float64

	// Buckets are created lazily on the first key with a given hash and
	// stay allocated after their last entry is removed.
	buckets map[uint64]tree.Tree[K, V]
}

// Option configures a Map at construction.
type Option[K, V any] func(*Map[K, V])

// WithMode selects the balancing strategy backing each bucket.
// Default tree.AVL.
func WithMode[K, V any](mode tree.Mode) Option[K, V] {
	return func(m *Map[K, V]) { m.mode = mode }
}

// WithAlpha sets the weight-balance factor used by scapegoat buckets.
func WithAlpha[K, V any](alpha float64) Option[K, V] {
	return func(m *Map[K, V]) { m.alpha = alpha }
}

// WithHash overrides the hash function.
func WithHash[K, V any](hash func(K) uint64) Option[K, V] {
	return func(m *Map[K, V]) { m.hash = hash }
}

// WithComparator overrides the comparator.
func WithComparator[K, V any](cmp func(K, K) int) Option[K, V] {
	return func(m *Map[K, V]) { m.cmp = cmp }
}

// New returns a map for ordered keys: keys hash with maphash.Comparable
// under a per-map seed and compare in natural order unless overridden.
func New[K cmp.Ordered, V any](opts ...Option[K, V]) (*Map[K, V], error) {
	seed := maphash.MakeSeed()
	return newMap(
		func(k K) uint64 { return maphash.Comparable(seed, k) },
		cmp.Compare[K],
		opts...,
	)
}

// NewFunc returns a map with an explicit hash function and comparator,
// for key types that carry neither a natural hash nor a natural order.
func NewFunc[K, V any](hash func(K) uint64, cmp func(K, K) int, opts ...Option[K, V]) (*Map[K, V], error) {
	return newMap(hash, cmp, opts...)
}

func newMap[K, V any](hash func(K) uint64, cmp func(K, K) int, opts ...Option[K, V]) (*Map[K, V], error) {
	m := &Map[K, V]{
		hash:    hash,
		cmp:     cmp,
		mode:    tree.AVL,
		alpha:   tree.DefaultAlpha,
		buckets: make(map[uint64]tree.Tree[K, V]),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.hash == nil {
		return nil, ErrorNilHash
	}
	if m.cmp == nil {
		return nil, tree.ErrorNilComparator
	}
	if m.alpha < 0.5 || m.alpha >= 1 {
		return nil, tree.ErrorInvalidAlpha
	}
	switch m.mode {
	case tree.Unbalanced, tree.Scapegoat, tree.AVL:
	default:
		return nil, tree.ErrorUnknownMode
	}
	return m, nil
}

func (m *Map[K, V]) newBucket() (tree.Tree[K, V], error) {
	if m.mode == tree.Scapegoat {
		return tree.NewScapegoat[K, V](m.cmp, m.alpha)
	}
	return tree.New[K, V](m.mode, m.cmp)
}

// bucket returns the tree for hash h, creating it on first use.
func (m *Map[K, V]) bucket(h uint64) (tree.Tree[K, V], error) {
	if b, ok := m.buckets[h]; ok {
		return b, nil
	}
	b, err := m.newBucket()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create bucket")
	}
	m.buckets[h] = b
	return b, nil
}

// Add inserts key/value, overwriting the value (and, per the bucket
// strategy, the canonical key instance) when an equal-hashing,
// equal-comparing key is already present.
func (m *Map[K, V]) Add(key K, value V) error {
	if tree.IsNilKey(key) {
		return tree.ErrorNilKey
	}
	b, err := m.bucket(m.hash(key))
	if err != nil {
		return err
	}
	return b.Insert(key, value)
}

// Set is index assignment. It is identical to Add: always overwrites.
func (m *Map[K, V]) Set(key K, value V) error {
	return m.Add(key, value)
}

// Get is index access: unlike TryGet it fails with ErrorKeyNotFound when
// the key is absent.
func (m *Map[K, V]) Get(key K) (V, error) {
	v, ok, err := m.TryGet(key)
	if err != nil {
		var zero V
		return zero, err
	}
	if !ok {
		var zero V
		return zero, ErrorKeyNotFound
	}
	return v, nil
}

// Remove deletes the entry comparing equal to key from its bucket,
// reporting whether a removal occurred. The bucket itself stays.
func (m *Map[K, V]) Remove(key K) (bool, error) {
	if tree.IsNilKey(key) {
		return false, tree.ErrorNilKey
	}
	b, ok := m.buckets[m.hash(key)]
	if !ok {
		return false, nil
	}
	return b.Remove(key)
}

func (m *Map[K, V]) ContainsKey(key K) (bool, error) {
	if tree.IsNilKey(key) {
		return false, tree.ErrorNilKey
	}
	b, ok := m.buckets[m.hash(key)]
	if !ok {
		return false, nil
	}
	return b.Contains(key)
}

func (m *Map[K, V]) TryGet(key K) (V, bool, error) {
	if tree.IsNilKey(key) {
		var zero V
		return zero, false, tree.ErrorNilKey
	}
	b, ok := m.buckets[m.hash(key)]
	if !ok {
		var zero V
		return zero, false, nil
	}
	return b.TryGet(key)
}

// TryGetKey returns the canonical key instance stored for key, which may
// differ from the argument when distinct key objects compare equal.
func (m *Map[K, V]) TryGetKey(key K) (K, bool, error) {
	if tree.IsNilKey(key) {
		var zero K
		return zero, false, tree.ErrorNilKey
	}
	b, ok := m.buckets[m.hash(key)]
	if !ok {
		var zero K
		return zero, false, nil
	}
	return b.TryGetKey(key)
}

// Size is the number of entries across all buckets.
func (m *Map[K, V]) Size() int {
	size := 0
	for _, b := range m.buckets {
		size += b.Size()
	}
	return size
}

// Clear drops every bucket.
func (m *Map[K, V]) Clear() {
	m.buckets = make(map[uint64]tree.Tree[K, V])
}

// sortedHashes snapshots the bucket hashes in ascending order so walks
// visit buckets deterministically.
func (m *Map[K, V]) sortedHashes() []uint64 {
	hashes := make([]uint64, 0, len(m.buckets))
	for h := range m.buckets {
		hashes = append(hashes, h)
	}
	slices.Sort(hashes)
	return hashes
}

// Entries walks buckets in ascending hash order and entries within a
// bucket in comparator order. The order is deterministic but not
// globally key-sorted. Like the tree sequences, every range restarts
// against live state.
func (m *Map[K, V]) Entries() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, h := range m.sortedHashes() {
			for n := range m.buckets[h].Nodes() {
				if !yield(n.Key(), n.Value()) {
					return
				}
			}
		}
	}
}

func (m *Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range m.Entries() {
			if !yield(k) {
				return
			}
		}
	}
}

func (m *Map[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range m.Entries() {
			if !yield(v) {
				return
			}
		}
	}
}
