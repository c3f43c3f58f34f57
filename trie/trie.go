// Package trie provides byte-wise key-mapped tries over string keys with
// two representations of the per-node edge set: dense (fixed 256-entry
// child arrays, O(1) edge steps, memory-heavy) and sparse (per-node
// maps, compact for thin alphabets). Both behave identically and iterate
// keys in lexicographic byte order. The empty string is a valid key,
// stored at the root.
//
// Tries are not safe for concurrent use; callers synchronize externally.
package trie

import "iter"

// Trie maps string keys to values along shared prefixes.
type Trie[V any] interface {
	// Insert adds key/value, overwriting the value of an existing key.
	Insert(key string, value V)
	TryGet(key string) (V, bool)
	Contains(key string) bool
	// Remove deletes key if present and prunes any path left childless
	// and non-terminal, reporting whether a removal occurred.
	Remove(key string) bool
	Size() int
	Clear()
	// Keys walks the live trie's keys in lexicographic order; every
	// range restarts against current state.
	Keys() iter.Seq[string]
	Entries() iter.Seq2[string, V]
}

// NewDense returns a trie with 256-entry child arrays per node.
func NewDense[V any]() Trie[V] {
	return &dense[V]{root: &denseNode[V]{}}
}

// NewSparse returns a trie with map-backed child edges per node.
func NewSparse[V any]() Trie[V] {
	return &sparse[V]{root: &sparseNode[V]{children: map[byte]*sparseNode[V]{}}}
}
