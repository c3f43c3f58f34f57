// Package tree provides in-memory binary search trees with three
// interchangeable balancing strategies behind one contract: unbalanced
// (no rebalancing), AVL (height-balanced via rotations), and scapegoat
// (weight-balanced via lazy partial rebuilds). Trees are not safe for
// concurrent use; callers synchronize externally.
package tree

import (
	"errors"
	"iter"
	"reflect"
)

var ErrorNilKey = errors.New("NIL KEY")
var ErrorNilComparator = errors.New("NIL COMPARATOR")
var ErrorInvalidAlpha = errors.New("INVALID ALPHA")
var ErrorUnknownMode = errors.New("UNKNOWN MODE")

// DefaultAlpha is the weight-balance factor New uses for scapegoat trees.
// 2/3 keeps rebuilds rare while bounding height at about 1.7*log2(n).
const DefaultAlpha = 2.0 / 3.0

// Mode selects the balancing strategy backing a tree.
type Mode int

const (
	Unbalanced Mode = iota
	Scapegoat
	AVL
)

func (m Mode) String() string {
	switch m {
	case Unbalanced:
		return "unbalanced"
	case Scapegoat:
		return "scapegoat"
	case AVL:
		return "avl"
	}
	return "unknown"
}

// Tree is the operation set every balancing strategy implements with
// identical externally observable behavior. Keys are totally ordered by
// the comparator supplied at construction; keys comparing equal are the
// same entry, and inserting one overwrites the stored value.
type Tree[K, V any] interface {
	// Insert adds key/value or overwrites the value stored under an equal
	// key. May trigger strategy-specific rebalancing.
	Insert(key K, value V) error
	// Remove deletes the entry whose key compares equal to key, reporting
	// whether a removal occurred.
	Remove(key K) (bool, error)
	// Find returns the node holding key, or nil when absent.
	Find(key K) (*Node[K, V], error)
	Contains(key K) (bool, error)
	TryGet(key K) (V, bool, error)
	// TryGetKey returns the canonical key instance stored under key.
	TryGetKey(key K) (K, bool, error)
	Clear()
	Size() int
	Keys() iter.Seq[K]
	Values() iter.Seq[V]
	Nodes() iter.Seq[*Node[K, V]]
}

// New returns a tree backed by the given strategy. Scapegoat trees get
// DefaultAlpha; use NewScapegoat to pick another factor.
func New[K, V any](mode Mode, cmp func(K, K) int) (Tree[K, V], error) {
	switch mode {
	case Unbalanced:
		return NewUnbalanced[K, V](cmp)
	case Scapegoat:
		return NewScapegoat[K, V](cmp, DefaultAlpha)
	case AVL:
		return NewAVL[K, V](cmp)
	}
	return nil, ErrorUnknownMode
}

func NewUnbalanced[K, V any](cmp func(K, K) int) (Tree[K, V], error) {
	if cmp == nil {
		return nil, ErrorNilComparator
	}
	return &unbalanced[K, V]{base[K, V]{cmp: cmp}}, nil
}

func NewAVL[K, V any](cmp func(K, K) int) (Tree[K, V], error) {
	if cmp == nil {
		return nil, ErrorNilComparator
	}
	return &avl[K, V]{base[K, V]{cmp: cmp}}, nil
}

// NewScapegoat returns a weight-balanced tree. Alpha must lie in
// [0.5, 1): 0.5 is the tightest balance the theory allows, values near 1
// trade depth for fewer rebuilds.
func NewScapegoat[K, V any](cmp func(K, K) int, alpha float64) (Tree[K, V], error) {
	if cmp == nil {
		return nil, ErrorNilComparator
	}
	if alpha < 0.5 || alpha >= 1 {
		return nil, ErrorInvalidAlpha
	}
	return &scapegoat[K, V]{base: base[K, V]{cmp: cmp}, alpha: alpha}, nil
}

// IsNilKey reports whether key is absent: a nil interface, or a nil
// pointer, slice, map, channel, or function. Keys of non-nillable kinds
// (ints, strings, structs) are never nil.
func IsNilKey(key any) bool {
	if key == nil {
		return true
	}
	switch v := reflect.ValueOf(key); v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		return v.IsNil()
	}
	return false
}
