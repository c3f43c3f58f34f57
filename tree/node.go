package tree

import "iter"

// Node is one entry of a binary search tree. A node owns its children
// exclusively; no node is ever referenced by more than one parent, so
// rotations and rebuilds are plain ownership transfers between nodes.
type Node[K, V any] struct {
	key         K
	value       V
	left, right *Node[K, V]
	aux         int // height for AVL, subtree size for scapegoat, unused otherwise
}

// Key returns the stored key instance.
func (n *Node[K, V]) Key() K { return n.key }

// Value returns the stored value.
func (n *Node[K, V]) Value() V { return n.value }

// Left returns the root of the left subtree, or nil.
func (n *Node[K, V]) Left() *Node[K, V] { return n.left }

// Right returns the root of the right subtree, or nil.
func (n *Node[K, V]) Right() *Node[K, V] { return n.right }

// base carries the strategy-agnostic half of every tree: the root, the
// comparator, the maintained size, lookups, and in-order iteration.
// Strategies embed it and add their own Insert and Remove.
type base[K, V any] struct {
	root *Node[K, V]
	cmp  func(K, K) int
	size int
}

// Size returns the number of entries in the tree.
func (b *base[K, V]) Size() int {
	return b.size
}

// Clear drops the whole tree in one step.
func (b *base[K, V]) Clear() {
	b.root = nil
	b.size = 0
}

// Find locates the node whose key compares equal to key, or nil.
func (b *base[K, V]) Find(key K) (*Node[K, V], error) {
	if IsNilKey(key) {
		return nil, ErrorNilKey
	}
	h := b.root
	for h != nil {
		c := b.cmp(key, h.key)
		switch {
		case c < 0:
			h = h.left
		case c > 0:
			h = h.right
		default:
			return h, nil
		}
	}
	return nil, nil
}

// Contains reports whether a key comparing equal to key is present.
func (b *base[K, V]) Contains(key K) (bool, error) {
	n, err := b.Find(key)
	return n != nil, err
}

// TryGet returns the value stored under key, if any.
func (b *base[K, V]) TryGet(key K) (V, bool, error) {
	n, err := b.Find(key)
	if n == nil {
		var zero V
		return zero, false, err
	}
	return n.value, true, nil
}

// TryGetKey returns the canonical key instance currently stored for key:
// the instance may differ from the argument when distinct key objects
// compare equal.
func (b *base[K, V]) TryGetKey(key K) (K, bool, error) {
	n, err := b.Find(key)
	if n == nil {
		var zero K
		return zero, false, err
	}
	return n.key, true, nil
}

// Nodes walks the live tree in ascending key order. Every range over the
// returned sequence restarts from the current root; there is no snapshot,
// and mutating the tree mid-walk may skip or repeat entries.
func (b *base[K, V]) Nodes() iter.Seq[*Node[K, V]] {
	return func(yield func(*Node[K, V]) bool) {
		var stack []*Node[K, V]
		h := b.root
		for h != nil || len(stack) > 0 {
			for h != nil {
				stack = append(stack, h)
				h = h.left
			}
			h = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(h) {
				return
			}
			h = h.right
		}
	}
}

// Keys walks the live tree's keys in ascending order.
func (b *base[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for n := range b.Nodes() {
			if !yield(n.key) {
				return
			}
		}
	}
}

// Values walks the live tree's values in ascending key order.
func (b *base[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for n := range b.Nodes() {
			if !yield(n.value) {
				return
			}
		}
	}
}
