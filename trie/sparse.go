package trie

import (
	"iter"
	"slices"
)

type sparseNode[V any] struct {
	children map[byte]*sparseNode[V]
	value    V
	terminal bool
}

type sparse[V any] struct {
	root *sparseNode[V]
	size int
}

func (t *sparse[V]) Insert(key string, value V) {
	n := t.root
	for i := 0; i < len(key); i++ {
		c := key[i]
		child, ok := n.children[c]
		if !ok {
			child = &sparseNode[V]{children: map[byte]*sparseNode[V]{}}
			n.children[c] = child
		}
		n = child
	}
	if !n.terminal {
		n.terminal = true
		t.size++
	}
	n.value = value
}

func (t *sparse[V]) lookup(key string) *sparseNode[V] {
	n := t.root
	for i := 0; i < len(key) && n != nil; i++ {
		n = n.children[key[i]]
	}
	return n
}

func (t *sparse[V]) TryGet(key string) (V, bool) {
	if n := t.lookup(key); n != nil && n.terminal {
		return n.value, true
	}
	var zero V
	return zero, false
}

func (t *sparse[V]) Contains(key string) bool {
	n := t.lookup(key)
	return n != nil && n.terminal
}

func (t *sparse[V]) Remove(key string) bool {
	removed := false
	t.remove(t.root, key, &removed)
	if removed {
		t.size--
	}
	return removed
}

// remove reports whether n became prunable: childless, non-terminal, and
// not the root.
func (t *sparse[V]) remove(n *sparseNode[V], key string, removed *bool) bool {
	if n == nil {
		return false
	}
	if key == "" {
		if !n.terminal {
			return false
		}
		n.terminal = false
		var zero V
		n.value = zero
		*removed = true
	} else {
		c := key[0]
		if t.remove(n.children[c], key[1:], removed) {
			delete(n.children, c)
		}
	}
	return n != t.root && !n.terminal && len(n.children) == 0
}

func (t *sparse[V]) Size() int {
	return t.size
}

func (t *sparse[V]) Clear() {
	t.root = &sparseNode[V]{children: map[byte]*sparseNode[V]{}}
	t.size = 0
}

func (t *sparse[V]) Entries() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		walkSparse(t.root, nil, yield)
	}
}

func (t *sparse[V]) Keys() iter.Seq[string] {
	return func(yield func(string) bool) {
		for k := range t.Entries() {
			if !yield(k) {
				return
			}
		}
	}
}

// walkSparse sorts each node's edge set so the walk stays lexicographic.
func walkSparse[V any](n *sparseNode[V], prefix []byte, yield func(string, V) bool) bool {
	if n.terminal && !yield(string(prefix), n.value) {
		return false
	}
	edges := make([]byte, 0, len(n.children))
	for c := range n.children {
		edges = append(edges, c)
	}
	slices.Sort(edges)
	for _, c := range edges {
		if !walkSparse(n.children[c], append(prefix, c), yield) {
			return false
		}
	}
	return true
}
