package trie

import "iter"

type denseNode[V any] struct {
	children [256]*denseNode[V]
	value    V
	terminal bool
}

type dense[V any] struct {
	root *denseNode[V]
	size int
}

func (t *dense[V]) Insert(key string, value V) {
	n := t.root
	for i := 0; i < len(key); i++ {
		c := key[i]
		if n.children[c] == nil {
			n.children[c] = &denseNode[V]{}
		}
		n = n.children[c]
	}
	if !n.terminal {
		n.terminal = true
		t.size++
	}
	n.value = value
}

func (t *dense[V]) lookup(key string) *denseNode[V] {
	n := t.root
	for i := 0; i < len(key) && n != nil; i++ {
		n = n.children[key[i]]
	}
	return n
}

func (t *dense[V]) TryGet(key string) (V, bool) {
	if n := t.lookup(key); n != nil && n.terminal {
		return n.value, true
	}
	var zero V
	return zero, false
}

func (t *dense[V]) Contains(key string) bool {
	n := t.lookup(key)
	return n != nil && n.terminal
}

func (t *dense[V]) Remove(key string) bool {
	removed := false
	t.remove(t.root, key, &removed)
	if removed {
		t.size--
	}
	return removed
}

// remove reports whether n became prunable: childless, non-terminal, and
// not the root.
func (t *dense[V]) remove(n *denseNode[V], key string, removed *bool) bool {
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
			n.children[c] = nil
		}
	}
	if n == t.root || n.terminal {
		return false
	}
	for _, child := range n.children {
		if child != nil {
			return false
		}
	}
	return true
}

func (t *dense[V]) Size() int {
	return t.size
}

func (t *dense[V]) Clear() {
	t.root = &denseNode[V]{}
	t.size = 0
}

func (t *dense[V]) Entries() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		walkDense(t.root, nil, yield)
	}
}

func (t *dense[V]) Keys() iter.Seq[string] {
	return func(yield func(string) bool) {
		for k := range t.Entries() {
			if !yield(k) {
				return
			}
		}
	}
}

func walkDense[V any](n *denseNode[V], prefix []byte, yield func(string, V) bool) bool {
	if n.terminal && !yield(string(prefix), n.value) {
		return false
	}
	for c := 0; c < 256; c++ {
		if child := n.children[c]; child != nil {
			if !walkDense(child, append(prefix, byte(c)), yield) {
				return false
			}
		}
	}
	return true
}
