package tree

// avl is the height-balanced strategy. Every node keeps its subtree
// height in aux, and |height(left) - height(right)| <= 1 holds at every
// node after every operation. The recursive unwind of insert and remove
// is the walk back to the root: each ancestor recomputes its height and
// applies at most one of the four standard rotation cases.
type avl[K, V any] struct {
	base[K, V]
}

func (t *avl[K, V]) Insert(key K, value V) error {
	if IsNilKey(key) {
		return ErrorNilKey
	}
	t.root = t.insert(t.root, key, value)
	return nil
}

func (t *avl[K, V]) insert(h *Node[K, V], key K, value V) *Node[K, V] {
	if h == nil {
		t.size++
		return &Node[K, V]{key: key, value: value, aux: 1}
	}
	c := t.cmp(key, h.key)
	switch {
	case c < 0:
		h.left = t.insert(h.left, key, value)
	case c > 0:
		h.right = t.insert(h.right, key, value)
	default:
		// Equal keys overwrite; the replacement key instance becomes
		// canonical.
		h.key = key
		h.value = value
		return h
	}
	return t.rebalance(h)
}

func (t *avl[K, V]) Remove(key K) (bool, error) {
	if IsNilKey(key) {
		return false, ErrorNilKey
	}
	var removed bool
	t.root, removed = t.remove(t.root, key)
	if removed {
		t.size--
	}
	return removed, nil
}

func (t *avl[K, V]) remove(h *Node[K, V], key K) (*Node[K, V], bool) {
	if h == nil {
		return nil, false
	}
	var removed bool
	c := t.cmp(key, h.key)
	switch {
	case c < 0:
		h.left, removed = t.remove(h.left, key)
	case c > 0:
		h.right, removed = t.remove(h.right, key)
	default:
		if h.left == nil {
			return h.right, true
		}
		if h.right == nil {
			return h.left, true
		}
		s := h.right
		for s.left != nil {
			s = s.left
		}
		h.key = s.key
		h.value = s.value
		h.right, _ = t.remove(h.right, s.key)
		removed = true
	}
	if !removed {
		return h, false
	}
	return t.rebalance(h), true
}

func height[K, V any](h *Node[K, V]) int {
	if h == nil {
		return 0
	}
	return h.aux
}

// rebalance recomputes h's height and restores the AVL invariant at h
// with a single or double rotation when the balance factor leaves
// {-1, 0, 1}.
func (t *avl[K, V]) rebalance(h *Node[K, V]) *Node[K, V] {
	h.aux = 1 + max(height(h.left), height(h.right))
	bf := height(h.left) - height(h.right)
	switch {
	case bf > 1:
		if height(h.left.left) < height(h.left.right) {
			h.left = t.rotateLeft(h.left) // left-right case
		}
		h = t.rotateRight(h)
	case bf < -1:
		if height(h.right.right) < height(h.right.left) {
			h.right = t.rotateRight(h.right) // right-left case
		}
		h = t.rotateLeft(h)
	}
	return h
}

func (t *avl[K, V]) rotateLeft(h *Node[K, V]) *Node[K, V] {
	x := h.right
	h.right = x.left
	x.left = h
	h.aux = 1 + max(height(h.left), height(h.right))
	x.aux = 1 + max(height(x.left), height(x.right))
	return x
}

func (t *avl[K, V]) rotateRight(h *Node[K, V]) *Node[K, V] {
	x := h.left
	h.left = x.right
	x.right = h
	h.aux = 1 + max(height(h.left), height(h.right))
	x.aux = 1 + max(height(x.left), height(x.right))
	return x
}
