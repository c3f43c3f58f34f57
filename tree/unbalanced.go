package tree

// unbalanced is the baseline strategy: a plain BST with no rebalancing
// and no balance metadata. Height is O(n) in the worst case, the price
// paid for zero restructuring cost.
type unbalanced[K, V any] struct {
	base[K, V]
}

func (t *unbalanced[K, V]) Insert(key K, value V) error {
	if IsNilKey(key) {
		return ErrorNilKey
	}
	t.root = t.insert(t.root, key, value)
	return nil
}

func (t *unbalanced[K, V]) insert(h *Node[K, V], key K, value V) *Node[K, V] {
	if h == nil {
		t.size++
		return &Node[K, V]{key: key, value: value}
	}
	c := t.cmp(key, h.key)
	switch {
	case c < 0:
		h.left = t.insert(h.left, key, value)
	case c > 0:
		h.right = t.insert(h.right, key, value)
	default:
		// Equal keys overwrite the value; the originally stored key
		// instance stays canonical.
		h.value = value
	}
	return h
}

func (t *unbalanced[K, V]) Remove(key K) (bool, error) {
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

func (t *unbalanced[K, V]) remove(h *Node[K, V], key K) (*Node[K, V], bool) {
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
		// Two children: splice in the in-order successor, then remove it
		// from its original position.
		s := h.right
		for s.left != nil {
			s = s.left
		}
		h.key = s.key
		h.value = s.value
		h.right, _ = t.remove(h.right, s.key)
		return h, true
	}
	return h, removed
}
