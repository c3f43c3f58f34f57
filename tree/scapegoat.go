package tree

import "math"

// scapegoat is the weight-balanced strategy. Every node keeps its subtree
// size in aux and balance is restored lazily: an insert that lands too
// deep rebuilds the subtree of its nearest alpha-weight-unbalanced
// ancestor (the scapegoat), and a removal that shrinks the tree below
// alpha*maxSize rebuilds the whole tree. Individual operations may cost
// O(n) when a rebuild fires; the amortized cost per operation is
// O(log n).
type scapegoat[K, V any] struct {
	base[K, V]
	alpha   float64
	maxSize int // size observed at the last whole-tree rebuild, never below size
}

func (t *scapegoat[K, V]) Insert(key K, value V) error {
	if IsNilKey(key) {
		return ErrorNilKey
	}
	path := make([]*Node[K, V], 0, 64)
	h := t.root
	for h != nil {
		c := t.cmp(key, h.key)
		if c == 0 {
			// Equal keys overwrite; the replacement key instance becomes
			// canonical.
			h.key = key
			h.value = value
			return nil
		}
		path = append(path, h)
		if c < 0 {
			h = h.left
		} else {
			h = h.right
		}
	}
	n := &Node[K, V]{key: key, value: value, aux: 1}
	if len(path) == 0 {
		t.root = n
	} else if p := path[len(path)-1]; t.cmp(key, p.key) < 0 {
		p.left = n
	} else {
		p.right = n
	}
	for _, a := range path {
		a.aux++
	}
	t.size++
	if t.size > t.maxSize {
		t.maxSize = t.size
	}
	if len(path) > t.depthLimit() {
		t.rebuildScapegoat(path)
	}
	return nil
}

// depthLimit is the deepest an insert may land without triggering a
// rebuild: floor(log(maxSize) / log(1/alpha)).
func (t *scapegoat[K, V]) depthLimit() int {
	if t.maxSize <= 1 {
		return 0
	}
	return int(math.Log(float64(t.maxSize)) / math.Log(1/t.alpha))
}

// rebuildScapegoat walks from the bottom of the insertion path toward the
// root, finds the first ancestor with an alpha-overweight child, and
// rebuilds its subtree perfectly balanced. The insertion path of a
// too-deep node always holds such an ancestor; the whole-tree fallback
// only covers floor rounding at the trigger.
func (t *scapegoat[K, V]) rebuildScapegoat(path []*Node[K, V]) {
	for i := len(path) - 1; i >= 0; i-- {
		a := path[i]
		limit := t.alpha * float64(a.aux)
		if float64(subtreeSize(a.left)) > limit || float64(subtreeSize(a.right)) > limit {
			rebuilt := rebuild(flatten(a, nil))
			if i == 0 {
				t.root = rebuilt
			} else if p := path[i-1]; p.left == a {
				p.left = rebuilt
			} else {
				p.right = rebuilt
			}
			return
		}
	}
	t.root = rebuild(flatten(t.root, nil))
}

func (t *scapegoat[K, V]) Remove(key K) (bool, error) {
	if IsNilKey(key) {
		return false, ErrorNilKey
	}
	var removed bool
	t.root, removed = t.remove(t.root, key)
	if !removed {
		return false, nil
	}
	t.size--
	if float64(t.size) < t.alpha*float64(t.maxSize) {
		t.root = rebuild(flatten(t.root, nil))
		t.maxSize = t.size
	}
	return true, nil
}

func (t *scapegoat[K, V]) remove(h *Node[K, V], key K) (*Node[K, V], bool) {
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
	if removed {
		h.aux--
	}
	return h, removed
}

func (t *scapegoat[K, V]) Clear() {
	t.base.Clear()
	t.maxSize = 0
}

func subtreeSize[K, V any](h *Node[K, V]) int {
	if h == nil {
		return 0
	}
	return h.aux
}

// flatten appends the subtree's nodes to into in key order, reusing the
// node objects so canonical key instances survive rebuilds.
func flatten[K, V any](h *Node[K, V], into []*Node[K, V]) []*Node[K, V] {
	if h == nil {
		return into
	}
	into = flatten(h.left, into)
	into = append(into, h)
	return flatten(h.right, into)
}

// rebuild relinks the nodes into a minimum-height tree, middle element
// first, and fixes their subtree sizes. O(n).
func rebuild[K, V any](nodes []*Node[K, V]) *Node[K, V] {
	if len(nodes) == 0 {
		return nil
	}
	mid := len(nodes) / 2
	h := nodes[mid]
	h.left = rebuild(nodes[:mid])
	h.right = rebuild(nodes[mid+1:])
	h.aux = len(nodes)
	return h
}
