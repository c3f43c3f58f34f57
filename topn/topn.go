// Package topn keeps the n largest items of a stream under a strict
// weak ordering. Selectors are not safe for concurrent use.
package topn

import (
	"errors"
	"flag"
	"iter"

	gbt "github.com/google/btree"
)

var ErrorInvalidBound = errors.New("INVALID BOUND")
var ErrorNilOrdering = errors.New("NIL ORDERING")

// Degree of the backing tree
var btreeDegree = flag.Int("topn-degree", 32, "B-Tree degree")

// Selector retains the n largest items offered so far. Items equal under
// less collapse to one slot.
type Selector[T any] struct {
	n    int
	less func(a, b T) bool
	tree *gbt.BTreeG[T]
}

// New returns a selector for the n largest items under less.
func New[T any](n int, less func(a, b T) bool) (*Selector[T], error) {
	if n <= 0 {
		return nil, ErrorInvalidBound
	}
	if less == nil {
		return nil, ErrorNilOrdering
	}
	return &Selector[T]{
		n:    n,
		less: less,
		tree: gbt.NewG(*btreeDegree, gbt.LessFunc[T](less)),
	}, nil
}

// Offer considers item for the kept set, reporting whether it was kept.
// A kept item may displace the current minimum.
func (s *Selector[T]) Offer(item T) bool {
	if s.tree.Len() == s.n {
		if min, ok := s.tree.Min(); ok && !s.less(min, item) {
			return false
		}
	}
	if _, replaced := s.tree.ReplaceOrInsert(item); !replaced && s.tree.Len() > s.n {
		s.tree.DeleteMin()
	}
	return true
}

// Collect drains a sequence through Offer.
func (s *Selector[T]) Collect(seq iter.Seq[T]) {
	for item := range seq {
		s.Offer(item)
	}
}

// Items returns the kept set, largest first.
func (s *Selector[T]) Items() []T {
	items := make([]T, 0, s.tree.Len())
	s.tree.Descend(func(item T) bool {
		items = append(items, item)
		return true
	})
	return items
}

// Min returns the smallest kept item, the next to be displaced.
func (s *Selector[T]) Min() (T, bool) {
	return s.tree.Min()
}

// Len returns the number of kept items, at most n.
func (s *Selector[T]) Len() int {
	return s.tree.Len()
}

// Reset empties the selector, keeping its bound and ordering.
func (s *Selector[T]) Reset() {
	s.tree.Clear(false)
}
