// Package bloom provides an approximate set-membership filter over
// comparable keys. Has never reports false for a key that was added;
// it reports true for absent keys with probability near the configured
// rate. Filters are not safe for concurrent use.
package bloom

import (
	"errors"
	"hash/maphash"

	"github.com/greatroar/blobloom"
)

var ErrorInvalidConfig = errors.New("INVALID FILTER CONFIG")

// Filter wraps a blocked bloom filter, hashing keys with
// maphash.Comparable under a per-filter seed.
type Filter[K comparable] struct {
	seed   maphash.Seed
	filter *blobloom.Filter
}

// New sizes a filter for the expected number of distinct keys and the
// acceptable false-positive rate, which must lie in (0, 1).
func New[K comparable](capacity int, fpRate float64) (*Filter[K], error) {
	if capacity <= 0 || fpRate <= 0 || fpRate >= 1 {
		return nil, ErrorInvalidConfig
	}
	return &Filter[K]{
		seed: maphash.MakeSeed(),
		filter: blobloom.NewOptimized(blobloom.Config{
			Capacity: uint64(capacity),
			FPRate:   fpRate,
		}),
	}, nil
}

// Add records key in the filter.
func (f *Filter[K]) Add(key K) {
	f.filter.Add(maphash.Comparable(f.seed, key))
}

// Has reports whether key may have been added. False positives are
// possible, false negatives are not.
func (f *Filter[K]) Has(key K) bool {
	return f.filter.Has(maphash.Comparable(f.seed, key))
}

// Cardinality estimates the number of distinct keys added so far.
func (f *Filter[K]) Cardinality() float64 {
	return f.filter.Cardinality()
}

// Clear resets the filter to empty.
func (f *Filter[K]) Clear() {
	f.filter.Clear()
}
