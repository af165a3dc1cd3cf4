// Package seq provides the enumeration primitives used by the scoring
// engine: power sets, grouping by key, Cartesian products and small
// combinatorics helpers.
package seq

import (
	"fmt"
	"iter"
)

// MaxPowerSetItems is the exclusive upper bound on the number of items a
// power set can enumerate. One bit per item, plus one to signal completion.
const MaxPowerSetItems = 64

// PowerSet lazily enumerates every subset of a sequence. Subsets follow a
// binary counter where bit i selects item i, so the empty subset comes first
// and the full set last. A PowerSet cannot be restarted once consumed.
type PowerSet[T any] struct {
	items   []T
	current uint64
	end     uint64
}

// NewPowerSet returns an enumerator over all subsets of items. It panics if
// items has MaxPowerSetItems or more elements.
func NewPowerSet[T any](items []T) *PowerSet[T] {
	if len(items) >= MaxPowerSetItems {
		panic(fmt.Sprintf("seq: power set of %d items exceeds limit of %d", len(items), MaxPowerSetItems-1))
	}
	return &PowerSet[T]{
		items: items,
		end:   uint64(1) << len(items),
	}
}

// Len returns the total number of subsets, 2^N
func (p *PowerSet[T]) Len() uint64 {
	return p.end
}

// Next returns the next subset, or false once every subset has been produced
func (p *PowerSet[T]) Next() ([]T, bool) {
	if p.current == p.end {
		return nil, false
	}

	set := make([]T, 0, len(p.items))
	for idx, item := range p.items {
		if p.current&(uint64(1)<<idx) != 0 {
			set = append(set, item)
		}
	}
	p.current++
	return set, true
}

// All returns an iterator over the remaining subsets
func (p *PowerSet[T]) All() iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		for {
			set, ok := p.Next()
			if !ok || !yield(set) {
				return
			}
		}
	}
}
