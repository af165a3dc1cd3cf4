package seq

import (
	"cmp"
	"slices"
)

// Group is a run of items sharing the same key
type Group[K cmp.Ordered, T any] struct {
	Key   K
	Items []T
}

// GroupBy partitions items by the key function. Groups are returned in
// ascending key order and items keep their original relative order.
func GroupBy[T any, K cmp.Ordered](items []T, key func(T) K) []Group[K, T] {
	index := make(map[K]int)
	var groups []Group[K, T]

	for _, item := range items {
		k := key(item)
		if i, ok := index[k]; ok {
			groups[i].Items = append(groups[i].Items, item)
			continue
		}
		index[k] = len(groups)
		groups = append(groups, Group[K, T]{Key: k, Items: []T{item}})
	}

	slices.SortFunc(groups, func(a, b Group[K, T]) int {
		return cmp.Compare(a.Key, b.Key)
	})
	return groups
}
