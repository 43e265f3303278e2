// Package maputil provides small helpers for deterministic iteration over
// maps, used by the merge engine where names must come out in a stable
// order (rename-template AllNames, deep-merge handle renames) rather than
// Go's randomized map order.
package maputil

import (
	"cmp"
	"slices"
)

// SortedKeys returns the keys of m in ascending sorted order. A nil map
// returns an empty, non-nil slice.
func SortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
