// Package equalutil provides small generic equality helpers used by the
// pipeline package's semantic-equality predicates.
package equalutil

import "slices"

// EqualPtr compares two pointers of any comparable type for equality.
// Both nil returns true, both non-nil with equal values returns true.
func EqualPtr[T comparable](a, b *T) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}

// EqualStringSet compares two string slices for equality, ignoring order.
// Used for Job.SerialGroups, where the set of values matters but the
// declared order does not.
func EqualStringSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	ac := slices.Clone(a)
	bc := slices.Clone(b)
	slices.Sort(ac)
	slices.Sort(bc)
	return slices.Equal(ac, bc)
}
