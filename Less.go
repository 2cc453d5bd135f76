package Go_Ordered

import "golang.org/x/exp/constraints"

// Less is a strict weak ordering on K. Every ordered structure in this module
// compares keys only through a Less; two keys a, b are considered equal when
// neither Less(a, b) nor Less(b, a) holds.
type Less[K any] func(a, b K) bool

// Natural returns the Less induced by the < operator of K.
func Natural[K constraints.Ordered]() Less[K] {
	return func(a, b K) bool { return a < b }
}

// Reverse flips the order of l.
func Reverse[K any](l Less[K]) Less[K] {
	return func(a, b K) bool { return l(b, a) }
}

// Equal reports whether a and b are equivalent under l.
func (l Less[K]) Equal(a, b K) bool {
	return !l(a, b) && !l(b, a)
}

// Compare returns -1, 0 or 1 like cmp.Compare, but only calls l.
func (l Less[K]) Compare(a, b K) int {
	if l(a, b) {
		return -1
	} else if l(b, a) {
		return 1
	}
	return 0
}
