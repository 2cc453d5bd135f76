package Sets

import "iter"

// OrderedSet is a set of keys kept in the order of a strict weak ordering
// supplied at construction. Duplicates, keys equivalent under that ordering,
// are rejected. Keys are never compared with ==.
type OrderedSet[K any] interface {
	//Insert k. Returns false, leaving the set unchanged, if an equal key exists.
	Insert(k K) bool
	//Erase k. Returns false if k isn't in the set.
	Erase(k K) bool
	Contains(k K) bool
	//Find returns the stored key equal to k.
	Find(k K) (K, bool)
	//At is Find that returns a KeyAbsentError when k is missing.
	At(k K) (K, error)
	//Min returns an EmptyError on an empty set.
	Min() (K, error)
	//Max returns an EmptyError on an empty set.
	Max() (K, error)
	//LowerBound returns the smallest key >= k.
	LowerBound(k K) (K, bool)
	//UpperBound returns the smallest key > k.
	UpperBound(k K) (K, bool)
	//Floor returns the greatest key <= k.
	Floor(k K) (K, bool)
	Size() int
	Empty() bool
	Clear()
	//InOrder calls visit on every key in ascending order until visit returns
	//false. The set must not be modified from visit.
	InOrder(visit func(K) bool)
	//All is InOrder as an iterator.
	All() iter.Seq[K]
	//ToSortedSlice returns all keys in ascending order.
	ToSortedSlice() []K
	//Verify reports whether the structural invariants of the implementation
	//hold.
	Verify() bool
}

// InsertAll inserts every key of ks into s and returns how many were new.
func InsertAll[K any](s OrderedSet[K], ks ...K) (n int) {
	for _, k := range ks {
		if s.Insert(k) {
			n++
		}
	}
	return
}

// Collect appends the keys of s in order to dst.
func Collect[K any](s OrderedSet[K], dst []K) []K {
	s.InOrder(func(k K) bool {
		dst = append(dst, k)
		return true
	})
	return dst
}

// SameKeys reports whether a and b hold equivalent keys under less.
func SameKeys[K any](a, b OrderedSet[K], less func(K, K) bool) bool {
	if a.Size() != b.Size() {
		return false
	}
	next, stop := iter.Pull(b.All())
	defer stop()
	same := true
	a.InOrder(func(k K) bool {
		o, ok := next()
		if !ok || less(k, o) || less(o, k) {
			same = false
		}
		return same
	})
	return same
}
