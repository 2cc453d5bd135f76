package Ranges

import (
	"fmt"
	"slices"

	Go_Ordered "github.com/g-m-twostay/go-ordered"

	"github.com/sirupsen/logrus"
)

type segmentOptions[T Number] struct {
	merge    func(a, b T) T
	identity T
	apply    func(agg, delta T, size int) T
	lazyOn   bool
}

func defaultSegmentOptions[T Number]() segmentOptions[T] {
	return segmentOptions[T]{merge: Sum[T], apply: AddToSum[T]}
}

// SegmentOption configures a SegmentTree.
type SegmentOption[T Number] func(*segmentOptions[T])

// WithMerge sets the associative merge and its identity. The default is Sum
// with identity 0.
func WithMerge[T Number](merge func(a, b T) T, identity T) SegmentOption[T] {
	return func(o *segmentOptions[T]) {
		o.merge, o.identity = merge, identity
	}
}

// WithLazy enables RangeUpdate through lazy propagation of additive deltas.
func WithLazy[T Number]() SegmentOption[T] {
	return func(o *segmentOptions[T]) {
		o.lazyOn = true
	}
}

// WithApply sets how a pending delta changes the aggregate of size elements.
// The default, AddToSum, fits the Sum merge; AddToExtremum fits Min and Max.
// The merge must distribute over the rule, otherwise lazy results are wrong.
func WithApply[T Number](apply func(agg, delta T, size int) T) SegmentOption[T] {
	return func(o *segmentOptions[T]) {
		o.apply = apply
	}
}

func Sum[T Number](a, b T) T { return a + b }

// AddToSum adds delta to each of size summed elements.
func AddToSum[T Number](agg, delta T, size int) T {
	return agg + delta*T(size)
}

// AddToExtremum adds delta to each of size elements whose min or max is agg.
func AddToExtremum[T Number](agg, delta T, _ int) T {
	return agg + delta
}

// SegmentTree answers range merges over a fixed length array. Nodes live in a
// flat array of 4n: node 0 covers [0, n-1] and node k covering [s, e] has
// children 2k+1 over [s, (s+e)/2] and 2k+2 over [(s+e)/2+1, e].
// With lazy propagation enabled, lazy[k] is a delta pending for the whole range
// of k that neither tree[k] nor the children have seen yet; 0 means none. A
// node is pushed before it is changed. Reads never push: they carry the deltas
// pending on the path down and apply them to what they return.
type SegmentTree[T Number] struct {
	n          int
	tree, lazy []T
	segmentOptions[T]
}

// NewSegmentTree builds a SegmentTree over a, which mustn't be empty.
// Time: O(n)
func NewSegmentTree[T Number](a []T, opts ...SegmentOption[T]) (*SegmentTree[T], error) {
	o := defaultSegmentOptions[T]()
	for _, opt := range opts {
		opt(&o)
	}
	if len(a) == 0 {
		return nil, fmt.Errorf("segment tree: %w", Go_Ordered.ConfigError{Param: "length", Value: 0, Want: ">= 1"})
	}
	if o.merge == nil || o.apply == nil {
		return nil, fmt.Errorf("segment tree: %w", Go_Ordered.ConfigError{Param: "merge or apply", Value: nil, Want: "non-nil functions"})
	}
	u := &SegmentTree[T]{n: len(a), tree: make([]T, 4*len(a)), segmentOptions: o}
	if o.lazyOn {
		u.lazy = make([]T, 4*len(a))
	}
	u.build(0, 0, u.n-1, a)
	if Go_Ordered.Tracing() {
		Go_Ordered.Log.WithFields(logrus.Fields{"n": u.n, "lazy": o.lazyOn}).Debug("segment tree: built")
	}
	return u, nil
}

// build the subtree at k over a[s..e]. Recursive.
func (u *SegmentTree[T]) build(k, s, e int, a []T) {
	if s == e {
		u.tree[k] = a[s]
		return
	}
	mid := (s + e) / 2
	u.build(2*k+1, s, mid, a)
	u.build(2*k+2, mid+1, e, a)
	u.tree[k] = u.merge(u.tree[2*k+1], u.tree[2*k+2])
}

func (u *SegmentTree[T]) Len() int {
	return u.n
}

// Lazy reports whether RangeUpdate is available.
func (u *SegmentTree[T]) Lazy() bool {
	return u.lazy != nil
}

// push settles the pending delta of k, covering [s, e], into tree[k] and hands
// it down to the children.
func (u *SegmentTree[T]) push(k, s, e int) {
	if u.lazy == nil || u.lazy[k] == 0 {
		return
	}
	d := u.lazy[k]
	u.tree[k] = u.apply(u.tree[k], d, e-s+1)
	if s != e {
		u.lazy[2*k+1] += d
		u.lazy[2*k+2] += d
	}
	u.lazy[k] = 0
}

// pull recomputes tree[k] from its children, settling them first.
func (u *SegmentTree[T]) pull(k, s, e int) {
	mid := (s + e) / 2
	u.push(2*k+1, s, mid)
	u.push(2*k+2, mid+1, e)
	u.tree[k] = u.merge(u.tree[2*k+1], u.tree[2*k+2])
}

// Query returns the merge of a[l..r].
// Time: O(log n)
func (u *SegmentTree[T]) Query(l, r int) (T, error) {
	if err := Go_Ordered.CheckRange(l, r, u.n); err != nil {
		return u.identity, err
	}
	return u.query(0, 0, u.n-1, l, r, 0), nil
}

// pending is the delta of k added to acc, the deltas of its ancestors.
func (u *SegmentTree[T]) pending(k int, acc T) T {
	if u.lazy == nil {
		return acc
	}
	return acc + u.lazy[k]
}

// settled is tree[k] as if the deltas in acc were pushed into it.
func (u *SegmentTree[T]) settled(k, s, e int, acc T) T {
	if acc == 0 {
		return u.tree[k]
	}
	return u.apply(u.tree[k], acc, e-s+1)
}

// query is disjoint: identity, covered: the node, otherwise: both halves. acc
// holds the deltas pending above k. Recursive.
func (u *SegmentTree[T]) query(k, s, e, l, r int, acc T) T {
	if r < s || e < l {
		return u.identity
	}
	acc = u.pending(k, acc)
	if l <= s && e <= r {
		return u.settled(k, s, e, acc)
	}
	mid := (s + e) / 2
	return u.merge(u.query(2*k+1, s, mid, l, r, acc), u.query(2*k+2, mid+1, e, l, r, acc))
}

// Update assigns a[i] = v and recomputes the ancestors of the leaf.
// Time: O(log n)
func (u *SegmentTree[T]) Update(i int, v T) error {
	if err := Go_Ordered.CheckIndex(i, u.n); err != nil {
		return err
	}
	u.update(0, 0, u.n-1, i, v)
	return nil
}

// update is Recursive.
func (u *SegmentTree[T]) update(k, s, e, i int, v T) {
	u.push(k, s, e)
	if s == e {
		u.tree[k] = v
		return
	}
	if mid := (s + e) / 2; i <= mid {
		u.update(2*k+1, s, mid, i, v)
	} else {
		u.update(2*k+2, mid+1, e, i, v)
	}
	u.pull(k, s, e)
}

// RangeUpdate adds d to every a[i] with l <= i <= r. It needs WithLazy, and
// fails with a Go_Ordered.ConfigError otherwise.
// Time: O(log n)
func (u *SegmentTree[T]) RangeUpdate(l, r int, d T) error {
	if u.lazy == nil {
		return Go_Ordered.ConfigError{Param: "lazy propagation", Value: false, Want: "WithLazy"}
	}
	if err := Go_Ordered.CheckRange(l, r, u.n); err != nil {
		return err
	}
	u.rangeUpdate(0, 0, u.n-1, l, r, d)
	return nil
}

// rangeUpdate is Recursive.
func (u *SegmentTree[T]) rangeUpdate(k, s, e, l, r int, d T) {
	u.push(k, s, e)
	if r < s || e < l {
		return
	}
	if l <= s && e <= r {
		u.lazy[k] += d
		u.push(k, s, e)
		return
	}
	mid := (s + e) / 2
	u.rangeUpdate(2*k+1, s, mid, l, r, d)
	u.rangeUpdate(2*k+2, mid+1, e, l, r, d)
	u.pull(k, s, e)
}

// Values materializes the logical array. Pending deltas are applied to the
// copy and stay pending in u.
// Time: O(n)
func (u *SegmentTree[T]) Values() []T {
	a := make([]T, 0, u.n)
	var walk func(k, s, e int, acc T)
	walk = func(k, s, e int, acc T) {
		acc = u.pending(k, acc)
		if s == e {
			a = append(a, u.settled(k, s, e, acc))
			return
		}
		mid := (s + e) / 2
		walk(2*k+1, s, mid, acc)
		walk(2*k+2, mid+1, e, acc)
	}
	walk(0, 0, u.n-1, 0)
	return a
}

// Clone returns a deep copy of u sharing the merge and apply functions.
func (u *SegmentTree[T]) Clone() *SegmentTree[T] {
	c := *u
	c.tree, c.lazy = slices.Clone(u.tree), slices.Clone(u.lazy)
	return &c
}

// Swap exchanges the contents of u and o, configurations included.
func (u *SegmentTree[T]) Swap(o *SegmentTree[T]) {
	*u, *o = *o, *u
}
