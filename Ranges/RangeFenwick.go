package Ranges

import (
	Go_Ordered "github.com/g-m-twostay/go-ordered"
)

// RangeFenwick supports adding to a whole range and summing a range, both in
// O(log n). Two Fenwicks b1, b2 are kept such that
//
//	prefix(i) = b1.prefix(i)*(i+1) - b2.prefix(i)
//
// Adding x to [l, r] adds x at l and -x at r+1 in b1, and x*l at l and
// -x*(r+1) at r+1 in b2.
type RangeFenwick[T Number] struct {
	b1, b2 *Fenwick[T]
}

// NewRangeFenwick returns a RangeFenwick over n zeros.
func NewRangeFenwick[T Number](n int) (*RangeFenwick[T], error) {
	b1, err := NewFenwick[T](n)
	if err != nil {
		return nil, err
	}
	b2, _ := NewFenwick[T](n)
	return &RangeFenwick[T]{b1, b2}, nil
}

// RangeFenwickFrom returns a RangeFenwick over a. The initial values are the
// differences of a, so b1 is built linearly and b2 follows from it.
// Time: O(n)
func RangeFenwickFrom[T Number](a []T) *RangeFenwick[T] {
	d1, d2 := make([]T, len(a)), make([]T, len(a))
	var prev T
	for i, v := range a {
		d1[i] = v - prev
		d2[i] = d1[i] * T(i)
		prev = v
	}
	return &RangeFenwick[T]{FenwickFrom(d1), FenwickFrom(d2)}
}

func (u *RangeFenwick[T]) Len() int {
	return u.b1.Len()
}

// rangeAdd adds x to [l, r] without checking.
func (u *RangeFenwick[T]) rangeAdd(l, r int, x T) {
	u.b1.add(l, x)
	u.b2.add(l, x*T(l))
	if r+1 < u.Len() {
		u.b1.add(r+1, -x)
		u.b2.add(r+1, -x*T(r+1))
	}
}

func (u *RangeFenwick[T]) prefix(i int) T {
	return u.b1.prefix(i)*T(i+1) - u.b2.prefix(i)
}

// RangeUpdate adds x to every a[i] with l <= i <= r.
// Time: O(log n)
func (u *RangeFenwick[T]) RangeUpdate(l, r int, x T) error {
	if err := Go_Ordered.CheckRange(l, r, u.Len()); err != nil {
		return err
	}
	u.rangeAdd(l, r, x)
	return nil
}

// Update adds x to a[i].
func (u *RangeFenwick[T]) Update(i int, x T) error {
	return u.RangeUpdate(i, i, x)
}

// PointQuery returns a[i], which is b1.prefix(i) alone.
// Time: O(log n)
func (u *RangeFenwick[T]) PointQuery(i int) (T, error) {
	if err := Go_Ordered.CheckIndex(i, u.Len()); err != nil {
		return 0, err
	}
	return u.b1.prefix(i), nil
}

// PrefixSum returns a[0]+...+a[i].
func (u *RangeFenwick[T]) PrefixSum(i int) (T, error) {
	if err := Go_Ordered.CheckIndex(i, u.Len()); err != nil {
		return 0, err
	}
	return u.prefix(i), nil
}

// RangeSum returns a[l]+...+a[r].
func (u *RangeFenwick[T]) RangeSum(l, r int) (T, error) {
	if err := Go_Ordered.CheckRange(l, r, u.Len()); err != nil {
		return 0, err
	}
	if l == 0 {
		return u.prefix(r), nil
	}
	return u.prefix(r) - u.prefix(l-1), nil
}

// Clone returns a deep copy of u.
func (u *RangeFenwick[T]) Clone() *RangeFenwick[T] {
	return &RangeFenwick[T]{u.b1.Clone(), u.b2.Clone()}
}

// Swap exchanges the contents of u and o.
func (u *RangeFenwick[T]) Swap(o *RangeFenwick[T]) {
	*u, *o = *o, *u
}
