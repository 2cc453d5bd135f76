package Ranges

import (
	"math/bits"
	"slices"

	Go_Ordered "github.com/g-m-twostay/go-ordered"
	"golang.org/x/exp/constraints"
)

// Number is the group (T, +, 0) the range structures aggregate over.
type Number interface {
	constraints.Integer | constraints.Float
}

// lsb is the lowest set bit of i.
func lsb(i int) int {
	return i & -i
}

// Fenwick is a binary indexed tree over a logical array a[0..n-1]. With
// 1-based positions, tree[i] holds the sum of a[i-lsb(i) .. i-1]. Indices in
// the API are 0-based.
type Fenwick[T Number] struct {
	tree []T // tree[0] is unused
}

// NewFenwick returns a Fenwick over n zeros.
func NewFenwick[T Number](n int) (*Fenwick[T], error) {
	if n < 0 {
		return nil, Go_Ordered.ConfigError{Param: "length", Value: n, Want: ">= 0"}
	}
	return &Fenwick[T]{make([]T, n+1)}, nil
}

// FenwickFrom builds a Fenwick over a by pushing each partial sum to its
// parent once.
// Time: O(n)
func FenwickFrom[T Number](a []T) *Fenwick[T] {
	n := len(a)
	tree := make([]T, n+1)
	copy(tree[1:], a)
	for i := 1; i <= n; i++ {
		if j := i + lsb(i); j <= n {
			tree[j] += tree[i]
		}
	}
	return &Fenwick[T]{tree}
}

// Len is n, the length of the logical array.
func (u *Fenwick[T]) Len() int {
	return len(u.tree) - 1
}

// add d to a[i] without checking i.
func (u *Fenwick[T]) add(i int, d T) {
	for i++; i < len(u.tree); i += lsb(i) {
		u.tree[i] += d
	}
}

// prefix is a[0]+...+a[i] without checking i; prefix(-1) is 0.
func (u *Fenwick[T]) prefix(i int) (s T) {
	for i++; i > 0; i -= lsb(i) {
		s += u.tree[i]
	}
	return
}

// Update adds d to a[i].
// Time: O(log n)
func (u *Fenwick[T]) Update(i int, d T) error {
	if err := Go_Ordered.CheckIndex(i, u.Len()); err != nil {
		return err
	}
	u.add(i, d)
	return nil
}

// Get returns a[i].
func (u *Fenwick[T]) Get(i int) (T, error) {
	if err := Go_Ordered.CheckIndex(i, u.Len()); err != nil {
		return 0, err
	}
	return u.prefix(i) - u.prefix(i-1), nil
}

// Set assigns a[i] = v, as an Update by the difference.
func (u *Fenwick[T]) Set(i int, v T) error {
	cur, err := u.Get(i)
	if err != nil {
		return err
	}
	u.add(i, v-cur)
	return nil
}

// PrefixSum returns a[0]+...+a[i].
// Time: O(log n)
func (u *Fenwick[T]) PrefixSum(i int) (T, error) {
	if err := Go_Ordered.CheckIndex(i, u.Len()); err != nil {
		return 0, err
	}
	return u.prefix(i), nil
}

// RangeSum returns a[l]+...+a[r].
// Time: O(log n)
func (u *Fenwick[T]) RangeSum(l, r int) (T, error) {
	if err := Go_Ordered.CheckRange(l, r, u.Len()); err != nil {
		return 0, err
	}
	if l == 0 {
		return u.prefix(r), nil
	}
	return u.prefix(r) - u.prefix(l-1), nil
}

// Total is the sum of the whole array.
func (u *Fenwick[T]) Total() T {
	return u.prefix(u.Len() - 1)
}

// LowerBound returns the smallest index i with PrefixSum(i) >= target, or Len()
// if there is none. It descends by binary lifting and needs every a[i] >= 0.
// Time: O(log n)
func (u *Fenwick[T]) LowerBound(target T) int {
	n := u.Len()
	if n == 0 {
		return 0
	}
	pos := 0
	var acc T
	for bit := 1 << (bits.Len(uint(n)) - 1); bit > 0; bit >>= 1 {
		if next := pos + bit; next <= n && acc+u.tree[next] < target {
			pos = next
			acc += u.tree[next]
		}
	}
	return pos
}

// Values materializes the logical array.
// Time: O(n log n)
func (u *Fenwick[T]) Values() []T {
	a := make([]T, u.Len())
	for i := range a {
		a[i], _ = u.Get(i)
	}
	return a
}

// Clone returns a deep copy of u.
func (u *Fenwick[T]) Clone() *Fenwick[T] {
	return &Fenwick[T]{slices.Clone(u.tree)}
}

// Swap exchanges the contents of u and o.
func (u *Fenwick[T]) Swap(o *Fenwick[T]) {
	u.tree, o.tree = o.tree, u.tree
}
