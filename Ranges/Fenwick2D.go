package Ranges

import (
	Go_Ordered "github.com/g-m-twostay/go-ordered"
)

// Fenwick2D is a Fenwick over a rows x cols grid. The 1D index arithmetic is
// applied on both axes independently, so tree[i][j] sums a rectangle of the
// grid.
type Fenwick2D[T Number] struct {
	tree       [][]T // row 0 and column 0 are unused
	rows, cols int
}

// NewFenwick2D returns a Fenwick2D over a grid of zeros.
func NewFenwick2D[T Number](rows, cols int) (*Fenwick2D[T], error) {
	if rows < 0 {
		return nil, Go_Ordered.ConfigError{Param: "rows", Value: rows, Want: ">= 0"}
	}
	if cols < 0 {
		return nil, Go_Ordered.ConfigError{Param: "cols", Value: cols, Want: ">= 0"}
	}
	tree := make([][]T, rows+1)
	for i := range tree {
		tree[i] = make([]T, cols+1)
	}
	return &Fenwick2D[T]{tree, rows, cols}, nil
}

// Fenwick2DFrom builds a Fenwick2D over grid, which must be rectangular. The 1D
// linear build runs along the rows, then along the columns.
// Time: O(rows*cols)
func Fenwick2DFrom[T Number](grid [][]T) (*Fenwick2D[T], error) {
	rows, cols := len(grid), 0
	if rows > 0 {
		cols = len(grid[0])
	}
	u, _ := NewFenwick2D[T](rows, cols)
	for i, row := range grid {
		if len(row) != cols {
			return nil, Go_Ordered.ConfigError{Param: "row length", Value: len(row), Want: "equal rows"}
		}
		copy(u.tree[i+1][1:], row)
	}
	for i := 1; i <= rows; i++ {
		for j := 1; j <= cols; j++ {
			if jj := j + lsb(j); jj <= cols {
				u.tree[i][jj] += u.tree[i][j]
			}
		}
	}
	for i := 1; i <= rows; i++ {
		if ii := i + lsb(i); ii <= rows {
			for j := 1; j <= cols; j++ {
				u.tree[ii][j] += u.tree[i][j]
			}
		}
	}
	return u, nil
}

func (u *Fenwick2D[T]) Rows() int {
	return u.rows
}

func (u *Fenwick2D[T]) Cols() int {
	return u.cols
}

func (u *Fenwick2D[T]) check(r, c int) error {
	if err := Go_Ordered.CheckIndex(r, u.rows); err != nil {
		return err
	}
	return Go_Ordered.CheckIndex(c, u.cols)
}

// prefix is the sum of the rectangle [0, r] x [0, c], 0 if either is -1.
func (u *Fenwick2D[T]) prefix(r, c int) (s T) {
	for i := r + 1; i > 0; i -= lsb(i) {
		for j := c + 1; j > 0; j -= lsb(j) {
			s += u.tree[i][j]
		}
	}
	return
}

// Update adds d to a[r][c].
// Time: O(log(rows)*log(cols))
func (u *Fenwick2D[T]) Update(r, c int, d T) error {
	if err := u.check(r, c); err != nil {
		return err
	}
	for i := r + 1; i <= u.rows; i += lsb(i) {
		for j := c + 1; j <= u.cols; j += lsb(j) {
			u.tree[i][j] += d
		}
	}
	return nil
}

// PrefixSum returns the sum of the rectangle [0, r] x [0, c].
func (u *Fenwick2D[T]) PrefixSum(r, c int) (T, error) {
	if err := u.check(r, c); err != nil {
		return 0, err
	}
	return u.prefix(r, c), nil
}

// RangeSum returns the sum of the rectangle [r1, r2] x [c1, c2] by inclusion
// and exclusion of the four corner prefixes.
func (u *Fenwick2D[T]) RangeSum(r1, c1, r2, c2 int) (T, error) {
	if err := Go_Ordered.CheckRange(r1, r2, u.rows); err != nil {
		return 0, err
	}
	if err := Go_Ordered.CheckRange(c1, c2, u.cols); err != nil {
		return 0, err
	}
	return u.prefix(r2, c2) - u.prefix(r1-1, c2) - u.prefix(r2, c1-1) + u.prefix(r1-1, c1-1), nil
}

// Get returns a[r][c].
func (u *Fenwick2D[T]) Get(r, c int) (T, error) {
	return u.RangeSum(r, c, r, c)
}

// Set assigns a[r][c] = v.
func (u *Fenwick2D[T]) Set(r, c int, v T) error {
	cur, err := u.Get(r, c)
	if err != nil {
		return err
	}
	return u.Update(r, c, v-cur)
}

// Clone returns a deep copy of u.
func (u *Fenwick2D[T]) Clone() *Fenwick2D[T] {
	tree := make([][]T, len(u.tree))
	for i, row := range u.tree {
		tree[i] = append([]T(nil), row...)
	}
	return &Fenwick2D[T]{tree, u.rows, u.cols}
}

// Swap exchanges the contents of u and o.
func (u *Fenwick2D[T]) Swap(o *Fenwick2D[T]) {
	*u, *o = *o, *u
}
