package Trees

import (
	"errors"
	"fmt"
	"iter"

	Go_Ordered "github.com/g-m-twostay/go-ordered"
	"golang.org/x/exp/constraints"
)

// RBTree is a red-black tree with no repeated keys:
//
//  1. the root is black;
//  2. a red node has no red child;
//  3. every path from the root to a nil link has the same number of black
//     nodes, nil links counting as black.
//
// Hence the height D is at most 2*log2(n+1). Nodes keep a link to their parent,
// which makes RBIterator steps amortized O(1).
type RBTree[K any] struct {
	root *rbNode[K]
	sz   int
	less Go_Ordered.Less[K]
}

// NewRBTree returns an empty RBTree ordered by <.
func NewRBTree[K constraints.Ordered]() *RBTree[K] {
	return NewRBTreeFunc(Go_Ordered.Natural[K]())
}

// NewRBTreeFunc returns an empty RBTree ordered by less.
func NewRBTreeFunc[K any](less Go_Ordered.Less[K]) *RBTree[K] {
	return &RBTree[K]{less: less}
}

// RBTreeFrom inserts ks, in order, into a new RBTree ordered by <.
func RBTreeFrom[K constraints.Ordered](ks ...K) *RBTree[K] {
	u := NewRBTree[K]()
	for _, k := range ks {
		u.Insert(k)
	}
	return u
}

// rotateLeft turns (x a (y b c)) into (y (x a b) c). x.r mustn't be nil.
func (u *RBTree[K]) rotateLeft(x *rbNode[K]) {
	y := x.r
	x.r = y.l
	if y.l != nil {
		y.l.p = x
	}
	u.replaceChild(x, y)
	y.l, x.p = x, y
}

// rotateRight turns (y (x a b) c) into (x a (y b c)). y.l mustn't be nil.
func (u *RBTree[K]) rotateRight(y *rbNode[K]) {
	x := y.l
	y.l = x.r
	if x.r != nil {
		x.r.p = y
	}
	u.replaceChild(y, x)
	x.r, y.p = y, x
}

// replaceChild makes n take the place of old under old's parent. old's own
// links are left untouched.
func (u *RBTree[K]) replaceChild(old, n *rbNode[K]) {
	p := old.p
	if p == nil {
		u.root = n
	} else if p.l == old {
		p.l = n
	} else {
		p.r = n
	}
	if n != nil {
		n.p = p
	}
}

// Insert [Sets.OrderedSet.Insert]. The new node is painted red and the tree is
// then repaired while its parent is red.
// Time: O(log n)
func (u *RBTree[K]) Insert(v K) bool {
	var p *rbNode[K]
	pos := &u.root
	for cur := *pos; cur != nil; cur = *pos {
		p = cur
		if u.less(v, cur.v) {
			pos = &cur.l
		} else if u.less(cur.v, v) {
			pos = &cur.r
		} else {
			return false
		}
	}
	n := &rbNode[K]{v: v, p: p, red: true}
	*pos = n
	u.sz++
	u.insertFix(n)
	return true
}

// insertFix restores the color invariants after z was attached as a red leaf.
// A red parent is never the root, so the grandparent exists.
func (u *RBTree[K]) insertFix(z *rbNode[K]) {
	for isRed(z.p) {
		p := z.p
		g := p.p
		if p == g.l {
			if y := g.r; isRed(y) {
				p.red, y.red, g.red = false, false, true
				z = g
				continue
			}
			if z == p.r {
				z = p
				u.rotateLeft(z)
				p = z.p
			}
			p.red, g.red = false, true
			u.rotateRight(g)
		} else {
			if y := g.l; isRed(y) {
				p.red, y.red, g.red = false, false, true
				z = g
				continue
			}
			if z == p.l {
				z = p
				u.rotateRight(z)
				p = z.p
			}
			p.red, g.red = false, true
			u.rotateLeft(g)
		}
	}
	u.root.red = false
}

// Erase [Sets.OrderedSet.Erase]
// Time: O(log n)
func (u *RBTree[K]) Erase(v K) bool {
	z := find[K](u.root, u.less, v)
	if z == nil {
		return false
	}
	u.delete(z)
	u.sz--
	return true
}

// delete unlinks z. When a black node leaves the tree, x, the node that took
// its place (possibly nil, hence xp), carries an extra black that deleteFix
// pushes up or absorbs.
func (u *RBTree[K]) delete(z *rbNode[K]) {
	var x, xp *rbNode[K]
	removedRed := z.red
	if z.l == nil {
		x, xp = z.r, z.p
		u.replaceChild(z, z.r)
	} else if z.r == nil {
		x, xp = z.l, z.p
		u.replaceChild(z, z.l)
	} else {
		y := minNode[K](z.r)
		removedRed = y.red
		x = y.r
		if y.p == z {
			xp = y
		} else {
			xp = y.p
			u.replaceChild(y, y.r)
			y.r = z.r
			y.r.p = y
		}
		u.replaceChild(z, y)
		y.l = z.l
		y.l.p = y
		y.red = z.red
	}
	z.l, z.r, z.p = nil, nil, nil
	if !removedRed {
		u.deleteFix(x, xp)
	}
}

// deleteFix resolves a double black at x, whose parent is xp.
//
//  1. sibling red: rotate at xp so the sibling becomes black.
//  2. sibling black, both nephews black: paint sibling red, move up.
//  3. sibling black, near nephew red, far black: rotate at sibling, giving 4.
//  4. sibling black, far nephew red: recolor, rotate at xp, done.
func (u *RBTree[K]) deleteFix(x, xp *rbNode[K]) {
	for x != u.root && !isRed(x) {
		if x == xp.l {
			w := xp.r
			if w.red {
				w.red, xp.red = false, true
				u.rotateLeft(xp)
				w = xp.r
			}
			if !isRed(w.l) && !isRed(w.r) {
				w.red = true
				x, xp = xp, xp.p
				continue
			}
			if !isRed(w.r) {
				w.l.red, w.red = false, true
				u.rotateRight(w)
				w = xp.r
			}
			w.red, xp.red, w.r.red = xp.red, false, false
			u.rotateLeft(xp)
		} else {
			w := xp.l
			if w.red {
				w.red, xp.red = false, true
				u.rotateRight(xp)
				w = xp.l
			}
			if !isRed(w.l) && !isRed(w.r) {
				w.red = true
				x, xp = xp, xp.p
				continue
			}
			if !isRed(w.l) {
				w.r.red, w.red = false, true
				u.rotateLeft(w)
				w = xp.l
			}
			w.red, xp.red, w.l.red = xp.red, false, false
			u.rotateRight(xp)
		}
		x = u.root
	}
	if x != nil {
		x.red = false
	}
}

// Contains [Sets.OrderedSet.Contains]
// Time: O(log n); Space: O(1)
func (u *RBTree[K]) Contains(v K) bool {
	return find[K](u.root, u.less, v) != nil
}

// Find [Sets.OrderedSet.Find]
func (u *RBTree[K]) Find(v K) (K, bool) {
	return keyOf[K](find[K](u.root, u.less, v))
}

// At [Sets.OrderedSet.At]
func (u *RBTree[K]) At(v K) (k K, e error) {
	if n := find[K](u.root, u.less, v); n != nil {
		return n.v, nil
	}
	return k, Go_Ordered.KeyAbsentError[K]{Key: v}
}

// Min [Sets.OrderedSet.Min]
func (u *RBTree[K]) Min() (k K, e error) {
	if u.root == nil {
		return k, Go_Ordered.EmptyError{Op: "Min"}
	}
	return minNode[K](u.root).v, nil
}

// Max [Sets.OrderedSet.Max]
func (u *RBTree[K]) Max() (k K, e error) {
	if u.root == nil {
		return k, Go_Ordered.EmptyError{Op: "Max"}
	}
	return maxNode[K](u.root).v, nil
}

// LowerBound [Sets.OrderedSet.LowerBound]
func (u *RBTree[K]) LowerBound(v K) (K, bool) {
	return keyOf[K](lowerBound[K](u.root, u.less, v))
}

// UpperBound [Sets.OrderedSet.UpperBound]
func (u *RBTree[K]) UpperBound(v K) (K, bool) {
	return keyOf[K](upperBound[K](u.root, u.less, v))
}

// Floor [Sets.OrderedSet.Floor]
func (u *RBTree[K]) Floor(v K) (K, bool) {
	return keyOf[K](floor[K](u.root, u.less, v))
}

func (u *RBTree[K]) Size() int {
	return u.sz
}

func (u *RBTree[K]) Empty() bool {
	return u.sz == 0
}

// Clear drops every node.
func (u *RBTree[K]) Clear() {
	u.root, u.sz = nil, 0
}

// Height is computed on demand. Recursive.
// Time: O(n)
func (u *RBTree[K]) Height() int {
	return height[K](u.root)
}

// BlackHeight is the number of black nodes on the leftmost root to nil path.
func (u *RBTree[K]) BlackHeight() (bh int) {
	for n := u.root; n != nil; n = n.l {
		if !n.red {
			bh++
		}
	}
	return
}

func (u *RBTree[K]) PreOrder(visit func(K) bool) {
	preOrder[K](u.root, keys[K, rbNode[K]](visit))
}

// InOrder follows the successor links, like RBIterator.
func (u *RBTree[K]) InOrder(visit func(K) bool) {
	for it := u.Begin(); it.Valid() && visit(it.Key()); it.Next() {
	}
}

func (u *RBTree[K]) PostOrder(visit func(K) bool) {
	postOrder[K](u.root, keys[K, rbNode[K]](visit))
}

func (u *RBTree[K]) LevelOrder(visit func(K) bool) {
	levelOrder[K](u.root, keys[K, rbNode[K]](visit))
}

// All returns an iterator over the keys in ascending order.
func (u *RBTree[K]) All() iter.Seq[K] {
	return u.InOrder
}

// Backward returns an iterator over the keys in descending order.
func (u *RBTree[K]) Backward() iter.Seq[K] {
	return func(yield func(K) bool) {
		for it := u.Last(); it.Valid() && yield(it.Key()); it.Prev() {
		}
	}
}

func (u *RBTree[K]) ToSortedSlice() []K {
	s := make([]K, 0, u.sz)
	u.InOrder(func(k K) bool {
		s = append(s, k)
		return true
	})
	return s
}

// Check [Tree.Check]. Verifies ordering, parent links and the three color
// invariants. Recursive.
func (u *RBTree[K]) Check() error {
	if u.root == nil {
		return nil
	}
	if u.root.red {
		return errors.New("root is red")
	}
	if u.root.p != nil {
		return errors.New("root has a parent")
	}
	if e := checkOrder[K](u.root, u.less); e != nil {
		return e
	}
	_, e := u.check(u.root)
	return e
}

// check returns the black height of the subtree at n.
func (u *RBTree[K]) check(n *rbNode[K]) (int, error) {
	if n == nil {
		return 1, nil
	}
	for _, c := range [2]*rbNode[K]{n.l, n.r} {
		if c == nil {
			continue
		}
		if c.p != n {
			return 0, fmt.Errorf("node %v has a wrong parent link", c.v)
		}
		if n.red && c.red {
			return 0, fmt.Errorf("red node %v has red child %v", n.v, c.v)
		}
	}
	lh, e := u.check(n.l)
	if e != nil {
		return 0, e
	}
	rh, e := u.check(n.r)
	if e != nil {
		return 0, e
	}
	if lh != rh {
		return 0, fmt.Errorf("node %v has black heights %d and %d", n.v, lh, rh)
	}
	if !n.red {
		lh++
	}
	return lh, nil
}

// Verify [Sets.OrderedSet.Verify]
func (u *RBTree[K]) Verify() bool {
	return u.Check() == nil
}

// Clone returns a deep copy of u. Recursive.
func (u *RBTree[K]) Clone() *RBTree[K] {
	return &RBTree[K]{u.root.clone(nil), u.sz, u.less}
}

// Swap exchanges the contents of u and o.
func (u *RBTree[K]) Swap(o *RBTree[K]) {
	*u, *o = *o, *u
}
