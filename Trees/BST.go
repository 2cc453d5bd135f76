package Trees

import (
	"iter"

	Go_Ordered "github.com/g-m-twostay/go-ordered"
	"golang.org/x/exp/constraints"
)

// BST is an unbalanced binary search tree with no repeated keys. It is the
// baseline the balanced trees are measured against: D, the depth, is O(log n)
// for random input but degrades to n for sorted input.
// The zero value isn't usable, create one with NewBST or NewBSTFunc.
type BST[K any] struct {
	root *bstNode[K]
	sz   int
	less Go_Ordered.Less[K]
}

// NewBST returns an empty BST ordered by <.
func NewBST[K constraints.Ordered]() *BST[K] {
	return NewBSTFunc(Go_Ordered.Natural[K]())
}

// NewBSTFunc returns an empty BST ordered by less.
func NewBSTFunc[K any](less Go_Ordered.Less[K]) *BST[K] {
	return &BST[K]{less: less}
}

// BSTFrom inserts ks, in order, into a new BST ordered by <.
func BSTFrom[K constraints.Ordered](ks ...K) *BST[K] {
	u := NewBST[K]()
	for _, k := range ks {
		u.Insert(k)
	}
	return u
}

// insert v into the subtree at *curPtr. Recursive.
func (u *BST[K]) insert(curPtr **bstNode[K], v K) bool {
	if cur := *curPtr; cur == nil {
		*curPtr = &bstNode[K]{v: v}
		return true
	} else if u.less(v, cur.v) {
		return u.insert(&cur.l, v)
	} else if u.less(cur.v, v) {
		return u.insert(&cur.r, v)
	}
	return false
}

// Insert [Sets.OrderedSet.Insert]. Recursive.
// Time: O(D)
func (u *BST[K]) Insert(v K) bool {
	if u.insert(&u.root, v) {
		u.sz++
		return true
	}
	return false
}

// remove v from the subtree at *curPtr. A node with two children takes the key
// of its in-order successor, which is then removed from the right subtree.
// Recursive.
func (u *BST[K]) remove(curPtr **bstNode[K], v K) bool {
	cur := *curPtr
	if cur == nil {
		return false
	} else if u.less(v, cur.v) {
		return u.remove(&cur.l, v)
	} else if u.less(cur.v, v) {
		return u.remove(&cur.r, v)
	}
	if cur.l == nil {
		*curPtr = cur.r
	} else if cur.r == nil {
		*curPtr = cur.l
	} else {
		succ := minNode[K](cur.r)
		cur.v = succ.v
		return u.remove(&cur.r, succ.v)
	}
	return true
}

// Erase [Sets.OrderedSet.Erase]. Recursive.
// Time: O(D)
func (u *BST[K]) Erase(v K) bool {
	if u.remove(&u.root, v) {
		u.sz--
		return true
	}
	return false
}

// Contains [Sets.OrderedSet.Contains]
// Time: O(D); Space: O(1)
func (u *BST[K]) Contains(v K) bool {
	return find[K](u.root, u.less, v) != nil
}

// Find [Sets.OrderedSet.Find]
func (u *BST[K]) Find(v K) (K, bool) {
	return keyOf[K](find[K](u.root, u.less, v))
}

// At [Sets.OrderedSet.At]
func (u *BST[K]) At(v K) (k K, e error) {
	if n := find[K](u.root, u.less, v); n != nil {
		return n.v, nil
	}
	return k, Go_Ordered.KeyAbsentError[K]{Key: v}
}

// Min [Sets.OrderedSet.Min]
func (u *BST[K]) Min() (k K, e error) {
	if u.root == nil {
		return k, Go_Ordered.EmptyError{Op: "Min"}
	}
	return minNode[K](u.root).v, nil
}

// Max [Sets.OrderedSet.Max]
func (u *BST[K]) Max() (k K, e error) {
	if u.root == nil {
		return k, Go_Ordered.EmptyError{Op: "Max"}
	}
	return maxNode[K](u.root).v, nil
}

// LowerBound [Sets.OrderedSet.LowerBound]
func (u *BST[K]) LowerBound(v K) (K, bool) {
	return keyOf[K](lowerBound[K](u.root, u.less, v))
}

// UpperBound [Sets.OrderedSet.UpperBound]
func (u *BST[K]) UpperBound(v K) (K, bool) {
	return keyOf[K](upperBound[K](u.root, u.less, v))
}

// Floor [Sets.OrderedSet.Floor]
func (u *BST[K]) Floor(v K) (K, bool) {
	return keyOf[K](floor[K](u.root, u.less, v))
}

func (u *BST[K]) Size() int {
	return u.sz
}

func (u *BST[K]) Empty() bool {
	return u.sz == 0
}

// Clear drops every node.
func (u *BST[K]) Clear() {
	u.root, u.sz = nil, 0
}

// Height is computed on demand. Recursive.
// Time: O(n)
func (u *BST[K]) Height() int {
	return height[K](u.root)
}

func (u *BST[K]) PreOrder(visit func(K) bool) {
	preOrder[K](u.root, keys[K, bstNode[K]](visit))
}

func (u *BST[K]) InOrder(visit func(K) bool) {
	inOrder[K](u.root, keys[K, bstNode[K]](visit))
}

func (u *BST[K]) PostOrder(visit func(K) bool) {
	postOrder[K](u.root, keys[K, bstNode[K]](visit))
}

func (u *BST[K]) LevelOrder(visit func(K) bool) {
	levelOrder[K](u.root, keys[K, bstNode[K]](visit))
}

// All returns an iterator over the keys in ascending order.
func (u *BST[K]) All() iter.Seq[K] {
	return u.InOrder
}

func (u *BST[K]) ToSortedSlice() []K {
	s := make([]K, 0, u.sz)
	u.InOrder(func(k K) bool {
		s = append(s, k)
		return true
	})
	return s
}

// Check [Tree.Check]
func (u *BST[K]) Check() error {
	return checkOrder[K](u.root, u.less)
}

// Verify [Sets.OrderedSet.Verify]
func (u *BST[K]) Verify() bool {
	return u.Check() == nil
}

// Clone returns a deep copy of u. Recursive.
func (u *BST[K]) Clone() *BST[K] {
	return &BST[K]{u.root.clone(), u.sz, u.less}
}

// Swap exchanges the contents of u and o.
func (u *BST[K]) Swap(o *BST[K]) {
	*u, *o = *o, *u
}

// keyOf unpacks an optional node.
func keyOf[K, N any, P binary[K, N]](n *N) (k K, ok bool) {
	if n == nil {
		return
	}
	return P(n).key(), true
}
