package Trees

import (
	"fmt"
	"iter"

	Go_Ordered "github.com/g-m-twostay/go-ordered"
	"golang.org/x/exp/constraints"
)

// AVLTree is a height balanced binary search tree with no repeated keys. For
// every node the heights of the two subtrees differ by at most 1, so the height
// D of the tree is less than 1.44*log2(n+2).
// Each node stores the height of its subtree, the additional memory cost is
// size(int)*n.
type AVLTree[K any] struct {
	root *avlNode[K]
	sz   int
	less Go_Ordered.Less[K]
}

// NewAVLTree returns an empty AVLTree ordered by <.
func NewAVLTree[K constraints.Ordered]() *AVLTree[K] {
	return NewAVLTreeFunc(Go_Ordered.Natural[K]())
}

// NewAVLTreeFunc returns an empty AVLTree ordered by less.
func NewAVLTreeFunc[K any](less Go_Ordered.Less[K]) *AVLTree[K] {
	return &AVLTree[K]{less: less}
}

// AVLTreeFrom inserts ks, in order, into a new AVLTree ordered by <.
func AVLTreeFrom[K constraints.Ordered](ks ...K) *AVLTree[K] {
	u := NewAVLTree[K]()
	for _, k := range ks {
		u.Insert(k)
	}
	return u
}

// rebalance the subtree at *curPtr after one of its subtrees changed height by
// at most 1. curPtr is passed by reference.
//
//	LL: bf>1, bf(l)>=0   rotate right
//	LR: bf>1, bf(l)<0    rotate left on l, then right
//	RR: bf<-1, bf(r)<=0  rotate left
//	RL: bf<-1, bf(r)>0   rotate right on r, then left
//
// Time: O(1)
func (u *AVLTree[K]) rebalance(curPtr **avlNode[K]) {
	cur := *curPtr
	cur.fix()
	if bf := cur.balance(); bf > 1 {
		if cur.l.balance() < 0 {
			rotateLeft(&cur.l)
		}
		rotateRight(curPtr)
	} else if bf < -1 {
		if cur.r.balance() > 0 {
			rotateRight(&cur.r)
		}
		rotateLeft(curPtr)
	}
}

// insert v to the subtree at *curPtr, rebalancing every node on the way back
// up. Recursive.
func (u *AVLTree[K]) insert(curPtr **avlNode[K], v K) (inserted bool) {
	cur := *curPtr
	if cur == nil {
		*curPtr = &avlNode[K]{v: v, h: 1}
		return true
	} else if u.less(v, cur.v) {
		inserted = u.insert(&cur.l, v)
	} else if u.less(cur.v, v) {
		inserted = u.insert(&cur.r, v)
	} else {
		return false
	}
	if inserted {
		u.rebalance(curPtr)
	}
	return
}

// Insert [Sets.OrderedSet.Insert]. Recursive.
// Time: O(log n)
func (u *AVLTree[K]) Insert(v K) bool {
	if u.insert(&u.root, v) {
		u.sz++
		return true
	}
	return false
}

// remove v from the subtree at *curPtr. A node with two children takes the key
// of its in-order successor, which is then removed from the right subtree.
// Recursive.
func (u *AVLTree[K]) remove(curPtr **avlNode[K], v K) (removed bool) {
	cur := *curPtr
	if cur == nil {
		return false
	} else if u.less(v, cur.v) {
		removed = u.remove(&cur.l, v)
	} else if u.less(cur.v, v) {
		removed = u.remove(&cur.r, v)
	} else if cur.l == nil {
		*curPtr = cur.r
		return true
	} else if cur.r == nil {
		*curPtr = cur.l
		return true
	} else {
		succ := minNode[K](cur.r)
		cur.v = succ.v
		removed = u.remove(&cur.r, succ.v)
	}
	if removed {
		u.rebalance(curPtr)
	}
	return
}

// Erase [Sets.OrderedSet.Erase]. Recursive.
// Time: O(log n)
func (u *AVLTree[K]) Erase(v K) bool {
	if u.remove(&u.root, v) {
		u.sz--
		return true
	}
	return false
}

// Contains [Sets.OrderedSet.Contains]
// Time: O(log n); Space: O(1)
func (u *AVLTree[K]) Contains(v K) bool {
	return find[K](u.root, u.less, v) != nil
}

// Find [Sets.OrderedSet.Find]
func (u *AVLTree[K]) Find(v K) (K, bool) {
	return keyOf[K](find[K](u.root, u.less, v))
}

// At [Sets.OrderedSet.At]
func (u *AVLTree[K]) At(v K) (k K, e error) {
	if n := find[K](u.root, u.less, v); n != nil {
		return n.v, nil
	}
	return k, Go_Ordered.KeyAbsentError[K]{Key: v}
}

// Min [Sets.OrderedSet.Min]
func (u *AVLTree[K]) Min() (k K, e error) {
	if u.root == nil {
		return k, Go_Ordered.EmptyError{Op: "Min"}
	}
	return minNode[K](u.root).v, nil
}

// Max [Sets.OrderedSet.Max]
func (u *AVLTree[K]) Max() (k K, e error) {
	if u.root == nil {
		return k, Go_Ordered.EmptyError{Op: "Max"}
	}
	return maxNode[K](u.root).v, nil
}

// Root returns the key at the root of the tree.
func (u *AVLTree[K]) Root() (K, bool) {
	return keyOf[K](u.root)
}

// LowerBound [Sets.OrderedSet.LowerBound]
func (u *AVLTree[K]) LowerBound(v K) (K, bool) {
	return keyOf[K](lowerBound[K](u.root, u.less, v))
}

// UpperBound [Sets.OrderedSet.UpperBound]
func (u *AVLTree[K]) UpperBound(v K) (K, bool) {
	return keyOf[K](upperBound[K](u.root, u.less, v))
}

// Floor [Sets.OrderedSet.Floor]
func (u *AVLTree[K]) Floor(v K) (K, bool) {
	return keyOf[K](floor[K](u.root, u.less, v))
}

func (u *AVLTree[K]) Size() int {
	return u.sz
}

func (u *AVLTree[K]) Empty() bool {
	return u.sz == 0
}

// Clear drops every node.
func (u *AVLTree[K]) Clear() {
	u.root, u.sz = nil, 0
}

// Height is read from the root.
// Time: O(1)
func (u *AVLTree[K]) Height() int {
	return u.root.height()
}

func (u *AVLTree[K]) PreOrder(visit func(K) bool) {
	preOrder[K](u.root, keys[K, avlNode[K]](visit))
}

func (u *AVLTree[K]) InOrder(visit func(K) bool) {
	inOrder[K](u.root, keys[K, avlNode[K]](visit))
}

func (u *AVLTree[K]) PostOrder(visit func(K) bool) {
	postOrder[K](u.root, keys[K, avlNode[K]](visit))
}

func (u *AVLTree[K]) LevelOrder(visit func(K) bool) {
	levelOrder[K](u.root, keys[K, avlNode[K]](visit))
}

// All returns an iterator over the keys in ascending order.
func (u *AVLTree[K]) All() iter.Seq[K] {
	return u.InOrder
}

func (u *AVLTree[K]) ToSortedSlice() []K {
	s := make([]K, 0, u.sz)
	u.InOrder(func(k K) bool {
		s = append(s, k)
		return true
	})
	return s
}

// Check [Tree.Check]. Besides ordering it verifies that every stored height
// matches the children and every balance factor is in [-1, 1].
func (u *AVLTree[K]) Check() (e error) {
	if e = checkOrder[K](u.root, u.less); e != nil {
		return
	}
	postOrder[K](u.root, func(n *avlNode[K]) bool {
		if want := max(n.l.height(), n.r.height()) + 1; n.h != want {
			e = fmt.Errorf("node %v has height %d, want %d", n.v, n.h, want)
		} else if bf := n.balance(); bf < -1 || bf > 1 {
			e = fmt.Errorf("node %v has balance factor %d", n.v, bf)
		}
		return e == nil
	})
	return
}

// Verify [Sets.OrderedSet.Verify]
func (u *AVLTree[K]) Verify() bool {
	return u.Check() == nil
}

// Clone returns a deep copy of u. Recursive.
func (u *AVLTree[K]) Clone() *AVLTree[K] {
	return &AVLTree[K]{u.root.clone(), u.sz, u.less}
}

// Swap exchanges the contents of u and o.
func (u *AVLTree[K]) Swap(o *AVLTree[K]) {
	*u, *o = *o, *u
}
