package Trees

import "github.com/g-m-twostay/go-ordered/Sets"

// Tree is a binary search tree holding unique keys. Besides the ordered set
// operations it exposes the four classic traversals. Visitors return false to
// stop a traversal early; the tree must not be modified from a visitor.
// Methods implemented recursively are noted, otherwise they are iterative.
type Tree[K any] interface {
	Sets.OrderedSet[K]
	//PreOrder visits a node before its subtrees.
	PreOrder(visit func(K) bool)
	//PostOrder visits a node after its subtrees.
	PostOrder(visit func(K) bool)
	//LevelOrder visits nodes breadth first.
	LevelOrder(visit func(K) bool)
	//Height of the tree, 0 when empty.
	Height() int
	//Check returns a description of the first violated invariant, or nil.
	Check() error
}

var (
	_ Tree[int] = (*BST[int])(nil)
	_ Tree[int] = (*AVLTree[int])(nil)
	_ Tree[int] = (*RBTree[int])(nil)
)
