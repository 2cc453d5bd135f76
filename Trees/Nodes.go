package Trees

// binary is satisfied by the node pointer types of the binary search trees in
// this package. It lets searches and traversals be written once.
type binary[K, N any] interface {
	*N
	children() (l, r *N)
	key() K
}

// A node in the BST.
type bstNode[K any] struct {
	v    K
	l, r *bstNode[K]
}

func (n *bstNode[K]) children() (*bstNode[K], *bstNode[K]) { return n.l, n.r }
func (n *bstNode[K]) key() K                               { return n.v }

func (n *bstNode[K]) clone() *bstNode[K] {
	if n == nil {
		return nil
	}
	return &bstNode[K]{n.v, n.l.clone(), n.r.clone()}
}

// A node in the AVLTree. h is the height of the subtree rooted here, a leaf has h=1.
type avlNode[K any] struct {
	v    K
	l, r *avlNode[K]
	h    int
}

func (n *avlNode[K]) children() (*avlNode[K], *avlNode[K]) { return n.l, n.r }
func (n *avlNode[K]) key() K                               { return n.v }

// height is 0 for nil.
func (n *avlNode[K]) height() int {
	if n == nil {
		return 0
	}
	return n.h
}

// fix recomputes h from the children.
func (n *avlNode[K]) fix() {
	n.h = max(n.l.height(), n.r.height()) + 1
}

// balance factor, height(l)-height(r).
func (n *avlNode[K]) balance() int {
	if n == nil {
		return 0
	}
	return n.l.height() - n.r.height()
}

func (n *avlNode[K]) clone() *avlNode[K] {
	if n == nil {
		return nil
	}
	return &avlNode[K]{n.v, n.l.clone(), n.r.clone(), n.h}
}

// rotateLeft performs a left rotation on the subtree at *n. n is passed by
// reference so the parent link is redirected to the new subtree root.
// Heights are updated on the demoted node first, then on the new root.
// Time: O(1); Space: O(1)
func rotateLeft[K any](n **avlNode[K]) {
	r := *n
	rc := r.r
	r.r = rc.l
	rc.l = r
	r.fix()
	rc.fix()
	*n = rc
}

// rotateRight is the mirror of rotateLeft.
// Time: O(1); Space: O(1)
func rotateRight[K any](n **avlNode[K]) {
	r := *n
	lc := r.l
	r.l = lc.r
	lc.r = r
	r.fix()
	lc.fix()
	*n = lc
}

// A node in the RBTree. p is a back reference used for iteration and fix-ups;
// nil children count as black.
type rbNode[K any] struct {
	v       K
	l, r, p *rbNode[K]
	red     bool
}

func (n *rbNode[K]) children() (*rbNode[K], *rbNode[K]) { return n.l, n.r }
func (n *rbNode[K]) key() K                             { return n.v }

func isRed[K any](n *rbNode[K]) bool {
	return n != nil && n.red
}

func (n *rbNode[K]) clone(p *rbNode[K]) *rbNode[K] {
	if n == nil {
		return nil
	}
	c := &rbNode[K]{v: n.v, p: p, red: n.red}
	c.l, c.r = n.l.clone(c), n.r.clone(c)
	return c
}

// next is the in-order successor of n, nil after the maximum.
func (n *rbNode[K]) next() *rbNode[K] {
	if n.r != nil {
		return minNode[K](n.r)
	}
	for n.p != nil && n.p.r == n {
		n = n.p
	}
	return n.p
}

// prev is the in-order predecessor of n, nil before the minimum.
func (n *rbNode[K]) prev() *rbNode[K] {
	if n.l != nil {
		return maxNode[K](n.l)
	}
	for n.p != nil && n.p.l == n {
		n = n.p
	}
	return n.p
}
