package Trees

// RBIterator is a bidirectional cursor over an RBTree. The position past the
// maximum is End; it isn't Valid, and Prev from End moves to the maximum.
// Any modification of the tree may invalidate the iterator.
type RBIterator[K any] struct {
	t *RBTree[K]
	n *rbNode[K]
}

// Begin is positioned at the minimum, or End if the tree is empty.
func (u *RBTree[K]) Begin() RBIterator[K] {
	if u.root == nil {
		return u.End()
	}
	return RBIterator[K]{u, minNode[K](u.root)}
}

// Last is positioned at the maximum, or End if the tree is empty.
func (u *RBTree[K]) Last() RBIterator[K] {
	if u.root == nil {
		return u.End()
	}
	return RBIterator[K]{u, maxNode[K](u.root)}
}

// End is the position past the maximum.
func (u *RBTree[K]) End() RBIterator[K] {
	return RBIterator[K]{u, nil}
}

// Seek is positioned at the smallest key >= k, or End.
func (u *RBTree[K]) Seek(k K) RBIterator[K] {
	return RBIterator[K]{u, lowerBound[K](u.root, u.less, k)}
}

// SeekAfter is positioned at the smallest key > k, or End.
func (u *RBTree[K]) SeekAfter(k K) RBIterator[K] {
	return RBIterator[K]{u, upperBound[K](u.root, u.less, k)}
}

// Valid reports whether the iterator is at a key.
func (it RBIterator[K]) Valid() bool {
	return it.n != nil
}

// Key at the current position. It is illegal to call Key if the iterator isn't
// Valid.
func (it RBIterator[K]) Key() K {
	return it.n.v
}

// Next moves to the successor: the leftmost node of the right subtree if there
// is one, otherwise the first ancestor reached from a left child. Next at End
// stays at End.
func (it *RBIterator[K]) Next() {
	if it.n != nil {
		it.n = it.n.next()
	}
}

// Prev moves to the predecessor. Prev from End moves to the maximum, Prev from
// the minimum moves to End.
func (it *RBIterator[K]) Prev() {
	if it.n == nil {
		if it.t.root != nil {
			it.n = maxNode[K](it.t.root)
		}
		return
	}
	it.n = it.n.prev()
}

// Equal reports whether both iterators are at the same position.
func (it RBIterator[K]) Equal(o RBIterator[K]) bool {
	return it.t == o.t && it.n == o.n
}
