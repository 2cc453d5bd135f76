package Lists

// SkipIterator is a forward cursor over a SkipList that follows the level 0
// links. Any modification of the list may invalidate the iterator.
type SkipIterator[K any] struct {
	n *node[K]
}

// Begin is positioned at the minimum.
func (u *SkipList[K]) Begin() SkipIterator[K] {
	return SkipIterator[K]{u.head.next[0]}
}

// Seek is positioned at the smallest key >= k.
func (u *SkipList[K]) Seek(k K) SkipIterator[K] {
	return SkipIterator[K]{u.lowerBound(k)}
}

// SeekAfter is positioned at the smallest key > k.
func (u *SkipList[K]) SeekAfter(k K) SkipIterator[K] {
	return SkipIterator[K]{u.lastNotAbove(k).next[0]}
}

// Valid reports whether the iterator is at a key.
func (it SkipIterator[K]) Valid() bool {
	return it.n != nil
}

// Key at the current position. It is illegal to call Key if the iterator isn't
// Valid.
func (it SkipIterator[K]) Key() K {
	return it.n.v
}

// Next moves to the successor. Next at the end stays there.
func (it *SkipIterator[K]) Next() {
	if it.n != nil {
		it.n = it.n.next[0]
	}
}
