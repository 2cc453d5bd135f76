package BTree

// A node in the BTree. A leaf has no children, an internal node has exactly
// len(keys)+1. children[i] holds the keys between keys[i-1] and keys[i].
type node[K any] struct {
	keys     []K
	children []*node[K]
}

func (n *node[K]) leaf() bool {
	return len(n.children) == 0
}

// minKey is the leftmost key of the subtree at n.
func (n *node[K]) minKey() K {
	for !n.leaf() {
		n = n.children[0]
	}
	return n.keys[0]
}

// maxKey is the rightmost key of the subtree at n.
func (n *node[K]) maxKey() K {
	for !n.leaf() {
		n = n.children[len(n.children)-1]
	}
	return n.keys[len(n.keys)-1]
}

// inOrder visits the keys of the subtree at n in ascending order, returning
// false as soon as visit does. Recursive.
func (n *node[K]) inOrder(visit func(K) bool) bool {
	for i, k := range n.keys {
		if !n.leaf() && !n.children[i].inOrder(visit) {
			return false
		}
		if !visit(k) {
			return false
		}
	}
	return n.leaf() || n.children[len(n.keys)].inOrder(visit)
}

// clone is a deep copy of the subtree at n. Recursive.
func (n *node[K]) clone() *node[K] {
	if n == nil {
		return nil
	}
	c := &node[K]{keys: append([]K(nil), n.keys...)}
	if !n.leaf() {
		c.children = make([]*node[K], len(n.children))
		for i, ch := range n.children {
			c.children[i] = ch.clone()
		}
	}
	return c
}
