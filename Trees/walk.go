package Trees

import (
	"fmt"

	Go_Ordered "github.com/g-m-twostay/go-ordered"
	"github.com/g-m-twostay/go-ordered/Queues"
)

// Searches and traversals shared by BST, AVLTree and RBTree. They only read the
// tree, so a panicking visit leaves the tree intact.

// find returns the node holding a key equal to k, or nil.
// Time: O(D); Space: O(1)
func find[K, N any, P binary[K, N]](cur *N, less Go_Ordered.Less[K], k K) *N {
	for cur != nil {
		l, r := P(cur).children()
		if v := P(cur).key(); less(k, v) {
			cur = l
		} else if less(v, k) {
			cur = r
		} else {
			return cur
		}
	}
	return nil
}

// minNode is the leftmost node of the subtree at n. n mustn't be nil.
func minNode[K, N any, P binary[K, N]](n *N) *N {
	for l, _ := P(n).children(); l != nil; l, _ = P(n).children() {
		n = l
	}
	return n
}

// maxNode is the rightmost node of the subtree at n. n mustn't be nil.
func maxNode[K, N any, P binary[K, N]](n *N) *N {
	for _, r := P(n).children(); r != nil; _, r = P(n).children() {
		n = r
	}
	return n
}

// lowerBound returns the node with the smallest key >= k, or nil. It walks from
// the root remembering the last node where the search turned left.
// Time: O(D); Space: O(1)
func lowerBound[K, N any, P binary[K, N]](cur *N, less Go_Ordered.Less[K], k K) (cand *N) {
	for cur != nil {
		l, r := P(cur).children()
		if less(P(cur).key(), k) {
			cur = r
		} else {
			cand, cur = cur, l
		}
	}
	return
}

// upperBound returns the node with the smallest key > k, or nil.
// Time: O(D); Space: O(1)
func upperBound[K, N any, P binary[K, N]](cur *N, less Go_Ordered.Less[K], k K) (cand *N) {
	for cur != nil {
		l, r := P(cur).children()
		if less(k, P(cur).key()) {
			cand, cur = cur, l
		} else {
			cur = r
		}
	}
	return
}

// floor returns the node with the greatest key <= k, or nil.
// Time: O(D); Space: O(1)
func floor[K, N any, P binary[K, N]](cur *N, less Go_Ordered.Less[K], k K) (cand *N) {
	for cur != nil {
		l, r := P(cur).children()
		if less(k, P(cur).key()) {
			cur = l
		} else {
			cand, cur = cur, r
		}
	}
	return
}

// height of the subtree at n, 0 when n is nil.
func height[K, N any, P binary[K, N]](n *N) int {
	if n == nil {
		return 0
	}
	l, r := P(n).children()
	return max(height[K, N, P](l), height[K, N, P](r)) + 1
}

// preOrder visits node, left, right. Returns false if visit stopped the walk.
func preOrder[K, N any, P binary[K, N]](root *N, visit func(*N) bool) bool {
	if root == nil {
		return true
	}
	st := Queues.NewStack[*N](16)
	for st.Push(root); !st.Empty(); {
		n, _ := st.Pop()
		if !visit(n) {
			return false
		}
		l, r := P(n).children()
		if r != nil {
			st.Push(r)
		}
		if l != nil {
			st.Push(l)
		}
	}
	return true
}

// inOrder visits left, node, right using an explicit stack.
func inOrder[K, N any, P binary[K, N]](cur *N, visit func(*N) bool) bool {
	st := Queues.NewStack[*N](16)
	for cur != nil || !st.Empty() {
		for cur != nil {
			st.Push(cur)
			cur, _ = P(cur).children()
		}
		n, _ := st.Pop()
		if !visit(n) {
			return false
		}
		_, cur = P(n).children()
	}
	return true
}

// postOrder visits left, right, node. last is the most recently visited node,
// which tells whether the right subtree of the stack top is done.
func postOrder[K, N any, P binary[K, N]](cur *N, visit func(*N) bool) bool {
	st := Queues.NewStack[*N](16)
	var last *N
	for cur != nil || !st.Empty() {
		for cur != nil {
			st.Push(cur)
			cur, _ = P(cur).children()
		}
		top, _ := st.Top()
		if _, r := P(top).children(); r != nil && r != last {
			cur = r
			continue
		}
		st.Pop()
		if !visit(top) {
			return false
		}
		last = top
	}
	return true
}

// levelOrder visits nodes breadth first, left to right.
func levelOrder[K, N any, P binary[K, N]](root *N, visit func(*N) bool) bool {
	if root == nil {
		return true
	}
	q := Queues.NewDeque[*N](16)
	for q.PushBack(root); !q.Empty(); {
		n, _ := q.PopFront()
		if !visit(n) {
			return false
		}
		l, r := P(n).children()
		if l != nil {
			q.PushBack(l)
		}
		if r != nil {
			q.PushBack(r)
		}
	}
	return true
}

// checkOrder returns an error if an in-order walk isn't strictly increasing.
func checkOrder[K, N any, P binary[K, N]](root *N, less Go_Ordered.Less[K]) (e error) {
	var prev *N
	inOrder[K, N, P](root, func(n *N) bool {
		if prev != nil && !less(P(prev).key(), P(n).key()) {
			e = fmt.Errorf("keys out of order: %v before %v", P(prev).key(), P(n).key())
			return false
		}
		prev = n
		return true
	})
	return
}

// keys adapts a key visitor to a node visitor.
func keys[K, N any, P binary[K, N]](visit func(K) bool) func(*N) bool {
	return func(n *N) bool { return visit(P(n).key()) }
}
