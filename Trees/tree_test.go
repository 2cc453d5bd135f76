package Trees

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	Go_Ordered "github.com/g-m-twostay/go-ordered"
	"github.com/g-m-twostay/go-ordered/Sets"
	"github.com/g-m-twostay/go-ordered/internal/settest"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/google/go-cmp/cmp"
)

var rg = rand.New(rand.NewSource(0))

const (
	tN        = 20000
	tValRange = 40000
)

func TestBST_Contract(t *testing.T) {
	settest.Run(t, func() Sets.OrderedSet[int] { return NewBST[int]() })
}

func TestAVLTree_Contract(t *testing.T) {
	settest.Run(t, func() Sets.OrderedSet[int] { return NewAVLTree[int]() })
}

func TestRBTree_Contract(t *testing.T) {
	settest.Run(t, func() Sets.OrderedSet[int] { return NewRBTree[int]() })
}

func collect(walk func(func(int) bool)) (s []int) {
	walk(func(k int) bool {
		s = append(s, k)
		return true
	})
	return
}

func TestAVLTree_RotationChain(t *testing.T) {
	tree := AVLTreeFrom(1, 2, 3, 4, 5, 6, 7)
	if tree.Size() != 7 {
		t.Errorf("size is %d, want 7", tree.Size())
	}
	if tree.Height() != 3 {
		t.Errorf("height is %d, want 3", tree.Height())
	}
	if r, _ := tree.Root(); r != 4 {
		t.Errorf("root is %d, want 4", r)
	}
	if d := cmp.Diff([]int{1, 2, 3, 4, 5, 6, 7}, tree.ToSortedSlice()); d != "" {
		t.Errorf("in-order (-want +got):\n%s", d)
	}
	if d := cmp.Diff([]int{4, 2, 6, 1, 3, 5, 7}, collect(tree.LevelOrder)); d != "" {
		t.Errorf("level order (-want +got):\n%s", d)
	}
	if e := tree.Check(); e != nil {
		t.Error(e)
	}
}

func TestAVLTree_DoubleRotations(t *testing.T) {
	// LR at the root.
	lr := AVLTreeFrom(30, 10, 20)
	if r, _ := lr.Root(); r != 20 || lr.Height() != 2 {
		t.Errorf("LR: root %d, height %d", r, lr.Height())
	}
	// RL at the root.
	rl := AVLTreeFrom(10, 30, 20)
	if r, _ := rl.Root(); r != 20 || rl.Height() != 2 {
		t.Errorf("RL: root %d, height %d", r, rl.Height())
	}
	// Erasing from the short side forces a rotation on the way up.
	tree := AVLTreeFrom(20, 10, 30, 40)
	tree.Erase(10)
	if r, _ := tree.Root(); r != 30 {
		t.Errorf("root after erase is %d, want 30", r)
	}
	if e := tree.Check(); e != nil {
		t.Error(e)
	}
}

func TestRBTree_FixUp(t *testing.T) {
	tree := RBTreeFrom(10, 20, 30, 15, 25, 5, 1)
	if e := tree.Check(); e != nil {
		t.Fatal(e)
	}
	if d := cmp.Diff([]int{1, 5, 10, 15, 20, 25, 30}, tree.ToSortedSlice()); d != "" {
		t.Errorf("in-order (-want +got):\n%s", d)
	}
	if v, ok := tree.LowerBound(16); !ok || v != 20 {
		t.Errorf("LowerBound(16) is %d,%v, want 20", v, ok)
	}
	for _, k := range []int{20, 10, 1} {
		tree.Erase(k)
		if e := tree.Check(); e != nil {
			t.Errorf("after erasing %d: %v", k, e)
		}
	}
	if d := cmp.Diff([]int{5, 15, 25, 30}, tree.ToSortedSlice()); d != "" {
		t.Errorf("after erases (-want +got):\n%s", d)
	}
}

func TestBST_Traversals(t *testing.T) {
	tree := BSTFrom(4, 2, 6, 1, 3, 5, 7)
	for _, c := range []struct {
		name string
		walk func(func(int) bool)
		want []int
	}{
		{"pre", tree.PreOrder, []int{4, 2, 1, 3, 6, 5, 7}},
		{"in", tree.InOrder, []int{1, 2, 3, 4, 5, 6, 7}},
		{"post", tree.PostOrder, []int{1, 3, 2, 5, 7, 6, 4}},
		{"level", tree.LevelOrder, []int{4, 2, 6, 1, 3, 5, 7}},
	} {
		if d := cmp.Diff(c.want, collect(c.walk)); d != "" {
			t.Errorf("%s-order (-want +got):\n%s", c.name, d)
		}
	}
	var got []int
	tree.PostOrder(func(k int) bool {
		got = append(got, k)
		return k != 2
	})
	if d := cmp.Diff([]int{1, 3, 2}, got); d != "" {
		t.Errorf("stopped post-order (-want +got):\n%s", d)
	}
	if tree.Height() != 3 {
		t.Errorf("height is %d, want 3", tree.Height())
	}
}

func TestBST_Degenerate(t *testing.T) {
	tree := NewBST[int]()
	for i := range 500 {
		tree.Insert(i)
	}
	if tree.Height() != 500 {
		t.Errorf("height of a chain is %d, want 500", tree.Height())
	}
	if e := tree.Check(); e != nil {
		t.Error(e)
	}
}

func TestBST_EraseTwoChildren(t *testing.T) {
	tree := BSTFrom(50, 30, 70, 20, 40, 60, 80, 65)
	tree.Erase(50)
	if d := cmp.Diff([]int{60, 30, 20, 40, 70, 65, 80}, collect(tree.PreOrder)); d != "" {
		t.Errorf("successor not copied in (-want +got):\n%s", d)
	}
}

// TestTrees_Random runs the same random workload on all three trees and a
// gods treeset, checking the invariants as it goes.
func TestTrees_Random(t *testing.T) {
	trees := []Tree[int]{NewBST[int](), NewAVLTree[int](), NewRBTree[int]()}
	ref := treeset.NewWithIntComparator()
	for i := range tN {
		k := rg.Intn(tValRange)
		erase := rg.Intn(4) == 0
		in := ref.Contains(k)
		for _, tree := range trees {
			var changed bool
			if erase {
				changed = tree.Erase(k)
			} else {
				changed = tree.Insert(k)
			}
			if changed != (erase == in) {
				t.Fatalf("%T: op on %d returned %v, present=%v", tree, k, changed, in)
			}
		}
		if erase {
			ref.Remove(k)
		} else {
			ref.Add(k)
		}
		if i%2000 == 0 {
			for _, tree := range trees {
				if e := tree.Check(); e != nil {
					t.Fatalf("%T after %d ops: %v", tree, i, e)
				}
			}
		}
	}
	want := make([]int, 0, ref.Size())
	for _, v := range ref.Values() {
		want = append(want, v.(int))
	}
	for _, tree := range trees {
		if d := cmp.Diff(want, tree.ToSortedSlice()); d != "" {
			t.Errorf("%T content (-want +got):\n%s", tree, d)
		}
	}
	t.Logf("size: %d, heights: BST %d, AVL %d, RB %d", ref.Size(), trees[0].Height(), trees[1].Height(), trees[2].Height())
}

func TestTrees_HeightBound(t *testing.T) {
	const n = 1 << 12
	for _, ascending := range []bool{true, false} {
		avl, rb := NewAVLTree[int](), NewRBTree[int]()
		for i := range n {
			k := i
			if !ascending {
				k = n - i
			}
			avl.Insert(k)
			rb.Insert(k)
		}
		if lim := 1.45 * math.Log2(n+2); float64(avl.Height()) > lim {
			t.Errorf("AVL height %d exceeds %f", avl.Height(), lim)
		}
		if lim := 2 * math.Log2(n+1); float64(rb.Height()) > lim {
			t.Errorf("RB height %d exceeds %f", rb.Height(), lim)
		}
		if avl.Check() != nil || rb.Check() != nil {
			t.Errorf("invalid after sorted inserts")
		}
	}
}

func TestRBTree_Iterator(t *testing.T) {
	tree := RBTreeFrom(5, 3, 8, 1, 4)
	it := tree.End()
	it.Prev()
	if !it.Valid() || it.Key() != 8 {
		t.Errorf("Prev from End is not the maximum")
	}
	var back []int
	for ; it.Valid(); it.Prev() {
		back = append(back, it.Key())
	}
	if d := cmp.Diff([]int{8, 5, 4, 3, 1}, back); d != "" {
		t.Errorf("backwards (-want +got):\n%s", d)
	}
	if !it.Equal(tree.End()) {
		t.Errorf("Prev from the minimum is not End")
	}
	it = tree.Seek(6)
	if !it.Valid() || it.Key() != 8 {
		t.Errorf("Seek(6) is not at 8")
	}
	it.Next()
	if !it.Equal(tree.End()) {
		t.Errorf("Next from the maximum is not End")
	}
	it.Next()
	if it.Valid() {
		t.Errorf("Next at End moved")
	}
	if it = tree.SeekAfter(4); it.Key() != 5 {
		t.Errorf("SeekAfter(4) is at %d", it.Key())
	}
	var rev []int
	for k := range tree.Backward() {
		rev = append(rev, k)
	}
	if d := cmp.Diff([]int{8, 5, 4, 3, 1}, rev); d != "" {
		t.Errorf("Backward (-want +got):\n%s", d)
	}
	empty := NewRBTree[int]()
	if empty.Begin().Valid() || empty.Last().Valid() {
		t.Errorf("iterator on empty tree is valid")
	}
	it = empty.End()
	it.Prev()
	if it.Valid() {
		t.Errorf("Prev from End of an empty tree is valid")
	}
}

func TestRBTree_BlackHeight(t *testing.T) {
	tree := NewRBTree[int]()
	for i := range 1000 {
		tree.Insert(i)
	}
	bh := tree.BlackHeight()
	if h := tree.Height(); h > 2*bh {
		t.Errorf("height %d, black height %d", h, bh)
	}
}

func TestTrees_CloneSwap(t *testing.T) {
	a := AVLTreeFrom(1, 2, 3)
	b := a.Clone()
	b.Insert(4)
	a.Erase(1)
	if d := cmp.Diff([]int{2, 3}, a.ToSortedSlice()); d != "" {
		t.Errorf("original changed by clone (-want +got):\n%s", d)
	}
	if d := cmp.Diff([]int{1, 2, 3, 4}, b.ToSortedSlice()); d != "" {
		t.Errorf("clone changed by original (-want +got):\n%s", d)
	}
	a.Swap(b)
	if a.Size() != 4 || b.Size() != 2 {
		t.Errorf("Swap: sizes %d, %d", a.Size(), b.Size())
	}

	r := RBTreeFrom(10, 20, 30, 40)
	rc := r.Clone()
	if e := rc.Check(); e != nil {
		t.Errorf("clone invalid: %v", e)
	}
	rc.Erase(20)
	if !r.Contains(20) || rc.Contains(20) {
		t.Errorf("RB clone shares nodes")
	}

	s := BSTFrom(2, 1)
	sc := s.Clone()
	s.Clear()
	if sc.Size() != 2 || !s.Empty() {
		t.Errorf("BST clone shares nodes")
	}
}

func TestTrees_CustomOrder(t *testing.T) {
	tree := NewRBTreeFunc(Go_Ordered.Reverse(Go_Ordered.Natural[string]()))
	Sets.InsertAll[string](tree, "b", "c", "a")
	if d := cmp.Diff([]string{"c", "b", "a"}, tree.ToSortedSlice()); d != "" {
		t.Errorf("reverse order (-want +got):\n%s", d)
	}
	if v, _ := tree.Min(); v != "c" {
		t.Errorf("Min is %q", v)
	}

	type pair struct{ k, v int }
	byK := NewAVLTreeFunc(func(a, b pair) bool { return a.k < b.k })
	byK.Insert(pair{1, 10})
	if byK.Insert(pair{1, 20}) {
		t.Errorf("equivalent key inserted")
	}
	if p, ok := byK.Find(pair{k: 1}); !ok || p.v != 10 {
		t.Errorf("Find returned %v,%v", p, ok)
	}
}

func TestTrees_Errors(t *testing.T) {
	tree := NewAVLTree[int]()
	_, e := tree.Min()
	var ee Go_Ordered.EmptyError
	if !errors.As(e, &ee) || ee.Op != "Min" {
		t.Errorf("Min error is %v", e)
	}
	if _, e = tree.At(3); !errors.Is(e, Go_Ordered.ErrKeyAbsent) {
		t.Errorf("At error is %v", e)
	}
}

func TestTrees_SameKeys(t *testing.T) {
	a, b := BSTFrom(3, 1, 2), RBTreeFrom(1, 2, 3)
	if !Sets.SameKeys[int](a, b, Go_Ordered.Natural[int]()) {
		t.Errorf("SameKeys is false for equal sets")
	}
	b.Insert(4)
	if Sets.SameKeys[int](a, b, Go_Ordered.Natural[int]()) {
		t.Errorf("SameKeys is true for different sets")
	}
}
