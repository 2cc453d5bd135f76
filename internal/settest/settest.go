// Package settest checks an Sets.OrderedSet implementation against the
// contract, using a gods red-black tree as the reference.
package settest

import (
	"errors"
	"math/rand"
	"slices"
	"testing"

	Go_Ordered "github.com/g-m-twostay/go-ordered"
	"github.com/g-m-twostay/go-ordered/Sets"

	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/emirpasic/gods/utils"
	"github.com/google/go-cmp/cmp"
)

// Factory returns a new, empty set of ints ordered by <.
type Factory func() Sets.OrderedSet[int]

const (
	randOps   = 20000
	randRange = 2000
)

// Run runs the whole suite as subtests of t.
func Run(t *testing.T, f Factory) {
	t.Run("Empty", func(t *testing.T) { testEmpty(t, f()) })
	t.Run("Single", func(t *testing.T) { testSingle(t, f()) })
	t.Run("Bounds", func(t *testing.T) { testBounds(t, f()) })
	t.Run("Random", func(t *testing.T) { testRandom(t, f()) })
	t.Run("Sorted", func(t *testing.T) { testSorted(t, f) })
	t.Run("RoundTrip", func(t *testing.T) { testRoundTrip(t, f()) })
	t.Run("ClearReuse", func(t *testing.T) { testClearReuse(t, f()) })
	t.Run("VisitorStop", func(t *testing.T) { testVisitorStop(t, f()) })
	t.Run("VisitorPanic", func(t *testing.T) { testVisitorPanic(t, f()) })
}

func testEmpty(t *testing.T, s Sets.OrderedSet[int]) {
	if !s.Empty() || s.Size() != 0 {
		t.Errorf("new set has size %d", s.Size())
	}
	if _, e := s.Min(); !errors.Is(e, Go_Ordered.ErrEmpty) {
		t.Errorf("Min on empty: got %v", e)
	}
	if _, e := s.Max(); !errors.Is(e, Go_Ordered.ErrEmpty) {
		t.Errorf("Max on empty: got %v", e)
	}
	if _, e := s.At(1); !errors.Is(e, Go_Ordered.ErrKeyAbsent) {
		t.Errorf("At on empty: got %v", e)
	}
	if s.Erase(1) {
		t.Errorf("erased from empty set")
	}
	if _, ok := s.LowerBound(0); ok {
		t.Errorf("LowerBound on empty set found a key")
	}
	if got := s.ToSortedSlice(); len(got) != 0 {
		t.Errorf("empty set yields %v", got)
	}
	if !s.Verify() {
		t.Errorf("empty set is invalid")
	}
}

func testSingle(t *testing.T, s Sets.OrderedSet[int]) {
	if !s.Insert(7) {
		t.Fatalf("failed to insert 7")
	}
	if s.Insert(7) {
		t.Errorf("inserted duplicate 7")
	}
	if s.Size() != 1 {
		t.Errorf("size is %d, want 1", s.Size())
	}
	for _, get := range []func() (int, error){s.Min, s.Max} {
		if v, e := get(); e != nil || v != 7 {
			t.Errorf("got %d,%v, want 7", v, e)
		}
	}
	if v, ok := s.Find(7); !ok || v != 7 {
		t.Errorf("Find(7) is %d,%v", v, ok)
	}
	if v, e := s.At(7); e != nil || v != 7 {
		t.Errorf("At(7) is %d,%v", v, e)
	}
	var kae Go_Ordered.KeyAbsentError[int]
	if _, e := s.At(8); !errors.As(e, &kae) || kae.Key != 8 {
		t.Errorf("At(8) error is %v", e)
	}
	if s.Erase(8) {
		t.Errorf("erased absent key 8")
	}
	if !s.Erase(7) {
		t.Errorf("failed to erase 7")
	}
	if !s.Empty() || s.Contains(7) {
		t.Errorf("7 is still there")
	}
	if !s.Verify() {
		t.Errorf("set is invalid")
	}
}

func testBounds(t *testing.T, s Sets.OrderedSet[int]) {
	Sets.InsertAll(s, 10, 20, 30, 40)
	for _, c := range []struct {
		k                   int
		lower, upper, floor int
		lOK, uOK, fOK       bool
	}{
		{5, 10, 10, 0, true, true, false},
		{10, 10, 20, 10, true, true, true},
		{15, 20, 20, 10, true, true, true},
		{40, 40, 0, 40, true, false, true},
		{45, 0, 0, 40, false, false, true},
	} {
		if v, ok := s.LowerBound(c.k); ok != c.lOK || (ok && v != c.lower) {
			t.Errorf("LowerBound(%d) is %d,%v", c.k, v, ok)
		}
		if v, ok := s.UpperBound(c.k); ok != c.uOK || (ok && v != c.upper) {
			t.Errorf("UpperBound(%d) is %d,%v", c.k, v, ok)
		}
		if v, ok := s.Floor(c.k); ok != c.fOK || (ok && v != c.floor) {
			t.Errorf("Floor(%d) is %d,%v", c.k, v, ok)
		}
	}
}

// testRandom applies random inserts and erases to s and to a gods tree, and
// compares the two after every step that changes them.
func testRandom(t *testing.T, s Sets.OrderedSet[int]) {
	rg := rand.New(rand.NewSource(0))
	ref := redblacktree.NewWith(utils.IntComparator)
	for i := range randOps {
		k := rg.Intn(randRange)
		_, in := ref.Get(k)
		if rg.Intn(3) == 0 {
			if s.Erase(k) != in {
				t.Fatalf("Erase(%d) disagrees with reference (present=%v)", k, in)
			}
			ref.Remove(k)
		} else {
			if s.Insert(k) == in {
				t.Fatalf("Insert(%d) disagrees with reference (present=%v)", k, in)
			}
			ref.Put(k, struct{}{})
		}
		if s.Size() != ref.Size() {
			t.Fatalf("size is %d, want %d", s.Size(), ref.Size())
		}
		if i%1000 == 0 && !s.Verify() {
			t.Fatalf("invalid after %d operations", i)
		}
	}
	want := make([]int, 0, ref.Size())
	for _, k := range ref.Keys() {
		want = append(want, k.(int))
	}
	if d := cmp.Diff(want, s.ToSortedSlice()); d != "" {
		t.Errorf("content mismatch (-want +got):\n%s", d)
	}
	for range 500 {
		k := rg.Intn(randRange+20) - 10
		if n, ok := ref.Ceiling(k); ok {
			if v, found := s.LowerBound(k); !found || v != n.Key.(int) {
				t.Errorf("LowerBound(%d) is %d,%v, want %d", k, v, found, n.Key)
			}
		} else if _, found := s.LowerBound(k); found {
			t.Errorf("LowerBound(%d) found a key", k)
		}
		if n, ok := ref.Floor(k); ok {
			if v, found := s.Floor(k); !found || v != n.Key.(int) {
				t.Errorf("Floor(%d) is %d,%v, want %d", k, v, found, n.Key)
			}
		}
		if n, ok := ref.Ceiling(k + 1); ok {
			if v, found := s.UpperBound(k); !found || v != n.Key.(int) {
				t.Errorf("UpperBound(%d) is %d,%v, want %d", k, v, found, n.Key)
			}
		}
	}
	if !s.Verify() {
		t.Errorf("set is invalid")
	}
}

func testSorted(t *testing.T, f Factory) {
	const n = 1024
	asc, desc := f(), f()
	for i := range n {
		asc.Insert(i)
		desc.Insert(n - 1 - i)
	}
	for _, s := range []Sets.OrderedSet[int]{asc, desc} {
		if s.Size() != n || !s.Verify() {
			t.Errorf("size %d, valid %v", s.Size(), s.Verify())
		}
		got := s.ToSortedSlice()
		if !slices.IsSorted(got) || len(got) != n {
			t.Errorf("not sorted")
		}
		if v, _ := s.Min(); v != 0 {
			t.Errorf("Min is %d", v)
		}
		if v, _ := s.Max(); v != n-1 {
			t.Errorf("Max is %d", v)
		}
	}
}

func testRoundTrip(t *testing.T, s Sets.OrderedSet[int]) {
	rg := rand.New(rand.NewSource(1))
	for range 300 {
		s.Insert(rg.Intn(1000))
	}
	before := s.ToSortedSlice()
	for range 200 {
		k := rg.Intn(2000)
		if s.Contains(k) {
			continue
		}
		s.Insert(k)
		s.Erase(k)
	}
	if d := cmp.Diff(before, s.ToSortedSlice()); d != "" {
		t.Errorf("insert then erase changed content (-want +got):\n%s", d)
	}
	if !s.Verify() {
		t.Errorf("set is invalid")
	}
}

func testClearReuse(t *testing.T, s Sets.OrderedSet[int]) {
	Sets.InsertAll(s, 3, 1, 2)
	s.Clear()
	if s.Size() != 0 || !s.Empty() || s.Contains(1) {
		t.Fatalf("Clear left %v", s.ToSortedSlice())
	}
	if n := Sets.InsertAll(s, 5, 4, 5, 6); n != 3 {
		t.Errorf("inserted %d after Clear, want 3", n)
	}
	if d := cmp.Diff([]int{4, 5, 6}, s.ToSortedSlice()); d != "" {
		t.Errorf("reuse after Clear (-want +got):\n%s", d)
	}
}

func testVisitorStop(t *testing.T, s Sets.OrderedSet[int]) {
	for i := range 50 {
		s.Insert(i * 2)
	}
	var got []int
	s.InOrder(func(k int) bool {
		got = append(got, k)
		return len(got) < 5
	})
	if d := cmp.Diff([]int{0, 2, 4, 6, 8}, got); d != "" {
		t.Errorf("early stop (-want +got):\n%s", d)
	}
	got = got[:0]
	for k := range s.All() {
		if k > 10 {
			break
		}
		got = append(got, k)
	}
	if d := cmp.Diff([]int{0, 2, 4, 6, 8, 10}, got); d != "" {
		t.Errorf("range over All (-want +got):\n%s", d)
	}
}

func testVisitorPanic(t *testing.T, s Sets.OrderedSet[int]) {
	for i := range 100 {
		s.Insert(i)
	}
	func() {
		defer func() { recover() }()
		s.InOrder(func(k int) bool {
			if k == 42 {
				panic("stop")
			}
			return true
		})
	}()
	if s.Size() != 100 || !s.Verify() {
		t.Errorf("set damaged by a panicking visitor")
	}
	if got := Sets.Collect(s, nil); len(got) != 100 {
		t.Errorf("collected %d keys", len(got))
	}
}
