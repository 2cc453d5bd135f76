package BTree

import (
	"errors"
	"io"
	"math/rand"
	"testing"

	Go_Ordered "github.com/g-m-twostay/go-ordered"
	"github.com/g-m-twostay/go-ordered/Sets"
	"github.com/g-m-twostay/go-ordered/internal/settest"

	"github.com/google/btree"
	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func mustNew(t *testing.T, opts ...Option) *BTree[int] {
	t.Helper()
	u, err := New[int](opts...)
	if err != nil {
		t.Fatal(err)
	}
	return u
}

func TestBTree_Contract(t *testing.T) {
	for _, d := range []int{2, 3, 5} {
		settest.Run(t, func() Sets.OrderedSet[int] {
			u, _ := New[int](WithDegree(d))
			return u
		})
	}
}

func TestBTree_Degree(t *testing.T) {
	for _, d := range []int{-1, 0, 1} {
		_, err := New[int](WithDegree(d))
		var ce Go_Ordered.ConfigError
		if !errors.As(err, &ce) || ce.Param != "degree" {
			t.Errorf("degree %d: got %v", d, err)
		}
		if !errors.Is(err, Go_Ordered.ErrInvalidConfig) {
			t.Errorf("degree %d: %v isn't ErrInvalidConfig", d, err)
		}
	}
	if u := mustNew(t); u.Degree() != DefaultDegree {
		t.Errorf("default degree is %d", u.Degree())
	}
}

func TestBTree_Split(t *testing.T) {
	u, err := From([]int{10, 20, 5, 6, 12, 30, 7, 17}, WithDegree(2))
	if err != nil {
		t.Fatal(err)
	}
	if e := u.Check(); e != nil {
		t.Fatal(e)
	}
	if d := cmp.Diff([]int{5, 6, 7, 10, 12, 17, 20, 30}, u.ToSortedSlice()); d != "" {
		t.Errorf("in-order (-want +got):\n%s", d)
	}
	if got, want := u.String(), "([5 6 7],[12 17],[30])[10 20];"; got != want {
		t.Errorf("shape is %s, want %s", got, want)
	}
	if u.Height() != 2 {
		t.Errorf("height is %d, want 2", u.Height())
	}
	type level struct {
		depth int
		keys  []int
	}
	var levels []level
	u.Nodes(func(depth int, keys []int) bool {
		levels = append(levels, level{depth, append([]int(nil), keys...)})
		return true
	})
	want := []level{{0, []int{10, 20}}, {1, []int{5, 6, 7}}, {1, []int{12, 17}}, {1, []int{30}}}
	if d := cmp.Diff(want, levels, cmp.AllowUnexported(level{})); d != "" {
		t.Errorf("Nodes (-want +got):\n%s", d)
	}
}

func TestBTree_DuplicateMedian(t *testing.T) {
	u := mustNew(t, WithDegree(2))
	Sets.InsertAll[int](u, 1, 2, 3, 4, 5)
	// 4 is the median of the full leaf [3 4 5] and is promoted before the
	// duplicate is noticed.
	if u.Insert(4) {
		t.Errorf("duplicate 4 inserted")
	}
	if u.Size() != 5 || !u.Verify() {
		t.Errorf("size %d after duplicate", u.Size())
	}
}

func TestBTree_Erase(t *testing.T) {
	u, _ := From([]int{10, 20, 5, 6, 12, 30, 7, 17}, WithDegree(2))
	for _, c := range []struct {
		k     int
		shape string
	}{
		{6, "([5 7],[12 17],[30])[10 20];"}, // leaf with spare keys
		{20, "([5 7],[12],[30])[10 17];"},   // predecessor from the left child
		{10, "([5],[12],[30])[7 17];"},      // predecessor again
		{7, "([5 12],[30])[17];"},           // merge around the separator
		{30, "([5],[17])[12];"},             // borrow from the left sibling
		{5, "[12 17];"},                     // merge, root collapses
	} {
		if !u.Erase(c.k) {
			t.Fatalf("failed to erase %d", c.k)
		}
		if e := u.Check(); e != nil {
			t.Fatalf("after erasing %d: %v", c.k, e)
		}
		if got := u.String(); got != c.shape {
			t.Errorf("after erasing %d: %s, want %s", c.k, got, c.shape)
		}
	}
	u.Erase(12)
	u.Erase(17)
	if !u.Empty() || u.Height() != 0 || u.String() != ";" {
		t.Errorf("tree isn't empty: %s", u)
	}
}

// TestBTree_Random compares against google/btree under a random workload.
func TestBTree_Random(t *testing.T) {
	rg := rand.New(rand.NewSource(0))
	for _, d := range []int{2, 3, 4, 16} {
		u := mustNew(t, WithDegree(d))
		ref := btree.NewOrderedG[int](d)
		for i := range 30000 {
			k := rg.Intn(5000)
			if rg.Intn(5) < 2 {
				_, in := ref.Delete(k)
				if u.Erase(k) != in {
					t.Fatalf("t=%d: Erase(%d) disagrees", d, k)
				}
			} else {
				_, in := ref.ReplaceOrInsert(k)
				if u.Insert(k) == in {
					t.Fatalf("t=%d: Insert(%d) disagrees", d, k)
				}
			}
			if i%3000 == 0 {
				if e := u.Check(); e != nil {
					t.Fatalf("t=%d after %d ops: %v", d, i, e)
				}
			}
		}
		if u.Size() != ref.Len() {
			t.Errorf("t=%d: size %d, want %d", d, u.Size(), ref.Len())
		}
		want := make([]int, 0, ref.Len())
		ref.Ascend(func(k int) bool {
			want = append(want, k)
			return true
		})
		if diff := cmp.Diff(want, u.ToSortedSlice()); diff != "" {
			t.Errorf("t=%d content (-want +got):\n%s", d, diff)
		}
		for range 200 {
			k := rg.Intn(5100)
			var lb int
			var found bool
			ref.AscendGreaterOrEqual(k, func(v int) bool {
				lb, found = v, true
				return false
			})
			if v, ok := u.LowerBound(k); ok != found || v != lb {
				t.Errorf("t=%d: LowerBound(%d) is %d,%v, want %d,%v", d, k, v, ok, lb, found)
			}
		}
		t.Logf("t=%d size: %d, height: %d", d, u.Size(), u.Height())
	}
}

func TestBTree_CloneSwap(t *testing.T) {
	a, _ := From([]int{1, 2, 3, 4, 5, 6, 7, 8, 9}, WithDegree(2))
	b := a.Clone()
	a.Erase(5)
	b.Insert(10)
	if a.Contains(5) || !b.Contains(5) || a.Contains(10) {
		t.Errorf("clone shares nodes")
	}
	if !a.Verify() || !b.Verify() {
		t.Errorf("invalid after independent edits")
	}
	c := mustNew(t, WithDegree(4))
	c.Swap(a)
	if c.Degree() != 2 || a.Degree() != 4 || c.Size() != 8 || !a.Empty() {
		t.Errorf("Swap: degrees %d,%d sizes %d,%d", c.Degree(), a.Degree(), c.Size(), a.Size())
	}
}

func TestBTree_NodesStop(t *testing.T) {
	u, _ := From([]int{1, 2, 3, 4, 5, 6, 7, 8, 9}, WithDegree(2))
	n := 0
	u.Nodes(func(int, []int) bool {
		n++
		return n < 2
	})
	if n != 2 {
		t.Errorf("visited %d nodes after stopping at 2", n)
	}
}

// traced runs f with Debug traces of Go_Ordered.Log captured by a hook. The
// level, output and hooks of the logger are restored afterwards.
func traced(f func(hook *test.Hook)) {
	log := Go_Ordered.Log
	defer log.SetLevel(log.GetLevel())
	defer log.SetOutput(log.Out)
	defer log.ReplaceHooks(log.ReplaceHooks(make(logrus.LevelHooks)))
	hook := test.NewLocal(log)
	log.SetOutput(io.Discard)
	log.SetLevel(logrus.DebugLevel)
	f(hook)
}

func TestBTree_Trace(t *testing.T) {
	before := len(Go_Ordered.Log.Hooks[logrus.DebugLevel])
	traced(func(hook *test.Hook) {
		u, _ := From([]int{1, 2, 3, 4}, WithDegree(2))
		var msgs []string
		for _, e := range hook.AllEntries() {
			msgs = append(msgs, e.Message)
		}
		if d := cmp.Diff([]string{"btree: split", "btree: root grew"}, msgs); d != "" {
			t.Errorf("insert traces (-want +got):\n%s", d)
		}
		hook.Reset()
		u.Erase(1)
		u.Erase(2)
		if e := hook.LastEntry(); e == nil || e.Message != "btree: root collapsed" {
			t.Errorf("last trace is %v", e)
		}
	})
	if after := len(Go_Ordered.Log.Hooks[logrus.DebugLevel]); after != before {
		t.Errorf("%d debug hooks left on the logger, want %d", after, before)
	}
}
