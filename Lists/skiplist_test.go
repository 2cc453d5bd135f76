package Lists

import (
	"errors"
	"math/rand"
	"testing"

	Go_Ordered "github.com/g-m-twostay/go-ordered"
	"github.com/g-m-twostay/go-ordered/Sets"
	"github.com/g-m-twostay/go-ordered/internal/settest"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/google/go-cmp/cmp"
)

func TestSkipList_Contract(t *testing.T) {
	settest.Run(t, func() Sets.OrderedSet[int] {
		u, _ := New[int](WithSeed(1))
		return u
	})
	settest.Run(t, func() Sets.OrderedSet[int] {
		u, _ := New[int](WithMaxLevel(1), WithProbability(0.25))
		return u
	})
}

func TestSkipList_Scenario(t *testing.T) {
	u, err := New[int](WithMaxLevel(4), WithProbability(0.5))
	if err != nil {
		t.Fatal(err)
	}
	if n := Sets.InsertAll[int](u, 3, 1, 4, 1, 5, 9, 2, 6); n != 7 {
		t.Errorf("inserted %d keys, want 7", n)
	}
	if u.Size() != 7 {
		t.Errorf("size is %d, want 7", u.Size())
	}
	var got []int
	for it := u.Begin(); it.Valid(); it.Next() {
		got = append(got, it.Key())
	}
	if d := cmp.Diff([]int{1, 2, 3, 4, 5, 6, 9}, got); d != "" {
		t.Errorf("forward iteration (-want +got):\n%s", d)
	}
	if v, ok := u.LowerBound(4); !ok || v != 4 {
		t.Errorf("LowerBound(4) is %d,%v", v, ok)
	}
	if v, ok := u.UpperBound(4); !ok || v != 5 {
		t.Errorf("UpperBound(4) is %d,%v", v, ok)
	}
	if !u.Erase(4) {
		t.Errorf("failed to erase 4")
	}
	if u.Contains(4) {
		t.Errorf("4 is still there")
	}
	if u.Level() > 4 {
		t.Errorf("level %d exceeds the cap", u.Level())
	}
	if e := u.Check(); e != nil {
		t.Error(e)
	}
}

func TestSkipList_Options(t *testing.T) {
	for _, c := range []struct {
		opts  []Option
		param string
	}{
		{[]Option{WithMaxLevel(0)}, "max level"},
		{[]Option{WithMaxLevel(-3)}, "max level"},
		{[]Option{WithProbability(0)}, "probability"},
		{[]Option{WithProbability(1)}, "probability"},
		{[]Option{WithProbability(-0.5)}, "probability"},
	} {
		_, err := New[int](c.opts...)
		var ce Go_Ordered.ConfigError
		if !errors.As(err, &ce) || ce.Param != c.param || !errors.Is(err, Go_Ordered.ErrInvalidConfig) {
			t.Errorf("want a %s ConfigError, got %v", c.param, err)
		}
	}
	u, _ := New[string]()
	if u.MaxLevel() != DefaultMaxLevel || u.Probability() != DefaultProbability {
		t.Errorf("defaults are %d, %f", u.MaxLevel(), u.Probability())
	}
}

// TestSkipList_Seed checks that equal seeds give equal structures and that the
// content never depends on the seed.
func TestSkipList_Seed(t *testing.T) {
	ks := rand.New(rand.NewSource(0)).Perm(2000)
	a, _ := From(ks, WithSeed(42))
	b, _ := From(ks, WithSeed(42))
	c, _ := From(ks, WithSeed(7))
	if d := cmp.Diff(a.LevelCounts(), b.LevelCounts()); d != "" {
		t.Errorf("same seed, different levels (-a +b):\n%s", d)
	}
	if d := cmp.Diff(a.ToSortedSlice(), c.ToSortedSlice()); d != "" {
		t.Errorf("content depends on the seed (-a +c):\n%s", d)
	}
	counts := a.LevelCounts()
	t.Logf("level counts: %v", counts)
	for i := 1; i < len(counts); i++ {
		if counts[i] > counts[i-1] {
			t.Errorf("level %d has more nodes than level %d", i, i-1)
		}
	}
	// With p=1/2 roughly half the nodes reach level 1.
	if counts[1] < 800 || counts[1] > 1200 {
		t.Errorf("%d of 2000 nodes reach level 1", counts[1])
	}
}

func TestSkipList_Random(t *testing.T) {
	rg := rand.New(rand.NewSource(0))
	u, _ := New[int](WithSeed(3), WithMaxLevel(8))
	ref := treeset.NewWithIntComparator()
	for i := range 30000 {
		k := rg.Intn(3000)
		if rg.Intn(2) == 0 {
			if u.Erase(k) != ref.Contains(k) {
				t.Fatalf("Erase(%d) disagrees", k)
			}
			ref.Remove(k)
		} else {
			if u.Insert(k) == ref.Contains(k) {
				t.Fatalf("Insert(%d) disagrees", k)
			}
			ref.Add(k)
		}
		if i%3000 == 0 {
			if e := u.Check(); e != nil {
				t.Fatalf("after %d ops: %v", i, e)
			}
		}
	}
	want := make([]int, 0, ref.Size())
	for _, v := range ref.Values() {
		want = append(want, v.(int))
	}
	if d := cmp.Diff(want, u.ToSortedSlice()); d != "" {
		t.Errorf("content (-want +got):\n%s", d)
	}
	for _, k := range want {
		u.Erase(k)
	}
	if !u.Empty() || u.Level() != 0 {
		t.Errorf("size %d, level %d after erasing everything", u.Size(), u.Level())
	}
	if e := u.Check(); e != nil {
		t.Error(e)
	}
}

func TestSkipList_Iterator(t *testing.T) {
	u, _ := From([]int{10, 20, 30}, WithSeed(0))
	it := u.Seek(15)
	if !it.Valid() || it.Key() != 20 {
		t.Fatalf("Seek(15) isn't at 20")
	}
	it.Next()
	it.Next()
	if it.Valid() {
		t.Errorf("iterator is valid past the maximum")
	}
	it.Next()
	if it.Valid() {
		t.Errorf("Next past the end moved")
	}
	if it = u.SeekAfter(20); it.Key() != 30 {
		t.Errorf("SeekAfter(20) is at %d", it.Key())
	}
	if it = u.Seek(31); it.Valid() {
		t.Errorf("Seek(31) is valid")
	}
	empty, _ := New[int]()
	if b := empty.Begin(); b.Valid() {
		t.Errorf("Begin of an empty list is valid")
	}
}

func TestSkipList_CloneSwap(t *testing.T) {
	a, _ := From([]int{5, 1, 3}, WithSeed(9))
	b := a.Clone()
	if d := cmp.Diff(a.LevelCounts(), b.LevelCounts()); d != "" {
		t.Errorf("clone has other levels (-a +b):\n%s", d)
	}
	b.Insert(4)
	a.Erase(1)
	if d := cmp.Diff([]int{3, 5}, a.ToSortedSlice()); d != "" {
		t.Errorf("original (-want +got):\n%s", d)
	}
	if d := cmp.Diff([]int{1, 3, 4, 5}, b.ToSortedSlice()); d != "" {
		t.Errorf("clone (-want +got):\n%s", d)
	}
	if !a.Verify() || !b.Verify() {
		t.Errorf("invalid after independent edits")
	}
	a.Swap(b)
	if a.Size() != 4 || b.Size() != 2 {
		t.Errorf("Swap: sizes %d, %d", a.Size(), b.Size())
	}
	a.Clear()
	if !a.Empty() || a.Level() != 0 || !a.Verify() {
		t.Errorf("Clear left a non-empty list")
	}
	a.Insert(1)
	if v, _ := a.Max(); v != 1 {
		t.Errorf("Max after reuse is %d", v)
	}
}

func TestSkipList_Comparator(t *testing.T) {
	u, _ := NewFunc(Go_Ordered.Reverse(Go_Ordered.Natural[int]()))
	Sets.InsertAll[int](u, 1, 3, 2)
	if d := cmp.Diff([]int{3, 2, 1}, u.ToSortedSlice()); d != "" {
		t.Errorf("reverse order (-want +got):\n%s", d)
	}
	if v, ok := u.Floor(0); !ok || v != 1 {
		t.Errorf("Floor(0) under reverse order is %d,%v", v, ok)
	}
}

func TestSkipList_ScratchCleared(t *testing.T) {
	u, _ := New[int](WithSeed(7))
	Sets.InsertAll[int](u, 1, 2, 3, 4, 5, 6, 7, 8)
	cleared := func(op string) {
		t.Helper()
		for i, x := range u.update {
			if x != nil {
				t.Errorf("after %s update[%d] is still set", op, i)
			}
		}
	}
	if u.Insert(4) {
		t.Errorf("duplicate 4 inserted")
	}
	cleared("duplicate Insert")
	if u.Erase(42) {
		t.Errorf("absent 42 erased")
	}
	cleared("absent Erase")
	u.Insert(9)
	cleared("Insert")
	u.Erase(1)
	cleared("Erase")
}
