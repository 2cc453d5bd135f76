package Lists

import (
	"fmt"
	"iter"
	"math/rand/v2"

	Go_Ordered "github.com/g-m-twostay/go-ordered"
	"github.com/g-m-twostay/go-ordered/Sets"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/constraints"
)

var _ Sets.OrderedSet[int] = (*SkipList[int])(nil)

const (
	DefaultMaxLevel    = 16
	DefaultProbability = 0.5
)

type options struct {
	maxLevel int
	p        float64
	seed     uint64
	seeded   bool
}

func defaultOptions() options {
	return options{maxLevel: DefaultMaxLevel, p: DefaultProbability}
}

// Option configures a SkipList.
type Option func(*options)

// WithMaxLevel caps the level of a node. Levels are counted from 0, so the
// header has n+1 links. n must be at least 1.
func WithMaxLevel(n int) Option {
	return func(o *options) {
		o.maxLevel = n
	}
}

// WithProbability sets the chance that a node is promoted one more level. p
// must be in (0, 1).
func WithProbability(p float64) Option {
	return func(o *options) {
		o.p = p
	}
}

// WithSeed makes level draws reproducible. Without it the generator is seeded
// from a non-deterministic source.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed, o.seeded = seed, true
	}
}

// A node in the SkipList. A node of level l has l+1 forward links.
type node[K any] struct {
	v    K
	next []*node[K]
}

// SkipList is an ordered set kept as a sorted linked list with express lanes:
// level 0 links every key, and each level above skips over the nodes that
// weren't promoted to it. Node levels follow a geometric distribution, so the
// expected cost of a search is O(log n) for p=1/2.
type SkipList[K any] struct {
	head     node[K]
	level    int
	sz       int
	maxLevel int
	p        float64
	less     Go_Ordered.Less[K]
	src      *rand.PCG
	rng      *rand.Rand
	update   []*node[K] // scratch for the predecessors of a mutation
}

// New returns an empty SkipList ordered by <.
func New[K constraints.Ordered](opts ...Option) (*SkipList[K], error) {
	return NewFunc(Go_Ordered.Natural[K](), opts...)
}

// NewFunc returns an empty SkipList ordered by less. It fails with a
// Go_Ordered.ConfigError when the maximum level or the probability is out of
// range.
func NewFunc[K any](less Go_Ordered.Less[K], opts ...Option) (*SkipList[K], error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxLevel < 1 {
		return nil, Go_Ordered.ConfigError{Param: "max level", Value: o.maxLevel, Want: ">= 1"}
	}
	if !(o.p > 0 && o.p < 1) {
		return nil, Go_Ordered.ConfigError{Param: "probability", Value: o.p, Want: "in (0, 1)"}
	}
	if !o.seeded {
		o.seed = rand.Uint64()
	}
	src := rand.NewPCG(o.seed, o.seed^0x9e3779b97f4a7c15)
	return &SkipList[K]{
		head:     node[K]{next: make([]*node[K], o.maxLevel+1)},
		maxLevel: o.maxLevel,
		p:        o.p,
		less:     less,
		src:      src,
		rng:      rand.New(src),
		update:   make([]*node[K], o.maxLevel+1),
	}, nil
}

// From inserts ks, in order, into a new SkipList ordered by <.
func From[K constraints.Ordered](ks []K, opts ...Option) (*SkipList[K], error) {
	u, err := New[K](opts...)
	if err != nil {
		return nil, err
	}
	for _, k := range ks {
		u.Insert(k)
	}
	return u, nil
}

// randomLevel flips a coin with success probability p until it fails or the
// level reaches maxLevel.
func (u *SkipList[K]) randomLevel() (l int) {
	for l < u.maxLevel && u.rng.Float64() < u.p {
		l++
	}
	return
}

// predecessors fills update[0..level] with the rightmost node before k on each
// level and returns the first node not less than k.
// Time: O(log n) expected
func (u *SkipList[K]) predecessors(k K) *node[K] {
	x := &u.head
	for i := u.level; i >= 0; i-- {
		for x.next[i] != nil && u.less(x.next[i].v, k) {
			x = x.next[i]
		}
		u.update[i] = x
	}
	return x.next[0]
}

// Insert [Sets.OrderedSet.Insert]
// Time: O(log n) expected
func (u *SkipList[K]) Insert(k K) bool {
	n := u.predecessors(k)
	defer clear(u.update)
	if n != nil && !u.less(k, n.v) {
		return false
	}
	lvl := u.randomLevel()
	if lvl > u.level {
		for i := u.level + 1; i <= lvl; i++ {
			u.update[i] = &u.head
		}
		if Go_Ordered.Tracing() {
			Go_Ordered.Log.WithFields(logrus.Fields{"from": u.level, "to": lvl}).Debug("skiplist: level grew")
		}
		u.level = lvl
	}
	x := &node[K]{v: k, next: make([]*node[K], lvl+1)}
	for i := 0; i <= lvl; i++ {
		x.next[i] = u.update[i].next[i]
		u.update[i].next[i] = x
	}
	u.sz++
	return true
}

// Erase [Sets.OrderedSet.Erase]. Empty top levels are dropped afterwards.
// Time: O(log n) expected
func (u *SkipList[K]) Erase(k K) bool {
	n := u.predecessors(k)
	defer clear(u.update)
	if n == nil || u.less(k, n.v) {
		return false
	}
	for i, nx := range n.next {
		u.update[i].next[i] = nx
	}
	from := u.level
	for u.level > 0 && u.head.next[u.level] == nil {
		u.level--
	}
	if from != u.level && Go_Ordered.Tracing() {
		Go_Ordered.Log.WithFields(logrus.Fields{"from": from, "to": u.level}).Debug("skiplist: level compacted")
	}
	u.sz--
	return true
}

// lowerBound returns the first node not less than k, or nil. Unlike
// predecessors it writes nothing.
func (u *SkipList[K]) lowerBound(k K) *node[K] {
	x := &u.head
	for i := u.level; i >= 0; i-- {
		for x.next[i] != nil && u.less(x.next[i].v, k) {
			x = x.next[i]
		}
	}
	return x.next[0]
}

// lastNotAbove returns the last node not greater than k, which is the header
// if there is none.
func (u *SkipList[K]) lastNotAbove(k K) *node[K] {
	x := &u.head
	for i := u.level; i >= 0; i-- {
		for x.next[i] != nil && !u.less(k, x.next[i].v) {
			x = x.next[i]
		}
	}
	return x
}

func (u *SkipList[K]) find(k K) *node[K] {
	if n := u.lowerBound(k); n != nil && !u.less(k, n.v) {
		return n
	}
	return nil
}

// Contains [Sets.OrderedSet.Contains]
func (u *SkipList[K]) Contains(k K) bool {
	return u.find(k) != nil
}

// Find [Sets.OrderedSet.Find]
func (u *SkipList[K]) Find(k K) (v K, ok bool) {
	if n := u.find(k); n != nil {
		return n.v, true
	}
	return
}

// At [Sets.OrderedSet.At]
func (u *SkipList[K]) At(k K) (v K, e error) {
	if n := u.find(k); n != nil {
		return n.v, nil
	}
	return v, Go_Ordered.KeyAbsentError[K]{Key: k}
}

// Min [Sets.OrderedSet.Min]
// Time: O(1)
func (u *SkipList[K]) Min() (k K, e error) {
	if n := u.head.next[0]; n != nil {
		return n.v, nil
	}
	return k, Go_Ordered.EmptyError{Op: "Min"}
}

// Max [Sets.OrderedSet.Max]. Runs along the top lane and drops down.
// Time: O(log n) expected
func (u *SkipList[K]) Max() (k K, e error) {
	x := &u.head
	for i := u.level; i >= 0; i-- {
		for x.next[i] != nil {
			x = x.next[i]
		}
	}
	if x == &u.head {
		return k, Go_Ordered.EmptyError{Op: "Max"}
	}
	return x.v, nil
}

// LowerBound [Sets.OrderedSet.LowerBound]
func (u *SkipList[K]) LowerBound(k K) (v K, ok bool) {
	if n := u.lowerBound(k); n != nil {
		return n.v, true
	}
	return
}

// UpperBound [Sets.OrderedSet.UpperBound]
func (u *SkipList[K]) UpperBound(k K) (v K, ok bool) {
	if n := u.lastNotAbove(k).next[0]; n != nil {
		return n.v, true
	}
	return
}

// Floor [Sets.OrderedSet.Floor]
func (u *SkipList[K]) Floor(k K) (v K, ok bool) {
	if n := u.lastNotAbove(k); n != &u.head {
		return n.v, true
	}
	return
}

func (u *SkipList[K]) Size() int {
	return u.sz
}

func (u *SkipList[K]) Empty() bool {
	return u.sz == 0
}

// Level is the highest level in use, 0 when empty.
func (u *SkipList[K]) Level() int {
	return u.level
}

func (u *SkipList[K]) MaxLevel() int {
	return u.maxLevel
}

func (u *SkipList[K]) Probability() float64 {
	return u.p
}

// Clear drops every node; the configuration and generator state are kept.
func (u *SkipList[K]) Clear() {
	clear(u.head.next)
	u.level, u.sz = 0, 0
}

// InOrder [Sets.OrderedSet.InOrder] walks level 0.
func (u *SkipList[K]) InOrder(visit func(K) bool) {
	for n := u.head.next[0]; n != nil && visit(n.v); n = n.next[0] {
	}
}

// All returns an iterator over the keys in ascending order.
func (u *SkipList[K]) All() iter.Seq[K] {
	return u.InOrder
}

func (u *SkipList[K]) ToSortedSlice() []K {
	s := make([]K, 0, u.sz)
	for n := u.head.next[0]; n != nil; n = n.next[0] {
		s = append(s, n.v)
	}
	return s
}

// LevelCounts returns how many nodes are linked on each level, from 0 to
// Level().
func (u *SkipList[K]) LevelCounts() []int {
	c := make([]int, u.level+1)
	for n := u.head.next[0]; n != nil; n = n.next[0] {
		for i := range min(len(n.next), len(c)) {
			c[i]++
		}
	}
	return c
}

// Check returns a description of the first violated invariant, or nil:
// every level is strictly increasing, level 0 holds Size() nodes, no node is
// taller than MaxLevel, and each level links exactly the nodes tall enough for
// it. Empty levels above Level() are checked too.
func (u *SkipList[K]) Check() error {
	if len(u.head.next) != u.maxLevel+1 {
		return fmt.Errorf("header has %d links, want %d", len(u.head.next), u.maxLevel+1)
	}
	tall := make([]int, u.maxLevel+1)
	n0 := 0
	for n := u.head.next[0]; n != nil; n = n.next[0] {
		n0++
		if l := len(n.next) - 1; l < 0 || l > u.maxLevel {
			return fmt.Errorf("node %v has level %d", n.v, l)
		} else if l > u.level {
			return fmt.Errorf("node %v has level %d above the list level %d", n.v, l, u.level)
		}
		for i := range n.next {
			tall[i]++
		}
	}
	if n0 != u.sz {
		return fmt.Errorf("level 0 links %d nodes, size is %d", n0, u.sz)
	}
	for i := 0; i <= u.maxLevel; i++ {
		cnt := 0
		var prev *node[K]
		for n := u.head.next[i]; n != nil; n = n.next[i] {
			if len(n.next) <= i {
				return fmt.Errorf("node %v of level %d is linked on level %d", n.v, len(n.next)-1, i)
			}
			if prev != nil && !u.less(prev.v, n.v) {
				return fmt.Errorf("level %d isn't increasing at %v, %v", i, prev.v, n.v)
			}
			prev = n
			cnt++
		}
		if cnt != tall[i] {
			return fmt.Errorf("level %d links %d nodes, %d are tall enough", i, cnt, tall[i])
		}
	}
	if u.level > 0 && u.head.next[u.level] == nil {
		return fmt.Errorf("top level %d is empty", u.level)
	}
	return nil
}

// Verify [Sets.OrderedSet.Verify]
func (u *SkipList[K]) Verify() bool {
	return u.Check() == nil
}

// Clone returns a deep copy of u with the same node levels. The copy continues
// from a snapshot of u's generator.
// Time: O(n)
func (u *SkipList[K]) Clone() *SkipList[K] {
	src := *u.src
	c := &SkipList[K]{
		head:     node[K]{next: make([]*node[K], u.maxLevel+1)},
		level:    u.level,
		sz:       u.sz,
		maxLevel: u.maxLevel,
		p:        u.p,
		less:     u.less,
		src:      &src,
		update:   make([]*node[K], u.maxLevel+1),
	}
	c.rng = rand.New(c.src)
	last := make([]*node[K], u.maxLevel+1)
	for i := range last {
		last[i] = &c.head
	}
	for n := u.head.next[0]; n != nil; n = n.next[0] {
		x := &node[K]{v: n.v, next: make([]*node[K], len(n.next))}
		for i := range x.next {
			last[i].next[i] = x
			last[i] = x
		}
	}
	return c
}

// Swap exchanges the contents of u and o, configurations included.
func (u *SkipList[K]) Swap(o *SkipList[K]) {
	*u, *o = *o, *u
}
