package BTree

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"sort"
	"strings"

	Go_Ordered "github.com/g-m-twostay/go-ordered"
	"github.com/g-m-twostay/go-ordered/Queues"
	"github.com/g-m-twostay/go-ordered/Sets"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/constraints"
)

var _ Sets.OrderedSet[int] = (*BTree[int])(nil)

// DefaultDegree is the minimum degree used when WithDegree isn't given.
const DefaultDegree = 3

type options struct {
	degree int
}

func defaultOptions() options {
	return options{degree: DefaultDegree}
}

// Option configures a BTree.
type Option func(*options)

// WithDegree sets the minimum degree t: every node other than the root holds
// between t-1 and 2t-1 keys. t must be at least 2.
func WithDegree(t int) Option {
	return func(o *options) {
		o.degree = t
	}
}

// BTree is an in memory B-tree holding unique keys. Insertion splits full
// nodes on the way down and erasure fills thin nodes on the way down, so both
// are a single pass from the root. Let D be the height, D=O(log_t n).
type BTree[K any] struct {
	root *node[K]
	sz   int
	t    int
	less Go_Ordered.Less[K]
}

// New returns an empty BTree ordered by <.
func New[K constraints.Ordered](opts ...Option) (*BTree[K], error) {
	return NewFunc(Go_Ordered.Natural[K](), opts...)
}

// NewFunc returns an empty BTree ordered by less. It fails with a
// Go_Ordered.ConfigError if the degree is less than 2.
func NewFunc[K any](less Go_Ordered.Less[K], opts ...Option) (*BTree[K], error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.degree < 2 {
		return nil, Go_Ordered.ConfigError{Param: "degree", Value: o.degree, Want: ">= 2"}
	}
	return &BTree[K]{t: o.degree, less: less}, nil
}

// From inserts ks, in order, into a new BTree ordered by <.
func From[K constraints.Ordered](ks []K, opts ...Option) (*BTree[K], error) {
	u, err := New[K](opts...)
	if err != nil {
		return nil, err
	}
	for _, k := range ks {
		u.Insert(k)
	}
	return u, nil
}

func (u *BTree[K]) maxKeys() int {
	return 2*u.t - 1
}

// locate returns the position of the first key in n not less than k, and
// whether that key is equal to k.
// Time: O(log t)
func (u *BTree[K]) locate(n *node[K], k K) (int, bool) {
	return slices.BinarySearchFunc(n.keys, k, u.less.Compare)
}

// above returns the position of the first key in n greater than k.
func (u *BTree[K]) above(n *node[K], k K) int {
	return sort.Search(len(n.keys), func(i int) bool { return u.less(k, n.keys[i]) })
}

// split the full child p.children[i] into two nodes of t-1 keys and move its
// median up into p at position i. p mustn't be full.
func (u *BTree[K]) split(p *node[K], i int) {
	c := p.children[i]
	t := u.t
	r := &node[K]{keys: append(make([]K, 0, u.maxKeys()), c.keys[t:]...)}
	if !c.leaf() {
		r.children = append(make([]*node[K], 0, 2*t), c.children[t:]...)
		clear(c.children[t:])
		c.children = c.children[:t]
	}
	mid := c.keys[t-1]
	clear(c.keys[t-1:])
	c.keys = c.keys[:t-1]
	p.keys = slices.Insert(p.keys, i, mid)
	p.children = slices.Insert(p.children, i+1, r)
	if Go_Ordered.Tracing() {
		Go_Ordered.Log.WithFields(logrus.Fields{"median": mid, "at": i}).Debug("btree: split")
	}
}

// Insert [Sets.OrderedSet.Insert]. A full root is split first, which is the
// only way the tree grows taller.
// Time: O(t*D)
func (u *BTree[K]) Insert(k K) bool {
	if u.root == nil {
		u.root = &node[K]{keys: append(make([]K, 0, u.maxKeys()), k)}
		u.sz = 1
		return true
	}
	if len(u.root.keys) == u.maxKeys() {
		u.root = &node[K]{children: []*node[K]{u.root}}
		u.split(u.root, 0)
		if Go_Ordered.Tracing() {
			Go_Ordered.Log.WithField("height", u.Height()).Debug("btree: root grew")
		}
	}
	n := u.root
	for {
		i, found := u.locate(n, k)
		if found {
			return false
		}
		if n.leaf() {
			n.keys = slices.Insert(n.keys, i, k)
			u.sz++
			return true
		}
		if len(n.children[i].keys) == u.maxKeys() {
			u.split(n, i)
			if c := u.less.Compare(k, n.keys[i]); c == 0 {
				return false
			} else if c > 0 {
				i++
			}
		}
		n = n.children[i]
	}
}

// Erase [Sets.OrderedSet.Erase]. An emptied internal root is replaced by its
// only child, which is the only way the tree shrinks.
// Time: O(t*D)
func (u *BTree[K]) Erase(k K) bool {
	if u.root == nil {
		return false
	}
	removed := u.remove(u.root, k)
	if len(u.root.keys) == 0 {
		if u.root.leaf() {
			u.root = nil
		} else {
			u.root = u.root.children[0]
		}
		if Go_Ordered.Tracing() {
			Go_Ordered.Log.WithField("height", u.Height()).Debug("btree: root collapsed")
		}
	}
	if removed {
		u.sz--
	}
	return removed
}

// remove k from the subtree at n, which holds at least t keys unless it is the
// root. Recursive.
func (u *BTree[K]) remove(n *node[K], k K) bool {
	i, found := u.locate(n, k)
	if n.leaf() {
		if !found {
			return false
		}
		n.keys = slices.Delete(n.keys, i, i+1)
		return true
	}
	if found {
		if l := n.children[i]; len(l.keys) >= u.t {
			pred := l.maxKey()
			n.keys[i] = pred
			return u.remove(l, pred)
		}
		if r := n.children[i+1]; len(r.keys) >= u.t {
			succ := r.minKey()
			n.keys[i] = succ
			return u.remove(r, succ)
		}
		u.merge(n, i)
		return u.remove(n.children[i], k)
	}
	if len(n.children[i].keys) < u.t {
		i = u.fill(n, i)
	}
	return u.remove(n.children[i], k)
}

// fill gives n.children[i], which has t-1 keys, at least t keys. It returns the
// position of the child that now covers the keys children[i] covered.
func (u *BTree[K]) fill(n *node[K], i int) int {
	if i > 0 && len(n.children[i-1].keys) >= u.t {
		u.borrowLeft(n, i)
		return i
	}
	if i < len(n.keys) && len(n.children[i+1].keys) >= u.t {
		u.borrowRight(n, i)
		return i
	}
	if i < len(n.keys) {
		u.merge(n, i)
		return i
	}
	u.merge(n, i-1)
	return i - 1
}

// borrowLeft rotates a key from children[i-1] through the separator into
// children[i].
func (u *BTree[K]) borrowLeft(n *node[K], i int) {
	c, s := n.children[i], n.children[i-1]
	last := len(s.keys) - 1
	c.keys = slices.Insert(c.keys, 0, n.keys[i-1])
	n.keys[i-1] = s.keys[last]
	s.keys = slices.Delete(s.keys, last, last+1)
	if !c.leaf() {
		lc := len(s.children) - 1
		c.children = slices.Insert(c.children, 0, s.children[lc])
		s.children = slices.Delete(s.children, lc, lc+1)
	}
	if Go_Ordered.Tracing() {
		Go_Ordered.Log.WithFields(logrus.Fields{"separator": n.keys[i-1], "at": i}).Debug("btree: borrow from left")
	}
}

// borrowRight rotates a key from children[i+1] through the separator into
// children[i].
func (u *BTree[K]) borrowRight(n *node[K], i int) {
	c, s := n.children[i], n.children[i+1]
	c.keys = append(c.keys, n.keys[i])
	n.keys[i] = s.keys[0]
	s.keys = slices.Delete(s.keys, 0, 1)
	if !c.leaf() {
		c.children = append(c.children, s.children[0])
		s.children = slices.Delete(s.children, 0, 1)
	}
	if Go_Ordered.Tracing() {
		Go_Ordered.Log.WithFields(logrus.Fields{"separator": n.keys[i], "at": i}).Debug("btree: borrow from right")
	}
}

// merge children[i], keys[i] and children[i+1] into children[i]. Both
// children have t-1 keys, so the result has 2t-1.
func (u *BTree[K]) merge(n *node[K], i int) {
	c, s := n.children[i], n.children[i+1]
	sep := n.keys[i]
	c.keys = append(append(c.keys, sep), s.keys...)
	c.children = append(c.children, s.children...)
	n.keys = slices.Delete(n.keys, i, i+1)
	n.children = slices.Delete(n.children, i+1, i+2)
	if Go_Ordered.Tracing() {
		Go_Ordered.Log.WithFields(logrus.Fields{"separator": sep, "at": i}).Debug("btree: merge")
	}
}

// search returns the node holding k and its position there.
// Time: O(log(t)*D); Space: O(1)
func (u *BTree[K]) search(k K) (*node[K], int) {
	for n := u.root; n != nil; {
		i, found := u.locate(n, k)
		if found {
			return n, i
		}
		if n.leaf() {
			break
		}
		n = n.children[i]
	}
	return nil, 0
}

// Contains [Sets.OrderedSet.Contains]
func (u *BTree[K]) Contains(k K) bool {
	n, _ := u.search(k)
	return n != nil
}

// Find [Sets.OrderedSet.Find]
func (u *BTree[K]) Find(k K) (v K, ok bool) {
	if n, i := u.search(k); n != nil {
		return n.keys[i], true
	}
	return
}

// At [Sets.OrderedSet.At]
func (u *BTree[K]) At(k K) (v K, e error) {
	if n, i := u.search(k); n != nil {
		return n.keys[i], nil
	}
	return v, Go_Ordered.KeyAbsentError[K]{Key: k}
}

// Min [Sets.OrderedSet.Min]
func (u *BTree[K]) Min() (k K, e error) {
	if u.root == nil {
		return k, Go_Ordered.EmptyError{Op: "Min"}
	}
	return u.root.minKey(), nil
}

// Max [Sets.OrderedSet.Max]
func (u *BTree[K]) Max() (k K, e error) {
	if u.root == nil {
		return k, Go_Ordered.EmptyError{Op: "Max"}
	}
	return u.root.maxKey(), nil
}

// LowerBound [Sets.OrderedSet.LowerBound]. A candidate found deeper is always
// smaller than the one above it.
func (u *BTree[K]) LowerBound(k K) (r K, ok bool) {
	for n := u.root; n != nil; {
		i, found := u.locate(n, k)
		if found {
			return n.keys[i], true
		}
		if i < len(n.keys) {
			r, ok = n.keys[i], true
		}
		if n.leaf() {
			break
		}
		n = n.children[i]
	}
	return
}

// UpperBound [Sets.OrderedSet.UpperBound]
func (u *BTree[K]) UpperBound(k K) (r K, ok bool) {
	for n := u.root; n != nil; {
		i := u.above(n, k)
		if i < len(n.keys) {
			r, ok = n.keys[i], true
		}
		if n.leaf() {
			break
		}
		n = n.children[i]
	}
	return
}

// Floor [Sets.OrderedSet.Floor]
func (u *BTree[K]) Floor(k K) (r K, ok bool) {
	for n := u.root; n != nil; {
		i, found := u.locate(n, k)
		if found {
			return n.keys[i], true
		}
		if i > 0 {
			r, ok = n.keys[i-1], true
		}
		if n.leaf() {
			break
		}
		n = n.children[i]
	}
	return
}

func (u *BTree[K]) Size() int {
	return u.sz
}

func (u *BTree[K]) Empty() bool {
	return u.sz == 0
}

// Clear drops every node; the degree is kept.
func (u *BTree[K]) Clear() {
	u.root, u.sz = nil, 0
}

// Degree is the minimum degree t.
func (u *BTree[K]) Degree() int {
	return u.t
}

// Height is the number of levels, 0 when empty.
// Time: O(D)
func (u *BTree[K]) Height() (h int) {
	for n := u.root; n != nil; h++ {
		if n.leaf() {
			return h + 1
		}
		n = n.children[0]
	}
	return
}

// InOrder [Sets.OrderedSet.InOrder]. Recursive.
func (u *BTree[K]) InOrder(visit func(K) bool) {
	if u.root != nil {
		u.root.inOrder(visit)
	}
}

// All returns an iterator over the keys in ascending order.
func (u *BTree[K]) All() iter.Seq[K] {
	return u.InOrder
}

func (u *BTree[K]) ToSortedSlice() []K {
	s := make([]K, 0, u.sz)
	u.InOrder(func(k K) bool {
		s = append(s, k)
		return true
	})
	return s
}

type levelItem[K any] struct {
	n     *node[K]
	depth int
}

// Nodes visits every node breadth first with its depth, the root being at 0.
// keys must not be modified or retained.
func (u *BTree[K]) Nodes(visit func(depth int, keys []K) bool) {
	if u.root == nil {
		return
	}
	q := Queues.NewDeque[levelItem[K]](u.t * 2)
	q.PushBack(levelItem[K]{u.root, 0})
	for !q.Empty() {
		it, _ := q.PopFront()
		if !visit(it.depth, it.n.keys) {
			return
		}
		for _, c := range it.n.children {
			q.PushBack(levelItem[K]{c, it.depth + 1})
		}
	}
}

// String renders the tree in a Newick like form: a leaf is [k0 k1 ...], an
// internal node lists its children in parentheses before its own keys.
// Recursive.
func (u *BTree[K]) String() string {
	var sb strings.Builder
	var write func(*node[K])
	write = func(n *node[K]) {
		if !n.leaf() {
			sb.WriteByte('(')
			for i, c := range n.children {
				if i > 0 {
					sb.WriteByte(',')
				}
				write(c)
			}
			sb.WriteByte(')')
		}
		sb.WriteByte('[')
		for i, k := range n.keys {
			if i > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprint(&sb, k)
		}
		sb.WriteByte(']')
	}
	if u.root != nil {
		write(u.root)
	}
	sb.WriteByte(';')
	return sb.String()
}

// Check returns a description of the first violated invariant, or nil. It
// checks key counts, ordering within and across nodes, child counts, leaf
// depths and the size. Recursive.
func (u *BTree[K]) Check() error {
	if u.root == nil {
		if u.sz != 0 {
			return fmt.Errorf("empty tree has size %d", u.sz)
		}
		return nil
	}
	if len(u.root.keys) == 0 {
		return errors.New("root has no keys")
	}
	leafDepth, count := -1, 0
	var check func(n *node[K], lo, hi *K, depth int) error
	check = func(n *node[K], lo, hi *K, depth int) error {
		if n != u.root && len(n.keys) < u.t-1 {
			return fmt.Errorf("node %v at depth %d has fewer than %d keys", n.keys, depth, u.t-1)
		}
		if len(n.keys) > u.maxKeys() {
			return fmt.Errorf("node %v at depth %d has more than %d keys", n.keys, depth, u.maxKeys())
		}
		for i := 1; i < len(n.keys); i++ {
			if !u.less(n.keys[i-1], n.keys[i]) {
				return fmt.Errorf("node %v isn't strictly increasing", n.keys)
			}
		}
		if lo != nil && !u.less(*lo, n.keys[0]) {
			return fmt.Errorf("node %v isn't above separator %v", n.keys, *lo)
		}
		if hi != nil && !u.less(n.keys[len(n.keys)-1], *hi) {
			return fmt.Errorf("node %v isn't below separator %v", n.keys, *hi)
		}
		count += len(n.keys)
		if n.leaf() {
			if leafDepth < 0 {
				leafDepth = depth
			} else if depth != leafDepth {
				return fmt.Errorf("leaf %v at depth %d, want %d", n.keys, depth, leafDepth)
			}
			return nil
		}
		if len(n.children) != len(n.keys)+1 {
			return fmt.Errorf("node %v has %d children", n.keys, len(n.children))
		}
		for i, c := range n.children {
			cl, ch := lo, hi
			if i > 0 {
				cl = &n.keys[i-1]
			}
			if i < len(n.keys) {
				ch = &n.keys[i]
			}
			if err := check(c, cl, ch, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	if err := check(u.root, nil, nil, 0); err != nil {
		return err
	}
	if count != u.sz {
		return fmt.Errorf("tree holds %d keys, size is %d", count, u.sz)
	}
	return nil
}

// Verify [Sets.OrderedSet.Verify]
func (u *BTree[K]) Verify() bool {
	return u.Check() == nil
}

// Clone returns a deep copy of u. Recursive.
func (u *BTree[K]) Clone() *BTree[K] {
	return &BTree[K]{u.root.clone(), u.sz, u.t, u.less}
}

// Swap exchanges the contents of u and o, degrees included.
func (u *BTree[K]) Swap(o *BTree[K]) {
	*u, *o = *o, *u
}
