// Package bptree implements an in-memory ordered key-value index as a B+
// tree. Entries live in leaves linked in key order; branch nodes hold only
// routing keys.
//
// A BPlusTree is not safe for concurrent use. Callers that share one across
// goroutines must serialize mutations, for example behind a sync.RWMutex
// where reads take the read lock.
package bptree

import (
	"fmt"

	"github.com/alexhholmes/bptree/internal/algo"
	"github.com/alexhholmes/bptree/internal/base"
	"github.com/alexhholmes/bptree/internal/cache"
)

// MinDegree is the smallest branching factor for which splits and merges
// are defined.
const MinDegree = 3

// KeyValue is one entry of the tree: a key and the values stored under it.
type KeyValue struct {
	Key    string
	Values []any
}

func (kv KeyValue) clone() KeyValue {
	return KeyValue{Key: kv.Key, Values: cloneValues(kv.Values)}
}

func cloneValues(values []any) []any {
	return append(make([]any, 0, len(values)), values...)
}

// BPlusTree is the main structure
type BPlusTree struct {
	arena   *base.Arena
	root    base.NodeID
	degree  int
	minKeys int
	count   int    // number of keys
	mods    uint64 // bumped by every mutation, checked by cursors

	compare algo.Compare
	logger  Logger
	verify  bool
	cache   *cache.Cache[KeyValue] // nil when disabled
	custom  bool                   // compare is not strings.Compare
}

// New creates an empty tree whose nodes hold at most degree-1 keys.
func New(degree int, opts ...Option) (*BPlusTree, error) {
	if degree < MinDegree {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDegree, degree)
	}

	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	if options.cacheSize < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCacheSize, options.cacheSize)
	}

	t := &BPlusTree{
		arena:   base.NewArena(),
		root:    base.Nil,
		degree:  degree,
		minKeys: algo.MinKeys(degree),
		compare: options.compare,
		logger:  options.logger,
		verify:  options.verify,
		custom:  options.custom,
	}

	if options.cacheSize > 0 {
		c, err := cache.New[KeyValue](options.cacheSize)
		if err != nil {
			return nil, err
		}
		t.cache = c
	}

	return t, nil
}

// MustNew is like New but panics on invalid configuration.
func MustNew(degree int, opts ...Option) *BPlusTree {
	t, err := New(degree, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// Degree returns the branching factor chosen at construction.
func (t *BPlusTree) Degree() int {
	return t.degree
}

// MinKeys returns the minimum number of keys held by every non-root node.
func (t *BPlusTree) MinKeys() int {
	return t.minKeys
}

// Len returns the number of distinct keys.
func (t *BPlusTree) Len() int {
	return t.count
}

// Height returns the number of levels, 0 for an empty tree.
func (t *BPlusTree) Height() int {
	height := 0
	for id := t.root; id != base.Nil; height++ {
		node := t.arena.Get(id)
		if node.IsLeaf() {
			id = base.Nil
		} else {
			id = node.Children[0]
		}
	}
	return height
}

// findLeaf descends from the root to the leaf whose range contains key.
// Returns nil for an empty tree.
func (t *BPlusTree) findLeaf(key string) *base.Node {
	if t.root == base.Nil {
		return nil
	}
	node := t.arena.Get(t.root)
	for !node.IsLeaf() {
		node = t.arena.Get(node.Children[algo.FindChildIndex(node, key, t.compare)])
	}
	return node
}

// edgeLeaf returns the leftmost or rightmost leaf, or nil for an empty tree.
func (t *BPlusTree) edgeLeaf(rightmost bool) *base.Node {
	if t.root == base.Nil {
		return nil
	}
	node := t.arena.Get(t.root)
	for !node.IsLeaf() {
		if rightmost {
			node = t.arena.Get(node.Children[len(node.Children)-1])
		} else {
			node = t.arena.Get(node.Children[0])
		}
	}
	return node
}

// Search returns the entry stored under key. The returned values are a copy.
func (t *BPlusTree) Search(key string) (KeyValue, bool) {
	if t.cache != nil {
		if kv, ok := t.cache.Get(key); ok {
			return kv.clone(), true
		}
	}

	leaf := t.findLeaf(key)
	if leaf == nil {
		return KeyValue{}, false
	}
	idx := algo.FindKeyInLeaf(leaf, key, t.compare)
	if idx < 0 {
		return KeyValue{}, false
	}

	kv := KeyValue{Key: leaf.Keys[idx], Values: cloneValues(leaf.Values[idx])}
	if t.cache != nil {
		t.cache.Put(key, kv.clone())
	}
	return kv, true
}

// Contains reports whether key is present.
func (t *BPlusTree) Contains(key string) bool {
	_, ok := t.Search(key)
	return ok
}

// Insert adds values under key. A key that is already present keeps its
// entry and has values appended to its collection. Inserting with no values
// stores the key with an empty collection.
func (t *BPlusTree) Insert(key string, values ...any) {
	t.touch(key)

	if t.root == base.Nil {
		leaf := t.arena.Alloc(true)
		leaf.Keys = append(leaf.Keys, key)
		leaf.Values = append(leaf.Values, cloneValues(values))
		t.root = leaf.ID
		t.count++
		t.check()
		return
	}

	leaf := t.findLeaf(key)
	idx := algo.FindInsertPosition(leaf, key, t.compare)
	if idx < len(leaf.Keys) && t.compare(leaf.Keys[idx], key) == 0 {
		leaf.Values[idx] = append(leaf.Values[idx], values...)
		t.check()
		return
	}

	leaf.Keys = algo.InsertAt(leaf.Keys, idx, key)
	leaf.Values = algo.InsertAt(leaf.Values, idx, cloneValues(values))
	t.count++

	if leaf.IsFull(t.degree) {
		t.split(leaf)
	}
	t.check()
}

// Update replaces the values stored under key and reports true. If key is
// absent it is inserted as a new entry and Update reports false.
func (t *BPlusTree) Update(key string, values ...any) bool {
	if leaf := t.findLeaf(key); leaf != nil {
		if idx := algo.FindKeyInLeaf(leaf, key, t.compare); idx >= 0 {
			t.touch(key)
			leaf.Values[idx] = cloneValues(values)
			t.check()
			return true
		}
	}

	t.Insert(key, values...)
	return false
}

// split climbs from a full node towards the root, splitting every node that
// reached degree keys. A split of the root grows the tree by one level.
func (t *BPlusTree) split(node *base.Node) {
	for node.IsFull(t.degree) {
		var sp algo.SplitPoint
		var right *base.Node
		if node.IsLeaf() {
			sp = algo.LeafSplitPoint(node, t.degree)
			right = algo.SplitLeaf(t.arena, node, sp)
		} else {
			sp = algo.BranchSplitPoint(node, t.degree)
			right = algo.SplitBranch(t.arena, node, sp)
		}

		if node.Parent == base.Nil {
			root := t.arena.Alloc(false)
			root.Keys = append(root.Keys, sp.SeparatorKey)
			root.Children = append(root.Children, node.ID, right.ID)
			node.Parent = root.ID
			right.Parent = root.ID
			t.root = root.ID
			t.logger.Info("bptree: root split", "height", t.Height(), "separator", sp.SeparatorKey)
			return
		}

		parent := t.arena.Get(node.Parent)
		algo.InsertChild(t.arena, parent, node, right, sp.SeparatorKey)
		node = parent
	}
}

// Delete removes key and its values. It reports whether key was present.
func (t *BPlusTree) Delete(key string) bool {
	leaf := t.findLeaf(key)
	if leaf == nil {
		return false
	}
	idx := algo.FindKeyInLeaf(leaf, key, t.compare)
	if idx < 0 {
		return false
	}

	t.touch(key)
	leaf.Keys = algo.RemoveAt(leaf.Keys, idx)
	leaf.Values = algo.RemoveAt(leaf.Values, idx)
	t.count--

	switch {
	case leaf.Parent == base.Nil:
		if leaf.NumKeys() == 0 {
			t.arena.Free(leaf.ID)
			t.root = base.Nil
		}
	case leaf.IsUnderflow(t.minKeys):
		t.rebalance(leaf)
	}

	t.check()
	return true
}

// rebalance repairs an underflowing node by borrowing from or merging with a
// sibling, then climbs while merges leave the parent underflowing.
//
// The sibling is chosen by position: the leftmost child pairs with its right
// sibling, the rightmost with its left sibling, and an interior child borrows
// from the left, then the right, and otherwise merges into the left.
func (t *BPlusTree) rebalance(node *base.Node) {
	for node.Parent != base.Nil && node.IsUnderflow(t.minKeys) {
		parent := t.arena.Get(node.Parent)
		idx := parent.ChildIndex(node.ID)
		last := len(parent.Children) - 1
		if idx < 0 || last < 1 {
			panic(fmt.Errorf("%w: node %d has no sibling under %d", ErrCorruption, node.ID, parent.ID))
		}

		switch idx {
		case 0:
			right := t.arena.Get(parent.Children[1])
			if right.NumKeys() > t.minKeys {
				algo.BorrowFromRight(t.arena, node, right, parent, 0)
				return
			}
			algo.Merge(t.arena, node, right, parent, 0)
		case last:
			left := t.arena.Get(parent.Children[idx-1])
			if left.NumKeys() > t.minKeys {
				algo.BorrowFromLeft(t.arena, node, left, parent, idx-1)
				return
			}
			algo.Merge(t.arena, left, node, parent, idx-1)
		default:
			left := t.arena.Get(parent.Children[idx-1])
			right := t.arena.Get(parent.Children[idx+1])
			switch {
			case left.NumKeys() > t.minKeys:
				algo.BorrowFromLeft(t.arena, node, left, parent, idx-1)
				return
			case right.NumKeys() > t.minKeys:
				algo.BorrowFromRight(t.arena, node, right, parent, idx)
				return
			default:
				algo.Merge(t.arena, left, node, parent, idx-1)
			}
		}

		if parent.Parent == base.Nil {
			if parent.NumKeys() == 0 {
				t.collapseRoot(parent)
			}
			return
		}
		node = parent
	}
}

// collapseRoot replaces a root left with a single child by that child.
func (t *BPlusTree) collapseRoot(root *base.Node) {
	child := t.arena.Get(root.Children[0])
	child.Parent = base.Nil
	t.root = child.ID
	t.arena.Free(root.ID)
	t.logger.Info("bptree: root collapsed", "height", t.Height())
}

// Clear removes every entry.
func (t *BPlusTree) Clear() {
	t.arena.Reset()
	t.root = base.Nil
	t.count = 0
	t.mods++
	if t.cache != nil {
		t.cache.Purge()
	}
	t.logger.Info("bptree: cleared")
}

// touch records a mutation of key: cursors become stale and the cached
// search result for key is dropped. Cache entries are keyed by the spelling
// passed to Search, so under a custom comparator every entry may alias key.
func (t *BPlusTree) touch(key string) {
	t.mods++
	switch {
	case t.cache == nil:
	case t.custom:
		t.cache.Purge()
	default:
		t.cache.Delete(key)
	}
}

// check runs Verify after a mutation when WithVerify is enabled.
func (t *BPlusTree) check() {
	if !t.verify {
		return
	}
	if err := t.Verify(); err != nil {
		t.logger.Error("bptree: invariant violation", "err", err)
		panic(err)
	}
}

// Stats describes the shape of the tree.
type Stats struct {
	Keys        int
	Height      int
	Leaves      int
	Branches    int
	CacheHits   uint64
	CacheMisses uint64
}

// Stats returns node counts and search cache statistics.
func (t *BPlusTree) Stats() Stats {
	s := Stats{Keys: t.count, Height: t.Height()}
	t.walk(func(node *base.Node, _ int) {
		if node.IsLeaf() {
			s.Leaves++
		} else {
			s.Branches++
		}
	})
	if t.cache != nil {
		cs := t.cache.Stats()
		s.CacheHits, s.CacheMisses = cs.Hits, cs.Misses
	}
	return s
}

// walk visits every node in level order with its depth (root = 0).
func (t *BPlusTree) walk(fn func(node *base.Node, depth int)) {
	if t.root == base.Nil {
		return
	}
	type item struct {
		id    base.NodeID
		depth int
	}
	queue := []item{{t.root, 0}}
	for len(queue) > 0 {
		it := queue[0]
		queue = queue[1:]
		node := t.arena.Get(it.id)
		fn(node, it.depth)
		for _, child := range node.Children {
			queue = append(queue, item{child, it.depth + 1})
		}
	}
}
