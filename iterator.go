package bptree

import (
	"iter"

	"github.com/alexhholmes/bptree/internal/algo"
	"github.com/alexhholmes/bptree/internal/base"
)

// Scan returns every entry with from <= key <= to in ascending order. An
// empty tree or an empty interval yields an empty result.
func (t *BPlusTree) Scan(from, to string) []KeyValue {
	var out []KeyValue
	for key, values := range t.Range(from, to) {
		out = append(out, KeyValue{Key: key, Values: values})
	}
	return out
}

// ToOrderedList returns every entry in ascending key order, read from the
// leftmost leaf along the leaf chain.
func (t *BPlusTree) ToOrderedList() []KeyValue {
	out := make([]KeyValue, 0, t.count)
	for key, values := range t.All() {
		out = append(out, KeyValue{Key: key, Values: values})
	}
	return out
}

// All iterates every entry in ascending key order. The tree must not be
// mutated while iterating.
func (t *BPlusTree) All() iter.Seq2[string, []any] {
	return func(yield func(string, []any) bool) {
		t.ascend(t.edgeLeaf(false), 0, "", false, yield)
	}
}

// Range iterates the entries with from <= key <= to in ascending key order.
// The tree must not be mutated while iterating.
func (t *BPlusTree) Range(from, to string) iter.Seq2[string, []any] {
	return func(yield func(string, []any) bool) {
		if t.compare(from, to) > 0 {
			return
		}
		leaf := t.findLeaf(from)
		if leaf == nil {
			return
		}
		t.ascend(leaf, algo.FindInsertPosition(leaf, from, t.compare), to, true, yield)
	}
}

// ascend walks the leaf chain from index in leaf, stopping at the first key
// greater than to when bounded.
func (t *BPlusTree) ascend(leaf *base.Node, index int, to string, bounded bool, yield func(string, []any) bool) {
	for leaf != nil {
		for i := index; i < leaf.NumKeys(); i++ {
			if bounded && t.compare(leaf.Keys[i], to) > 0 {
				return
			}
			if !yield(leaf.Keys[i], cloneValues(leaf.Values[i])) {
				return
			}
		}
		if leaf.Next == base.Nil {
			return
		}
		leaf = t.arena.Get(leaf.Next)
		index = 0
	}
}
