package bptree

import (
	"fmt"

	"github.com/alexhholmes/bptree/internal/base"
)

// Verify checks the structural invariants of the tree and returns an error
// wrapping ErrCorruption describing the first violation found:
//   - keys strictly ascending inside every node
//   - every key of child i is >= separator i-1 and < separator i
//   - every non-root node holds between MinKeys and Degree-1 keys
//   - branches hold exactly one more child than keys, leaves none
//   - parent links agree with child links, only the root has no parent
//   - all leaves sit at the same depth and form one chain in key order,
//     linked consistently in both directions
//   - Len matches the number of entries and no node is leaked
func (t *BPlusTree) Verify() error {
	if t.root == base.Nil {
		if t.count != 0 {
			return fmt.Errorf("%w: empty tree reports %d keys", ErrCorruption, t.count)
		}
		if live := t.arena.Live(); live != 0 {
			return fmt.Errorf("%w: empty tree holds %d nodes", ErrCorruption, live)
		}
		return nil
	}

	v := verifier{tree: t, leafDepth: -1}
	root := t.arena.Get(t.root)
	if root.Parent != base.Nil {
		return fmt.Errorf("%w: root %d has parent %d", ErrCorruption, root.ID, root.Parent)
	}
	if root.NumKeys() == 0 {
		return fmt.Errorf("%w: root %d is empty", ErrCorruption, root.ID)
	}
	if err := v.node(root, 0, nil, nil); err != nil {
		return err
	}
	if err := v.chain(); err != nil {
		return err
	}

	if v.entries != t.count {
		return fmt.Errorf("%w: %d entries reachable, Len is %d", ErrCorruption, v.entries, t.count)
	}
	if live := t.arena.Live(); live != v.nodes {
		return fmt.Errorf("%w: %d nodes reachable, %d allocated", ErrCorruption, v.nodes, live)
	}
	return nil
}

type verifier struct {
	tree      *BPlusTree
	leafDepth int
	leaves    []*base.Node // leaves in tree order
	entries   int
	nodes     int
}

// node checks n and its subtree. Every key must satisfy lo <= key < hi,
// where a nil bound is open.
func (v *verifier) node(n *base.Node, depth int, lo, hi *string) error {
	t := v.tree
	v.nodes++

	if n.ID != t.root {
		if n.IsUnderflow(t.minKeys) {
			return fmt.Errorf("%w: node %d holds %d keys, minimum is %d", ErrCorruption, n.ID, n.NumKeys(), t.minKeys)
		}
	}
	if n.NumKeys() > t.degree-1 {
		return fmt.Errorf("%w: node %d holds %d keys, maximum is %d", ErrCorruption, n.ID, n.NumKeys(), t.degree-1)
	}

	for i, key := range n.Keys {
		if i > 0 && t.compare(n.Keys[i-1], key) >= 0 {
			return fmt.Errorf("%w: node %d keys %q and %q out of order", ErrCorruption, n.ID, n.Keys[i-1], key)
		}
		if lo != nil && t.compare(key, *lo) < 0 {
			return fmt.Errorf("%w: node %d key %q below separator %q", ErrCorruption, n.ID, key, *lo)
		}
		if hi != nil && t.compare(key, *hi) >= 0 {
			return fmt.Errorf("%w: node %d key %q not below separator %q", ErrCorruption, n.ID, key, *hi)
		}
	}

	if n.IsLeaf() {
		if len(n.Children) != 0 {
			return fmt.Errorf("%w: leaf %d has %d children", ErrCorruption, n.ID, len(n.Children))
		}
		if len(n.Values) != n.NumKeys() {
			return fmt.Errorf("%w: leaf %d has %d keys and %d value sets", ErrCorruption, n.ID, n.NumKeys(), len(n.Values))
		}
		if v.leafDepth < 0 {
			v.leafDepth = depth
		} else if v.leafDepth != depth {
			return fmt.Errorf("%w: leaf %d at depth %d, expected %d", ErrCorruption, n.ID, depth, v.leafDepth)
		}
		v.leaves = append(v.leaves, n)
		v.entries += n.NumKeys()
		return nil
	}

	if len(n.Children) != n.NumKeys()+1 {
		return fmt.Errorf("%w: branch %d has %d keys and %d children", ErrCorruption, n.ID, n.NumKeys(), len(n.Children))
	}
	for i, id := range n.Children {
		child := t.arena.Get(id)
		if child.Parent != n.ID {
			return fmt.Errorf("%w: node %d parent is %d, expected %d", ErrCorruption, id, child.Parent, n.ID)
		}
		clo, chi := lo, hi
		if i > 0 {
			clo = &n.Keys[i-1]
		}
		if i < n.NumKeys() {
			chi = &n.Keys[i]
		}
		if err := v.node(child, depth+1, clo, chi); err != nil {
			return err
		}
	}
	return nil
}

// chain checks the leaf links against the leaf order found by descent.
func (v *verifier) chain() error {
	for i, leaf := range v.leaves {
		var prev, next base.NodeID
		if i > 0 {
			prev = v.leaves[i-1].ID
		}
		if i < len(v.leaves)-1 {
			next = v.leaves[i+1].ID
		}
		if leaf.Prev != prev {
			return fmt.Errorf("%w: leaf %d prev is %d, expected %d", ErrCorruption, leaf.ID, leaf.Prev, prev)
		}
		if leaf.Next != next {
			return fmt.Errorf("%w: leaf %d next is %d, expected %d", ErrCorruption, leaf.ID, leaf.Next, next)
		}
	}
	return nil
}
