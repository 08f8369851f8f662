package bptree

import (
	"github.com/alexhholmes/bptree/internal/algo"
	"github.com/alexhholmes/bptree/internal/base"
)

// Cursor provides ordered iteration over the leaf chain.
//
// A cursor is bound to the tree state it was positioned on: any mutation of
// the tree makes it stale, after which every method returns an invalid
// position and Err reports ErrCursorStale.
type Cursor struct {
	tree  *BPlusTree
	leaf  base.NodeID // Current leaf
	index int         // Key position in leaf
	mods  uint64      // Tree modification count when positioned
	valid bool        // Is cursor positioned on valid key?
	err   error
}

// Cursor creates a new cursor for this tree.
// Cursor starts in invalid state - call First, Last or Seek to position it.
func (t *BPlusTree) Cursor() *Cursor {
	return &Cursor{tree: t, mods: t.mods}
}

// active returns ErrCursorStale once the tree has been mutated.
func (c *Cursor) active() error {
	if c.mods != c.tree.mods {
		c.valid = false
		c.err = ErrCursorStale
		return c.err
	}
	return nil
}

// Err returns the error that invalidated the cursor, if any.
func (c *Cursor) Err() error {
	return c.err
}

// Valid reports whether the cursor is positioned on a key.
func (c *Cursor) Valid() bool {
	return c.active() == nil && c.valid
}

// Key returns the current key, or "" if the cursor is invalid.
func (c *Cursor) Key() string {
	if !c.Valid() {
		return ""
	}
	return c.tree.arena.Get(c.leaf).Keys[c.index]
}

// Values returns a copy of the current values, or nil if the cursor is
// invalid.
func (c *Cursor) Values() []any {
	if !c.Valid() {
		return nil
	}
	return cloneValues(c.tree.arena.Get(c.leaf).Values[c.index])
}

// current returns the entry under the cursor.
func (c *Cursor) current() (string, []any) {
	if !c.valid {
		return "", nil
	}
	node := c.tree.arena.Get(c.leaf)
	return node.Keys[c.index], cloneValues(node.Values[c.index])
}

// position places the cursor at index in node, stepping over empty leaf
// tails in the given direction.
func (c *Cursor) position(node *base.Node, index int, forward bool) (string, []any) {
	for node != nil {
		if index >= 0 && index < node.NumKeys() {
			c.leaf, c.index, c.valid = node.ID, index, true
			return c.current()
		}

		var next base.NodeID
		if forward {
			next = node.Next
		} else {
			next = node.Prev
		}
		if next == base.Nil {
			break
		}
		node = c.tree.arena.Get(next)
		if forward {
			index = 0
		} else {
			index = node.NumKeys() - 1
		}
	}

	c.valid = false
	return "", nil
}

// First positions cursor at the first key in the tree
func (c *Cursor) First() (string, []any) {
	if err := c.active(); err != nil {
		return "", nil
	}
	return c.position(c.tree.edgeLeaf(false), 0, true)
}

// Last positions cursor at the last key in the tree
func (c *Cursor) Last() (string, []any) {
	if err := c.active(); err != nil {
		return "", nil
	}
	leaf := c.tree.edgeLeaf(true)
	if leaf == nil {
		c.valid = false
		return "", nil
	}
	return c.position(leaf, leaf.NumKeys()-1, false)
}

// Seek positions cursor at first key >= target
func (c *Cursor) Seek(target string) (string, []any) {
	if err := c.active(); err != nil {
		return "", nil
	}
	leaf := c.tree.findLeaf(target)
	if leaf == nil {
		c.valid = false
		return "", nil
	}
	return c.position(leaf, algo.FindInsertPosition(leaf, target, c.tree.compare), true)
}

// Next advances cursor to next key
// Returns key, values ("", nil if exhausted)
func (c *Cursor) Next() (string, []any) {
	if err := c.active(); err != nil || !c.valid {
		return "", nil
	}
	return c.position(c.tree.arena.Get(c.leaf), c.index+1, true)
}

// Prev moves cursor to previous key
// Returns key, values ("", nil if at beginning)
func (c *Cursor) Prev() (string, []any) {
	if err := c.active(); err != nil || !c.valid {
		return "", nil
	}
	return c.position(c.tree.arena.Get(c.leaf), c.index-1, false)
}
