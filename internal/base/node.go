package base

import "slices"

// NodeID is a handle into an Arena. The zero value is Nil.
type NodeID uint32

// Nil is the handle of no node: a root's parent, the last leaf's Next, the
// first leaf's Prev, and the root of an empty tree.
const Nil NodeID = 0

// Node is a B+ tree node stored in an Arena.
//
// Leaf nodes carry Keys and Values (one value collection per key) and are
// linked to their neighbours through Next and Prev. Branch nodes carry routing
// Keys and len(Keys)+1 Children; Values, Next and Prev are unused.
type Node struct {
	ID     NodeID
	Leaf   bool
	Parent NodeID

	Keys     []string
	Values   [][]any
	Children []NodeID

	// Leaf chain
	Next NodeID
	Prev NodeID
}

// IsLeaf returns true if this is a leaf Node
func (n *Node) IsLeaf() bool {
	return n.Leaf
}

// NumKeys returns the number of keys (entries for a leaf, separators for a
// branch) held by the node.
func (n *Node) NumKeys() int {
	return len(n.Keys)
}

// IsUnderflow checks if Node has fewer than minKeys keys (doesn't apply to root)
func (n *Node) IsUnderflow(minKeys int) bool {
	return len(n.Keys) < minKeys
}

// IsFull reports whether the node reached the split threshold for degree.
func (n *Node) IsFull(degree int) bool {
	return len(n.Keys) >= degree
}

// ChildIndex returns the position of child in n.Children, or -1.
func (n *Node) ChildIndex(child NodeID) int {
	return slices.Index(n.Children, child)
}

// Reset clears the node for reuse, keeping slice capacity.
func (n *Node) Reset() {
	n.Leaf = false
	n.Parent = Nil
	n.Next = Nil
	n.Prev = Nil
	clear(n.Keys)
	clear(n.Values)
	n.Keys = n.Keys[:0]
	n.Values = n.Values[:0]
	n.Children = n.Children[:0]
}
