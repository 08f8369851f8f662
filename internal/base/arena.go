package base

import "fmt"

// Arena owns every node of one tree. Nodes are addressed by NodeID; handles
// of freed nodes are recycled by later allocations.
type Arena struct {
	nodes []*Node         // index 0 is reserved for Nil
	freed []NodeID        // LIFO stack of reusable handles
	free  map[NodeID]bool // membership of freed, guards double free
}

// NewArena creates an empty Arena.
func NewArena() *Arena {
	return &Arena{
		nodes: []*Node{nil},
		free:  make(map[NodeID]bool),
	}
}

// Alloc returns a fresh node, reusing a freed handle when one is available.
func (a *Arena) Alloc(leaf bool) *Node {
	var n *Node
	if len(a.freed) > 0 {
		id := a.freed[len(a.freed)-1]
		a.freed = a.freed[:len(a.freed)-1]
		delete(a.free, id)
		n = a.nodes[id]
		n.Reset()
		n.ID = id
	} else {
		n = &Node{ID: NodeID(len(a.nodes))}
		a.nodes = append(a.nodes, n)
	}
	n.Leaf = leaf
	return n
}

// Get resolves a handle. It panics on Nil, out of range or freed handles:
// reaching one is a structural bug in the caller.
func (a *Arena) Get(id NodeID) *Node {
	if id == Nil || int(id) >= len(a.nodes) {
		panic(fmt.Errorf("%w: %d", ErrInvalidNodeID, id))
	}
	if a.free[id] {
		panic(fmt.Errorf("%w: %d", ErrNodeFreed, id))
	}
	return a.nodes[id]
}

// Free releases a node. Its handle may be returned by a later Alloc. Like
// Get, it panics on Nil, out of range or already freed handles.
func (a *Arena) Free(id NodeID) {
	a.Get(id).Reset()
	a.free[id] = true
	a.freed = append(a.freed, id)
}

// Live returns the number of allocated, not freed, nodes.
func (a *Arena) Live() int {
	return len(a.nodes) - 1 - len(a.freed)
}

// Reset drops every node.
func (a *Arena) Reset() {
	clear(a.nodes)
	a.nodes = a.nodes[:1]
	a.freed = a.freed[:0]
	clear(a.free)
}
