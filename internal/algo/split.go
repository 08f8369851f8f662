package algo

import "github.com/alexhholmes/bptree/internal/base"

// SplitPoint contains split calculation results
type SplitPoint struct {
	Mid          int
	LeftCount    int
	RightCount   int
	SeparatorKey string
}

// MinKeys is the minimum number of keys a non-root node holds for degree.
func MinKeys(degree int) int {
	return (degree+1)/2 - 1
}

// LeafSplitPoint cuts a full leaf at degree/2. The right half keeps the
// separator as its first entry.
func LeafSplitPoint(node *base.Node, degree int) SplitPoint {
	if !node.IsLeaf() {
		panic("leaf split point on branch node")
	}
	mid := degree / 2
	if mid <= 0 || mid >= len(node.Keys) {
		panic("cannot split leaf with fewer than two keys")
	}
	return SplitPoint{
		Mid:          mid,
		LeftCount:    mid,
		RightCount:   len(node.Keys) - mid,
		SeparatorKey: node.Keys[mid],
	}
}

// BranchSplitPoint cuts a full branch at ceil(degree/2)-1. The separator
// moves up and belongs to neither half.
//
// The leaf and branch cut points differ on purpose: both halves of a branch
// split lose the promoted key, so the left half is held at exactly MinKeys.
func BranchSplitPoint(node *base.Node, degree int) SplitPoint {
	if node.IsLeaf() {
		panic("branch split point on leaf node")
	}
	mid := MinKeys(degree)
	if mid >= len(node.Keys) {
		panic("cannot split branch with too few keys")
	}
	return SplitPoint{
		Mid:          mid,
		LeftCount:    mid,
		RightCount:   len(node.Keys) - mid - 1,
		SeparatorKey: node.Keys[mid],
	}
}

// SplitLeaf moves the entries from sp.Mid onwards into a new right sibling
// and links it into the leaf chain after node.
func SplitLeaf(a *base.Arena, node *base.Node, sp SplitPoint) *base.Node {
	right := a.Alloc(true)
	right.Keys = append(right.Keys, node.Keys[sp.Mid:]...)
	right.Values = append(right.Values, node.Values[sp.Mid:]...)
	right.Parent = node.Parent

	clear(node.Keys[sp.Mid:])
	clear(node.Values[sp.Mid:])
	node.Keys = node.Keys[:sp.Mid]
	node.Values = node.Values[:sp.Mid]

	right.Prev = node.ID
	right.Next = node.Next
	if node.Next != base.Nil {
		a.Get(node.Next).Prev = right.ID
	}
	node.Next = right.ID

	return right
}

// SplitBranch moves the keys after sp.Mid and their children into a new
// right sibling. The separator sp.SeparatorKey is removed from node.
func SplitBranch(a *base.Arena, node *base.Node, sp SplitPoint) *base.Node {
	right := a.Alloc(false)
	right.Keys = append(right.Keys, node.Keys[sp.Mid+1:]...)
	right.Children = append(right.Children, node.Children[sp.Mid+1:]...)
	right.Parent = node.Parent
	for _, child := range right.Children {
		a.Get(child).Parent = right.ID
	}

	clear(node.Keys[sp.Mid:])
	node.Keys = node.Keys[:sp.Mid]
	node.Children = node.Children[:sp.Mid+1]

	return right
}

// InsertChild places separator and right immediately after left in parent.
func InsertChild(a *base.Arena, parent *base.Node, left, right *base.Node, separator string) {
	idx := parent.ChildIndex(left.ID)
	if idx < 0 {
		panic("split node is not a child of its parent")
	}
	parent.Keys = InsertAt(parent.Keys, idx, separator)
	parent.Children = InsertAt(parent.Children, idx+1, right.ID)
	right.Parent = parent.ID
}
