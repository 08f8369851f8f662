package algo

import "github.com/alexhholmes/bptree/internal/base"

// BorrowFromLeft moves the last key of leftSibling into node through parent.
// parentKeyIdx is the separator between the two siblings.
func BorrowFromLeft(a *base.Arena, node, leftSibling, parent *base.Node, parentKeyIdx int) {
	last := len(leftSibling.Keys) - 1

	if node.IsLeaf() {
		// Move the entry, the separator becomes node's new first key
		node.Keys = InsertAt(node.Keys, 0, leftSibling.Keys[last])
		node.Values = InsertAt(node.Values, 0, leftSibling.Values[last])
		leftSibling.Keys = RemoveAt(leftSibling.Keys, last)
		leftSibling.Values = RemoveAt(leftSibling.Values, last)

		parent.Keys[parentKeyIdx] = node.Keys[0]
		return
	}

	// Branch borrow: rotate through the parent separator
	node.Keys = InsertAt(node.Keys, 0, parent.Keys[parentKeyIdx])
	parent.Keys[parentKeyIdx] = leftSibling.Keys[last]
	leftSibling.Keys = RemoveAt(leftSibling.Keys, last)

	child := leftSibling.Children[len(leftSibling.Children)-1]
	leftSibling.Children = RemoveAt(leftSibling.Children, len(leftSibling.Children)-1)
	node.Children = InsertAt(node.Children, 0, child)
	a.Get(child).Parent = node.ID
}

// BorrowFromRight moves the first key of rightSibling into node through
// parent. parentKeyIdx is the separator between the two siblings.
func BorrowFromRight(a *base.Arena, node, rightSibling, parent *base.Node, parentKeyIdx int) {
	if node.IsLeaf() {
		node.Keys = append(node.Keys, rightSibling.Keys[0])
		node.Values = append(node.Values, rightSibling.Values[0])
		rightSibling.Keys = RemoveAt(rightSibling.Keys, 0)
		rightSibling.Values = RemoveAt(rightSibling.Values, 0)

		parent.Keys[parentKeyIdx] = rightSibling.Keys[0]
		return
	}

	node.Keys = append(node.Keys, parent.Keys[parentKeyIdx])
	parent.Keys[parentKeyIdx] = rightSibling.Keys[0]
	rightSibling.Keys = RemoveAt(rightSibling.Keys, 0)

	child := rightSibling.Children[0]
	rightSibling.Children = RemoveAt(rightSibling.Children, 0)
	node.Children = append(node.Children, child)
	a.Get(child).Parent = node.ID
}

// Merge folds rightSibling into leftNode, removes the separator at
// parentKeyIdx and the right child slot from parent, and frees rightSibling.
func Merge(a *base.Arena, leftNode, rightSibling, parent *base.Node, parentKeyIdx int) {
	if leftNode.IsLeaf() {
		// Leaf separators are routing only, don't pull them down
		leftNode.Keys = append(leftNode.Keys, rightSibling.Keys...)
		leftNode.Values = append(leftNode.Values, rightSibling.Values...)

		leftNode.Next = rightSibling.Next
		if rightSibling.Next != base.Nil {
			a.Get(rightSibling.Next).Prev = leftNode.ID
		}
	} else {
		leftNode.Keys = append(leftNode.Keys, parent.Keys[parentKeyIdx])
		leftNode.Keys = append(leftNode.Keys, rightSibling.Keys...)
		for _, child := range rightSibling.Children {
			a.Get(child).Parent = leftNode.ID
		}
		leftNode.Children = append(leftNode.Children, rightSibling.Children...)
	}

	parent.Keys = RemoveAt(parent.Keys, parentKeyIdx)
	parent.Children = RemoveAt(parent.Children, parentKeyIdx+1)

	a.Free(rightSibling.ID)
}
