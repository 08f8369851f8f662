// Package algo contains algorithms used for traversing and editing a b+ tree.
package algo

import (
	"sort"

	"github.com/alexhholmes/bptree/internal/base"
)

const searchThreshold = 8

// Compare orders two keys, returning a negative number when a < b, zero when
// equal and a positive number when a > b.
type Compare func(a, b string) int

// FindChildIndex returns the index of child pointer to follow for key.
// Keys equal to a separator route to the right of it.
func FindChildIndex(node *base.Node, key string, cmp Compare) int {
	keys := node.Keys
	if len(keys) < searchThreshold {
		i := 0
		for i < len(keys) && cmp(key, keys[i]) >= 0 {
			i++
		}
		return i
	}

	return sort.Search(len(keys), func(i int) bool {
		return cmp(key, keys[i]) < 0
	})
}

// FindKeyInLeaf returns index of key in leaf, or -1 if not found
func FindKeyInLeaf(node *base.Node, key string, cmp Compare) int {
	if !node.IsLeaf() {
		return -1
	}

	idx := FindInsertPosition(node, key, cmp)
	if idx < len(node.Keys) && cmp(node.Keys[idx], key) == 0 {
		return idx
	}
	return -1
}

// FindInsertPosition returns position to insert key in node: the first slot
// whose key is not less than key.
func FindInsertPosition(node *base.Node, key string, cmp Compare) int {
	keys := node.Keys
	if len(keys) < searchThreshold {
		pos := 0
		for pos < len(keys) && cmp(key, keys[pos]) > 0 {
			pos++
		}
		return pos
	}

	return sort.Search(len(keys), func(i int) bool {
		return cmp(key, keys[i]) <= 0
	})
}

// InsertAt inserts value at index in slice
func InsertAt[T any](slice []T, index int, value T) []T {
	var zero T
	slice = append(slice, zero)
	copy(slice[index+1:], slice[index:])
	slice[index] = value
	return slice
}

// RemoveAt removes element at index from slice
func RemoveAt[T any](slice []T, index int) []T {
	var zero T
	copy(slice[index:], slice[index+1:])
	slice[len(slice)-1] = zero
	return slice[:len(slice)-1]
}
