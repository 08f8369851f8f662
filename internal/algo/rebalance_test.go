package algo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alexhholmes/bptree/internal/base"
)

// family builds a parent with leaf or branch children holding the given keys.
// Branch children get len(keys)+1 leaf grandchildren.
func family(a *base.Arena, leaf bool, sep []string, kids ...[]string) (*base.Node, []*base.Node) {
	parent := a.Alloc(false)
	parent.Keys = sep
	var nodes []*base.Node
	for _, keys := range kids {
		n := a.Alloc(leaf)
		n.Parent = parent.ID
		n.Keys = append([]string(nil), keys...)
		if leaf {
			for _, k := range keys {
				n.Values = append(n.Values, []any{k})
			}
		} else {
			for i := 0; i <= len(keys); i++ {
				g := a.Alloc(true)
				g.Parent = n.ID
				n.Children = append(n.Children, g.ID)
			}
		}
		parent.Children = append(parent.Children, n.ID)
		nodes = append(nodes, n)
	}
	if leaf {
		for i := 1; i < len(nodes); i++ {
			nodes[i-1].Next = nodes[i].ID
			nodes[i].Prev = nodes[i-1].ID
		}
	}
	return parent, nodes
}

func TestBorrowFromLeftLeaf(t *testing.T) {
	t.Parallel()

	a := base.NewArena()
	parent, kids := family(a, true, []string{"d"}, []string{"a", "b", "c"}, []string{})
	BorrowFromLeft(a, kids[1], kids[0], parent, 0)

	assert.Equal(t, []string{"a", "b"}, kids[0].Keys)
	assert.Equal(t, []string{"c"}, kids[1].Keys)
	assert.Equal(t, [][]any{{"c"}}, kids[1].Values)
	assert.Equal(t, []string{"c"}, parent.Keys)
}

func TestBorrowFromRightLeaf(t *testing.T) {
	t.Parallel()

	a := base.NewArena()
	parent, kids := family(a, true, []string{"c"}, []string{}, []string{"c", "d", "e"})
	BorrowFromRight(a, kids[0], kids[1], parent, 0)

	assert.Equal(t, []string{"c"}, kids[0].Keys)
	assert.Equal(t, []string{"d", "e"}, kids[1].Keys)
	assert.Equal(t, []string{"d"}, parent.Keys)
}

func TestBorrowFromLeftBranch(t *testing.T) {
	t.Parallel()

	a := base.NewArena()
	parent, kids := family(a, false, []string{"m"}, []string{"b", "d", "f"}, []string{})
	moved := kids[0].Children[3]
	BorrowFromLeft(a, kids[1], kids[0], parent, 0)

	assert.Equal(t, []string{"b", "d"}, kids[0].Keys)
	assert.Len(t, kids[0].Children, 3)
	assert.Equal(t, []string{"m"}, kids[1].Keys)
	assert.Equal(t, []base.NodeID{moved, kids[1].Children[1]}, kids[1].Children)
	assert.Equal(t, kids[1].ID, a.Get(moved).Parent)
	assert.Equal(t, []string{"f"}, parent.Keys)
}

func TestBorrowFromRightBranch(t *testing.T) {
	t.Parallel()

	a := base.NewArena()
	parent, kids := family(a, false, []string{"m"}, []string{}, []string{"p", "r", "t"})
	moved := kids[1].Children[0]
	BorrowFromRight(a, kids[0], kids[1], parent, 0)

	assert.Equal(t, []string{"m"}, kids[0].Keys)
	assert.Len(t, kids[0].Children, 2)
	assert.Equal(t, moved, kids[0].Children[1])
	assert.Equal(t, kids[0].ID, a.Get(moved).Parent)
	assert.Equal(t, []string{"r", "t"}, kids[1].Keys)
	assert.Len(t, kids[1].Children, 3)
	assert.Equal(t, []string{"p"}, parent.Keys)
}

func TestMergeLeaf(t *testing.T) {
	t.Parallel()

	a := base.NewArena()
	parent, kids := family(a, true, []string{"c", "e"}, []string{"a"}, []string{"c"}, []string{"e", "f"})
	middle := kids[1].ID
	live := a.Live()

	Merge(a, kids[0], kids[1], parent, 0)

	assert.Equal(t, []string{"a", "c"}, kids[0].Keys)
	assert.Equal(t, [][]any{{"a"}, {"c"}}, kids[0].Values)
	assert.Equal(t, []string{"e"}, parent.Keys)
	assert.Equal(t, []base.NodeID{kids[0].ID, kids[2].ID}, parent.Children)
	assert.Equal(t, kids[2].ID, kids[0].Next)
	assert.Equal(t, kids[0].ID, kids[2].Prev)
	assert.Equal(t, live-1, a.Live())
	assert.Panics(t, func() { a.Get(middle) })
}

func TestMergeBranch(t *testing.T) {
	t.Parallel()

	a := base.NewArena()
	parent, kids := family(a, false, []string{"m"}, []string{"f"}, []string{"t"})
	rightChildren := append([]base.NodeID(nil), kids[1].Children...)

	Merge(a, kids[0], kids[1], parent, 0)

	assert.Equal(t, []string{"f", "m", "t"}, kids[0].Keys)
	assert.Len(t, kids[0].Children, 4)
	for _, id := range rightChildren {
		assert.Equal(t, kids[0].ID, a.Get(id).Parent)
	}
	assert.Empty(t, parent.Keys)
	assert.Equal(t, []base.NodeID{kids[0].ID}, parent.Children)
}
