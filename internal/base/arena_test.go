package base

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArenaAllocGet(t *testing.T) {
	t.Parallel()

	a := NewArena()
	leaf := a.Alloc(true)
	branch := a.Alloc(false)

	assert.NotEqual(t, Nil, leaf.ID)
	assert.NotEqual(t, leaf.ID, branch.ID)
	assert.True(t, a.Get(leaf.ID).IsLeaf())
	assert.False(t, a.Get(branch.ID).IsLeaf())
	assert.Same(t, leaf, a.Get(leaf.ID))
	assert.Equal(t, 2, a.Live())
}

func TestArenaFreeReuse(t *testing.T) {
	t.Parallel()

	a := NewArena()
	n := a.Alloc(true)
	n.Keys = append(n.Keys, "k")
	n.Values = append(n.Values, []any{"v"})
	id := n.ID

	a.Free(id)
	assert.Equal(t, 0, a.Live())
	assert.PanicsWithError(t, "node has been freed: 1", func() { a.Get(id) })

	// Double free is ignored
	a.Free(id)
	assert.Equal(t, 0, a.Live())

	reused := a.Alloc(false)
	assert.Equal(t, id, reused.ID, "freed handle should be recycled")
	assert.False(t, reused.IsLeaf())
	assert.Empty(t, reused.Keys)
	assert.Empty(t, reused.Values)
	assert.Equal(t, 1, a.Live())
}

func TestArenaInvalidHandle(t *testing.T) {
	t.Parallel()

	a := NewArena()
	assert.Panics(t, func() { a.Get(Nil) })
	assert.Panics(t, func() { a.Get(42) })

	assertPanicsWith(t, ErrInvalidNodeID, func() { a.Free(Nil) })
	assertPanicsWith(t, ErrInvalidNodeID, func() { a.Free(42) })
	assert.Equal(t, 0, a.Live())
}

func TestArenaDoubleFree(t *testing.T) {
	t.Parallel()

	a := NewArena()
	n := a.Alloc(true)
	other := a.Alloc(true)
	a.Free(n.ID)

	assertPanicsWith(t, ErrNodeFreed, func() { a.Free(n.ID) })
	assertPanicsWith(t, ErrNodeFreed, func() { a.Get(n.ID) })

	// The failed free left a single reusable handle behind
	assert.Equal(t, 1, a.Live())
	assert.Equal(t, n.ID, a.Alloc(false).ID)
	assert.NotEqual(t, other.ID, a.Alloc(false).ID)
}

func assertPanicsWith(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		assert.ErrorIs(t, err, target)
	}()
	fn()
}

func TestArenaReset(t *testing.T) {
	t.Parallel()

	a := NewArena()
	for i := 0; i < 10; i++ {
		a.Alloc(i%2 == 0)
	}
	a.Free(3)
	require.Equal(t, 9, a.Live())

	a.Reset()
	assert.Equal(t, 0, a.Live())

	n := a.Alloc(true)
	assert.Equal(t, NodeID(1), n.ID)
}
