package bptree

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScan(t *testing.T) {
	t.Parallel()

	tree := setup(t, 4)
	for i := 0; i < 40; i += 2 {
		tree.Insert(fmt.Sprintf("%02d", i), i)
	}

	tests := []struct {
		name     string
		from, to string
		want     []string
	}{
		{"exact_bounds", "04", "10", []string{"04", "06", "08", "10"}},
		{"bounds_between_keys", "03", "11", []string{"04", "06", "08", "10"}},
		{"single_key", "12", "12", []string{"12"}},
		{"missing_single", "13", "13", nil},
		{"before_all", "", "03", []string{"00", "02"}},
		{"after_all", "39", "99", nil},
		{"whole_tree", "", "zz", nil},
		{"reversed", "10", "04", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := keysOf(tree.Scan(tt.from, tt.to))
			if tt.name == "whole_tree" {
				assert.Equal(t, keysOf(tree.ToOrderedList()), got)
				return
			}
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScanValues(t *testing.T) {
	t.Parallel()

	tree := setup(t, 3)
	tree.Insert("a", 1)
	tree.Insert("b", 2, 3)
	tree.Insert("c")

	got := tree.Scan("a", "c")
	assert.Equal(t, []KeyValue{
		{Key: "a", Values: []any{1}},
		{Key: "b", Values: []any{2, 3}},
		{Key: "c", Values: []any{}},
	}, got)

	// Scan results do not alias tree storage
	got[0].Values[0] = 100
	kv, _ := tree.Search("a")
	assert.Equal(t, []any{1}, kv.Values)
}

func TestToOrderedList(t *testing.T) {
	t.Parallel()

	tree := setup(t, 5)
	keys := []string{"m", "c", "x", "a", "q", "e", "z", "b", "k", "t", "d"}
	for _, k := range keys {
		tree.Insert(k)
	}
	tree.Insert("m", "dup")

	got := keysOf(tree.ToOrderedList())
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "k", "m", "q", "t", "x", "z"}, got)
	assert.Len(t, got, tree.Len())
}

func TestAllAndRangeEarlyExit(t *testing.T) {
	t.Parallel()

	tree := setup(t, 3)
	for i := 0; i < 30; i++ {
		tree.Insert(fmt.Sprintf("%02d", i))
	}

	var seen []string
	for k := range tree.All() {
		seen = append(seen, k)
		if len(seen) == 5 {
			break
		}
	}
	assert.Equal(t, []string{"00", "01", "02", "03", "04"}, seen)

	seen = seen[:0]
	for k := range tree.Range("10", "29") {
		if k == "13" {
			break
		}
		seen = append(seen, k)
	}
	assert.Equal(t, []string{"10", "11", "12"}, seen)

	for range setup(t, 3).Range("a", "b") {
		t.Fatal("empty tree yields nothing")
	}
}
