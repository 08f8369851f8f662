package bptree

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/alexhholmes/bptree/internal/base"
)

// String renders the tree level by level followed by its entries, e.g.
//
//	BPlusTree{degree=4, len=5, height=2}
//	  0: [c]
//	  1: [a b] [c d e]
//	  a=[] b=[] c=[] d=[] e=[]
func (t *BPlusTree) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "BPlusTree{degree=%d, len=%d, height=%d}", t.degree, t.count, t.Height())

	level := -1
	t.walk(func(node *base.Node, depth int) {
		if depth != level {
			level = depth
			fmt.Fprintf(&b, "\n  %d:", depth)
		}
		fmt.Fprintf(&b, " [%s]", strings.Join(node.Keys, " "))
	})

	if t.count > 0 {
		b.WriteString("\n ")
		for key, values := range t.All() {
			fmt.Fprintf(&b, " %s=%v", key, values)
		}
	}
	return b.String()
}

// Checksum hashes the ordered contents of the tree with xxhash. Two trees
// holding the same keys and values, printed with %v, have the same checksum
// regardless of their shape.
//
// Each entry is framed as uvarint(len(key)) key uvarint(len(values)) followed
// by uvarint(len(v)) v for every printed value, so no key or value bytes can
// be mistaken for a boundary.
func (t *BPlusTree) Checksum() uint64 {
	d := xxhash.New()
	var buf []byte
	for key, values := range t.All() {
		buf = binary.AppendUvarint(buf[:0], uint64(len(key)))
		buf = append(buf, key...)
		buf = binary.AppendUvarint(buf, uint64(len(values)))
		for _, v := range values {
			printed := fmt.Sprint(v)
			buf = binary.AppendUvarint(buf, uint64(len(printed)))
			buf = append(buf, printed...)
		}
		_, _ = d.Write(buf)
	}
	return d.Sum64()
}
