package ast

import (
	"github.com/nikandfor/hacked/hfmt"
)

// AppendDump appends an indented dump of the tree, one node per line.
func (t *Tree) AppendDump(b []byte, depth int) []byte {
	if t == nil || len(t.Nodes) == 0 {
		return b
	}

	return t.dump(b, t.Root, depth)
}

func (t *Tree) dump(b []byte, id NodeID, d int) []byte {
	for i := 0; i < d; i++ {
		b = append(b, "   "...)
	}

	b = hfmt.Appendf(b, "%v\n", t.Token(id))

	for _, k := range t.Kids(id) {
		b = t.dump(b, k, d+1)
	}

	return b
}
