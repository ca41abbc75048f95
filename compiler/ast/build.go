package ast

import (
	"github.com/ptitsalang/ptitsa/compiler/ir"
)

type (
	builder struct {
		toks []ir.Token
		ord  []int
		line int

		t *Tree
	}
)

// Build makes a tree from an ordered token line.
// ord is the evaluation order of each token, 0 for non functions.
// The function evaluated last becomes the root.
func Build(toks []ir.Token, ord []int, line int) (*Tree, error) {
	if len(ord) != len(toks) {
		panic("order table doesn't match the line")
	}

	b := builder{
		toks: toks,
		ord:  ord,
		line: line,
		t:    &Tree{},
	}

	root, err := b.build(0, len(toks))
	if err != nil {
		return nil, err
	}

	b.t.Root = root

	return b.t, nil
}

func (b *builder) build(st, end int) (NodeID, error) {
	m := -1

	for i := st; i < end; i++ {
		if _, ok := b.toks[i].(ir.Func); !ok {
			continue
		}

		if m == -1 || b.ord[i] > b.ord[m] {
			m = i
		}
	}

	if m == -1 {
		return b.leaf(st, end)
	}

	f := b.toks[m].(ir.Func)

	switch f.Fixity {
	case ir.Prefix:
		return b.prefix(f, m, st, end)
	case ir.Infix:
		if !hasValue(b.toks[st:m]) || !hasValue(b.toks[m+1:end]) {
			return 0, MalformedError{Line: b.line, Msg: "missing operand of " + f.Name}
		}

		l, err := b.build(st, m)
		if err != nil {
			return 0, err
		}

		r, err := b.build(m+1, end)
		if err != nil {
			return 0, err
		}

		return b.t.add(f, l, r), nil
	case ir.Postfix:
		if !hasValue(b.toks[st:m]) {
			return 0, MalformedError{Line: b.line, Msg: "missing operand of " + f.Name}
		}

		x, err := b.build(st, m)
		if err != nil {
			return 0, err
		}

		return b.t.add(f, x), nil
	}

	panic(f.Fixity)
}

func (b *builder) leaf(st, end int) (NodeID, error) {
	for _, t := range b.toks[st:end] {
		if ir.IsValue(t) {
			return b.t.add(t), nil
		}
	}

	return 0, MalformedError{Line: b.line, Msg: "empty expression"}
}

// prefix builds a call. Its arguments are the bracket region
// the call was wrapped into, split by top level separators.
func (b *builder) prefix(f ir.Func, m, st, end int) (NodeID, error) {
	rst, rend := m+1, end

	if m > st && ir.IsSymbol(b.toks[m-1], ir.Open) {
		if c := b.match(m-1, end); c >= 0 {
			rend = c
		}
	}

	if rst < rend && ir.IsSymbol(b.toks[rst], ir.Open) && b.match(rst, rend) == rend-1 {
		rst++
		rend--
	}

	var kids []NodeID

	for _, a := range b.split(rst, rend) {
		if !hasValue(b.toks[a[0]:a[1]]) {
			continue
		}

		k, err := b.build(a[0], a[1])
		if err != nil {
			return 0, err
		}

		kids = append(kids, k)
	}

	if f.Args != ir.Variadic && len(kids) != f.Args {
		return 0, ArityError{Line: b.line, Name: f.Name, Want: f.Args, Got: len(kids)}
	}

	return b.t.add(f, kids...), nil
}

// match returns the close bracket index pairing open, or -1.
func (b *builder) match(open, end int) int {
	pol := 0

	for i := open; i < end; i++ {
		switch {
		case ir.IsSymbol(b.toks[i], ir.Open):
			pol++
		case ir.IsSymbol(b.toks[i], ir.Close):
			pol--
		}

		if pol == 0 {
			return i
		}
	}

	return -1
}

func (b *builder) split(st, end int) (r [][2]int) {
	pol := 0
	last := st

	for i := st; i < end; i++ {
		switch t := b.toks[i]; {
		case ir.IsSymbol(t, ir.Open):
			pol++
		case ir.IsSymbol(t, ir.Close):
			pol--
		case ir.IsSymbol(t, ir.Sep) && pol == 0:
			r = append(r, [2]int{last, i})
			last = i + 1
		}
	}

	return append(r, [2]int{last, end})
}

func hasValue(toks []ir.Token) bool {
	for _, t := range toks {
		if ir.IsValue(t) {
			return true
		}
	}

	return false
}
