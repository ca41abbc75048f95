package order

import (
	"context"

	"nikand.dev/go/heap"
	"tlog.app/go/loc"
	"tlog.app/go/tlog"

	"github.com/ptitsalang/ptitsa/compiler/grammar"
	"github.com/ptitsalang/ptitsa/compiler/ir"
	"github.com/ptitsalang/ptitsa/compiler/set"
)

type (
	orderer struct {
		toks []ir.Token
		ord  []int
		pol  []int // bracket nesting after the token

		done set.Bitmap // processed brackets
		next int
	}

	// opens is a queue of open brackets, innermost first.
	opens struct {
		heap.Heap[int]
	}
)

// Assign returns the evaluation order of every function in the line,
// indexed as toks. Non functions get 0.
// Orders are 1..n with the function evaluated last highest.
func Assign(ctx context.Context, toks []ir.Token) []int {
	o := &orderer{
		toks: toks,
		ord:  make([]int, len(toks)),
		pol:  make([]int, len(toks)),
		done: set.MakeBitmap(len(toks)),
	}

	pol := 0

	for i, t := range toks {
		switch {
		case ir.IsSymbol(t, ir.Open):
			pol++
		case ir.IsSymbol(t, ir.Close):
			pol--
		}

		o.pol[i] = pol
	}

	o.assign(0, len(toks))

	tlog.SpanFromContext(ctx).V("order").Printw("order", "ord", o.ord, "brackets", o.done, "visited", o.done.Size())

	return o.ord
}

func (o *orderer) assign(st, end int) {
	q := opens{Heap: heap.Heap[int]{Less: o.innermost}}

	for i := st; i < end; i++ {
		if ir.IsSymbol(o.toks[i], ir.Open) && !o.done.IsSet(i) {
			q.Push(i)
		}
	}

	for q.Len() != 0 {
		open := q.Pop()

		if o.done.IsSet(open) {
			continue
		}

		o.done.Set(open)

		c := o.match(open, end)
		if c < 0 {
			continue
		}

		o.assign(open+1, c)

		o.done.Set(c)
	}

	for tier := 0; tier < grammar.NumTiers; tier++ {
		for i := st; i < end; i++ {
			f, ok := o.toks[i].(ir.Func)
			if !ok || f.Tier != tier || o.ord[i] != 0 {
				continue
			}

			o.next++
			o.ord[i] = o.next
		}
	}
}

// innermost puts deeper brackets first, leftmost among equals.
func (o *orderer) innermost(d []int, i, j int) bool {
	a, b := d[i], d[j]

	if o.pol[a] != o.pol[b] {
		return o.pol[a] > o.pol[b]
	}

	return a < b
}

func (o *orderer) match(open, end int) int {
	pol := 0

	for i := open; i < end; i++ {
		switch {
		case ir.IsSymbol(o.toks[i], ir.Open):
			pol++
		case ir.IsSymbol(o.toks[i], ir.Close):
			pol--
		}

		if pol == 0 {
			return i
		}
	}

	return -1
}

func (q *opens) Push(i int) {
	tlog.V("order_push").Printw("bracket pushed", "i", i, "from", loc.Caller(1))

	q.Heap.Push(i)
}
