package front

import (
	"context"

	"tlog.app/go/tlog"

	"github.com/ptitsalang/ptitsa/compiler/ir"
)

// Structure makes blocks explicit.
// A ScopeEnter or ScopeExit line is put at every depth change
// and depth markers are stripped from statement lines.
// Marker lines carry the depth they move to.
func Structure(ctx context.Context, doc *ir.Document) {
	tr := tlog.SpanFromContext(ctx)

	if len(doc.Lines) == 0 {
		return
	}

	first := doc.Lines[0].Depth
	prev := first
	enter, exit := 0, 0

	for i := 0; i < len(doc.Lines); i++ {
		l := &doc.Lines[i]
		l.Tokens = l.Tokens[l.Lead():]

		d, num := l.Depth, l.Num

		switch {
		case d > prev:
			doc.Insert(i, marker(ir.ScopeEnter, d, num))
			enter++
			i++
		case d < prev:
			doc.Insert(i, marker(ir.ScopeExit, d, num))
			exit++
			i++
		}

		prev = d
	}

	if prev > first {
		doc.Insert(len(doc.Lines), marker(ir.ScopeExit, first, doc.Lines[len(doc.Lines)-1].Num))
		exit++
	}

	tr.V("structure").Printw("scopes", "enter", enter, "exit", exit, "lines", len(doc.Lines))
}

func marker(c ir.Category, depth, num int) ir.Line {
	return ir.Line{
		Cat:   c,
		Depth: depth,
		Num:   num,
	}
}
