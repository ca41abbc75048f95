package front

import (
	"github.com/ptitsalang/ptitsa/compiler/ast"
	"github.com/ptitsalang/ptitsa/compiler/ir"
)

var keywordCats = map[ir.Keyword]ir.Category{
	ir.If:      ir.CondIf,
	ir.While:   ir.CondWhile,
	ir.ForEach: ir.LoopForEach,
}

// Classify refines the statement category once its tree is built.
// A leading keyword is consumed.
func Classify(l *ir.Line, t *ast.Tree) ir.Category {
	if len(l.Tokens) != 0 {
		if k, ok := l.Tokens[0].(ir.Keyword); ok {
			l.Erase(0)
			l.Cat = keywordCats[k]

			return l.Cat
		}
	}

	if l.Cat != ir.Unknown {
		return l.Cat
	}

	if t != nil && len(t.Nodes) != 0 {
		if _, ok := t.Token(t.Root).(ir.Func); ok {
			l.Cat = ir.VoidCall
		}
	}

	return l.Cat
}
