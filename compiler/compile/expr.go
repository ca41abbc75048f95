package compile

import (
	"github.com/ptitsalang/ptitsa/compiler/ast"
	"github.com/ptitsalang/ptitsa/compiler/ir"
)

// Expr appends the C++ expression of the subtree.
func Expr(b []byte, t *ast.Tree, id ast.NodeID) []byte {
	switch tk := t.Token(id).(type) {
	case ir.Literal:
		if tk.Kind == ir.Phrase {
			return phrase(b, tk.Value)
		}

		return append(b, tk.Value...)
	case ir.Var:
		return ident(b, tk.Name)
	case ir.Raw:
		return append(b, tk...)
	case ir.Func:
		return call(b, t, id, tk)
	}

	panic(t.Token(id))
}

func call(b []byte, t *ast.Tree, id ast.NodeID, f ir.Func) []byte {
	kids := t.Kids(id)

	switch f.Fixity {
	case ir.Prefix:
		if f.Template == f.Name {
			b = ident(b, f.Name)
		} else {
			b = append(b, f.Template...)
		}

		b = append(b, '(')

		for i, k := range kids {
			if i != 0 {
				b = append(b, ", "...)
			}

			b = Expr(b, t, k)
		}

		return append(b, ')')
	case ir.Infix:
		b = operand(b, t, kids[0], f)
		b = append(b, ' ')
		b = append(b, f.Template...)
		b = append(b, ' ')

		return operand(b, t, kids[1], f)
	case ir.Postfix:
		b = operand(b, t, kids[0], f)
		b = append(b, ' ')

		return append(b, f.Template...)
	}

	panic(f.Fixity)
}

// operand keeps tree shape in C++ by bracketing nested operators.
// The right side of an assignment needs none.
func operand(b []byte, t *ast.Tree, id ast.NodeID, parent ir.Func) []byte {
	f, ok := t.Token(id).(ir.Func)
	if !ok || f.Fixity == ir.Prefix || parent.Name == "=" {
		return Expr(b, t, id)
	}

	b = append(b, '(')
	b = Expr(b, t, id)

	return append(b, ')')
}

func phrase(b []byte, s string) []byte {
	b = append(b, Strings...)
	b = append(b, `("`...)

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\', '"':
			b = append(b, '\\', s[i])
		case '\t':
			b = append(b, `\t`...)
		default:
			b = append(b, s[i])
		}
	}

	return append(b, `")`...)
}
