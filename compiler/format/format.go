package format

import (
	"context"

	"github.com/nikandfor/hacked/hfmt"
	"tlog.app/go/errors"

	"github.com/ptitsalang/ptitsa/compiler/ast"
	"github.com/ptitsalang/ptitsa/compiler/ir"
)

// Format renders statements back as canonical source.
// Nested operators are bracketed and calls use explicit brackets,
// so the output parses into the same trees.
func Format(ctx context.Context, b []byte, stmts []ast.Statement) (_ []byte, err error) {
	for _, s := range stmts {
		b, err = formatStmt(ctx, b, s)
		if err != nil {
			return nil, errors.Wrap(err, "line %d", s.Line)
		}
	}

	return b, nil
}

func formatStmt(ctx context.Context, b []byte, s ast.Statement) (_ []byte, err error) {
	switch s.Cat {
	case ir.ScopeEnter, ir.ScopeExit:
		return b, nil
	}

	if s.Tree == nil {
		return nil, errors.New("no tree for %v statement", s.Cat)
	}

	t := s.Tree

	switch s.Cat {
	case ir.CommandDecl:
		f, ok := t.Token(t.Root).(ir.Func)
		if !ok {
			return nil, errors.New("unexpected declaration root: %v", t.Token(t.Root))
		}

		b = app(b, s.Depth, "%s :", f.Name)

		for i, k := range t.Kids(t.Root) {
			if i != 0 {
				b = append(b, ',')
			}

			b = append(b, ' ')

			b, err = formatExpr(ctx, b, t, k)
			if err != nil {
				return nil, errors.Wrap(err, "arg %d", i)
			}
		}

		b = append(b, '\n')

		return b, nil
	case ir.CondIf:
		b = app(b, s.Depth, "if ")
	case ir.CondWhile:
		b = app(b, s.Depth, "while ")
	case ir.LoopForEach:
		b = app(b, s.Depth, "foreach ")
	default:
		b = app(b, s.Depth, "")
	}

	b, err = formatExpr(ctx, b, t, t.Root)
	if err != nil {
		return nil, errors.Wrap(err, "expr")
	}

	b = append(b, '\n')

	return b, nil
}

func formatExpr(ctx context.Context, b []byte, t *ast.Tree, id ast.NodeID) (_ []byte, err error) {
	switch x := t.Token(id).(type) {
	case ir.Literal:
		if x.Kind == ir.Phrase {
			b = append(b, '"')
			b = append(b, x.Value...)
			b = append(b, '"')
		} else {
			b = append(b, x.Value...)
		}
	case ir.Var:
		b = append(b, x.Name...)
	case ir.Func:
		return formatCall(ctx, b, t, id, x)
	default:
		return nil, errors.New("unsupported token: %v", x)
	}

	return b, nil
}

func formatCall(ctx context.Context, b []byte, t *ast.Tree, id ast.NodeID, f ir.Func) (_ []byte, err error) {
	kids := t.Kids(id)

	switch f.Fixity {
	case ir.Prefix:
		b = append(b, f.Name...)
		b = append(b, '(')

		for i, k := range kids {
			if i != 0 {
				b = append(b, ", "...)
			}

			b, err = formatExpr(ctx, b, t, k)
			if err != nil {
				return nil, errors.Wrap(err, "%v arg %d", f.Name, i)
			}
		}

		b = append(b, ')')
	case ir.Infix:
		if len(kids) != 2 {
			return nil, errors.New("%v: expected 2 operands, got %d", f.Name, len(kids))
		}

		b, err = formatOperand(ctx, b, t, kids[0], f)
		if err != nil {
			return nil, errors.Wrap(err, "left")
		}

		b = hfmt.Appendf(b, " %s ", f.Name)

		b, err = formatOperand(ctx, b, t, kids[1], f)
		if err != nil {
			return nil, errors.Wrap(err, "right")
		}
	case ir.Postfix:
		if len(kids) != 1 {
			return nil, errors.New("%v: expected 1 operand, got %d", f.Name, len(kids))
		}

		b, err = formatOperand(ctx, b, t, kids[0], f)
		if err != nil {
			return nil, errors.Wrap(err, "operand")
		}

		b = hfmt.Appendf(b, " %s", f.Name)
	}

	return b, nil
}

func formatOperand(ctx context.Context, b []byte, t *ast.Tree, id ast.NodeID, parent ir.Func) (_ []byte, err error) {
	// an unbracketed call would take the rest of the line as its arguments
	if _, ok := t.Token(id).(ir.Func); !ok || parent.Name == "=" {
		return formatExpr(ctx, b, t, id)
	}

	b = append(b, '(')

	b, err = formatExpr(ctx, b, t, id)
	if err != nil {
		return nil, err
	}

	b = append(b, ')')

	return b, nil
}

func app(b []byte, d int, f string, args ...any) []byte {
	const tabs = "\t\t\t\t\t\t\t\t\t\t\t\t\t\t\t\t"

	for d > len(tabs) {
		b = append(b, tabs...)
		d -= len(tabs)
	}

	b = append(b, tabs[:d]...)
	b = hfmt.Appendf(b, f, args...)

	return b
}
