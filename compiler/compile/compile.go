package compile

import (
	"context"

	"github.com/nikandfor/hacked/hfmt"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/ptitsalang/ptitsa/compiler/ast"
	"github.com/ptitsalang/ptitsa/compiler/ir"
)

// Names the generated code uses from the runtime library.
const (
	ValueType = "BuiltinType::Object"
	TruthFunc = "Library::isTrue"
	Strings   = "std::string"
)

const prologue = `#include "Language/Object.h"
#include "Language/Core.h"

int main()
{
`

const epilogue = `	return 0;
}
`

type (
	gen struct {
		blocks []block

		head pending // header waiting for its body
	}

	pending int

	block struct {
		depth int
		cmd   bool
	}
)

const (
	_ pending = iota
	headCmd
	headCond
)

// Compile renders statements as a C++ program.
func Compile(ctx context.Context, stmts []ast.Statement) (obj []byte, err error) {
	tr, _ := tlog.SpawnFromContextAndWrap(ctx, "compile", "statements", len(stmts))
	defer tr.Finish("err", &err)

	var g gen

	obj = append(obj, prologue...)

	for _, s := range stmts {
		obj, err = g.stmt(obj, s)
		if err != nil {
			return nil, errors.Wrap(err, "line %d", s.Line)
		}
	}

	obj = g.flush(obj)

	for len(g.blocks) != 0 {
		obj = g.close(obj)
	}

	obj = append(obj, epilogue...)

	tr.Printw("generated", "size", len(obj))

	return obj, nil
}

func (g *gen) stmt(b []byte, s ast.Statement) (_ []byte, err error) {
	if s.Cat != ir.ScopeEnter {
		b = g.flush(b)
	}

	d := g.indent()

	switch s.Cat {
	case ir.ScopeEnter:
		b = app(b, d, "{\n")

		g.blocks = append(g.blocks, block{depth: s.Depth, cmd: g.head == headCmd})
		g.head = 0

		return b, nil
	case ir.ScopeExit:
		for len(g.blocks) != 0 && g.blocks[len(g.blocks)-1].depth > s.Depth {
			b = g.close(b)
		}

		return b, nil
	case ir.CommandDecl:
		return g.header(b, d, s.Tree)
	}

	if s.Tree == nil {
		return nil, errors.New("no tree for %v statement", s.Cat)
	}

	b = app(b, d, "")

	switch s.Cat {
	case ir.VarCreation:
		b = append(b, ValueType...)
		b = append(b, ' ')
		b = Expr(b, s.Tree, s.Tree.Root)
		b = append(b, ";\n"...)
	case ir.CondIf, ir.CondWhile:
		kw := "if"
		if s.Cat == ir.CondWhile {
			kw = "while"
		}

		b = hfmt.Appendf(b, "%s (%s(", kw, TruthFunc)
		b = Expr(b, s.Tree, s.Tree.Root)
		b = append(b, "))\n"...)

		g.head = headCond
	default:
		b = Expr(b, s.Tree, s.Tree.Root)
		b = append(b, ";\n"...)
	}

	return b, nil
}

// header renders a command declaration as a lambda.
func (g *gen) header(b []byte, d int, t *ast.Tree) ([]byte, error) {
	if t == nil {
		return nil, errors.New("no tree for command declaration")
	}

	f, ok := t.Token(t.Root).(ir.Func)
	if !ok {
		return nil, errors.New("command declaration of %v", t.Token(t.Root))
	}

	b = app(b, d, "auto ")
	b = ident(b, f.Name)
	b = append(b, " = [&]("...)

	for i, k := range t.Kids(t.Root) {
		if i != 0 {
			b = append(b, ", "...)
		}

		b = hfmt.Appendf(b, "%s ", ValueType)
		b = Expr(b, t, k)
	}

	b = append(b, ")\n"...)

	g.head = headCmd

	return b, nil
}

// flush gives an empty body to a header not followed by a block.
func (g *gen) flush(b []byte) []byte {
	h := g.head
	g.head = 0

	switch h {
	case headCmd:
		return app(b, g.indent(), "{};\n")
	case headCond:
		return app(b, g.indent(), "{}\n")
	}

	return b
}

func (g *gen) close(b []byte) []byte {
	top := g.blocks[len(g.blocks)-1]
	g.blocks = g.blocks[:len(g.blocks)-1]

	if top.cmd {
		return app(b, g.indent(), "};\n")
	}

	return app(b, g.indent(), "}\n")
}

func (g *gen) indent() int {
	return 1 + len(g.blocks)
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
