package compiler

import (
	"context"
	"os"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/ptitsalang/ptitsa/compiler/analyze"
	"github.com/ptitsalang/ptitsa/compiler/ast"
	"github.com/ptitsalang/ptitsa/compiler/compile"
	"github.com/ptitsalang/ptitsa/compiler/format"
	"github.com/ptitsalang/ptitsa/compiler/front"
	"github.com/ptitsalang/ptitsa/compiler/grammar"
	"github.com/ptitsalang/ptitsa/compiler/ir"
	"github.com/ptitsalang/ptitsa/compiler/order"
	"github.com/ptitsalang/ptitsa/compiler/parse"
)

type (
	// State is one compilation run.
	// Commands and bindings are registered here and dropped with it.
	State struct {
		Table    *grammar.Table
		Resolver *analyze.Resolver
	}
)

func New() (*State, error) {
	tab, err := grammar.New()
	if err != nil {
		return nil, errors.Wrap(err, "grammar")
	}

	return &State{
		Table:    tab,
		Resolver: analyze.New(),
	}, nil
}

func CompileFile(ctx context.Context, name string) (obj []byte, err error) {
	text, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}

	tlog.SpanFromContext(ctx).Printw("read file", "size", len(text), "name", name)

	return Compile(ctx, name, text)
}

func Compile(ctx context.Context, name string, text []byte) (obj []byte, err error) {
	st, err := New()
	if err != nil {
		return nil, err
	}

	stmts, err := st.Front(ctx, name, text)
	if err != nil {
		return nil, err
	}

	obj, err = compile.Compile(ctx, stmts)
	if err != nil {
		return nil, errors.Wrap(err, "compile")
	}

	return obj, nil
}

// Format parses text and renders it back as canonical source.
func Format(ctx context.Context, name string, text []byte) ([]byte, error) {
	st, err := New()
	if err != nil {
		return nil, err
	}

	stmts, err := st.Front(ctx, name, text)
	if err != nil {
		return nil, err
	}

	return format.Format(ctx, nil, stmts)
}

// Tokens returns classified lines before scopes are made explicit.
func (s *State) Tokens(ctx context.Context, name string, text []byte) (*ir.Document, error) {
	doc, err := parse.New(s.Table, s.Resolver).Parse(ctx, name, text)
	if err != nil {
		return nil, errors.Wrap(err, "parse")
	}

	return doc, nil
}

// Front turns text into classified statement trees.
// Each stage finishes on the whole document before the next one starts.
func (s *State) Front(ctx context.Context, name string, text []byte) (stmts []ast.Statement, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "front", "name", name)
	defer tr.Finish("err", &err)

	doc, err := s.Tokens(ctx, name, text)
	if err != nil {
		return nil, err
	}

	front.Structure(ctx, doc)

	ords := make([][]int, len(doc.Lines))

	for i, l := range doc.Lines {
		if marker(l) {
			continue
		}

		ords[i] = order.Assign(ctx, l.Tokens)
	}

	trees := make([]*ast.Tree, len(doc.Lines))

	for i, l := range doc.Lines {
		if marker(l) {
			continue
		}

		trees[i], err = ast.Build(l.Tokens, ords[i], l.Num)
		if err != nil {
			return nil, errors.Wrap(err, "build")
		}
	}

	stmts = make([]ast.Statement, len(doc.Lines))

	for i := range doc.Lines {
		l := &doc.Lines[i]

		stmts[i] = ast.Statement{
			Cat:   front.Classify(l, trees[i]),
			Tree:  trees[i],
			Line:  l.Num,
			Depth: l.Depth,
		}
	}

	if tr.If("trees") {
		for _, st := range stmts {
			tr.Printw("statement", "line", st.Line, "cat", st.Cat.String(), "tree", string(st.Tree.AppendDump(nil, 0)))
		}
	}

	tr.Printw("front", "statements", len(stmts))

	return stmts, nil
}

// LineOf returns the source line an error was found at.
func LineOf(err error) (int, bool) {
	var sl interface {
		SourceLine() int
	}

	if !errors.As(err, &sl) {
		return 0, false
	}

	return sl.SourceLine(), true
}

func marker(l ir.Line) bool {
	return l.Cat == ir.ScopeEnter || l.Cat == ir.ScopeExit
}
