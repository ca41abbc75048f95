package ast

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tlog.app/go/errors"

	"github.com/ptitsalang/ptitsa/compiler/analyze"
	"github.com/ptitsalang/ptitsa/compiler/grammar"
	"github.com/ptitsalang/ptitsa/compiler/ir"
	"github.com/ptitsalang/ptitsa/compiler/order"
	"github.com/ptitsalang/ptitsa/compiler/parse"
)

// build parses text and builds the tree of its last line.
func build(t *testing.T, text string) (*Tree, error) {
	t.Helper()

	ctx := context.Background()

	tab, err := grammar.New()
	require.NoError(t, err)

	doc, err := parse.New(tab, analyze.New()).Parse(ctx, "test", []byte(text))
	require.NoError(t, err)

	l := doc.Lines[len(doc.Lines)-1]
	toks := l.Tokens[l.Lead():]

	return Build(toks, order.Assign(ctx, toks), l.Num)
}

// sexp renders a tree as (op kid kid) for compact comparison.
func sexp(t *Tree, id NodeID) string {
	var s string

	switch tk := t.Token(id).(type) {
	case ir.Func:
		s = tk.Name
	case ir.Var:
		s = tk.Name
	case ir.Literal:
		s = tk.Value
	default:
		s = "?"
	}

	if len(t.Kids(id)) == 0 {
		return s
	}

	s = "(" + s

	for _, k := range t.Kids(id) {
		s += " " + sexp(t, k)
	}

	return s + ")"
}

func TestBuildAssignment(t *testing.T) {
	tr, err := build(t, "x = 3")
	require.NoError(t, err)

	root := tr.Token(tr.Root)
	f, ok := root.(ir.Func)
	require.True(t, ok)
	assert.Equal(t, "=", f.Name)

	kids := tr.Kids(tr.Root)
	require.Len(t, kids, 2)
	assert.Equal(t, ir.Var{Name: "x", Line: 1, Depth: 0}, tr.Token(kids[0]))
	assert.Equal(t, ir.Literal{Kind: ir.Number, Value: "3.0"}, tr.Token(kids[1]))
}

func TestBuildPrecedence(t *testing.T) {
	for _, tc := range []struct {
		text string
		exp  string
	}{
		{"y = 2 + 3 * 4", "(= y (+ 2.0 (* 3.0 4.0)))"},
		{"y = (2 + 3) * 4", "(= y (* (+ 2.0 3.0) 4.0))"},
		{"y = 1 - 2 - 3", "(= y (- (- 1.0 2.0) 3.0))"},
		{"y = 2 ^ 3 * 4 + 1", "(= y (+ (* (^ 2.0 3.0) 4.0) 1.0))"},
		{"y = true and false or not true", "(= y (or (and true false) (not true)))"},
		{"y = 1 is 2 and 3 isnt 4", "(= y (and (is 1.0 2.0) (isnt 3.0 4.0)))"},
		{"show 1, 2 + 3, \"a\"", "(show 1.0 (+ 2.0 3.0) a)"},
		{"show(1, (2), exp(3))", "(show 1.0 2.0 (exp 3.0))"},
		{"show 4, (1 + 2) * 3", "(show 4.0 (* (+ 1.0 2.0) 3.0))"},
		{"show (1 + 2) * 3", "(show (* (+ 1.0 2.0) 3.0))"},
		{"show (1 + 2), 3", "(show (+ 1.0 2.0) 3.0)"},
		{"y = (exp(2)) * 3", "(= y (* (exp 2.0) 3.0))"},
		{"y = exp 2 + 1", "(= y (exp (+ 2.0 1.0)))"},
		{"y = (exp 2) + 1", "(= y (+ (exp 2.0) 1.0))"},
		{"show", "show"},
		{"show()", "show"},
		{"y = 5", "(= y 5.0)"},
		{"(((7)))", "7.0"},
	} {
		tr, err := build(t, tc.text)
		if !assert.NoError(t, err, tc.text) {
			continue
		}

		assert.Equal(t, tc.exp, sexp(tr, tr.Root), tc.text)
	}
}

func TestBuildDeclaredCommand(t *testing.T) {
	tr, err := build(t, "double : n\n\tshow n * 2\nshow double(5) + 1")
	require.NoError(t, err)

	assert.Equal(t, "(show (double (+ 5.0 1.0)))", sexp(tr, tr.Root))

	tr, err = build(t, "double : n\n\tshow n * 2\nx = double(5) + 1")
	require.NoError(t, err)

	assert.Equal(t, "(= x (double (+ 5.0 1.0)))", sexp(tr, tr.Root))

	tr, err = build(t, "pair : a, b\n\tshow a, b\npair 1, 2")
	require.NoError(t, err)

	assert.Equal(t, "(pair 1.0 2.0)", sexp(tr, tr.Root))
}

func TestBuildArity(t *testing.T) {
	_, err := build(t, "exp 1, 2")

	var e ArityError
	require.True(t, errors.As(err, &e), "%v", err)
	assert.Equal(t, "exp", e.Name)
	assert.Equal(t, 1, e.Want)
	assert.Equal(t, 2, e.Got)
	assert.Equal(t, 1, e.SourceLine())

	_, err = build(t, "x = 1\nx = exp()")
	require.True(t, errors.As(err, &e), "%v", err)
	assert.Equal(t, 2, e.Line)
}

func TestBuildMalformed(t *testing.T) {
	for _, text := range []string{
		"x = ",
		"x = 1 +",
		"x = * 2",
		"x = ()",
	} {
		_, err := build(t, "x = 0\n"+text)

		var e MalformedError
		if assert.True(t, errors.As(err, &e), "%q: %v", text, err) {
			assert.Equal(t, 2, e.Line)
		}
	}
}

func TestDump(t *testing.T) {
	tr, err := build(t, "x = 1 + 2")
	require.NoError(t, err)

	b := tr.AppendDump(nil, 0)

	assert.Equal(t, "<(fn) (inf) (2) =>\n"+
		"   <(var) x d:0 r:1>\n"+
		"   <(fn) (inf) (2) +>\n"+
		"      <(lit) (#) 1.0>\n"+
		"      <(lit) (#) 2.0>\n", string(b))
}
