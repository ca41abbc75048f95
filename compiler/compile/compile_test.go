package compile

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ptitsalang/ptitsa/compiler/ast"
	"github.com/ptitsalang/ptitsa/compiler/ir"
)

var (
	add    = ir.Func{Name: "+", Template: "+", Args: 2, Fixity: ir.Infix}
	mul    = ir.Func{Name: "*", Template: "*", Args: 2, Fixity: ir.Infix}
	assign = ir.Func{Name: "=", Template: "=", Args: 2, Fixity: ir.Infix}
	show   = ir.Func{Name: "show", Template: "Library::show", Args: ir.Variadic, Fixity: ir.Prefix}
	fact   = ir.Func{Name: "!", Template: "!", Args: 1, Fixity: ir.Postfix}
)

func num(v string) ir.Literal { return ir.Literal{Kind: ir.Number, Value: v} }

// tree builds a tree from nodes listed kids first, root last.
func tree(nodes ...ast.Node) *ast.Tree {
	return &ast.Tree{Nodes: nodes, Root: ast.NodeID(len(nodes) - 1)}
}

func TestExpr(t *testing.T) {
	// (2 + 3) * 4
	tr := tree(
		ast.Node{Tok: num("2.0")},
		ast.Node{Tok: num("3.0")},
		ast.Node{Tok: add, Kids: []ast.NodeID{0, 1}},
		ast.Node{Tok: num("4.0")},
		ast.Node{Tok: mul, Kids: []ast.NodeID{2, 3}},
	)

	assert.Equal(t, "(2.0 + 3.0) * 4.0", string(Expr(nil, tr, tr.Root)))

	// show("a \"b\"", x !)
	tr = tree(
		ast.Node{Tok: ir.Literal{Kind: ir.Phrase, Value: `a "b" \`}},
		ast.Node{Tok: ir.Var{Name: "x"}},
		ast.Node{Tok: fact, Kids: []ast.NodeID{1}},
		ast.Node{Tok: show, Kids: []ast.NodeID{0, 2}},
	)

	assert.Equal(t, `Library::show(std::string("a \"b\" \\"), x !)`, string(Expr(nil, tr, tr.Root)))

	tr = tree(ast.Node{Tok: show})

	assert.Equal(t, "Library::show()", string(Expr(nil, tr, tr.Root)))
}

func TestStatements(t *testing.T) {
	x := ir.Var{Name: "x", Line: 1}

	set := tree(
		ast.Node{Tok: x},
		ast.Node{Tok: num("1.0")},
		ast.Node{Tok: assign, Kids: []ast.NodeID{0, 1}},
	)

	cond := tree(ast.Node{Tok: ir.Literal{Kind: ir.Bool, Value: "true"}})
	call := tree(ast.Node{Tok: x}, ast.Node{Tok: show, Kids: []ast.NodeID{0}})

	obj, err := Compile(context.Background(), []ast.Statement{
		{Cat: ir.VarCreation, Tree: set, Line: 1},
		{Cat: ir.CondWhile, Tree: cond, Line: 2},
		{Cat: ir.ScopeEnter, Line: 3, Depth: 1},
		{Cat: ir.CondIf, Tree: cond, Line: 3, Depth: 1},
		{Cat: ir.ScopeEnter, Line: 4, Depth: 2},
		{Cat: ir.VarRedefinition, Tree: set, Line: 4, Depth: 2},
		{Cat: ir.LoopForEach, Tree: call, Line: 5, Depth: 2},
	})
	require.NoError(t, err)

	body := strings.TrimSuffix(strings.TrimPrefix(string(obj), prologue), epilogue)

	assert.Equal(t, `	BuiltinType::Object x = 1.0;
	while (Library::isTrue(true))
	{
		if (Library::isTrue(true))
		{
			x = 1.0;
			Library::show(x);
		}
	}
`, body)
}

func TestCommandBody(t *testing.T) {
	n := ir.Var{Name: "n", Line: 1, Depth: 1}
	m := ir.Var{Name: "m", Line: 1, Depth: 1}
	twice := ir.Func{Name: "twice", Template: "twice", Args: 2, Fixity: ir.Prefix}

	decl := tree(ast.Node{Tok: n}, ast.Node{Tok: m}, ast.Node{Tok: twice, Kids: []ast.NodeID{0, 1}})
	call := tree(ast.Node{Tok: n}, ast.Node{Tok: show, Kids: []ast.NodeID{0}})

	obj, err := Compile(context.Background(), []ast.Statement{
		{Cat: ir.CommandDecl, Tree: decl, Line: 1},
		{Cat: ir.ScopeEnter, Line: 2, Depth: 1},
		{Cat: ir.VoidCall, Tree: call, Line: 2, Depth: 1},
		{Cat: ir.ScopeExit, Line: 3, Depth: 0},
	})
	require.NoError(t, err)

	body := strings.TrimSuffix(strings.TrimPrefix(string(obj), prologue), epilogue)

	assert.Equal(t, `	auto twice = [&](BuiltinType::Object n, BuiltinType::Object m)
	{
		Library::show(n);
	};
`, body)
}

func TestMissingTree(t *testing.T) {
	_, err := Compile(context.Background(), []ast.Statement{{Cat: ir.VoidCall, Line: 7}})
	assert.Error(t, err)
}

func TestIdent(t *testing.T) {
	for _, tc := range []struct {
		in, out string
	}{
		{"x", "x"},
		{"double", "double_"},
		{"main", "main_"},
		{"Library", "Library_"},
		{"int_", "int__"},
		{"count", "count"},
	} {
		assert.Equal(t, tc.out, string(ident(nil, tc.in)), tc.in)
	}

	class := ir.Func{Name: "class", Template: "class", Args: 1, Fixity: ir.Prefix}
	arg := ir.Var{Name: "new", Line: 1, Depth: 1}

	decl := tree(ast.Node{Tok: arg}, ast.Node{Tok: class, Kids: []ast.NodeID{0}})

	obj, err := Compile(context.Background(), []ast.Statement{
		{Cat: ir.CommandDecl, Tree: decl, Line: 1},
		{Cat: ir.VoidCall, Tree: tree(ast.Node{Tok: num("1.0")}, ast.Node{Tok: class, Kids: []ast.NodeID{0}}), Line: 2},
		{Cat: ir.CondIf, Tree: tree(ast.Node{Tok: arg}), Line: 3},
	})
	require.NoError(t, err)

	body := strings.TrimSuffix(strings.TrimPrefix(string(obj), prologue), epilogue)

	assert.Equal(t, `	auto class_ = [&](BuiltinType::Object new_)
	{};
	class_(1.0);
	if (Library::isTrue(new_))
	{}
`, body)
}
