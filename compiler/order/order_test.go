package order

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ptitsalang/ptitsa/compiler/grammar"
	"github.com/ptitsalang/ptitsa/compiler/ir"
)

func line(t *testing.T, text string) []ir.Token {
	t.Helper()

	tab, err := grammar.New()
	require.NoError(t, err)

	var toks []ir.Token

	for _, w := range strings.Fields(text) {
		switch w {
		case "(":
			toks = append(toks, ir.Open)
		case ")":
			toks = append(toks, ir.Close)
		case ",":
			toks = append(toks, ir.Sep)
		default:
			if f, ok := tab.Lookup(w); ok {
				toks = append(toks, f)
			} else {
				toks = append(toks, ir.Var{Name: w})
			}
		}
	}

	return toks
}

// orders returns function names in evaluation order.
func orders(toks []ir.Token, ord []int) (names []string) {
	type fo struct {
		name string
		ord  int
	}

	var fs []fo

	for i, t := range toks {
		if f, ok := t.(ir.Func); ok {
			fs = append(fs, fo{name: f.Name, ord: ord[i]})
		}
	}

	sort.Slice(fs, func(i, j int) bool { return fs[i].ord < fs[j].ord })

	for _, f := range fs {
		names = append(names, f.name)
	}

	return names
}

func TestTiers(t *testing.T) {
	toks := line(t, "y = 2 + 3 * 4")
	ord := Assign(context.Background(), toks)

	assert.Equal(t, []int{0, 3, 0, 2, 0, 1, 0}, ord)
}

func TestBracketsFirst(t *testing.T) {
	toks := line(t, "( 2 + 3 ) * 4")
	ord := Assign(context.Background(), toks)

	assert.Equal(t, []string{"+", "*"}, orders(toks, ord))
}

func TestLeftToRightWithinTier(t *testing.T) {
	toks := line(t, "a - b + c - d")
	ord := Assign(context.Background(), toks)

	assert.Equal(t, []int{0, 1, 0, 2, 0, 3, 0}, ord)
}

func TestDisjointBrackets(t *testing.T) {
	toks := line(t, "x = ( a + b ) * ( c ^ d ) or not ( e and f )")
	ord := Assign(context.Background(), toks)

	assert.Equal(t, []string{"+", "^", "and", "*", "or", "not", "="}, orders(toks, ord))
}

func TestNestedBrackets(t *testing.T) {
	toks := line(t, "( show ( a * ( b + c ) ) , d - e )")
	ord := Assign(context.Background(), toks)

	assert.Equal(t, []string{"+", "*", "-", "show"}, orders(toks, ord))
}

func TestContiguous(t *testing.T) {
	for _, text := range []string{
		"x = 1",
		"x = ( ( 1 + 2 ) * 3 ) ^ 2 - exp ( 1 ) / 4",
		"( show a , ( not b ) , c is d and e isnt f )",
		"a",
	} {
		toks := line(t, text)
		ord := Assign(context.Background(), toks)

		var got []int
		for i, o := range ord {
			if _, ok := toks[i].(ir.Func); ok {
				got = append(got, o)
			} else {
				assert.Equal(t, 0, o, "%s: %d", text, i)
			}
		}

		sort.Ints(got)

		for i, o := range got {
			assert.Equal(t, i+1, o, text)
		}
	}
}
