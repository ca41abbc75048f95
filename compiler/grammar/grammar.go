package grammar

import (
	"bufio"
	"bytes"
	_ "embed"
	"strconv"

	"tlog.app/go/errors"

	"github.com/ptitsalang/ptitsa/compiler/ir"
)

type (
	// Table is the set of functions known to one compilation run.
	// Operators are fixed, commands are added as they are declared.
	Table struct {
		ops      map[string]ir.Func
		commands map[string]ir.Func
	}
)

// Tiers in binding order, tightest first.
const (
	TierPow = iota
	TierMul
	TierAdd
	TierCommand
	TierCmp
	TierAnd
	TierOr
	TierNot
	TierAssign

	NumTiers
)

//go:embed builtin.rules
var builtinRules []byte

var operators = []ir.Func{
	infix("^", "^", TierPow),
	infix("*", "*", TierMul),
	infix("/", "/", TierMul),
	infix("+", "+", TierAdd),
	infix("-", "-", TierAdd),
	infix("is", "==", TierCmp),
	infix("isnt", "!=", TierCmp),
	infix("and", "&&", TierAnd),
	infix("or", "||", TierOr),
	{Name: "not", Template: "!", Args: 1, Fixity: ir.Prefix, Tier: TierNot},
	infix("=", "=", TierAssign),
}

func New() (*Table, error) {
	t := &Table{
		ops:      make(map[string]ir.Func, len(operators)),
		commands: make(map[string]ir.Func),
	}

	for _, op := range operators {
		t.ops[op.Name] = op
	}

	cmds, err := ParseRules(builtinRules)
	if err != nil {
		return nil, errors.Wrap(err, "builtin rules")
	}

	for _, c := range cmds {
		t.add(c)
	}

	return t, nil
}

func (t *Table) Lookup(name string) (ir.Func, bool) {
	if f, ok := t.ops[name]; ok {
		return f, true
	}

	f, ok := t.commands[name]

	return f, ok
}

func (t *Table) IsOperator(name string) bool {
	_, ok := t.ops[name]
	return ok
}

// Declare registers a user command rendered under its own name.
func (t *Table) Declare(name string, args int) (ir.Func, error) {
	if t.IsOperator(name) {
		return ir.Func{}, errors.New("operator can't be redeclared: %v", name)
	}

	if _, ok := t.commands[name]; ok {
		return ir.Func{}, errors.New("name redefined: %v", name)
	}

	f := ir.Func{
		Name:     name,
		Template: name,
		Args:     args,
		Fixity:   ir.Prefix,
		Tier:     TierCommand,
	}

	t.add(f)

	return f, nil
}

func (t *Table) add(f ir.Func) {
	t.commands[f.Name] = f
}

// ParseRules reads command rules of the form
//
//	name = "template" arity
//
// where arity is a number or * for variadic.
func ParseRules(text []byte) (r []ir.Func, err error) {
	s := bufio.NewScanner(bytes.NewReader(text))

	lnum := 0
	for s.Scan() {
		lnum++

		line := s.Bytes()
		i := skipSpaces(line, 0)

		if i == len(line) || line[i] == '#' {
			continue
		}

		i = findChar(line, i, '=')
		if i == len(line) {
			return nil, errors.New("no equal sign in line: %v", lnum)
		}

		name := string(bytes.TrimSpace(line[:i]))
		if name == "" {
			return nil, errors.New("no name in line: %v", lnum)
		}

		i = skipSpaces(line, i+1)

		if i == len(line) || line[i] != '"' {
			return nil, errors.New("template expected: %d:%d", lnum, i)
		}

		end := findChar(line, i+1, '"')
		if end == len(line) {
			return nil, errors.New("unended string: %d:%d", lnum, i)
		}

		tmpl := string(line[i+1 : end])

		i = skipSpaces(line, end+1)
		arity := string(bytes.TrimSpace(line[i:]))

		f := ir.Func{
			Name:     name,
			Template: tmpl,
			Fixity:   ir.Prefix,
			Tier:     TierCommand,
		}

		switch arity {
		case "*":
			f.Args = ir.Variadic
		default:
			f.Args, err = strconv.Atoi(arity)
			if err != nil || f.Args < 0 {
				return nil, errors.New("bad arity: %d:%d: %q", lnum, i, arity)
			}
		}

		r = append(r, f)
	}

	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "scanner")
	}

	return r, nil
}

func infix(name, tmpl string, tier int) ir.Func {
	return ir.Func{
		Name:     name,
		Template: tmpl,
		Args:     2,
		Fixity:   ir.Infix,
		Tier:     tier,
	}
}

func skipSpaces(b []byte, i int) int {
	for i < len(b) && (b[i] == ' ' || b[i] == '\t') {
		i++
	}

	return i
}

func findChar(b []byte, i int, c byte) int {
	for i < len(b) && b[i] != c {
		i++
	}

	return i
}
