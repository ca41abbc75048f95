package parse

import (
	"github.com/ptitsalang/ptitsa/compiler/ir"
)

// isDeclaration reports whether the line looks like
//
//	name : arg, arg
func isDeclaration(l *ir.Line) bool {
	i := l.Lead()

	if i+1 >= len(l.Tokens) {
		return false
	}

	_, ok := l.Tokens[i].(ir.Raw)

	return ok && ir.IsSymbol(l.Tokens[i+1], ir.Colon)
}

// declare registers the command and its arguments.
// The line is rewritten as a call of the command on its arguments
// so the rest of the pipeline sees it as an ordinary prefix call.
func (p *Parser) declare(l *ir.Line) error {
	lead := l.Lead()
	name := string(l.Tokens[lead].(ir.Raw))

	var args []string

	rest := l.Tokens[lead+2:]

	for i, t := range rest {
		if i%2 == 1 {
			if !ir.IsSymbol(t, ir.Sep) {
				return MalformedError{Line: l.Num, Msg: "comma expected in argument list of " + name}
			}

			continue
		}

		a, ok := t.(ir.Raw)
		if !ok {
			return MalformedError{Line: l.Num, Msg: "argument name expected in declaration of " + name}
		}

		if _, ok := p.Table.Lookup(string(a)); ok {
			return MalformedError{Line: l.Num, Msg: "argument shadows a command: " + string(a)}
		}

		args = append(args, string(a))
	}

	if len(rest)%2 == 0 && len(rest) != 0 {
		return MalformedError{Line: l.Num, Msg: "trailing comma in declaration of " + name}
	}

	f, err := p.Table.Declare(name, len(args))
	if err != nil {
		return MalformedError{Line: l.Num, Msg: err.Error()}
	}

	toks := append(l.Tokens[:lead:lead], f, ir.Open)

	for i, a := range args {
		if i != 0 {
			toks = append(toks, ir.Sep)
		}

		b := ir.Binding{
			Name:  a,
			Line:  l.Num,
			Depth: l.Depth + 1,
		}

		p.Resolver.Bind(b)

		toks = append(toks, ir.Var(b))
	}

	l.Tokens = append(toks, ir.Close)
	l.Cat = ir.CommandDecl

	return nil
}
