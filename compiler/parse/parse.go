package parse

import (
	"bytes"
	"context"
	"fmt"

	"tlog.app/go/tlog"

	"github.com/ptitsalang/ptitsa/compiler/analyze"
	"github.com/ptitsalang/ptitsa/compiler/grammar"
	"github.com/ptitsalang/ptitsa/compiler/ir"
)

type (
	// Parser turns source text into classified token lines.
	// Commands and bindings it meets are registered in Table and Resolver.
	Parser struct {
		Table    *grammar.Table
		Resolver *analyze.Resolver
	}

	MalformedError struct {
		Line int
		Msg  string
	}
)

var symbols = map[string]ir.Symbol{
	"(": ir.Open,
	")": ir.Close,
	",": ir.Sep,
	":": ir.Colon,
}

var keywords = map[string]ir.Keyword{
	"if":      ir.If,
	"while":   ir.While,
	"foreach": ir.ForEach,
}

func New(tab *grammar.Table, r *analyze.Resolver) *Parser {
	return &Parser{
		Table:    tab,
		Resolver: r,
	}
}

func (p *Parser) Parse(ctx context.Context, name string, text []byte) (doc *ir.Document, err error) {
	tr, _ := tlog.SpawnFromContextAndWrap(ctx, "parse", "name", name, "size", len(text))
	defer tr.Finish("err", &err)

	doc = &ir.Document{Name: name}

	for i, raw := range bytes.Split(text, []byte("\n")) {
		l, ok, err := p.line(i+1, raw)
		if err != nil {
			return nil, err
		}

		if !ok {
			continue
		}

		doc.Lines = append(doc.Lines, l)
	}

	// all bindings are registered before any reference is resolved
	for i := range doc.Lines {
		err = p.resolve(&doc.Lines[i])
		if err != nil {
			return nil, err
		}
	}

	if tr.If("tokens") {
		for _, l := range doc.Lines {
			tr.Printw("line", "line", l.String())
		}
	}

	tr.Printw("parsed", "lines", len(doc.Lines), "bindings", len(p.Resolver.Bindings()))

	return doc, nil
}

func (p *Parser) line(num int, raw []byte) (l ir.Line, ok bool, err error) {
	depth := 0

	for depth < len(raw) && raw[depth] == '\t' {
		depth++
	}

	body := raw[depth:]

	if len(bytes.Trim(body, " \t\r")) == 0 {
		return l, false, nil
	}

	ws, err := words(body, num)
	if err != nil {
		return l, false, err
	}

	p.Resolver.SetDepth(num, depth)

	l = ir.Line{
		Num:    num,
		Depth:  depth,
		Tokens: make([]ir.Token, 0, depth+len(ws)+2),
	}

	for i := 0; i < depth; i++ {
		l.Tokens = append(l.Tokens, ir.Depth)
	}

	for _, w := range ws {
		t, err := classify(w, num)
		if err != nil {
			return l, false, err
		}

		l.Tokens = append(l.Tokens, t)
	}

	err = checkBrackets(&l)
	if err != nil {
		return l, false, err
	}

	if isDeclaration(&l) {
		err = p.declare(&l)
		if err != nil {
			return l, false, err
		}

		return l, true, nil
	}

	for i, t := range l.Tokens {
		switch t := t.(type) {
		case ir.Raw:
			if f, ok := p.Table.Lookup(string(t)); ok {
				l.Tokens[i] = f
			}
		case ir.Symbol:
			if t == ir.Colon {
				return l, false, MalformedError{Line: num, Msg: "unexpected colon"}
			}
		}
	}

	insertBrackets(&l)

	p.assignment(&l)

	return l, true, nil
}

func classify(w word, num int) (ir.Token, error) {
	if w.phrase {
		return ir.Literal{Kind: ir.Phrase, Value: w.text}, nil
	}

	if n, ok := Number(w.text); ok {
		return ir.Literal{Kind: ir.Number, Value: n}, nil
	}

	if numeric(w.text) {
		return nil, MalformedError{Line: num, Msg: "malformed number: " + w.text}
	}

	switch w.text {
	case "true", "false":
		return ir.Literal{Kind: ir.Bool, Value: w.text}, nil
	}

	if s, ok := symbols[w.text]; ok {
		return s, nil
	}

	if k, ok := keywords[w.text]; ok {
		return k, nil
	}

	return ir.Raw(w.text), nil
}

func checkBrackets(l *ir.Line) error {
	pol := 0

	for _, t := range l.Tokens {
		switch {
		case ir.IsSymbol(t, ir.Open):
			pol++
		case ir.IsSymbol(t, ir.Close):
			pol--
		}

		if pol < 0 {
			return MalformedError{Line: l.Num, Msg: "unexpected close bracket"}
		}
	}

	if pol != 0 {
		return MalformedError{Line: l.Num, Msg: "unclosed bracket"}
	}

	return nil
}

// insertBrackets wraps every prefix call not led by an open bracket.
// The call extends to the enclosing close bracket or line end.
// A call nested in brackets also ends at an argument separator.
func insertBrackets(l *ir.Line) {
	nest := 0

	for i := l.Lead(); i < len(l.Tokens); i++ {
		switch t := l.Tokens[i]; {
		case ir.IsSymbol(t, ir.Open):
			nest++
			continue
		case ir.IsSymbol(t, ir.Close):
			nest--
			continue
		}

		f, ok := l.Tokens[i].(ir.Func)
		if !ok || f.Fixity != ir.Prefix {
			continue
		}

		if i > 0 && ir.IsSymbol(l.Tokens[i-1], ir.Open) {
			continue
		}

		l.Insert(i, ir.Open)
		i++
		nest++

		end := len(l.Tokens)
		pol := 0

	loop:
		for j := i + 1; j < len(l.Tokens); j++ {
			switch t := l.Tokens[j]; {
			case ir.IsSymbol(t, ir.Open):
				pol++
			case ir.IsSymbol(t, ir.Close) && pol == 0,
				ir.IsSymbol(t, ir.Sep) && pol == 0 && nest > 1:
				end = j
				break loop
			case ir.IsSymbol(t, ir.Close):
				pol--
			}
		}

		l.Insert(end, ir.Close)
	}
}

// assignment binds the left hand side of `name = ...`.
func (p *Parser) assignment(l *ir.Line) {
	i := l.Lead()

	if i+1 >= len(l.Tokens) {
		return
	}

	name, ok := l.Tokens[i].(ir.Raw)
	if !ok {
		return
	}

	if f, ok := l.Tokens[i+1].(ir.Func); !ok || f.Name != "=" {
		return
	}

	b, created := p.Resolver.Declare(string(name), l.Num, l.Depth)

	l.Tokens[i] = ir.Var(b)

	if created {
		l.Cat = ir.VarCreation
	} else {
		l.Cat = ir.VarRedefinition
	}
}

func (p *Parser) resolve(l *ir.Line) error {
	for i, t := range l.Tokens {
		name, ok := t.(ir.Raw)
		if !ok {
			continue
		}

		b, err := p.Resolver.Resolve(string(name), l.Num, l.Depth)
		if err != nil {
			return err
		}

		l.Tokens[i] = ir.Var(b)
	}

	return nil
}

func (e MalformedError) SourceLine() int { return e.Line }

func (e MalformedError) Error() string {
	return fmt.Sprintf("line %d: malformed: %s", e.Line, e.Msg)
}
