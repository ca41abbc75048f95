package ir

import (
	"fmt"
	"strings"
)

func (t Raw) String() string { return fmt.Sprintf("<(raw) %s>", string(t)) }

func (t Literal) String() string {
	var k string

	switch t.Kind {
	case Phrase:
		k = `(" ")`
	case Number:
		k = "(#)"
	case Bool:
		k = "(bool)"
	default:
		k = "(?)"
	}

	return fmt.Sprintf("<(lit) %s %s>", k, t.Value)
}

func (t Keyword) String() string {
	switch t {
	case If:
		return "<(kw) if>"
	case While:
		return "<(kw) while>"
	case ForEach:
		return "<(kw) foreach>"
	default:
		return "<(kw) ?>"
	}
}

func (t Func) String() string {
	return fmt.Sprintf("<(fn) %v (%d) %s>", t.Fixity, t.Args, t.Name)
}

func (t Var) String() string {
	return fmt.Sprintf("<(var) %s d:%d r:%d>", t.Name, t.Depth, t.Line)
}

func (t Symbol) String() string {
	switch t {
	case Open:
		return "<(sym) (>"
	case Close:
		return "<(sym) )>"
	case Sep:
		return "<(sym) ,>"
	case Colon:
		return "<(sym) :>"
	case Depth:
		return "<(sym) >>>"
	default:
		return "<(sym) ?>"
	}
}

func (f Fixity) String() string {
	switch f {
	case Prefix:
		return "(pre)"
	case Infix:
		return "(inf)"
	case Postfix:
		return "(post)"
	default:
		return "(?)"
	}
}

func (c Category) String() string {
	switch c {
	case VarCreation:
		return "new var"
	case VarRedefinition:
		return "redef var"
	case CondIf:
		return "if"
	case CondWhile:
		return "while"
	case LoopForEach:
		return "for"
	case VoidCall:
		return "fn call"
	case CommandDecl:
		return "command"
	case ScopeEnter:
		return ">>"
	case ScopeExit:
		return "<<"
	default:
		return "?"
	}
}

func (l Line) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%4d { %v }", l.Num, l.Cat)

	for _, t := range l.Tokens {
		fmt.Fprintf(&b, " %v", t)
	}

	return b.String()
}
