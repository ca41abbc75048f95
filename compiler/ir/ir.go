package ir

type (
	// Token is one classified word of a statement line.
	// The set of implementations is closed: Raw, Literal, Keyword, Func, Var, Symbol.
	Token interface {
		token()
	}

	Raw string

	Literal struct {
		Kind  LitKind
		Value string
	}

	Keyword int

	Func struct {
		Name     string
		Template string
		Args     int // Variadic for any count
		Fixity   Fixity
		Tier     int
	}

	Var Binding

	Symbol int

	LitKind int
	Fixity  int

	// Binding is the place a name becomes valid.
	Binding struct {
		Name  string
		Line  int
		Depth int
	}

	Category int

	Line struct {
		Tokens []Token
		Cat    Category
		Depth  int
		Num    int // 1-based source line
	}

	Document struct {
		Name  string
		Lines []Line
	}
)

const Variadic = -1

const (
	Phrase LitKind = iota
	Number
	Bool
)

const (
	If Keyword = iota
	While
	ForEach
)

const (
	Prefix Fixity = iota
	Infix
	Postfix
)

const (
	Open Symbol = iota
	Close
	Sep
	Colon
	Depth
)

const (
	Unknown Category = iota
	VarCreation
	VarRedefinition
	CondIf
	CondWhile
	LoopForEach
	VoidCall
	CommandDecl
	ScopeEnter
	ScopeExit
)

func (Raw) token()     {}
func (Literal) token() {}
func (Keyword) token() {}
func (Func) token()    {}
func (Var) token()     {}
func (Symbol) token()  {}

func IsSymbol(t Token, s Symbol) bool {
	x, ok := t.(Symbol)

	return ok && x == s
}

// IsValue reports whether t can stand for a value on its own.
func IsValue(t Token) bool {
	switch t.(type) {
	case Symbol, Keyword:
		return false
	default:
		return true
	}
}

func (l *Line) Insert(i int, t ...Token) {
	l.Tokens = append(l.Tokens[:i], append(t, l.Tokens[i:]...)...)
}

func (l *Line) Erase(i int) {
	l.Tokens = append(l.Tokens[:i], l.Tokens[i+1:]...)
}

// Lead returns the index of the first token after the depth markers.
func (l *Line) Lead() int {
	i := 0

	for i < len(l.Tokens) && IsSymbol(l.Tokens[i], Depth) {
		i++
	}

	return i
}

func (d *Document) Insert(i int, l Line) {
	d.Lines = append(d.Lines, Line{})
	copy(d.Lines[i+1:], d.Lines[i:])
	d.Lines[i] = l
}
