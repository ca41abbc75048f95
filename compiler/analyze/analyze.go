package analyze

import (
	"fmt"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"tlog.app/go/loc"
	"tlog.app/go/tlog"

	"github.com/ptitsalang/ptitsa/compiler/ir"
)

type (
	// Resolver holds the bindings of one compilation run.
	// Bindings are only appended, never changed.
	Resolver struct {
		bindings []ir.Binding

		depth []int // by source line, -1 for lines without a statement
	}

	UnknownNameError struct {
		Name    string
		Line    int
		Suggest string
	}

	UsedBeforeDeclaredError struct {
		Name string
		Line int
		Decl int
	}

	NarrowerScopeError struct {
		Name string
		Line int
		Decl int
	}
)

func New() *Resolver {
	return &Resolver{}
}

// SetDepth records the depth of a statement at the source line.
func (r *Resolver) SetDepth(line, depth int) {
	for len(r.depth) <= line {
		r.depth = append(r.depth, -1)
	}

	r.depth[line] = depth
}

func (r *Resolver) Bindings() []ir.Binding { return r.bindings }

// Declare handles the first token of an assignment.
// It returns the binding the name refers to and whether it was created.
func (r *Resolver) Declare(name string, line, depth int) (b ir.Binding, created bool) {
	if b, ok := r.lookup(name, line, depth); ok {
		return b, false
	}

	b = ir.Binding{
		Name:  name,
		Line:  line,
		Depth: depth,
	}

	r.bindings = append(r.bindings, b)

	tlog.V("resolve").Printw("binding", "name", name, "line", line, "depth", depth, "from", loc.Caller(1))

	return b, true
}

// Bind adds a binding unconditionally.
func (r *Resolver) Bind(b ir.Binding) {
	r.bindings = append(r.bindings, b)
}

// Resolve finds the binding a reference at line and depth refers to.
func (r *Resolver) Resolve(name string, line, depth int) (ir.Binding, error) {
	if b, ok := r.lookup(name, line, depth); ok {
		return b, nil
	}

	var narrower, later ir.Binding

	for _, b := range r.bindings {
		if b.Name != name {
			continue
		}

		if b.Line <= line {
			narrower = b
		} else if later.Name == "" {
			later = b
		}
	}

	switch {
	case narrower.Name != "":
		return ir.Binding{}, NarrowerScopeError{Name: name, Line: line, Decl: narrower.Line}
	case later.Name != "":
		return ir.Binding{}, UsedBeforeDeclaredError{Name: name, Line: line, Decl: later.Line}
	}

	return ir.Binding{}, UnknownNameError{Name: name, Line: line, Suggest: r.suggest(name, line)}
}

// lookup returns the innermost latest binding visible at line and depth.
func (r *Resolver) lookup(name string, line, depth int) (res ir.Binding, ok bool) {
	for _, b := range r.bindings {
		if b.Name != name || b.Line > line || b.Depth > depth {
			continue
		}

		if !r.continuous(b, line) {
			continue
		}

		if !ok || b.Line > res.Line || b.Line == res.Line && b.Depth > res.Depth {
			res, ok = b, true
		}
	}

	if ok {
		tlog.V("resolve").Printw("resolved", "name", name, "line", line, "depth", depth, "decl", res.Line, "decl_depth", res.Depth, "from", loc.Caller(1))
	}

	return
}

// continuous reports whether the block b was declared in stays open up to line.
func (r *Resolver) continuous(b ir.Binding, line int) bool {
	for l := b.Line + 1; l < line && l < len(r.depth); l++ {
		if d := r.depth[l]; d >= 0 && d < b.Depth {
			return false
		}
	}

	return true
}

func (r *Resolver) suggest(name string, line int) string {
	seen := map[string]struct{}{}
	var names []string

	for _, b := range r.bindings {
		if b.Line > line {
			continue
		}

		if _, ok := seen[b.Name]; ok {
			continue
		}

		seen[b.Name] = struct{}{}
		names = append(names, b.Name)
	}

	ranks := fuzzy.RankFindFold(name, names)
	if len(ranks) != 0 {
		sort.Sort(ranks)

		return ranks[0].Target
	}

	best, dist := "", 3

	for _, n := range names {
		if d := fuzzy.LevenshteinDistance(name, n); d < dist {
			best, dist = n, d
		}
	}

	return best
}

func (e UnknownNameError) SourceLine() int { return e.Line }
func (e UsedBeforeDeclaredError) SourceLine() int { return e.Line }
func (e NarrowerScopeError) SourceLine() int { return e.Line }

func (e UnknownNameError) Error() string {
	if e.Suggest != "" {
		return fmt.Sprintf("line %d: unknown name %q (did you mean %q?)", e.Line, e.Name, e.Suggest)
	}

	return fmt.Sprintf("line %d: unknown name %q", e.Line, e.Name)
}

func (e UsedBeforeDeclaredError) Error() string {
	return fmt.Sprintf("line %d: %q used before declared (declared on line %d)", e.Line, e.Name, e.Decl)
}

func (e NarrowerScopeError) Error() string {
	return fmt.Sprintf("line %d: %q declared in a narrower scope (line %d)", e.Line, e.Name, e.Decl)
}
