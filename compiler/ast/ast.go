package ast

import (
	"fmt"

	"github.com/ptitsalang/ptitsa/compiler/ir"
)

type (
	NodeID int

	Node struct {
		Tok  ir.Token
		Kids []NodeID
	}

	// Tree is a statement tree stored as an arena.
	// Each node is the kid of exactly one parent.
	Tree struct {
		Nodes []Node
		Root  NodeID
	}

	Statement struct {
		Cat  ir.Category
		Tree *Tree // nil for scope markers
		Line int
		// Depth of the statement or the depth a scope marker moves to.
		Depth int
	}

	MalformedError struct {
		Line int
		Msg  string
	}

	ArityError struct {
		Line int
		Name string
		Want int
		Got  int
	}
)

func (t *Tree) Token(id NodeID) ir.Token { return t.Nodes[id].Tok }
func (t *Tree) Kids(id NodeID) []NodeID  { return t.Nodes[id].Kids }

func (t *Tree) add(tok ir.Token, kids ...NodeID) NodeID {
	t.Nodes = append(t.Nodes, Node{Tok: tok, Kids: kids})

	return NodeID(len(t.Nodes) - 1)
}

func (e MalformedError) SourceLine() int { return e.Line }
func (e ArityError) SourceLine() int     { return e.Line }

func (e MalformedError) Error() string {
	return fmt.Sprintf("line %d: malformed expression: %s", e.Line, e.Msg)
}

func (e ArityError) Error() string {
	return fmt.Sprintf("line %d: %v takes %d arguments, got %d", e.Line, e.Name, e.Want, e.Got)
}
