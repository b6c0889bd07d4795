// ============================================================================
// toypeg - PEG parser toolkit
// ============================================================================
//
// Package:     ast
// Description: Node kinds, interior nodes, leaves and the Fragment sum type
// Created:     2026-10-15
// License:     MIT
// ============================================================================

package ast

import (
	"fmt"
	"strings"

	"github.com/msto63/toypeg/internal/token"
)

// Kind identifies the construct an interior node stands for
type Kind int

const (
	KindAssign Kind = iota + 1
	KindIf
	KindAdd
	KindSub
	KindMul
	KindDiv
)

var kindNames = map[Kind]string{
	KindAssign: "assign",
	KindIf:     "if",
	KindAdd:    "add",
	KindSub:    "sub",
	KindMul:    "mul",
	KindDiv:    "div",
}

// String returns the lower-case node tag
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// IsBinary reports whether k is one of the arithmetic operators
func (k Kind) IsBinary() bool {
	return k >= KindAdd && k <= KindDiv
}

// ParseKind converts a node tag back to its Kind
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown node kind %q", s)
}

// Fragment is the result of a successful rule match: a *Node or a Leaf.
// The set of implementations is closed.
type Fragment interface {
	// String returns the s-expression form of the fragment
	String() string

	// Accept implements the visitor pattern
	Accept(visitor Visitor) interface{}

	// Pos returns the position of the first token covered by the fragment
	Pos() token.Position

	// Validate checks the structural shape of the fragment
	Validate() error

	fragment()
}

// Node is an interior tree node with an ordered list of children
type Node struct {
	kind     Kind
	children []Fragment
}

// NewNode creates a node. The children slice is copied.
func NewNode(kind Kind, children ...Fragment) *Node {
	c := make([]Fragment, len(children))
	copy(c, children)
	return &Node{kind: kind, children: c}
}

// Kind returns the node kind
func (n *Node) Kind() Kind {
	return n.kind
}

// Children returns a copy of the node's children
func (n *Node) Children() []Fragment {
	c := make([]Fragment, len(n.children))
	copy(c, n.children)
	return c
}

// Child returns the i-th child, or nil if i is out of range
func (n *Node) Child(i int) Fragment {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// Len returns the number of children
func (n *Node) Len() int {
	return len(n.children)
}

func (n *Node) String() string {
	var b strings.Builder
	b.WriteString("(")
	b.WriteString(n.kind.String())
	for _, c := range n.children {
		b.WriteString(" ")
		if c == nil {
			b.WriteString("<nil>")
			continue
		}
		b.WriteString(c.String())
	}
	b.WriteString(")")
	return b.String()
}

func (n *Node) Accept(visitor Visitor) interface{} {
	switch n.kind {
	case KindAssign:
		return visitor.VisitAssign(n)
	case KindIf:
		return visitor.VisitIf(n)
	default:
		return visitor.VisitBinary(n)
	}
}

func (n *Node) Pos() token.Position {
	if len(n.children) == 0 || n.children[0] == nil {
		return token.Position{}
	}
	return n.children[0].Pos()
}

func (n *Node) Validate() error {
	if _, ok := kindNames[n.kind]; !ok {
		return fmt.Errorf("unknown node kind %d", int(n.kind))
	}
	if len(n.children) != 2 {
		return fmt.Errorf("%s node needs 2 children, has %d", n.kind, len(n.children))
	}
	for i, c := range n.children {
		if c == nil {
			return fmt.Errorf("%s node has nil child %d", n.kind, i)
		}
	}
	if n.kind == KindAssign {
		leaf, ok := n.children[0].(Leaf)
		if !ok || leaf.Token.Kind != token.Name {
			return fmt.Errorf("assign target must be a NAME, got %s", n.children[0])
		}
	}
	return nil
}

func (n *Node) fragment() {}

// Leaf is a fragment consisting of a single token
type Leaf struct {
	Token token.Token
}

// NewLeaf wraps tok
func NewLeaf(tok token.Token) Leaf {
	return Leaf{Token: tok}
}

// IsName reports whether the leaf holds a NAME token
func (l Leaf) IsName() bool {
	return l.Token.Kind == token.Name
}

// IsNumber reports whether the leaf holds a NUMBER token
func (l Leaf) IsNumber() bool {
	return l.Token.Kind == token.Number
}

func (l Leaf) String() string {
	return l.Token.Text
}

func (l Leaf) Accept(visitor Visitor) interface{} {
	return visitor.VisitLeaf(l)
}

func (l Leaf) Pos() token.Position {
	return l.Token.Pos
}

func (l Leaf) Validate() error {
	if !l.IsName() && !l.IsNumber() {
		return fmt.Errorf("leaf must be NAME or NUMBER, got %s", l.Token.Kind)
	}
	if l.Token.Text == "" {
		return fmt.Errorf("%s leaf has empty text", l.Token.Kind)
	}
	return nil
}

func (l Leaf) fragment() {}

// Fold dispatches f to onNode or onLeaf. Every Fragment is exactly one of
// the two.
func Fold[T any](f Fragment, onNode func(*Node) T, onLeaf func(Leaf) T) T {
	switch v := f.(type) {
	case *Node:
		return onNode(v)
	case Leaf:
		return onLeaf(v)
	default:
		panic(fmt.Sprintf("ast: unknown fragment type %T", f))
	}
}

// Equal reports whether a and b have the same shape, kinds and token texts.
// Source positions are ignored.
func Equal(a, b Fragment) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return Fold(a,
		func(na *Node) bool {
			nb, ok := b.(*Node)
			if !ok || na.kind != nb.kind || len(na.children) != len(nb.children) {
				return false
			}
			for i := range na.children {
				if !Equal(na.children[i], nb.children[i]) {
					return false
				}
			}
			return true
		},
		func(la Leaf) bool {
			lb, ok := b.(Leaf)
			return ok && la.Token.Kind == lb.Token.Kind && la.Token.Text == lb.Token.Text
		},
	)
}

// Walk calls fn for f and its descendants in pre-order. Returning false from
// fn skips the children of that fragment.
func Walk(f Fragment, fn func(Fragment) bool) {
	if f == nil || !fn(f) {
		return
	}
	if n, ok := f.(*Node); ok {
		for _, c := range n.children {
			Walk(c, fn)
		}
	}
}

// Depth returns the height of the tree rooted at f; a leaf has depth 1
func Depth(f Fragment) int {
	return Fold(f,
		func(n *Node) int {
			max := 0
			for _, c := range n.children {
				if c == nil {
					continue
				}
				if d := Depth(c); d > max {
					max = d
				}
			}
			return max + 1
		},
		func(Leaf) int { return 1 },
	)
}
