// ============================================================================
// toypeg - PEG parser toolkit
// ============================================================================
//
// Package:     ast
// Description: Visitor pattern for traversing and analysing syntax trees
// Created:     2026-10-15
// License:     MIT
// ============================================================================

package ast

import (
	"fmt"
)

// Visitor interface for traversing fragments using the visitor pattern
type Visitor interface {
	VisitAssign(n *Node) interface{}
	VisitIf(n *Node) interface{}
	VisitBinary(n *Node) interface{} // add, sub, mul, div
	VisitLeaf(l Leaf) interface{}
}

// BaseVisitor provides no-op implementations for all visitor methods.
// Embed it in concrete visitors and use VisitChildren to descend.
type BaseVisitor struct{}

func (BaseVisitor) VisitAssign(n *Node) interface{} { return nil }
func (BaseVisitor) VisitIf(n *Node) interface{}     { return nil }
func (BaseVisitor) VisitBinary(n *Node) interface{} { return nil }
func (BaseVisitor) VisitLeaf(l Leaf) interface{}    { return nil }

// VisitChildren lets v visit every child of n in order
func VisitChildren(v Visitor, n *Node) {
	for _, c := range n.children {
		if c != nil {
			c.Accept(v)
		}
	}
}

// ValidationVisitor validates every fragment of a tree and collects errors
type ValidationVisitor struct {
	BaseVisitor
	errors []error
}

// NewValidationVisitor creates a new validation visitor
func NewValidationVisitor() *ValidationVisitor {
	return &ValidationVisitor{
		errors: make([]error, 0),
	}
}

// Errors returns all validation errors found
func (vv *ValidationVisitor) Errors() []error {
	return vv.errors
}

// HasErrors returns true if any validation errors were found
func (vv *ValidationVisitor) HasErrors() bool {
	return len(vv.errors) > 0
}

// Reset clears all collected errors
func (vv *ValidationVisitor) Reset() {
	vv.errors = vv.errors[:0]
}

func (vv *ValidationVisitor) node(n *Node) interface{} {
	if err := n.Validate(); err != nil {
		vv.errors = append(vv.errors, fmt.Errorf("%s at %s: %w", n.kind, n.Pos(), err))
	}
	VisitChildren(vv, n)
	return nil
}

func (vv *ValidationVisitor) VisitAssign(n *Node) interface{} { return vv.node(n) }
func (vv *ValidationVisitor) VisitIf(n *Node) interface{}     { return vv.node(n) }
func (vv *ValidationVisitor) VisitBinary(n *Node) interface{} { return vv.node(n) }

func (vv *ValidationVisitor) VisitLeaf(l Leaf) interface{} {
	if err := l.Validate(); err != nil {
		vv.errors = append(vv.errors, fmt.Errorf("leaf at %s: %w", l.Pos(), err))
	}
	return nil
}

// Utility functions for working with visitors

// Validate validates a tree and returns all errors found
func Validate(f Fragment) []error {
	visitor := NewValidationVisitor()
	f.Accept(visitor)
	return visitor.Errors()
}
