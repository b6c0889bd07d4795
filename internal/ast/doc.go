// ============================================================================
// toypeg - PEG parser toolkit
// ============================================================================
//
// Package:     ast
// Description: Abstract syntax tree produced by the grammar engine
// Created:     2026-10-15
// License:     MIT
// ============================================================================

/*
Package ast defines the syntax tree built by the parser.

A parse result is a Fragment: either an interior *Node (assign, if, add,
sub, mul, div) or a Leaf wrapping the NAME or NUMBER token it was built from.
Children of a Node are Fragments as well, so every consumer has to handle
both cases. Fold and the Visitor interface make that handling explicit.

Nodes are immutable once constructed. NewNode copies its children and
Children returns a copy, so a tree can be shared freely between the parser,
the evaluator and the renderers.
*/
package ast
