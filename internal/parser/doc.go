// ============================================================================
// toypeg - PEG parser toolkit
// ============================================================================
//
// Package:     parser
// Description: PEG grammar engine and top-level parse entry points
// Created:     2026-10-15
// License:     MIT
// ============================================================================

/*
Package parser implements the toy statement grammar as a set of ordered-choice
rule methods over a lookahead tokenizer:

	statement    = assignment / expr / if_statement
	assignment   = NAME "=" expr
	if_statement = "if" statement ":" statement
	expr         = term ("+" expr / "-" expr / ε)
	term         = atom ("*" term / "/" term / ε)
	atom         = NAME / NUMBER / "(" expr ")"

Every rule returns a Result. A failed rule is a NoMatch value, never an error,
and leaves the tokenizer cursor exactly where it found it. expr and term
recurse on their right operand, so "1+2+3" becomes (add 1 (add 2 3)).

Rule results are not memoized; backtracking re-derives sub-rules from the
tokenizer's buffer.

The Parser type wraps the grammar for whole inputs: it lexes, runs a rule,
checks that all tokens were used and turns failures into coded errors.

	p, _ := parser.New(parser.Options{})
	tree, err := p.Parse("answer = 1 + 2")
*/
package parser
