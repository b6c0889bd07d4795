// ============================================================================
// toypeg - PEG parser toolkit
// ============================================================================
//
// Package:     parser
// Description: Explicit match/no-match result of a grammar rule
// Created:     2026-10-15
// License:     MIT
// ============================================================================

package parser

import "github.com/msto63/toypeg/internal/ast"

// Result is the outcome of a rule: a matched fragment or no match
type Result struct {
	fragment ast.Fragment
	ok       bool
}

// NoMatch is the result of a rule that did not match
var NoMatch = Result{}

// Matched returns a successful result carrying f
func Matched(f ast.Fragment) Result {
	return Result{fragment: f, ok: true}
}

// OK reports whether the rule matched
func (r Result) OK() bool {
	return r.ok
}

// Fragment returns the matched fragment, nil for NoMatch
func (r Result) Fragment() ast.Fragment {
	return r.fragment
}

func (r Result) String() string {
	if !r.ok {
		return "NoMatch"
	}
	return "Matched(" + r.fragment.String() + ")"
}
