// ============================================================================
// toypeg - PEG parser toolkit
// ============================================================================
//
// Package:     parser
// Description: Ordered-choice rule methods with mark/reset backtracking
// Created:     2026-10-15
// License:     MIT
// ============================================================================

package parser

import (
	tperror "github.com/msto63/toypeg/pkg/core/error"
	tplog "github.com/msto63/toypeg/pkg/core/log"

	"github.com/msto63/toypeg/internal/ast"
	"github.com/msto63/toypeg/internal/token"
	"github.com/msto63/toypeg/internal/tokenizer"
)

// DefaultMaxDepth bounds rule nesting when Options.MaxDepth is zero
const DefaultMaxDepth = 1024

var (
	plus   = token.Literal("+")
	minus  = token.Literal("-")
	mult   = token.Literal("*")
	div    = token.Literal("/")
	lparen = token.Literal("(")
	rparen = token.Literal(")")
)

// GrammarStats counts rule activity for one grammar instance
type GrammarStats struct {
	RuleCalls int `json:"rule_calls"`
	MaxDepth  int `json:"max_depth"`
}

// Grammar is the rule set over one tokenizer. It is not safe for concurrent
// use.
type Grammar struct {
	tz       *tokenizer.Tokenizer
	logger   *tplog.Logger
	trace    bool
	maxDepth int
	depth    int
	stats    GrammarStats

	// sawEOF is set when any rule ran into the end of the token stream
	sawEOF bool
	// fault is the first condition that is more than a plain failed match:
	// a lexical error, an invalid mark or the depth limit
	fault error
}

// NewGrammar creates a grammar reading from tz. Only Logger, MaxDepth and
// Trace of opts are used.
func NewGrammar(tz *tokenizer.Tokenizer, opts Options) *Grammar {
	if opts.Logger == nil {
		opts.Logger = tplog.GetDefault()
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	return &Grammar{
		tz:       tz,
		logger:   opts.Logger.WithField("component", "grammar"),
		trace:    opts.Trace,
		maxDepth: opts.MaxDepth,
	}
}

// Tokenizer returns the underlying tokenizer
func (g *Grammar) Tokenizer() *tokenizer.Tokenizer {
	return g.tz
}

// SawEndOfInput reports whether a rule ran out of tokens since the last
// ClearFaults
func (g *Grammar) SawEndOfInput() bool {
	return g.sawEOF
}

// Fault returns the first lexical, mark or depth error recorded since the
// last ClearFaults
func (g *Grammar) Fault() error {
	return g.fault
}

// ClearFaults forgets recorded end-of-input and fault conditions
func (g *Grammar) ClearFaults() {
	g.sawEOF = false
	g.fault = nil
}

// Stats returns rule activity counters
func (g *Grammar) Stats() GrammarStats {
	return g.stats
}

// Expect consumes and returns the current token if it matches c by kind or by
// text. Otherwise it returns false and the cursor does not move. Running out
// of tokens counts as a mismatch.
func (g *Grammar) Expect(c token.Criterion) (token.Token, bool) {
	tok, err := g.tz.Peek()
	if err != nil {
		g.note(err)
		return token.Token{}, false
	}
	if !c.Matches(tok) {
		return token.Token{}, false
	}
	if _, err := g.tz.Consume(); err != nil {
		g.note(err)
		return token.Token{}, false
	}
	return tok, true
}

// Statement parses statement = assignment / expr / if_statement
func (g *Grammar) Statement() Result {
	return g.rule("statement", func() Result {
		if r := g.Assignment(); r.OK() {
			return r
		}
		if r := g.Expr(); r.OK() {
			return r
		}
		return g.IfStatement()
	})
}

// Assignment parses NAME "=" expr into (assign name expr)
func (g *Grammar) Assignment() Result {
	return g.rule("assignment", func() Result {
		m := g.tz.Mark()
		if target, ok := g.Expect(token.OfKind(token.Name)); ok {
			if _, ok := g.Expect(token.OfKind(token.Equal)); ok {
				if value := g.Expr(); value.OK() {
					return Matched(ast.NewNode(ast.KindAssign, ast.NewLeaf(target), value.Fragment()))
				}
			}
		}
		g.reset(m)
		return NoMatch
	})
}

// IfStatement parses "if" statement ":" statement into (if cond body)
func (g *Grammar) IfStatement() Result {
	return g.rule("if_statement", func() Result {
		m := g.tz.Mark()
		if _, ok := g.Expect(token.OfKind(token.If)); ok {
			if cond := g.Statement(); cond.OK() {
				if _, ok := g.Expect(token.OfKind(token.Colon)); ok {
					if body := g.Statement(); body.OK() {
						return Matched(ast.NewNode(ast.KindIf, cond.Fragment(), body.Fragment()))
					}
				}
			}
		}
		g.reset(m)
		return NoMatch
	})
}

// Expr parses expr = term ("+" expr / "-" expr / ε)
func (g *Grammar) Expr() Result {
	return g.rule("expr", func() Result {
		return g.binary(g.Term, g.Expr, additive)
	})
}

// Term parses term = atom ("*" term / "/" term / ε)
func (g *Grammar) Term() Result {
	return g.rule("term", func() Result {
		return g.binary(g.Atom, g.Term, multiplicative)
	})
}

// Atom parses atom = NAME / NUMBER / "(" expr ")". NAME and NUMBER yield a
// leaf; the parenthesised form yields the inner expression itself.
func (g *Grammar) Atom() Result {
	return g.rule("atom", func() Result {
		if tok, ok := g.Expect(token.OfKind(token.Name)); ok {
			return Matched(ast.NewLeaf(tok))
		}
		if tok, ok := g.Expect(token.OfKind(token.Number)); ok {
			return Matched(ast.NewLeaf(tok))
		}
		m := g.tz.Mark()
		if _, ok := g.Expect(lparen); ok {
			if inner := g.Expr(); inner.OK() {
				if _, ok := g.Expect(rparen); ok {
					return inner
				}
			}
		}
		g.reset(m)
		return NoMatch
	})
}

type operator struct {
	criterion token.Criterion
	kind      ast.Kind
}

// operators in the order the alternatives are tried
var (
	additive       = []operator{{plus, ast.KindAdd}, {minus, ast.KindSub}}
	multiplicative = []operator{{mult, ast.KindMul}, {div, ast.KindDiv}}
)

// binary matches operand, then tries each operator followed by a recursive
// right-hand side in order. The mark is taken before the operator so a
// failed right-hand side also gives the operator token back.
func (g *Grammar) binary(operand, rest func() Result, ops []operator) Result {
	left := operand()
	if !left.OK() {
		return NoMatch
	}
	m := g.tz.Mark()
	for _, op := range ops {
		if _, ok := g.Expect(op.criterion); ok {
			if right := rest(); right.OK() {
				return Matched(ast.NewNode(op.kind, left.Fragment(), right.Fragment()))
			}
		}
		g.reset(m)
	}
	return left
}

// rule runs body as the named rule with depth accounting and tracing
func (g *Grammar) rule(name string, body func() Result) Result {
	if g.depth >= g.maxDepth {
		if g.fault == nil {
			g.fault = tperror.Newf("rule nesting exceeds %d levels", g.maxDepth).
				WithCode(tperror.CodeDepthExceeded).
				WithOperation("parser." + name).
				WithDetail("max_depth", g.maxDepth).
				WithDetail("index", g.tz.Cursor())
		}
		return NoMatch
	}

	g.depth++
	g.stats.RuleCalls++
	if g.depth > g.stats.MaxDepth {
		g.stats.MaxDepth = g.depth
	}
	start := g.tz.Cursor()
	if g.trace {
		g.logger.Trace("enter rule", tplog.Fields{"rule": name, "index": start, "depth": g.depth})
	}

	r := body()

	if g.trace {
		if r.OK() {
			g.logger.Trace("rule matched", tplog.Fields{
				"rule":     name,
				"from":     start,
				"to":       g.tz.Cursor(),
				"fragment": r.Fragment().String(),
			})
		} else {
			g.logger.Trace("rule failed", tplog.Fields{"rule": name, "index": start})
		}
	}
	g.depth--
	return r
}

func (g *Grammar) reset(m tokenizer.Mark) {
	if err := g.tz.Reset(m); err != nil {
		g.note(err)
	}
}

// note records err: end of input is remembered as a flag, anything else as
// the first fault
func (g *Grammar) note(err error) {
	if tperror.HasCode(err, tperror.CodeEndOfInput) {
		g.sawEOF = true
		return
	}
	if g.fault == nil {
		g.fault = err
	}
}
