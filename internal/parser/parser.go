// ============================================================================
// toypeg - PEG parser toolkit
// ============================================================================
//
// Package:     parser
// Description: Top-level parsing of whole inputs with coded errors
// Created:     2026-10-15
// License:     MIT
// ============================================================================

package parser

import (
	"fmt"
	"strings"

	tperror "github.com/msto63/toypeg/pkg/core/error"
	tplog "github.com/msto63/toypeg/pkg/core/log"

	"github.com/msto63/toypeg/internal/ast"
	"github.com/msto63/toypeg/internal/lexer"
	"github.com/msto63/toypeg/internal/token"
	"github.com/msto63/toypeg/internal/tokenizer"
)

// DefaultMaxInputLength bounds the input size when Options.MaxInputLength is zero
const DefaultMaxInputLength = 1 << 20

// Options configures parser behavior
type Options struct {
	Logger         *tplog.Logger
	MaxDepth       int  // rule nesting limit, DefaultMaxDepth if zero
	MaxInputLength int  // bytes, DefaultMaxInputLength if zero
	Trace          bool // log every rule entry and exit at trace level
}

// Rule names an entry point of the grammar
type Rule string

const (
	RuleStatement   Rule = "statement"
	RuleAssignment  Rule = "assignment"
	RuleIfStatement Rule = "if"
	RuleExpr        Rule = "expr"
	RuleTerm        Rule = "term"
	RuleAtom        Rule = "atom"
)

// Rules lists all entry points
func Rules() []Rule {
	return []Rule{RuleStatement, RuleAssignment, RuleIfStatement, RuleExpr, RuleTerm, RuleAtom}
}

// ParseRuleName converts a name to a Rule
func ParseRuleName(name string) (Rule, error) {
	for _, r := range Rules() {
		if string(r) == strings.ToLower(name) {
			return r, nil
		}
	}
	return "", tperror.Newf("unknown rule %q", name).
		WithCode(tperror.CodeInvalidInput).
		WithDetail("rule", name)
}

func (r Rule) method(g *Grammar) func() Result {
	switch r {
	case RuleStatement:
		return g.Statement
	case RuleAssignment:
		return g.Assignment
	case RuleIfStatement:
		return g.IfStatement
	case RuleExpr:
		return g.Expr
	case RuleTerm:
		return g.Term
	case RuleAtom:
		return g.Atom
	default:
		return nil
	}
}

// Parser parses complete inputs. A Parser holds no per-input state and can be
// reused.
type Parser struct {
	logger  *tplog.Logger
	options Options
}

// New creates a parser with the given options
func New(opts Options) (*Parser, error) {
	if opts.Logger == nil {
		opts.Logger = tplog.GetDefault()
	}
	if opts.MaxDepth < 0 || opts.MaxInputLength < 0 {
		return nil, tperror.New("parser limits must not be negative").
			WithCode(tperror.CodeInvalidInput).
			WithDetail("max_depth", opts.MaxDepth).
			WithDetail("max_input_length", opts.MaxInputLength)
	}
	if opts.MaxDepth == 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.MaxInputLength == 0 {
		opts.MaxInputLength = DefaultMaxInputLength
	}

	return &Parser{
		logger:  opts.Logger.WithField("component", "parser"),
		options: opts,
	}, nil
}

// Parse parses input as exactly one statement
func (p *Parser) Parse(input string) (ast.Fragment, error) {
	return p.ParseRule(input, RuleStatement)
}

// ParseRule parses input as exactly one match of rule. All tokens must be
// used.
func (p *Parser) ParseRule(input string, rule Rule) (ast.Fragment, error) {
	if err := p.checkInput(input); err != nil {
		return nil, err
	}
	g := p.grammar(input)
	run := rule.method(g)
	if run == nil {
		return nil, tperror.Newf("unknown rule %q", string(rule)).
			WithCode(tperror.CodeInvalidInput).
			WithDetail("rule", string(rule))
	}

	timer := p.logger.StartTimer("parse").
		WithLevel(tplog.LevelDebug).
		WithField("rule", string(rule))

	frag, err := p.finish(g, run(), string(rule), input)
	p.logStats(g, timer, err)
	if err != nil {
		return nil, err
	}
	return frag, nil
}

// ParseProgram parses input as a sequence of statements up to the end of
// input. An empty input yields an empty program.
func (p *Parser) ParseProgram(input string) ([]ast.Fragment, error) {
	if err := p.checkInput(input); err != nil {
		return nil, err
	}
	g := p.grammar(input)
	timer := p.logger.StartTimer("parse program").WithLevel(tplog.LevelDebug)

	var program []ast.Fragment
	for {
		if _, err := g.tz.Peek(); err != nil {
			if tperror.HasCode(err, tperror.CodeEndOfInput) {
				break
			}
			p.logStats(g, timer, err)
			return nil, err
		}

		// faults end the loop, so only sawEOF carries over: an earlier
		// statement that looked ahead to the end covers this one's tokens
		r := g.Statement()
		if err := p.failure(g, r, "statement", input); err != nil {
			err = err.WithDetail("statement", len(program)+1)
			p.logStats(g, timer, err)
			return nil, err
		}
		program = append(program, r.Fragment())
	}

	p.logStats(g, timer.WithField("statements", len(program)), nil)
	return program, nil
}

// Tokens lexes input without parsing it
func (p *Parser) Tokens(input string) ([]token.Token, error) {
	if err := p.checkInput(input); err != nil {
		return nil, err
	}
	return lexer.Tokenize(input)
}

func (p *Parser) grammar(input string) *Grammar {
	tz := tokenizer.New(lexer.New(input))
	return NewGrammar(tz, p.options)
}

func (p *Parser) checkInput(input string) error {
	if len(input) > p.options.MaxInputLength {
		return tperror.Newf("input exceeds maximum length: %d > %d", len(input), p.options.MaxInputLength).
			WithCode(tperror.CodeInvalidInput).
			WithDetail("length", len(input)).
			WithDetail("max_input_length", p.options.MaxInputLength)
	}
	return nil
}

// finish turns the outcome of a single rule run into a fragment or an error
func (p *Parser) finish(g *Grammar, r Result, rule, input string) (ast.Fragment, error) {
	if err := p.failure(g, r, rule, input); err != nil {
		return nil, err
	}

	next, err := g.tz.Peek()
	switch {
	case err == nil && g.SawEndOfInput():
		// a longer alternative ran out of input before this shorter one won
		return nil, tperror.Newf("unexpected end of input while parsing %s", rule).
			WithCode(tperror.CodeEndOfInput).
			WithOperation("parser.Parse").
			WithDetail("offset", len(input))
	case err == nil:
		return nil, positioned(
			tperror.Newf("unexpected %s after %s", next, rule).WithCode(tperror.CodeTrailingInput),
			next.Pos).
			WithOperation("parser.Parse").
			WithDetail("token", next.String())
	case tperror.HasCode(err, tperror.CodeEndOfInput):
		return r.Fragment(), nil
	default:
		return nil, err
	}
}

// failure returns the error for a rule run that hit a fault or did not match
func (p *Parser) failure(g *Grammar, r Result, rule, input string) *tperror.Error {
	if fault := g.Fault(); fault != nil {
		return tperror.Wrap(fault, fmt.Sprintf("cannot parse %s", rule)).WithOperation("parser.Parse")
	}
	if r.OK() {
		return nil
	}

	if g.SawEndOfInput() {
		return tperror.Newf("unexpected end of input while parsing %s", rule).
			WithCode(tperror.CodeEndOfInput).
			WithOperation("parser.Parse").
			WithDetail("offset", len(input))
	}

	next, err := g.tz.Peek()
	if err != nil {
		// cannot happen without a recorded fault or end of input
		return tperror.Wrap(err, fmt.Sprintf("no valid %s", rule)).WithCode(tperror.CodeNoMatch)
	}
	return positioned(
		tperror.Newf("no valid %s at %s", rule, next.Pos).WithCode(tperror.CodeNoMatch),
		next.Pos).
		WithOperation("parser.Parse").
		WithDetail("token", next.String())
}

func positioned(e *tperror.Error, pos token.Position) *tperror.Error {
	return e.WithDetail("line", pos.Line).
		WithDetail("column", pos.Column).
		WithDetail("offset", pos.Offset)
}

func (p *Parser) logStats(g *Grammar, timer *tplog.Timer, err error) {
	ts := g.tz.Stats()
	gs := g.Stats()
	timer = timer.WithFields(tplog.Fields{
		"tokens":     g.tz.Buffered(),
		"pulls":      ts.Pulls,
		"resets":     ts.Resets,
		"rule_calls": gs.RuleCalls,
		"max_depth":  gs.MaxDepth,
	})
	if err != nil {
		timer = timer.WithField("success", false).WithField("error_code", tperror.GetCode(err).String())
	}
	timer.Stop()
}
