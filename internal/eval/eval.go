// ============================================================================
// toypeg - PEG parser toolkit
// ============================================================================
//
// Package:     eval
// Description: Integer interpreter for parsed statements
// Created:     2026-10-15
// License:     MIT
// ============================================================================

// Package eval executes syntax trees over 64-bit integers. Assignments bind
// names in the interpreter's environment, which persists across calls.
package eval

import (
	"context"
	"math"
	"sort"
	"strconv"
	"sync"

	tperror "github.com/msto63/toypeg/pkg/core/error"
	tplog "github.com/msto63/toypeg/pkg/core/log"

	"github.com/msto63/toypeg/internal/ast"
	"github.com/msto63/toypeg/internal/token"
)

// Value is the outcome of evaluating a statement. An if statement whose
// condition is zero has no value.
type Value struct {
	Int   int64 `json:"int"`
	Valid bool  `json:"valid"`
}

// Of returns a valid value holding i
func Of(i int64) Value {
	return Value{Int: i, Valid: true}
}

func (v Value) String() string {
	if !v.Valid {
		return "<none>"
	}
	return strconv.FormatInt(v.Int, 10)
}

// Options configures the interpreter
type Options struct {
	Logger *tplog.Logger
}

// Interpreter evaluates fragments against a variable environment. It is safe
// for concurrent use.
type Interpreter struct {
	logger *tplog.Logger
	mutex  sync.RWMutex
	vars   map[string]int64
}

// New creates an interpreter with an empty environment
func New(opts Options) *Interpreter {
	if opts.Logger == nil {
		opts.Logger = tplog.GetDefault()
	}
	return &Interpreter{
		logger: opts.Logger.WithField("component", "eval"),
		vars:   make(map[string]int64),
	}
}

// Eval evaluates a single statement
func (in *Interpreter) Eval(ctx context.Context, f ast.Fragment) (Value, error) {
	if f == nil {
		return Value{}, tperror.New("nothing to evaluate").
			WithCode(tperror.CodeInvalidInput).
			WithOperation("eval.Eval")
	}
	if errs := ast.Validate(f); len(errs) > 0 {
		return Value{}, tperror.Wrap(errs[0], "malformed tree").
			WithCode(tperror.CodeInvalidInput).
			WithOperation("eval.Eval").
			WithDetail("problems", len(errs))
	}
	in.mutex.Lock()
	defer in.mutex.Unlock()
	return in.eval(ctx, f)
}

// Run evaluates statements in order and returns the value of the last one
func (in *Interpreter) Run(ctx context.Context, program []ast.Fragment) (Value, error) {
	var last Value
	for i, f := range program {
		v, err := in.Eval(ctx, f)
		if err != nil {
			if e, ok := err.(*tperror.Error); ok {
				e.WithDetail("statement", i+1)
			}
			return Value{}, err
		}
		last = v
	}
	return last, nil
}

// Get returns the value bound to name
func (in *Interpreter) Get(name string) (int64, bool) {
	in.mutex.RLock()
	defer in.mutex.RUnlock()
	v, ok := in.vars[name]
	return v, ok
}

// Set binds name to v
func (in *Interpreter) Set(name string, v int64) {
	in.mutex.Lock()
	defer in.mutex.Unlock()
	in.vars[name] = v
}

// Vars returns a copy of the environment
func (in *Interpreter) Vars() map[string]int64 {
	in.mutex.RLock()
	defer in.mutex.RUnlock()
	out := make(map[string]int64, len(in.vars))
	for k, v := range in.vars {
		out[k] = v
	}
	return out
}

// Names returns the bound names in sorted order
func (in *Interpreter) Names() []string {
	in.mutex.RLock()
	defer in.mutex.RUnlock()
	names := make([]string, 0, len(in.vars))
	for k := range in.vars {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Reset clears the environment
func (in *Interpreter) Reset() {
	in.mutex.Lock()
	defer in.mutex.Unlock()
	in.vars = make(map[string]int64)
}

func (in *Interpreter) eval(ctx context.Context, f ast.Fragment) (Value, error) {
	if err := ctx.Err(); err != nil {
		return Value{}, tperror.Wrap(err, "evaluation cancelled").WithOperation("eval.Eval")
	}
	switch v := f.(type) {
	case *ast.Node:
		return in.node(ctx, v)
	case ast.Leaf:
		return in.leaf(v)
	default:
		return Value{}, tperror.Newf("unknown fragment %T", f).
			WithCode(tperror.CodeInternal).
			WithOperation("eval.Eval")
	}
}

func (in *Interpreter) node(ctx context.Context, n *ast.Node) (Value, error) {
	switch n.Kind() {
	case ast.KindAssign:
		target := n.Child(0).(ast.Leaf)
		v, err := in.eval(ctx, n.Child(1))
		if err != nil {
			return Value{}, err
		}
		if !v.Valid {
			return Value{}, positioned(tperror.Newf("cannot assign %s: value is undefined", target.Token.Text).
				WithCode(tperror.CodeInvalidInput), target.Token)
		}
		in.vars[target.Token.Text] = v.Int
		in.logger.Debug("variable assigned", tplog.Fields{"name": target.Token.Text, "value": v.Int})
		return v, nil

	case ast.KindIf:
		cond, err := in.eval(ctx, n.Child(0))
		if err != nil {
			return Value{}, err
		}
		if !cond.Valid || cond.Int == 0 {
			return Value{}, nil
		}
		return in.eval(ctx, n.Child(1))
	}

	left, err := in.operand(ctx, n.Child(0))
	if err != nil {
		return Value{}, err
	}
	right, err := in.operand(ctx, n.Child(1))
	if err != nil {
		return Value{}, err
	}
	r, aerr := arith(n.Kind(), left, right)
	if aerr != nil {
		return Value{}, positioned(aerr, firstToken(n))
	}
	return Of(r), nil
}

// operand evaluates an arithmetic operand, which must have a value
func (in *Interpreter) operand(ctx context.Context, f ast.Fragment) (int64, error) {
	v, err := in.eval(ctx, f)
	if err != nil {
		return 0, err
	}
	if !v.Valid {
		return 0, tperror.New("operand has no value").
			WithCode(tperror.CodeInvalidInput).
			WithOperation("eval.Eval")
	}
	return v.Int, nil
}

func (in *Interpreter) leaf(l ast.Leaf) (Value, error) {
	switch l.Token.Kind {
	case token.Number:
		i, err := strconv.ParseInt(l.Token.Text, 10, 64)
		if err != nil {
			return Value{}, positioned(tperror.Newf("number %s out of range", l.Token.Text).
				WithCode(tperror.CodeOverflow), l.Token)
		}
		return Of(i), nil
	case token.Name:
		v, ok := in.vars[l.Token.Text]
		if !ok {
			return Value{}, positioned(tperror.Newf("undefined name %s", l.Token.Text).
				WithCode(tperror.CodeUndefinedName), l.Token).
				WithDetail("name", l.Token.Text)
		}
		return Of(v), nil
	default:
		return Value{}, positioned(tperror.Newf("unexpected %s in tree", l.Token).
			WithCode(tperror.CodeInvalidInput), l.Token)
	}
}

func arith(kind ast.Kind, a, b int64) (int64, *tperror.Error) {
	overflow := func() *tperror.Error {
		return tperror.Newf("%s of %d and %d overflows", kind, a, b).WithCode(tperror.CodeOverflow)
	}

	switch kind {
	case ast.KindAdd:
		if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
			return 0, overflow()
		}
		return a + b, nil
	case ast.KindSub:
		if (b < 0 && a > math.MaxInt64+b) || (b > 0 && a < math.MinInt64+b) {
			return 0, overflow()
		}
		return a - b, nil
	case ast.KindMul:
		if a == 0 || b == 0 {
			return 0, nil
		}
		r := a * b
		if r/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
			return 0, overflow()
		}
		return r, nil
	case ast.KindDiv:
		if b == 0 {
			return 0, tperror.Newf("division of %d by zero", a).WithCode(tperror.CodeDivisionByZero)
		}
		if a == math.MinInt64 && b == -1 {
			return 0, overflow()
		}
		return a / b, nil
	default:
		return 0, tperror.Newf("unknown operator %s", kind).WithCode(tperror.CodeInternal)
	}
}

func firstToken(n *ast.Node) token.Token {
	var first token.Token
	ast.Walk(n, func(f ast.Fragment) bool {
		if l, ok := f.(ast.Leaf); ok && first.Text == "" {
			first = l.Token
		}
		return first.Text == ""
	})
	return first
}

func positioned(e *tperror.Error, tok token.Token) *tperror.Error {
	e = e.WithOperation("eval.Eval")
	if !tok.Pos.IsValid() {
		return e
	}
	return e.WithDetail("line", tok.Pos.Line).WithDetail("column", tok.Pos.Column)
}
