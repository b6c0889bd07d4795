package integration

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/msto63/toypeg/internal/ast"
	"github.com/msto63/toypeg/internal/eval"
	"github.com/msto63/toypeg/internal/parser"
)

// ============================================================================
// Pipeline Integration Tests
// ============================================================================

func TestPipeline_Programs(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
		vars   map[string]int64
	}{
		{
			name:   "arithmetic",
			source: "1 + 2 * 3",
			want:   "7",
			vars:   map[string]int64{},
		},
		{
			name:   "right-associative subtraction",
			source: "10 - 4 - 3",
			want:   "9",
			vars:   map[string]int64{},
		},
		{
			name:   "parentheses restore left grouping",
			source: "(10 - 4) - 3",
			want:   "3",
			vars:   map[string]int64{},
		},
		{
			name:   "assignment chain",
			source: "a = 2\nb = a * a\nc = b * b + a",
			want:   "18",
			vars:   map[string]int64{"a": 2, "b": 4, "c": 18},
		},
		{
			name:   "taken if",
			source: "flag = 1\nif flag : out = 5",
			want:   "5",
			vars:   map[string]int64{"flag": 1, "out": 5},
		},
		{
			name:   "skipped if yields no value",
			source: "flag = 0\nif flag : out = 5",
			want:   "<none>",
			vars:   map[string]int64{"flag": 0},
		},
		{
			name:   "nested if",
			source: "if 1 : if 2 : deep = 3",
			want:   "3",
			vars:   map[string]int64{"deep": 3},
		},
		{
			name:   "keyword prefix is a name",
			source: "iffy = 4\niffy",
			want:   "4",
			vars:   map[string]int64{"iffy": 4},
		},
		{
			name:   "empty program",
			source: "  \n ",
			want:   "<none>",
			vars:   map[string]int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, in := newPipeline(t)
			program, err := p.ParseProgram(tt.source)
			requireNoError(t, err, "ParseProgram failed")

			v, err := in.Run(context.Background(), program)
			requireNoError(t, err, "Run failed")
			requireEqual(t, tt.want, v.String(), "value")

			if diff := cmp.Diff(tt.vars, in.Vars()); diff != "" {
				t.Errorf("Vars() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// Each rule entry point agrees with the statement rule on inputs it accepts
func TestPipeline_RuleEntryPoints(t *testing.T) {
	p, _ := newPipeline(t)

	inputs := map[parser.Rule]string{
		parser.RuleAssignment:  "x = 1 + 2",
		parser.RuleIfStatement: "if a : b",
		parser.RuleExpr:        "1 + 2 * 3",
		parser.RuleTerm:        "2 * 3",
		parser.RuleAtom:        "(4)",
	}

	for rule, src := range inputs {
		t.Run(string(rule), func(t *testing.T) {
			viaRule, err := p.ParseRule(src, rule)
			requireNoError(t, err, "ParseRule failed")
			viaStatement, err := p.Parse(src)
			requireNoError(t, err, "Parse failed")
			requireTrue(t, ast.Equal(viaRule, viaStatement), viaRule.String()+" != "+viaStatement.String())
		})
	}
}

// Interpreters are independent; the parser is reusable across them
func TestPipeline_SharedParser(t *testing.T) {
	p, first := newPipeline(t)
	second := eval.New(eval.Options{Logger: testLogger(t)})

	program, err := p.ParseProgram("n = 7")
	requireNoError(t, err, "ParseProgram failed")

	_, err = first.Run(context.Background(), program)
	requireNoError(t, err, "Run failed")

	_, ok := second.Get("n")
	requireTrue(t, !ok, "second interpreter must not see first's bindings")

	again, err := p.ParseProgram("n * 6")
	requireNoError(t, err, "ParseProgram failed")
	v, err := first.Run(context.Background(), again)
	requireNoError(t, err, "Run failed")
	requireEqual(t, int64(42), v.Int, "value")
}
