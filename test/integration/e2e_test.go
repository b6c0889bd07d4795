package integration

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	tperror "github.com/msto63/toypeg/pkg/core/error"

	"github.com/msto63/toypeg/internal/ast"
	"github.com/msto63/toypeg/internal/lexer"
	"github.com/msto63/toypeg/internal/parser"
	"github.com/msto63/toypeg/internal/render"
	"github.com/msto63/toypeg/internal/tokenizer"
)

const program = `
limit = 10
x = (limit - 4) * 7
if x - 42 : answer = x
y = 100 / 7 / 2
`

// TestE2E_ProgramWorkflow drives one program through every stage:
// 1. Lex the source
// 2. Parse it statement by statement on a shared tokenizer
// 3. Parse it again through the Parser facade
// 4. Evaluate it
// 5. Render the trees in every format
func TestE2E_ProgramWorkflow(t *testing.T) {
	logTestStart(t, "E2E", "Program Workflow")
	p, in := newPipeline(t)

	ctx, cancel := testContext(t, 10*time.Second)
	defer cancel()

	t.Log("Step 1: Lexing...")
	toks, err := lexer.Tokenize(program)
	requireNoError(t, err, "Tokenize failed")
	requireEqual(t, 27, len(toks), "token count")
	requireEqual(t, "IF", toks[12].Kind.String(), "keyword classified")

	t.Log("Step 2: Parsing with the grammar engine...")
	tz := tokenizer.New(tokenizer.FromSlice(toks))
	g := parser.NewGrammar(tz, parser.Options{Logger: testLogger(t)})
	var direct []ast.Fragment
	for !tz.Exhausted() || tz.Cursor() < tz.Buffered() {
		r := g.Statement()
		if !r.OK() {
			break
		}
		direct = append(direct, r.Fragment())
	}
	requireEqual(t, 4, len(direct), "statements from the grammar")
	requireTrue(t, g.SawEndOfInput(), "grammar should have seen the end of input")
	requireTrue(t, g.Fault() == nil, "no fault expected")

	t.Log("Step 3: Parsing with the parser...")
	parsed, err := p.ParseProgram(program)
	requireNoError(t, err, "ParseProgram failed")
	requireEqual(t, len(direct), len(parsed), "statement count")
	for i := range parsed {
		requireTrue(t, ast.Equal(direct[i], parsed[i]), "trees differ at statement "+parsed[i].String())
		requireTrue(t, len(ast.Validate(parsed[i])) == 0, "tree should validate")
	}
	requireEqual(t, "(if (sub x 42) (assign answer x))", parsed[2].String(), "if statement")
	requireEqual(t, "(assign y (div 100 (div 7 2)))", parsed[3].String(), "right-associative division")

	t.Log("Step 4: Evaluating...")
	v, err := in.Run(ctx, parsed)
	requireNoError(t, err, "Run failed")
	requireEqual(t, int64(33), v.Int, "last value")
	_, assigned := in.Get("answer")
	requireTrue(t, !assigned, "guard x - 42 is zero, answer must stay unbound")
	x, _ := in.Get("x")
	requireEqual(t, int64(42), x, "x")

	t.Log("Step 5: Rendering...")
	for _, format := range render.Formats() {
		r, err := render.New(format, false)
		requireNoError(t, err, "render.New failed")
		var buf bytes.Buffer
		requireNoError(t, r.Program(&buf, parsed), "render "+string(format))
		requireTrue(t, buf.Len() > 0, "empty output for "+string(format))

		switch format {
		case render.FormatJSON:
			var docs []map[string]interface{}
			requireNoError(t, json.Unmarshal(buf.Bytes(), &docs), "JSON output")
			requireEqual(t, 4, len(docs), "JSON documents")
		case render.FormatYAML:
			var docs []map[string]interface{}
			requireNoError(t, yaml.Unmarshal(buf.Bytes(), &docs), "YAML output")
			requireEqual(t, "assign", docs[0]["kind"], "YAML kind")
		case render.FormatSExpr:
			requireEqual(t, 4, strings.Count(buf.String(), "\n"), "one line per statement")
		}
	}
}

// TestE2E_ErrorWorkflow checks that every failure class surfaces with its
// code and a position
func TestE2E_ErrorWorkflow(t *testing.T) {
	logTestStart(t, "E2E", "Error Workflow")
	p, in := newPipeline(t)

	ctx, cancel := testContext(t, 10*time.Second)
	defer cancel()

	tests := []struct {
		name   string
		source string
		code   tperror.Code
		line   int
	}{
		{"lexical", "a = 1\nb = 2 # 3", tperror.CodeLexical, 2},
		{"no match", "a = 1\n) 2", tperror.CodeNoMatch, 2},
		{"end of input", "(1 +", tperror.CodeEndOfInput, 0},
		{"undefined name", "a = 1\nb = c", tperror.CodeUndefinedName, 2},
		{"division by zero", "z = 0\n\n5 / z", tperror.CodeDivisionByZero, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in.Reset()
			program, err := p.ParseProgram(tt.source)
			if err == nil {
				_, err = in.Run(ctx, program)
			}
			requireTrue(t, err != nil, "expected an error")
			requireTrue(t, tperror.HasCode(err, tt.code), "code "+string(tt.code)+" in "+err.Error())
			if tt.line == 0 {
				return
			}
			e, ok := err.(*tperror.Error)
			requireTrue(t, ok, "structured error expected")
			line, _ := e.Detail("line")
			requireEqual(t, tt.line, line, "error line")
		})
	}
}
