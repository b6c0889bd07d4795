package lexer

import (
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"

	tperror "github.com/msto63/toypeg/pkg/core/error"

	"github.com/msto63/toypeg/internal/token"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []token.Token
	}{
		{
			name:  "assignment",
			input: "answer = 1 + 2",
			want: []token.Token{
				{Kind: token.Name, Text: "answer", Pos: token.Position{Offset: 0, Line: 1, Column: 1}},
				{Kind: token.Equal, Text: "=", Pos: token.Position{Offset: 7, Line: 1, Column: 8}},
				{Kind: token.Number, Text: "1", Pos: token.Position{Offset: 9, Line: 1, Column: 10}},
				{Kind: token.Plus, Text: "+", Pos: token.Position{Offset: 11, Line: 1, Column: 12}},
				{Kind: token.Number, Text: "2", Pos: token.Position{Offset: 13, Line: 1, Column: 14}},
			},
		},
		{
			name:  "if keyword and colon",
			input: "if x: y",
			want: []token.Token{
				{Kind: token.If, Text: "if", Pos: token.Position{Offset: 0, Line: 1, Column: 1}},
				{Kind: token.Name, Text: "x", Pos: token.Position{Offset: 3, Line: 1, Column: 4}},
				{Kind: token.Colon, Text: ":", Pos: token.Position{Offset: 4, Line: 1, Column: 5}},
				{Kind: token.Name, Text: "y", Pos: token.Position{Offset: 6, Line: 1, Column: 7}},
			},
		},
		{
			name:  "parentheses and operators without spaces",
			input: "(a-b)*c/d",
			want: []token.Token{
				{Kind: token.Punct, Text: "(", Pos: token.Position{Offset: 0, Line: 1, Column: 1}},
				{Kind: token.Name, Text: "a", Pos: token.Position{Offset: 1, Line: 1, Column: 2}},
				{Kind: token.Minus, Text: "-", Pos: token.Position{Offset: 2, Line: 1, Column: 3}},
				{Kind: token.Name, Text: "b", Pos: token.Position{Offset: 3, Line: 1, Column: 4}},
				{Kind: token.Punct, Text: ")", Pos: token.Position{Offset: 4, Line: 1, Column: 5}},
				{Kind: token.Mult, Text: "*", Pos: token.Position{Offset: 5, Line: 1, Column: 6}},
				{Kind: token.Name, Text: "c", Pos: token.Position{Offset: 6, Line: 1, Column: 7}},
				{Kind: token.Div, Text: "/", Pos: token.Position{Offset: 7, Line: 1, Column: 8}},
				{Kind: token.Name, Text: "d", Pos: token.Position{Offset: 8, Line: 1, Column: 9}},
			},
		},
		{
			name:  "multiple lines",
			input: "x = 1\n  y",
			want: []token.Token{
				{Kind: token.Name, Text: "x", Pos: token.Position{Offset: 0, Line: 1, Column: 1}},
				{Kind: token.Equal, Text: "=", Pos: token.Position{Offset: 2, Line: 1, Column: 3}},
				{Kind: token.Number, Text: "1", Pos: token.Position{Offset: 4, Line: 1, Column: 5}},
				{Kind: token.Name, Text: "y", Pos: token.Position{Offset: 8, Line: 2, Column: 3}},
			},
		},
		{
			name:  "keyword prefix is a name",
			input: "iffy if_ x1",
			want: []token.Token{
				{Kind: token.Name, Text: "iffy", Pos: token.Position{Offset: 0, Line: 1, Column: 1}},
				{Kind: token.Name, Text: "if_", Pos: token.Position{Offset: 5, Line: 1, Column: 6}},
				{Kind: token.Name, Text: "x1", Pos: token.Position{Offset: 9, Line: 1, Column: 10}},
			},
		},
		{
			name:  "empty input",
			input: "   \t\n",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tokenize(tt.input)
			if err != nil {
				t.Fatalf("Tokenize() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Tokenize() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNext_EndOfInputIsSticky(t *testing.T) {
	l := New("7")

	if tok, err := l.Next(); err != nil || tok.Text != "7" {
		t.Fatalf("Next() = %v, %v", tok, err)
	}
	for i := 0; i < 3; i++ {
		if _, err := l.Next(); err != io.EOF {
			t.Fatalf("Next() #%d error = %v, want io.EOF", i, err)
		}
	}
}

func TestNext_IllegalCharacter(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantBefore int
		wantLine   int
		wantColumn int
	}{
		{"ascii", "x = 1 ? 2", 3, 1, 7},
		{"second line", "x\n  $", 1, 2, 3},
		{"non-ascii", "a € b", 1, 1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			if err == nil {
				t.Fatal("Tokenize() should fail")
			}
			if len(tokens) != tt.wantBefore {
				t.Errorf("got %d tokens before error, want %d", len(tokens), tt.wantBefore)
			}
			if !tperror.HasCode(err, tperror.CodeLexical) {
				t.Errorf("error code = %v, want LEXICAL", tperror.GetCode(err))
			}
			e := err.(*tperror.Error)
			if line, _ := e.Detail("line"); line != tt.wantLine {
				t.Errorf("line = %v, want %d", line, tt.wantLine)
			}
			if col, _ := e.Detail("column"); col != tt.wantColumn {
				t.Errorf("column = %v, want %d", col, tt.wantColumn)
			}
		})
	}
}

func TestNext_ContinuesAfterIllegalCharacter(t *testing.T) {
	l := New("€1")
	if _, err := l.Next(); err == nil {
		t.Fatal("expected error for illegal character")
	}
	tok, err := l.Next()
	if err != nil || tok.Kind != token.Number || tok.Text != "1" {
		t.Errorf("Next() = %v, %v; want NUMBER(1)", tok, err)
	}
}

func TestIsKeyword(t *testing.T) {
	if !IsKeyword("if") {
		t.Error("if should be a keyword")
	}
	if IsKeyword("IF") || IsKeyword("x") {
		t.Error("keywords are lower case only")
	}
}
