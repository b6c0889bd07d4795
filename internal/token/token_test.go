package token

import "testing"

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{Name, "NAME"},
		{Number, "NUMBER"},
		{If, "IF"},
		{Colon, "COLON"},
		{Equal, "EQUAL"},
		{Plus, "PLUS"},
		{Minus, "MINUS"},
		{Mult, "MULT"},
		{Div, "DIV"},
		{Punct, "PUNCT"},
		{Invalid, "INVALID"},
		{Kind(99), "INVALID"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCriterion_Matches(t *testing.T) {
	plus := New(Plus, "+")
	lparen := New(Punct, "(")
	name := New(Name, "x")

	tests := []struct {
		name      string
		criterion Criterion
		tok       Token
		want      bool
	}{
		{"kind match", OfKind(Name), name, true},
		{"kind mismatch", OfKind(Number), name, false},
		{"text match on operator", Literal("+"), plus, true},
		{"text match on punctuation", Literal("("), lparen, true},
		{"text mismatch", Literal(")"), lparen, false},
		{"kind criterion ignores text", OfKind(Plus), New(Name, "+"), false},
		{"text criterion ignores kind", Literal("x"), New(Number, "x"), true},
		{"empty literal never matches empty text", Literal(""), New(Name, ""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.criterion.Matches(tt.tok); got != tt.want {
				t.Errorf("Matches(%v) = %v, want %v", tt.tok, got, tt.want)
			}
		})
	}
}

func TestToken_String(t *testing.T) {
	if got := New(Name, "answer").String(); got != `NAME("answer")` {
		t.Errorf("String() = %s", got)
	}
	if got := OfKind(Colon).String(); got != "COLON" {
		t.Errorf("Criterion.String() = %s", got)
	}
	if got := Literal(")").String(); got != `")"` {
		t.Errorf("Criterion.String() = %s", got)
	}
}

func TestPosition(t *testing.T) {
	p := Position{Offset: 4, Line: 2, Column: 3}
	if p.String() != "2:3" {
		t.Errorf("String() = %s", p.String())
	}
	if !p.IsValid() || (Position{}).IsValid() {
		t.Error("IsValid() mismatch")
	}
}
