// ============================================================================
// toypeg - PEG parser toolkit
// ============================================================================
//
// Package:     token
// Description: Token kinds, tokens and match criteria
// Created:     2026-10-15
// License:     MIT
// ============================================================================

// Package token defines the classified tokens exchanged between the lexer,
// the lookahead tokenizer and the grammar engine.
package token

import (
	"fmt"
	"strconv"
)

// Kind is the classification tag of a token
type Kind int

const (
	// Invalid is the zero Kind; no lexer produces it
	Invalid Kind = iota

	Name   // answer, x_1
	Number // 42
	If     // if
	Colon  // :
	Equal  // =
	Plus   // +
	Minus  // -
	Mult   // *
	Div    // /

	// Punct covers punctuation without a dedicated kind, "(" and ")".
	// Grammar rules match it by text.
	Punct
)

// String returns the tag name of the kind
func (k Kind) String() string {
	switch k {
	case Name:
		return "NAME"
	case Number:
		return "NUMBER"
	case If:
		return "IF"
	case Colon:
		return "COLON"
	case Equal:
		return "EQUAL"
	case Plus:
		return "PLUS"
	case Minus:
		return "MINUS"
	case Mult:
		return "MULT"
	case Div:
		return "DIV"
	case Punct:
		return "PUNCT"
	default:
		return "INVALID"
	}
}

// Position locates a token in its source text
type Position struct {
	Offset int `json:"offset" yaml:"offset"` // Byte offset (0-based)
	Line   int `json:"line" yaml:"line"`     // Line number (1-based)
	Column int `json:"column" yaml:"column"` // Column number (1-based)
}

// String returns "line:column"
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid reports whether the position was set by a lexer
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Token is an immutable classified piece of source text
type Token struct {
	Kind Kind
	Text string
	Pos  Position
}

// New creates a token without position information
func New(kind Kind, text string) Token {
	return Token{Kind: kind, Text: text}
}

// String returns KIND("text")
func (t Token) String() string {
	return t.Kind.String() + "(" + strconv.Quote(t.Text) + ")"
}

// Criterion selects tokens either by kind or by literal text
type Criterion struct {
	kind Kind
	text string
}

// OfKind matches tokens of kind k
func OfKind(k Kind) Criterion {
	return Criterion{kind: k}
}

// Literal matches tokens whose text is exactly text
func Literal(text string) Criterion {
	return Criterion{text: text}
}

// Matches reports whether t's kind equals the criterion's kind or t's text
// equals the criterion's text
func (c Criterion) Matches(t Token) bool {
	if c.kind != Invalid && t.Kind == c.kind {
		return true
	}
	return c.text != "" && t.Text == c.text
}

// String describes the criterion for diagnostics
func (c Criterion) String() string {
	if c.kind != Invalid {
		return c.kind.String()
	}
	return strconv.Quote(c.text)
}
