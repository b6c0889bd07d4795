// ============================================================================
// toypeg - PEG parser toolkit
// ============================================================================
//
// Package:     lexer
// Description: Hand-written scanner producing classified tokens on demand
// Created:     2026-10-15
// License:     MIT
// ============================================================================

// Package lexer converts source text into tokens. A Lexer is a pull source:
// each call to Next scans exactly one more token.
package lexer

import (
	"io"
	"unicode/utf8"

	tperror "github.com/msto63/toypeg/pkg/core/error"

	"github.com/msto63/toypeg/internal/token"
)

// Lexer performs lexical analysis of a source string
type Lexer struct {
	input    string
	position int  // current position in input (points to current char)
	readPos  int  // current reading position (after current char)
	ch       byte // current char under examination, 0 at end
	line     int
	column   int
}

// New creates a new lexer for the given input
func New(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
	}
	l.readChar()
	return l
}

// Next returns the next token. It returns io.EOF once the input is exhausted
// and a LEXICAL error for a character no token starts with.
func (l *Lexer) Next() (token.Token, error) {
	l.skipWhitespace()

	pos := token.Position{Offset: l.position, Line: l.line, Column: l.column}

	if l.position >= len(l.input) {
		return token.Token{}, io.EOF
	}

	var kind token.Kind
	switch l.ch {
	case '=':
		kind = token.Equal
	case '+':
		kind = token.Plus
	case '-':
		kind = token.Minus
	case '*':
		kind = token.Mult
	case '/':
		kind = token.Div
	case ':':
		kind = token.Colon
	case '(', ')':
		kind = token.Punct
	default:
		if isLetter(l.ch) {
			text := l.readIdentifier()
			return token.Token{Kind: lookupIdent(text), Text: text, Pos: pos}, nil
		}
		if isDigit(l.ch) {
			return token.Token{Kind: token.Number, Text: l.readNumber(), Pos: pos}, nil
		}
		return token.Token{}, l.illegal(pos)
	}

	tok := token.Token{Kind: kind, Text: string(l.ch), Pos: pos}
	l.readChar()
	return tok, nil
}

// Tokenize returns all tokens of the input
func Tokenize(input string) ([]token.Token, error) {
	l := New(input)
	var tokens []token.Token
	for {
		tok, err := l.Next()
		if err == io.EOF {
			return tokens, nil
		}
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
	}
}

func (l *Lexer) illegal(pos token.Position) error {
	r, size := utf8.DecodeRuneInString(l.input[l.position:])
	for i := 0; i < size; i++ {
		l.readChar()
	}
	return tperror.Newf("illegal character %q at line %d, column %d", r, pos.Line, pos.Column).
		WithCode(tperror.CodeLexical).
		WithOperation("lexer.Next").
		WithDetail("line", pos.Line).
		WithDetail("column", pos.Column).
		WithDetail("offset", pos.Offset)
}

// readChar reads the next character and advances position
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}

	if l.position < len(l.input) && l.readPos > 0 && l.input[l.position] == '\n' {
		l.line++
		l.column = 0
	}
	l.position = l.readPos
	l.readPos++
	l.column++
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

func (l *Lexer) readNumber() string {
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

func (l *Lexer) skipWhitespace() {
	for l.position < len(l.input) && (l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r') {
		l.readChar()
	}
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

var keywords = map[string]token.Kind{
	"if": token.If,
}

// lookupIdent classifies an identifier as keyword or name
func lookupIdent(ident string) token.Kind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return token.Name
}

// IsKeyword reports whether s is reserved
func IsKeyword(s string) bool {
	_, ok := keywords[s]
	return ok
}
