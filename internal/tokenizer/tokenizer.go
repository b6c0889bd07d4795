// ============================================================================
// toypeg - PEG parser toolkit
// ============================================================================
//
// Package:     tokenizer
// Description: Lookahead token buffer with mark/reset backtracking
// Created:     2026-10-15
// License:     MIT
// ============================================================================

// Package tokenizer wraps a forward-only token source with a buffer that
// keeps every token ever pulled, so that a parser can save its position with
// Mark and return to it with Reset as often as it likes. Re-reading buffered
// tokens never touches the source again.
//
// A Tokenizer is owned by a single goroutine.
package tokenizer

import (
	"io"
	"sync/atomic"

	tperror "github.com/msto63/toypeg/pkg/core/error"

	"github.com/msto63/toypeg/internal/token"
)

// Source produces tokens one at a time. Next returns io.EOF once the source is
// exhausted; any other error is reported to the caller of Peek or Consume.
type Source interface {
	Next() (token.Token, error)
}

// SourceFunc adapts a function to the Source interface
type SourceFunc func() (token.Token, error)

// Next calls f
func (f SourceFunc) Next() (token.Token, error) {
	return f()
}

// FromSlice returns a Source yielding the given tokens in order
func FromSlice(tokens []token.Token) Source {
	i := 0
	return SourceFunc(func() (token.Token, error) {
		if i >= len(tokens) {
			return token.Token{}, io.EOF
		}
		tok := tokens[i]
		i++
		return tok, nil
	})
}

// Mark is a saved cursor position. It is only meaningful to the Tokenizer
// that produced it; the zero Mark is never valid.
type Mark struct {
	owner uint64
	pos   int
}

// Stats counts tokenizer activity
type Stats struct {
	Pulls    int `json:"pulls"`
	Peeks    int `json:"peeks"`
	Consumes int `json:"consumes"`
	Resets   int `json:"resets"`
}

var lastID atomic.Uint64

// Tokenizer presents a token stream with unbounded backward seek
type Tokenizer struct {
	id     uint64
	src    Source
	buffer []token.Token
	pos    int

	// set once the source reported io.EOF or an error; it is not pulled again
	done   bool
	srcErr error

	stats Stats
}

// New creates a tokenizer over src
func New(src Source) *Tokenizer {
	return &Tokenizer{
		id:  lastID.Add(1),
		src: src,
	}
}

// Mark returns the current cursor position
func (t *Tokenizer) Mark() Mark {
	return Mark{owner: t.id, pos: t.pos}
}

// Reset moves the cursor back (or forward) to m. It fails with INVALID_MARK
// if m was not taken on this tokenizer or lies beyond the buffered tokens; the
// cursor is left unchanged in that case.
func (t *Tokenizer) Reset(m Mark) error {
	if m.owner != t.id {
		return tperror.New("mark does not belong to this tokenizer").
			WithCode(tperror.CodeInvalidMark).
			WithOperation("tokenizer.Reset")
	}
	if m.pos < 0 || m.pos > len(t.buffer) {
		return tperror.Newf("mark %d outside buffer of %d tokens", m.pos, len(t.buffer)).
			WithCode(tperror.CodeInvalidMark).
			WithOperation("tokenizer.Reset").
			WithDetail("mark", m.pos).
			WithDetail("buffered", len(t.buffer))
	}
	t.pos = m.pos
	t.stats.Resets++
	return nil
}

// Peek returns the token at the cursor without advancing. When the cursor is
// at the end of the buffer exactly one token is pulled from the source. An
// exhausted source yields an END_OF_INPUT error.
func (t *Tokenizer) Peek() (token.Token, error) {
	t.stats.Peeks++
	return t.current()
}

// Consume returns the token at the cursor and advances past it
func (t *Tokenizer) Consume() (token.Token, error) {
	tok, err := t.current()
	if err != nil {
		return token.Token{}, err
	}
	t.pos++
	t.stats.Consumes++
	return tok, nil
}

// Cursor returns the index of the next token to be read
func (t *Tokenizer) Cursor() int {
	return t.pos
}

// Buffered returns the number of tokens pulled from the source so far
func (t *Tokenizer) Buffered() int {
	return len(t.buffer)
}

// Tokens returns a copy of the buffered tokens
func (t *Tokenizer) Tokens() []token.Token {
	out := make([]token.Token, len(t.buffer))
	copy(out, t.buffer)
	return out
}

// Exhausted reports whether the source has signalled its end (or failed)
func (t *Tokenizer) Exhausted() bool {
	return t.done
}

// Stats returns the activity counters
func (t *Tokenizer) Stats() Stats {
	return t.stats
}

func (t *Tokenizer) current() (token.Token, error) {
	if t.pos < len(t.buffer) {
		return t.buffer[t.pos], nil
	}
	if !t.done {
		t.pull()
	}
	if t.pos < len(t.buffer) {
		return t.buffer[t.pos], nil
	}
	if t.srcErr != nil {
		return token.Token{}, t.srcErr
	}
	return token.Token{}, tperror.New("unexpected end of input").
		WithCode(tperror.CodeEndOfInput).
		WithOperation("tokenizer.Peek").
		WithDetail("index", t.pos)
}

func (t *Tokenizer) pull() {
	t.stats.Pulls++
	tok, err := t.src.Next()
	switch {
	case err == io.EOF:
		t.done = true
	case err != nil:
		t.done = true
		t.srcErr = err
	default:
		t.buffer = append(t.buffer, tok)
	}
}
