// ============================================================================
// toypeg - PEG parser toolkit
// ============================================================================
//
// Package:     error
// Description: Structured errors with codes and severity
// Created:     2026-10-15
// License:     MIT
// ============================================================================

/*
Package error provides the structured error type used across toypeg.

Every error carries a Code that classifies it (NO_MATCH, END_OF_INPUT,
LEXICAL, ...), a Severity that drives the log level it is reported at, and a
free-form details map. Position information for parse failures is attached
as the details "line", "column" and "offset".

Errors are wrapped with Wrap, which keeps the code and details of a wrapped
*Error, and are inspected with HasCode and GetCode, which walk the whole
chain via errors.As.

	err := tperror.New("unexpected end of input").
		WithCode(tperror.CodeEndOfInput).
		WithDetail("offset", 12)
*/
package error
