// ============================================================================
// toypeg - PEG parser toolkit
// ============================================================================
//
// Package:     error
// Description: Error code definitions
// Created:     2026-10-15
// License:     MIT
// ============================================================================

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeInvalidInput Code = "INVALID_INPUT"

	// Tokenizer and grammar
	CodeLexical       Code = "LEXICAL"
	CodeNoMatch       Code = "NO_MATCH"
	CodeEndOfInput    Code = "END_OF_INPUT"
	CodeInvalidMark   Code = "INVALID_MARK"
	CodeTrailingInput Code = "TRAILING_INPUT"
	CodeDepthExceeded Code = "DEPTH_EXCEEDED"

	// Evaluation
	CodeUndefinedName  Code = "UNDEFINED_NAME"
	CodeDivisionByZero Code = "DIVISION_BY_ZERO"
	CodeOverflow       Code = "OVERFLOW"

	// Configuration
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeMissingConfig Code = "MISSING_CONFIG"
	CodeInvalidConfig Code = "INVALID_CONFIG"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known valid code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeInvalidInput,
		CodeLexical, CodeNoMatch, CodeEndOfInput, CodeInvalidMark, CodeTrailingInput, CodeDepthExceeded,
		CodeUndefinedName, CodeDivisionByZero, CodeOverflow,
		CodeConfigError, CodeMissingConfig, CodeInvalidConfig:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeLexical, CodeNoMatch, CodeEndOfInput, CodeTrailingInput, CodeDepthExceeded:
		return "syntax"
	case CodeInvalidMark:
		return "tokenizer"
	case CodeUndefinedName, CodeDivisionByZero, CodeOverflow:
		return "evaluation"
	case CodeConfigError, CodeMissingConfig, CodeInvalidConfig:
		return "configuration"
	default:
		return "generic"
	}
}

// ExitCode maps the code to a process exit status for the CLI
func (c Code) ExitCode() int {
	switch c.Category() {
	case "syntax":
		return 2
	case "evaluation":
		return 3
	case "configuration":
		return 4
	default:
		return 1
	}
}
