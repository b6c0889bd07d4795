// ============================================================================
// toypeg - PEG parser toolkit
// ============================================================================
//
// Package:     error
// Description: Error severity levels
// Created:     2026-10-15
// License:     MIT
// ============================================================================

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow is a user input problem: syntax errors, undefined names
	SeverityLow Severity = iota

	// SeverityMedium is the default for errors without a more specific code
	SeverityMedium

	// SeverityHigh marks configuration and environment problems
	SeverityHigh

	// SeverityCritical marks broken internal invariants
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// GetSeverityFromCode determines appropriate severity level based on error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeInternal, CodeInvalidMark:
		return SeverityCritical

	case CodeConfigError, CodeMissingConfig, CodeInvalidConfig:
		return SeverityHigh

	case CodeInvalidInput, CodeLexical, CodeNoMatch, CodeEndOfInput, CodeTrailingInput,
		CodeDepthExceeded, CodeUndefinedName, CodeDivisionByZero, CodeOverflow:
		return SeverityLow

	default:
		return SeverityMedium
	}
}
