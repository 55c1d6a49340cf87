// Package parser provides streaming line parsers for the two fuzzy input
// formats: fuzzy-set definitions and rule text. Both parsers default to the
// lenient behavior of skipping malformed lines while collecting diagnostics;
// strict mode turns the same findings into errors.
package parser

import "fmt"

// Error classification constants for parse errors.
const (
	errClassFormat = "format"
	errClassNumber = "number"
	errClassKind   = "kind"
	errClassArity  = "arity"
	errClassRule   = "rule"
)

// ParseError provides structured error information for input parsing failures.
type ParseError struct {
	Line       int    `json:"line"`
	Message    string `json:"message"`
	RawContent string `json:"raw_content,omitempty"`
	ErrorType  string `json:"error_type"` // "format", "number", "kind", "arity", "rule"
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s (%s)", e.Line, e.Message, e.ErrorType)
}

// truncateForError limits error context to a reasonable size.
func truncateForError(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
