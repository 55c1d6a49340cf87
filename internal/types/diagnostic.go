package types

import "fmt"

// Severity classifies a diagnostic.
type Severity string

const (
	// SeverityWarning marks a recoverable issue; lenient mode continues.
	SeverityWarning Severity = "warning"

	// SeverityError marks an issue that strict mode treats as fatal.
	SeverityError Severity = "error"
)

// Diagnostic codes for definition and rule validation.
const (
	CodeBadParamCount    = "bad_param_count"
	CodeUnknownKind      = "unknown_kind"
	CodeBadNumber        = "bad_number"
	CodeNonMonotonic     = "non_monotonic_params"
	CodeNonPositiveWidth = "non_positive_width"
	CodeDegenerateRamp   = "degenerate_ramp"
	CodeShortLine        = "short_line"
	CodeMalformedRule    = "malformed_rule"
	CodeUnknownSet       = "unknown_set_reference"
	CodeUnboundInput     = "unbound_input_set"
)

// Diagnostic is a structured validation finding collected while loading
// definitions or rules, or while running inference in lenient mode. It is
// data, not an error: lenient mode accumulates diagnostics and proceeds,
// strict mode turns error-severity diagnostics into failures.
type Diagnostic struct {
	// Severity is warning or error.
	Severity Severity `json:"severity"`

	// Code is a stable machine-readable identifier.
	Code string `json:"code"`

	// Line is the 1-based source line, when the finding came from a file.
	Line int `json:"line,omitempty"`

	// Subject names what the finding is about (a set name, rule text, term).
	Subject string `json:"subject,omitempty"`

	// Message is the human-readable explanation.
	Message string `json:"message"`
}

func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("%s [%s] line %d: %s", d.Severity, d.Code, d.Line, d.Message)
	}
	return fmt.Sprintf("%s [%s]: %s", d.Severity, d.Code, d.Message)
}

// HasErrors reports whether any diagnostic in the slice is error severity.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
