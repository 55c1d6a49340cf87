package formatter

import (
	"encoding/json"
	"io"
)

// JSON writes a value as indented JSON.
type JSON struct {
	// Indent is the indentation string (default two spaces).
	Indent string
}

// NewJSON creates a JSON formatter with default indentation.
func NewJSON() *JSON {
	return &JSON{Indent: "  "}
}

// Format writes v to w as one indented JSON document.
func (f *JSON) Format(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false) // Don't escape < > & in rule text
	encoder.SetIndent("", f.Indent)
	return encoder.Encode(v)
}

// JSONL writes values as JSON Lines: one compact JSON object per line.
type JSONL struct{}

// NewJSONL creates a JSONL formatter.
func NewJSONL() *JSONL {
	return &JSONL{}
}

// Format writes v to w as a single JSON line.
func (f *JSONL) Format(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	return encoder.Encode(v)
}
