// Package types defines the shared data structures for the fuzzy inference
// pipeline: parsed rules, diagnostics, and sentinel errors.
package types

// Combinator identifies how a rule term is folded into the antecedent
// accumulator.
type Combinator string

const (
	// OpNone marks the first term of an antecedent chain; its degree seeds
	// the accumulator directly.
	OpNone Combinator = ""

	// OpAnd combines a term via fuzzy AND (minimum).
	OpAnd Combinator = "AND"

	// OpOr combines a term via fuzzy OR (maximum).
	OpOr Combinator = "OR"
)

// Term is one antecedent entry of a parsed rule: a fuzzy-set name and the
// combinator that joins it to the preceding terms.
type Term struct {
	// Name is the referenced fuzzy-set name.
	Name string `json:"name"`

	// Op is the combinator preceding this term (OpNone for the first term).
	Op Combinator `json:"op,omitempty"`
}

// Rule is one parsed implication: IF <terms> THEN <output>.
// The antecedent is a flat left-to-right chain; there is no grouping.
type Rule struct {
	// Text is the original rule line as read from the rules file.
	Text string `json:"text"`

	// Terms is the antecedent chain in source order.
	Terms []Term `json:"terms"`

	// Output is the consequent output-set name.
	Output string `json:"output"`
}

// RuleBase is an insertion-ordered sequence of rules. Duplicates are kept;
// ordering matters only for trace output, never for the aggregated result.
type RuleBase []Rule
