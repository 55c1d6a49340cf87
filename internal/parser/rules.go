package parser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/boshu2/fuzzy/internal/types"
)

// RulesParser reads rule text, one rule per line:
//
//	IF <term> [ (AND|OR) <term> ]* THEN <output-set-name>
//
// Keywords match case-insensitively. Tokenization splits on whitespace and
// identifies IF/THEN structurally, so extra spacing is harmless. The
// antecedent is a flat chain; parentheses are not supported and mixed AND/OR
// chains evaluate strictly left to right.
type RulesParser struct {
	// Strict aborts on the first malformed rule instead of skipping it.
	Strict bool
}

// NewRulesParser creates a lenient rules parser.
func NewRulesParser() *RulesParser {
	return &RulesParser{}
}

// RulesResult contains the outcome of parsing a rules stream.
type RulesResult struct {
	// Rules holds the parsed rules in file order.
	Rules types.RuleBase

	// TotalLines counts every line seen.
	TotalLines int

	// SkippedLines counts malformed rules dropped in lenient mode.
	SkippedLines int

	// Diagnostics records why rules were skipped.
	Diagnostics []types.Diagnostic
}

// ParseRules reads rules from r. In lenient mode malformed rules become
// diagnostics and the returned error is only ever an I/O error; in strict
// mode the first malformed rule returns a *ParseError.
func (p *RulesParser) ParseRules(r io.Reader) (*RulesResult, error) {
	result := &RulesResult{}

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		result.TotalLines = lineNum

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		rule, err := ParseRule(line)
		if err != nil {
			result.SkippedLines++
			if p.Strict {
				return result, &ParseError{
					Line:       lineNum,
					Message:    err.Error(),
					RawContent: truncateForError(line, 100),
					ErrorType:  errClassRule,
				}
			}
			result.Diagnostics = append(result.Diagnostics, types.Diagnostic{
				Severity: types.SeverityWarning,
				Code:     types.CodeMalformedRule,
				Line:     lineNum,
				Subject:  truncateForError(line, 60),
				Message:  "rule skipped: " + err.Error(),
			})
			continue
		}

		result.Rules = append(result.Rules, rule)
	}

	if err := scanner.Err(); err != nil {
		return result, fmt.Errorf("scanner error: %w", err)
	}

	return result, nil
}

// ParseRulesFile parses a rules file by path.
func (p *RulesParser) ParseRulesFile(path string) (result *RulesResult, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rules file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return p.ParseRules(f)
}

// Keyword matching is case-insensitive.
func isKeyword(word, keyword string) bool {
	return strings.EqualFold(word, keyword)
}

// ParseRule parses one rule line into its structured form. The line must
// start with IF and alternate terms with AND/OR combinators up to the first
// THEN; everything after that is the consequent text.
func ParseRule(line string) (types.Rule, error) {
	words := strings.Fields(line)
	if len(words) == 0 || !isKeyword(words[0], "IF") {
		return types.Rule{}, fmt.Errorf("%w: %q", types.ErrEmptyAntecedent, line)
	}

	thenIdx := -1
	for i, w := range words {
		if isKeyword(w, "THEN") {
			thenIdx = i
			break
		}
	}
	if thenIdx < 0 {
		return types.Rule{}, fmt.Errorf("%w: %q", types.ErrMissingThen, line)
	}

	terms, err := parseAntecedent(words[1:thenIdx])
	if err != nil {
		return types.Rule{}, fmt.Errorf("%w: %q", err, line)
	}

	output := strings.Join(words[thenIdx+1:], " ")
	if output == "" {
		return types.Rule{}, fmt.Errorf("%w: %q", types.ErrEmptyConsequent, line)
	}

	return types.Rule{Text: line, Terms: terms, Output: output}, nil
}

// parseAntecedent walks the words between IF and THEN, alternating set-name
// terms with AND/OR combinators.
func parseAntecedent(words []string) ([]types.Term, error) {
	if len(words) == 0 {
		return nil, types.ErrEmptyAntecedent
	}

	var terms []types.Term
	pending := types.OpNone
	for _, w := range words {
		switch {
		case isKeyword(w, "AND"):
			if len(terms) == 0 || pending != types.OpNone {
				return nil, fmt.Errorf("misplaced AND")
			}
			pending = types.OpAnd
		case isKeyword(w, "OR"):
			if len(terms) == 0 || pending != types.OpNone {
				return nil, fmt.Errorf("misplaced OR")
			}
			pending = types.OpOr
		default:
			if len(terms) > 0 && pending == types.OpNone {
				return nil, fmt.Errorf("terms %q and %q need a combinator between them", terms[len(terms)-1].Name, w)
			}
			terms = append(terms, types.Term{Name: w, Op: pending})
			pending = types.OpNone
		}
	}
	if pending != types.OpNone {
		return nil, fmt.Errorf("dangling %s at end of antecedent", pending)
	}
	return terms, nil
}
