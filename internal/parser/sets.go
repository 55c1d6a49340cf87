package parser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/boshu2/fuzzy/internal/membership"
	"github.com/boshu2/fuzzy/internal/set"
	"github.com/boshu2/fuzzy/internal/types"
)

// SetsParser reads fuzzy-set definitions, one per line:
//
//	<name> <KIND:TRIANG|TRAP|SAT|GAUSS> <p1> [<p2> [<p3> [<p4>]]]
//
// The required parameter count is fixed by the kind (TRIANG=3, TRAP=4,
// SAT=2, GAUSS=2). Input/output classification happens here, through the
// configured Classifier.
type SetsParser struct {
	// Strict aborts on the first malformed line instead of skipping it.
	Strict bool

	// Classifier partitions parsed sets into inputs and outputs.
	Classifier set.Classifier
}

// NewSetsParser creates a lenient parser with the default classifier.
func NewSetsParser() *SetsParser {
	return &SetsParser{Classifier: set.NewClassifier("")}
}

// SetsResult contains the outcome of parsing a definitions stream.
type SetsResult struct {
	// Sets holds the parsed sets in file order.
	Sets *set.Collection

	// TotalLines counts every line seen, including blank and skipped ones.
	TotalLines int

	// SkippedLines counts lines dropped in lenient mode.
	SkippedLines int

	// Diagnostics records why lines were skipped and which parsed sets have
	// definition errors (bad shapes, non-positive widths).
	Diagnostics []types.Diagnostic
}

// ParseSets reads definitions from r. In lenient mode the returned error is
// only ever an I/O error; malformed lines become diagnostics. In strict mode
// the first malformed line returns a *ParseError.
func (p *SetsParser) ParseSets(r io.Reader) (*SetsResult, error) {
	result := &SetsResult{Sets: set.NewCollection()}

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		result.TotalLines = lineNum

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if err := p.processLine(line, lineNum, result); err != nil {
			return result, err
		}
	}

	if err := scanner.Err(); err != nil {
		return result, fmt.Errorf("scanner error: %w", err)
	}

	return result, nil
}

// ParseSetsFile parses a definitions file by path.
func (p *SetsParser) ParseSetsFile(path string) (result *SetsResult, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open definitions file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return p.ParseSets(f)
}

// processLine parses one definition line and appends the set or the skip
// diagnostic. Strict mode returns the failure as a *ParseError.
func (p *SetsParser) processLine(line string, lineNum int, result *SetsResult) error {
	s, perr := p.parseLine(line, lineNum)
	if perr != nil {
		result.SkippedLines++
		if p.Strict {
			return perr
		}
		result.Diagnostics = append(result.Diagnostics, types.Diagnostic{
			Severity: types.SeverityWarning,
			Code:     codeForClass(perr.ErrorType),
			Line:     lineNum,
			Subject:  truncateForError(line, 60),
			Message:  "definition skipped: " + perr.Message,
		})
		return nil
	}

	result.Sets.Add(s)

	// Shape problems (non-monotonic boundaries, non-positive width) keep the
	// set loaded; lenient evaluation of such a set yields degree 0.
	for _, d := range s.Validate() {
		if p.Strict {
			return &ParseError{
				Line:       lineNum,
				Message:    d.Message,
				RawContent: truncateForError(line, 100),
				ErrorType:  errClassFormat,
			}
		}
		d.Line = lineNum
		d.Severity = types.SeverityWarning
		result.Diagnostics = append(result.Diagnostics, d)
	}
	return nil
}

// parseLine parses a single definition line into a fuzzy set.
func (p *SetsParser) parseLine(line string, lineNum int) (*set.Set, *ParseError) {
	fields := strings.Fields(line)

	// A line must at least carry name, kind, and one parameter to be
	// considered.
	if len(fields) < 3 {
		return nil, &ParseError{
			Line:       lineNum,
			Message:    fmt.Sprintf("need at least name, kind, and one parameter, got %d fields", len(fields)),
			RawContent: truncateForError(line, 100),
			ErrorType:  errClassFormat,
		}
	}

	name := fields[0]
	kind, err := membership.ParseKind(fields[1])
	if err != nil {
		return nil, &ParseError{
			Line:       lineNum,
			Message:    err.Error(),
			RawContent: truncateForError(line, 100),
			ErrorType:  errClassKind,
		}
	}

	want := kind.ParamCount()
	if len(fields)-2 != want {
		return nil, &ParseError{
			Line:       lineNum,
			Message:    fmt.Sprintf("%s requires %d parameters, got %d", kind, want, len(fields)-2),
			RawContent: truncateForError(line, 100),
			ErrorType:  errClassArity,
		}
	}

	params := make([]float64, 0, want)
	for _, field := range fields[2:] {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, &ParseError{
				Line:       lineNum,
				Message:    fmt.Sprintf("parameter %q is not a number", field),
				RawContent: truncateForError(line, 100),
				ErrorType:  errClassNumber,
			}
		}
		params = append(params, v)
	}

	role := p.Classifier.Classify(name)
	return set.New(name, kind, params, role), nil
}

// codeForClass maps a parse-error class to a diagnostic code.
func codeForClass(class string) string {
	switch class {
	case errClassKind:
		return types.CodeUnknownKind
	case errClassNumber:
		return types.CodeBadNumber
	case errClassArity:
		return types.CodeBadParamCount
	case errClassRule:
		return types.CodeMalformedRule
	default:
		return types.CodeShortLine
	}
}
