package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/boshu2/fuzzy/internal/formatter"
	"github.com/boshu2/fuzzy/internal/parser"
	"github.com/boshu2/fuzzy/internal/types"
)

var (
	rulesFile     string
	rulesSetsFile string
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List and validate rules",
	Long: `Parse a rules file and list the parsed rules.

Rule format, one rule per line (keywords are case-insensitive):
  IF <term> [ (AND|OR) <term> ]* THEN <output-set-name>

Each term is a fuzzy-set name. The antecedent is a flat chain evaluated
strictly left to right; parentheses are not supported.

With --sets, rule terms are cross-checked against the loaded definitions;
unknown references are diagnostics, or errors under --strict.

Examples:
  fuzzy rules --rules rules.txt
  fuzzy rules --rules rules.txt --sets variables.txt --strict`,
	RunE: runRules,
}

func init() {
	rulesCmd.Flags().StringVar(&rulesFile, "rules", "", "Rules file (required)")
	rulesCmd.Flags().StringVar(&rulesSetsFile, "sets", "", "Definitions file to cross-check term references")
	_ = rulesCmd.MarkFlagRequired("rules")
	rootCmd.AddCommand(rulesCmd)
}

// rulesOutput is the machine-readable shape of a rules listing.
type rulesOutput struct {
	Rules       types.RuleBase     `json:"rules"`
	TotalLines  int                `json:"total_lines"`
	Skipped     int                `json:"skipped_lines"`
	Diagnostics []types.Diagnostic `json:"diagnostics,omitempty"`
}

func runRules(cmd *cobra.Command, args []string) error {
	rp := parser.NewRulesParser()
	rp.Strict = cfg.Strict

	result, err := rp.ParseRulesFile(rulesFile)
	if err != nil {
		return exitWith(exitRules, fmt.Errorf("rules: %w", err))
	}

	out := &rulesOutput{
		Rules:       result.Rules,
		TotalLines:  result.TotalLines,
		Skipped:     result.SkippedLines,
		Diagnostics: result.Diagnostics,
	}

	if rulesSetsFile != "" {
		diags, err := crossCheckReferences(result.Rules)
		if err != nil {
			return err
		}
		out.Diagnostics = append(out.Diagnostics, diags...)
	}

	return renderRules(out)
}

// crossCheckReferences verifies that every rule term names a loaded fuzzy
// set. Unknown references are warnings in lenient mode and a named error
// under strict.
func crossCheckReferences(rules types.RuleBase) ([]types.Diagnostic, error) {
	sp := parser.NewSetsParser()
	sp.Strict = cfg.Strict
	sp.Classifier = cfg.Classifier()
	setsResult, err := sp.ParseSetsFile(rulesSetsFile)
	if err != nil {
		return nil, exitWith(exitDefinitions, fmt.Errorf("definitions: %w", err))
	}

	var diags []types.Diagnostic
	for i, rule := range rules {
		for _, term := range rule.Terms {
			if setsResult.Sets.Find(term.Name) != nil {
				continue
			}
			if cfg.Strict {
				return nil, exitWith(exitRules,
					fmt.Errorf("rule %d %q: term %q: %w", i, rule.Text, term.Name, types.ErrUnknownSet))
			}
			diags = append(diags, types.Diagnostic{
				Severity: types.SeverityWarning,
				Code:     types.CodeUnknownSet,
				Subject:  term.Name,
				Message:  fmt.Sprintf("rule %d references undefined set %q", i, term.Name),
			})
		}
	}
	return diags, nil
}

func renderRules(out *rulesOutput) error {
	switch cfg.Output {
	case "json":
		return formatter.NewJSON().Format(os.Stdout, out)
	case "jsonl":
		return formatter.NewJSONL().Format(os.Stdout, out)
	default:
		table := formatter.NewTable(os.Stdout, "#", "ANTECEDENT", "OUTPUT")
		table.SetMaxWidth(1, 60)
		for i, r := range out.Rules {
			table.AddRow(strconv.Itoa(i), formatAntecedent(r.Terms), r.Output)
		}
		if err := table.Render(); err != nil {
			return err
		}
		fmt.Printf("\n%d rule(s), %d line(s) skipped\n", len(out.Rules), out.Skipped)
		printDiagnostics(out.Diagnostics)
		return nil
	}
}

func formatAntecedent(terms []types.Term) string {
	var b strings.Builder
	for i, t := range terms {
		if i > 0 {
			b.WriteString(" " + string(t.Op) + " ")
		}
		b.WriteString(t.Name)
	}
	return b.String()
}
