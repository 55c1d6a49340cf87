package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/boshu2/fuzzy/internal/engine"
	"github.com/boshu2/fuzzy/internal/formatter"
	"github.com/boshu2/fuzzy/internal/parser"
	"github.com/boshu2/fuzzy/internal/set"
	"github.com/boshu2/fuzzy/internal/types"
)

var (
	inferSetsFile  string
	inferRulesFile string
	inferInputs    []string
	inferTrace     bool
)

var inferCmd = &cobra.Command{
	Use:   "infer",
	Short: "Run fuzzification and Mamdani inference",
	Long: `Run the full pipeline: load fuzzy-set definitions, fuzzify crisp
inputs, load rules, and aggregate rule outputs per output set (maximum).

Crisp inputs are named channels bound to input sets by configurable name
substrings. The defaults reproduce the tipping scenario: the "service"
channel drives sets named *Service* or *waiting_time*, the "food" channel
drives sets named *Food* or *price*.

Examples:
  fuzzy infer --sets variables.txt --rules rules.txt --input service=40 --input food=60
  fuzzy infer --sets variables.txt --rules rules.txt --input service=40 --input food=60 -o json --trace
  fuzzy infer --sets variables.txt --rules rules.txt --input service=40 --input food=60 --strict`,
	RunE: runInfer,
}

func init() {
	inferCmd.Flags().StringVar(&inferSetsFile, "sets", "", "Fuzzy-set definitions file (required)")
	inferCmd.Flags().StringVar(&inferRulesFile, "rules", "", "Rules file (required)")
	inferCmd.Flags().StringArrayVar(&inferInputs, "input", nil, "Crisp input as <channel>=<value> (repeatable)")
	inferCmd.Flags().BoolVar(&inferTrace, "trace", false, "Include per-rule firing trace in output")
	_ = inferCmd.MarkFlagRequired("sets")
	_ = inferCmd.MarkFlagRequired("rules")
	rootCmd.AddCommand(inferCmd)
}

// inferOutput is the machine-readable shape of a full pipeline run.
type inferOutput struct {
	InputSets   []string           `json:"input_sets"`
	OutputSets  []string           `json:"output_sets"`
	Memberships map[string]float64 `json:"memberships"`
	Rules       []string           `json:"rules"`
	Result      *engine.Result     `json:"result"`
	Diagnostics []types.Diagnostic `json:"diagnostics,omitempty"`
}

func runInfer(cmd *cobra.Command, args []string) error {
	inputs, err := parseInputFlags(inferInputs)
	if err != nil {
		return err
	}

	// Definitions
	sp := parser.NewSetsParser()
	sp.Strict = cfg.Strict
	sp.Classifier = cfg.Classifier()
	setsResult, err := sp.ParseSetsFile(inferSetsFile)
	if err != nil {
		return exitWith(exitDefinitions, fmt.Errorf("definitions: %w", err))
	}
	logger.Debug("definitions loaded",
		"sets", setsResult.Sets.Len(),
		"skipped", setsResult.SkippedLines,
	)

	// Fuzzification
	bindDiags := cfg.Bindings().BindChannels(setsResult.Sets, inputs)

	// Rules
	rp := parser.NewRulesParser()
	rp.Strict = cfg.Strict
	rulesResult, err := rp.ParseRulesFile(inferRulesFile)
	if err != nil {
		return exitWith(exitRules, fmt.Errorf("rules: %w", err))
	}
	logger.Debug("rules loaded",
		"rules", len(rulesResult.Rules),
		"skipped", rulesResult.SkippedLines,
	)

	// Inference
	eng := &engine.Engine{Strict: cfg.Strict, Workers: cfg.Workers, Logger: logger}
	result, err := eng.Infer(rulesResult.Rules, setsResult.Sets.MembershipValues())
	if err != nil {
		return exitWith(exitRules, fmt.Errorf("inference: %w", err))
	}

	out := &inferOutput{
		InputSets:   setNames(setsResult.Sets.Inputs()),
		OutputSets:  setNames(setsResult.Sets.Outputs()),
		Memberships: setsResult.Sets.MembershipValues(),
		Rules:       ruleTexts(rulesResult.Rules),
		Result:      result,
	}
	out.Diagnostics = append(out.Diagnostics, setsResult.Diagnostics...)
	out.Diagnostics = append(out.Diagnostics, bindDiags...)
	out.Diagnostics = append(out.Diagnostics, rulesResult.Diagnostics...)

	if !inferTrace {
		out.Result.Firings = nil
	}

	return renderInfer(out)
}

// parseInputFlags converts repeated --input channel=value flags into a map.
func parseInputFlags(raw []string) (map[string]float64, error) {
	inputs := make(map[string]float64, len(raw))
	for _, entry := range raw {
		channel, value, ok := strings.Cut(entry, "=")
		if !ok || channel == "" {
			return nil, fmt.Errorf("input %q: want <channel>=<value>", entry)
		}
		x, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("input %q: %q is not a number", entry, value)
		}
		inputs[channel] = x
	}
	return inputs, nil
}

func setNames(sets []*set.Set) []string {
	names := make([]string, 0, len(sets))
	for _, s := range sets {
		names = append(names, s.Name)
	}
	return names
}

func ruleTexts(rules types.RuleBase) []string {
	texts := make([]string, 0, len(rules))
	for _, r := range rules {
		texts = append(texts, r.Text)
	}
	return texts
}

// renderInfer writes the run in the configured output format.
func renderInfer(out *inferOutput) error {
	switch cfg.Output {
	case "json":
		return formatter.NewJSON().Format(os.Stdout, out)
	case "jsonl":
		return formatter.NewJSONL().Format(os.Stdout, out)
	default:
		return renderInferTable(out)
	}
}

// renderInferTable prints the human-readable run listing: loaded set names,
// fuzzified degrees, rule text, and final aggregated degrees.
func renderInferTable(out *inferOutput) error {
	fmt.Println("Input fuzzy sets:")
	for _, name := range out.InputSets {
		fmt.Printf("  %s\n", name)
	}

	fmt.Println("\nOutput fuzzy sets:")
	for _, name := range out.OutputSets {
		fmt.Printf("  %s\n", name)
	}

	fmt.Println("\nFuzzified membership degrees:")
	degrees := formatter.NewTable(os.Stdout, "SET", "DEGREE")
	for _, name := range sortedKeys(out.Memberships) {
		degrees.AddRow(name, formatter.Degree(out.Memberships[name]))
	}
	if err := degrees.Render(); err != nil {
		return err
	}

	fmt.Println("\nRules:")
	for _, text := range out.Rules {
		fmt.Printf("  %s\n", text)
	}

	if len(out.Result.Firings) > 0 {
		fmt.Println("\nFirings:")
		firings := formatter.NewTable(os.Stdout, "#", "RULE", "OUTPUT", "DEGREE", "FIRED")
		firings.SetMaxWidth(1, 60)
		for _, f := range out.Result.Firings {
			firings.AddRow(
				strconv.Itoa(f.RuleIndex),
				f.Rule,
				f.Output,
				formatter.Degree(f.Degree),
				strconv.FormatBool(f.Fired),
			)
		}
		if err := firings.Render(); err != nil {
			return err
		}
	}

	fmt.Println("\nAggregated outputs:")
	outputs := formatter.NewTable(os.Stdout, "OUTPUT SET", "DEGREE")
	for _, name := range sortedKeys(out.Result.Outputs) {
		outputs.AddRow(name, formatter.Degree(out.Result.Outputs[name]))
	}
	if err := outputs.Render(); err != nil {
		return err
	}

	all := make([]types.Diagnostic, 0, len(out.Diagnostics)+len(out.Result.Diagnostics))
	all = append(all, out.Diagnostics...)
	all = append(all, out.Result.Diagnostics...)
	printDiagnostics(all)
	return nil
}

// printDiagnostics lists collected warnings on stderr.
func printDiagnostics(diags []types.Diagnostic) {
	if len(diags) == 0 {
		return
	}
	fmt.Fprintf(os.Stderr, "\n%d diagnostic(s):\n", len(diags))
	for _, d := range diags {
		fmt.Fprintf(os.Stderr, "  %s\n", d)
	}
}

// sortedKeys returns map keys in sorted order for stable listings.
func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
