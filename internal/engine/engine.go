// Package engine performs Mamdani fuzzy inference: rule antecedents fold
// left-to-right over fuzzy AND/OR, and consequents targeting the same output
// set aggregate via maximum. The engine returns structured trace data and
// never writes to the console; rendering belongs to the caller.
package engine

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/boshu2/fuzzy/internal/operator"
	"github.com/boshu2/fuzzy/internal/types"
	"github.com/boshu2/fuzzy/internal/worker"
)

// EngineName identifies the inference style in results.
const EngineName = "mamdani"

// Engine runs Mamdani inference over a rule base.
type Engine struct {
	// Strict rejects unknown fuzzy-set references before inference runs.
	// Lenient mode (default) skips unresolvable terms with a diagnostic.
	Strict bool

	// Workers enables parallel rule evaluation when > 1. Aggregation is
	// commutative, so the observable result is identical to sequential.
	Workers int

	// Logger receives debug-level evaluation traces. Defaults to
	// slog.Default().
	Logger *slog.Logger
}

// New creates a lenient, sequential engine.
func New() *Engine {
	return &Engine{}
}

// TermDegree records how one antecedent term resolved during evaluation.
type TermDegree struct {
	// Name is the referenced fuzzy-set name.
	Name string `json:"name"`

	// Op is the combinator that joined this term into the accumulator.
	Op types.Combinator `json:"op,omitempty"`

	// Degree is the membership degree looked up for the term.
	Degree float64 `json:"degree"`

	// Skipped marks a term whose name had no membership degree (lenient mode).
	Skipped bool `json:"skipped,omitempty"`
}

// Firing is the structured trace of one rule's evaluation.
type Firing struct {
	// RuleIndex is the rule's position in the rule base.
	RuleIndex int `json:"rule_index"`

	// Rule is the original rule text.
	Rule string `json:"rule"`

	// Output is the consequent output-set name.
	Output string `json:"output"`

	// Degree is the accumulated antecedent degree.
	Degree float64 `json:"degree"`

	// Terms traces each antecedent term in order.
	Terms []TermDegree `json:"terms"`

	// Fired is false when every term was skipped; such rules contribute
	// nothing to the aggregation.
	Fired bool `json:"fired"`
}

// Result is the outcome of one inference run.
type Result struct {
	// Outputs maps each output-set name to its maximum accumulated degree
	// across all rules that fired for it. Output sets with no contributing
	// rule never appear.
	Outputs map[string]float64 `json:"outputs"`

	// Firings traces every rule in insertion order.
	Firings []Firing `json:"firings"`

	// Diagnostics records lenient-mode term skips.
	Diagnostics []types.Diagnostic `json:"diagnostics,omitempty"`

	// RunID uniquely identifies this inference run.
	RunID string `json:"run_id"`

	// GeneratedAt is when inference completed.
	GeneratedAt time.Time `json:"generated_at"`

	// Engine names the inference style.
	Engine string `json:"engine"`
}

// Infer evaluates the rule base against the fuzzified input degrees.
// In strict mode every term must resolve and every consequent must be
// non-empty, checked before any rule is evaluated. Rule order never affects
// Outputs: per-rule evaluation is independent and max-aggregation is
// commutative.
func (e *Engine) Infer(rules types.RuleBase, inputs map[string]float64) (*Result, error) {
	if e.Strict {
		if err := validateReferences(rules, inputs); err != nil {
			return nil, err
		}
	}

	result := &Result{
		Outputs: make(map[string]float64),
		Engine:  EngineName,
		RunID:   uuid.NewString(),
	}

	if e.Workers > 1 {
		e.inferParallel(rules, inputs, result)
	} else {
		for i, rule := range rules {
			firing, diags := e.evaluateRule(i, rule, inputs)
			result.Firings = append(result.Firings, firing)
			result.Diagnostics = append(result.Diagnostics, diags...)
		}
	}

	aggregate(result)
	result.GeneratedAt = time.Now().UTC()
	return result, nil
}

// ruleOutcome carries one rule's evaluation across the worker pool.
type ruleOutcome struct {
	firing Firing
	diags  []types.Diagnostic
}

// inferParallel fans rules out across the worker pool. Results come back in
// input order, so the trace and the merged aggregation match the sequential
// path exactly.
func (e *Engine) inferParallel(rules types.RuleBase, inputs map[string]float64, result *Result) {
	indexes := make([]int, len(rules))
	for i := range rules {
		indexes[i] = i
	}

	pool := worker.NewPool[int, ruleOutcome](e.Workers)
	outcomes := pool.Process(indexes, func(i int) (ruleOutcome, error) {
		firing, diags := e.evaluateRule(i, rules[i], inputs)
		return ruleOutcome{firing: firing, diags: diags}, nil
	})

	for _, o := range outcomes {
		result.Firings = append(result.Firings, o.Value.firing)
		result.Diagnostics = append(result.Diagnostics, o.Value.diags...)
	}
}

// evaluateRule folds the rule's antecedent left to right. The first
// resolvable term seeds the accumulator; each later term combines via its
// own combinator. A skipped term takes its combinator with it. Mixed AND/OR
// chains are never re-associated.
func (e *Engine) evaluateRule(index int, rule types.Rule, inputs map[string]float64) (Firing, []types.Diagnostic) {
	firing := Firing{
		RuleIndex: index,
		Rule:      rule.Text,
		Output:    rule.Output,
	}
	var diags []types.Diagnostic

	var accum float64
	seeded := false
	for _, term := range rule.Terms {
		degree, ok := inputs[term.Name]
		if !ok {
			firing.Terms = append(firing.Terms, TermDegree{Name: term.Name, Op: term.Op, Skipped: true})
			diags = append(diags, types.Diagnostic{
				Severity: types.SeverityWarning,
				Code:     types.CodeUnknownSet,
				Subject:  term.Name,
				Message:  fmt.Sprintf("rule %d: term %q has no membership degree, skipped", index, term.Name),
			})
			continue
		}

		firing.Terms = append(firing.Terms, TermDegree{Name: term.Name, Op: term.Op, Degree: degree})
		switch {
		case !seeded:
			accum = degree
			seeded = true
		case term.Op == types.OpAnd:
			accum = operator.And(accum, degree)
		case term.Op == types.OpOr:
			accum = operator.Or(accum, degree)
		}
	}

	firing.Degree = accum
	firing.Fired = seeded

	e.logger().Debug("rule evaluated",
		"rule", rule.Text,
		"output", rule.Output,
		"degree", accum,
		"fired", seeded,
	)
	return firing, diags
}

// aggregate folds firings into the per-output maximum.
func aggregate(result *Result) {
	for _, f := range result.Firings {
		if !f.Fired {
			continue
		}
		if current, ok := result.Outputs[f.Output]; !ok || f.Degree > current {
			result.Outputs[f.Output] = f.Degree
		}
	}
}

// validateReferences is the strict-mode pre-pass: every term must have a
// membership degree and every consequent must be non-empty.
func validateReferences(rules types.RuleBase, inputs map[string]float64) error {
	for i, rule := range rules {
		for _, term := range rule.Terms {
			if _, ok := inputs[term.Name]; !ok {
				return fmt.Errorf("rule %d %q: term %q: %w", i, rule.Text, term.Name, types.ErrUnknownSet)
			}
		}
		if rule.Output == "" {
			return fmt.Errorf("rule %d %q: %w", i, rule.Text, types.ErrEmptyConsequent)
		}
	}
	return nil
}

func (e *Engine) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}
