package engine

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boshu2/fuzzy/internal/parser"
	"github.com/boshu2/fuzzy/internal/types"
)

// mustRules parses rule lines for test setup.
func mustRules(t *testing.T, lines ...string) types.RuleBase {
	t.Helper()
	rules := make(types.RuleBase, 0, len(lines))
	for _, line := range lines {
		rule, err := parser.ParseRule(line)
		require.NoError(t, err)
		rules = append(rules, rule)
	}
	return rules
}

func TestInfer_AndRule(t *testing.T) {
	rules := mustRules(t, "IF low_service AND low_food THEN low_tip")
	inputs := map[string]float64{"low_service": 0.3, "low_food": 0.8}

	result, err := New().Infer(rules, inputs)
	require.NoError(t, err)

	require.Len(t, result.Outputs, 1)
	assert.InDelta(t, 0.3, result.Outputs["low_tip"], 1e-9)
}

func TestInfer_OrRule(t *testing.T) {
	rules := mustRules(t, "IF high_service OR high_food THEN high_tip")
	inputs := map[string]float64{"high_service": 0.9, "high_food": 0.1}

	result, err := New().Infer(rules, inputs)
	require.NoError(t, err)

	assert.InDelta(t, 0.9, result.Outputs["high_tip"], 1e-9)
}

func TestInfer_MaxAggregationAcrossRules(t *testing.T) {
	rules := mustRules(t,
		"IF a THEN medium_tip",
		"IF b THEN medium_tip",
	)
	inputs := map[string]float64{"a": 0.4, "b": 0.7}

	result, err := New().Infer(rules, inputs)
	require.NoError(t, err)

	require.Len(t, result.Outputs, 1)
	assert.InDelta(t, 0.7, result.Outputs["medium_tip"], 1e-9)
}

// Mixed chains fold strictly left to right: A AND B OR C is or(and(A,B), C).
func TestInfer_LeftToRightFold(t *testing.T) {
	rules := mustRules(t, "IF a AND b OR c THEN out")
	inputs := map[string]float64{"a": 0.2, "b": 0.9, "c": 0.6}

	result, err := New().Infer(rules, inputs)
	require.NoError(t, err)

	// and(0.2, 0.9) = 0.2; or(0.2, 0.6) = 0.6. A right-associated grouping
	// and(0.2, or(0.9, 0.6)) would give 0.2 instead.
	assert.InDelta(t, 0.6, result.Outputs["out"], 1e-9)
}

func TestInfer_LongChain(t *testing.T) {
	rules := mustRules(t, "IF a OR b AND c OR d AND e THEN out")
	inputs := map[string]float64{"a": 0.1, "b": 0.8, "c": 0.5, "d": 0.9, "e": 0.3}

	result, err := New().Infer(rules, inputs)
	require.NoError(t, err)

	// ((((0.1 or 0.8) and 0.5) or 0.9) and 0.3) = 0.3
	assert.InDelta(t, 0.3, result.Outputs["out"], 1e-9)
}

func TestInfer_Idempotent(t *testing.T) {
	rules := mustRules(t,
		"IF a AND b THEN x",
		"IF c THEN y",
	)
	inputs := map[string]float64{"a": 0.5, "b": 0.2, "c": 0.7}

	eng := New()
	first, err := eng.Infer(rules, inputs)
	require.NoError(t, err)
	second, err := eng.Infer(rules, inputs)
	require.NoError(t, err)

	assert.Equal(t, first.Outputs, second.Outputs)
	assert.NotEqual(t, first.RunID, second.RunID)
}

// Permuting the rule base never changes the aggregated outputs.
func TestInfer_OrderIndependent(t *testing.T) {
	lines := []string{
		"IF a THEN x",
		"IF b THEN x",
		"IF a OR c THEN y",
		"IF b AND c THEN y",
		"IF c THEN z",
	}
	inputs := map[string]float64{"a": 0.4, "b": 0.9, "c": 0.2}

	baseline, err := New().Infer(mustRules(t, lines...), inputs)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		shuffled := append([]string(nil), lines...)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		result, err := New().Infer(mustRules(t, shuffled...), inputs)
		require.NoError(t, err)
		assert.Equal(t, baseline.Outputs, result.Outputs, "permutation %d", i)
	}
}

func TestInfer_ZeroDegreeRuleStillFires(t *testing.T) {
	rules := mustRules(t, "IF a THEN out")
	inputs := map[string]float64{"a": 0.0}

	result, err := New().Infer(rules, inputs)
	require.NoError(t, err)

	// A rule that resolves to degree 0 still records its pair.
	degree, ok := result.Outputs["out"]
	require.True(t, ok)
	assert.Zero(t, degree)
	assert.True(t, result.Firings[0].Fired)
}

func TestInfer_LenientSkipsUnknownTerms(t *testing.T) {
	rules := mustRules(t, "IF ghost AND a THEN out")
	inputs := map[string]float64{"a": 0.6}

	result, err := New().Infer(rules, inputs)
	require.NoError(t, err)

	// The unknown term and its combinator drop out; "a" seeds the fold.
	assert.InDelta(t, 0.6, result.Outputs["out"], 1e-9)

	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, types.CodeUnknownSet, result.Diagnostics[0].Code)
	assert.Equal(t, "ghost", result.Diagnostics[0].Subject)

	require.Len(t, result.Firings, 1)
	assert.True(t, result.Firings[0].Terms[0].Skipped)
	assert.False(t, result.Firings[0].Terms[1].Skipped)
}

func TestInfer_AllTermsUnknown(t *testing.T) {
	rules := mustRules(t, "IF ghost THEN out")

	result, err := New().Infer(rules, map[string]float64{"a": 0.5})
	require.NoError(t, err)

	// No resolvable term: the rule does not fire and the output never appears.
	assert.Empty(t, result.Outputs)
	require.Len(t, result.Firings, 1)
	assert.False(t, result.Firings[0].Fired)
}

func TestInfer_StrictRejectsUnknownReference(t *testing.T) {
	rules := mustRules(t, "IF ghost THEN out")

	eng := &Engine{Strict: true}
	_, err := eng.Infer(rules, map[string]float64{"a": 0.5})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrUnknownSet)
	assert.Contains(t, err.Error(), "ghost")
}

func TestInfer_ResultMetadata(t *testing.T) {
	result, err := New().Infer(mustRules(t, "IF a THEN out"), map[string]float64{"a": 0.5})
	require.NoError(t, err)

	assert.Equal(t, EngineName, result.Engine)
	assert.NotEmpty(t, result.RunID)
	assert.False(t, result.GeneratedAt.IsZero())
}

func TestInfer_ParallelMatchesSequential(t *testing.T) {
	lines := []string{
		"IF a AND b THEN x",
		"IF b OR c THEN x",
		"IF c THEN y",
		"IF a OR b AND c THEN y",
		"IF ghost AND a THEN z",
	}
	inputs := map[string]float64{"a": 0.3, "b": 0.8, "c": 0.5}

	sequential, err := New().Infer(mustRules(t, lines...), inputs)
	require.NoError(t, err)

	parallel, err := (&Engine{Workers: 4}).Infer(mustRules(t, lines...), inputs)
	require.NoError(t, err)

	assert.Equal(t, sequential.Outputs, parallel.Outputs)
	require.Len(t, parallel.Firings, len(sequential.Firings))
	for i := range sequential.Firings {
		assert.Equal(t, sequential.Firings[i].RuleIndex, parallel.Firings[i].RuleIndex)
		assert.Equal(t, sequential.Firings[i].Degree, parallel.Firings[i].Degree)
	}
}

// Full pipeline over the tipping scenario: definitions and rules parsed from
// text, crisp inputs service=40 and food=60.
func TestInfer_TippingScenario(t *testing.T) {
	definitions := `LowService TRIANG 0 20 40
GoodService TRIANG 30 50 70
ExcellentService SAT 70 50
BadFood TRIANG 0 25 50
GreatFood SAT 60 40
LowTip TRIANG 0 10 20
MediumTip TRIANG 15 25 35
HighTip SAT 30 20
`
	ruleText := `IF LowService AND BadFood THEN LowTip
IF GoodService THEN MediumTip
IF ExcellentService OR GreatFood THEN HighTip
`

	sp := parser.NewSetsParser()
	setsResult, err := sp.ParseSets(strings.NewReader(definitions))
	require.NoError(t, err)
	require.Empty(t, setsResult.Diagnostics)

	for _, s := range setsResult.Sets.Inputs() {
		if strings.Contains(s.Name, "Service") {
			s.Fuzzify(40)
		} else {
			s.Fuzzify(60)
		}
	}
	inputs := setsResult.Sets.MembershipValues()
	require.Len(t, inputs, 5)
	assert.InDelta(t, 0, inputs["LowService"], 1e-9)
	assert.InDelta(t, 0.5, inputs["GoodService"], 1e-9)
	assert.InDelta(t, 0, inputs["ExcellentService"], 1e-9)
	assert.InDelta(t, 0, inputs["BadFood"], 1e-9)
	assert.InDelta(t, 1, inputs["GreatFood"], 1e-9)

	rp := parser.NewRulesParser()
	rulesResult, err := rp.ParseRules(strings.NewReader(ruleText))
	require.NoError(t, err)

	result, err := New().Infer(rulesResult.Rules, inputs)
	require.NoError(t, err)

	require.Len(t, result.Outputs, 3)
	assert.InDelta(t, 0, result.Outputs["LowTip"], 1e-9)
	assert.InDelta(t, 0.5, result.Outputs["MediumTip"], 1e-9)
	assert.InDelta(t, 1, result.Outputs["HighTip"], 1e-9)
}
