package types

import "errors"

// Sentinel errors for the fuzzy pipeline. Using sentinels instead of ad-hoc
// fmt.Errorf allows callers to match with errors.Is for reliable error handling.
var (
	// ErrParamCount is returned when a membership function is evaluated with
	// a parameter count that does not match its kind.
	ErrParamCount = errors.New("parameter count does not match membership kind")

	// ErrUnknownKind is returned for a membership-kind token outside
	// TRIANG, TRAP, SAT, GAUSS.
	ErrUnknownKind = errors.New("unknown membership function kind")

	// ErrNoOperands is returned when an n-ary fuzzy operator is applied to
	// an empty argument list.
	ErrNoOperands = errors.New("fuzzy operator requires at least one operand")

	// ErrUnknownSet is returned in strict mode when a rule references a
	// fuzzy-set name with no membership degree.
	ErrUnknownSet = errors.New("unknown fuzzy set reference")

	// ErrMissingThen is returned for a rule line with no THEN keyword.
	ErrMissingThen = errors.New("rule has no THEN keyword")

	// ErrEmptyAntecedent is returned for a rule with no terms before THEN.
	ErrEmptyAntecedent = errors.New("rule has an empty antecedent")

	// ErrEmptyConsequent is returned for a rule with no output set after THEN.
	ErrEmptyConsequent = errors.New("rule has an empty consequent")

	// ErrNonPositiveWidth is returned for a Gaussian set with width <= 0.
	ErrNonPositiveWidth = errors.New("gaussian width must be positive")
)
