// Package set models fuzzy sets: a named membership function with parameters,
// partitioned into input sets (which cache fuzzified degrees) and output sets
// (which serve purely as aggregation keys for rule consequents).
package set

import (
	"github.com/boshu2/fuzzy/internal/membership"
	"github.com/boshu2/fuzzy/internal/types"
)

// Role distinguishes input sets from output sets. The partition is applied at
// load time by a Classifier; it is configuration, not a runtime capability.
type Role string

const (
	RoleInput  Role = "input"
	RoleOutput Role = "output"
)

// Set is one fuzzy set: a unique name, a membership-function kind, and the
// kind's parameters. Input sets additionally cache the degree produced by the
// most recent Fuzzify call, keyed by the set's own name.
type Set struct {
	Name   string          `json:"name"`
	Kind   membership.Kind `json:"kind"`
	Params []float64       `json:"params"`
	Role   Role            `json:"role"`

	degrees map[string]float64
}

// New creates a fuzzy set. The parameter arity is not checked here; callers
// run Validate and decide between lenient and strict handling.
func New(name string, kind membership.Kind, params []float64, role Role) *Set {
	return &Set{Name: name, Kind: kind, Params: params, Role: role}
}

// Evaluate returns the membership degree of x. A parameter count that does
// not match the kind propagates ErrParamCount.
func (s *Set) Evaluate(x float64) (float64, error) {
	return membership.Eval(s.Kind, s.Params, x)
}

// EvaluateLenient returns the membership degree of x, mapping any
// misconfiguration to degree 0 plus a warning diagnostic instead of an error.
// Shape errors (non-monotonic boundaries, non-positive Gaussian width) are
// caught here as well as arity mismatches; the membership functions are not
// total over bad parameters and would otherwise produce NaN.
func (s *Set) EvaluateLenient(x float64) (float64, []types.Diagnostic) {
	if diags := s.Validate(); len(diags) > 0 {
		for i := range diags {
			diags[i].Severity = types.SeverityWarning
			diags[i].Message = "set not evaluated: " + diags[i].Message
		}
		return 0, diags
	}
	degree, err := s.Evaluate(x)
	if err != nil {
		return 0, []types.Diagnostic{{
			Severity: types.SeverityWarning,
			Code:     types.CodeBadParamCount,
			Subject:  s.Name,
			Message:  "set not evaluated: " + err.Error(),
		}}
	}
	return degree, nil
}

// Validate checks the set's kind/parameter pairing for definition errors.
func (s *Set) Validate() []types.Diagnostic {
	return membership.ValidateParams(s.Kind, s.Params, s.Name)
}

// Fuzzify computes the lenient membership degree of x and caches it under the
// set's own name. Calling it again overwrites the cached entry; there is at
// most one entry per set. Output sets are never fuzzified by the pipeline.
func (s *Set) Fuzzify(x float64) []types.Diagnostic {
	degree, diags := s.EvaluateLenient(x)
	if s.degrees == nil {
		s.degrees = make(map[string]float64, 1)
	}
	s.degrees[s.Name] = degree
	return diags
}

// Degrees returns the cached fuzzified degrees. Empty until Fuzzify is called.
func (s *Set) Degrees() map[string]float64 {
	return s.degrees
}
