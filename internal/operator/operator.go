// Package operator provides the fuzzy logic combinators: AND as minimum and
// OR as maximum, each in binary and n-ary form. There is no fuzzy complement.
package operator

import "github.com/boshu2/fuzzy/internal/types"

// And returns the fuzzy AND (minimum) of two membership degrees.
func And(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// Or returns the fuzzy OR (maximum) of two membership degrees.
func Or(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// AndAll reduces the degrees via fuzzy AND. At least one operand is required.
func AndAll(degrees ...float64) (float64, error) {
	if len(degrees) == 0 {
		return 0, types.ErrNoOperands
	}
	min := degrees[0]
	for _, d := range degrees[1:] {
		min = And(min, d)
	}
	return min, nil
}

// OrAll reduces the degrees via fuzzy OR. At least one operand is required.
func OrAll(degrees ...float64) (float64, error) {
	if len(degrees) == 0 {
		return 0, types.ErrNoOperands
	}
	max := degrees[0]
	for _, d := range degrees[1:] {
		max = Or(max, d)
	}
	return max, nil
}
