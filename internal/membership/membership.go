// Package membership provides the four membership-function shapes used by
// fuzzy sets: triangular, trapezoidal, saturation, and Gaussian. All functions
// are pure, stateless, and total over the real line; they map a crisp scalar
// to a degree of membership in [0,1].
package membership

import (
	"fmt"
	"math"

	"github.com/boshu2/fuzzy/internal/types"
)

// Kind identifies a membership-function shape.
type Kind string

const (
	KindTriangular  Kind = "TRIANG"
	KindTrapezoidal Kind = "TRAP"
	KindSaturation  Kind = "SAT"
	KindGaussian    Kind = "GAUSS"
)

// ParseKind converts a definitions-file token into a Kind.
func ParseKind(token string) (Kind, error) {
	switch Kind(token) {
	case KindTriangular, KindTrapezoidal, KindSaturation, KindGaussian:
		return Kind(token), nil
	default:
		return "", fmt.Errorf("%w: %q", types.ErrUnknownKind, token)
	}
}

// ParamCount returns the number of parameters the kind requires.
func (k Kind) ParamCount() int {
	switch k {
	case KindTriangular:
		return 3
	case KindTrapezoidal:
		return 4
	case KindSaturation, KindGaussian:
		return 2
	default:
		return 0
	}
}

// String returns the display name of the kind.
func (k Kind) String() string {
	switch k {
	case KindTriangular:
		return "Triangular"
	case KindTrapezoidal:
		return "Trapezoidal"
	case KindSaturation:
		return "Saturation"
	case KindGaussian:
		return "Gaussian"
	default:
		return "Unknown"
	}
}

// Triangular evaluates a triangular membership function with the given left,
// center, and right boundaries. The degree is exactly 0 at both boundaries,
// rises linearly to 1 at center, and falls linearly back to 0. Callers must
// supply left < center < right; degenerate spans are caught by ValidateParams,
// not here.
func Triangular(left, center, right, x float64) float64 {
	switch {
	case x <= left || x >= right:
		return 0
	case x <= center:
		return (x - left) / (center - left)
	default:
		return (right - x) / (right - center)
	}
}

// Trapezoidal evaluates a trapezoidal membership function. The degree is 0
// outside [lowLeft, lowRight], rises linearly between lowLeft and upLeft,
// plateaus at 1 between upLeft and upRight, and falls linearly between
// upRight and lowRight.
func Trapezoidal(lowLeft, upLeft, upRight, lowRight, x float64) float64 {
	switch {
	case x <= lowLeft || x >= lowRight:
		return 0
	case x <= upLeft:
		return (x - lowLeft) / (upLeft - lowLeft)
	case x <= upRight:
		return 1
	default:
		return (lowRight - x) / (lowRight - upRight)
	}
}

// Saturation evaluates a monotone ramp whose direction is inferred from the
// relative order of up and down. When up < down the ramp saturates to the
// left: degree 1 for x <= up, 0 for x >= down. When up >= down it saturates
// to the right: degree 1 for x >= up, 0 for x <= down.
func Saturation(up, down, x float64) float64 {
	if up < down {
		switch {
		case x <= up:
			return 1
		case x >= down:
			return 0
		default:
			return 1 - math.Abs((up-x)/(down-up))
		}
	}
	switch {
	case x >= up:
		return 1
	case x <= down:
		return 0
	default:
		return (x - down) / (up - down)
	}
}

// Gaussian evaluates a Gaussian bell curve centered at center with the given
// width. The degree approaches but never reaches 0 away from the center.
// Width must be positive; non-positive widths are caught by ValidateParams.
func Gaussian(center, width, x float64) float64 {
	d := (x - center) / math.Sqrt(2*width)
	return math.Exp(-d * d)
}

// Eval dispatches to the membership function for kind with the stored
// parameters. A parameter count that does not match the kind's arity returns
// ErrParamCount; there is no silent zero at this layer.
func Eval(kind Kind, params []float64, x float64) (float64, error) {
	if len(params) != kind.ParamCount() {
		return 0, fmt.Errorf("%w: %s requires %d, got %d",
			types.ErrParamCount, kind, kind.ParamCount(), len(params))
	}

	switch kind {
	case KindTriangular:
		return Triangular(params[0], params[1], params[2], x), nil
	case KindTrapezoidal:
		return Trapezoidal(params[0], params[1], params[2], params[3], x), nil
	case KindSaturation:
		return Saturation(params[0], params[1], x), nil
	case KindGaussian:
		return Gaussian(params[0], params[1], x), nil
	default:
		return 0, fmt.Errorf("%w: %q", types.ErrUnknownKind, string(kind))
	}
}

// ValidateParams checks a kind/parameter pairing for definition errors:
// wrong arity, non-monotonic triangular or trapezoidal boundaries, a
// degenerate saturation ramp, or a non-positive Gaussian width. Findings are
// returned as diagnostics so callers can choose lenient or strict handling.
func ValidateParams(kind Kind, params []float64, subject string) []types.Diagnostic {
	if len(params) != kind.ParamCount() {
		return []types.Diagnostic{{
			Severity: types.SeverityError,
			Code:     types.CodeBadParamCount,
			Subject:  subject,
			Message: fmt.Sprintf("%s requires %d parameters, got %d",
				kind, kind.ParamCount(), len(params)),
		}}
	}

	var diags []types.Diagnostic
	switch kind {
	case KindTriangular:
		if !(params[0] < params[1] && params[1] < params[2]) {
			diags = append(diags, types.Diagnostic{
				Severity: types.SeverityError,
				Code:     types.CodeNonMonotonic,
				Subject:  subject,
				Message:  "triangular parameters must satisfy left < center < right",
			})
		}
	case KindTrapezoidal:
		if !(params[0] < params[1] && params[1] <= params[2] && params[2] < params[3]) {
			diags = append(diags, types.Diagnostic{
				Severity: types.SeverityError,
				Code:     types.CodeNonMonotonic,
				Subject:  subject,
				Message:  "trapezoidal parameters must be non-decreasing with distinct outer slopes",
			})
		}
	case KindSaturation:
		if params[0] == params[1] {
			diags = append(diags, types.Diagnostic{
				Severity: types.SeverityError,
				Code:     types.CodeDegenerateRamp,
				Subject:  subject,
				Message:  "saturation parameters must differ to define a ramp",
			})
		}
	case KindGaussian:
		if params[1] <= 0 {
			diags = append(diags, types.Diagnostic{
				Severity: types.SeverityError,
				Code:     types.CodeNonPositiveWidth,
				Subject:  subject,
				Message:  fmt.Sprintf("gaussian width must be positive, got %g", params[1]),
			})
		}
	}
	return diags
}
