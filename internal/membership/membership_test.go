package membership

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boshu2/fuzzy/internal/types"
)

func TestTriangular(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		want float64
	}{
		{"at left boundary", 0, 0},
		{"at right boundary", 40, 0},
		{"at center", 20, 1},
		{"rising half", 10, 0.5},
		{"falling half", 30, 0.5},
		{"left of support", -5, 0},
		{"right of support", 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Triangular(0, 20, 40, tt.x)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestTriangular_MonotoneOnHalves(t *testing.T) {
	prev := 0.0
	for x := 0.0; x <= 20; x += 0.5 {
		d := Triangular(0, 20, 40, x)
		assert.GreaterOrEqual(t, d, prev, "rising half must be monotone at x=%g", x)
		prev = d
	}
	prev = 1.0
	for x := 20.0; x <= 40; x += 0.5 {
		d := Triangular(0, 20, 40, x)
		assert.LessOrEqual(t, d, prev, "falling half must be monotone at x=%g", x)
		prev = d
	}
}

func TestTrapezoidal(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		want float64
	}{
		{"below support", 5, 0},
		{"at lower left", 10, 0},
		{"rising slope", 15, 0.5},
		{"plateau left edge", 20, 1},
		{"plateau middle", 25, 1},
		{"plateau right edge", 30, 1},
		{"falling slope", 35, 0.5},
		{"at lower right", 40, 0},
		{"above support", 50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Trapezoidal(10, 20, 30, 40, tt.x)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestSaturation_RampUp(t *testing.T) {
	// up >= down: saturates to the right (ascending ramp).
	assert.InDelta(t, 1, Saturation(60, 40, 70), 1e-9)
	assert.InDelta(t, 1, Saturation(60, 40, 60), 1e-9)
	assert.InDelta(t, 0.5, Saturation(60, 40, 50), 1e-9)
	assert.InDelta(t, 0, Saturation(60, 40, 40), 1e-9)
	assert.InDelta(t, 0, Saturation(60, 40, 10), 1e-9)
}

func TestSaturation_RampDown(t *testing.T) {
	// up < down: saturates to the left (descending ramp).
	assert.InDelta(t, 1, Saturation(20, 50, 10), 1e-9)
	assert.InDelta(t, 1, Saturation(20, 50, 20), 1e-9)
	assert.InDelta(t, 0.5, Saturation(20, 50, 35), 1e-9)
	assert.InDelta(t, 0, Saturation(20, 50, 50), 1e-9)
	assert.InDelta(t, 0, Saturation(20, 50, 60), 1e-9)
}

func TestGaussian(t *testing.T) {
	// Peak at the center, symmetric, strictly positive everywhere.
	assert.InDelta(t, 1, Gaussian(50, 10, 50), 1e-9)
	assert.InDelta(t, Gaussian(50, 10, 40), Gaussian(50, 10, 60), 1e-9)
	assert.Greater(t, Gaussian(50, 10, 45), Gaussian(50, 10, 40))
	assert.Greater(t, Gaussian(50, 10, 500), 0.0)
	assert.Less(t, Gaussian(50, 10, 500), 1e-6)

	// exp(-((x-c)/sqrt(2w))^2) at one width from center
	want := math.Exp(-math.Pow(10/math.Sqrt(20), 2))
	assert.InDelta(t, want, Gaussian(50, 10, 60), 1e-12)
}

func TestParseKind(t *testing.T) {
	for token, want := range map[string]Kind{
		"TRIANG": KindTriangular,
		"TRAP":   KindTrapezoidal,
		"SAT":    KindSaturation,
		"GAUSS":  KindGaussian,
	} {
		got, err := ParseKind(token)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseKind("SIGMOID")
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrUnknownKind))
}

func TestKind_ParamCount(t *testing.T) {
	assert.Equal(t, 3, KindTriangular.ParamCount())
	assert.Equal(t, 4, KindTrapezoidal.ParamCount())
	assert.Equal(t, 2, KindSaturation.ParamCount())
	assert.Equal(t, 2, KindGaussian.ParamCount())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "Triangular", KindTriangular.String())
	assert.Equal(t, "Trapezoidal", KindTrapezoidal.String())
	assert.Equal(t, "Saturation", KindSaturation.String())
	assert.Equal(t, "Gaussian", KindGaussian.String())
	assert.Equal(t, "Unknown", Kind("BOGUS").String())
}

func TestEval_Dispatch(t *testing.T) {
	got, err := Eval(KindTriangular, []float64{0, 20, 40}, 20)
	require.NoError(t, err)
	assert.InDelta(t, 1, got, 1e-9)

	got, err = Eval(KindSaturation, []float64{60, 40}, 50)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, got, 1e-9)

	got, err = Eval(KindGaussian, []float64{50, 10}, 50)
	require.NoError(t, err)
	assert.InDelta(t, 1, got, 1e-9)

	got, err = Eval(KindTrapezoidal, []float64{10, 20, 30, 40}, 25)
	require.NoError(t, err)
	assert.InDelta(t, 1, got, 1e-9)
}

func TestEval_ParamCountMismatch(t *testing.T) {
	_, err := Eval(KindTriangular, []float64{0, 20}, 10)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrParamCount))

	_, err = Eval(KindGaussian, []float64{50, 10, 3}, 10)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrParamCount))
}

func TestValidateParams(t *testing.T) {
	tests := []struct {
		name     string
		kind     Kind
		params   []float64
		wantCode string
	}{
		{"valid triangular", KindTriangular, []float64{0, 20, 40}, ""},
		{"triangular arity", KindTriangular, []float64{0, 20}, types.CodeBadParamCount},
		{"triangular not monotone", KindTriangular, []float64{40, 20, 0}, types.CodeNonMonotonic},
		{"triangular degenerate", KindTriangular, []float64{0, 0, 40}, types.CodeNonMonotonic},
		{"valid trapezoidal", KindTrapezoidal, []float64{10, 20, 30, 40}, ""},
		{"trapezoidal not monotone", KindTrapezoidal, []float64{10, 50, 30, 40}, types.CodeNonMonotonic},
		{"valid saturation", KindSaturation, []float64{60, 40}, ""},
		{"saturation degenerate", KindSaturation, []float64{40, 40}, types.CodeDegenerateRamp},
		{"valid gaussian", KindGaussian, []float64{50, 10}, ""},
		{"gaussian zero width", KindGaussian, []float64{50, 0}, types.CodeNonPositiveWidth},
		{"gaussian negative width", KindGaussian, []float64{50, -3}, types.CodeNonPositiveWidth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := ValidateParams(tt.kind, tt.params, "test_set")
			if tt.wantCode == "" {
				assert.Empty(t, diags)
				return
			}
			require.Len(t, diags, 1)
			assert.Equal(t, tt.wantCode, diags[0].Code)
			assert.Equal(t, types.SeverityError, diags[0].Severity)
			assert.Equal(t, "test_set", diags[0].Subject)
		})
	}
}
