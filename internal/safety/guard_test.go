package safety

import (
	"math"
	"testing"

	"fiscalsim/domain/fiscal"
	"fiscalsim/ports"
)

// recorder captures emitted warnings for assertions
type recorder struct {
	warnings []fiscal.Warning
}

func (r *recorder) Emit(w fiscal.Warning) {
	r.warnings = append(r.warnings, w)
}

func newTestGuard() (*Guard, *recorder) {
	rec := &recorder{}
	return NewGuard(DefaultThresholds(), rec), rec
}

func TestSafeDivide(t *testing.T) {
	tests := []struct {
		name        string
		num, den    float64
		def         float64
		want        float64
		wantDefault bool
	}{
		{name: "normal division", num: 10, den: 4, def: -1, want: 2.5},
		{name: "zero denominator", num: 10, den: 0, def: -1, want: -1, wantDefault: true},
		{name: "near-zero denominator", num: 10, den: 1e-12, def: 7, want: 7, wantDefault: true},
		{name: "negative near-zero", num: 10, den: -1e-11, def: 3, want: 3, wantDefault: true},
		{name: "epsilon boundary passes", num: 1, den: 1e-9, def: 0, want: 1e9},
		{name: "negative denominator", num: 6, den: -2, def: 0, want: -3},
		{name: "nan numerator", num: math.NaN(), den: 2, def: 5, want: 5, wantDefault: true},
		{name: "inf numerator", num: math.Inf(1), den: 2, def: 5, want: 5, wantDefault: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, rec := newTestGuard()
			got := g.SafeDivide(tt.num, tt.den, tt.def, "test")
			if got != tt.want {
				t.Fatalf("SafeDivide(%g, %g) = %g, want %g", tt.num, tt.den, got, tt.want)
			}
			if math.IsNaN(got) || math.IsInf(got, 0) {
				t.Fatalf("SafeDivide returned non-finite %g", got)
			}
			if tt.wantDefault && len(rec.warnings) == 0 {
				t.Fatal("expected a diagnostic when the default is returned")
			}
			if tt.wantDefault && rec.warnings[0].Code != fiscal.WarnDivisionGuard {
				t.Fatalf("expected DIVISION_GUARD, got %s", rec.warnings[0].Code)
			}
		})
	}
}

func TestValidateGDP(t *testing.T) {
	g, rec := newTestGuard()

	// Below the floor: corrected and warned.
	if got := g.ValidateGDP(0); got != MIN_GDP_BILLIONS {
		t.Fatalf("ValidateGDP(0) = %g, want %g", got, MIN_GDP_BILLIONS)
	}
	if got := g.ValidateGDP(-5000); got != MIN_GDP_BILLIONS {
		t.Fatalf("ValidateGDP(-5000) = %g, want %g", got, MIN_GDP_BILLIONS)
	}
	if len(rec.warnings) != 2 {
		t.Fatalf("expected 2 floor warnings, got %d", len(rec.warnings))
	}

	// At or above the floor: identity, no warning.
	before := len(rec.warnings)
	for _, gdp := range []float64{MIN_GDP_BILLIONS, 29000, 1e9} {
		if got := g.ValidateGDP(gdp); got != gdp {
			t.Fatalf("ValidateGDP(%g) = %g, want identity", gdp, got)
		}
	}
	if len(rec.warnings) != before {
		t.Fatal("identity cases must not warn")
	}
}

func TestValidatePopulation(t *testing.T) {
	g, _ := newTestGuard()
	if got := g.ValidatePopulation(0); got != MIN_POPULATION {
		t.Fatalf("ValidatePopulation(0) = %g, want %g", got, MIN_POPULATION)
	}
	if got := g.ValidatePopulation(330e6); got != 330e6 {
		t.Fatalf("ValidatePopulation above floor must be identity, got %g", got)
	}
}

func TestClampValue(t *testing.T) {
	g, _ := newTestGuard()

	tests := []struct {
		name        string
		value       float64
		min, max    float64
		want        float64
		wantClamped bool
	}{
		{name: "inside range", value: 0.5, min: 0, max: 1, want: 0.5},
		{name: "below min", value: -0.2, min: 0, max: 1, want: 0, wantClamped: true},
		{name: "above max", value: 1.7, min: 0, max: 1, want: 1, wantClamped: true},
		{name: "at boundary", value: 1.0, min: 0, max: 1, want: 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, clamped := g.ClampValue(tt.value, tt.min, tt.max, "test_value")
			if got != tt.want || clamped != tt.wantClamped {
				t.Fatalf("ClampValue(%g) = (%g, %v), want (%g, %v)", tt.value, got, clamped, tt.want, tt.wantClamped)
			}
		})
	}
}

func TestValidatePercentages(t *testing.T) {
	g, _ := newTestGuard()

	tests := []struct {
		name          string
		pcts          []float64
		allowNegative bool
		allowOver100  bool
		want          bool
	}{
		{name: "all valid", pcts: []float64{0, 0.5, 1.0}, want: true},
		{name: "negative rejected", pcts: []float64{0.5, -0.1}, want: false},
		{name: "negative allowed", pcts: []float64{0.5, -0.1}, allowNegative: true, want: true},
		{name: "over 100 rejected", pcts: []float64{1.5}, want: false},
		{name: "over 100 allowed", pcts: []float64{1.5}, allowOver100: true, want: true},
		{name: "nan always rejected", pcts: []float64{math.NaN()}, allowNegative: true, allowOver100: true, want: false},
		{name: "empty list valid", pcts: nil, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.ValidatePercentages(tt.pcts, tt.allowNegative, tt.allowOver100); got != tt.want {
				t.Fatalf("ValidatePercentages(%v) = %v, want %v", tt.pcts, got, tt.want)
			}
		})
	}
}

func TestNilSinkIsSafe(t *testing.T) {
	g := NewGuard(DefaultThresholds(), nil)
	if got := g.SafeDivide(1, 0, 9, "nil_sink"); got != 9 {
		t.Fatalf("SafeDivide with nil sink = %g, want 9", got)
	}
}

func TestThresholdsValidate(t *testing.T) {
	if err := DefaultThresholds().Validate(); err != nil {
		t.Fatalf("default thresholds must validate: %v", err)
	}

	bad := DefaultThresholds()
	bad.Savings.Other = 0.5
	if err := bad.Validate(); err == nil {
		t.Fatal("expected weight-sum validation to fail")
	}

	bad = DefaultThresholds()
	bad.GrowthMin = bad.GrowthMax
	if err := bad.Validate(); err == nil {
		t.Fatal("expected growth bound validation to fail")
	}
}

var _ ports.DiagnosticsSink = (*recorder)(nil)
