package safety

import (
	"math"

	"fiscalsim/domain/fiscal"
	"fiscalsim/ports"
)

// Guard binds a Thresholds parameter set to a diagnostics sink and carries
// the guarded-arithmetic primitives. Every calculation in the engine routes
// its divisions and macro inputs through a Guard; none of its methods can
// fail, panic, or return NaN/Inf.
//
// A Guard is immutable after construction and safe for concurrent use.
type Guard struct {
	t    Thresholds
	sink ports.DiagnosticsSink
}

// NewGuard creates a guard. A nil sink discards diagnostics.
func NewGuard(t Thresholds, sink ports.DiagnosticsSink) *Guard {
	if sink == nil {
		sink = ports.NopDiagnostics()
	}
	return &Guard{t: t, sink: sink}
}

// NewDefaultGuard is the common case: documented thresholds, given sink
func NewDefaultGuard(sink ports.DiagnosticsSink) *Guard {
	return NewGuard(DefaultThresholds(), sink)
}

// Thresholds returns the parameter set the guard was built with
func (g *Guard) Thresholds() Thresholds {
	return g.t
}

func (g *Guard) emit(sev fiscal.Severity, code fiscal.WarningCode, context, format string, args ...interface{}) {
	g.sink.Emit(fiscal.NewWarning(sev, code, context, format, args...))
}

// SafeDivide returns numerator/denominator unless the denominator is
// effectively zero or the result is non-finite, in which case it returns
// def and emits a diagnostic tagged with context.
func (g *Guard) SafeDivide(numerator, denominator, def float64, context string) float64 {
	if math.Abs(denominator) < g.t.DivisionEpsilon {
		g.emit(fiscal.SeverityWarn, fiscal.WarnDivisionGuard, context,
			"denominator %g below epsilon, using default %g", denominator, def)
		return def
	}
	result := numerator / denominator
	if math.IsNaN(result) || math.IsInf(result, 0) {
		g.emit(fiscal.SeverityWarn, fiscal.WarnDivisionGuard, context,
			"non-finite result from %g/%g, using default %g", numerator, denominator, def)
		return def
	}
	return result
}

// ValidateGDP floors GDP at the configured minimum so it is always a safe
// divisor, logging when the floor applies
func (g *Guard) ValidateGDP(gdp float64) float64 {
	if gdp < g.t.MinGDP {
		g.emit(fiscal.SeverityWarn, fiscal.WarnGDPFloored, "validate_gdp",
			"gdp %g below floor, using %g", gdp, g.t.MinGDP)
		return g.t.MinGDP
	}
	return gdp
}

// ValidatePopulation floors population at the configured minimum
func (g *Guard) ValidatePopulation(pop float64) float64 {
	if pop < g.t.MinPopulation {
		g.emit(fiscal.SeverityWarn, fiscal.WarnPopulationFloor, "validate_population",
			"population %g below floor, using %g", pop, g.t.MinPopulation)
		return g.t.MinPopulation
	}
	return pop
}

// ClampValue clamps value into [min, max] and reports whether it had to.
// Callers that surface warnings to users check the second return.
func (g *Guard) ClampValue(value, min, max float64, name string) (float64, bool) {
	if value < min {
		g.emit(fiscal.SeverityWarn, fiscal.WarnValueClamped, name,
			"%s %g below minimum, clamped to %g", name, value, min)
		return min, true
	}
	if value > max {
		g.emit(fiscal.SeverityWarn, fiscal.WarnValueClamped, name,
			"%s %g above maximum, clamped to %g", name, value, max)
		return max, true
	}
	return value, false
}

// ValidatePercentages range-checks decimal percentages (0.15 == 15%).
// Rejects on the first out-of-range value; nothing is partially applied.
func (g *Guard) ValidatePercentages(pcts []float64, allowNegative, allowOver100 bool) bool {
	for _, p := range pcts {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return false
		}
		if p < 0 && !allowNegative {
			return false
		}
		if p > 1.0 && !allowOver100 {
			return false
		}
	}
	return true
}
