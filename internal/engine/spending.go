package engine

import (
	"fiscalsim/domain/core"
	"fiscalsim/domain/fiscal"
	"fiscalsim/domain/policy"
)

// The spending calculator has two paths.
//
// The target path (SpendingFromTarget) interpolates the spending share of
// GDP from the baseline toward a configured target and attributes the
// resulting savings across four reporting buckets with fixed weights. This
// is what the orchestrator invokes when a target is configured.
//
// The standalone path (AdministrativeSavings and friends) estimates each
// savings mechanism from its own sector shares and sub-ramps. It is the
// finer-grained alternative, kept for callers that want mechanism-level
// estimates; the orchestrator does not invoke it by default.

// BaselineSpending is the no-trajectory case: spending stays at the
// baseline share of GDP and no savings accrue.
func (e *Engine) BaselineSpending(baselinePctGDP, gdp float64) fiscal.SpendingBreakdown {
	gdp = e.guard.ValidateGDP(gdp)
	baseline := (baselinePctGDP / 100.0) * gdp
	return fiscal.NewSpendingBreakdown(baseline, 0, 0, 0, 0)
}

// SpendingFromTarget linearly interpolates the spending percentage of GDP
// from baselinePctGDP at startYear to target.PctGDP at target.Year, with
// progress clamped at 1 once the target year is reached. Savings are the
// baseline-minus-interpolated gap; a target above the baseline yields
// negative savings and a net spending above baseline, which is reported
// as-is rather than silently corrected.
func (e *Engine) SpendingFromTarget(target policy.TargetSpending, baselinePctGDP, gdp float64, year, startYear core.FiscalYear) fiscal.SpendingBreakdown {
	gdp = e.guard.ValidateGDP(gdp)

	var frac float64
	switch {
	case year >= target.Year:
		frac = 1.0
	case year <= startYear:
		frac = 0.0
	default:
		frac = e.guard.SafeDivide(
			float64(year-startYear),
			float64(target.Year-startYear),
			1.0, "spending.target_progress")
		if frac > 1 {
			frac = 1
		}
	}

	currentPct := baselinePctGDP + (target.PctGDP-baselinePctGDP)*frac
	baseline := (baselinePctGDP / 100.0) * gdp
	totalSavings := ((baselinePctGDP - currentPct) / 100.0) * gdp

	// Attribution convention: fixed weights, with the "other" bucket taking
	// the remainder so the buckets sum to the total exactly.
	w := e.guard.Thresholds().Savings
	admin := totalSavings * w.Administrative
	drug := totalSavings * w.DrugPricing
	preventive := totalSavings * w.PreventiveCare
	other := totalSavings - admin - drug - preventive

	return fiscal.NewSpendingBreakdown(baseline, admin, drug, preventive, other)
}

// ============================================================================
// STANDALONE ESTIMATORS (alternative path)
// ============================================================================

// AdministrativeSavings estimates overhead savings from the administrative
// share of baseline spending, phased in linearly over its own sub-ramp.
func (e *Engine) AdministrativeSavings(baselineSpending float64, yearsSinceStart int) float64 {
	s := e.guard.Thresholds().Standalone
	p := progress(e.guard, policy.CurveLinear, yearsSinceStart, s.AdminRampYears)
	return baselineSpending * s.AdminCostShare * s.AdminReduction * p
}

// DrugPricingSavings estimates negotiated-price savings on the
// pharmaceutical share of baseline spending, linear sub-ramp.
func (e *Engine) DrugPricingSavings(baselineSpending float64, yearsSinceStart int) float64 {
	s := e.guard.Thresholds().Standalone
	p := progress(e.guard, policy.CurveLinear, yearsSinceStart, s.DrugRampYears)
	return baselineSpending * s.DrugSpendShare * s.DrugPriceReduction * p
}

// PreventiveCareSavings estimates avoided spending from preventive care.
// Sigmoid sub-ramp: population health effects arrive slowly, then compound.
func (e *Engine) PreventiveCareSavings(baselineSpending float64, yearsSinceStart int) float64 {
	s := e.guard.Thresholds().Standalone
	p := progress(e.guard, policy.CurveSigmoid, yearsSinceStart, s.PreventiveRamp)
	return baselineSpending * s.PreventiveShare * p
}

// StandaloneSpending assembles a breakdown from the per-mechanism
// estimators. Alternative to SpendingFromTarget; not the orchestrator's
// default path.
func (e *Engine) StandaloneSpending(baselinePctGDP, gdp float64, year, startYear core.FiscalYear) fiscal.SpendingBreakdown {
	gdp = e.guard.ValidateGDP(gdp)
	baseline := (baselinePctGDP / 100.0) * gdp
	yearsSince := year.YearsSince(startYear)

	admin := e.AdministrativeSavings(baseline, yearsSince)
	drug := e.DrugPricingSavings(baseline, yearsSince)
	preventive := e.PreventiveCareSavings(baseline, yearsSince)

	return fiscal.NewSpendingBreakdown(baseline, admin, drug, preventive, 0)
}
