package engine

import (
	"math"
	"testing"

	"fiscalsim/domain/policy"
)

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestRevenuePayrollTax(t *testing.T) {
	e := New(testGuard())

	// 15% payroll tax against a 29_000B GDP with a 53% wage share:
	// 0.15 * 29_000 * 0.53 = 2305.5.
	mechs := []policy.FundingMechanism{
		{Kind: policy.KindPayrollTax, PercentageRate: 15},
	}
	got := e.Revenue(mechs, 29_000, 2026, 2026)

	if !approxEqual(got.PayrollTax, 2305.5, 1e-9) {
		t.Fatalf("payroll tax = %g, want 2305.5", got.PayrollTax)
	}
	if !approxEqual(got.Total, 2305.5, 1e-9) {
		t.Fatalf("total = %g, want 2305.5", got.Total)
	}
}

func TestRevenueRedirectedFederalNoRamp(t *testing.T) {
	e := New(testGuard())

	mechs := []policy.FundingMechanism{
		{Kind: policy.KindRedirectedFederal, PctOfGDP: 6.5, RampYears: 10},
	}
	// Year one of the projection: redirected outlays ignore the ramp.
	got := e.Revenue(mechs, 29_000, 2026, 2026)
	if want := 0.065 * 29_000; !approxEqual(got.RedirectedFederal, want, 1e-9) {
		t.Fatalf("redirected = %g, want %g", got.RedirectedFederal, want)
	}
}

func TestRevenueConvertedPremiumsRamp(t *testing.T) {
	e := New(testGuard())

	// 7.5% of GDP, 95% conversion rate, 10-year linear ramp, 5 years in:
	// 0.075 * gdp * 0.95 * 0.5.
	const gdp = 30_000.0
	mechs := []policy.FundingMechanism{
		{Kind: policy.KindConvertedPremiums, PctOfGDP: 7.5, ConversionRate: 0.95, RampYears: 10},
	}
	got := e.Revenue(mechs, gdp, 2031, 2026)

	want := 0.075 * gdp * 0.95 * 0.5
	if !approxEqual(got.ConvertedPremiums, want, 1e-9) {
		t.Fatalf("premiums = %g, want %g", got.ConvertedPremiums, want)
	}
}

func TestRevenueEfficiencyGainsDefaultsToSigmoid(t *testing.T) {
	e := New(testGuard())

	const gdp = 20_000.0
	mech := policy.FundingMechanism{Kind: policy.KindEfficiencyGains, PctOfGDP: 2, RampYears: 8}

	// Midpoint of a sigmoid ramp is exactly half effect.
	got := e.Revenue([]policy.FundingMechanism{mech}, gdp, 2030, 2026)
	want := 0.02 * gdp * 0.5
	if !approxEqual(got.EfficiencyGains, want, 1e-9) {
		t.Fatalf("efficiency at midpoint = %g, want %g", got.EfficiencyGains, want)
	}

	// An explicit linear curve behaves linearly instead.
	mech.Curve = policy.CurveLinear
	got = e.Revenue([]policy.FundingMechanism{mech}, gdp, 2028, 2026)
	want = 0.02 * gdp * 0.25
	if !approxEqual(got.EfficiencyGains, want, 1e-9) {
		t.Fatalf("efficiency linear quarter = %g, want %g", got.EfficiencyGains, want)
	}
}

func TestRevenueUnknownKindFallsThrough(t *testing.T) {
	e := New(testGuard())

	mechs := []policy.FundingMechanism{
		{Kind: policy.KindOther, Name: "wealth_levy", PctOfGDP: 1.5},
		{Kind: policy.MechanismKind("future_mechanism"), PctOfGDP: 0.5},
	}
	got := e.Revenue(mechs, 10_000, 2026, 2026)

	if len(got.OtherSources) != 2 {
		t.Fatalf("other sources = %d, want 2", len(got.OtherSources))
	}
	if got.OtherSources[0].Name != "wealth_levy" || !approxEqual(got.OtherSources[0].Amount, 150, 1e-9) {
		t.Fatalf("first other source = %+v", got.OtherSources[0])
	}
	// Unnamed mechanism falls back to its kind string.
	if got.OtherSources[1].Name != "future_mechanism" || !approxEqual(got.OtherSources[1].Amount, 50, 1e-9) {
		t.Fatalf("second other source = %+v", got.OtherSources[1])
	}
}

func TestRevenueEmptyMechanisms(t *testing.T) {
	e := New(testGuard())

	got := e.Revenue(nil, 29_000, 2026, 2026)
	if got.Total != 0 {
		t.Fatalf("total for empty mechanism list = %g, want 0", got.Total)
	}
}

func TestRevenueTotalEqualsComponentSum(t *testing.T) {
	e := New(testGuard())

	mechs := []policy.FundingMechanism{
		{Kind: policy.KindPayrollTax, PercentageRate: 12},
		{Kind: policy.KindRedirectedFederal, PctOfGDP: 6},
		{Kind: policy.KindConvertedPremiums, PctOfGDP: 7.5, ConversionRate: 0.9, RampYears: 10},
		{Kind: policy.KindEfficiencyGains, PctOfGDP: 1.5, RampYears: 8},
		{Kind: policy.KindOther, Name: "tariff", PctOfGDP: 0.3},
	}
	got := e.Revenue(mechs, 29_000, 2030, 2026)

	sum := got.PayrollTax + got.RedirectedFederal + got.ConvertedPremiums + got.EfficiencyGains
	for _, o := range got.OtherSources {
		sum += o.Amount
	}
	if !approxEqual(got.Total, sum, 1e-9) {
		t.Fatalf("total %g != component sum %g", got.Total, sum)
	}
}

func TestRevenueIdempotent(t *testing.T) {
	e := New(testGuard())

	mechs := []policy.FundingMechanism{
		{Kind: policy.KindPayrollTax, PercentageRate: 15},
		{Kind: policy.KindConvertedPremiums, PctOfGDP: 7.5, ConversionRate: 0.95, RampYears: 10},
	}
	first := e.Revenue(mechs, 29_000, 2031, 2026)
	second := e.Revenue(mechs, 29_000, 2031, 2026)

	if first.Total != second.Total || first.PayrollTax != second.PayrollTax {
		t.Fatalf("repeated calls disagree: %+v vs %+v", first, second)
	}
}

func TestRevenueFloorsDegenerateGDP(t *testing.T) {
	e := New(testGuard())

	mechs := []policy.FundingMechanism{
		{Kind: policy.KindPayrollTax, PercentageRate: 10},
	}
	// Zero GDP is floored to the minimum rather than producing zeros.
	got := e.Revenue(mechs, 0, 2026, 2026)
	want := 0.10 * 1000 * 0.53
	if !approxEqual(got.PayrollTax, want, 1e-9) {
		t.Fatalf("payroll with floored GDP = %g, want %g", got.PayrollTax, want)
	}
}
