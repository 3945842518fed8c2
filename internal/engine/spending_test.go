package engine

import (
	"testing"

	"fiscalsim/domain/core"
	"fiscalsim/domain/policy"
)

func TestSpendingFromTargetReachesTarget(t *testing.T) {
	e := New(testGuard())

	// Baseline 24% of GDP trending to 18% by 2036. At the target year the
	// net spending equals the target share exactly.
	const gdp = 30_000.0
	target := policy.TargetSpending{PctGDP: 18, Year: 2036}

	got := e.SpendingFromTarget(target, 24, gdp, 2036, 2026)
	want := 0.18 * gdp
	if !approxEqual(got.NetSpending, want, 1e-9) {
		t.Fatalf("net spending at target year = %g, want %g", got.NetSpending, want)
	}
}

func TestSpendingFromTargetInterpolation(t *testing.T) {
	e := New(testGuard())
	const gdp = 30_000.0
	target := policy.TargetSpending{PctGDP: 18, Year: 2036}

	tests := []struct {
		name    string
		year    int
		wantPct float64
	}{
		{name: "start year stays at baseline", year: 2026, wantPct: 24},
		{name: "before start stays at baseline", year: 2020, wantPct: 24},
		{name: "midpoint is halfway", year: 2031, wantPct: 21},
		{name: "past target clamps at target", year: 2050, wantPct: 18},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.SpendingFromTarget(target, 24, gdp, core.FiscalYear(tt.year), 2026)
			want := (tt.wantPct / 100.0) * gdp
			if !approxEqual(got.NetSpending, want, 1e-9) {
				t.Fatalf("net spending in %d = %g, want %g", tt.year, got.NetSpending, want)
			}
		})
	}
}

func TestSpendingBucketsSumToTotal(t *testing.T) {
	e := New(testGuard())
	target := policy.TargetSpending{PctGDP: 18, Year: 2036}

	got := e.SpendingFromTarget(target, 24, 30_000, 2031, 2026)

	sum := got.AdministrativeSavings + got.DrugPricingSavings + got.PreventiveCareSavings + got.OtherSavings
	if got.TotalSavings != sum {
		t.Fatalf("savings buckets %g do not sum to total %g", sum, got.TotalSavings)
	}
	if !approxEqual(got.NetSpending, got.BaselineSpending-got.TotalSavings, 1e-12) {
		t.Fatalf("net %g != baseline %g - savings %g", got.NetSpending, got.BaselineSpending, got.TotalSavings)
	}
}

func TestSpendingTargetAboveBaseline(t *testing.T) {
	e := New(testGuard())

	// A target above the baseline means spending grows: negative savings,
	// net above baseline, reported without correction.
	target := policy.TargetSpending{PctGDP: 28, Year: 2036}
	got := e.SpendingFromTarget(target, 24, 30_000, 2036, 2026)

	if got.TotalSavings >= 0 {
		t.Fatalf("expected negative savings, got %g", got.TotalSavings)
	}
	if got.NetSpending <= got.BaselineSpending {
		t.Fatalf("net %g should exceed baseline %g", got.NetSpending, got.BaselineSpending)
	}
}

func TestSpendingTargetYearEqualsStartYear(t *testing.T) {
	e := New(testGuard())

	// Degenerate horizon: the target year is the start year. The year>=target
	// branch applies, so the target share holds immediately and the zero-span
	// division is never attempted.
	target := policy.TargetSpending{PctGDP: 18, Year: 2026}
	got := e.SpendingFromTarget(target, 24, 30_000, 2026, 2026)
	if want := 0.18 * 30_000; !approxEqual(got.NetSpending, want, 1e-9) {
		t.Fatalf("net spending = %g, want %g", got.NetSpending, want)
	}
}

func TestBaselineSpending(t *testing.T) {
	e := New(testGuard())

	got := e.BaselineSpending(24, 30_000)
	if want := 0.24 * 30_000; !approxEqual(got.BaselineSpending, want, 1e-9) {
		t.Fatalf("baseline = %g, want %g", got.BaselineSpending, want)
	}
	if got.TotalSavings != 0 || got.NetSpending != got.BaselineSpending {
		t.Fatalf("baseline path should carry no savings: %+v", got)
	}
}

func TestStandaloneEstimators(t *testing.T) {
	e := New(testGuard())
	s := e.Guard().Thresholds().Standalone
	const baseline = 7_000.0

	// Fully ramped administrative savings: share * reduction of baseline.
	admin := e.AdministrativeSavings(baseline, s.AdminRampYears)
	if want := baseline * s.AdminCostShare * s.AdminReduction; !approxEqual(admin, want, 1e-9) {
		t.Fatalf("admin savings = %g, want %g", admin, want)
	}

	// Half-ramped drug savings.
	drug := e.DrugPricingSavings(baseline, s.DrugRampYears/2)
	if want := baseline * s.DrugSpendShare * s.DrugPriceReduction * 0.5; !approxEqual(drug, want, 1e-9) {
		t.Fatalf("drug savings = %g, want %g", drug, want)
	}

	// Preventive savings at the sigmoid midpoint are half the ceiling.
	preventive := e.PreventiveCareSavings(baseline, s.PreventiveRamp/2)
	if want := baseline * s.PreventiveShare * 0.5; !approxEqual(preventive, want, 1e-9) {
		t.Fatalf("preventive savings = %g, want %g", preventive, want)
	}

	// Year zero: nothing has phased in yet, except the sigmoid's near-zero tail.
	if got := e.AdministrativeSavings(baseline, 0); got != 0 {
		t.Fatalf("admin savings at year zero = %g, want 0", got)
	}
}

func TestStandaloneSpendingAssembly(t *testing.T) {
	e := New(testGuard())

	got := e.StandaloneSpending(24, 30_000, 2031, 2026)
	if got.OtherSavings != 0 {
		t.Fatalf("standalone path has no other bucket, got %g", got.OtherSavings)
	}
	if got.TotalSavings <= 0 {
		t.Fatalf("expected positive savings five years in, got %g", got.TotalSavings)
	}
	sum := got.AdministrativeSavings + got.DrugPricingSavings + got.PreventiveCareSavings
	if !approxEqual(got.TotalSavings, sum, 1e-12) {
		t.Fatalf("total %g != bucket sum %g", got.TotalSavings, sum)
	}
}
