package sim

import (
	"math"
	"testing"

	"fiscalsim/domain/core"
	"fiscalsim/domain/fiscal"
	"fiscalsim/domain/policy"
	"fiscalsim/internal/safety"
	"fiscalsim/ports"
)

func testScenario() policy.Scenario {
	return policy.NewScenario("universal coverage transition",
		policy.PolicyMechanics{
			Mechanisms: []policy.FundingMechanism{
				{Kind: policy.KindPayrollTax, PercentageRate: 12},
				{Kind: policy.KindConvertedPremiums, PctOfGDP: 7.5, ConversionRate: 0.95, RampYears: 10},
			},
			Target: &policy.TargetSpending{PctGDP: 18, Year: 2036},
			Allocation: &policy.SurplusAllocationRules{
				ContingencyPct:   25,
				DebtReductionPct: 75,
			},
			Breakers: []policy.CircuitBreakerRule{
				{Trigger: policy.TriggerSpendingCap, Threshold: 25, Action: "cap growth"},
			},
		},
		policy.MacroAssumptions{
			GDP:                    29_000,
			Population:             340_000_000,
			StartYear:              2026,
			Horizon:                10,
			BaselineSpendingPctGDP: 24,
			GDPGrowthRate:          0.02,
		},
	)
}

func TestProjectHorizonAndYears(t *testing.T) {
	d := NewDefaultDriver(nil)
	sc := testScenario()

	proj, err := d.Project(sc, FixedGrowth{Rate: 0.02})
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if len(proj.Years) != sc.Assumptions.Horizon {
		t.Fatalf("years = %d, want %d", len(proj.Years), sc.Assumptions.Horizon)
	}
	for i, y := range proj.Years {
		want := sc.Assumptions.StartYear + core.FiscalYear(i)
		if y.Year != want {
			t.Fatalf("year %d labeled %d, want %d", i, y.Year, want)
		}
	}
}

func TestProjectCompoundsGrowth(t *testing.T) {
	d := NewDefaultDriver(nil)
	sc := testScenario()

	proj, err := d.Project(sc, FixedGrowth{Rate: 0.03})
	if err != nil {
		t.Fatalf("Project: %v", err)
	}

	// Year 0 is the starting GDP; each later year compounds at 3%.
	if proj.Years[0].GDP != sc.Assumptions.GDP {
		t.Fatalf("year 0 GDP = %g, want %g", proj.Years[0].GDP, sc.Assumptions.GDP)
	}
	wantFinal := sc.Assumptions.GDP * math.Pow(1.03, float64(len(proj.Years)-1))
	if math.Abs(proj.Years[len(proj.Years)-1].GDP-wantFinal) > 1e-6 {
		t.Fatalf("final GDP = %g, want %g", proj.Years[len(proj.Years)-1].GDP, wantFinal)
	}
}

func TestProjectDeterministicUnderFixedGrowth(t *testing.T) {
	d := NewDefaultDriver(nil)
	sc := testScenario()

	a, err := d.Project(sc, FixedGrowth{Rate: 0.02})
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	b, err := d.Project(sc, FixedGrowth{Rate: 0.02})
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if a.CumulativeSurplus() != b.CumulativeSurplus() {
		t.Fatalf("repeated runs disagree: %g vs %g", a.CumulativeSurplus(), b.CumulativeSurplus())
	}
}

func TestProjectCapsSevereContraction(t *testing.T) {
	var forwarded []fiscal.Warning
	sink := ports.DiagnosticsFunc(func(w fiscal.Warning) { forwarded = append(forwarded, w) })
	d := NewDefaultDriver(sink)

	sc := testScenario()
	sc.Assumptions.Horizon = 2
	sc.Assumptions.AllowNegativeGrowth = true

	// A -25% crash exceeds the historical floor and is capped at -15%.
	proj, err := d.Project(sc, FixedGrowth{Rate: -0.25})
	if err != nil {
		t.Fatalf("Project: %v", err)
	}

	wantGDP := sc.Assumptions.GDP * (1 - 0.15)
	if math.Abs(proj.Years[1].GDP-wantGDP) > 1e-6 {
		t.Fatalf("year 1 GDP = %g, want capped %g", proj.Years[1].GDP, wantGDP)
	}

	found := false
	for _, w := range forwarded {
		if w.Code == fiscal.WarnGrowthCapped {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a %s warning in the sink, got %+v", fiscal.WarnGrowthCapped, forwarded)
	}
}

func TestProjectAttachesWarningsToYears(t *testing.T) {
	d := NewDefaultDriver(nil)

	sc := testScenario()
	sc.Assumptions.Horizon = 3
	sc.Assumptions.AllowNegativeGrowth = true

	proj, err := d.Project(sc, FixedGrowth{Rate: -0.30})
	if err != nil {
		t.Fatalf("Project: %v", err)
	}

	// Year 0 has no growth step, so no capping warning; later years do.
	if len(proj.Years[0].Warnings) != 0 {
		t.Fatalf("year 0 carries warnings: %+v", proj.Years[0].Warnings)
	}
	for i := 1; i < len(proj.Years); i++ {
		var capped *fiscal.Warning
		for j := range proj.Years[i].Warnings {
			if proj.Years[i].Warnings[j].Code == fiscal.WarnGrowthCapped {
				capped = &proj.Years[i].Warnings[j]
			}
		}
		if capped == nil {
			t.Fatalf("year %d missing the capping warning: %+v", i, proj.Years[i].Warnings)
		}
		if capped.Year != proj.Years[i].Year {
			t.Fatalf("warning stamped for year %d, attached to year %d", capped.Year, proj.Years[i].Year)
		}
	}
}

func TestProjectNegativeGrowthDisallowedFloorsAtZero(t *testing.T) {
	d := NewDefaultDriver(nil)

	sc := testScenario()
	sc.Assumptions.Horizon = 2
	sc.Assumptions.AllowNegativeGrowth = false

	proj, err := d.Project(sc, FixedGrowth{Rate: -0.05})
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if proj.Years[1].GDP != sc.Assumptions.GDP {
		t.Fatalf("GDP shrank despite negative growth disabled: %g", proj.Years[1].GDP)
	}
}

func TestProjectRejectsInvalidScenario(t *testing.T) {
	d := NewDefaultDriver(nil)

	sc := testScenario()
	sc.Assumptions.Horizon = 0
	if _, err := d.Project(sc, FixedGrowth{Rate: 0.02}); err == nil {
		t.Fatal("zero horizon should be rejected")
	}

	sc = testScenario()
	sc.Name = ""
	if _, err := d.Project(sc, FixedGrowth{Rate: 0.02}); err == nil {
		t.Fatal("unnamed scenario should be rejected")
	}
}

func TestProjectSingleYearHorizon(t *testing.T) {
	d := NewDefaultDriver(nil)

	sc := testScenario()
	sc.Assumptions.Horizon = 1

	proj, err := d.Project(sc, FixedGrowth{Rate: 0.02})
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if len(proj.Years) != 1 || proj.Years[0].GDP != sc.Assumptions.GDP {
		t.Fatalf("single-year projection = %+v", proj.Years)
	}
}

func TestProjectFloorsDegenerateStartingGDP(t *testing.T) {
	d := NewDefaultDriver(nil)

	sc := testScenario()
	sc.Assumptions.GDP = 0
	sc.Assumptions.Horizon = 2

	proj, err := d.Project(sc, FixedGrowth{Rate: 0.02})
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if proj.Years[0].GDP != safety.MIN_GDP_BILLIONS {
		t.Fatalf("year 0 GDP = %g, want floor %g", proj.Years[0].GDP, safety.MIN_GDP_BILLIONS)
	}
	// The floored value compounds, not the degenerate input.
	want := safety.MIN_GDP_BILLIONS * 1.02
	if math.Abs(proj.Years[1].GDP-want) > 1e-9 {
		t.Fatalf("year 1 GDP = %g, want %g", proj.Years[1].GDP, want)
	}
}
