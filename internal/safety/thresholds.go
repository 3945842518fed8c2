package safety

// thresholds.go
//
// This file centralizes the floors, caps, and crisis thresholds that the
// safety layer applies to every macro input before it reaches a divisor or
// a growth calculation. They determine the boundary between an input the
// engine will correct-and-warn about and one it merely flags.
//
// The detection thresholds are calibrated against historically observed
// extremes (postwar recessions, hyperinflations, sovereign debt crises), so
// anything beyond them is outside the range this model was built for.
//
// Nothing reads these constants per-call: they are packaged into the
// injectable Thresholds parameter set below so tests and callers can
// override any of them without touching package state.

import (
	"fmt"
)

// ============================================================================
// 1. DIVISION & FLOOR GUARDS - keep every divisor strictly positive
// ============================================================================

const (
	// DIVISION_EPSILON: denominators with absolute value below this are
	// treated as zero and the caller-supplied default is returned instead.
	DIVISION_EPSILON = 1e-10

	// MIN_GDP_BILLIONS: floor applied to GDP before any division. One
	// trillion currency units, with GDP expressed in billions throughout.
	MIN_GDP_BILLIONS = 1000.0

	// MIN_POPULATION: floor applied to population before per-capita math.
	MIN_POPULATION = 1_000_000.0
)

// ============================================================================
// 2. EXTREME-VALUE DETECTION - historical-crisis boundaries
// ============================================================================

const (
	// EXTREME_GDP_GROWTH_MIN: worst plausible annual GDP contraction.
	// The US contracted about 13% in 1932; -15% caps modeled recessions
	// just beyond that.
	EXTREME_GDP_GROWTH_MIN = -0.15

	// EXTREME_GDP_GROWTH_MAX: fastest plausible annual expansion, just
	// above the strongest postwar rebound years.
	EXTREME_GDP_GROWTH_MAX = 0.20

	// EXTREME_DEBT_RATIO: debt/GDP beyond which the model only flags.
	// Japan has sustained roughly 260%; anything above 250% is outside
	// ordinary fiscal dynamics.
	EXTREME_DEBT_RATIO = 2.50

	// EXTREME_INFLATION_MIN / MAX: deflation worse than the early 1930s
	// (about -10% at the trough, -5% sustained) or inflation beyond the
	// postwar peaks (~24% in several OECD economies) is flagged.
	EXTREME_INFLATION_MIN = -0.05
	EXTREME_INFLATION_MAX = 0.25

	// EXTREME_INTEREST_RATE_MAX: nominal rates above the Volcker-era
	// peak (~20%) with margin are flagged.
	EXTREME_INTEREST_RATE_MAX = 0.25
)

// ============================================================================
// 3. REVENUE MODEL CONSTANTS - tunable, not per-call literals
// ============================================================================

const (
	// WAGE_SHARE_OF_GDP: total wages and salaries as a share of GDP.
	// The payroll-tax base is GDP times this share.
	WAGE_SHARE_OF_GDP = 0.53

	// EMPLOYMENT_RATE: employed share of the working-age population.
	// Carried for per-capita extensions of the payroll base.
	EMPLOYMENT_RATE = 0.60
)

// ============================================================================
// 4. SPENDING MODEL CONSTANTS
// ============================================================================

const (
	// Attribution weights splitting target-path savings across the four
	// reporting buckets. An accounting convention for explainability;
	// they sum to 1.
	SAVINGS_WEIGHT_ADMIN      = 0.40
	SAVINGS_WEIGHT_DRUG       = 0.25
	SAVINGS_WEIGHT_PREVENTIVE = 0.20
	SAVINGS_WEIGHT_OTHER      = 0.15

	// Standalone estimator constants (the finer-grained alternative path;
	// the orchestrator does not invoke these by default).
	ADMIN_COST_SHARE     = 0.25 // share of baseline spending that is administrative overhead
	ADMIN_REDUCTION_PCT  = 0.60 // fraction of that overhead a single-payer system removes
	ADMIN_RAMP_YEARS     = 5
	DRUG_SPEND_SHARE     = 0.14 // share of baseline spending on pharmaceuticals
	DRUG_PRICE_REDUCTION = 0.40 // negotiated price reduction at full effect
	DRUG_RAMP_YEARS      = 4
	PREVENTIVE_SAVINGS   = 0.04 // fraction of baseline avoided through preventive care
	PREVENTIVE_RAMP      = 10
)

// ThresholdsVersion identifies the parameter set revision persisted with
// results, so stored projections stay interpretable after recalibration.
const ThresholdsVersion = "2026.1"

// SavingsWeights split attributed savings across the reporting buckets
type SavingsWeights struct {
	Administrative float64
	DrugPricing    float64
	PreventiveCare float64
	Other          float64
}

// StandaloneSavings parameterizes the finer-grained per-mechanism savings
// estimators
type StandaloneSavings struct {
	AdminCostShare     float64
	AdminReduction     float64
	AdminRampYears     int
	DrugSpendShare     float64
	DrugPriceReduction float64
	DrugRampYears      int
	PreventiveShare    float64
	PreventiveRamp     int
}

// Thresholds is the injectable parameter set for the safety layer and the
// calculators. Constructed once (normally via DefaultThresholds), passed at
// construction time, and never mutated afterwards.
type Thresholds struct {
	Version string

	DivisionEpsilon float64
	MinGDP          float64
	MinPopulation   float64

	GrowthMin       float64
	GrowthMax       float64
	DebtRatioMax    float64
	InflationMin    float64
	InflationMax    float64
	InterestRateMax float64

	WageShareOfGDP float64
	EmploymentRate float64

	Savings    SavingsWeights
	Standalone StandaloneSavings
}

// DefaultThresholds returns the documented parameter set
func DefaultThresholds() Thresholds {
	return Thresholds{
		Version:         ThresholdsVersion,
		DivisionEpsilon: DIVISION_EPSILON,
		MinGDP:          MIN_GDP_BILLIONS,
		MinPopulation:   MIN_POPULATION,
		GrowthMin:       EXTREME_GDP_GROWTH_MIN,
		GrowthMax:       EXTREME_GDP_GROWTH_MAX,
		DebtRatioMax:    EXTREME_DEBT_RATIO,
		InflationMin:    EXTREME_INFLATION_MIN,
		InflationMax:    EXTREME_INFLATION_MAX,
		InterestRateMax: EXTREME_INTEREST_RATE_MAX,
		WageShareOfGDP:  WAGE_SHARE_OF_GDP,
		EmploymentRate:  EMPLOYMENT_RATE,
		Savings: SavingsWeights{
			Administrative: SAVINGS_WEIGHT_ADMIN,
			DrugPricing:    SAVINGS_WEIGHT_DRUG,
			PreventiveCare: SAVINGS_WEIGHT_PREVENTIVE,
			Other:          SAVINGS_WEIGHT_OTHER,
		},
		Standalone: StandaloneSavings{
			AdminCostShare:     ADMIN_COST_SHARE,
			AdminReduction:     ADMIN_REDUCTION_PCT,
			AdminRampYears:     ADMIN_RAMP_YEARS,
			DrugSpendShare:     DRUG_SPEND_SHARE,
			DrugPriceReduction: DRUG_PRICE_REDUCTION,
			DrugRampYears:      DRUG_RAMP_YEARS,
			PreventiveShare:    PREVENTIVE_SAVINGS,
			PreventiveRamp:     PREVENTIVE_RAMP,
		},
	}
}

// Validate performs sanity checks on a parameter set before use
func (t Thresholds) Validate() error {
	if t.DivisionEpsilon <= 0 {
		return fmt.Errorf("DivisionEpsilon must be > 0, got %g", t.DivisionEpsilon)
	}
	if t.MinGDP <= 0 {
		return fmt.Errorf("MinGDP must be > 0, got %g", t.MinGDP)
	}
	if t.MinPopulation <= 0 {
		return fmt.Errorf("MinPopulation must be > 0, got %g", t.MinPopulation)
	}
	if t.GrowthMin >= t.GrowthMax {
		return fmt.Errorf("GrowthMin %g must be below GrowthMax %g", t.GrowthMin, t.GrowthMax)
	}
	if t.InflationMin >= t.InflationMax {
		return fmt.Errorf("InflationMin %g must be below InflationMax %g", t.InflationMin, t.InflationMax)
	}
	if t.WageShareOfGDP <= 0 || t.WageShareOfGDP > 1 {
		return fmt.Errorf("WageShareOfGDP out of range: %g not in (0,1]", t.WageShareOfGDP)
	}
	w := t.Savings
	sum := w.Administrative + w.DrugPricing + w.PreventiveCare + w.Other
	if sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("savings attribution weights must sum to 1, got %g", sum)
	}
	return nil
}
