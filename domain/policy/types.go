package policy

import (
	"fmt"

	"fiscalsim/domain/core"
)

// ============================================================================
// MECHANISM KINDS (closed set - the revenue calculator matches exhaustively)
// ============================================================================

// MechanismKind identifies how a funding mechanism raises revenue
type MechanismKind string

const (
	KindPayrollTax        MechanismKind = "payroll_tax"        // Flat rate on the wage base
	KindRedirectedFederal MechanismKind = "redirected_federal" // Existing federal spending, redirected
	KindConvertedPremiums MechanismKind = "converted_premiums" // Private premiums converted to public revenue
	KindEfficiencyGains   MechanismKind = "efficiency_gains"   // Systemic savings captured as revenue
	KindOther             MechanismKind = "other"              // Anything else, accumulated unramped
)

// KnownKinds lists the kinds the revenue calculator dispatches on explicitly.
// Any kind outside this set falls into the visible "other sources" branch.
var KnownKinds = []MechanismKind{
	KindPayrollTax,
	KindRedirectedFederal,
	KindConvertedPremiums,
	KindEfficiencyGains,
	KindOther,
}

// CurveShape selects the ramp curve used for phased rollout
type CurveShape string

const (
	CurveLinear  CurveShape = "linear"
	CurveSigmoid CurveShape = "sigmoid"
)

// TriggerType identifies which per-year metric a circuit breaker watches
type TriggerType string

const (
	TriggerSpendingCap    TriggerType = "spending_cap"    // Spending as % of GDP above threshold
	TriggerSurplusTrigger TriggerType = "surplus_trigger" // Surplus as % of GDP above threshold
)

// ============================================================================
// CONFIGURATION TYPES (immutable once validated)
// ============================================================================

// FundingMechanism is one named way a policy raises revenue.
// Percentages are expressed 0-100; ConversionRate is a 0-1 fraction.
// Which fields are meaningful depends on Kind:
//   - payroll_tax: PercentageRate (applied to the wage base)
//   - redirected_federal: PctOfGDP
//   - converted_premiums: PctOfGDP, ConversionRate, RampYears
//   - efficiency_gains: PctOfGDP, RampYears, Curve
//   - other kinds: PctOfGDP, unramped
type FundingMechanism struct {
	Kind           MechanismKind `json:"kind"`
	Name           string        `json:"name,omitempty"`
	PercentageRate float64       `json:"percentage_rate,omitempty"`
	PctOfGDP       float64       `json:"pct_of_gdp,omitempty"`
	ConversionRate float64       `json:"conversion_rate,omitempty"`
	RampYears      int           `json:"ramp_years,omitempty"`
	Curve          CurveShape    `json:"curve,omitempty"`
}

// TargetSpending describes a spending trajectory endpoint: reach PctGDP
// percent of GDP by Year, interpolating from the baseline at the start year.
type TargetSpending struct {
	PctGDP float64         `json:"pct_gdp"`
	Year   core.FiscalYear `json:"year"`
}

// NamedAllocation is one caller-defined surplus bucket beyond the standard
// four. Modeled as an ordered slice, not a map, so serialization and
// breakdown output are deterministic.
type NamedAllocation struct {
	Name string  `json:"name"`
	Pct  float64 `json:"pct"`
}

// SurplusAllocationRules divides a positive surplus across named buckets.
// Percentages are expressed 0-100 and are deliberately NOT required to sum
// to 100: unallocated surplus is implicitly retained, and over-allocation
// is a caller responsibility, never normalized away here.
type SurplusAllocationRules struct {
	ContingencyPct    float64           `json:"contingency_pct,omitempty"`
	DebtReductionPct  float64           `json:"debt_reduction_pct,omitempty"`
	InfrastructurePct float64           `json:"infrastructure_pct,omitempty"`
	DividendPct       float64           `json:"dividend_pct,omitempty"`
	Extra             []NamedAllocation `json:"extra,omitempty"`
}

// CircuitBreakerRule flags a year in which a fiscal metric crosses a
// threshold. Stateless: each year is evaluated independently, with no
// memory of prior triggers.
type CircuitBreakerRule struct {
	Trigger   TriggerType `json:"trigger_type"`
	Threshold float64     `json:"threshold_value"` // percent of GDP
	Action    string      `json:"action"`          // free-text directive
}

// PolicyMechanics is the aggregate policy configuration consumed read-only
// by every calculator. Mechanism order matters only for the accumulation
// order of "other" sources.
type PolicyMechanics struct {
	Mechanisms []FundingMechanism      `json:"funding_mechanisms"`
	Target     *TargetSpending         `json:"target_spending,omitempty"`
	Allocation *SurplusAllocationRules `json:"surplus_allocation,omitempty"`
	Breakers   []CircuitBreakerRule    `json:"circuit_breakers,omitempty"`
}

// ============================================================================
// CONSTRUCTORS & VALIDATION
// ============================================================================

// NewFundingMechanism creates a mechanism and enforces construction-time
// invariants. Malformed mechanisms are a configuration fault and must never
// reach the calculation engine.
func NewFundingMechanism(kind MechanismKind, name string) FundingMechanism {
	return FundingMechanism{Kind: kind, Name: name, Curve: CurveSigmoid}
}

// Validate checks construction invariants for a single mechanism
func (m FundingMechanism) Validate() error {
	if m.Kind == "" {
		return core.NewMechanismError("", "kind must be set")
	}
	if m.RampYears < 0 {
		return core.NewMechanismError(string(m.Kind), fmt.Sprintf("ramp_years must be >= 0, got %d", m.RampYears))
	}
	if m.PercentageRate < 0 || m.PercentageRate > 100 {
		return core.NewMechanismError(string(m.Kind), fmt.Sprintf("percentage_rate must be in [0,100], got %g", m.PercentageRate))
	}
	if m.PctOfGDP < 0 || m.PctOfGDP > 100 {
		return core.NewMechanismError(string(m.Kind), fmt.Sprintf("pct_of_gdp must be in [0,100], got %g", m.PctOfGDP))
	}
	if m.ConversionRate < 0 || m.ConversionRate > 1 {
		return core.NewMechanismError(string(m.Kind), fmt.Sprintf("conversion_rate must be in [0,1], got %g", m.ConversionRate))
	}
	if m.Curve != "" && m.Curve != CurveLinear && m.Curve != CurveSigmoid {
		return core.NewMechanismError(string(m.Kind), fmt.Sprintf("unknown curve shape %q", m.Curve))
	}
	return nil
}

// Validate checks allocation rule invariants. Individual percentages must be
// valid percentages; the SUM is intentionally unconstrained (see type doc).
func (r SurplusAllocationRules) Validate() error {
	named := []struct {
		name string
		pct  float64
	}{
		{"contingency_pct", r.ContingencyPct},
		{"debt_reduction_pct", r.DebtReductionPct},
		{"infrastructure_pct", r.InfrastructurePct},
		{"dividend_pct", r.DividendPct},
	}
	for _, n := range named {
		if n.pct < 0 || n.pct > 100 {
			return fmt.Errorf("%w: %s must be in [0,100], got %g", core.ErrInvalidAllocation, n.name, n.pct)
		}
	}
	seen := make(map[string]bool, len(r.Extra))
	for _, e := range r.Extra {
		if e.Name == "" {
			return fmt.Errorf("%w: extra allocation requires a name", core.ErrInvalidAllocation)
		}
		if seen[e.Name] {
			return fmt.Errorf("%w: duplicate extra allocation %q", core.ErrInvalidAllocation, e.Name)
		}
		seen[e.Name] = true
		if e.Pct < 0 || e.Pct > 100 {
			return fmt.Errorf("%w: extra allocation %q must be in [0,100], got %g", core.ErrInvalidAllocation, e.Name, e.Pct)
		}
	}
	return nil
}

// Validate checks breaker rule invariants
func (b CircuitBreakerRule) Validate() error {
	if b.Trigger != TriggerSpendingCap && b.Trigger != TriggerSurplusTrigger {
		return core.NewBreakerError(string(b.Trigger), "unknown trigger type")
	}
	if b.Threshold < 0 {
		return core.NewBreakerError(string(b.Trigger), fmt.Sprintf("threshold_value must be >= 0, got %g", b.Threshold))
	}
	return nil
}

// Validate checks the whole configuration before it reaches the engine
func (p PolicyMechanics) Validate() error {
	for i, m := range p.Mechanisms {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("mechanism %d: %w", i, err)
		}
	}
	if p.Target != nil {
		if p.Target.PctGDP < 0 || p.Target.PctGDP > 100 {
			return fmt.Errorf("%w: pct_gdp must be in [0,100], got %g", core.ErrInvalidTarget, p.Target.PctGDP)
		}
	}
	if p.Allocation != nil {
		if err := p.Allocation.Validate(); err != nil {
			return err
		}
	}
	for i, b := range p.Breakers {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("breaker %d: %w", i, err)
		}
	}
	return nil
}

// BreakersFor returns the configured rules matching one trigger type,
// preserving declaration order for first-match tie-breaks.
func (p PolicyMechanics) BreakersFor(trigger TriggerType) []CircuitBreakerRule {
	var out []CircuitBreakerRule
	for _, b := range p.Breakers {
		if b.Trigger == trigger {
			out = append(out, b)
		}
	}
	return out
}
