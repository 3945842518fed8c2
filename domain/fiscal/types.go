package fiscal

import (
	"fiscalsim/domain/core"
)

// ============================================================================
// PER-YEAR BREAKDOWN RECORDS
//
// Each breakdown is a fresh value created for one simulated year and
// consumed once. Totals are derived at construction, never settable
// independently, so total == sum(components) holds by construction.
// ============================================================================

// NamedAmount is one caller-defined component of a breakdown. Ordered slice,
// not a map: serialization and flat-map output stay deterministic.
type NamedAmount struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// RevenueBreakdown is the per-source revenue for one year, in the same
// currency unit as GDP (billions throughout this package).
type RevenueBreakdown struct {
	PayrollTax        float64       `json:"payroll_tax"`
	RedirectedFederal float64       `json:"redirected_federal"`
	ConvertedPremiums float64       `json:"converted_premiums"`
	EfficiencyGains   float64       `json:"efficiency_gains"`
	OtherSources      []NamedAmount `json:"other_sources,omitempty"`
	Total             float64       `json:"total"`
}

// NewRevenueBreakdown derives the total from the components
func NewRevenueBreakdown(payroll, redirected, premiums, efficiency float64, other []NamedAmount) RevenueBreakdown {
	total := payroll + redirected + premiums + efficiency
	for _, o := range other {
		total += o.Amount
	}
	return RevenueBreakdown{
		PayrollTax:        payroll,
		RedirectedFederal: redirected,
		ConvertedPremiums: premiums,
		EfficiencyGains:   efficiency,
		OtherSources:      other,
		Total:             total,
	}
}

// ToMap flattens the breakdown into field name -> value, including every
// caller-defined other source. Lossless: no component is dropped.
func (r RevenueBreakdown) ToMap() map[string]float64 {
	m := map[string]float64{
		"payroll_tax":        r.PayrollTax,
		"redirected_federal": r.RedirectedFederal,
		"converted_premiums": r.ConvertedPremiums,
		"efficiency_gains":   r.EfficiencyGains,
		"total":              r.Total,
	}
	for _, o := range r.OtherSources {
		m["other_"+o.Name] = o.Amount
	}
	return m
}

// SpendingBreakdown attributes total savings against the baseline across
// four named buckets. The attribution is an accounting convention for
// explainability, not an independent estimate. NetSpending is derived:
// baseline minus total savings. It can exceed the baseline when a target
// above baseline is configured; that is not corrected here.
type SpendingBreakdown struct {
	BaselineSpending      float64 `json:"baseline_spending"`
	AdministrativeSavings float64 `json:"administrative_savings"`
	DrugPricingSavings    float64 `json:"drug_pricing_savings"`
	PreventiveCareSavings float64 `json:"preventive_care_savings"`
	OtherSavings          float64 `json:"other_savings"`
	TotalSavings          float64 `json:"total_savings"`
	NetSpending           float64 `json:"net_spending"`
}

// NewSpendingBreakdown derives totals from the baseline and per-bucket savings
func NewSpendingBreakdown(baseline, admin, drug, preventive, other float64) SpendingBreakdown {
	total := admin + drug + preventive + other
	return SpendingBreakdown{
		BaselineSpending:      baseline,
		AdministrativeSavings: admin,
		DrugPricingSavings:    drug,
		PreventiveCareSavings: preventive,
		OtherSavings:          other,
		TotalSavings:          total,
		NetSpending:           baseline - total,
	}
}

// ToMap flattens the breakdown into field name -> value
func (s SpendingBreakdown) ToMap() map[string]float64 {
	return map[string]float64{
		"baseline_spending":       s.BaselineSpending,
		"administrative_savings":  s.AdministrativeSavings,
		"drug_pricing_savings":    s.DrugPricingSavings,
		"preventive_care_savings": s.PreventiveCareSavings,
		"other_savings":           s.OtherSavings,
		"total_savings":           s.TotalSavings,
		"net_spending":            s.NetSpending,
	}
}

// SurplusBreakdown distributes a positive surplus across allocation buckets.
// All-zero whenever the surplus is non-positive or no rules are configured.
type SurplusBreakdown struct {
	ContingencyReserve float64       `json:"contingency_reserve"`
	DebtReduction      float64       `json:"debt_reduction"`
	Infrastructure     float64       `json:"infrastructure"`
	Dividends          float64       `json:"dividends"`
	OtherAllocations   []NamedAmount `json:"other_allocations,omitempty"`
	Total              float64       `json:"total"`
}

// NewSurplusBreakdown derives the total from the components
func NewSurplusBreakdown(contingency, debt, infrastructure, dividends float64, other []NamedAmount) SurplusBreakdown {
	total := contingency + debt + infrastructure + dividends
	for _, o := range other {
		total += o.Amount
	}
	return SurplusBreakdown{
		ContingencyReserve: contingency,
		DebtReduction:      debt,
		Infrastructure:     infrastructure,
		Dividends:          dividends,
		OtherAllocations:   other,
		Total:              total,
	}
}

// ToMap flattens the breakdown into field name -> value, including every
// caller-defined allocation bucket
func (s SurplusBreakdown) ToMap() map[string]float64 {
	m := map[string]float64{
		"contingency_reserve": s.ContingencyReserve,
		"debt_reduction":      s.DebtReduction,
		"infrastructure":      s.Infrastructure,
		"dividends":           s.Dividends,
		"total":               s.Total,
	}
	for _, o := range s.OtherAllocations {
		m["alloc_"+o.Name] = o.Amount
	}
	return m
}

// ============================================================================
// COMPOSITE OUTCOME
// ============================================================================

// BreakerEvent records one triggered circuit breaker for a year
type BreakerEvent struct {
	Trigger   string  `json:"trigger_type"`
	Threshold float64 `json:"threshold_value"`
	Metric    float64 `json:"metric_value"`
	Message   string  `json:"message"`
}

// YearOutcome is the full outcome record for one simulated year. The surplus
// allocation pointer is nil when no allocation rules were configured.
type YearOutcome struct {
	Year              core.FiscalYear   `json:"year"`
	GDP               float64           `json:"gdp"`
	Revenue           RevenueBreakdown  `json:"revenue"`
	Spending          SpendingBreakdown `json:"spending"`
	Surplus           float64           `json:"surplus"`
	SurplusAllocation *SurplusBreakdown `json:"surplus_allocation,omitempty"`
	CircuitBreakers   []BreakerEvent    `json:"circuit_breakers,omitempty"`
	Warnings          []Warning         `json:"warnings,omitempty"`
}

// ToMap flattens the outcome into prefixed field name -> value for display
// or export. Breaker events and warnings are not numeric and are omitted.
func (o YearOutcome) ToMap() map[string]float64 {
	m := map[string]float64{
		"year":    float64(o.Year),
		"gdp":     o.GDP,
		"surplus": o.Surplus,
	}
	for k, v := range o.Revenue.ToMap() {
		m["revenue_"+k] = v
	}
	for k, v := range o.Spending.ToMap() {
		m["spending_"+k] = v
	}
	if o.SurplusAllocation != nil {
		for k, v := range o.SurplusAllocation.ToMap() {
			m["allocation_"+k] = v
		}
	}
	return m
}

// ProjectionResult is the multi-year product of the simulation driver
type ProjectionResult struct {
	ID        core.ProjectionID `json:"id"`
	StartYear core.FiscalYear   `json:"start_year"`
	Years     []YearOutcome     `json:"years"`
	CreatedAt core.Timestamp    `json:"created_at"`
}

// CumulativeSurplus sums the surplus across all projected years
func (p ProjectionResult) CumulativeSurplus() float64 {
	var sum float64
	for _, y := range p.Years {
		sum += y.Surplus
	}
	return sum
}

// TriggeredYears returns the years in which at least one breaker fired
func (p ProjectionResult) TriggeredYears() []core.FiscalYear {
	var out []core.FiscalYear
	for _, y := range p.Years {
		if len(y.CircuitBreakers) > 0 {
			out = append(out, y.Year)
		}
	}
	return out
}
