// Package engine is the mechanism-based fiscal calculation core. It converts
// a declarative policy configuration into year-by-year revenue, spending,
// surplus, and allocation figures, routing every calculation through the
// safety layer so results stay finite under degenerate or historically
// extreme inputs.
//
// The engine is pure and stateless: every method is a deterministic function
// of its inputs, safe to call concurrently for independent years, scenarios,
// or Monte Carlo trials.
package engine

import (
	"fiscalsim/domain/core"
	"fiscalsim/domain/fiscal"
	"fiscalsim/domain/policy"
	"fiscalsim/internal/safety"
)

// Engine composes the four calculators and the circuit breaker evaluator.
// Construct once with a Guard and reuse across years and goroutines.
type Engine struct {
	guard *safety.Guard
}

// New creates an engine bound to the given guard
func New(guard *safety.Guard) *Engine {
	return &Engine{guard: guard}
}

// Guard exposes the engine's safety layer for callers that share it
func (e *Engine) Guard() *safety.Guard {
	return e.guard
}

// YearInputs are the scalar macro inputs for one simulated year
type YearInputs struct {
	GDP                    float64         `json:"gdp"` // billions
	Population             float64         `json:"population"`
	Year                   core.FiscalYear `json:"year"`
	StartYear              core.FiscalYear `json:"start_year"`
	BaselineSpendingPctGDP float64         `json:"baseline_spending_pct_gdp"`
}

// CalculateOutcomes composes revenue, spending, surplus allocation, and the
// circuit breaker evaluation into one year's full outcome record. This is
// the seam a multi-year simulation driver calls once per simulated year.
func (e *Engine) CalculateOutcomes(mechanics policy.PolicyMechanics, in YearInputs) fiscal.YearOutcome {
	gdp := e.guard.ValidateGDP(in.GDP)

	revenue := e.Revenue(mechanics.Mechanisms, gdp, in.Year, in.StartYear)

	var spending fiscal.SpendingBreakdown
	if mechanics.Target != nil {
		spending = e.SpendingFromTarget(*mechanics.Target, in.BaselineSpendingPctGDP, gdp, in.Year, in.StartYear)
	} else {
		spending = e.BaselineSpending(in.BaselineSpendingPctGDP, gdp)
	}

	surplus := revenue.Total - spending.NetSpending

	var allocation *fiscal.SurplusBreakdown
	if mechanics.Allocation != nil {
		b := e.AllocateSurplus(surplus, mechanics.Allocation)
		allocation = &b
	}

	spendingPct := e.guard.SafeDivide(spending.NetSpending, gdp, 0, "outcomes.spending_pct") * 100
	surplusPct := e.guard.SafeDivide(surplus, gdp, 0, "outcomes.surplus_pct") * 100

	var events []fiscal.BreakerEvent
	if triggered, ev := e.EvaluateBreaker(mechanics.Breakers, policy.TriggerSpendingCap, spendingPct); triggered {
		events = append(events, *ev)
	}
	if triggered, ev := e.EvaluateBreaker(mechanics.Breakers, policy.TriggerSurplusTrigger, surplusPct); triggered {
		events = append(events, *ev)
	}

	return fiscal.YearOutcome{
		Year:              in.Year,
		GDP:               gdp,
		Revenue:           revenue,
		Spending:          spending,
		Surplus:           surplus,
		SurplusAllocation: allocation,
		CircuitBreakers:   events,
	}
}
