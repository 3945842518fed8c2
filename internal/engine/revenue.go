package engine

import (
	"fiscalsim/domain/core"
	"fiscalsim/domain/fiscal"
	"fiscalsim/domain/policy"
)

// Revenue converts the configured funding mechanisms into a per-source
// revenue breakdown for one year. GDP is in billions; configured
// percentages are 0-100. An empty mechanism list yields an all-zero
// breakdown, never an error.
func (e *Engine) Revenue(mechanisms []policy.FundingMechanism, gdp float64, year, startYear core.FiscalYear) fiscal.RevenueBreakdown {
	gdp = e.guard.ValidateGDP(gdp)
	yearsSince := year.YearsSince(startYear)

	var payroll, redirected, premiums, efficiency float64
	var other []fiscal.NamedAmount

	for _, m := range mechanisms {
		switch m.Kind {
		case policy.KindPayrollTax:
			// Flat rate on the wage base, applied immediately at full rate.
			wageBase := gdp * e.guard.Thresholds().WageShareOfGDP
			payroll += (m.PercentageRate / 100.0) * wageBase

		case policy.KindRedirectedFederal:
			// Existing federal outlays redirected on day one, no ramp.
			redirected += (m.PctOfGDP / 100.0) * gdp

		case policy.KindConvertedPremiums:
			p := progress(e.guard, policy.CurveLinear, yearsSince, m.RampYears)
			premiums += (m.PctOfGDP / 100.0) * gdp * m.ConversionRate * p

		case policy.KindEfficiencyGains:
			curve := m.Curve
			if curve == "" {
				curve = policy.CurveSigmoid
			}
			p := progress(e.guard, curve, yearsSince, m.RampYears)
			efficiency += (m.PctOfGDP / 100.0) * gdp * p

		default:
			// Deliberate catch-all: any kind outside the closed set above
			// (including KindOther) accumulates here at its raw
			// percentage-of-GDP, unramped, in declaration order.
			name := m.Name
			if name == "" {
				name = string(m.Kind)
			}
			other = append(other, fiscal.NamedAmount{
				Name:   name,
				Amount: (m.PctOfGDP / 100.0) * gdp,
			})
		}
	}

	return fiscal.NewRevenueBreakdown(payroll, redirected, premiums, efficiency, other)
}
