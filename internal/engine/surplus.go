package engine

import (
	"fiscalsim/domain/fiscal"
	"fiscalsim/domain/policy"
)

// AllocateSurplus distributes a surplus across the configured buckets.
// A non-positive surplus or absent rules yields an all-zero breakdown:
// there is never anything to allocate out of a deficit.
//
// Percentages are taken at face value. Rule sets summing above or below
// 100% are permitted on purpose - partial allocation leaves the remainder
// implicitly retained, and over-allocation is the caller's responsibility.
func (e *Engine) AllocateSurplus(surplus float64, rules *policy.SurplusAllocationRules) fiscal.SurplusBreakdown {
	if surplus <= 0 || rules == nil {
		return fiscal.NewSurplusBreakdown(0, 0, 0, 0, nil)
	}

	contingency := surplus * rules.ContingencyPct / 100.0
	debt := surplus * rules.DebtReductionPct / 100.0
	infrastructure := surplus * rules.InfrastructurePct / 100.0
	dividends := surplus * rules.DividendPct / 100.0

	var other []fiscal.NamedAmount
	for _, extra := range rules.Extra {
		other = append(other, fiscal.NamedAmount{
			Name:   extra.Name,
			Amount: surplus * extra.Pct / 100.0,
		})
	}

	return fiscal.NewSurplusBreakdown(contingency, debt, infrastructure, dividends, other)
}
