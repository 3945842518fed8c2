package safety

import (
	"fmt"
	"math"

	"fiscalsim/domain/core"
	"fiscalsim/domain/fiscal"
)

// Extreme-value handling comes in two tiers. GDP growth is in the
// corrected-and-warned tier: the value is capped before use and the caller
// is told. Debt, inflation, and interest rates are detect-only: the raw
// value still flows downstream and the caller decides whether to halt,
// branch, or just display the flag.

// HandleRecessionGDPGrowth clamps an annual growth rate into the historical
// bounds, and additionally floors it at zero when the calling context does
// not permit contraction. The emitted warning carries user severity so the
// UI layer can surface it beside the affected year.
func (g *Guard) HandleRecessionGDPGrowth(growth float64, year core.FiscalYear, allowNegative bool) (float64, bool) {
	adjusted := growth
	if math.IsNaN(adjusted) || math.IsInf(adjusted, 0) {
		adjusted = 0
	}

	if adjusted < g.t.GrowthMin {
		adjusted = g.t.GrowthMin
	}
	if adjusted > g.t.GrowthMax {
		adjusted = g.t.GrowthMax
	}
	if adjusted < 0 && !allowNegative {
		adjusted = 0
	}

	if adjusted != growth {
		w := fiscal.NewWarning(fiscal.SeverityUser, fiscal.WarnGrowthCapped, "gdp_growth",
			"growth %.2f%% capped to %.2f%%", growth*100, adjusted*100)
		w.Year = year
		g.sink.Emit(w)
		return adjusted, true
	}
	return adjusted, false
}

// CheckExtremeDebt flags a debt/GDP ratio beyond the crisis threshold.
// Detection never alters the value. Debt and GDP share a currency unit;
// GDP is floored first so the ratio is always defined.
func (g *Guard) CheckExtremeDebt(debt, gdp float64, year core.FiscalYear) (bool, string) {
	safeGDP := gdp
	if safeGDP < g.t.MinGDP {
		safeGDP = g.t.MinGDP
	}
	ratio := debt / safeGDP
	if ratio <= g.t.DebtRatioMax {
		return false, ""
	}
	msg := fmt.Sprintf("year %d: debt at %.0f%% of GDP exceeds %.0f%%, beyond even Japan's sustained ~260%%",
		year, ratio*100, g.t.DebtRatioMax*100)
	w := fiscal.NewWarning(fiscal.SeverityUser, fiscal.WarnExtremeDebt, "debt_ratio", "%s", msg)
	w.Year = year
	g.sink.Emit(w)
	return true, msg
}

// CheckExtremeInflation flags inflation outside the historical range
func (g *Guard) CheckExtremeInflation(rate float64, year core.FiscalYear) (bool, string) {
	if rate >= g.t.InflationMin && rate <= g.t.InflationMax {
		return false, ""
	}
	var msg string
	if rate < g.t.InflationMin {
		msg = fmt.Sprintf("year %d: deflation of %.1f%% is beyond the early-1930s trough", year, rate*100)
	} else {
		msg = fmt.Sprintf("year %d: inflation of %.1f%% exceeds the postwar OECD peak of ~24%%", year, rate*100)
	}
	w := fiscal.NewWarning(fiscal.SeverityUser, fiscal.WarnExtremeInflation, "inflation", "%s", msg)
	w.Year = year
	g.sink.Emit(w)
	return true, msg
}

// CheckExtremeInterestRate flags nominal rates beyond the Volcker-era peak
func (g *Guard) CheckExtremeInterestRate(rate float64, year core.FiscalYear) (bool, string) {
	if rate <= g.t.InterestRateMax {
		return false, ""
	}
	msg := fmt.Sprintf("year %d: interest rate of %.1f%% exceeds the 1981 Volcker peak of ~20%%", year, rate*100)
	w := fiscal.NewWarning(fiscal.SeverityUser, fiscal.WarnExtremeRate, "interest_rate", "%s", msg)
	w.Year = year
	g.sink.Emit(w)
	return true, msg
}
