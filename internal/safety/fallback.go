package safety

import (
	"fiscalsim/domain/fiscal"
)

// DataTier records which fallback tier resolved a reference value
type DataTier string

const (
	TierProvided DataTier = "provided" // caller-supplied fallback, highest priority
	TierCached   DataTier = "cached"   // previously fetched reference data
	TierDefault  DataTier = "default"  // hardcoded last resort
)

// ReferenceValue is a resolved reference datum tagged with the tier that
// produced it, so downstream consumers can trace where a figure came from.
type ReferenceValue struct {
	Key   string   `json:"key"`
	Value float64  `json:"value"`
	Tier  DataTier `json:"tier"`
}

// Reference data keys with hardcoded last-resort defaults
const (
	RefGDP          = "gdp"
	RefRevenues     = "revenues"
	RefSpending     = "spending"
	RefDebt         = "debt"
	RefInterestRate = "interest_rate"
)

// lastResortDefaults approximate the FY2025 US federal baseline, in
// billions (rate as a fraction). Only consulted when neither a caller
// fallback nor cached data is available.
var lastResortDefaults = map[string]float64{
	RefGDP:          29_000,
	RefRevenues:     4_900,
	RefSpending:     6_800,
	RefDebt:         35_000,
	RefInterestRate: 0.045,
}

// ResolveReferenceData resolves a reference datum through three tiers:
// caller-supplied fallback, then cached data, then the hardcoded defaults.
// It always returns a usable record; an unknown key with no fallback and no
// cache entry resolves to zero at the default tier, with a diagnostic.
func (g *Guard) ResolveReferenceData(key string, fallback *float64, cached map[string]float64) ReferenceValue {
	if fallback != nil {
		return ReferenceValue{Key: key, Value: *fallback, Tier: TierProvided}
	}

	if v, ok := cached[key]; ok {
		g.emit(fiscal.SeverityInfo, fiscal.WarnDataFallback, key,
			"reference data %q resolved from cache: %g", key, v)
		return ReferenceValue{Key: key, Value: v, Tier: TierCached}
	}

	v, ok := lastResortDefaults[key]
	if !ok {
		g.emit(fiscal.SeverityWarn, fiscal.WarnDataFallback, key,
			"no reference data for %q in any tier, resolving to zero", key)
		return ReferenceValue{Key: key, Value: 0, Tier: TierDefault}
	}
	g.emit(fiscal.SeverityInfo, fiscal.WarnDataFallback, key,
		"reference data %q resolved from hardcoded default: %g", key, v)
	return ReferenceValue{Key: key, Value: v, Tier: TierDefault}
}
