package policy

import (
	"fmt"

	"fiscalsim/domain/core"
)

// MacroAssumptions are the scalar macro inputs supplied alongside a policy.
// GDP is in billions; growth rates are decimal fractions (0.02 == 2%).
type MacroAssumptions struct {
	GDP                    float64         `json:"gdp"`
	Population             float64         `json:"population"`
	StartYear              core.FiscalYear `json:"start_year"`
	Horizon                int             `json:"horizon"` // number of years to project
	BaselineSpendingPctGDP float64         `json:"baseline_spending_pct_gdp"`
	GDPGrowthRate          float64         `json:"gdp_growth_rate"`
	GrowthVolatility       float64         `json:"growth_volatility,omitempty"` // stddev for stochastic paths
	AllowNegativeGrowth    bool            `json:"allow_negative_growth"`
}

// Validate checks the assumptions a projection cannot start without.
// Degenerate GDP/population values are NOT rejected here: the safety layer
// floors them at run time and warns, per the corrected-and-warned policy.
func (a MacroAssumptions) Validate() error {
	if a.Horizon < 1 {
		return fmt.Errorf("%w: horizon must be >= 1, got %d", core.ErrInvalidHorizon, a.Horizon)
	}
	if a.BaselineSpendingPctGDP < 0 || a.BaselineSpendingPctGDP > 100 {
		return fmt.Errorf("%w: baseline_spending_pct_gdp must be in [0,100], got %g", core.ErrInvalidTarget, a.BaselineSpendingPctGDP)
	}
	return nil
}

// Scenario bundles a policy configuration with macro assumptions under a
// stable identity, the unit of persistence and of one projection run.
type Scenario struct {
	ID          core.ScenarioID  `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Mechanics   PolicyMechanics  `json:"mechanics"`
	Assumptions MacroAssumptions `json:"assumptions"`
	CreatedAt   core.Timestamp   `json:"created_at"`
	UpdatedAt   core.Timestamp   `json:"updated_at"`
}

// NewScenario creates a scenario with a fresh ID and timestamps
func NewScenario(name string, mechanics PolicyMechanics, assumptions MacroAssumptions) Scenario {
	now := core.Now()
	return Scenario{
		ID:          core.NewScenarioID(),
		Name:        name,
		Mechanics:   mechanics,
		Assumptions: assumptions,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Validate checks the whole scenario before it is stored or projected
func (s Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: scenario name is required", core.ErrInvalidMechanism)
	}
	if err := s.Mechanics.Validate(); err != nil {
		return err
	}
	return s.Assumptions.Validate()
}
