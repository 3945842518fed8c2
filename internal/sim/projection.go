package sim

import (
	"fmt"

	"fiscalsim/domain/core"
	"fiscalsim/domain/fiscal"
	"fiscalsim/domain/policy"
	"fiscalsim/internal/engine"
	"fiscalsim/internal/safety"
	"fiscalsim/ports"
)

// Driver owns the multi-year simulation loop around the per-year engine:
// it advances GDP along a growth path, calls the orchestrator once per
// simulated year, and attaches the warnings each year produced.
type Driver struct {
	thresholds safety.Thresholds
	sink       ports.DiagnosticsSink
}

// NewDriver creates a driver. The sink receives every warning in addition
// to the per-year copies attached to outcomes; nil discards them.
func NewDriver(thresholds safety.Thresholds, sink ports.DiagnosticsSink) *Driver {
	if sink == nil {
		sink = ports.NopDiagnostics()
	}
	return &Driver{thresholds: thresholds, sink: sink}
}

// NewDefaultDriver uses the documented thresholds
func NewDefaultDriver(sink ports.DiagnosticsSink) *Driver {
	return NewDriver(safety.DefaultThresholds(), sink)
}

// collectorSink gathers warnings for the year in flight while forwarding
// them to the configured sink. Used by exactly one projection run at a
// time; the Monte Carlo path gives every trial its own driver state.
type collectorSink struct {
	forward ports.DiagnosticsSink
	year    core.FiscalYear
	batch   []fiscal.Warning
}

func (c *collectorSink) Emit(w fiscal.Warning) {
	if w.Year == 0 {
		w.Year = c.year
	}
	c.batch = append(c.batch, w)
	c.forward.Emit(w)
}

func (c *collectorSink) drain(year core.FiscalYear) []fiscal.Warning {
	out := c.batch
	c.batch = nil
	c.year = year + 1
	return out
}

// Project runs the scenario over its configured horizon with the given
// growth sampler. Each step's growth rate passes through the recession
// guard; degenerate GDP values are floored inside the engine rather than
// rejected here.
func (d *Driver) Project(scenario policy.Scenario, growth GrowthSampler) (*fiscal.ProjectionResult, error) {
	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.ID, err)
	}

	a := scenario.Assumptions
	rates := growth.Rates(a.Horizon - 1)
	if a.Horizon > 1 && len(rates) < a.Horizon-1 {
		return nil, fmt.Errorf("%w: need %d rates, got %d", core.ErrEmptyGrowthPath, a.Horizon-1, len(rates))
	}

	collector := &collectorSink{forward: d.sink, year: a.StartYear}
	guard := safety.NewGuard(d.thresholds, collector)
	eng := engine.New(guard)

	gdp := a.GDP
	years := make([]fiscal.YearOutcome, 0, a.Horizon)

	for i := 0; i < a.Horizon; i++ {
		year := a.StartYear + core.FiscalYear(i)
		if i > 0 {
			rate, _ := guard.HandleRecessionGDPGrowth(rates[i-1], year, a.AllowNegativeGrowth)
			gdp *= 1 + rate
		}

		outcome := eng.CalculateOutcomes(scenario.Mechanics, engine.YearInputs{
			GDP:                    gdp,
			Population:             a.Population,
			Year:                   year,
			StartYear:              a.StartYear,
			BaselineSpendingPctGDP: a.BaselineSpendingPctGDP,
		})
		outcome.Warnings = collector.drain(year)
		years = append(years, outcome)

		// Validated GDP carries forward so the growth step next year
		// compounds from the floored value, not the degenerate input.
		gdp = outcome.GDP
	}

	return &fiscal.ProjectionResult{
		ID:        core.NewProjectionID(),
		StartYear: a.StartYear,
		Years:     years,
		CreatedAt: core.Now(),
	}, nil
}
