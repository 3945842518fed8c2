package sim

import (
	"context"
	"fmt"
	"sync"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/semaphore"

	"fiscalsim/domain/core"
	"fiscalsim/domain/policy"
	"fiscalsim/ports"
)

// MonteCarloConfig controls a stochastic projection run
type MonteCarloConfig struct {
	Trials  int    `json:"trials"`
	Workers int    `json:"workers"`
	Seed    uint64 `json:"seed"`
}

// YearBand summarizes one projected year across all trials
type YearBand struct {
	Year         core.FiscalYear `json:"year"`
	SurplusP10   float64         `json:"surplus_p10"`
	SurplusP50   float64         `json:"surplus_p50"`
	SurplusP90   float64         `json:"surplus_p90"`
	RevenueMean  float64         `json:"revenue_mean"`
	SpendingMean float64         `json:"spending_mean"`
	GDPMean      float64         `json:"gdp_mean"`
	BreakerRate  float64         `json:"breaker_rate"` // fraction of trials with a triggered breaker
}

// MonteCarloResult aggregates all trials of one run
type MonteCarloResult struct {
	Trials                int        `json:"trials"`
	Seed                  uint64     `json:"seed"`
	Years                 []YearBand `json:"years"`
	CumulativeSurplusMean float64    `json:"cumulative_surplus_mean"`
	CumulativeSurplusStd  float64    `json:"cumulative_surplus_std"`
	CumulativeSurplusMin  float64    `json:"cumulative_surplus_min"`
	CumulativeSurplusMax  float64    `json:"cumulative_surplus_max"`
}

// MonteCarlo runs Trials independent projections with stochastic growth
// paths and aggregates per-year percentile bands. Trial t draws from seed
// Seed+t, so results are reproducible for a fixed seed regardless of how
// the trials are scheduled. Concurrency is bounded by Workers.
func (d *Driver) MonteCarlo(ctx context.Context, scenario policy.Scenario, cfg MonteCarloConfig) (*MonteCarloResult, error) {
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	if cfg.Trials < 1 {
		return nil, fmt.Errorf("%w: trials must be >= 1, got %d", core.ErrTrialFailed, cfg.Trials)
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	a := scenario.Assumptions
	horizon := a.Horizon

	type trialResult struct {
		surplus  []float64
		revenue  []float64
		spending []float64
		gdp      []float64
		breaker  []bool
	}
	results := make([]*trialResult, cfg.Trials)

	sem := semaphore.NewWeighted(int64(workers))
	var wg sync.WaitGroup
	var firstErr error
	var errOnce sync.Once

	for t := 0; t < cfg.Trials; t++ {
		if err := sem.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		wg.Add(1)
		go func(trial int) {
			defer wg.Done()
			defer sem.Release(1)

			// Per-trial driver: warnings from individual trials are not
			// forwarded, only the deterministic path diagnostics matter.
			trialDriver := NewDriver(d.thresholds, ports.NopDiagnostics())
			growth := NewNormalGrowth(a.GDPGrowthRate, a.GrowthVolatility, cfg.Seed+uint64(trial))

			proj, err := trialDriver.Project(scenario, growth)
			if err != nil {
				errOnce.Do(func() { firstErr = fmt.Errorf("%w: trial %d: %v", core.ErrTrialFailed, trial, err) })
				return
			}

			tr := &trialResult{
				surplus:  make([]float64, horizon),
				revenue:  make([]float64, horizon),
				spending: make([]float64, horizon),
				gdp:      make([]float64, horizon),
				breaker:  make([]bool, horizon),
			}
			for i, y := range proj.Years {
				tr.surplus[i] = y.Surplus
				tr.revenue[i] = y.Revenue.Total
				tr.spending[i] = y.Spending.NetSpending
				tr.gdp[i] = y.GDP
				tr.breaker[i] = len(y.CircuitBreakers) > 0
			}
			results[trial] = tr
		}(t)
	}
	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}

	// Aggregate per-year bands across trials.
	bands := make([]YearBand, horizon)
	for i := 0; i < horizon; i++ {
		surpluses := make([]float64, cfg.Trials)
		revenues := make([]float64, cfg.Trials)
		spendings := make([]float64, cfg.Trials)
		gdps := make([]float64, cfg.Trials)
		triggered := 0
		for t, tr := range results {
			surpluses[t] = tr.surplus[i]
			revenues[t] = tr.revenue[i]
			spendings[t] = tr.spending[i]
			gdps[t] = tr.gdp[i]
			if tr.breaker[i] {
				triggered++
			}
		}

		p10, _ := stats.Percentile(surpluses, 10)
		p50, _ := stats.Percentile(surpluses, 50)
		p90, _ := stats.Percentile(surpluses, 90)
		revMean, _ := stats.Mean(revenues)
		spendMean, _ := stats.Mean(spendings)
		gdpMean, _ := stats.Mean(gdps)

		bands[i] = YearBand{
			Year:         a.StartYear + core.FiscalYear(i),
			SurplusP10:   p10,
			SurplusP50:   p50,
			SurplusP90:   p90,
			RevenueMean:  revMean,
			SpendingMean: spendMean,
			GDPMean:      gdpMean,
			BreakerRate:  float64(triggered) / float64(cfg.Trials),
		}
	}

	cumulative := make([]float64, cfg.Trials)
	for t, tr := range results {
		var sum float64
		for _, s := range tr.surplus {
			sum += s
		}
		cumulative[t] = sum
	}
	cumMean, _ := stats.Mean(cumulative)
	cumStd, _ := stats.StandardDeviation(cumulative)
	cumMin, _ := stats.Min(cumulative)
	cumMax, _ := stats.Max(cumulative)

	return &MonteCarloResult{
		Trials:                cfg.Trials,
		Seed:                  cfg.Seed,
		Years:                 bands,
		CumulativeSurplusMean: cumMean,
		CumulativeSurplusStd:  cumStd,
		CumulativeSurplusMin:  cumMin,
		CumulativeSurplusMax:  cumMax,
	}, nil
}
