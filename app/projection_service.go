package app

import (
	"context"

	"fiscalsim/domain/core"
	"fiscalsim/domain/fiscal"
	"fiscalsim/domain/policy"
	"fiscalsim/internal/errors"
	"fiscalsim/internal/sim"
	"fiscalsim/ports"
)

// ProjectionService composes the simulation driver with scenario storage.
// It is the application-facing seam the API and CLI call; the engine
// itself stays pure underneath.
type ProjectionService struct {
	driver      *sim.Driver
	scenarios   ports.ScenarioRepository
	projections ports.ProjectionRepository
}

// NewProjectionService wires the service. Repositories may be nil for
// storage-less (standalone) use; storage-backed methods then return an error.
func NewProjectionService(driver *sim.Driver, scenarios ports.ScenarioRepository, projections ports.ProjectionRepository) *ProjectionService {
	return &ProjectionService{
		driver:      driver,
		scenarios:   scenarios,
		projections: projections,
	}
}

// Project runs a scenario with a deterministic growth path and, when
// storage is configured, persists the result.
func (s *ProjectionService) Project(ctx context.Context, scenario policy.Scenario) (*fiscal.ProjectionResult, error) {
	if err := scenario.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid scenario")
	}

	growth := sim.FixedGrowth{Rate: scenario.Assumptions.GDPGrowthRate}
	result, err := s.driver.Project(scenario, growth)
	if err != nil {
		return nil, errors.Wrap(err, "projection failed")
	}

	if s.projections != nil {
		if err := s.projections.Store(ctx, scenario.ID, result); err != nil {
			return nil, errors.Wrap(err, "failed to store projection")
		}
	}
	return result, nil
}

// ProjectStored loads a scenario by ID and projects it
func (s *ProjectionService) ProjectStored(ctx context.Context, id core.ScenarioID) (*fiscal.ProjectionResult, error) {
	if s.scenarios == nil {
		return nil, errors.ScenarioInvalid("scenario storage is not configured")
	}
	scenario, err := s.scenarios.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Project(ctx, *scenario)
}

// MonteCarlo runs a stochastic projection of a scenario
func (s *ProjectionService) MonteCarlo(ctx context.Context, scenario policy.Scenario, cfg sim.MonteCarloConfig) (*sim.MonteCarloResult, error) {
	if err := scenario.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid scenario")
	}
	result, err := s.driver.MonteCarlo(ctx, scenario, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "monte carlo run failed")
	}
	return result, nil
}

// SaveScenario validates and persists a scenario
func (s *ProjectionService) SaveScenario(ctx context.Context, scenario *policy.Scenario) error {
	if s.scenarios == nil {
		return errors.ScenarioInvalid("scenario storage is not configured")
	}
	if err := scenario.Validate(); err != nil {
		return errors.Wrap(err, "invalid scenario")
	}
	return s.scenarios.Create(ctx, scenario)
}

// GetScenario loads a scenario by ID
func (s *ProjectionService) GetScenario(ctx context.Context, id core.ScenarioID) (*policy.Scenario, error) {
	if s.scenarios == nil {
		return nil, errors.ScenarioInvalid("scenario storage is not configured")
	}
	return s.scenarios.GetByID(ctx, id)
}

// ListScenarios pages through stored scenarios
func (s *ProjectionService) ListScenarios(ctx context.Context, limit, offset int) ([]*policy.Scenario, error) {
	if s.scenarios == nil {
		return nil, errors.ScenarioInvalid("scenario storage is not configured")
	}
	return s.scenarios.List(ctx, limit, offset)
}

// DeleteScenario removes a scenario and its stored projections
func (s *ProjectionService) DeleteScenario(ctx context.Context, id core.ScenarioID) error {
	if s.scenarios == nil {
		return errors.ScenarioInvalid("scenario storage is not configured")
	}
	return s.scenarios.Delete(ctx, id)
}
