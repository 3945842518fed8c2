package ports

import (
	"context"

	"fiscalsim/domain/core"
	"fiscalsim/domain/fiscal"
	"fiscalsim/domain/policy"
)

// ScenarioRepository persists policy scenarios. Implementations own the
// storage format; the engine itself never touches persistence.
type ScenarioRepository interface {
	Create(ctx context.Context, s *policy.Scenario) error
	GetByID(ctx context.Context, id core.ScenarioID) (*policy.Scenario, error)
	List(ctx context.Context, limit, offset int) ([]*policy.Scenario, error)
	Update(ctx context.Context, s *policy.Scenario) error
	Delete(ctx context.Context, id core.ScenarioID) error
}

// ProjectionRepository stores the results of projection runs keyed by the
// scenario they were produced from
type ProjectionRepository interface {
	Store(ctx context.Context, scenarioID core.ScenarioID, result *fiscal.ProjectionResult) error
	GetByID(ctx context.Context, id core.ProjectionID) (*fiscal.ProjectionResult, error)
	ListByScenario(ctx context.Context, scenarioID core.ScenarioID, limit int) ([]*fiscal.ProjectionResult, error)
}
