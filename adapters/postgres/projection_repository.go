package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"fiscalsim/domain/core"
	"fiscalsim/domain/fiscal"
	"fiscalsim/ports"
)

// ProjectionRepositoryImpl stores projection results as JSONB documents
// keyed by scenario
type ProjectionRepositoryImpl struct {
	db *sqlx.DB
}

// NewProjectionRepository creates a new PostgreSQL projection repository
func NewProjectionRepository(db *sqlx.DB) ports.ProjectionRepository {
	return &ProjectionRepositoryImpl{db: db}
}

type projectionRow struct {
	ID         string    `db:"id"`
	ScenarioID string    `db:"scenario_id"`
	StartYear  int       `db:"start_year"`
	Result     []byte    `db:"result"`
	CreatedAt  time.Time `db:"created_at"`
}

func (r *ProjectionRepositoryImpl) Store(ctx context.Context, scenarioID core.ScenarioID, result *fiscal.ProjectionResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO projections (id, scenario_id, start_year, result, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, result.ID.String(), scenarioID.String(), int(result.StartYear), payload, result.CreatedAt.Time())
	return err
}

func (r *ProjectionRepositoryImpl) GetByID(ctx context.Context, id core.ProjectionID) (*fiscal.ProjectionResult, error) {
	var row projectionRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, scenario_id, start_year, result, created_at
		FROM projections
		WHERE id = $1
	`, id.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.NewNotFoundError("projection", id.String())
	}
	if err != nil {
		return nil, err
	}
	return rowToProjection(row)
}

func (r *ProjectionRepositoryImpl) ListByScenario(ctx context.Context, scenarioID core.ScenarioID, limit int) ([]*fiscal.ProjectionResult, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []projectionRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, scenario_id, start_year, result, created_at
		FROM projections
		WHERE scenario_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, scenarioID.String(), limit)
	if err != nil {
		return nil, err
	}

	out := make([]*fiscal.ProjectionResult, 0, len(rows))
	for _, row := range rows {
		p, err := rowToProjection(row)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func rowToProjection(row projectionRow) (*fiscal.ProjectionResult, error) {
	var result fiscal.ProjectionResult
	if err := json.Unmarshal(row.Result, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
