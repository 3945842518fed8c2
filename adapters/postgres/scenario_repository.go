package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"fiscalsim/domain/core"
	"fiscalsim/domain/policy"
	"fiscalsim/ports"
)

// ScenarioRepositoryImpl implements ScenarioRepository for PostgreSQL.
// Mechanics and assumptions are stored as JSONB documents; the row carries
// only the identity and listing columns.
type ScenarioRepositoryImpl struct {
	db *sqlx.DB
}

// NewScenarioRepository creates a new PostgreSQL scenario repository
func NewScenarioRepository(db *sqlx.DB) ports.ScenarioRepository {
	return &ScenarioRepositoryImpl{db: db}
}

type scenarioRow struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Mechanics   []byte    `db:"mechanics"`
	Assumptions []byte    `db:"assumptions"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r *ScenarioRepositoryImpl) Create(ctx context.Context, s *policy.Scenario) error {
	mechanics, err := json.Marshal(s.Mechanics)
	if err != nil {
		return err
	}
	assumptions, err := json.Marshal(s.Assumptions)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO scenarios (id, name, description, mechanics, assumptions, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, s.ID.String(), s.Name, s.Description, mechanics, assumptions, s.CreatedAt.Time(), s.UpdatedAt.Time())
	return err
}

func (r *ScenarioRepositoryImpl) GetByID(ctx context.Context, id core.ScenarioID) (*policy.Scenario, error) {
	var row scenarioRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, name, description, mechanics, assumptions, created_at, updated_at
		FROM scenarios
		WHERE id = $1
	`, id.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.NewNotFoundError("scenario", id.String())
	}
	if err != nil {
		return nil, err
	}
	return rowToScenario(row)
}

func (r *ScenarioRepositoryImpl) List(ctx context.Context, limit, offset int) ([]*policy.Scenario, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []scenarioRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, name, description, mechanics, assumptions, created_at, updated_at
		FROM scenarios
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}

	out := make([]*policy.Scenario, 0, len(rows))
	for _, row := range rows {
		s, err := rowToScenario(row)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *ScenarioRepositoryImpl) Update(ctx context.Context, s *policy.Scenario) error {
	mechanics, err := json.Marshal(s.Mechanics)
	if err != nil {
		return err
	}
	assumptions, err := json.Marshal(s.Assumptions)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE scenarios
		SET name = $2, description = $3, mechanics = $4, assumptions = $5, updated_at = NOW()
		WHERE id = $1
	`, s.ID.String(), s.Name, s.Description, mechanics, assumptions)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.NewNotFoundError("scenario", s.ID.String())
	}
	return nil
}

func (r *ScenarioRepositoryImpl) Delete(ctx context.Context, id core.ScenarioID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM scenarios WHERE id = $1`, id.String())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.NewNotFoundError("scenario", id.String())
	}
	return nil
}

func rowToScenario(row scenarioRow) (*policy.Scenario, error) {
	var mechanics policy.PolicyMechanics
	if err := json.Unmarshal(row.Mechanics, &mechanics); err != nil {
		return nil, err
	}
	var assumptions policy.MacroAssumptions
	if err := json.Unmarshal(row.Assumptions, &assumptions); err != nil {
		return nil, err
	}
	return &policy.Scenario{
		ID:          core.ScenarioID(row.ID),
		Name:        row.Name,
		Description: row.Description,
		Mechanics:   mechanics,
		Assumptions: assumptions,
		CreatedAt:   core.NewTimestamp(row.CreatedAt),
		UpdatedAt:   core.NewTimestamp(row.UpdatedAt),
	}, nil
}
