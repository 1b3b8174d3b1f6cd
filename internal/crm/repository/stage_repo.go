package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devforge-studio/crm-backend/internal/crm/domain"
)

type StageRepo struct {
	db *pgxpool.Pool
}

func NewStageRepo(db *pgxpool.Pool) *StageRepo {
	return &StageRepo{db: db}
}

// List returns all stages ordered for display.
func (r *StageRepo) List(ctx context.Context) ([]domain.ProjectStage, error) {
	const q = `
select id, name, description, sort_order
from project_stages
order by sort_order;
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.ProjectStage, 0, 8)
	for rows.Next() {
		var s domain.ProjectStage
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Order); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Default looks up the proposal stage. The second return reports whether
// it exists; callers decide the fallback policy.
func (r *StageRepo) Default(ctx context.Context) (*domain.ProjectStage, bool, error) {
	const q = `
select id, name, description, sort_order
from project_stages
where name = $1
limit 1;
`
	var s domain.ProjectStage
	err := r.db.QueryRow(ctx, q, domain.StageProposal).
		Scan(&s.ID, &s.Name, &s.Description, &s.Order)
	if err != nil {
		if isNoRows(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return &s, true, nil
}
