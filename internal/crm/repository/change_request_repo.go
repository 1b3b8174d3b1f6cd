package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devforge-studio/crm-backend/internal/crm/domain"
)

type ChangeRequestRepo struct {
	db *pgxpool.Pool
}

func NewChangeRequestRepo(db *pgxpool.Pool) *ChangeRequestRepo {
	return &ChangeRequestRepo{db: db}
}

func (r *ChangeRequestRepo) ListByProject(ctx context.Context, projectID int64) ([]domain.ChangeRequest, error) {
	const q = `
select id, project_id, requester_id, description, priority, status,
       created_at, updated_at
from change_requests
where project_id = $1
order by created_at desc;
`
	rows, err := r.db.Query(ctx, q, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.ChangeRequest, 0, 8)
	for rows.Next() {
		var cr domain.ChangeRequest
		if err := rows.Scan(&cr.ID, &cr.ProjectID, &cr.RequesterID, &cr.Description,
			&cr.Priority, &cr.Status, &cr.CreatedAt, &cr.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, cr)
	}
	return out, rows.Err()
}
