package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devforge-studio/crm-backend/internal/crm/domain"
)

type ProjectRepo struct {
	db *pgxpool.Pool
}

func NewProjectRepo(db *pgxpool.Pool) *ProjectRepo {
	return &ProjectRepo{db: db}
}

const projectColumns = `
id, title, description, image, link, technologies, capabilities,
created_at, current_stage_id, budget_used::text, estimated_completion`

func scanProject(row interface{ Scan(...any) error }) (*domain.Project, error) {
	var p domain.Project
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Image, &p.Link,
		&p.Technologies, &p.Capabilities, &p.CreatedAt, &p.CurrentStageID,
		&p.BudgetUsed, &p.EstimatedCompletion)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepo) List(ctx context.Context) ([]domain.Project, error) {
	const q = `select ` + projectColumns + ` from projects order by created_at desc;`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// Create inserts a project. BudgetUsed starts at zero; the stage is
// whatever the caller resolved (possibly none).
func (r *ProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	const q = `
insert into projects (title, description, image, link, technologies,
                      capabilities, current_stage_id, estimated_completion)
values ($1, $2, $3, $4, $5, $6, $7, $8)
returning id, created_at, budget_used::text;
`
	return r.db.QueryRow(ctx, q, p.Title, p.Description, p.Image, p.Link,
		p.Technologies, p.Capabilities, p.CurrentStageID, p.EstimatedCompletion).
		Scan(&p.ID, &p.CreatedAt, &p.BudgetUsed)
}

func (r *ProjectRepo) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	const q = `select ` + projectColumns + ` from projects where id = $1;`

	p, err := scanProject(r.db.QueryRow(ctx, q, id))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}
