package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devforge-studio/crm-backend/internal/crm/domain"
)

type CommunicationRepo struct {
	db *pgxpool.Pool
}

func NewCommunicationRepo(db *pgxpool.Pool) *CommunicationRepo {
	return &CommunicationRepo{db: db}
}

const commColumns = `id, customer_id, type, notes, date`

func (r *CommunicationRepo) List(ctx context.Context) ([]domain.Communication, error) {
	const q = `select ` + commColumns + ` from communications order by date desc;`
	return r.queryMany(ctx, q)
}

func (r *CommunicationRepo) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Communication, error) {
	const q = `select ` + commColumns + ` from communications where customer_id = $1 order by date desc;`
	return r.queryMany(ctx, q, customerID)
}

func (r *CommunicationRepo) GetByID(ctx context.Context, id int64) (*domain.Communication, error) {
	const q = `select ` + commColumns + ` from communications where id = $1;`

	var c domain.Communication
	err := r.db.QueryRow(ctx, q, id).
		Scan(&c.ID, &c.CustomerID, &c.Type, &c.Notes, &c.Date)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Create inserts a communication entry. The date is assigned by the
// datastore at creation and is immutable afterwards.
func (r *CommunicationRepo) Create(ctx context.Context, c *domain.Communication) error {
	const q = `
insert into communications (customer_id, type, notes)
values ($1, $2, $3)
returning id, date;
`
	return r.db.QueryRow(ctx, q, c.CustomerID, c.Type, c.Notes).
		Scan(&c.ID, &c.Date)
}

func (r *CommunicationRepo) queryMany(ctx context.Context, q string, args ...any) ([]domain.Communication, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Communication, 0, 16)
	for rows.Next() {
		var c domain.Communication
		if err := rows.Scan(&c.ID, &c.CustomerID, &c.Type, &c.Notes, &c.Date); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
