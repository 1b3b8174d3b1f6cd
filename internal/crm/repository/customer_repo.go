package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devforge-studio/crm-backend/internal/crm/domain"
)

type CustomerRepo struct {
	db *pgxpool.Pool
}

func NewCustomerRepo(db *pgxpool.Pool) *CustomerRepo {
	return &CustomerRepo{db: db}
}

func (r *CustomerRepo) List(ctx context.Context) ([]domain.Customer, error) {
	const q = `
select id, name, email, phone, address, created_at
from customers
order by created_at desc;
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Customer, 0, 16)
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CustomerRepo) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	const q = `
select id, name, email, phone, address, created_at
from customers
where id = $1;
`
	var c domain.Customer
	err := r.db.QueryRow(ctx, q, id).
		Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Create inserts a customer. Email uniqueness is enforced by the
// datastore, not application-level coordination.
func (r *CustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	const q = `
insert into customers (name, email, phone, address)
values ($1, $2, $3, $4)
returning id, created_at;
`
	err := r.db.QueryRow(ctx, q, c.Name, c.Email, c.Phone, c.Address).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	return nil
}
