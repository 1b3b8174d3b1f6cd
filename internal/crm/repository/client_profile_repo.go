package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devforge-studio/crm-backend/internal/crm/domain"
)

type ClientProfileRepo struct {
	db *pgxpool.Pool
}

func NewClientProfileRepo(db *pgxpool.Pool) *ClientProfileRepo {
	return &ClientProfileRepo{db: db}
}

func (r *ClientProfileRepo) GetByCustomerID(ctx context.Context, customerID int64) (*domain.ClientProfile, error) {
	const q = `
select customer_id, company_size, industry, preferred_communication,
       billing_address, tax_id, created_at, updated_at
from client_profiles
where customer_id = $1;
`
	var p domain.ClientProfile
	err := r.db.QueryRow(ctx, q, customerID).
		Scan(&p.CustomerID, &p.CompanySize, &p.Industry, &p.PreferredCommunication,
			&p.BillingAddress, &p.TaxID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}
