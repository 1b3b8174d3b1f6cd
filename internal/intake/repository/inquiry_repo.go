package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devforge-studio/crm-backend/internal/intake/domain"
)

type InquiryRepo struct {
	db *pgxpool.Pool
}

func NewInquiryRepo(db *pgxpool.Pool) *InquiryRepo {
	return &InquiryRepo{db: db}
}

// Create inserts the inquiry with a freshly generated identifier. The
// caller never supplies the ID.
func (r *InquiryRepo) Create(ctx context.Context, inq *domain.ContactInquiry) error {
	inq.InquiryID = uuid.New()

	const q = `
insert into contact_inquiries (
    inquiry_id, full_name, company, email, phone,
    project_type, project_description, preferred_technologies,
    budget_range, timeline, communication_method, meeting_platform,
    confidentiality
)
values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
returning created_at;
`
	return r.db.QueryRow(ctx, q,
		inq.InquiryID, inq.FullName, inq.Company, inq.Email, inq.Phone,
		inq.ProjectType, inq.ProjectDescription, inq.PreferredTechnologies,
		inq.BudgetRange, inq.Timeline, inq.CommunicationMethod, inq.MeetingPlatform,
		inq.Confidentiality,
	).Scan(&inq.CreatedAt)
}

// UpdateDocumentPaths records where the stored attachments live.
func (r *InquiryRepo) UpdateDocumentPaths(ctx context.Context, id uuid.UUID, requirementsDoc, ndaDoc *string) error {
	const q = `
update contact_inquiries
set requirements_doc = $2, nda_doc = $3
where inquiry_id = $1;
`
	_, err := r.db.Exec(ctx, q, id, requirementsDoc, ndaDoc)
	return err
}

// Delete removes an inquiry. Used as the compensating rollback when file
// storage fails after the record was created.
func (r *InquiryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `delete from contact_inquiries where inquiry_id = $1;`, id)
	return err
}
