// Package intake orchestrates the contact-inquiry workflow: CAPTCHA
// verification, strict field and attachment validation, persistence,
// file promotion, and a best-effort confirmation email.
package intake

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/devforge-studio/crm-backend/internal/intake/captcha"
	"github.com/devforge-studio/crm-backend/internal/intake/domain"
	"github.com/devforge-studio/crm-backend/internal/intake/storage"
)

// MaxAttachmentBytes is the default per-file size ceiling (5 MB), used
// when the configuration does not supply one.
const MaxAttachmentBytes = 5 * 1024 * 1024

const pdfContentType = "application/pdf"

// ClientError is a 4xx-class failure: the submission was rejected before
// any state changed.
type ClientError struct {
	Message string
}

func (e *ClientError) Error() string { return e.Message }

func clientErrorf(format string, args ...any) *ClientError {
	return &ClientError{Message: fmt.Sprintf(format, args...)}
}

// InquiryStore is the persistence surface the workflow needs.
type InquiryStore interface {
	Create(ctx context.Context, inq *domain.ContactInquiry) error
	UpdateDocumentPaths(ctx context.Context, id uuid.UUID, requirementsDoc, ndaDoc *string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Attachment is an uploaded file as received from the transport.
type Attachment struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// Submission carries the parsed multipart fields. Technologies reports
// the repeated preferredTechnologies[] values; ScalarTechnologies is set
// when the client sent a single scalar field instead, which is always
// rejected rather than coerced.
type Submission struct {
	CaptchaToken string

	FullName           string
	Company            string
	Email              string
	Phone              string
	ProjectType        string
	ProjectDescription string
	BudgetRange        string
	Timeline           string
	CommMethod         string
	MeetingPlatform    string
	Confidentiality    bool

	Technologies      []string
	ScalarTechnology  string
	HasScalarTechKey  bool

	RequirementsDoc *Attachment
	NDADoc          *Attachment
}

// Result is the workflow outcome for a persisted inquiry. Warning is set
// when the confirmation email could not be delivered.
type Result struct {
	InquiryID uuid.UUID
	Warning   string
}

type Service struct {
	store        InquiryStore
	verifier     captcha.Verifier
	files        storage.FileStore
	mailer       Mailer
	technologies []string

	schedulingLink string
	maxFileBytes   int64
	mailTimeout    time.Duration
}

// Mailer matches the mailer package interface; declared here so tests can
// stub delivery without importing SMTP machinery.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

func NewService(store InquiryStore, verifier captcha.Verifier, files storage.FileStore, mailer Mailer, technologies []string, schedulingLink string, maxFileBytes int64) *Service {
	if maxFileBytes <= 0 {
		maxFileBytes = MaxAttachmentBytes
	}
	return &Service{
		store:          store,
		verifier:       verifier,
		files:          files,
		mailer:         mailer,
		technologies:   technologies,
		schedulingLink: schedulingLink,
		maxFileBytes:   maxFileBytes,
		mailTimeout:    15 * time.Second,
	}
}

// Submit runs the intake workflow. Client errors never mutate state; a
// storage failure after the record exists triggers a compensating delete;
// a mail failure degrades to a warning on a successful result.
func (s *Service) Submit(ctx context.Context, sub *Submission) (*Result, error) {
	// Step 1: CAPTCHA.
	if strings.TrimSpace(sub.CaptchaToken) == "" {
		return nil, &ClientError{Message: "Please complete the CAPTCHA"}
	}
	if err := s.verifier.Verify(ctx, sub.CaptchaToken); err != nil {
		log.Printf("[warn] operation=contact_submit captcha rejected: %v", err)
		return nil, &ClientError{Message: "Invalid CAPTCHA verification"}
	}

	// Step 2: the technology selection must arrive as a list.
	if sub.HasScalarTechKey {
		return nil, &ClientError{Message: "preferred_technologies must be a list, not a single value"}
	}

	// Step 3: per-attachment checks, before anything is persisted.
	if err := s.validateAttachment("Requirements document", sub.RequirementsDoc); err != nil {
		return nil, err
	}
	if err := s.validateAttachment("NDA document", sub.NDADoc); err != nil {
		return nil, err
	}

	// Step 4: structural validation.
	if err := s.validateFields(sub); err != nil {
		return nil, err
	}

	// Stage attachments before the record exists so a half-written file
	// can never be referenced.
	staged := map[string]string{}
	defer func() {
		for _, p := range staged {
			s.files.Discard(p)
		}
	}()

	if sub.RequirementsDoc != nil {
		p, err := s.stage(storage.KindRequirements, sub.RequirementsDoc)
		if err != nil {
			return nil, err
		}
		staged[storage.KindRequirements] = p
	}
	if sub.NDADoc != nil {
		p, err := s.stage(storage.KindNDA, sub.NDADoc)
		if err != nil {
			return nil, err
		}
		staged[storage.KindNDA] = p
	}

	// Step 5: persist with a generated identifier.
	inq := &domain.ContactInquiry{
		FullName:              strings.TrimSpace(sub.FullName),
		Company:               strings.TrimSpace(sub.Company),
		Email:                 strings.TrimSpace(sub.Email),
		Phone:                 strings.TrimSpace(sub.Phone),
		ProjectType:           sub.ProjectType,
		ProjectDescription:    sub.ProjectDescription,
		PreferredTechnologies: sub.Technologies,
		BudgetRange:           sub.BudgetRange,
		Timeline:              sub.Timeline,
		CommunicationMethod:   sub.CommMethod,
		MeetingPlatform:       sub.MeetingPlatform,
		Confidentiality:       sub.Confidentiality,
	}
	if err := s.store.Create(ctx, inq); err != nil {
		return nil, fmt.Errorf("create inquiry: %w", err)
	}

	// Step 6: promote staged files; roll the record back on failure.
	var reqPath, ndaPath *string
	promoteErr := func() error {
		if p, ok := staged[storage.KindRequirements]; ok {
			final, err := s.files.Promote(p, storage.KindRequirements, inq.InquiryID, sub.RequirementsDoc.Filename)
			if err != nil {
				return err
			}
			delete(staged, storage.KindRequirements)
			reqPath = &final
		}
		if p, ok := staged[storage.KindNDA]; ok {
			final, err := s.files.Promote(p, storage.KindNDA, inq.InquiryID, sub.NDADoc.Filename)
			if err != nil {
				return err
			}
			delete(staged, storage.KindNDA)
			ndaPath = &final
		}
		if reqPath != nil || ndaPath != nil {
			return s.store.UpdateDocumentPaths(ctx, inq.InquiryID, reqPath, ndaPath)
		}
		return nil
	}()
	if promoteErr != nil {
		log.Printf("[error] operation=contact_submit inquiry_id=%s file storage failed: %v", inq.InquiryID, promoteErr)
		if delErr := s.store.Delete(ctx, inq.InquiryID); delErr != nil {
			log.Printf("[error] operation=contact_submit inquiry_id=%s rollback failed: %v", inq.InquiryID, delErr)
		}
		return nil, fmt.Errorf("store attachments: %w", promoteErr)
	}
	inq.RequirementsDoc = reqPath
	inq.NDADoc = ndaPath

	// Step 7: best-effort confirmation email.
	res := &Result{InquiryID: inq.InquiryID}
	mailCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.mailTimeout)
	defer cancel()
	if err := s.mailer.Send(mailCtx, inq.Email, "Your Project Inquiry - Confirmation", s.composeConfirmation(inq)); err != nil {
		log.Printf("[warn] operation=contact_submit inquiry_id=%s confirmation email failed: %v", inq.InquiryID, err)
		res.Warning = "Inquiry saved, but failed to send confirmation email"
	}
	return res, nil
}

func (s *Service) stage(kind string, a *Attachment) (string, error) {
	rc, err := a.Open()
	if err != nil {
		return "", fmt.Errorf("open %s attachment: %w", kind, err)
	}
	defer rc.Close()

	p, err := s.files.Stage(kind, a.Filename, io.LimitReader(rc, s.maxFileBytes))
	if err != nil {
		return "", fmt.Errorf("stage %s attachment: %w", kind, err)
	}
	return p, nil
}

func (s *Service) validateAttachment(label string, a *Attachment) error {
	if a == nil {
		return nil
	}
	if a.ContentType != pdfContentType {
		return clientErrorf("%s must be a PDF", label)
	}
	if a.Size > s.maxFileBytes {
		return clientErrorf("%s must be under %dMB", label, s.maxFileBytes/(1024*1024))
	}
	return nil
}

func (s *Service) validateFields(sub *Submission) error {
	required := []struct {
		name  string
		value string
	}{
		{"full_name", sub.FullName},
		{"company", sub.Company},
		{"email", sub.Email},
		{"phone", sub.Phone},
		{"project_type", sub.ProjectType},
		{"project_description", sub.ProjectDescription},
		{"budget_range", sub.BudgetRange},
		{"timeline", sub.Timeline},
		{"communication_method", sub.CommMethod},
		{"meeting_platform", sub.MeetingPlatform},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return clientErrorf("%s is required", f.name)
		}
	}

	if !strings.Contains(sub.Email, "@") {
		return clientErrorf("email is not a valid address")
	}

	if _, ok := domain.ProjectTypeLabels[sub.ProjectType]; !ok {
		return clientErrorf("invalid project_type: %s", sub.ProjectType)
	}
	if _, ok := domain.BudgetRangeLabels[sub.BudgetRange]; !ok {
		return clientErrorf("invalid budget_range: %s", sub.BudgetRange)
	}
	if _, ok := domain.CommMethodLabels[sub.CommMethod]; !ok {
		return clientErrorf("invalid communication_method: %s", sub.CommMethod)
	}
	if _, ok := domain.MeetingPlatformLabels[sub.MeetingPlatform]; !ok {
		return clientErrorf("invalid meeting_platform: %s", sub.MeetingPlatform)
	}

	if len(sub.Technologies) == 0 {
		return &ClientError{Message: "Select at least one technology"}
	}

	// Collect every disallowed entry, not just the first.
	var invalid []string
	for _, tech := range sub.Technologies {
		if !s.allowedTechnology(tech) {
			invalid = append(invalid, tech)
		}
	}
	if len(invalid) > 0 {
		return clientErrorf("invalid technologies: %s", strings.Join(invalid, ", "))
	}
	return nil
}

func (s *Service) allowedTechnology(tech string) bool {
	for _, t := range s.technologies {
		if t == tech {
			return true
		}
	}
	return false
}
