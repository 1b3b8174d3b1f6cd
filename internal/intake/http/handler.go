package http

import (
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/devforge-studio/crm-backend/internal/api/http/middleware"
	"github.com/devforge-studio/crm-backend/internal/intake"
)

type Handler struct {
	svc *intake.Service
}

func Register(rg *gin.RouterGroup, svc *intake.Service, limiter *IPRateLimiter) {
	h := &Handler{svc: svc}
	rg.POST("/contact/submit/", RateLimit(limiter), h.submit)
}

func (h *Handler) submit(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})
		return
	}

	sub := &intake.Submission{
		CaptchaToken:       formValue(form, "captcha"),
		FullName:           formValue(form, "fullName"),
		Company:            formValue(form, "company"),
		Email:              formValue(form, "email"),
		Phone:              formValue(form, "phone"),
		ProjectType:        formValue(form, "projectType"),
		ProjectDescription: formValue(form, "projectDescription"),
		BudgetRange:        formValue(form, "budgetRange"),
		Timeline:           formValue(form, "timeline"),
		CommMethod:         formValue(form, "communicationMethod"),
		MeetingPlatform:    formValue(form, "meetingPlatform"),
	}

	if v := formValue(form, "confidentiality"); v != "" {
		sub.Confidentiality, _ = strconv.ParseBool(v)
	}

	// The transport encodes the selection as repeated keys. A bare scalar
	// key is recorded so the workflow can reject it instead of coercing.
	sub.Technologies = form.Value["preferredTechnologies[]"]
	if vals, ok := form.Value["preferredTechnologies"]; ok && len(vals) > 0 {
		sub.HasScalarTechKey = true
		sub.ScalarTechnology = vals[0]
	}

	sub.RequirementsDoc = attachment(form, "requirementsDoc")
	sub.NDADoc = attachment(form, "ndaDoc")

	res, err := h.svc.Submit(c.Request.Context(), sub)
	if err != nil {
		var ce *intake.ClientError
		if errors.As(err, &ce) {
			c.JSON(http.StatusBadRequest, gin.H{"error": ce.Message})
			return
		}
		log.Printf("[error] operation=contact_submit request_id=%s unexpected error: %v",
			middleware.RequestID(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An unexpected error occurred. Please try again later."})
		return
	}

	body := gin.H{"inquiryId": res.InquiryID.String()}
	if res.Warning != "" {
		body["warning"] = res.Warning
	}
	c.JSON(http.StatusCreated, body)
}

func formValue(form *multipart.Form, key string) string {
	if vals, ok := form.Value[key]; ok && len(vals) > 0 {
		return vals[0]
	}
	return ""
}

func attachment(form *multipart.Form, key string) *intake.Attachment {
	files, ok := form.File[key]
	if !ok || len(files) == 0 {
		return nil
	}
	fh := files[0]
	return &intake.Attachment{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}
