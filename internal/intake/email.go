package intake

import (
	"fmt"
	"strings"

	"github.com/devforge-studio/crm-backend/internal/intake/domain"
)

// composeConfirmation renders the plain-text confirmation body. Enum
// fields are rendered with their human-readable labels, never raw codes.
func (s *Service) composeConfirmation(inq *domain.ContactInquiry) string {
	techs := "None"
	if len(inq.PreferredTechnologies) > 0 {
		techs = strings.Join(inq.PreferredTechnologies, ", ")
	}

	uploaded := func(path *string) string {
		if path != nil {
			return "Uploaded"
		}
		return "Not provided"
	}
	confidentiality := "Not accepted"
	if inq.Confidentiality {
		confidentiality = "Accepted"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", inq.FullName)
	fmt.Fprintf(&b, "Thank you for your inquiry (ID: %s). We have received your request and will follow up within 24-48 hours to discuss your project.\n\n", inq.InquiryID)
	b.WriteString("Inquiry Details:\n")
	fmt.Fprintf(&b, "- Company/Organization: %s\n", inq.Company)
	fmt.Fprintf(&b, "- Email: %s\n", inq.Email)
	fmt.Fprintf(&b, "- Phone: %s\n", inq.Phone)
	fmt.Fprintf(&b, "- Project Type: %s\n", domain.ProjectTypeLabels[inq.ProjectType])
	fmt.Fprintf(&b, "- Project Description: %s\n", inq.ProjectDescription)
	fmt.Fprintf(&b, "- Preferred Technologies: %s\n", techs)
	fmt.Fprintf(&b, "- Budget Range: %s\n", domain.BudgetRangeLabels[inq.BudgetRange])
	fmt.Fprintf(&b, "- Timeline: %s\n", inq.Timeline)
	fmt.Fprintf(&b, "- Preferred Communication: %s\n", domain.CommMethodLabels[inq.CommunicationMethod])
	fmt.Fprintf(&b, "- Meeting Platform: %s\n", domain.MeetingPlatformLabels[inq.MeetingPlatform])
	fmt.Fprintf(&b, "- Requirements Document: %s\n", uploaded(inq.RequirementsDoc))
	fmt.Fprintf(&b, "- NDA Document: %s\n", uploaded(inq.NDADoc))
	fmt.Fprintf(&b, "- Confidentiality Agreement: %s\n\n", confidentiality)
	if s.schedulingLink != "" {
		fmt.Fprintf(&b, "To schedule an initial consultation, please book a time slot here: %s\n\n", s.schedulingLink)
	}
	b.WriteString("Best regards,\nThe DevForge Studio Team\n")
	return b.String()
}
