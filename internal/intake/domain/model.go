package domain

import (
	"time"

	"github.com/google/uuid"
)

// Project types a prospective client can pick.
const (
	ProjectTypeWeb        = "web"
	ProjectTypeMobile     = "mobile"
	ProjectTypeEnterprise = "enterprise"
	ProjectTypeOther      = "other"
)

var ProjectTypeLabels = map[string]string{
	ProjectTypeWeb:        "Web Application",
	ProjectTypeMobile:     "Mobile Application",
	ProjectTypeEnterprise: "Enterprise Application",
	ProjectTypeOther:      "Other",
}

// Budget ranges.
const (
	BudgetUnder10k = "<10k"
	Budget10to25k  = "10k-25k"
	Budget25to50k  = "25k-50k"
	Budget50to100k = "50k-100k"
	BudgetOver100k = ">100k"
)

var BudgetRangeLabels = map[string]string{
	BudgetUnder10k: "< $10k",
	Budget10to25k:  "$10k–$25k",
	Budget25to50k:  "$25k–$50k",
	Budget50to100k: "$50k–$100k",
	BudgetOver100k: "> $100k",
}

// Preferred communication methods.
const (
	CommMethodEmail = "email"
	CommMethodPhone = "phone"
	CommMethodVideo = "video"
)

var CommMethodLabels = map[string]string{
	CommMethodEmail: "Email",
	CommMethodPhone: "Phone",
	CommMethodVideo: "Video Call",
}

// Meeting platforms.
const (
	PlatformZoom  = "zoom"
	PlatformMeet  = "google_meet"
	PlatformTeams = "microsoft_teams"
	PlatformOther = "other"
)

var MeetingPlatformLabels = map[string]string{
	PlatformZoom:  "Zoom",
	PlatformMeet:  "Google Meet",
	PlatformTeams: "Microsoft Teams",
	PlatformOther: "Other",
}

// ContactInquiry is a single contact-form submission. The ID is generated
// server-side at creation; callers never supply it.
type ContactInquiry struct {
	InquiryID              uuid.UUID  `json:"inquiry_id"`
	FullName               string     `json:"full_name"`
	Company                string     `json:"company"`
	Email                  string     `json:"email"`
	Phone                  string     `json:"phone"`
	ProjectType            string     `json:"project_type"`
	ProjectDescription     string     `json:"project_description"`
	PreferredTechnologies  []string   `json:"preferred_technologies"`
	BudgetRange            string     `json:"budget_range"`
	Timeline               string     `json:"timeline"`
	CommunicationMethod    string     `json:"communication_method"`
	MeetingPlatform        string     `json:"meeting_platform"`
	RequirementsDoc        *string    `json:"requirements_doc"`
	NDADoc                 *string    `json:"nda_doc"`
	Confidentiality        bool       `json:"confidentiality"`
	CreatedAt              time.Time  `json:"created_at"`
}
