package domain

import "time"

// Project lifecycle stage names.
const (
	StageProposal  = "proposal"
	StageActive    = "active"
	StageReview    = "review"
	StageCompleted = "completed"
	StageCancelled = "cancelled"
)

var StageLabels = map[string]string{
	StageProposal:  "Proposal",
	StageActive:    "Active",
	StageReview:    "Review",
	StageCompleted: "Completed",
	StageCancelled: "Cancelled",
}

// ProjectStage is a lookup entity ordered for display.
type ProjectStage struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// Company size buckets for client profiles.
const (
	CompanySizeMicro  = "1-10"
	CompanySizeSmall  = "11-50"
	CompanySizeMedium = "51-200"
	CompanySizeLarge  = "201-500"
	CompanySizeXL     = "500+"
)

var CompanySizeLabels = map[string]string{
	CompanySizeMicro:  "1-10 employees",
	CompanySizeSmall:  "11-50 employees",
	CompanySizeMedium: "51-200 employees",
	CompanySizeLarge:  "201-500 employees",
	CompanySizeXL:     "500+ employees",
}

// ClientProfile is a one-to-one extension of Customer; its lifecycle is
// tied to the customer row (cascade on delete).
type ClientProfile struct {
	CustomerID             int64     `json:"customer_id"`
	CompanySize            string    `json:"company_size"`
	Industry               string    `json:"industry"`
	PreferredCommunication string    `json:"preferred_communication"`
	BillingAddress         string    `json:"billing_address"`
	TaxID                  string    `json:"tax_id"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

type Project struct {
	ID                  int64      `json:"id"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	Image               *string    `json:"image"`
	Link                string     `json:"link"`
	Technologies        []string   `json:"technologies"`
	Capabilities        string     `json:"capabilities"`
	CreatedAt           time.Time  `json:"created_at"`
	CurrentStageID      *int64     `json:"current_stage"`
	BudgetUsed          string     `json:"budget_used"`
	EstimatedCompletion *time.Time `json:"estimated_completion"`
}

type Task struct {
	ID          int64      `json:"id"`
	ProjectID   int64      `json:"project"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	AssigneeID  *int64     `json:"assignee"`
	DueDate     *time.Time `json:"due_date"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Change request priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Change request statuses.
const (
	StatusPending     = "pending"
	StatusApproved    = "approved"
	StatusRejected    = "rejected"
	StatusImplemented = "implemented"
)

var PriorityLabels = map[string]string{
	PriorityLow:    "Low",
	PriorityMedium: "Medium",
	PriorityHigh:   "High",
	PriorityUrgent: "Urgent",
}

var ChangeStatusLabels = map[string]string{
	StatusPending:     "Pending",
	StatusApproved:    "Approved",
	StatusRejected:    "Rejected",
	StatusImplemented: "Implemented",
}

type ChangeRequest struct {
	ID          int64     `json:"id"`
	ProjectID   int64     `json:"project"`
	RequesterID int64     `json:"requester"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Communication types.
const (
	CommTypeEmail   = "email"
	CommTypeCall    = "call"
	CommTypeMeeting = "meeting"
)

var CommTypeLabels = map[string]string{
	CommTypeEmail:   "Email",
	CommTypeCall:    "Call",
	CommTypeMeeting: "Meeting",
}

// Communication is a log entry against a customer. Date is set at
// creation and never updated.
type Communication struct {
	ID         int64     `json:"id"`
	CustomerID int64     `json:"customer"`
	Type       string    `json:"type"`
	Notes      string    `json:"notes"`
	Date       time.Time `json:"date"`
}

func ValidCommType(t string) bool {
	_, ok := CommTypeLabels[t]
	return ok
}
