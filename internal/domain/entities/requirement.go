package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Urgency of a posted requirement
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// RequirementStatus tracks a requirement from posting to closure
type RequirementStatus string

const (
	RequirementOpen       RequirementStatus = "open"
	RequirementInProgress RequirementStatus = "in_progress"
	RequirementCompleted  RequirementStatus = "completed"
	RequirementClosed     RequirementStatus = "closed"
)

// Requirement is a business-posted request for compliance services
type Requirement struct {
	ID          uuid.UUID         `json:"id"`
	BusinessID  uuid.UUID         `json:"businessId"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	Urgency     null.String       `json:"urgency"`
	Budget      null.Int          `json:"budget"`
	Status      RequirementStatus `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// CreateRequirementInput represents input for posting a requirement
type CreateRequirementInput struct {
	BusinessID  uuid.UUID `json:"businessId"`
	Title       string    `json:"title" binding:"required,min=1,max=200"`
	Description string    `json:"description" binding:"required,min=1,max=5000"`
	Category    string    `json:"category" binding:"required,min=1,max=100"`
	Urgency     string    `json:"urgency" binding:"omitempty,oneof=low medium high"`
	Budget      *int      `json:"budget" binding:"omitempty,min=0"`
}

// RequirementResponse attaches the posting business's {id, name}.
type RequirementResponse struct {
	*Requirement
	BusinessUser *UserSummary `json:"businessUser"`
}
