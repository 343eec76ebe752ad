package entities

import (
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Service is a bookable offering of a professional
type Service struct {
	ID             uuid.UUID `json:"id"`
	ProfessionalID uuid.UUID `json:"professionalId"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Category       string    `json:"category"`
	Price          int       `json:"price"`
	Duration       null.Int  `json:"duration"`
	IsActive       bool      `json:"isActive"`
}

// CreateServiceInput represents input for listing a new service. Price is in rupees.
type CreateServiceInput struct {
	ProfessionalID uuid.UUID `json:"professionalId"`
	Title          string    `json:"title" binding:"required,min=1,max=200"`
	Description    string    `json:"description" binding:"required,min=1,max=2000"`
	Category       string    `json:"category" binding:"required,min=1,max=100"`
	Price          *int      `json:"price" binding:"required,min=0"`
	Duration       *int      `json:"duration" binding:"omitempty,min=1,max=1440"`
}

// ServiceResponse attaches the offering professional (with {id, name} of its user).
type ServiceResponse struct {
	*Service
	Professional *ProfessionalResponse `json:"professional"`
}
