package models

import (
	"time"

	"github.com/google/uuid"
)

type Service struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProfessionalID uuid.UUID `gorm:"type:uuid;index;not null"`
	Title          string    `gorm:"type:varchar(200);not null"`
	Description    string    `gorm:"type:text;not null"`
	Category       string    `gorm:"type:varchar(100);not null"`
	Price          int       `gorm:"not null"`
	Duration       *int      `gorm:"type:integer"`
	IsActive       bool      `gorm:"not null;index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Service) TableName() string {
	return "services"
}
