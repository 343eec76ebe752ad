package models

import (
	"time"

	"github.com/google/uuid"
)

type Requirement struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	BusinessID  uuid.UUID `gorm:"type:uuid;index;not null"`
	Title       string    `gorm:"type:varchar(200);not null"`
	Description string    `gorm:"type:text;not null"`
	Category    string    `gorm:"type:varchar(100);not null"`
	Urgency     *string   `gorm:"type:varchar(10)"`
	Budget      *int      `gorm:"type:integer"`
	Status      string    `gorm:"type:varchar(20);not null;default:'open'"`
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time
}

func (Requirement) TableName() string {
	return "requirements"
}
