package models

import (
	"time"

	"github.com/google/uuid"
)

type Booking struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	BusinessID     uuid.UUID `gorm:"type:uuid;index;not null"`
	ProfessionalID uuid.UUID `gorm:"type:uuid;index;not null"`
	ServiceID      uuid.UUID `gorm:"type:uuid;not null"`
	ScheduledAt    time.Time `gorm:"index;not null"`
	Status         string    `gorm:"type:varchar(20);index;not null;default:'pending'"`
	TotalAmount    int64     `gorm:"type:bigint;not null"`
	PaymentStatus  string    `gorm:"type:varchar(20);not null;default:'pending'"`
	Notes          *string   `gorm:"type:text"`
	CreatedAt      time.Time `gorm:"index"`
	UpdatedAt      time.Time
}

func (Booking) TableName() string {
	return "bookings"
}
