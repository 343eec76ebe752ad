package models

import (
	"time"

	"github.com/google/uuid"

	"complianceconnect.backend/internal/domain/entities"
)

// Professional stores list and map fields as JSON text so the same schema
// migrates on postgres and sqlite.
type Professional struct {
	ID                 uuid.UUID              `gorm:"type:uuid;primaryKey"`
	UserID             uuid.UUID              `gorm:"type:uuid;uniqueIndex;not null"`
	RegistrationNumber string                 `gorm:"type:varchar(50);not null"`
	Qualification      string                 `gorm:"type:varchar(10);not null"`
	Specializations    []string               `gorm:"type:text;serializer:json"`
	Experience         *int                   `gorm:"type:integer"`
	City               *string                `gorm:"type:varchar(100);index"`
	Bio                *string                `gorm:"type:text"`
	HourlyRate         *int                   `gorm:"type:integer"`
	Rating             int                    `gorm:"not null;default:0"`
	TotalReviews       int                    `gorm:"not null;default:0"`
	KYCStatus          string                 `gorm:"column:kyc_status;type:varchar(20);not null;default:'pending'"`
	KYCDocuments       *entities.KYCDocuments `gorm:"column:kyc_documents;type:text;serializer:json"`
	Availability       entities.Availability  `gorm:"type:text;serializer:json"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (Professional) TableName() string {
	return "professionals"
}
