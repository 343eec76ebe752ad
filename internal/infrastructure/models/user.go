package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Role         string    `gorm:"type:varchar(20);not null;default:'business'"`
	Name         string    `gorm:"type:varchar(100);not null"`
	Phone        *string   `gorm:"type:varchar(20)"`
	IsVerified   bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time `gorm:"index"`
	UpdatedAt    time.Time
}

func (User) TableName() string {
	return "users"
}
