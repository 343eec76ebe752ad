// Package seed loads the demo marketplace: one admin, one business owner and
// three professionals with two services each.
package seed

import (
	"context"
	"fmt"
	"sync"

	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"complianceconnect.backend/internal/domain/entities"
	"complianceconnect.backend/internal/domain/repositories"
	"complianceconnect.backend/pkg/crypto"
	"complianceconnect.backend/pkg/logger"
)

// DefaultPassword is the login password of every fixture account.
const DefaultPassword = "password123"

// Fixture account emails
const (
	AdminEmail    = "admin@complianceconnect.com"
	BusinessEmail = "business@example.com"
)

var (
	hashOnce sync.Once
	hashed   string
	hashErr  error
)

func passwordHash() (string, error) {
	hashOnce.Do(func() {
		hashed, hashErr = crypto.HashPassword(DefaultPassword)
	})
	return hashed, hashErr
}

type professionalFixture struct {
	user    entities.User
	profile entities.Professional
}

func weekdays(slots ...string) entities.Availability {
	a := entities.Availability{}
	for _, day := range []string{"monday", "tuesday", "wednesday", "thursday", "friday"} {
		a[day] = append([]string(nil), slots...)
	}
	return a
}

func professionalFixtures() []professionalFixture {
	return []professionalFixture{
		{
			user: entities.User{
				Email: "rajesh.kumar@email.com",
				Role:  entities.UserRoleProfessional,
				Name:  "CA Rajesh Kumar",
				Phone: null.StringFrom("+91 9876543211"),
			},
			profile: entities.Professional{
				RegistrationNumber: "CA123456",
				Qualification:      entities.QualificationCA,
				Specializations:    []string{"Tax Planning", "GST Returns", "Audit"},
				Experience:         null.IntFrom(15),
				City:               null.StringFrom("Mumbai"),
				Bio:                null.StringFrom("Experienced CA with 15+ years in tax planning and GST compliance"),
				HourlyRate:         null.IntFrom(2000),
				Rating:             49,
				TotalReviews:       127,
				KYCStatus:          entities.KYCApproved,
				Availability:       weekdays("10:00", "14:00", "16:00"),
			},
		},
		{
			user: entities.User{
				Email: "priya.sharma@email.com",
				Role:  entities.UserRoleProfessional,
				Name:  "CS Priya Sharma",
				Phone: null.StringFrom("+91 9876543212"),
			},
			profile: entities.Professional{
				RegistrationNumber: "CS789012",
				Qualification:      entities.QualificationCS,
				Specializations:    []string{"Company Law", "Compliance", "ROC Filing"},
				Experience:         null.IntFrom(12),
				City:               null.StringFrom("Delhi"),
				Bio:                null.StringFrom("Expert CS specializing in company law and regulatory compliance"),
				HourlyRate:         null.IntFrom(3500),
				Rating:             48,
				TotalReviews:       89,
				KYCStatus:          entities.KYCApproved,
				Availability:       weekdays("09:00", "11:00", "15:00"),
			},
		},
		{
			user: entities.User{
				Email: "vikash.singh@email.com",
				Role:  entities.UserRoleProfessional,
				Name:  "CA Vikash Singh",
				Phone: null.StringFrom("+91 9876543213"),
			},
			profile: entities.Professional{
				RegistrationNumber: "CA345678",
				Qualification:      entities.QualificationCA,
				Specializations:    []string{"Startup CFO", "Financial Planning", "Investment"},
				Experience:         null.IntFrom(8),
				City:               null.StringFrom("Bangalore"),
				Bio:                null.StringFrom("Young CA focused on startup financial management and investment advisory"),
				HourlyRate:         null.IntFrom(1500),
				Rating:             47,
				TotalReviews:       64,
				KYCStatus:          entities.KYCPending,
				Availability:       weekdays("10:00", "14:00", "18:00"),
			},
		},
	}
}

func servicesFor(professional *entities.Professional) []*entities.Service {
	rate := int(professional.HourlyRate.Int)
	return []*entities.Service{
		{
			ProfessionalID: professional.ID,
			Title:          "Tax Consultation",
			Description:    "Comprehensive tax planning and advisory services",
			Category:       "Tax",
			Price:          rate,
			Duration:       null.IntFrom(60),
		},
		{
			ProfessionalID: professional.ID,
			Title:          "GST Return Filing",
			Description:    "Monthly GST return preparation and filing",
			Category:       "GST",
			Price:          rate * 2,
			Duration:       null.IntFrom(120),
		},
	}
}

// Run inserts the fixtures when the store has no users. It reports whether
// anything was written. All inserts share one unit of work.
func Run(ctx context.Context, storage repositories.Storage) (bool, error) {
	count, err := storage.Users().Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		logger.Info(ctx, "Storage already seeded", zap.Int64("users", count))
		return false, nil
	}

	hash, err := passwordHash()
	if err != nil {
		return false, err
	}

	err = storage.UnitOfWork().Do(ctx, func(ctx context.Context) error {
		admin := &entities.User{
			Email:        AdminEmail,
			PasswordHash: hash,
			Role:         entities.UserRoleAdmin,
			Name:         "System Admin",
			Phone:        null.StringFrom("+91 9876543210"),
			IsVerified:   true,
		}
		if err := storage.Users().Create(ctx, admin); err != nil {
			return fmt.Errorf("create admin: %w", err)
		}

		for _, fx := range professionalFixtures() {
			user := fx.user
			user.PasswordHash = hash
			user.IsVerified = true
			if err := storage.Users().Create(ctx, &user); err != nil {
				return fmt.Errorf("create user %s: %w", user.Email, err)
			}

			profile := fx.profile
			profile.UserID = user.ID
			if err := storage.Professionals().Create(ctx, &profile); err != nil {
				return fmt.Errorf("create professional %s: %w", profile.RegistrationNumber, err)
			}

			for _, svc := range servicesFor(&profile) {
				if err := storage.Services().Create(ctx, svc); err != nil {
					return fmt.Errorf("create service %q: %w", svc.Title, err)
				}
			}
		}

		business := &entities.User{
			Email:        BusinessEmail,
			PasswordHash: hash,
			Role:         entities.UserRoleBusiness,
			Name:         "Business Owner",
			Phone:        null.StringFrom("+91 9876543214"),
			IsVerified:   true,
		}
		if err := storage.Users().Create(ctx, business); err != nil {
			return fmt.Errorf("create business: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	logger.Info(ctx, "Storage seeded with fixture data")
	return true, nil
}
