package repositories

import (
	"fmt"

	"gorm.io/gorm"

	domainRepos "complianceconnect.backend/internal/domain/repositories"
	"complianceconnect.backend/internal/infrastructure/models"
)

// Storage is the relational repositories.Storage backed by GORM.
type Storage struct {
	users         *UserRepository
	professionals *ProfessionalRepository
	services      *ServiceRepository
	bookings      *BookingRepository
	messages      *MessageRepository
	requirements  *RequirementRepository
	uow           domainRepos.UnitOfWork
}

// NewStorage wires every repository to db
func NewStorage(db *gorm.DB) *Storage {
	return &Storage{
		users:         NewUserRepository(db),
		professionals: NewProfessionalRepository(db),
		services:      NewServiceRepository(db),
		bookings:      NewBookingRepository(db),
		messages:      NewMessageRepository(db),
		requirements:  NewRequirementRepository(db),
		uow:           NewUnitOfWork(db),
	}
}

// Migrate creates or updates every table
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func (s *Storage) Users() domainRepos.UserRepository                 { return s.users }
func (s *Storage) Professionals() domainRepos.ProfessionalRepository { return s.professionals }
func (s *Storage) Services() domainRepos.ServiceRepository           { return s.services }
func (s *Storage) Bookings() domainRepos.BookingRepository           { return s.bookings }
func (s *Storage) Messages() domainRepos.MessageRepository           { return s.messages }
func (s *Storage) Requirements() domainRepos.RequirementRepository   { return s.requirements }
func (s *Storage) UnitOfWork() domainRepos.UnitOfWork                { return s.uow }

var _ domainRepos.Storage = (*Storage)(nil)
