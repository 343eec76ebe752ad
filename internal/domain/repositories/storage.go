package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"complianceconnect.backend/internal/domain/entities"
)

// Every lookup by id returns domainerrors.ErrNotFound when the record is
// absent; Update does the same instead of creating. Create assigns the id
// (when nil) and defaults, and fails with domainerrors.ErrAlreadyExists
// only on a uniqueness violation.

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	Update(ctx context.Context, id uuid.UUID, patch entities.UserPatch) (*entities.User, error)
	Count(ctx context.Context) (int64, error)
}

// ProfessionalRepository defines professional profile operations
type ProfessionalRepository interface {
	Create(ctx context.Context, professional *entities.Professional) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Professional, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Professional, error)
	Update(ctx context.Context, id uuid.UUID, patch entities.ProfessionalPatch) (*entities.Professional, error)
	List(ctx context.Context, filter entities.ProfessionalFilter) ([]*entities.Professional, error)
	ListBySpecialization(ctx context.Context, specialization string) ([]*entities.Professional, error)
}

// ServiceRepository defines service operations. Listings only include active services.
type ServiceRepository interface {
	Create(ctx context.Context, service *entities.Service) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Service, error)
	ListByProfessional(ctx context.Context, professionalID uuid.UUID) ([]*entities.Service, error)
	List(ctx context.Context) ([]*entities.Service, error)
}

// BookingRepository defines booking operations
type BookingRepository interface {
	Create(ctx context.Context, booking *entities.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Booking, error)
	ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]*entities.Booking, error)
	ListByProfessional(ctx context.Context, professionalID uuid.UUID) ([]*entities.Booking, error)
	Update(ctx context.Context, id uuid.UUID, patch entities.BookingPatch) (*entities.Booking, error)
	// UpdateFrom applies patch only while the booking is still in the
	// expected state, checking and writing in one atomic step. A booking
	// that has moved on yields domainerrors.ErrInvalidTransition.
	UpdateFrom(ctx context.Context, id uuid.UUID, expected entities.BookingState, patch entities.BookingPatch) (*entities.Booking, error)
	ListPendingScheduledBefore(ctx context.Context, before time.Time, limit int) ([]*entities.Booking, error)
}

// MessageRepository defines message operations
type MessageRepository interface {
	Create(ctx context.Context, message *entities.Message) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Message, error)
	// ListByBooking returns messages ordered by SentAt ascending.
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*entities.Message, error)
}

// RequirementRepository defines requirement operations
type RequirementRepository interface {
	Create(ctx context.Context, requirement *entities.Requirement) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Requirement, error)
	ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]*entities.Requirement, error)
	List(ctx context.Context) ([]*entities.Requirement, error)
}

// Storage bundles every repository behind one backend. Both the in-memory
// store and the relational store provide it.
type Storage interface {
	Users() UserRepository
	Professionals() ProfessionalRepository
	Services() ServiceRepository
	Bookings() BookingRepository
	Messages() MessageRepository
	Requirements() RequirementRepository
	UnitOfWork() UnitOfWork
}
