// Package memory is a map-backed Storage for local development and tests.
// A single RWMutex makes every operation atomic; records are copied on the
// way in and out so callers never share state with the store.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"complianceconnect.backend/internal/domain/entities"
	"complianceconnect.backend/internal/domain/repositories"
	"complianceconnect.backend/internal/infrastructure/seed"
)

// Storage implements repositories.Storage in memory.
type Storage struct {
	mu sync.RWMutex

	users         map[uuid.UUID]*entities.User
	emails        map[string]uuid.UUID
	professionals map[uuid.UUID]*entities.Professional
	services      map[uuid.UUID]*entities.Service
	bookings      map[uuid.UUID]*entities.Booking
	messages      map[uuid.UUID]*entities.Message
	requirements  map[uuid.UUID]*entities.Requirement

	// insertion order for list views
	professionalOrder []uuid.UUID
	serviceOrder      []uuid.UUID
	requirementOrder  []uuid.UUID
	bookingOrder      []uuid.UUID
}

// NewEmptyStorage returns a store with no records.
func NewEmptyStorage() *Storage {
	return &Storage{
		users:         make(map[uuid.UUID]*entities.User),
		emails:        make(map[string]uuid.UUID),
		professionals: make(map[uuid.UUID]*entities.Professional),
		services:      make(map[uuid.UUID]*entities.Service),
		bookings:      make(map[uuid.UUID]*entities.Booking),
		messages:      make(map[uuid.UUID]*entities.Message),
		requirements:  make(map[uuid.UUID]*entities.Requirement),
	}
}

// NewStorage returns a store seeded with the fixture accounts, profiles and services.
func NewStorage(ctx context.Context) (*Storage, error) {
	s := NewEmptyStorage()
	if _, err := seed.Run(ctx, s); err != nil {
		return nil, fmt.Errorf("seed memory storage: %w", err)
	}
	return s, nil
}

func (s *Storage) Users() repositories.UserRepository { return &userRepo{s} }

func (s *Storage) Professionals() repositories.ProfessionalRepository {
	return &professionalRepo{s}
}

func (s *Storage) Services() repositories.ServiceRepository { return &serviceRepo{s} }

func (s *Storage) Bookings() repositories.BookingRepository { return &bookingRepo{s} }

func (s *Storage) Messages() repositories.MessageRepository { return &messageRepo{s} }

func (s *Storage) Requirements() repositories.RequirementRepository {
	return &requirementRepo{s}
}

// UnitOfWork runs fn directly; each memory operation is already atomic and
// there is nothing to roll back.
func (s *Storage) UnitOfWork() repositories.UnitOfWork { return unitOfWork{} }

type unitOfWork struct{}

func (unitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

var _ repositories.Storage = (*Storage)(nil)
