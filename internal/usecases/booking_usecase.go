package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"complianceconnect.backend/internal/domain/entities"
	domainerrors "complianceconnect.backend/internal/domain/errors"
	"complianceconnect.backend/internal/domain/repositories"
)

// BookingUsecase handles consultation bookings
type BookingUsecase struct {
	bookingRepo      repositories.BookingRepository
	serviceRepo      repositories.ServiceRepository
	professionalRepo repositories.ProfessionalRepository
	userRepo         repositories.UserRepository
}

// maxUpdateAttempts bounds how often Update re-reads a booking that another
// writer keeps changing.
const maxUpdateAttempts = 3

// NewBookingUsecase creates a new booking usecase
func NewBookingUsecase(storage repositories.Storage) *BookingUsecase {
	return &BookingUsecase{
		bookingRepo:      storage.Bookings(),
		serviceRepo:      storage.Services(),
		professionalRepo: storage.Professionals(),
		userRepo:         storage.Users(),
	}
}

// Create books a service. The amount is stored exactly as submitted.
func (u *BookingUsecase) Create(ctx context.Context, caller entities.Principal, input *entities.CreateBookingInput) (*entities.Booking, error) {
	businessID := input.BusinessID
	if businessID == uuid.Nil {
		businessID = caller.UserID
	}
	if businessID != caller.UserID {
		return nil, domainerrors.Forbidden("cannot book on behalf of another business")
	}

	svc, err := u.serviceRepo.GetByID(ctx, input.ServiceID)
	if err != nil {
		return nil, notFound(err, "Service")
	}
	if !svc.IsActive {
		return nil, domainerrors.BadRequest("service is not available")
	}

	pro, err := u.professionalRepo.GetByID(ctx, input.ProfessionalID)
	if err != nil {
		return nil, notFound(err, "Professional")
	}
	if svc.ProfessionalID != pro.ID {
		return nil, domainerrors.BadRequest("service does not belong to professional")
	}

	booking := &entities.Booking{
		BusinessID:     businessID,
		ProfessionalID: pro.ID,
		ServiceID:      svc.ID,
		ScheduledAt:    input.ScheduledAt,
		Status:         entities.BookingPending,
		TotalAmount:    *input.TotalAmount,
		PaymentStatus:  entities.PaymentPending,
		Notes:          null.StringFromPtr(input.Notes),
	}
	if err := u.bookingRepo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	return booking, nil
}

// Get returns one booking
func (u *BookingUsecase) Get(ctx context.Context, id uuid.UUID) (*entities.Booking, error) {
	b, err := u.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Booking")
	}
	return b, nil
}

// ListByBusiness returns a business's bookings with service and professional attached
func (u *BookingUsecase) ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]*entities.BusinessBookingResponse, error) {
	bookings, err := u.bookingRepo.ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	l := newLookup(u.userRepo, u.professionalRepo, u.serviceRepo)
	out := make([]*entities.BusinessBookingResponse, 0, len(bookings))
	for _, b := range bookings {
		svc, err := l.service(ctx, b.ServiceID)
		if err != nil {
			return nil, err
		}
		pro, err := l.professionalWithName(ctx, b.ProfessionalID)
		if err != nil {
			return nil, err
		}
		out = append(out, &entities.BusinessBookingResponse{Booking: b, Service: svc, Professional: pro})
	}
	return out, nil
}

// ListByProfessional returns a professional's bookings with service and business attached
func (u *BookingUsecase) ListByProfessional(ctx context.Context, professionalID uuid.UUID) ([]*entities.ProfessionalBookingResponse, error) {
	bookings, err := u.bookingRepo.ListByProfessional(ctx, professionalID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	l := newLookup(u.userRepo, u.professionalRepo, u.serviceRepo)
	out := make([]*entities.ProfessionalBookingResponse, 0, len(bookings))
	for _, b := range bookings {
		svc, err := l.service(ctx, b.ServiceID)
		if err != nil {
			return nil, err
		}
		business, err := l.user(ctx, b.BusinessID)
		if err != nil {
			return nil, err
		}
		out = append(out, &entities.ProfessionalBookingResponse{Booking: b, Service: svc, BusinessUser: business.Summary()})
	}
	return out, nil
}

// Update applies a partial update. Unknown enum values are rejected as
// input errors, illegal moves as transition errors.
func (u *BookingUsecase) Update(ctx context.Context, id uuid.UUID, input *entities.UpdateBookingInput) (*entities.Booking, error) {
	patch := entities.BookingPatch{ScheduledAt: input.ScheduledAt, Notes: input.Notes}
	if input.Status != nil {
		s := entities.BookingStatus(*input.Status)
		if !s.Valid() {
			return nil, domainerrors.BadRequest(fmt.Sprintf("invalid booking status %q", *input.Status))
		}
		patch.Status = &s
	}
	if input.PaymentStatus != nil {
		s := entities.PaymentStatus(*input.PaymentStatus)
		if !s.Valid() {
			return nil, domainerrors.BadRequest(fmt.Sprintf("invalid payment status %q", *input.PaymentStatus))
		}
		patch.PaymentStatus = &s
	}

	for attempt := 1; ; attempt++ {
		current, err := u.bookingRepo.GetByID(ctx, id)
		if err != nil {
			return nil, notFound(err, "Booking")
		}
		if patch.Status != nil && !current.Status.CanTransitionTo(*patch.Status) {
			return nil, fmt.Errorf("%w: status %s -> %s", domainerrors.ErrInvalidTransition, current.Status, *patch.Status)
		}
		if patch.PaymentStatus != nil && !current.PaymentStatus.CanTransitionTo(*patch.PaymentStatus) {
			return nil, fmt.Errorf("%w: paymentStatus %s -> %s", domainerrors.ErrInvalidTransition, current.PaymentStatus, *patch.PaymentStatus)
		}
		if patch.IsEmpty() {
			return current, nil
		}

		updated, err := u.bookingRepo.UpdateFrom(ctx, id, current.State(), patch)
		switch {
		case err == nil:
			return updated, nil
		case errors.Is(err, domainerrors.ErrInvalidTransition) && attempt < maxUpdateAttempts:
			// changed underneath us; re-check against the new state
			continue
		case errors.Is(err, domainerrors.ErrInvalidTransition):
			return nil, fmt.Errorf("%w: booking changed concurrently", domainerrors.ErrInvalidTransition)
		case errors.Is(err, domainerrors.ErrNotFound):
			return nil, notFound(err, "Booking")
		default:
			return nil, fmt.Errorf("update booking: %w", err)
		}
	}
}
