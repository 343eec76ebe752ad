package usecases

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"complianceconnect.backend/internal/domain/entities"
	domainerrors "complianceconnect.backend/internal/domain/errors"
	"complianceconnect.backend/internal/domain/repositories"
)

// ServiceUsecase handles the service catalogue
type ServiceUsecase struct {
	serviceRepo      repositories.ServiceRepository
	professionalRepo repositories.ProfessionalRepository
	userRepo         repositories.UserRepository
}

// NewServiceUsecase creates a new service usecase
func NewServiceUsecase(
	serviceRepo repositories.ServiceRepository,
	professionalRepo repositories.ProfessionalRepository,
	userRepo repositories.UserRepository,
) *ServiceUsecase {
	return &ServiceUsecase{
		serviceRepo:      serviceRepo,
		professionalRepo: professionalRepo,
		userRepo:         userRepo,
	}
}

// List returns active services, optionally of one professional, each with
// its professional and that professional's {id, name}.
func (u *ServiceUsecase) List(ctx context.Context, professionalID uuid.UUID) ([]*entities.ServiceResponse, error) {
	var (
		services []*entities.Service
		err      error
	)
	if professionalID != uuid.Nil {
		services, err = u.serviceRepo.ListByProfessional(ctx, professionalID)
	} else {
		services, err = u.serviceRepo.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}

	l := newLookup(u.userRepo, u.professionalRepo, u.serviceRepo)
	out := make([]*entities.ServiceResponse, 0, len(services))
	for _, s := range services {
		pro, err := l.professionalWithName(ctx, s.ProfessionalID)
		if err != nil {
			return nil, err
		}
		out = append(out, &entities.ServiceResponse{Service: s, Professional: pro})
	}
	return out, nil
}

// Create lists a new service. Without professionalId the caller's own
// profile is used; non-admins may only list services on their own profile.
func (u *ServiceUsecase) Create(ctx context.Context, caller entities.Principal, input *entities.CreateServiceInput) (*entities.Service, error) {
	var (
		pro *entities.Professional
		err error
	)
	if input.ProfessionalID == uuid.Nil {
		pro, err = u.professionalRepo.GetByUserID(ctx, caller.UserID)
	} else {
		pro, err = u.professionalRepo.GetByID(ctx, input.ProfessionalID)
	}
	if err != nil {
		return nil, notFound(err, "Professional")
	}
	if pro.UserID != caller.UserID && caller.Role != entities.UserRoleAdmin {
		return nil, domainerrors.Forbidden("cannot list services for another professional")
	}

	svc := &entities.Service{
		ProfessionalID: pro.ID,
		Title:          input.Title,
		Description:    input.Description,
		Category:       input.Category,
		Price:          *input.Price,
		Duration:       null.IntFromPtr(input.Duration),
		IsActive:       true,
	}
	if err := u.serviceRepo.Create(ctx, svc); err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}
	return svc, nil
}

// Quote prices a booking of the service
func (u *ServiceUsecase) Quote(ctx context.Context, id uuid.UUID) (*entities.FeeQuote, error) {
	svc, err := u.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Service")
	}
	if !svc.IsActive {
		return nil, domainerrors.NotFound("Service not found")
	}
	q := entities.QuoteBooking(svc.Price)
	return &q, nil
}
