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

// RequirementUsecase handles requirements posted by businesses
type RequirementUsecase struct {
	requirementRepo repositories.RequirementRepository
	userRepo        repositories.UserRepository
}

// NewRequirementUsecase creates a new requirement usecase
func NewRequirementUsecase(
	requirementRepo repositories.RequirementRepository,
	userRepo repositories.UserRepository,
) *RequirementUsecase {
	return &RequirementUsecase{
		requirementRepo: requirementRepo,
		userRepo:        userRepo,
	}
}

// Create posts an open requirement for the calling business
func (u *RequirementUsecase) Create(ctx context.Context, caller entities.Principal, input *entities.CreateRequirementInput) (*entities.Requirement, error) {
	businessID := input.BusinessID
	if businessID == uuid.Nil {
		businessID = caller.UserID
	}
	if businessID != caller.UserID {
		return nil, domainerrors.Forbidden("cannot post requirements for another business")
	}

	req := &entities.Requirement{
		BusinessID:  businessID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Budget:      null.IntFromPtr(input.Budget),
		Status:      entities.RequirementOpen,
	}
	if input.Urgency != "" {
		req.Urgency = null.StringFrom(input.Urgency)
	}
	if err := u.requirementRepo.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("create requirement: %w", err)
	}
	return req, nil
}

// List returns every requirement with the posting business's {id, name}
func (u *RequirementUsecase) List(ctx context.Context) ([]*entities.RequirementResponse, error) {
	reqs, err := u.requirementRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list requirements: %w", err)
	}

	l := newLookup(u.userRepo, nil, nil)
	out := make([]*entities.RequirementResponse, 0, len(reqs))
	for _, r := range reqs {
		business, err := l.user(ctx, r.BusinessID)
		if err != nil {
			return nil, err
		}
		out = append(out, &entities.RequirementResponse{Requirement: r, BusinessUser: business.Summary()})
	}
	return out, nil
}

// ListByBusiness returns one business's requirements
func (u *RequirementUsecase) ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]*entities.Requirement, error) {
	reqs, err := u.requirementRepo.ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("list requirements: %w", err)
	}
	return reqs, nil
}
