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

// ProfessionalUsecase handles professional profiles and KYC review
type ProfessionalUsecase struct {
	professionalRepo repositories.ProfessionalRepository
	userRepo         repositories.UserRepository
}

// NewProfessionalUsecase creates a new professional usecase
func NewProfessionalUsecase(
	professionalRepo repositories.ProfessionalRepository,
	userRepo repositories.UserRepository,
) *ProfessionalUsecase {
	return &ProfessionalUsecase{
		professionalRepo: professionalRepo,
		userRepo:         userRepo,
	}
}

// Create registers a profile. The owner defaults to the caller; only an
// admin may create a profile for someone else. New profiles always start
// unreviewed with no rating.
func (u *ProfessionalUsecase) Create(ctx context.Context, caller entities.Principal, input *entities.CreateProfessionalInput) (*entities.ProfessionalResponse, error) {
	ownerID := input.UserID
	if ownerID == uuid.Nil {
		ownerID = caller.UserID
	}
	if ownerID != caller.UserID && caller.Role != entities.UserRoleAdmin {
		return nil, domainerrors.Forbidden("cannot create a profile for another user")
	}

	owner, err := u.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, notFound(err, "User")
	}
	if owner.Role != entities.UserRoleProfessional {
		return nil, domainerrors.BadRequest("profile owner must be a professional account")
	}

	_, err = u.professionalRepo.GetByUserID(ctx, ownerID)
	if err == nil {
		return nil, domainerrors.Conflict("Professional profile already exists")
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, fmt.Errorf("check existing profile: %w", err)
	}

	p := &entities.Professional{
		UserID:             ownerID,
		RegistrationNumber: input.RegistrationNumber,
		Qualification:      input.Qualification,
		Specializations:    append([]string{}, input.Specializations...),
		Experience:         null.IntFromPtr(input.Experience),
		City:               null.StringFromPtr(input.City),
		Bio:                null.StringFromPtr(input.Bio),
		HourlyRate:         null.IntFromPtr(input.HourlyRate),
		KYCStatus:          entities.KYCPending,
		KYCDocuments:       input.KYCDocuments,
		Availability:       input.Availability.Clone(),
	}
	if err := u.professionalRepo.Create(ctx, p); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("Professional profile already exists")
		}
		return nil, fmt.Errorf("create professional: %w", err)
	}
	return &entities.ProfessionalResponse{Professional: p, User: owner.Contact()}, nil
}

// List returns profiles matching filter, each with its owner's contact
func (u *ProfessionalUsecase) List(ctx context.Context, filter entities.ProfessionalFilter) ([]*entities.ProfessionalResponse, error) {
	var (
		pros []*entities.Professional
		err  error
	)
	if filter.Specialization != "" && filter.City == "" && filter.UserID == uuid.Nil {
		pros, err = u.professionalRepo.ListBySpecialization(ctx, filter.Specialization)
	} else {
		pros, err = u.professionalRepo.List(ctx, filter)
	}
	if err != nil {
		return nil, fmt.Errorf("list professionals: %w", err)
	}

	l := newLookup(u.userRepo, u.professionalRepo, nil)
	out := make([]*entities.ProfessionalResponse, 0, len(pros))
	for _, p := range pros {
		resp, err := l.professionalWithContact(ctx, p)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

// Get returns one profile with its owner's contact
func (u *ProfessionalUsecase) Get(ctx context.Context, id uuid.UUID) (*entities.ProfessionalResponse, error) {
	p, err := u.professionalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Professional")
	}
	return newLookup(u.userRepo, u.professionalRepo, nil).professionalWithContact(ctx, p)
}

// UpdateKYC records an admin's KYC decision. An approval marks the owning
// user verified and a rejection clears it; pending leaves the user alone.
func (u *ProfessionalUsecase) UpdateKYC(ctx context.Context, id uuid.UUID, input *entities.UpdateKYCInput) (*entities.Professional, error) {
	if !input.Status.Valid() {
		return nil, domainerrors.BadRequest("invalid KYC status")
	}
	status := input.Status
	p, err := u.professionalRepo.Update(ctx, id, entities.ProfessionalPatch{
		KYCStatus:    &status,
		KYCDocuments: input.Documents,
	})
	if err != nil {
		return nil, notFound(err, "Professional")
	}

	if status == entities.KYCApproved || status == entities.KYCRejected {
		verified := status == entities.KYCApproved
		if _, err := u.userRepo.Update(ctx, p.UserID, entities.UserPatch{IsVerified: &verified}); err != nil {
			return nil, fmt.Errorf("update verification for user %s: %w", p.UserID, err)
		}
	}
	return p, nil
}
