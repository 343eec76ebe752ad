package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"complianceconnect.backend/internal/domain/entities"
	domainerrors "complianceconnect.backend/internal/domain/errors"
	"complianceconnect.backend/internal/domain/repositories"
)

// lookup memoizes the sequential id lookups that enrich one response.
// Missing records resolve to nil so the nested field renders as null.
type lookup struct {
	users         repositories.UserRepository
	professionals repositories.ProfessionalRepository
	services      repositories.ServiceRepository

	userCache         map[uuid.UUID]*entities.User
	professionalCache map[uuid.UUID]*entities.Professional
	serviceCache      map[uuid.UUID]*entities.Service
}

func newLookup(users repositories.UserRepository, professionals repositories.ProfessionalRepository, services repositories.ServiceRepository) *lookup {
	return &lookup{
		users:             users,
		professionals:     professionals,
		services:          services,
		userCache:         map[uuid.UUID]*entities.User{},
		professionalCache: map[uuid.UUID]*entities.Professional{},
		serviceCache:      map[uuid.UUID]*entities.Service{},
	}
}

func (l *lookup) user(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	if u, ok := l.userCache[id]; ok {
		return u, nil
	}
	u, err := l.users.GetByID(ctx, id)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, fmt.Errorf("load user %s: %w", id, err)
	}
	l.userCache[id] = u
	return u, nil
}

func (l *lookup) professional(ctx context.Context, id uuid.UUID) (*entities.Professional, error) {
	if p, ok := l.professionalCache[id]; ok {
		return p, nil
	}
	p, err := l.professionals.GetByID(ctx, id)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, fmt.Errorf("load professional %s: %w", id, err)
	}
	l.professionalCache[id] = p
	return p, nil
}

func (l *lookup) service(ctx context.Context, id uuid.UUID) (*entities.Service, error) {
	if s, ok := l.serviceCache[id]; ok {
		return s, nil
	}
	s, err := l.services.GetByID(ctx, id)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, fmt.Errorf("load service %s: %w", id, err)
	}
	l.serviceCache[id] = s
	return s, nil
}

// professionalWithContact attaches {id, name, email} of the owner.
func (l *lookup) professionalWithContact(ctx context.Context, p *entities.Professional) (*entities.ProfessionalResponse, error) {
	u, err := l.user(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	return &entities.ProfessionalResponse{Professional: p, User: u.Contact()}, nil
}

// professionalWithName resolves a profile by id and attaches {id, name}.
// A missing profile yields nil.
func (l *lookup) professionalWithName(ctx context.Context, id uuid.UUID) (*entities.ProfessionalResponse, error) {
	p, err := l.professional(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	u, err := l.user(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	return &entities.ProfessionalResponse{Professional: p, User: u.Summary()}, nil
}
