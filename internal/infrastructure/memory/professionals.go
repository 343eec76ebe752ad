package memory

import (
	"context"

	"github.com/google/uuid"

	"complianceconnect.backend/internal/domain/entities"
	domainerrors "complianceconnect.backend/internal/domain/errors"
	"complianceconnect.backend/pkg/utils"
)

type professionalRepo struct{ s *Storage }

func (r *professionalRepo) Create(_ context.Context, p *entities.Professional) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if p.ID == uuid.Nil {
		p.ID = utils.GenerateUUIDv7()
	}
	if _, taken := r.s.professionals[p.ID]; taken {
		return domainerrors.ErrAlreadyExists
	}
	if p.KYCStatus == "" {
		p.KYCStatus = entities.KYCPending
	}
	if p.Specializations == nil {
		p.Specializations = []string{}
	}

	r.s.professionals[p.ID] = p.Clone()
	r.s.professionalOrder = append(r.s.professionalOrder, p.ID)
	return nil
}

func (r *professionalRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.Professional, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.professionals[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return p.Clone(), nil
}

func (r *professionalRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*entities.Professional, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, id := range r.s.professionalOrder {
		if p := r.s.professionals[id]; p.UserID == userID {
			return p.Clone(), nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (r *professionalRepo) Update(_ context.Context, id uuid.UUID, patch entities.ProfessionalPatch) (*entities.Professional, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.professionals[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	p.Apply(patch)
	return p.Clone(), nil
}

func (r *professionalRepo) List(_ context.Context, filter entities.ProfessionalFilter) ([]*entities.Professional, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*entities.Professional, 0, len(r.s.professionalOrder))
	for _, id := range r.s.professionalOrder {
		if p := r.s.professionals[id]; filter.Matches(p) {
			out = append(out, p.Clone())
		}
	}
	return out, nil
}

func (r *professionalRepo) ListBySpecialization(ctx context.Context, specialization string) ([]*entities.Professional, error) {
	return r.List(ctx, entities.ProfessionalFilter{Specialization: specialization})
}
