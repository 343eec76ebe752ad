package memory

import (
	"context"

	"github.com/google/uuid"

	"complianceconnect.backend/internal/domain/entities"
	domainerrors "complianceconnect.backend/internal/domain/errors"
	"complianceconnect.backend/pkg/utils"
)

type serviceRepo struct{ s *Storage }

func (r *serviceRepo) Create(_ context.Context, svc *entities.Service) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if svc.ID == uuid.Nil {
		svc.ID = utils.GenerateUUIDv7()
	}
	if _, taken := r.s.services[svc.ID]; taken {
		return domainerrors.ErrAlreadyExists
	}
	svc.IsActive = true

	stored := *svc
	r.s.services[svc.ID] = &stored
	r.s.serviceOrder = append(r.s.serviceOrder, svc.ID)
	return nil
}

func (r *serviceRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.Service, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	svc, ok := r.s.services[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	out := *svc
	return &out, nil
}

func (r *serviceRepo) ListByProfessional(_ context.Context, professionalID uuid.UUID) ([]*entities.Service, error) {
	return r.list(func(svc *entities.Service) bool { return svc.ProfessionalID == professionalID }), nil
}

func (r *serviceRepo) List(_ context.Context) ([]*entities.Service, error) {
	return r.list(func(*entities.Service) bool { return true }), nil
}

func (r *serviceRepo) list(keep func(*entities.Service) bool) []*entities.Service {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*entities.Service, 0)
	for _, id := range r.s.serviceOrder {
		svc := r.s.services[id]
		if !svc.IsActive || !keep(svc) {
			continue
		}
		c := *svc
		out = append(out, &c)
	}
	return out
}
