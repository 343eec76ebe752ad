package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"complianceconnect.backend/internal/domain/entities"
	domainerrors "complianceconnect.backend/internal/domain/errors"
	"complianceconnect.backend/pkg/utils"
)

type requirementRepo struct{ s *Storage }

func (r *requirementRepo) Create(_ context.Context, req *entities.Requirement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if req.ID == uuid.Nil {
		req.ID = utils.GenerateUUIDv7()
	}
	if _, taken := r.s.requirements[req.ID]; taken {
		return domainerrors.ErrAlreadyExists
	}
	if req.Status == "" {
		req.Status = entities.RequirementOpen
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now().UTC()
	}

	stored := *req
	r.s.requirements[req.ID] = &stored
	r.s.requirementOrder = append(r.s.requirementOrder, req.ID)
	return nil
}

func (r *requirementRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.Requirement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	req, ok := r.s.requirements[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	out := *req
	return &out, nil
}

func (r *requirementRepo) ListByBusiness(_ context.Context, businessID uuid.UUID) ([]*entities.Requirement, error) {
	return r.newestFirst(func(req *entities.Requirement) bool { return req.BusinessID == businessID }), nil
}

func (r *requirementRepo) List(_ context.Context) ([]*entities.Requirement, error) {
	return r.newestFirst(func(*entities.Requirement) bool { return true }), nil
}

func (r *requirementRepo) newestFirst(keep func(*entities.Requirement) bool) []*entities.Requirement {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*entities.Requirement, 0)
	for i := len(r.s.requirementOrder) - 1; i >= 0; i-- {
		req := r.s.requirements[r.s.requirementOrder[i]]
		if keep(req) {
			c := *req
			out = append(out, &c)
		}
	}
	return out
}
