package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"complianceconnect.backend/internal/domain/entities"
	domainerrors "complianceconnect.backend/internal/domain/errors"
	"complianceconnect.backend/pkg/utils"
)

type userRepo struct{ s *Storage }

func (r *userRepo) Create(_ context.Context, user *entities.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, taken := r.s.emails[user.Email]; taken {
		return domainerrors.ErrAlreadyExists
	}
	if user.ID == uuid.Nil {
		user.ID = utils.GenerateUUIDv7()
	}
	if _, taken := r.s.users[user.ID]; taken {
		return domainerrors.ErrAlreadyExists
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	stored := *user
	r.s.users[user.ID] = &stored
	r.s.emails[user.Email] = user.ID
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	out := *u
	return &out, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*entities.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.emails[email]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	out := *r.s.users[id]
	return &out, nil
}

func (r *userRepo) Update(_ context.Context, id uuid.UUID, patch entities.UserPatch) (*entities.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	u.Apply(patch)
	out := *u
	return &out, nil
}

func (r *userRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.users)), nil
}
