package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"complianceconnect.backend/internal/domain/entities"
	domainerrors "complianceconnect.backend/internal/domain/errors"
	"complianceconnect.backend/pkg/utils"
)

type messageRepo struct{ s *Storage }

func (r *messageRepo) Create(_ context.Context, m *entities.Message) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if m.ID == uuid.Nil {
		m.ID = utils.GenerateUUIDv7()
	}
	if _, taken := r.s.messages[m.ID]; taken {
		return domainerrors.ErrAlreadyExists
	}
	if m.SentAt.IsZero() {
		m.SentAt = time.Now().UTC()
	}

	stored := *m
	r.s.messages[m.ID] = &stored
	return nil
}

func (r *messageRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.Message, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m, ok := r.s.messages[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	out := *m
	return &out, nil
}

// ListByBooking filters the map, then sorts by SentAt; map order is meaningless.
func (r *messageRepo) ListByBooking(_ context.Context, bookingID uuid.UUID) ([]*entities.Message, error) {
	r.s.mu.RLock()
	out := make([]*entities.Message, 0)
	for _, m := range r.s.messages {
		if m.BookingID == bookingID {
			c := *m
			out = append(out, &c)
		}
	}
	r.s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].SentAt.Equal(out[j].SentAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].SentAt.Before(out[j].SentAt)
	})
	return out, nil
}
