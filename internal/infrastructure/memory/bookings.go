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

type bookingRepo struct{ s *Storage }

func (r *bookingRepo) Create(_ context.Context, b *entities.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if b.ID == uuid.Nil {
		b.ID = utils.GenerateUUIDv7()
	}
	if _, taken := r.s.bookings[b.ID]; taken {
		return domainerrors.ErrAlreadyExists
	}
	if b.Status == "" {
		b.Status = entities.BookingPending
	}
	if b.PaymentStatus == "" {
		b.PaymentStatus = entities.PaymentPending
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}

	stored := *b
	r.s.bookings[b.ID] = &stored
	r.s.bookingOrder = append(r.s.bookingOrder, b.ID)
	return nil
}

func (r *bookingRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b, ok := r.s.bookings[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	out := *b
	return &out, nil
}

func (r *bookingRepo) ListByBusiness(_ context.Context, businessID uuid.UUID) ([]*entities.Booking, error) {
	return r.newestFirst(func(b *entities.Booking) bool { return b.BusinessID == businessID }), nil
}

func (r *bookingRepo) ListByProfessional(_ context.Context, professionalID uuid.UUID) ([]*entities.Booking, error) {
	return r.newestFirst(func(b *entities.Booking) bool { return b.ProfessionalID == professionalID }), nil
}

func (r *bookingRepo) Update(_ context.Context, id uuid.UUID, patch entities.BookingPatch) (*entities.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.bookings[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	b.Apply(patch)
	out := *b
	return &out, nil
}

func (r *bookingRepo) UpdateFrom(_ context.Context, id uuid.UUID, expected entities.BookingState, patch entities.BookingPatch) (*entities.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.bookings[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	if b.State() != expected {
		return nil, domainerrors.ErrInvalidTransition
	}
	b.Apply(patch)
	out := *b
	return &out, nil
}

func (r *bookingRepo) ListPendingScheduledBefore(_ context.Context, before time.Time, limit int) ([]*entities.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*entities.Booking, 0)
	for _, id := range r.s.bookingOrder {
		b := r.s.bookings[id]
		if b.Status != entities.BookingPending || !b.ScheduledAt.Before(before) {
			continue
		}
		c := *b
		out = append(out, &c)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ScheduledAt.Before(out[j].ScheduledAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *bookingRepo) newestFirst(keep func(*entities.Booking) bool) []*entities.Booking {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*entities.Booking, 0)
	for i := len(r.s.bookingOrder) - 1; i >= 0; i-- {
		b := r.s.bookings[r.s.bookingOrder[i]]
		if keep(b) {
			c := *b
			out = append(out, &c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}
