package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"complianceconnect.backend/internal/domain/entities"
	"complianceconnect.backend/internal/domain/repositories"
	"complianceconnect.backend/internal/infrastructure/memory"
)

func newTestJob(t *testing.T, now time.Time) (*BookingExpiryJob, *memory.Storage) {
	t.Helper()
	store := memory.NewEmptyStorage()
	job := NewBookingExpiryJob(store, "@every 1h", 24*time.Hour)
	job.now = func() time.Time { return now }
	return job, store
}

func createBooking(t *testing.T, store *memory.Storage, scheduled time.Time, status entities.BookingStatus) *entities.Booking {
	t.Helper()
	b := &entities.Booking{
		BusinessID:     uuid.New(),
		ProfessionalID: uuid.New(),
		ServiceID:      uuid.New(),
		ScheduledAt:    scheduled,
		Status:         status,
		TotalAmount:    247800,
	}
	require.NoError(t, store.Bookings().Create(context.Background(), b))
	return b
}

func TestRunOnce_CancelsOnlyStalePending(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	job, store := newTestJob(t, now)
	ctx := context.Background()

	stale := createBooking(t, store, now.Add(-48*time.Hour), entities.BookingPending)
	withinGrace := createBooking(t, store, now.Add(-time.Hour), entities.BookingPending)
	confirmed := createBooking(t, store, now.Add(-72*time.Hour), entities.BookingConfirmed)

	n, err := job.RunOnce(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	got, _ := store.Bookings().GetByID(ctx, stale.ID)
	require.Equal(t, entities.BookingCancelled, got.Status)
	require.Equal(t, int64(247800), got.TotalAmount)

	got, _ = store.Bookings().GetByID(ctx, withinGrace.ID)
	require.Equal(t, entities.BookingPending, got.Status)

	got, _ = store.Bookings().GetByID(ctx, confirmed.ID)
	require.Equal(t, entities.BookingConfirmed, got.Status)

	n, err = job.RunOnce(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestRunOnce_RespectsBatch(t *testing.T) {
	now := time.Now()
	job, store := newTestJob(t, now)
	job.batch = 2
	for i := 0; i < 3; i++ {
		createBooking(t, store, now.Add(-time.Duration(48+i)*time.Hour), entities.BookingPending)
	}

	n, err := job.RunOnce(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, n)

	n, err = job.RunOnce(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

type failingBookings struct {
	repositories.BookingRepository
}

func (failingBookings) ListPendingScheduledBefore(context.Context, time.Time, int) ([]*entities.Booking, error) {
	return nil, errors.New("db down")
}

func TestRunOnce_ListError(t *testing.T) {
	job, _ := newTestJob(t, time.Now())
	job.bookings = failingBookings{}

	n, err := job.RunOnce(context.Background())
	require.Error(t, err)
	require.Zero(t, n)
}

func TestStart_InvalidSchedule(t *testing.T) {
	job, _ := newTestJob(t, time.Now())
	job.schedule = "not a schedule"
	require.Error(t, job.Start(context.Background()))
	job.Stop()
}

func TestStartStop(t *testing.T) {
	job, _ := newTestJob(t, time.Now())
	require.NoError(t, job.Start(context.Background()))
	require.NotNil(t, job.cron)
	require.Len(t, job.cron.Entries(), 1)
	job.Stop()
}

// confirmingBookings confirms the booking right after the sweep reads it.
type confirmingBookings struct {
	repositories.BookingRepository
	confirmed bool
}

func (r *confirmingBookings) GetByID(ctx context.Context, id uuid.UUID) (*entities.Booking, error) {
	b, err := r.BookingRepository.GetByID(ctx, id)
	if err == nil && !r.confirmed {
		r.confirmed = true
		status := entities.BookingConfirmed
		if _, err := r.BookingRepository.Update(ctx, id, entities.BookingPatch{Status: &status}); err != nil {
			return nil, err
		}
	}
	return b, err
}

func TestRunOnce_ConfirmationDuringSweepWins(t *testing.T) {
	now := time.Now()
	job, store := newTestJob(t, now)
	stale := createBooking(t, store, now.Add(-48*time.Hour), entities.BookingPending)
	job.bookings = &confirmingBookings{BookingRepository: store.Bookings()}

	n, err := job.RunOnce(context.Background())
	require.NoError(t, err)
	require.Zero(t, n)

	got, err := store.Bookings().GetByID(context.Background(), stale.ID)
	require.NoError(t, err)
	require.Equal(t, entities.BookingConfirmed, got.Status)
}
