package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"complianceconnect.backend/internal/domain/entities"
	domainerrors "complianceconnect.backend/internal/domain/errors"
	"complianceconnect.backend/internal/domain/repositories"
	"complianceconnect.backend/pkg/logger"
)

const defaultExpiryBatch = 100

var errNoLongerPending = errors.New("booking is no longer pending")

// BookingExpiryJob cancels pending bookings whose slot passed more than
// grace ago without being confirmed.
type BookingExpiryJob struct {
	bookings repositories.BookingRepository
	schedule string
	grace    time.Duration
	batch    int
	now      func() time.Time

	cron *cron.Cron
}

func NewBookingExpiryJob(storage repositories.Storage, schedule string, grace time.Duration) *BookingExpiryJob {
	return &BookingExpiryJob{
		bookings: storage.Bookings(),
		schedule: schedule,
		grace:    grace,
		batch:    defaultExpiryBatch,
		now:      time.Now,
	}
}

// Start registers the sweep on the cron schedule and starts the scheduler.
func (j *BookingExpiryJob) Start(ctx context.Context) error {
	c := cron.New()
	if _, err := c.AddFunc(j.schedule, func() {
		if _, err := j.RunOnce(ctx); err != nil {
			logger.Error(ctx, "Booking expiry sweep failed", zap.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("invalid booking expiry schedule %q: %w", j.schedule, err)
	}
	j.cron = c
	c.Start()
	logger.Info(ctx, "Booking expiry job started", zap.String("schedule", j.schedule), zap.Duration("grace", j.grace))
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (j *BookingExpiryJob) Stop() {
	if j.cron == nil {
		return
	}
	<-j.cron.Stop().Done()
	logger.Info(context.Background(), "Booking expiry job stopped")
}

// RunOnce cancels one batch of stale pending bookings and reports how many
// were cancelled.
func (j *BookingExpiryJob) RunOnce(ctx context.Context) (int, error) {
	cutoff := j.now().Add(-j.grace)
	stale, err := j.bookings.ListPendingScheduledBefore(ctx, cutoff, j.batch)
	if err != nil {
		return 0, fmt.Errorf("list stale bookings: %w", err)
	}
	if len(stale) == 0 {
		return 0, nil
	}

	cancelled := 0
	for _, b := range stale {
		if err := j.cancel(ctx, b.ID); err != nil {
			if !errors.Is(err, errNoLongerPending) {
				logger.Warn(ctx, "Failed to cancel stale booking", zap.String("booking_id", b.ID.String()), zap.Error(err))
			}
			continue
		}
		cancelled++
	}

	logger.Info(ctx, "Cancelled stale bookings", zap.Int("count", cancelled), zap.Time("cutoff", cutoff))
	return cancelled, nil
}

// cancel moves a still-pending booking to cancelled. The write is
// conditioned on the state just read, so a confirmation that lands first
// wins over the sweep.
func (j *BookingExpiryJob) cancel(ctx context.Context, id uuid.UUID) error {
	current, err := j.bookings.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current.Status != entities.BookingPending {
		return errNoLongerPending
	}
	status := entities.BookingCancelled
	_, err = j.bookings.UpdateFrom(ctx, id, current.State(), entities.BookingPatch{Status: &status})
	if errors.Is(err, domainerrors.ErrInvalidTransition) {
		return errNoLongerPending
	}
	return err
}
