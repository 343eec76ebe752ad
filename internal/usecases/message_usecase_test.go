package usecases_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"complianceconnect.backend/internal/domain/entities"
	"complianceconnect.backend/internal/usecases"
	"complianceconnect.backend/pkg/cache"
)

// countingCache records reads that reached the backing cache.
type countingCache struct {
	cache.Cache
	hits int
}

func (c *countingCache) Get(ctx context.Context, key string) (string, error) {
	v, err := c.Cache.Get(ctx, key)
	if err == nil {
		c.hits++
	}
	return v, err
}

type brokenCache struct{}

func (brokenCache) Get(context.Context, string) (string, error) { return "", errors.New("down") }
func (brokenCache) Set(context.Context, string, string, time.Duration) error {
	return errors.New("down")
}
func (brokenCache) SetNX(context.Context, string, string, time.Duration) (bool, error) {
	return false, errors.New("down")
}
func (brokenCache) Del(context.Context, ...string) error { return errors.New("down") }
func (brokenCache) Incr(context.Context, string, int64) (int64, error) {
	return 0, errors.New("down")
}

func TestMessageUsecase_SendAndList(t *testing.T) {
	f := newFixtures(t)
	c := &countingCache{Cache: cache.NewMemory(time.Minute)}
	uc := usecases.NewMessageUsecase(f.store, c, time.Minute)
	ctx := context.Background()
	b := createTestBooking(t, f, usecases.NewBookingUsecase(f.store))

	first, err := uc.Send(ctx, principal(f.business), &entities.CreateMessageInput{BookingID: b.ID, Content: "hello"})
	require.NoError(t, err)
	assert.Equal(t, f.business.ID, first.SenderID)
	assert.Equal(t, "Business Owner", first.Sender.Name)

	list, err := uc.ListByBooking(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 0, c.hits)

	cached, err := uc.ListByBooking(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, cached, 1)
	assert.Equal(t, 1, c.hits)
	assert.Equal(t, first.ID, cached[0].ID)
	assert.Equal(t, "Business Owner", cached[0].Sender.Name)

	rajesh, err := f.store.Users().GetByID(ctx, f.rajesh.UserID)
	require.NoError(t, err)
	_, err = uc.Send(ctx, principal(rajesh), &entities.CreateMessageInput{BookingID: b.ID, Content: "hi there"})
	require.NoError(t, err)

	fresh, err := uc.ListByBooking(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, fresh, 2)
	assert.False(t, fresh[1].SentAt.Before(fresh[0].SentAt))
	assert.Equal(t, "CA Rajesh Kumar", fresh[1].Sender.Name)
}

func TestMessageUsecase_Send_Rules(t *testing.T) {
	f := newFixtures(t)
	uc := usecases.NewMessageUsecase(f.store, cache.NewMemory(time.Minute), time.Minute)
	ctx := context.Background()
	b := createTestBooking(t, f, usecases.NewBookingUsecase(f.store))

	_, err := uc.Send(ctx, principal(f.business), &entities.CreateMessageInput{BookingID: b.ID, SenderID: f.admin.ID, Content: "spoof"})
	assert.Equal(t, 403, statusOf(err))

	_, err = uc.Send(ctx, principal(f.business), &entities.CreateMessageInput{BookingID: uuid.New(), Content: "lost"})
	assert.Equal(t, 404, statusOf(err))

	empty, err := uc.ListByBooking(ctx, uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestMessageUsecase_CacheFailuresAreNotFatal(t *testing.T) {
	f := newFixtures(t)
	uc := usecases.NewMessageUsecase(f.store, brokenCache{}, time.Minute)
	ctx := context.Background()
	b := createTestBooking(t, f, usecases.NewBookingUsecase(f.store))

	_, err := uc.Send(ctx, principal(f.business), &entities.CreateMessageInput{BookingID: b.ID, Content: "hello"})
	require.NoError(t, err)

	list, err := uc.ListByBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
