package usecases_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"complianceconnect.backend/internal/domain/entities"
	"complianceconnect.backend/internal/usecases"
)

func newServiceUsecase(f *fixtures) *usecases.ServiceUsecase {
	return usecases.NewServiceUsecase(f.store.Services(), f.store.Professionals(), f.store.Users())
}

func TestServiceUsecase_List_Enriched(t *testing.T) {
	f := newFixtures(t)
	uc := newServiceUsecase(f)

	all, err := uc.List(context.Background(), uuid.Nil)
	require.NoError(t, err)
	require.Len(t, all, 6)
	for _, s := range all {
		require.NotNil(t, s.Professional)
		require.NotNil(t, s.Professional.User)
		assert.NotEmpty(t, s.Professional.User.Name)
		assert.Empty(t, s.Professional.User.Email)
	}

	mine, err := uc.List(context.Background(), f.priya.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, f.priya.ID, mine[0].ProfessionalID)
}

func TestServiceUsecase_Create(t *testing.T) {
	f := newFixtures(t)
	uc := newServiceUsecase(f)
	ctx := context.Background()

	rajeshUser, err := f.store.Users().GetByID(ctx, f.rajesh.UserID)
	require.NoError(t, err)

	svc, err := uc.Create(ctx, principal(rajeshUser), &entities.CreateServiceInput{
		Title: "ROC Filing", Description: "Annual ROC filing", Category: "Company Law", Price: ptr(5000), Duration: ptr(90),
	})
	require.NoError(t, err)
	assert.Equal(t, f.rajesh.ID, svc.ProfessionalID)
	assert.True(t, svc.IsActive)

	_, err = uc.Create(ctx, principal(rajeshUser), &entities.CreateServiceInput{
		ProfessionalID: f.priya.ID, Title: "x", Description: "x", Category: "x", Price: ptr(1),
	})
	assert.Equal(t, 403, statusOf(err))

	byAdmin, err := uc.Create(ctx, principal(f.admin), &entities.CreateServiceInput{
		ProfessionalID: f.priya.ID, Title: "x", Description: "x", Category: "x", Price: ptr(1),
	})
	require.NoError(t, err)
	assert.Equal(t, f.priya.ID, byAdmin.ProfessionalID)

	_, err = uc.Create(ctx, principal(f.admin), &entities.CreateServiceInput{
		Title: "x", Description: "x", Category: "x", Price: ptr(1),
	})
	assert.Equal(t, 404, statusOf(err))
}

func TestServiceUsecase_Quote(t *testing.T) {
	f := newFixtures(t)
	uc := newServiceUsecase(f)

	svc := f.services(t, f.rajesh)[0]
	require.Equal(t, 2000, svc.Price)

	q, err := uc.Quote(context.Background(), svc.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, q.PlatformFee)
	assert.Equal(t, 378, q.GST)
	assert.Equal(t, 2478, q.Total)
	assert.Equal(t, int64(247800), q.TotalAmount)

	_, err = uc.Quote(context.Background(), uuid.New())
	assert.Equal(t, 404, statusOf(err))
}
