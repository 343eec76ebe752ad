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

func newProfessionalUsecase(f *fixtures) *usecases.ProfessionalUsecase {
	return usecases.NewProfessionalUsecase(f.store.Professionals(), f.store.Users())
}

func TestProfessionalUsecase_Create_ForcesReviewDefaults(t *testing.T) {
	f := newFixtures(t)
	uc := newProfessionalUsecase(f)
	owner := f.newProfessionalUser(t, "newpro@mail.com")

	resp, err := uc.Create(context.Background(), principal(owner), &entities.CreateProfessionalInput{
		RegistrationNumber: "CS777",
		Qualification:      entities.QualificationCS,
		Specializations:    []string{"Secretarial Audit"},
		City:               ptr("Pune"),
		Availability:       entities.Availability{"monday": {"09:00"}},
	})
	require.NoError(t, err)
	assert.Equal(t, owner.ID, resp.UserID)
	assert.Equal(t, entities.KYCPending, resp.KYCStatus)
	assert.Zero(t, resp.Rating)
	assert.Zero(t, resp.TotalReviews)
	assert.Equal(t, owner.Email, resp.User.Email)

	_, err = uc.Create(context.Background(), principal(owner), &entities.CreateProfessionalInput{
		RegistrationNumber: "CS778", Qualification: entities.QualificationCS,
	})
	assert.Equal(t, 409, statusOf(err))
}

func TestProfessionalUsecase_Create_Ownership(t *testing.T) {
	f := newFixtures(t)
	uc := newProfessionalUsecase(f)
	owner := f.newProfessionalUser(t, "owned@mail.com")
	other := f.newProfessionalUser(t, "other@mail.com")

	_, err := uc.Create(context.Background(), principal(other), &entities.CreateProfessionalInput{
		UserID: owner.ID, RegistrationNumber: "CA1", Qualification: entities.QualificationCA,
	})
	assert.Equal(t, 403, statusOf(err))

	resp, err := uc.Create(context.Background(), principal(f.admin), &entities.CreateProfessionalInput{
		UserID: owner.ID, RegistrationNumber: "CA1", Qualification: entities.QualificationCA,
	})
	require.NoError(t, err)
	assert.Equal(t, owner.ID, resp.UserID)

	_, err = uc.Create(context.Background(), principal(f.admin), &entities.CreateProfessionalInput{
		UserID: f.business.ID, RegistrationNumber: "CA2", Qualification: entities.QualificationCA,
	})
	assert.Equal(t, 400, statusOf(err))

	_, err = uc.Create(context.Background(), principal(f.admin), &entities.CreateProfessionalInput{
		UserID: uuid.New(), RegistrationNumber: "CA3", Qualification: entities.QualificationCA,
	})
	assert.Equal(t, 404, statusOf(err))
}

func TestProfessionalUsecase_ListAndGet(t *testing.T) {
	f := newFixtures(t)
	uc := newProfessionalUsecase(f)
	ctx := context.Background()

	all, err := uc.List(ctx, entities.ProfessionalFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	for _, p := range all {
		require.NotNil(t, p.User)
		assert.NotEmpty(t, p.User.Email)
	}

	mumbai, err := uc.List(ctx, entities.ProfessionalFilter{City: "Mumbai"})
	require.NoError(t, err)
	require.Len(t, mumbai, 1)
	assert.Equal(t, "Mumbai", mumbai[0].City.String)

	gst, err := uc.List(ctx, entities.ProfessionalFilter{Specialization: "GST Returns"})
	require.NoError(t, err)
	for _, p := range gst {
		assert.True(t, p.HasSpecialization("GST Returns"))
	}

	got, err := uc.Get(ctx, f.priya.ID)
	require.NoError(t, err)
	assert.Equal(t, f.priya.ID, got.ID)
	assert.Equal(t, "CS Priya Sharma", got.User.Name)

	_, err = uc.Get(ctx, uuid.New())
	assert.Equal(t, 404, statusOf(err))
}

func TestProfessionalUsecase_List_MissingOwnerRendersNull(t *testing.T) {
	f := newFixtures(t)
	uc := newProfessionalUsecase(f)
	orphan := &entities.Professional{UserID: uuid.New(), RegistrationNumber: "X", Qualification: entities.QualificationCA, City: nullCity("Nowhere")}
	require.NoError(t, f.store.Professionals().Create(context.Background(), orphan))

	got, err := uc.List(context.Background(), entities.ProfessionalFilter{City: "Nowhere"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].User)
}

func TestProfessionalUsecase_UpdateKYC(t *testing.T) {
	f := newFixtures(t)
	uc := newProfessionalUsecase(f)

	p, err := uc.UpdateKYC(context.Background(), f.rajesh.ID, &entities.UpdateKYCInput{
		Status:    entities.KYCRejected,
		Documents: &entities.KYCDocuments{PAN: "pan.pdf"},
	})
	require.NoError(t, err)
	assert.Equal(t, entities.KYCRejected, p.KYCStatus)
	assert.Equal(t, "pan.pdf", p.KYCDocuments.PAN)

	_, err = uc.UpdateKYC(context.Background(), uuid.New(), &entities.UpdateKYCInput{Status: entities.KYCApproved})
	assert.Equal(t, 404, statusOf(err))

	_, err = uc.UpdateKYC(context.Background(), f.rajesh.ID, &entities.UpdateKYCInput{Status: "bogus"})
	assert.Equal(t, 400, statusOf(err))
}

func TestProfessionalUsecase_UpdateKYC_TracksOwnerVerification(t *testing.T) {
	f := newFixtures(t)
	uc := newProfessionalUsecase(f)
	ctx := context.Background()

	_, err := uc.UpdateKYC(ctx, f.rajesh.ID, &entities.UpdateKYCInput{Status: entities.KYCRejected})
	require.NoError(t, err)
	owner, err := f.store.Users().GetByID(ctx, f.rajesh.UserID)
	require.NoError(t, err)
	assert.False(t, owner.IsVerified)

	_, err = uc.UpdateKYC(ctx, f.rajesh.ID, &entities.UpdateKYCInput{Status: entities.KYCPending})
	require.NoError(t, err)
	owner, err = f.store.Users().GetByID(ctx, f.rajesh.UserID)
	require.NoError(t, err)
	assert.False(t, owner.IsVerified)

	_, err = uc.UpdateKYC(ctx, f.rajesh.ID, &entities.UpdateKYCInput{Status: entities.KYCApproved})
	require.NoError(t, err)
	owner, err = f.store.Users().GetByID(ctx, f.rajesh.UserID)
	require.NoError(t, err)
	assert.True(t, owner.IsVerified)
}
