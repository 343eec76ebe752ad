package usecases_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"golang.org/x/crypto/bcrypt"

	"complianceconnect.backend/internal/domain/entities"
	"complianceconnect.backend/internal/domain/repositories"
	"complianceconnect.backend/internal/infrastructure/datasources/sqlite"
	"complianceconnect.backend/internal/infrastructure/memory"
	gormrepos "complianceconnect.backend/internal/infrastructure/repositories"
	"complianceconnect.backend/internal/infrastructure/seed"
	"complianceconnect.backend/pkg/crypto"
)

func init() {
	crypto.SetCost(bcrypt.MinCost)
}

// fixtures is the seeded marketplace every store-backed test starts from.
type fixtures struct {
	store    repositories.Storage
	admin    *entities.User
	business *entities.User
	rajesh   *entities.Professional
	priya    *entities.Professional
}

func newFixtures(t *testing.T) *fixtures {
	t.Helper()
	store, err := memory.NewStorage(context.Background())
	require.NoError(t, err)
	return fixturesFrom(t, store)
}

// newSQLFixtures seeds a fresh in-memory sqlite database through the gorm storage.
func newSQLFixtures(t *testing.T) *fixtures {
	t.Helper()
	dsn := fmt.Sprintf("file:usecases_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := sqlite.NewConnection(dsn)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, gormrepos.Migrate(db))

	store := gormrepos.NewStorage(db)
	_, err = seed.Run(context.Background(), store)
	require.NoError(t, err)
	return fixturesFrom(t, store)
}

func fixturesFrom(t *testing.T, store repositories.Storage) *fixtures {
	t.Helper()
	ctx := context.Background()

	admin, err := store.Users().GetByEmail(ctx, seed.AdminEmail)
	require.NoError(t, err)
	business, err := store.Users().GetByEmail(ctx, seed.BusinessEmail)
	require.NoError(t, err)

	pros, err := store.Professionals().List(ctx, entities.ProfessionalFilter{})
	require.NoError(t, err)
	require.Len(t, pros, 3)

	return &fixtures{store: store, admin: admin, business: business, rajesh: pros[0], priya: pros[1]}
}

func principal(u *entities.User) entities.Principal {
	return entities.Principal{UserID: u.ID, Email: u.Email, Role: u.Role}
}

func (f *fixtures) services(t *testing.T, p *entities.Professional) []*entities.Service {
	t.Helper()
	svcs, err := f.store.Services().ListByProfessional(context.Background(), p.ID)
	require.NoError(t, err)
	require.NotEmpty(t, svcs)
	return svcs
}

func (f *fixtures) newProfessionalUser(t *testing.T, email string) *entities.User {
	t.Helper()
	u := &entities.User{Email: email, Name: "New Pro", Role: entities.UserRoleProfessional, PasswordHash: "x"}
	require.NoError(t, f.store.Users().Create(context.Background(), u))
	return u
}

func ptr[T any](v T) *T { return &v }

func at(hours int) time.Time {
	return time.Now().UTC().Add(time.Duration(hours) * time.Hour)
}

func nullCity(c string) null.String { return null.StringFrom(c) }
