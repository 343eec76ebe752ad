package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"complianceconnect.backend/internal/domain/entities"
	"complianceconnect.backend/internal/infrastructure/models"
	"complianceconnect.backend/pkg/utils"
)

// UserRepository implements user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	if user.ID == uuid.Nil {
		user.ID = utils.GenerateUUIDv7()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	if user.Role == "" {
		user.Role = entities.UserRoleBusiness
	}

	m := &models.User{
		ID:           user.ID,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Role:         string(user.Role),
		Name:         user.Name,
		Phone:        user.Phone.Ptr(),
		IsVerified:   user.IsVerified,
		CreatedAt:    user.CreatedAt,
	}
	return translate(GetDB(ctx, r.db).Create(m).Error)
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return r.toEntity(&m), nil
}

// GetByEmail gets a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).Where("email = ?", email).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return r.toEntity(&m), nil
}

// Update applies patch and returns the stored user
func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, patch entities.UserPatch) (*entities.User, error) {
	var out *entities.User
	err := GetDB(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		var m models.User
		if err := tx.Where("id = ?", id).First(&m).Error; err != nil {
			return err
		}
		user := r.toEntity(&m)
		user.Apply(patch)

		m.Name = user.Name
		m.Phone = user.Phone.Ptr()
		m.IsVerified = user.IsVerified
		if err := tx.Save(&m).Error; err != nil {
			return err
		}
		out = user
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

// Count returns the number of users
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := GetDB(ctx, r.db).Model(&models.User{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *UserRepository) toEntity(m *models.User) *entities.User {
	return &entities.User{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         entities.UserRole(m.Role),
		Name:         m.Name,
		Phone:        null.StringFromPtr(m.Phone),
		IsVerified:   m.IsVerified,
		CreatedAt:    m.CreatedAt,
	}
}
