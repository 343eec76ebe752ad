package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// UserRole represents user roles. The set is closed; see Valid.
type UserRole string

const (
	UserRoleBusiness     UserRole = "business"
	UserRoleProfessional UserRole = "professional"
	UserRoleAdmin        UserRole = "admin"
)

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case UserRoleBusiness, UserRoleProfessional, UserRoleAdmin:
		return true
	}
	return false
}

// SelfRegistrable reports whether the role may be chosen at sign-up.
// Admin accounts are provisioned, never registered.
func (r UserRole) SelfRegistrable() bool {
	return r == UserRoleBusiness || r == UserRoleProfessional
}

// User represents a user entity
type User struct {
	ID           uuid.UUID   `json:"id"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Role         UserRole    `json:"role"`
	Name         string      `json:"name"`
	Phone        null.String `json:"phone"`
	IsVerified   bool        `json:"isVerified"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// UserPatch holds the mutable user fields. Nil means unchanged.
type UserPatch struct {
	Name       *string
	Phone      *string
	IsVerified *bool
}

// Apply merges the patch onto u.
func (u *User) Apply(p UserPatch) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Phone != nil {
		u.Phone = null.StringFrom(*p.Phone)
	}
	if p.IsVerified != nil {
		u.IsVerified = *p.IsVerified
	}
}

// RegisterInput represents input for creating a user
type RegisterInput struct {
	Email    string   `json:"email" binding:"required,email,max=255"`
	Password string   `json:"password" binding:"required,min=6,max=72"`
	Role     UserRole `json:"role" binding:"required,role"`
	Name     string   `json:"name" binding:"required,min=1,max=100"`
	Phone    string   `json:"phone" binding:"omitempty,max=20"`
}

// LoginInput represents input for user login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshInput exchanges a refresh token for a new pair
type RefreshInput struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// UpdateProfileInput is the self-service profile update
type UpdateProfileInput struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=100"`
	Phone *string `json:"phone" binding:"omitempty,max=20"`
}

// UserResponse is the public shape of a user; it never carries the password.
type UserResponse struct {
	ID         uuid.UUID   `json:"id"`
	Email      string      `json:"email"`
	Role       UserRole    `json:"role"`
	Name       string      `json:"name"`
	Phone      null.String `json:"phone"`
	IsVerified bool        `json:"isVerified"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// Public strips credentials from u.
func (u *User) Public() *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Role:       u.Role,
		Name:       u.Name,
		Phone:      u.Phone,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
	}
}

// UserSummary is the nested user reference attached to enriched records.
type UserSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email,omitempty"`
}

// Summary returns {id, name}.
func (u *User) Summary() *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{ID: u.ID, Name: u.Name}
}

// Contact returns {id, name, email}.
func (u *User) Contact() *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User         *UserResponse `json:"user"`
	Token        string        `json:"token"`
	RefreshToken string        `json:"refreshToken"`
	ExpiresAt    time.Time     `json:"expiresAt"`
}

// Principal is the authenticated caller as resolved from a bearer token.
type Principal struct {
	UserID uuid.UUID
	Email  string
	Role   UserRole
}
