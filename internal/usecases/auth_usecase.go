package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"complianceconnect.backend/internal/domain/entities"
	domainerrors "complianceconnect.backend/internal/domain/errors"
	"complianceconnect.backend/internal/domain/repositories"
	"complianceconnect.backend/pkg/crypto"
	"complianceconnect.backend/pkg/jwt"
)

// AuthUsecase handles registration, login and the caller's own profile
type AuthUsecase struct {
	userRepo   repositories.UserRepository
	jwtService *jwt.JWTService
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(userRepo repositories.UserRepository, jwtService *jwt.JWTService) *AuthUsecase {
	return &AuthUsecase{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a business or professional account
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterInput) (*entities.User, error) {
	if !input.Role.SelfRegistrable() {
		return nil, domainerrors.BadRequest("role must be business or professional")
	}
	email := normalizeEmail(input.Email)

	// Cheap pre-check; the unique index still decides under a race.
	_, err := u.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, domainerrors.Conflict("Email already registered")
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		if errors.Is(err, crypto.ErrPasswordTooLong) {
			return nil, domainerrors.BadRequest(err.Error())
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entities.User{
		Email:        email,
		PasswordHash: passwordHash,
		Role:         input.Role,
		Name:         strings.TrimSpace(input.Name),
	}
	if input.Phone != "" {
		user.Phone = null.StringFrom(input.Phone)
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("Email already registered")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login authenticates a user and returns tokens
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	return u.issue(user)
}

// RefreshToken exchanges a valid refresh token for a new pair
func (u *AuthUsecase) RefreshToken(ctx context.Context, refreshToken string) (*entities.AuthResponse, error) {
	claims, err := u.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, domainerrors.Unauthorized("Invalid refresh token")
	}

	user, err := u.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Unauthorized("Invalid refresh token")
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return u.issue(user)
}

// GetMe returns the authenticated user
func (u *AuthUsecase) GetMe(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "User")
	}
	return user, nil
}

// UpdateProfile changes the caller's name and phone
func (u *AuthUsecase) UpdateProfile(ctx context.Context, userID uuid.UUID, input *entities.UpdateProfileInput) (*entities.User, error) {
	patch := entities.UserPatch{Phone: input.Phone}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domainerrors.BadRequest("name must not be empty")
		}
		patch.Name = &name
	}

	user, err := u.userRepo.Update(ctx, userID, patch)
	if err != nil {
		return nil, notFound(err, "User")
	}
	return user, nil
}

func (u *AuthUsecase) issue(user *entities.User) (*entities.AuthResponse, error) {
	pair, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}
	return &entities.AuthResponse{
		User:         user.Public(),
		Token:        pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt,
	}, nil
}
