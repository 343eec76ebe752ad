package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"complianceconnect.backend/internal/domain/entities"
	domainerrors "complianceconnect.backend/internal/domain/errors"
	"complianceconnect.backend/internal/interfaces/http/response"
	"complianceconnect.backend/pkg/jwt"
	"complianceconnect.backend/pkg/logger"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// UserIDHeader optionally restates the caller; it must match the token subject
	UserIDHeader = "X-User-Id"
	// UserIDKey is the context key for user ID
	UserIDKey = "userId"
	// UserEmailKey is the context key for user email
	UserEmailKey = "userEmail"
	// UserRoleKey is the context key for user role
	UserRoleKey = "userRole"
)

// AuthMiddleware verifies the bearer access token and stores the caller
func AuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			response.Error(c, domainerrors.Unauthorized("Authorization header is required"))
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			response.Error(c, domainerrors.Unauthorized("Invalid authorization format. Use: Bearer <token>"))
			return
		}

		claims, err := jwtService.ValidateToken(strings.TrimPrefix(authHeader, BearerPrefix))
		if err != nil {
			logger.Debug(c.Request.Context(), "Rejected bearer token", zap.String("path", c.Request.URL.Path), zap.Error(err))
			if errors.Is(err, jwt.ErrExpiredToken) {
				response.Error(c, domainerrors.Unauthorized("Token has expired"))
				return
			}
			response.Error(c, domainerrors.Unauthorized("Invalid token"))
			return
		}

		if claimed := c.GetHeader(UserIDHeader); claimed != "" {
			if id, err := uuid.Parse(claimed); err != nil || id != claims.UserID {
				response.Error(c, domainerrors.Unauthorized("User id does not match token"))
				return
			}
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserEmailKey, claims.Email)
		c.Set(UserRoleKey, entities.UserRole(claims.Role))

		ctx := context.WithValue(c.Request.Context(), logger.UserIDKey, claims.UserID.String())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetUserID gets the user ID from context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := userID.(uuid.UUID)
	return id, ok
}

// GetPrincipal returns the authenticated caller
func GetPrincipal(c *gin.Context) (entities.Principal, bool) {
	id, ok := GetUserID(c)
	if !ok {
		return entities.Principal{}, false
	}
	role, _ := c.Get(UserRoleKey)
	r, _ := role.(entities.UserRole)
	return entities.Principal{UserID: id, Email: c.GetString(UserEmailKey), Role: r}, true
}

// Require admits callers whose role holds perm. It must run after AuthMiddleware.
func Require(perm entities.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		if !ok {
			response.Error(c, domainerrors.Unauthorized("Authentication required"))
			return
		}
		if !entities.Allows(p.Role, perm) {
			response.Error(c, domainerrors.Forbidden("Insufficient permissions"))
			return
		}
		c.Next()
	}
}
