package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"complianceconnect.backend/internal/domain/entities"
	"complianceconnect.backend/internal/interfaces/http/response"
	"complianceconnect.backend/internal/usecases"
)

// UserHandler serves the caller's own account
type UserHandler struct {
	authUsecase *usecases.AuthUsecase
}

func NewUserHandler(authUsecase *usecases.AuthUsecase) *UserHandler {
	return &UserHandler{authUsecase: authUsecase}
}

// GetMe returns the authenticated user
// GET /api/users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	user, err := h.authUsecase.GetMe(c.Request.Context(), p.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, user.Public())
}

// UpdateMe changes name and phone
// PATCH /api/users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var input entities.UpdateProfileInput
	if !bindJSON(c, &input) {
		return
	}

	user, err := h.authUsecase.UpdateProfile(c.Request.Context(), p.UserID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, user.Public())
}
