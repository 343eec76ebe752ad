package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"complianceconnect.backend/internal/domain/entities"
	"complianceconnect.backend/internal/interfaces/http/response"
	"complianceconnect.backend/internal/usecases"
)

// RequirementHandler handles posted business requirements
type RequirementHandler struct {
	requirementUsecase *usecases.RequirementUsecase
}

// NewRequirementHandler creates a new requirement handler
func NewRequirementHandler(requirementUsecase *usecases.RequirementUsecase) *RequirementHandler {
	return &RequirementHandler{requirementUsecase: requirementUsecase}
}

// Create posts a requirement
// POST /api/requirements
func (h *RequirementHandler) Create(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var input entities.CreateRequirementInput
	if !bindJSON(c, &input) {
		return
	}

	req, err := h.requirementUsecase.Create(c.Request.Context(), p, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, req)
}

// List returns every requirement with its business
// GET /api/requirements
func (h *RequirementHandler) List(c *gin.Context) {
	reqs, err := h.requirementUsecase.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, reqs)
}

// ListByBusiness returns one business's requirements
// GET /api/requirements/business/:businessId
func (h *RequirementHandler) ListByBusiness(c *gin.Context) {
	businessID, ok := uuidParam(c, "businessId")
	if !ok {
		return
	}

	reqs, err := h.requirementUsecase.ListByBusiness(c.Request.Context(), businessID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, reqs)
}
