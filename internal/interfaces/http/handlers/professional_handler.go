package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"complianceconnect.backend/internal/domain/entities"
	"complianceconnect.backend/internal/interfaces/http/response"
	"complianceconnect.backend/internal/usecases"
)

// ProfessionalHandler handles professional profile endpoints
type ProfessionalHandler struct {
	professionalUsecase *usecases.ProfessionalUsecase
}

// NewProfessionalHandler creates a new professional handler
func NewProfessionalHandler(professionalUsecase *usecases.ProfessionalUsecase) *ProfessionalHandler {
	return &ProfessionalHandler{professionalUsecase: professionalUsecase}
}

// Create registers a professional profile
// POST /api/professionals
func (h *ProfessionalHandler) Create(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var input entities.CreateProfessionalInput
	if !bindJSON(c, &input) {
		return
	}

	pro, err := h.professionalUsecase.Create(c.Request.Context(), p, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, pro)
}

// List returns profiles filtered by specialization, city and owner
// GET /api/professionals?specialization=GST&city=Mumbai&userId=
func (h *ProfessionalHandler) List(c *gin.Context) {
	userID, ok := uuidQuery(c, "userId")
	if !ok {
		return
	}

	pros, err := h.professionalUsecase.List(c.Request.Context(), entities.ProfessionalFilter{
		Specialization: c.Query("specialization"),
		City:           c.Query("city"),
		UserID:         userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, pros)
}

// Get returns one profile
// GET /api/professionals/:id
func (h *ProfessionalHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	pro, err := h.professionalUsecase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, pro)
}

// UpdateKYC records the admin's KYC decision
// PUT /api/professionals/:id/kyc
func (h *ProfessionalHandler) UpdateKYC(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var input entities.UpdateKYCInput
	if !bindJSON(c, &input) {
		return
	}

	pro, err := h.professionalUsecase.UpdateKYC(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, pro)
}
