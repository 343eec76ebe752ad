package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"complianceconnect.backend/internal/domain/entities"
	"complianceconnect.backend/internal/interfaces/http/response"
	"complianceconnect.backend/internal/usecases"
)

// ServiceHandler handles service catalogue endpoints
type ServiceHandler struct {
	serviceUsecase *usecases.ServiceUsecase
}

// NewServiceHandler creates a new service handler
func NewServiceHandler(serviceUsecase *usecases.ServiceUsecase) *ServiceHandler {
	return &ServiceHandler{serviceUsecase: serviceUsecase}
}

// List returns active services
// GET /api/services?professionalId=
func (h *ServiceHandler) List(c *gin.Context) {
	professionalID, ok := uuidQuery(c, "professionalId")
	if !ok {
		return
	}

	services, err := h.serviceUsecase.List(c.Request.Context(), professionalID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, services)
}

// Create lists a new service
// POST /api/services
func (h *ServiceHandler) Create(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var input entities.CreateServiceInput
	if !bindJSON(c, &input) {
		return
	}

	service, err := h.serviceUsecase.Create(c.Request.Context(), p, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, service)
}

// Quote returns the fee breakdown for booking the service
// GET /api/services/:id/quote
func (h *ServiceHandler) Quote(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	quote, err := h.serviceUsecase.Quote(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, quote)
}
