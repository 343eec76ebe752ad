package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"complianceconnect.backend/internal/domain/entities"
	"complianceconnect.backend/internal/interfaces/http/response"
	"complianceconnect.backend/internal/usecases"
)

// BookingHandler handles booking endpoints
type BookingHandler struct {
	bookingUsecase *usecases.BookingUsecase
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingUsecase *usecases.BookingUsecase) *BookingHandler {
	return &BookingHandler{bookingUsecase: bookingUsecase}
}

// Create books a service
// POST /api/bookings
func (h *BookingHandler) Create(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var input entities.CreateBookingInput
	if !bindJSON(c, &input) {
		return
	}

	booking, err := h.bookingUsecase.Create(c.Request.Context(), p, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, booking)
}

// Get returns one booking
// GET /api/bookings/:id
func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	booking, err := h.bookingUsecase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, booking)
}

// ListByBusiness returns a business's bookings, newest first
// GET /api/bookings/business/:businessId
func (h *BookingHandler) ListByBusiness(c *gin.Context) {
	businessID, ok := uuidParam(c, "businessId")
	if !ok {
		return
	}

	bookings, err := h.bookingUsecase.ListByBusiness(c.Request.Context(), businessID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, bookings)
}

// ListByProfessional returns a professional's bookings, newest first
// GET /api/bookings/professional/:professionalId
func (h *BookingHandler) ListByProfessional(c *gin.Context) {
	professionalID, ok := uuidParam(c, "professionalId")
	if !ok {
		return
	}

	bookings, err := h.bookingUsecase.ListByProfessional(c.Request.Context(), professionalID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, bookings)
}

// Update patches status, payment status, schedule or notes
// PUT /api/bookings/:id
func (h *BookingHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var input entities.UpdateBookingInput
	if !bindJSON(c, &input) {
		return
	}

	booking, err := h.bookingUsecase.Update(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, booking)
}
