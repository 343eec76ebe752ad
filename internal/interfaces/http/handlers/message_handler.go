package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"complianceconnect.backend/internal/domain/entities"
	"complianceconnect.backend/internal/interfaces/http/response"
	"complianceconnect.backend/internal/usecases"
)

// MessageHandler handles booking conversation endpoints
type MessageHandler struct {
	messageUsecase *usecases.MessageUsecase
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(messageUsecase *usecases.MessageUsecase) *MessageHandler {
	return &MessageHandler{messageUsecase: messageUsecase}
}

// Send posts a message on a booking
// POST /api/messages
func (h *MessageHandler) Send(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var input entities.CreateMessageInput
	if !bindJSON(c, &input) {
		return
	}

	msg, err := h.messageUsecase.Send(c.Request.Context(), p, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, msg)
}

// ListByBooking returns the conversation, oldest first
// GET /api/messages/booking/:bookingId
func (h *MessageHandler) ListByBooking(c *gin.Context) {
	bookingID, ok := uuidParam(c, "bookingId")
	if !ok {
		return
	}

	msgs, err := h.messageUsecase.ListByBooking(c.Request.Context(), bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, msgs)
}
