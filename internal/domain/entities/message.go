package entities

import (
	"time"

	"github.com/google/uuid"
)

// Message is a chat line inside a booking's conversation
type Message struct {
	ID        uuid.UUID `json:"id"`
	BookingID uuid.UUID `json:"bookingId"`
	SenderID  uuid.UUID `json:"senderId"`
	Content   string    `json:"content"`
	SentAt    time.Time `json:"sentAt"`
}

// CreateMessageInput represents input for sending a message. SenderID
// defaults to the authenticated user.
type CreateMessageInput struct {
	BookingID uuid.UUID `json:"bookingId" binding:"required"`
	SenderID  uuid.UUID `json:"senderId"`
	Content   string    `json:"content" binding:"required,min=1,max=5000"`
}

// MessageResponse attaches the sender's {id, name}.
type MessageResponse struct {
	*Message
	Sender *UserSummary `json:"sender"`
}
