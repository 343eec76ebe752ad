package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"complianceconnect.backend/internal/domain/entities"
	"complianceconnect.backend/internal/infrastructure/models"
	"complianceconnect.backend/pkg/utils"
)

// MessageRepository implements message operations
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create creates a new message
func (r *MessageRepository) Create(ctx context.Context, msg *entities.Message) error {
	if msg.ID == uuid.Nil {
		msg.ID = utils.GenerateUUIDv7()
	}
	if msg.SentAt.IsZero() {
		msg.SentAt = time.Now().UTC()
	}
	msg.SentAt = msg.SentAt.UTC()

	m := &models.Message{
		ID:        msg.ID,
		BookingID: msg.BookingID,
		SenderID:  msg.SenderID,
		Content:   msg.Content,
		SentAt:    msg.SentAt,
	}
	return translate(GetDB(ctx, r.db).Create(m).Error)
}

// GetByID gets a message by ID
func (r *MessageRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Message, error) {
	var m models.Message
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return r.toEntity(&m), nil
}

// ListByBooking lists a booking's conversation, oldest first
func (r *MessageRepository) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*entities.Message, error) {
	var rows []models.Message
	if err := GetDB(ctx, r.db).Where("booking_id = ?", bookingID).Order("sent_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*entities.Message, 0, len(rows))
	for i := range rows {
		out = append(out, r.toEntity(&rows[i]))
	}
	return out, nil
}

func (r *MessageRepository) toEntity(m *models.Message) *entities.Message {
	return &entities.Message{
		ID:        m.ID,
		BookingID: m.BookingID,
		SenderID:  m.SenderID,
		Content:   m.Content,
		SentAt:    m.SentAt,
	}
}
