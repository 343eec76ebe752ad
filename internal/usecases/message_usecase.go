package usecases

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"complianceconnect.backend/internal/domain/entities"
	domainerrors "complianceconnect.backend/internal/domain/errors"
	"complianceconnect.backend/internal/domain/repositories"
	"complianceconnect.backend/pkg/cache"
	"complianceconnect.backend/pkg/logger"
)

// MessageUsecase handles booking conversations. Conversation reads are
// cached for ttl under a per-booking version that every send bumps, so a
// snapshot filled by a read that raced a send is never served again.
type MessageUsecase struct {
	messageRepo repositories.MessageRepository
	bookingRepo repositories.BookingRepository
	userRepo    repositories.UserRepository
	cache       cache.Cache
	ttl         time.Duration
}

// NewMessageUsecase creates a new message usecase
func NewMessageUsecase(storage repositories.Storage, c cache.Cache, ttl time.Duration) *MessageUsecase {
	return &MessageUsecase{
		messageRepo: storage.Messages(),
		bookingRepo: storage.Bookings(),
		userRepo:    storage.Users(),
		cache:       c,
		ttl:         ttl,
	}
}

func conversationVersionKey(bookingID uuid.UUID) string {
	return "messages:booking:" + bookingID.String() + ":version"
}

func conversationKey(bookingID uuid.UUID, version int64) string {
	return fmt.Sprintf("messages:booking:%s:v%d", bookingID, version)
}

// Send posts a message into a booking's conversation as the caller
func (u *MessageUsecase) Send(ctx context.Context, caller entities.Principal, input *entities.CreateMessageInput) (*entities.MessageResponse, error) {
	senderID := input.SenderID
	if senderID == uuid.Nil {
		senderID = caller.UserID
	}
	if senderID != caller.UserID {
		return nil, domainerrors.Forbidden("cannot send messages as another user")
	}

	if _, err := u.bookingRepo.GetByID(ctx, input.BookingID); err != nil {
		return nil, notFound(err, "Booking")
	}

	msg := &entities.Message{
		BookingID: input.BookingID,
		SenderID:  senderID,
		Content:   input.Content,
	}
	if err := u.messageRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}

	if _, err := u.cache.Incr(ctx, conversationVersionKey(input.BookingID), 1); err != nil {
		logger.Warn(ctx, "Failed to invalidate conversation cache", zap.String("booking_id", input.BookingID.String()), zap.Error(err))
	}

	sender, err := newLookup(u.userRepo, nil, nil).user(ctx, senderID)
	if err != nil {
		return nil, err
	}
	return &entities.MessageResponse{Message: msg, Sender: sender.Summary()}, nil
}

// ListByBooking returns the conversation oldest first, each message with
// its sender's {id, name}. An unknown booking has an empty conversation.
func (u *MessageUsecase) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*entities.MessageResponse, error) {
	// The version is read before the repository so a send that lands in
	// between bumps it past the key this read fills.
	key := ""
	if version, err := u.cache.Incr(ctx, conversationVersionKey(bookingID), 0); err == nil {
		key = conversationKey(bookingID, version)
	} else {
		logger.Warn(ctx, "Conversation cache version read failed", zap.String("booking_id", bookingID.String()), zap.Error(err))
	}

	if key != "" {
		if out, ok := u.cached(ctx, key); ok {
			return out, nil
		}
	}

	messages, err := u.messageRepo.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	l := newLookup(u.userRepo, nil, nil)
	out := make([]*entities.MessageResponse, 0, len(messages))
	for _, m := range messages {
		sender, err := l.user(ctx, m.SenderID)
		if err != nil {
			return nil, err
		}
		out = append(out, &entities.MessageResponse{Message: m, Sender: sender.Summary()})
	}

	if key == "" {
		return out, nil
	}
	if payload, err := json.Marshal(out); err == nil {
		if err := u.cache.Set(ctx, key, string(payload), u.ttl); err != nil {
			logger.Warn(ctx, "Conversation cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return out, nil
}

func (u *MessageUsecase) cached(ctx context.Context, key string) ([]*entities.MessageResponse, bool) {
	raw, err := u.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			logger.Warn(ctx, "Conversation cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	var out []*entities.MessageResponse
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		logger.Warn(ctx, "Discarding corrupt conversation cache entry", zap.String("key", key))
		return nil, false
	}
	return out, true
}
