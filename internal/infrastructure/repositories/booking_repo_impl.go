package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"complianceconnect.backend/internal/domain/entities"
	domainerrors "complianceconnect.backend/internal/domain/errors"
	"complianceconnect.backend/internal/infrastructure/models"
	"complianceconnect.backend/pkg/utils"
)

// BookingRepository implements booking operations
type BookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create creates a new booking
func (r *BookingRepository) Create(ctx context.Context, b *entities.Booking) error {
	if b.ID == uuid.Nil {
		b.ID = utils.GenerateUUIDv7()
	}
	if b.Status == "" {
		b.Status = entities.BookingPending
	}
	if b.PaymentStatus == "" {
		b.PaymentStatus = entities.PaymentPending
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	b.ScheduledAt = b.ScheduledAt.UTC()

	return translate(GetDB(ctx, r.db).Create(r.toModel(b)).Error)
}

// GetByID gets a booking by ID
func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Booking, error) {
	var m models.Booking
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return r.toEntity(&m), nil
}

// ListByBusiness lists a business's bookings, newest first
func (r *BookingRepository) ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]*entities.Booking, error) {
	return r.list(GetDB(ctx, r.db).Where("business_id = ?", businessID).Order("created_at DESC, id DESC"))
}

// ListByProfessional lists a professional's bookings, newest first
func (r *BookingRepository) ListByProfessional(ctx context.Context, professionalID uuid.UUID) ([]*entities.Booking, error) {
	return r.list(GetDB(ctx, r.db).Where("professional_id = ?", professionalID).Order("created_at DESC, id DESC"))
}

// Update applies patch and returns the stored booking. TotalAmount is never written.
func (r *BookingRepository) Update(ctx context.Context, id uuid.UUID, patch entities.BookingPatch) (*entities.Booking, error) {
	var out *entities.Booking
	err := GetDB(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		var m models.Booking
		if err := tx.Where("id = ?", id).First(&m).Error; err != nil {
			return err
		}
		b := r.toEntity(&m)
		b.Apply(patch)
		b.ScheduledAt = b.ScheduledAt.UTC()

		updates := map[string]interface{}{
			"status":         string(b.Status),
			"payment_status": string(b.PaymentStatus),
			"scheduled_at":   b.ScheduledAt,
			"notes":          b.Notes.Ptr(),
			"updated_at":     time.Now().UTC(),
		}
		if err := tx.Model(&models.Booking{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		out = b
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

// UpdateFrom writes patch with a compare-and-set on both statuses, so two
// writers that read the same state cannot both succeed.
func (r *BookingRepository) UpdateFrom(ctx context.Context, id uuid.UUID, expected entities.BookingState, patch entities.BookingPatch) (*entities.Booking, error) {
	updates := map[string]interface{}{"updated_at": time.Now().UTC()}
	if patch.Status != nil {
		updates["status"] = string(*patch.Status)
	}
	if patch.PaymentStatus != nil {
		updates["payment_status"] = string(*patch.PaymentStatus)
	}
	if patch.ScheduledAt != nil {
		updates["scheduled_at"] = patch.ScheduledAt.UTC()
	}
	if patch.Notes != nil {
		updates["notes"] = *patch.Notes
	}

	var out *entities.Booking
	err := GetDB(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Booking{}).
			Where("id = ? AND status = ? AND payment_status = ?", id, string(expected.Status), string(expected.PaymentStatus)).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}

		var m models.Booking
		if err := tx.Where("id = ?", id).First(&m).Error; err != nil {
			return err
		}
		if res.RowsAffected == 0 {
			return domainerrors.ErrInvalidTransition
		}
		out = r.toEntity(&m)
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

// ListPendingScheduledBefore returns up to limit pending bookings whose slot
// is before the cutoff, oldest slot first.
func (r *BookingRepository) ListPendingScheduledBefore(ctx context.Context, before time.Time, limit int) ([]*entities.Booking, error) {
	query := GetDB(ctx, r.db).
		Where("status = ? AND scheduled_at < ?", string(entities.BookingPending), before.UTC()).
		Order("scheduled_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	return r.list(query)
}

func (r *BookingRepository) list(query *gorm.DB) ([]*entities.Booking, error) {
	var rows []models.Booking
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*entities.Booking, 0, len(rows))
	for i := range rows {
		out = append(out, r.toEntity(&rows[i]))
	}
	return out, nil
}

func (r *BookingRepository) toModel(b *entities.Booking) *models.Booking {
	return &models.Booking{
		ID:             b.ID,
		BusinessID:     b.BusinessID,
		ProfessionalID: b.ProfessionalID,
		ServiceID:      b.ServiceID,
		ScheduledAt:    b.ScheduledAt,
		Status:         string(b.Status),
		TotalAmount:    b.TotalAmount,
		PaymentStatus:  string(b.PaymentStatus),
		Notes:          b.Notes.Ptr(),
		CreatedAt:      b.CreatedAt,
	}
}

func (r *BookingRepository) toEntity(m *models.Booking) *entities.Booking {
	return &entities.Booking{
		ID:             m.ID,
		BusinessID:     m.BusinessID,
		ProfessionalID: m.ProfessionalID,
		ServiceID:      m.ServiceID,
		ScheduledAt:    m.ScheduledAt,
		Status:         entities.BookingStatus(m.Status),
		TotalAmount:    m.TotalAmount,
		PaymentStatus:  entities.PaymentStatus(m.PaymentStatus),
		Notes:          null.StringFromPtr(m.Notes),
		CreatedAt:      m.CreatedAt,
	}
}
