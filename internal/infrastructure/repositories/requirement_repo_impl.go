package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"complianceconnect.backend/internal/domain/entities"
	"complianceconnect.backend/internal/infrastructure/models"
	"complianceconnect.backend/pkg/utils"
)

// RequirementRepository implements requirement operations
type RequirementRepository struct {
	db *gorm.DB
}

// NewRequirementRepository creates a new requirement repository
func NewRequirementRepository(db *gorm.DB) *RequirementRepository {
	return &RequirementRepository{db: db}
}

// Create creates a new requirement
func (r *RequirementRepository) Create(ctx context.Context, req *entities.Requirement) error {
	if req.ID == uuid.Nil {
		req.ID = utils.GenerateUUIDv7()
	}
	if req.Status == "" {
		req.Status = entities.RequirementOpen
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now().UTC()
	}

	m := &models.Requirement{
		ID:          req.ID,
		BusinessID:  req.BusinessID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Urgency:     req.Urgency.Ptr(),
		Budget:      req.Budget.Ptr(),
		Status:      string(req.Status),
		CreatedAt:   req.CreatedAt,
	}
	return translate(GetDB(ctx, r.db).Create(m).Error)
}

// GetByID gets a requirement by ID
func (r *RequirementRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Requirement, error) {
	var m models.Requirement
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return r.toEntity(&m), nil
}

// ListByBusiness lists a business's requirements, newest first
func (r *RequirementRepository) ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]*entities.Requirement, error) {
	return r.list(GetDB(ctx, r.db).Where("business_id = ?", businessID))
}

// List lists every requirement, newest first
func (r *RequirementRepository) List(ctx context.Context) ([]*entities.Requirement, error) {
	return r.list(GetDB(ctx, r.db))
}

func (r *RequirementRepository) list(query *gorm.DB) ([]*entities.Requirement, error) {
	var rows []models.Requirement
	if err := query.Order("created_at DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*entities.Requirement, 0, len(rows))
	for i := range rows {
		out = append(out, r.toEntity(&rows[i]))
	}
	return out, nil
}

func (r *RequirementRepository) toEntity(m *models.Requirement) *entities.Requirement {
	return &entities.Requirement{
		ID:          m.ID,
		BusinessID:  m.BusinessID,
		Title:       m.Title,
		Description: m.Description,
		Category:    m.Category,
		Urgency:     null.StringFromPtr(m.Urgency),
		Budget:      null.IntFromPtr(m.Budget),
		Status:      entities.RequirementStatus(m.Status),
		CreatedAt:   m.CreatedAt,
	}
}
