package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"complianceconnect.backend/internal/domain/entities"
	"complianceconnect.backend/internal/infrastructure/models"
	"complianceconnect.backend/pkg/utils"
)

// ServiceRepository implements service operations
type ServiceRepository struct {
	db *gorm.DB
}

// NewServiceRepository creates a new service repository
func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

// Create creates a new, always active, service
func (r *ServiceRepository) Create(ctx context.Context, svc *entities.Service) error {
	if svc.ID == uuid.Nil {
		svc.ID = utils.GenerateUUIDv7()
	}
	svc.IsActive = true

	m := &models.Service{
		ID:             svc.ID,
		ProfessionalID: svc.ProfessionalID,
		Title:          svc.Title,
		Description:    svc.Description,
		Category:       svc.Category,
		Price:          svc.Price,
		Duration:       svc.Duration.Ptr(),
		IsActive:       svc.IsActive,
	}
	return translate(GetDB(ctx, r.db).Create(m).Error)
}

// GetByID gets a service by ID regardless of its active flag
func (r *ServiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Service, error) {
	var m models.Service
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return r.toEntity(&m), nil
}

// ListByProfessional lists a professional's active services
func (r *ServiceRepository) ListByProfessional(ctx context.Context, professionalID uuid.UUID) ([]*entities.Service, error) {
	return r.list(GetDB(ctx, r.db).Where("professional_id = ?", professionalID))
}

// List lists every active service
func (r *ServiceRepository) List(ctx context.Context) ([]*entities.Service, error) {
	return r.list(GetDB(ctx, r.db))
}

func (r *ServiceRepository) list(query *gorm.DB) ([]*entities.Service, error) {
	var rows []models.Service
	if err := query.Where("is_active = ?", true).Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*entities.Service, 0, len(rows))
	for i := range rows {
		out = append(out, r.toEntity(&rows[i]))
	}
	return out, nil
}

func (r *ServiceRepository) toEntity(m *models.Service) *entities.Service {
	return &entities.Service{
		ID:             m.ID,
		ProfessionalID: m.ProfessionalID,
		Title:          m.Title,
		Description:    m.Description,
		Category:       m.Category,
		Price:          m.Price,
		Duration:       null.IntFromPtr(m.Duration),
		IsActive:       m.IsActive,
	}
}
