package repositories

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"complianceconnect.backend/internal/domain/entities"
	"complianceconnect.backend/internal/infrastructure/models"
	"complianceconnect.backend/pkg/utils"
)

// ProfessionalRepository implements professional profile operations
type ProfessionalRepository struct {
	db *gorm.DB
}

// NewProfessionalRepository creates a new professional repository
func NewProfessionalRepository(db *gorm.DB) *ProfessionalRepository {
	return &ProfessionalRepository{db: db}
}

// Create creates a new professional profile
func (r *ProfessionalRepository) Create(ctx context.Context, p *entities.Professional) error {
	if p.ID == uuid.Nil {
		p.ID = utils.GenerateUUIDv7()
	}
	if p.KYCStatus == "" {
		p.KYCStatus = entities.KYCPending
	}
	if p.Specializations == nil {
		p.Specializations = []string{}
	}
	return translate(GetDB(ctx, r.db).Create(r.toModel(p)).Error)
}

// GetByID gets a professional by ID
func (r *ProfessionalRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Professional, error) {
	var m models.Professional
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return r.toEntity(&m), nil
}

// GetByUserID gets the profile owned by a user
func (r *ProfessionalRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Professional, error) {
	var m models.Professional
	if err := GetDB(ctx, r.db).Where("user_id = ?", userID).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return r.toEntity(&m), nil
}

// Update applies patch and returns the stored profile
func (r *ProfessionalRepository) Update(ctx context.Context, id uuid.UUID, patch entities.ProfessionalPatch) (*entities.Professional, error) {
	var out *entities.Professional
	err := GetDB(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		var m models.Professional
		if err := tx.Where("id = ?", id).First(&m).Error; err != nil {
			return err
		}
		p := r.toEntity(&m)
		p.Apply(patch)

		updated := r.toModel(p)
		updated.CreatedAt = m.CreatedAt
		if err := tx.Save(updated).Error; err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

// List returns profiles matching filter in creation order
func (r *ProfessionalRepository) List(ctx context.Context, filter entities.ProfessionalFilter) ([]*entities.Professional, error) {
	query := GetDB(ctx, r.db).Order("created_at ASC, id ASC")

	if filter.Specialization != "" {
		query = query.Where("specializations LIKE ? ESCAPE '\\'", specializationPattern(filter.Specialization))
	}
	if filter.City != "" {
		query = query.Where("city = ?", filter.City)
	}
	if filter.UserID != uuid.Nil {
		query = query.Where("user_id = ?", filter.UserID)
	}

	var rows []models.Professional
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	// LIKE narrows on the JSON text; membership is decided here.
	out := make([]*entities.Professional, 0, len(rows))
	for i := range rows {
		p := r.toEntity(&rows[i])
		if filter.Matches(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

// ListBySpecialization returns profiles listing specialization exactly
func (r *ProfessionalRepository) ListBySpecialization(ctx context.Context, specialization string) ([]*entities.Professional, error) {
	return r.List(ctx, entities.ProfessionalFilter{Specialization: specialization})
}

// specializationPattern matches the JSON-quoted element inside the stored array.
func specializationPattern(s string) string {
	quoted, _ := json.Marshal(s)
	escaper := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + escaper.Replace(string(quoted)) + "%"
}

func (r *ProfessionalRepository) toModel(p *entities.Professional) *models.Professional {
	return &models.Professional{
		ID:                 p.ID,
		UserID:             p.UserID,
		RegistrationNumber: p.RegistrationNumber,
		Qualification:      string(p.Qualification),
		Specializations:    append([]string{}, p.Specializations...),
		Experience:         p.Experience.Ptr(),
		City:               p.City.Ptr(),
		Bio:                p.Bio.Ptr(),
		HourlyRate:         p.HourlyRate.Ptr(),
		Rating:             p.Rating,
		TotalReviews:       p.TotalReviews,
		KYCStatus:          string(p.KYCStatus),
		KYCDocuments:       p.KYCDocuments,
		Availability:       p.Availability,
	}
}

func (r *ProfessionalRepository) toEntity(m *models.Professional) *entities.Professional {
	specs := m.Specializations
	if specs == nil {
		specs = []string{}
	}
	return &entities.Professional{
		ID:                 m.ID,
		UserID:             m.UserID,
		RegistrationNumber: m.RegistrationNumber,
		Qualification:      entities.Qualification(m.Qualification),
		Specializations:    specs,
		Experience:         null.IntFromPtr(m.Experience),
		City:               null.StringFromPtr(m.City),
		Bio:                null.StringFromPtr(m.Bio),
		HourlyRate:         null.IntFromPtr(m.HourlyRate),
		Rating:             m.Rating,
		TotalReviews:       m.TotalReviews,
		KYCStatus:          entities.KYCStatus(m.KYCStatus),
		KYCDocuments:       m.KYCDocuments,
		Availability:       m.Availability,
	}
}
