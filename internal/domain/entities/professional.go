package entities

import (
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Qualification of a professional
type Qualification string

const (
	QualificationCA Qualification = "CA"
	QualificationCS Qualification = "CS"
)

// KYCStatus represents KYC verification status
type KYCStatus string

const (
	KYCPending  KYCStatus = "pending"
	KYCApproved KYCStatus = "approved"
	KYCRejected KYCStatus = "rejected"
)

// Valid reports whether s is a known KYC status.
func (s KYCStatus) Valid() bool {
	switch s {
	case KYCPending, KYCApproved, KYCRejected:
		return true
	}
	return false
}

// KYCDocuments references uploaded identity and credential documents
type KYCDocuments struct {
	PAN         string `json:"pan,omitempty"`
	Aadhaar     string `json:"aadhaar,omitempty"`
	Certificate string `json:"certificate,omitempty"`
}

// Availability maps a lowercase weekday to its "HH:MM" slots
type Availability map[string][]string

// Professional represents a certified professional's marketplace profile
type Professional struct {
	ID                 uuid.UUID     `json:"id"`
	UserID             uuid.UUID     `json:"userId"`
	RegistrationNumber string        `json:"registrationNumber"`
	Qualification      Qualification `json:"qualification"`
	Specializations    []string      `json:"specializations"`
	Experience         null.Int      `json:"experience"`
	City               null.String   `json:"city"`
	Bio                null.String   `json:"bio"`
	HourlyRate         null.Int      `json:"hourlyRate"`
	Rating             int           `json:"rating"`
	TotalReviews       int           `json:"totalReviews"`
	KYCStatus          KYCStatus     `json:"kycStatus"`
	KYCDocuments       *KYCDocuments `json:"kycDocuments"`
	Availability       Availability  `json:"availability"`
}

// HasSpecialization is an exact, case-sensitive membership test.
func (p *Professional) HasSpecialization(s string) bool {
	for _, spec := range p.Specializations {
		if spec == s {
			return true
		}
	}
	return false
}

// ProfessionalPatch holds the mutable profile fields. Nil means unchanged.
type ProfessionalPatch struct {
	Specializations *[]string
	City            *string
	Bio             *string
	HourlyRate      *int
	Rating          *int
	TotalReviews    *int
	KYCStatus       *KYCStatus
	KYCDocuments    *KYCDocuments
	Availability    *Availability
}

// Apply merges the patch onto p.
func (p *Professional) Apply(patch ProfessionalPatch) {
	if patch.Specializations != nil {
		p.Specializations = append([]string(nil), (*patch.Specializations)...)
	}
	if patch.City != nil {
		p.City = null.StringFrom(*patch.City)
	}
	if patch.Bio != nil {
		p.Bio = null.StringFrom(*patch.Bio)
	}
	if patch.HourlyRate != nil {
		p.HourlyRate = null.IntFrom(*patch.HourlyRate)
	}
	if patch.Rating != nil {
		p.Rating = *patch.Rating
	}
	if patch.TotalReviews != nil {
		p.TotalReviews = *patch.TotalReviews
	}
	if patch.KYCStatus != nil {
		p.KYCStatus = *patch.KYCStatus
	}
	if patch.KYCDocuments != nil {
		docs := *patch.KYCDocuments
		p.KYCDocuments = &docs
	}
	if patch.Availability != nil {
		p.Availability = patch.Availability.Clone()
	}
}

// Clone deep-copies the availability map.
func (a Availability) Clone() Availability {
	if a == nil {
		return nil
	}
	out := make(Availability, len(a))
	for day, slots := range a {
		out[day] = append([]string(nil), slots...)
	}
	return out
}

// Clone returns a deep copy so stores never hand out shared slices or maps.
func (p *Professional) Clone() *Professional {
	if p == nil {
		return nil
	}
	c := *p
	c.Specializations = append([]string(nil), p.Specializations...)
	c.Availability = p.Availability.Clone()
	if p.KYCDocuments != nil {
		docs := *p.KYCDocuments
		c.KYCDocuments = &docs
	}
	return &c
}

// ProfessionalFilter narrows professional listings. Zero fields are ignored.
type ProfessionalFilter struct {
	Specialization string
	City           string
	UserID         uuid.UUID
}

// Matches applies every set criterion: specialization membership, exact
// city equality and owner id.
func (f ProfessionalFilter) Matches(p *Professional) bool {
	if f.Specialization != "" && !p.HasSpecialization(f.Specialization) {
		return false
	}
	if f.City != "" && (!p.City.Valid || p.City.String != f.City) {
		return false
	}
	if f.UserID != uuid.Nil && p.UserID != f.UserID {
		return false
	}
	return true
}

// CreateProfessionalInput represents input for creating a professional profile
type CreateProfessionalInput struct {
	UserID             uuid.UUID     `json:"userId"`
	RegistrationNumber string        `json:"registrationNumber" binding:"required,min=1,max=50"`
	Qualification      Qualification `json:"qualification" binding:"required,oneof=CA CS"`
	Specializations    []string      `json:"specializations" binding:"omitempty,max=20,dive,required,max=100"`
	Experience         *int          `json:"experience" binding:"omitempty,min=0,max=80"`
	City               *string       `json:"city" binding:"omitempty,max=100"`
	Bio                *string       `json:"bio" binding:"omitempty,max=2000"`
	HourlyRate         *int          `json:"hourlyRate" binding:"omitempty,min=0"`
	KYCDocuments       *KYCDocuments `json:"kycDocuments"`
	Availability       Availability  `json:"availability" binding:"omitempty,dive,keys,weekday,endkeys,dive,hhmm"`
}

// UpdateKYCInput is the admin KYC decision
type UpdateKYCInput struct {
	Status    KYCStatus     `json:"status" binding:"required,oneof=pending approved rejected"`
	Documents *KYCDocuments `json:"documents"`
}

// ProfessionalResponse is a profile with its owner's public fields attached.
type ProfessionalResponse struct {
	*Professional
	User *UserSummary `json:"user"`
}
