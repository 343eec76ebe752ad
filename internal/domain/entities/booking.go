package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// BookingStatus represents the consultation lifecycle
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCompleted, BookingCancelled},
}

// Valid reports whether s is a known booking status.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether s may move to next. Staying put is allowed.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// PaymentStatus of a booking; independent of BookingStatus
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending: {PaymentPaid, PaymentRefunded},
	PaymentPaid:    {PaymentRefunded},
}

// Valid reports whether s is a known payment status.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentRefunded:
		return true
	}
	return false
}

// CanTransitionTo reports whether s may move to next. Staying put is allowed.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range paymentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Booking is a scheduled paid consultation. TotalAmount is in paise and
// never changes after creation.
type Booking struct {
	ID             uuid.UUID     `json:"id"`
	BusinessID     uuid.UUID     `json:"businessId"`
	ProfessionalID uuid.UUID     `json:"professionalId"`
	ServiceID      uuid.UUID     `json:"serviceId"`
	ScheduledAt    time.Time     `json:"scheduledAt"`
	Status         BookingStatus `json:"status"`
	TotalAmount    int64         `json:"totalAmount"`
	PaymentStatus  PaymentStatus `json:"paymentStatus"`
	Notes          null.String   `json:"notes"`
	CreatedAt      time.Time     `json:"createdAt"`
}

// BookingState is the pair of statuses a guarded update is conditioned on.
type BookingState struct {
	Status        BookingStatus
	PaymentStatus PaymentStatus
}

// State returns b's current statuses.
func (b *Booking) State() BookingState {
	return BookingState{Status: b.Status, PaymentStatus: b.PaymentStatus}
}

// BookingPatch holds the mutable booking fields. Nil means unchanged.
type BookingPatch struct {
	Status        *BookingStatus
	PaymentStatus *PaymentStatus
	ScheduledAt   *time.Time
	Notes         *string
}

// IsEmpty reports whether the patch changes nothing.
func (p BookingPatch) IsEmpty() bool {
	return p.Status == nil && p.PaymentStatus == nil && p.ScheduledAt == nil && p.Notes == nil
}

// Apply merges the patch onto b.
func (b *Booking) Apply(p BookingPatch) {
	if p.Status != nil {
		b.Status = *p.Status
	}
	if p.PaymentStatus != nil {
		b.PaymentStatus = *p.PaymentStatus
	}
	if p.ScheduledAt != nil {
		b.ScheduledAt = *p.ScheduledAt
	}
	if p.Notes != nil {
		b.Notes = null.StringFrom(*p.Notes)
	}
}

// CreateBookingInput represents input for creating a booking. TotalAmount
// is computed by the client (see QuoteBooking) and stored as submitted.
type CreateBookingInput struct {
	BusinessID     uuid.UUID `json:"businessId"`
	ProfessionalID uuid.UUID `json:"professionalId" binding:"required"`
	ServiceID      uuid.UUID `json:"serviceId" binding:"required"`
	ScheduledAt    time.Time `json:"scheduledAt" binding:"required"`
	TotalAmount    *int64    `json:"totalAmount" binding:"required,min=0"`
	Notes          *string   `json:"notes" binding:"omitempty,max=2000"`
}

// UpdateBookingInput is the partial update body. Enums arrive as raw
// strings so unknown values can be reported distinctly from bad JSON.
type UpdateBookingInput struct {
	Status        *string    `json:"status"`
	PaymentStatus *string    `json:"paymentStatus"`
	ScheduledAt   *time.Time `json:"scheduledAt"`
	Notes         *string    `json:"notes" binding:"omitempty,max=2000"`
}

// BusinessBookingResponse is a booking as seen by the business that placed it.
type BusinessBookingResponse struct {
	*Booking
	Service      *Service              `json:"service"`
	Professional *ProfessionalResponse `json:"professional"`
}

// ProfessionalBookingResponse is a booking as seen by the professional.
type ProfessionalBookingResponse struct {
	*Booking
	Service      *Service     `json:"service"`
	BusinessUser *UserSummary `json:"businessUser"`
}
