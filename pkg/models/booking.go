package models

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Valid reports whether the status is a known booking state
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed from this state
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

// CanTransitionTo reports whether the state machine permits the edge s -> next.
// Edges: pending -> {confirmed, cancelled}; confirmed -> {completed, cancelled}.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingStatusPending:
		return next == BookingStatusConfirmed || next == BookingStatusCancelled
	case BookingStatusConfirmed:
		return next == BookingStatusCompleted || next == BookingStatusCancelled
	}
	return false
}

// Booking links a tourist to a guide or vehicle service over a time window
type Booking struct {
	ID           uuid.UUID     `json:"id" db:"id"`
	TouristID    uuid.UUID     `json:"tourist_id" db:"tourist_id"`
	ServiceType  ServiceType   `json:"service_type" db:"service_type"`
	ServiceID    uuid.UUID     `json:"service_id" db:"service_id"`
	ProviderID   uuid.UUID     `json:"provider_id" db:"provider_id"`
	StartTime    time.Time     `json:"start_time" db:"start_time"`
	EndTime      time.Time     `json:"end_time" db:"end_time"`
	PartySize    int           `json:"party_size" db:"party_size"`
	ContactName  string        `json:"contact_name" db:"contact_name"`
	ContactEmail string        `json:"contact_email" db:"contact_email"`
	ContactPhone string        `json:"contact_phone" db:"contact_phone"`
	Notes        string        `json:"notes,omitempty" db:"notes"`
	TotalPrice   float64       `json:"total_price" db:"total_price"`
	Status       BookingStatus `json:"status" db:"status"`
	Reviewed     bool          `json:"reviewed" db:"reviewed"`
	ConfirmedAt  *time.Time    `json:"confirmed_at,omitempty" db:"confirmed_at"`
	CompletedAt  *time.Time    `json:"completed_at,omitempty" db:"completed_at"`
	CancelledAt  *time.Time    `json:"cancelled_at,omitempty" db:"cancelled_at"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at" db:"updated_at"`
}

// CanBeReviewed reports whether the one permitted review may still be filed
func (b *Booking) CanBeReviewed() bool {
	return b.Status == BookingStatusCompleted && !b.Reviewed
}

// CanBeCancelled reports whether either party may still cancel
func (b *Booking) CanBeCancelled() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}

// ReviewEligibility is a time-boxed grant recording that a tourist may file
// one review for a completed booking. Advisory only; authority remains
// "booking completed and no review exists".
type ReviewEligibility struct {
	ID              uuid.UUID   `json:"id" db:"id"`
	BookingID       uuid.UUID   `json:"booking_id" db:"booking_id"`
	TouristID       uuid.UUID   `json:"tourist_id" db:"tourist_id"`
	TargetType      ServiceType `json:"target_type" db:"target_type"`
	TargetID        uuid.UUID   `json:"target_id" db:"target_id"`
	ReviewSubmitted bool        `json:"review_submitted" db:"review_submitted"`
	ExpiresAt       time.Time   `json:"expires_at" db:"expires_at"`
	CreatedAt       time.Time   `json:"created_at" db:"created_at"`
}
