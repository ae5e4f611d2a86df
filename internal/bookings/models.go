package bookings

import (
	"time"

	"github.com/google/uuid"
)

// CreateBookingRequest opens a new booking against a guide or vehicle service
type CreateBookingRequest struct {
	ServiceType  string    `json:"service_type" binding:"required,service_type"`
	ServiceID    uuid.UUID `json:"service_id" binding:"required"`
	StartTime    time.Time `json:"start_time" binding:"required"`
	EndTime      time.Time `json:"end_time" binding:"required"`
	PartySize    int       `json:"party_size" binding:"required"`
	ContactName  string    `json:"contact_name" binding:"required,max=100"`
	ContactEmail string    `json:"contact_email" binding:"required,email"`
	ContactPhone string    `json:"contact_phone" binding:"required,phone"`
	Notes        string    `json:"notes" binding:"max=1000"`
	TotalPrice   float64   `json:"total_price" binding:"required,gt=0"`
}

// UpdateStatusRequest moves a booking through its lifecycle
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,booking_status"`
}

// ServiceSummary is the slice of a guide or vehicle profile the booking
// workflow needs: who provides it and whether it is currently bookable.
type ServiceSummary struct {
	ProviderID  uuid.UUID
	IsAvailable bool
}
