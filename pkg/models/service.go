package models

import "github.com/google/uuid"

// ServiceType distinguishes the two bookable target kinds
type ServiceType string

const (
	ServiceTypeGuide   ServiceType = "guide"
	ServiceTypeVehicle ServiceType = "vehicle"
)

// Valid reports whether the service type is one of the known kinds
func (t ServiceType) Valid() bool {
	return t == ServiceTypeGuide || t == ServiceTypeVehicle
}

// ServiceRef points at a bookable target (a guide or a vehicle profile)
type ServiceRef struct {
	Type ServiceType `json:"type"`
	ID   uuid.UUID   `json:"id"`
}
