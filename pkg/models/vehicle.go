package models

import (
	"time"

	"github.com/google/uuid"
)

// VehicleType represents the kind of vehicle on offer
type VehicleType string

const (
	VehicleTypeCar    VehicleType = "car"
	VehicleTypeVan    VehicleType = "van"
	VehicleTypeTukTuk VehicleType = "tuktuk"
	VehicleTypeBus    VehicleType = "bus"
	VehicleTypeSUV    VehicleType = "suv"
)

// Valid reports whether the vehicle type is one of the supported kinds
func (t VehicleType) Valid() bool {
	switch t {
	case VehicleTypeCar, VehicleTypeVan, VehicleTypeTukTuk, VehicleTypeBus, VehicleTypeSUV:
		return true
	}
	return false
}

// VehicleAmenities lists the supported amenity tags
var VehicleAmenities = []string{
	"ac", "wifi", "charging-ports", "english-speaking-driver", "child-seats", "cooler",
}

// Vehicle represents a vehicle-service profile. The rating and total_reviews
// fields are derived; only the review aggregate recompute may write them.
type Vehicle struct {
	ID           uuid.UUID   `json:"id" db:"id"`
	UserID       uuid.UUID   `json:"user_id" db:"user_id"`
	VehicleType  VehicleType `json:"vehicle_type" db:"vehicle_type"`
	VehicleModel string      `json:"vehicle_model" db:"vehicle_model"`
	VehicleYear  int         `json:"vehicle_year" db:"vehicle_year"`
	LicensePlate string      `json:"license_plate" db:"license_plate"`
	Capacity     int         `json:"capacity" db:"capacity"`
	Amenities    []string    `json:"amenities" db:"amenities"`
	HourlyRate   float64     `json:"hourly_rate" db:"hourly_rate"`
	DailyRate    float64     `json:"daily_rate" db:"daily_rate"`
	DriverName   string      `json:"driver_name" db:"driver_name"`
	DriverPhone  string      `json:"driver_phone" db:"driver_phone"`
	Locations    []string    `json:"locations" db:"locations"`
	IsVerified   bool        `json:"is_verified" db:"is_verified"`
	IsAvailable  bool        `json:"is_available" db:"is_available"`
	Rating       float64     `json:"rating" db:"rating"`
	TotalReviews int         `json:"total_reviews" db:"total_reviews"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" db:"updated_at"`
}
