package vehicles

import (
	"github.com/lankago/tour-marketplace/internal/catalog"
	"github.com/lankago/tour-marketplace/pkg/models"
)

// RegisterVehicleRequest creates a vehicle profile for the authenticated user
type RegisterVehicleRequest struct {
	VehicleType  string   `json:"vehicle_type" binding:"required,vehicle_type"`
	VehicleModel string   `json:"vehicle_model" binding:"required,max=100"`
	VehicleYear  int      `json:"vehicle_year" binding:"required,min=1990"`
	LicensePlate string   `json:"license_plate" binding:"required,max=20"`
	Capacity     int      `json:"capacity" binding:"required,min=1,max=60"`
	Amenities    []string `json:"amenities"`
	HourlyRate   float64  `json:"hourly_rate" binding:"required,gt=0"`
	DailyRate    float64  `json:"daily_rate" binding:"required,gt=0"`
	DriverName   string   `json:"driver_name" binding:"required,max=100"`
	DriverPhone  string   `json:"driver_phone" binding:"required,phone"`
	Locations    []string `json:"locations"`
}

// SetAvailabilityRequest toggles the vehicle's listing visibility
type SetAvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" binding:"required"`
}

// ListVehiclesResult is the filtered listing plus facet values for filter UI
type ListVehiclesResult struct {
	Vehicles []models.Vehicle      `json:"vehicles"`
	Facets   catalog.VehicleFacets `json:"facets"`
}
