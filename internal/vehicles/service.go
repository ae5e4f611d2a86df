package vehicles

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lankago/tour-marketplace/internal/catalog"
	"github.com/lankago/tour-marketplace/pkg/common"
	"github.com/lankago/tour-marketplace/pkg/models"
	"github.com/lankago/tour-marketplace/pkg/validation"
)

// minVehicleYear matches the CHECK constraint on the vehicles table
const minVehicleYear = 1990

// Service handles vehicle profile business logic
type Service struct {
	repo RepositoryInterface
}

// NewService creates a new vehicles service
func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

// RegisterVehicle creates the vehicle profile for a user. A user may own at
// most one vehicle profile, and the license plate must be unique.
func (s *Service) RegisterVehicle(ctx context.Context, userID uuid.UUID, req *RegisterVehicleRequest) (*models.Vehicle, error) {
	vehicleType := models.VehicleType(strings.ToLower(strings.TrimSpace(req.VehicleType)))
	if !vehicleType.Valid() {
		return nil, common.NewValidationError("unsupported vehicle type")
	}
	if !validation.ValidatePhoneNumber(req.DriverPhone) {
		return nil, common.NewValidationError("invalid driver phone number")
	}
	if req.VehicleYear < minVehicleYear {
		return nil, common.NewValidationError("vehicle year must be 1990 or later")
	}
	for _, amenity := range req.Amenities {
		if !validAmenity(amenity) {
			return nil, common.NewValidationError("unsupported amenity: " + amenity)
		}
	}

	plate := strings.ToUpper(strings.TrimSpace(req.LicensePlate))

	existing, err := s.repo.GetVehicleByLicensePlate(ctx, plate)
	if err != nil && err != pgx.ErrNoRows {
		return nil, err
	}
	if existing != nil {
		return nil, common.NewConflictError("license plate already registered")
	}

	mine, err := s.repo.GetVehicleByUserID(ctx, userID)
	if err != nil && err != pgx.ErrNoRows {
		return nil, err
	}
	if mine != nil {
		return nil, common.NewConflictError("you already have a vehicle profile")
	}

	amenities := req.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	locations := req.Locations
	if locations == nil {
		locations = []string{}
	}

	now := time.Now()
	vehicle := &models.Vehicle{
		ID:           uuid.New(),
		UserID:       userID,
		VehicleType:  vehicleType,
		VehicleModel: req.VehicleModel,
		VehicleYear:  req.VehicleYear,
		LicensePlate: plate,
		Capacity:     req.Capacity,
		Amenities:    amenities,
		HourlyRate:   req.HourlyRate,
		DailyRate:    req.DailyRate,
		DriverName:   req.DriverName,
		DriverPhone:  req.DriverPhone,
		Locations:    locations,
		IsAvailable:  true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.CreateVehicle(ctx, vehicle); err != nil {
		return nil, common.NewInternalServerError("failed to create vehicle profile")
	}

	return vehicle, nil
}

// ListVehicles returns available vehicles matching the filter, with facet
// values derived from the full available listing.
func (s *Service) ListVehicles(ctx context.Context, filter catalog.VehicleFilter) (*ListVehiclesResult, error) {
	vehicles, err := s.repo.ListAvailableVehicles(ctx)
	if err != nil {
		return nil, common.NewInternalServerError("failed to list vehicles")
	}
	if vehicles == nil {
		vehicles = []models.Vehicle{}
	}

	return &ListVehiclesResult{
		Vehicles: catalog.FilterVehicles(vehicles, filter),
		Facets:   catalog.VehicleFacetValues(vehicles),
	}, nil
}

// GetVehicle retrieves a vehicle by ID
func (s *Service) GetVehicle(ctx context.Context, id uuid.UUID) (*models.Vehicle, error) {
	vehicle, err := s.repo.GetVehicleByID(ctx, id)
	if err != nil {
		return nil, common.NewNotFoundError("vehicle not found", nil)
	}
	return vehicle, nil
}

// GetMyProfile retrieves the vehicle profile owned by the user
func (s *Service) GetMyProfile(ctx context.Context, userID uuid.UUID) (*models.Vehicle, error) {
	vehicle, err := s.repo.GetVehicleByUserID(ctx, userID)
	if err != nil {
		return nil, common.NewNotFoundError("no vehicle profile found", nil)
	}
	return vehicle, nil
}

// SetAvailability toggles whether the vehicle appears in the public listing
func (s *Service) SetAvailability(ctx context.Context, userID uuid.UUID, available bool) (*models.Vehicle, error) {
	vehicle, err := s.repo.GetVehicleByUserID(ctx, userID)
	if err != nil {
		return nil, common.NewNotFoundError("no vehicle profile found", nil)
	}

	if err := s.repo.SetAvailability(ctx, vehicle.ID, available); err != nil {
		return nil, common.NewInternalServerError("failed to update availability")
	}

	vehicle.IsAvailable = available
	return vehicle, nil
}

func validAmenity(amenity string) bool {
	for _, a := range models.VehicleAmenities {
		if a == amenity {
			return true
		}
	}
	return false
}
