package vehicles

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lankago/tour-marketplace/pkg/database"
	"github.com/lankago/tour-marketplace/pkg/models"
)

// RepositoryInterface defines the vehicles data access contract
type RepositoryInterface interface {
	CreateVehicle(ctx context.Context, vehicle *models.Vehicle) error
	GetVehicleByID(ctx context.Context, id uuid.UUID) (*models.Vehicle, error)
	GetVehicleByUserID(ctx context.Context, userID uuid.UUID) (*models.Vehicle, error)
	GetVehicleByLicensePlate(ctx context.Context, plate string) (*models.Vehicle, error)
	ListAvailableVehicles(ctx context.Context) ([]models.Vehicle, error)
	SetAvailability(ctx context.Context, id uuid.UUID, available bool) error
}

// Repository handles vehicles data access
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new vehicles repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const vehicleColumns = `
	id, user_id, vehicle_type, vehicle_model, vehicle_year, license_plate,
	capacity, amenities, hourly_rate, daily_rate, driver_name, driver_phone,
	locations, is_verified, is_available, rating, total_reviews, created_at, updated_at`

func scanVehicle(row pgx.Row) (*models.Vehicle, error) {
	v := &models.Vehicle{}
	err := row.Scan(
		&v.ID, &v.UserID, &v.VehicleType, &v.VehicleModel, &v.VehicleYear,
		&v.LicensePlate, &v.Capacity, &v.Amenities, &v.HourlyRate, &v.DailyRate,
		&v.DriverName, &v.DriverPhone, &v.Locations, &v.IsVerified,
		&v.IsAvailable, &v.Rating, &v.TotalReviews, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// CreateVehicle persists the vehicle profile and promotes the owning user's
// role in the same transaction. The role flips from tourist exactly once.
func (r *Repository) CreateVehicle(ctx context.Context, vehicle *models.Vehicle) error {
	return database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO vehicles (
				id, user_id, vehicle_type, vehicle_model, vehicle_year, license_plate,
				capacity, amenities, hourly_rate, daily_rate, driver_name, driver_phone,
				locations, is_verified, is_available, rating, total_reviews, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`,
			vehicle.ID, vehicle.UserID, vehicle.VehicleType, vehicle.VehicleModel,
			vehicle.VehicleYear, vehicle.LicensePlate, vehicle.Capacity, vehicle.Amenities,
			vehicle.HourlyRate, vehicle.DailyRate, vehicle.DriverName, vehicle.DriverPhone,
			vehicle.Locations, vehicle.IsVerified, vehicle.IsAvailable,
			vehicle.Rating, vehicle.TotalReviews, vehicle.CreatedAt, vehicle.UpdatedAt,
		)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			UPDATE users SET role = $1, updated_at = NOW()
			WHERE id = $2 AND role = $3`,
			models.RoleVehicleOwner, vehicle.UserID, models.RoleTourist,
		)
		return err
	})
}

// GetVehicleByID retrieves a vehicle by ID
func (r *Repository) GetVehicleByID(ctx context.Context, id uuid.UUID) (*models.Vehicle, error) {
	return scanVehicle(r.db.QueryRow(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1`, id))
}

// GetVehicleByUserID retrieves the vehicle profile owned by a user
func (r *Repository) GetVehicleByUserID(ctx context.Context, userID uuid.UUID) (*models.Vehicle, error) {
	return scanVehicle(r.db.QueryRow(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles WHERE user_id = $1`, userID))
}

// GetVehicleByLicensePlate retrieves a vehicle by normalized license plate
func (r *Repository) GetVehicleByLicensePlate(ctx context.Context, plate string) (*models.Vehicle, error) {
	return scanVehicle(r.db.QueryRow(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles WHERE license_plate = $1`, plate))
}

// ListAvailableVehicles returns all vehicles currently open for booking
func (r *Repository) ListAvailableVehicles(ctx context.Context) ([]models.Vehicle, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles WHERE is_available = true ORDER BY rating DESC, created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []models.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, *v)
	}
	return vehicles, rows.Err()
}

// SetAvailability updates the vehicle's listing visibility
func (r *Repository) SetAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	_, err := r.db.Exec(ctx,
		`UPDATE vehicles SET is_available = $1, updated_at = NOW() WHERE id = $2`,
		available, id,
	)
	return err
}
