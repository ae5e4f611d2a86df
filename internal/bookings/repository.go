package bookings

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lankago/tour-marketplace/pkg/database"
	"github.com/lankago/tour-marketplace/pkg/models"
)

// RepositoryInterface defines the bookings data access contract
type RepositoryInterface interface {
	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBookingByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	ListBookingsByTourist(ctx context.Context, touristID uuid.UUID, limit, offset int) ([]models.Booking, int64, error)
	ListBookingsForProvider(ctx context.Context, providerID uuid.UUID, limit, offset int) ([]models.Booking, int64, error)
	UpdateStatus(ctx context.Context, booking *models.Booking) error
	CompleteBooking(ctx context.Context, booking *models.Booking, grant *models.ReviewEligibility) error
	ResolveService(ctx context.Context, ref models.ServiceRef) (*ServiceSummary, error)
}

// Repository handles bookings data access
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new bookings repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const bookingColumns = `
	id, tourist_id, service_type, service_id, provider_id, start_time, end_time,
	party_size, contact_name, contact_email, contact_phone, notes, total_price,
	status, reviewed, confirmed_at, completed_at, cancelled_at, created_at, updated_at`

func scanBooking(row pgx.Row) (*models.Booking, error) {
	b := &models.Booking{}
	err := row.Scan(
		&b.ID, &b.TouristID, &b.ServiceType, &b.ServiceID, &b.ProviderID,
		&b.StartTime, &b.EndTime, &b.PartySize, &b.ContactName, &b.ContactEmail,
		&b.ContactPhone, &b.Notes, &b.TotalPrice, &b.Status, &b.Reviewed,
		&b.ConfirmedAt, &b.CompletedAt, &b.CancelledAt, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// CreateBooking persists a new booking
func (r *Repository) CreateBooking(ctx context.Context, booking *models.Booking) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO bookings (
			id, tourist_id, service_type, service_id, provider_id, start_time, end_time,
			party_size, contact_name, contact_email, contact_phone, notes, total_price,
			status, reviewed, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		booking.ID, booking.TouristID, booking.ServiceType, booking.ServiceID,
		booking.ProviderID, booking.StartTime, booking.EndTime, booking.PartySize,
		booking.ContactName, booking.ContactEmail, booking.ContactPhone,
		booking.Notes, booking.TotalPrice, booking.Status, booking.Reviewed,
		booking.CreatedAt, booking.UpdatedAt,
	)
	return err
}

// GetBookingByID retrieves a booking by ID
func (r *Repository) GetBookingByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	return scanBooking(r.db.QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id))
}

// ListBookingsByTourist returns the tourist's bookings, newest first
func (r *Repository) ListBookingsByTourist(ctx context.Context, touristID uuid.UUID, limit, offset int) ([]models.Booking, int64, error) {
	return r.listBookings(ctx, `tourist_id`, touristID, limit, offset)
}

// ListBookingsForProvider returns bookings against the provider's service, newest first
func (r *Repository) ListBookingsForProvider(ctx context.Context, providerID uuid.UUID, limit, offset int) ([]models.Booking, int64, error) {
	return r.listBookings(ctx, `provider_id`, providerID, limit, offset)
}

func (r *Repository) listBookings(ctx context.Context, column string, id uuid.UUID, limit, offset int) ([]models.Booking, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM bookings WHERE `+column+` = $1`, id).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE `+column+` = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, id, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, total, rows.Err()
}

// UpdateStatus persists the booking's status and transition timestamps
func (r *Repository) UpdateStatus(ctx context.Context, booking *models.Booking) error {
	_, err := r.db.Exec(ctx, `
		UPDATE bookings
		SET status = $1, confirmed_at = $2, completed_at = $3, cancelled_at = $4, updated_at = NOW()
		WHERE id = $5`,
		booking.Status, booking.ConfirmedAt, booking.CompletedAt, booking.CancelledAt, booking.ID,
	)
	return err
}

// CompleteBooking marks the booking completed and records the review
// eligibility grant in the same transaction.
func (r *Repository) CompleteBooking(ctx context.Context, booking *models.Booking, grant *models.ReviewEligibility) error {
	return database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			UPDATE bookings
			SET status = $1, completed_at = $2, updated_at = NOW()
			WHERE id = $3`,
			booking.Status, booking.CompletedAt, booking.ID,
		)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO review_eligibilities (
				id, booking_id, tourist_id, target_type, target_id,
				review_submitted, expires_at, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			grant.ID, grant.BookingID, grant.TouristID, grant.TargetType,
			grant.TargetID, grant.ReviewSubmitted, grant.ExpiresAt, grant.CreatedAt,
		)
		return err
	})
}

// ResolveService looks up the provider and availability of the referenced
// guide or vehicle profile.
func (r *Repository) ResolveService(ctx context.Context, ref models.ServiceRef) (*ServiceSummary, error) {
	table := "guides"
	if ref.Type == models.ServiceTypeVehicle {
		table = "vehicles"
	}

	s := &ServiceSummary{}
	err := r.db.QueryRow(ctx,
		`SELECT user_id, is_available FROM `+table+` WHERE id = $1`, ref.ID,
	).Scan(&s.ProviderID, &s.IsAvailable)
	if err != nil {
		return nil, err
	}
	return s, nil
}
