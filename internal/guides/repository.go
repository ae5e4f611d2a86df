package guides

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lankago/tour-marketplace/pkg/database"
	"github.com/lankago/tour-marketplace/pkg/models"
)

// RepositoryInterface defines the guides data access contract
type RepositoryInterface interface {
	CreateGuide(ctx context.Context, guide *models.Guide) error
	GetGuideByID(ctx context.Context, id uuid.UUID) (*models.Guide, error)
	GetGuideByUserID(ctx context.Context, userID uuid.UUID) (*models.Guide, error)
	GetGuideByExternalID(ctx context.Context, guideID string) (*models.Guide, error)
	ListAvailableGuides(ctx context.Context) ([]models.Guide, error)
	SetAvailability(ctx context.Context, id uuid.UUID, available bool) error
}

// Repository handles guides data access
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new guides repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const guideColumns = `
	id, user_id, guide_id, experience, languages, specialties, bio,
	hourly_rate, daily_rate, locations, is_verified, is_available,
	rating, total_reviews, created_at, updated_at`

func scanGuide(row pgx.Row) (*models.Guide, error) {
	g := &models.Guide{}
	err := row.Scan(
		&g.ID, &g.UserID, &g.GuideID, &g.Experience, &g.Languages, &g.Specialties,
		&g.Bio, &g.HourlyRate, &g.DailyRate, &g.Locations, &g.IsVerified,
		&g.IsAvailable, &g.Rating, &g.TotalReviews, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// CreateGuide persists the guide profile and promotes the owning user's role
// in the same transaction. The role flips from tourist exactly once.
func (r *Repository) CreateGuide(ctx context.Context, guide *models.Guide) error {
	return database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO guides (
				id, user_id, guide_id, experience, languages, specialties, bio,
				hourly_rate, daily_rate, locations, is_verified, is_available,
				rating, total_reviews, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
			guide.ID, guide.UserID, guide.GuideID, guide.Experience, guide.Languages,
			guide.Specialties, guide.Bio, guide.HourlyRate, guide.DailyRate,
			guide.Locations, guide.IsVerified, guide.IsAvailable,
			guide.Rating, guide.TotalReviews, guide.CreatedAt, guide.UpdatedAt,
		)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			UPDATE users SET role = $1, updated_at = NOW()
			WHERE id = $2 AND role = $3`,
			models.RoleGuide, guide.UserID, models.RoleTourist,
		)
		return err
	})
}

// GetGuideByID retrieves a guide by ID
func (r *Repository) GetGuideByID(ctx context.Context, id uuid.UUID) (*models.Guide, error) {
	return scanGuide(r.db.QueryRow(ctx,
		`SELECT `+guideColumns+` FROM guides WHERE id = $1`, id))
}

// GetGuideByUserID retrieves the guide profile owned by a user
func (r *Repository) GetGuideByUserID(ctx context.Context, userID uuid.UUID) (*models.Guide, error) {
	return scanGuide(r.db.QueryRow(ctx,
		`SELECT `+guideColumns+` FROM guides WHERE user_id = $1`, userID))
}

// GetGuideByExternalID retrieves a guide by government guide ID
func (r *Repository) GetGuideByExternalID(ctx context.Context, guideID string) (*models.Guide, error) {
	return scanGuide(r.db.QueryRow(ctx,
		`SELECT `+guideColumns+` FROM guides WHERE guide_id = $1`, guideID))
}

// ListAvailableGuides returns all guides currently open for booking
func (r *Repository) ListAvailableGuides(ctx context.Context) ([]models.Guide, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+guideColumns+` FROM guides WHERE is_available = true ORDER BY rating DESC, created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var guides []models.Guide
	for rows.Next() {
		g, err := scanGuide(rows)
		if err != nil {
			return nil, err
		}
		guides = append(guides, *g)
	}
	return guides, rows.Err()
}

// SetAvailability updates the guide's listing visibility
func (r *Repository) SetAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	_, err := r.db.Exec(ctx,
		`UPDATE guides SET is_available = $1, updated_at = NOW() WHERE id = $2`,
		available, id,
	)
	return err
}
