package reviews

import (
	"context"
	"math"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lankago/tour-marketplace/pkg/database"
	"github.com/lankago/tour-marketplace/pkg/models"
)

// RepositoryInterface defines the reviews data access contract
type RepositoryInterface interface {
	GetBookingByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	CreateReview(ctx context.Context, review *Review) (*RatingAggregate, error)
	GetReviewByID(ctx context.Context, id uuid.UUID) (*Review, error)
	GetReviewByBookingID(ctx context.Context, bookingID uuid.UUID) (*Review, error)
	UpdateReview(ctx context.Context, review *Review, recompute bool) (*RatingAggregate, error)
	SetReply(ctx context.Context, review *Review) error
	DeleteReview(ctx context.Context, review *Review) (*RatingAggregate, error)
	ListReviewsForTarget(ctx context.Context, targetType models.ServiceType, targetID uuid.UUID, limit, offset int) ([]Review, int64, error)
	ListReviewsByAuthor(ctx context.Context, authorID uuid.UUID) ([]Review, error)
	ListReviewsForOwner(ctx context.Context, ownerID uuid.UUID) ([]Review, error)
	GetTargetStatistics(ctx context.Context, targetType models.ServiceType, targetID uuid.UUID) (*ReviewStatistics, error)
	GetTargetOwner(ctx context.Context, targetType models.ServiceType, targetID uuid.UUID) (uuid.UUID, error)
	RecomputeTargetRating(ctx context.Context, targetType models.ServiceType, targetID uuid.UUID) (*RatingAggregate, error)
}

// Repository handles reviews data access
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new reviews repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const reviewColumns = `
	id, booking_id, author_id, target_type, target_id, rating, title, comment,
	would_recommend, strengths, is_public, reply, replied_at, service_date,
	created_at, updated_at`

func scanReview(row pgx.Row) (*Review, error) {
	rv := &Review{}
	var title, reply *string
	err := row.Scan(
		&rv.ID, &rv.BookingID, &rv.AuthorID, &rv.TargetType, &rv.TargetID,
		&rv.Rating, &title, &rv.Comment, &rv.WouldRecommend, &rv.Strengths,
		&rv.IsPublic, &reply, &rv.RepliedAt, &rv.ServiceDate,
		&rv.CreatedAt, &rv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if title != nil {
		rv.Title = *title
	}
	if reply != nil {
		rv.Reply = *reply
	}
	return rv, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// GetBookingByID retrieves the booking a review refers to
func (r *Repository) GetBookingByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	b := &models.Booking{}
	err := r.db.QueryRow(ctx, `
		SELECT id, tourist_id, service_type, service_id, provider_id, status, reviewed, completed_at
		FROM bookings WHERE id = $1`, id,
	).Scan(&b.ID, &b.TouristID, &b.ServiceType, &b.ServiceID, &b.ProviderID,
		&b.Status, &b.Reviewed, &b.CompletedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// CreateReview inserts the review, marks the booking reviewed, consumes the
// eligibility grant, and recomputes the target's aggregate, all in one
// transaction, so a failed recompute rolls the whole mutation back. The
// unique index on booking_id rejects a concurrent second review.
func (r *Repository) CreateReview(ctx context.Context, review *Review) (*RatingAggregate, error) {
	var agg *RatingAggregate
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO reviews (
				id, booking_id, author_id, target_type, target_id, rating, title,
				comment, would_recommend, strengths, is_public, service_date,
				created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
			review.ID, review.BookingID, review.AuthorID, review.TargetType,
			review.TargetID, review.Rating, nullable(review.Title), review.Comment,
			review.WouldRecommend, review.Strengths, review.IsPublic,
			review.ServiceDate, review.CreatedAt, review.UpdatedAt,
		)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx,
			`UPDATE bookings SET reviewed = true, updated_at = NOW() WHERE id = $1`,
			review.BookingID,
		)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx,
			`UPDATE review_eligibilities SET review_submitted = true WHERE booking_id = $1`,
			review.BookingID,
		)
		if err != nil {
			return err
		}

		agg, err = r.recomputeRating(ctx, tx, review.TargetType, review.TargetID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return agg, nil
}

// GetReviewByID retrieves a review by ID
func (r *Repository) GetReviewByID(ctx context.Context, id uuid.UUID) (*Review, error) {
	return scanReview(r.db.QueryRow(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id))
}

// GetReviewByBookingID retrieves the review filed against a booking
func (r *Repository) GetReviewByBookingID(ctx context.Context, bookingID uuid.UUID) (*Review, error) {
	return scanReview(r.db.QueryRow(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE booking_id = $1`, bookingID))
}

// UpdateReview persists the author-editable fields. When the rating or the
// visibility changed, the target's aggregate is recomputed in the same
// transaction as the update.
func (r *Repository) UpdateReview(ctx context.Context, review *Review, recompute bool) (*RatingAggregate, error) {
	const query = `
		UPDATE reviews
		SET rating = $1, title = $2, comment = $3, would_recommend = $4,
		    strengths = $5, is_public = $6, updated_at = NOW()
		WHERE id = $7`

	if !recompute {
		_, err := r.db.Exec(ctx, query,
			review.Rating, nullable(review.Title), review.Comment,
			review.WouldRecommend, review.Strengths, review.IsPublic, review.ID,
		)
		return nil, err
	}

	var agg *RatingAggregate
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, query,
			review.Rating, nullable(review.Title), review.Comment,
			review.WouldRecommend, review.Strengths, review.IsPublic, review.ID,
		)
		if err != nil {
			return err
		}
		agg, err = r.recomputeRating(ctx, tx, review.TargetType, review.TargetID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return agg, nil
}

// SetReply persists the target owner's reply
func (r *Repository) SetReply(ctx context.Context, review *Review) error {
	_, err := r.db.Exec(ctx, `
		UPDATE reviews SET reply = $1, replied_at = $2, updated_at = NOW() WHERE id = $3`,
		nullable(review.Reply), review.RepliedAt, review.ID,
	)
	return err
}

// DeleteReview removes the review, reopens the booking's review slot, and
// recomputes the former target's aggregate, all in one transaction.
func (r *Repository) DeleteReview(ctx context.Context, review *Review) (*RatingAggregate, error) {
	var agg *RatingAggregate
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, review.ID); err != nil {
			return err
		}
		_, err := tx.Exec(ctx,
			`UPDATE bookings SET reviewed = false, updated_at = NOW() WHERE id = $1`,
			review.BookingID,
		)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx,
			`UPDATE review_eligibilities SET review_submitted = false WHERE booking_id = $1`,
			review.BookingID,
		)
		if err != nil {
			return err
		}
		agg, err = r.recomputeRating(ctx, tx, review.TargetType, review.TargetID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return agg, nil
}

// ListReviewsForTarget returns the target's public reviews, newest first
func (r *Repository) ListReviewsForTarget(ctx context.Context, targetType models.ServiceType, targetID uuid.UUID, limit, offset int) ([]Review, int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM reviews
		WHERE target_type = $1 AND target_id = $2 AND is_public = true`,
		targetType, targetID,
	).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+reviewColumns+` FROM reviews
		WHERE target_type = $1 AND target_id = $2 AND is_public = true
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`,
		targetType, targetID, limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	reviews, err := collectReviews(rows)
	return reviews, total, err
}

// ListReviewsByAuthor returns every review the author has filed, newest first
func (r *Repository) ListReviewsByAuthor(ctx context.Context, authorID uuid.UUID) ([]Review, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+reviewColumns+` FROM reviews
		WHERE author_id = $1 ORDER BY created_at DESC`, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReviews(rows)
}

// ListReviewsForOwner returns reviews against any service the owner provides
func (r *Repository) ListReviewsForOwner(ctx context.Context, ownerID uuid.UUID) ([]Review, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+reviewColumns+` FROM reviews
		WHERE (target_type = 'guide' AND target_id IN (SELECT id FROM guides WHERE user_id = $1))
		   OR (target_type = 'vehicle' AND target_id IN (SELECT id FROM vehicles WHERE user_id = $1))
		ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReviews(rows)
}

func collectReviews(rows pgx.Rows) ([]Review, error) {
	var reviews []Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, *rv)
	}
	return reviews, rows.Err()
}

// GetTargetStatistics computes the live statistics over the target's public reviews
func (r *Repository) GetTargetStatistics(ctx context.Context, targetType models.ServiceType, targetID uuid.UUID) (*ReviewStatistics, error) {
	stats := &ReviewStatistics{RatingDistribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}}

	rows, err := r.db.Query(ctx, `
		SELECT rating, COUNT(*), COUNT(*) FILTER (WHERE would_recommend)
		FROM reviews
		WHERE target_type = $1 AND target_id = $2 AND is_public = true
		GROUP BY rating`,
		targetType, targetID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratingSum, recommended int64
	for rows.Next() {
		var rating int
		var count, recCount int64
		if err := rows.Scan(&rating, &count, &recCount); err != nil {
			return nil, err
		}
		stats.RatingDistribution[rating] = int(count)
		stats.TotalReviews += count
		ratingSum += int64(rating) * count
		recommended += recCount
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if stats.TotalReviews > 0 {
		stats.AverageRating = roundToOneDecimal(float64(ratingSum) / float64(stats.TotalReviews))
		stats.RecommendationRate = roundToOneDecimal(float64(recommended) / float64(stats.TotalReviews) * 100)
	}
	return stats, nil
}

// GetTargetOwner returns the user owning the reviewed guide or vehicle profile
func (r *Repository) GetTargetOwner(ctx context.Context, targetType models.ServiceType, targetID uuid.UUID) (uuid.UUID, error) {
	table := "guides"
	if targetType == models.ServiceTypeVehicle {
		table = "vehicles"
	}
	var ownerID uuid.UUID
	err := r.db.QueryRow(ctx,
		`SELECT user_id FROM `+table+` WHERE id = $1`, targetID).Scan(&ownerID)
	return ownerID, err
}

// rowQuerier is satisfied by both the pool and a transaction, so the rating
// recompute can run inside a review mutation's transaction or standalone.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// RecomputeTargetRating rewrites the target's derived rating columns from its
// public reviews. Used for out-of-band repair; review mutations recompute
// within their own transaction.
func (r *Repository) RecomputeTargetRating(ctx context.Context, targetType models.ServiceType, targetID uuid.UUID) (*RatingAggregate, error) {
	return r.recomputeRating(ctx, r.db, targetType, targetID)
}

// recomputeRating runs as a single UPDATE..FROM subquery statement, so
// concurrent review mutations cannot interleave a stale read-modify-write.
// Empty listings reset to 0/0.
func (r *Repository) recomputeRating(ctx context.Context, q rowQuerier, targetType models.ServiceType, targetID uuid.UUID) (*RatingAggregate, error) {
	table := "guides"
	if targetType == models.ServiceTypeVehicle {
		table = "vehicles"
	}

	agg := &RatingAggregate{}
	err := q.QueryRow(ctx, `
		UPDATE `+table+` SET
			rating = agg.avg_rating,
			total_reviews = agg.review_count,
			updated_at = NOW()
		FROM (
			SELECT
				COALESCE(ROUND(AVG(rating)::numeric, 1), 0) AS avg_rating,
				COUNT(*) AS review_count
			FROM reviews
			WHERE target_type = $1 AND target_id = $2 AND is_public = true
		) AS agg
		WHERE `+table+`.id = $2
		RETURNING agg.avg_rating, agg.review_count`,
		targetType, targetID,
	).Scan(&agg.Average, &agg.Count)
	if err != nil {
		return nil, err
	}
	return agg, nil
}

func roundToOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
