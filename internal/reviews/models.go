package reviews

import (
	"time"

	"github.com/google/uuid"
	"github.com/lankago/tour-marketplace/pkg/models"
)

// Review is a tourist's one permitted review of a completed booking's service
type Review struct {
	ID             uuid.UUID          `json:"id" db:"id"`
	BookingID      uuid.UUID          `json:"booking_id" db:"booking_id"`
	AuthorID       uuid.UUID          `json:"author_id" db:"author_id"`
	TargetType     models.ServiceType `json:"target_type" db:"target_type"`
	TargetID       uuid.UUID          `json:"target_id" db:"target_id"`
	Rating         int                `json:"rating" db:"rating"`
	Title          string             `json:"title,omitempty" db:"title"`
	Comment        string             `json:"comment" db:"comment"`
	WouldRecommend bool               `json:"would_recommend" db:"would_recommend"`
	Strengths      []string           `json:"strengths" db:"strengths"`
	IsPublic       bool               `json:"is_public" db:"is_public"`
	Reply          string             `json:"reply,omitempty" db:"reply"`
	RepliedAt      *time.Time         `json:"replied_at,omitempty" db:"replied_at"`
	ServiceDate    *time.Time         `json:"service_date,omitempty" db:"service_date"`
	CreatedAt      time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at" db:"updated_at"`
}

// GuideStrengths and VehicleStrengths are the per-target strength tag sets
var (
	GuideStrengths = []string{
		"knowledge", "communication", "punctuality", "friendliness", "professionalism",
	}
	VehicleStrengths = []string{
		"vehicle-condition", "driving-skills", "punctuality", "professionalism",
	}
)

// StrengthsFor returns the allowed strength tags for a target kind
func StrengthsFor(targetType models.ServiceType) []string {
	if targetType == models.ServiceTypeVehicle {
		return VehicleStrengths
	}
	return GuideStrengths
}

// CreateReviewRequest files the one permitted review for a completed booking
type CreateReviewRequest struct {
	BookingID      uuid.UUID `json:"booking_id" binding:"required"`
	TargetType     string    `json:"target_type" binding:"required,service_type"`
	TargetID       uuid.UUID `json:"target_id" binding:"required"`
	Rating         int       `json:"rating" binding:"required"`
	Title          string    `json:"title"`
	Comment        string    `json:"comment" binding:"required"`
	WouldRecommend *bool     `json:"would_recommend"`
	Strengths      []string  `json:"strengths"`
	IsPublic       *bool     `json:"is_public"`
}

// UpdateReviewRequest patches author-editable fields. Nil means unchanged.
type UpdateReviewRequest struct {
	Rating         *int     `json:"rating"`
	Title          *string  `json:"title"`
	Comment        *string  `json:"comment"`
	WouldRecommend *bool    `json:"would_recommend"`
	Strengths      []string `json:"strengths"`
	IsPublic       *bool    `json:"is_public"`
}

// ReplyRequest sets the target owner's reply on a review
type ReplyRequest struct {
	Reply string `json:"reply" binding:"required,max=500"`
}

// EligibilityResult reports whether a review may be filed and why not
type EligibilityResult struct {
	Eligible bool   `json:"eligible"`
	Reason   string `json:"reason,omitempty"`
}

// RatingAggregate is the derived rating state written back to the target
type RatingAggregate struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// ReviewStatistics summarises the public reviews of a target
type ReviewStatistics struct {
	AverageRating      float64     `json:"average_rating"`
	TotalReviews       int64       `json:"total_reviews"`
	RatingDistribution map[int]int `json:"rating_distribution"`
	RecommendationRate float64     `json:"recommendation_rate"`
}
