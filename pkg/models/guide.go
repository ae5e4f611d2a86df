package models

import (
	"time"

	"github.com/google/uuid"
)

// Guide represents a tour guide profile. The rating and total_reviews fields
// are derived; only the review aggregate recompute may write them.
type Guide struct {
	ID           uuid.UUID `json:"id" db:"id"`
	UserID       uuid.UUID `json:"user_id" db:"user_id"`
	GuideID      string    `json:"guide_id" db:"guide_id"` // government issued guide ID
	Experience   int       `json:"experience" db:"experience"`
	Languages    []string  `json:"languages" db:"languages"`
	Specialties  []string  `json:"specialties" db:"specialties"`
	Bio          string    `json:"bio" db:"bio"`
	HourlyRate   float64   `json:"hourly_rate" db:"hourly_rate"`
	DailyRate    float64   `json:"daily_rate" db:"daily_rate"`
	Locations    []string  `json:"locations" db:"locations"`
	IsVerified   bool      `json:"is_verified" db:"is_verified"`
	IsAvailable  bool      `json:"is_available" db:"is_available"`
	Rating       float64   `json:"rating" db:"rating"`
	TotalReviews int       `json:"total_reviews" db:"total_reviews"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
