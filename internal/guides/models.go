package guides

import (
	"github.com/lankago/tour-marketplace/internal/catalog"
	"github.com/lankago/tour-marketplace/pkg/models"
)

// RegisterGuideRequest creates a guide profile for the authenticated user
type RegisterGuideRequest struct {
	GuideID     string   `json:"guide_id" binding:"required,max=50"`
	Experience  int      `json:"experience" binding:"min=0"`
	Languages   []string `json:"languages" binding:"required,min=1"`
	Specialties []string `json:"specialties"`
	Bio         string   `json:"bio" binding:"max=500"`
	HourlyRate  float64  `json:"hourly_rate" binding:"required,gt=0"`
	DailyRate   float64  `json:"daily_rate" binding:"required,gt=0"`
	Locations   []string `json:"locations"`
}

// SetAvailabilityRequest toggles the guide's listing visibility
type SetAvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" binding:"required"`
}

// ListGuidesResult is the filtered listing plus facet values for filter UI
type ListGuidesResult struct {
	Guides []models.Guide      `json:"guides"`
	Facets catalog.GuideFacets `json:"facets"`
}
