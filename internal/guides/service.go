package guides

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lankago/tour-marketplace/internal/catalog"
	"github.com/lankago/tour-marketplace/pkg/common"
	"github.com/lankago/tour-marketplace/pkg/logger"
	"github.com/lankago/tour-marketplace/pkg/models"
	"go.uber.org/zap"
)

const (
	listingCacheKey = "catalog:guides"
	listingCacheTTL = 30 * time.Second
)

// ListingCache is the optional read-through cache for the public listing
type ListingCache interface {
	GetString(ctx context.Context, key string) (string, error)
	SetWithExpiration(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Service handles guide profile business logic
type Service struct {
	repo  RepositoryInterface
	cache ListingCache
}

// NewService creates a new guides service
func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

// SetListingCache wires an optional redis-backed listing cache
func (s *Service) SetListingCache(cache ListingCache) {
	s.cache = cache
}

// RegisterGuide creates the guide profile for a user. A user may own at most
// one guide profile, and the government guide ID must be unique.
func (s *Service) RegisterGuide(ctx context.Context, userID uuid.UUID, req *RegisterGuideRequest) (*models.Guide, error) {
	existing, err := s.repo.GetGuideByExternalID(ctx, req.GuideID)
	if err != nil && err != pgx.ErrNoRows {
		return nil, err
	}
	if existing != nil {
		return nil, common.NewConflictError("guide ID already registered")
	}

	mine, err := s.repo.GetGuideByUserID(ctx, userID)
	if err != nil && err != pgx.ErrNoRows {
		return nil, err
	}
	if mine != nil {
		return nil, common.NewConflictError("you already have a guide profile")
	}

	specialties := req.Specialties
	if specialties == nil {
		specialties = []string{}
	}
	locations := req.Locations
	if locations == nil {
		locations = []string{}
	}

	now := time.Now()
	guide := &models.Guide{
		ID:          uuid.New(),
		UserID:      userID,
		GuideID:     req.GuideID,
		Experience:  req.Experience,
		Languages:   req.Languages,
		Specialties: specialties,
		Bio:         req.Bio,
		HourlyRate:  req.HourlyRate,
		DailyRate:   req.DailyRate,
		Locations:   locations,
		IsAvailable: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.CreateGuide(ctx, guide); err != nil {
		return nil, common.NewInternalServerError("failed to create guide profile")
	}

	s.invalidateListing(ctx)

	return guide, nil
}

// ListGuides returns available guides matching the filter, with facet values
// derived from the full available listing.
func (s *Service) ListGuides(ctx context.Context, filter catalog.GuideFilter) (*ListGuidesResult, error) {
	guides, err := s.loadListing(ctx)
	if err != nil {
		return nil, err
	}

	return &ListGuidesResult{
		Guides: catalog.FilterGuides(guides, filter),
		Facets: catalog.GuideFacetValues(guides),
	}, nil
}

// GetGuide retrieves a guide by ID
func (s *Service) GetGuide(ctx context.Context, id uuid.UUID) (*models.Guide, error) {
	guide, err := s.repo.GetGuideByID(ctx, id)
	if err != nil {
		return nil, common.NewNotFoundError("guide not found", nil)
	}
	return guide, nil
}

// GetMyProfile retrieves the guide profile owned by the user
func (s *Service) GetMyProfile(ctx context.Context, userID uuid.UUID) (*models.Guide, error) {
	guide, err := s.repo.GetGuideByUserID(ctx, userID)
	if err != nil {
		return nil, common.NewNotFoundError("no guide profile found", nil)
	}
	return guide, nil
}

// SetAvailability toggles whether the guide appears in the public listing
func (s *Service) SetAvailability(ctx context.Context, userID uuid.UUID, available bool) (*models.Guide, error) {
	guide, err := s.repo.GetGuideByUserID(ctx, userID)
	if err != nil {
		return nil, common.NewNotFoundError("no guide profile found", nil)
	}

	if err := s.repo.SetAvailability(ctx, guide.ID, available); err != nil {
		return nil, common.NewInternalServerError("failed to update availability")
	}

	guide.IsAvailable = available
	s.invalidateListing(ctx)

	return guide, nil
}

func (s *Service) loadListing(ctx context.Context) ([]models.Guide, error) {
	if s.cache != nil {
		if raw, err := s.cache.GetString(ctx, listingCacheKey); err == nil && raw != "" {
			var cached []models.Guide
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
		}
	}

	guides, err := s.repo.ListAvailableGuides(ctx)
	if err != nil {
		return nil, common.NewInternalServerError("failed to list guides")
	}
	if guides == nil {
		guides = []models.Guide{}
	}

	if s.cache != nil {
		if payload, err := json.Marshal(guides); err == nil {
			if err := s.cache.SetWithExpiration(ctx, listingCacheKey, payload, listingCacheTTL); err != nil {
				logger.WithContext(ctx).Warn("failed to cache guide listing", zap.Error(err))
			}
		}
	}

	return guides, nil
}

func (s *Service) invalidateListing(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, listingCacheKey); err != nil {
		logger.WithContext(ctx).Warn("failed to invalidate guide listing cache", zap.Error(err))
	}
}
