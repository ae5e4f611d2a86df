package reviews

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lankago/tour-marketplace/pkg/common"
	"github.com/lankago/tour-marketplace/pkg/config"
	"github.com/lankago/tour-marketplace/pkg/database"
	"github.com/lankago/tour-marketplace/pkg/models"
	"github.com/lankago/tour-marketplace/pkg/validation"
)

// Service handles review business logic
type Service struct {
	repo       RepositoryInterface
	checker    *Checker
	aggregator *Aggregator
	cfg        config.ReviewConfig
}

// NewService creates a new reviews service
func NewService(repo RepositoryInterface, checker *Checker, aggregator *Aggregator, cfg config.ReviewConfig) *Service {
	return &Service{repo: repo, checker: checker, aggregator: aggregator, cfg: cfg}
}

// CheckEligibility reports whether the user may still review the booking
func (s *Service) CheckEligibility(ctx context.Context, bookingID, userID uuid.UUID) (*EligibilityResult, error) {
	return s.checker.Check(ctx, bookingID, userID)
}

// CreateReview files the one permitted review for a completed booking and
// synchronously recomputes the target's rating aggregate.
func (s *Service) CreateReview(ctx context.Context, authorID uuid.UUID, req *CreateReviewRequest) (*Review, error) {
	targetType := models.ServiceType(strings.ToLower(strings.TrimSpace(req.TargetType)))
	if !targetType.Valid() {
		return nil, common.NewValidationError("target type must be guide or vehicle")
	}
	if err := validation.ValidateRating(req.Rating); err != nil {
		return nil, common.NewValidationError("rating must be between 1 and 5")
	}

	comment := strings.TrimSpace(req.Comment)
	if err := s.validateCommentLength(comment); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(req.Title)
	if err := validation.ValidateStringLength(title, 0, s.cfg.MaxTitleLength); err != nil {
		return nil, common.NewValidationError("title must be at most 100 characters")
	}
	if err := validateStrengths(targetType, req.Strengths); err != nil {
		return nil, err
	}

	booking, err := s.repo.GetBookingByID(ctx, req.BookingID)
	if err != nil {
		return nil, common.NewNotFoundError("booking not found", nil)
	}

	if booking.ServiceType != targetType || booking.ServiceID != req.TargetID {
		return nil, common.NewTargetMismatchError("review target does not match the booking's service")
	}

	eligibility, err := s.checker.Check(ctx, req.BookingID, authorID)
	if err != nil {
		return nil, err
	}
	if !eligibility.Eligible {
		if eligibility.Reason == ReasonAlreadyReviewed {
			return nil, common.NewDuplicateReviewError(eligibility.Reason)
		}
		return nil, common.NewValidationError(eligibility.Reason)
	}

	wouldRecommend := true
	if req.WouldRecommend != nil {
		wouldRecommend = *req.WouldRecommend
	}
	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}
	strengths := req.Strengths
	if strengths == nil {
		strengths = []string{}
	}

	now := time.Now()
	review := &Review{
		ID:             uuid.New(),
		BookingID:      req.BookingID,
		AuthorID:       authorID,
		TargetType:     targetType,
		TargetID:       req.TargetID,
		Rating:         req.Rating,
		Title:          title,
		Comment:        comment,
		WouldRecommend: wouldRecommend,
		Strengths:      strengths,
		IsPublic:       isPublic,
		ServiceDate:    booking.CompletedAt,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	// the insert, the booking flag, and the aggregate recompute commit or
	// roll back together
	if _, err := s.repo.CreateReview(ctx, review); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, common.NewDuplicateReviewError("booking has already been reviewed")
		}
		return nil, common.NewInternalServerError("failed to create review")
	}

	return review, nil
}

// GetReview retrieves a single review. Private reviews are visible only to
// their author, the target owner, and admins.
func (s *Service) GetReview(ctx context.Context, id uuid.UUID, actor models.Actor) (*Review, error) {
	review, err := s.repo.GetReviewByID(ctx, id)
	if err != nil {
		return nil, common.NewNotFoundError("review not found", nil)
	}

	if !review.IsPublic && review.AuthorID != actor.UserID && !actor.IsAdmin() {
		ownerID, err := s.repo.GetTargetOwner(ctx, review.TargetType, review.TargetID)
		if err != nil || ownerID != actor.UserID {
			return nil, common.NewForbiddenError("you do not have access to this review")
		}
	}

	return review, nil
}

// UpdateReview patches the author-editable fields. Only the author may edit;
// rating and visibility changes trigger an aggregate recompute.
func (s *Service) UpdateReview(ctx context.Context, id uuid.UUID, actor models.Actor, req *UpdateReviewRequest) (*Review, error) {
	review, err := s.repo.GetReviewByID(ctx, id)
	if err != nil {
		return nil, common.NewNotFoundError("review not found", nil)
	}

	if review.AuthorID != actor.UserID {
		return nil, common.NewForbiddenError("only the author may edit a review")
	}

	needsRecompute := false
	if req.Rating != nil {
		if err := validation.ValidateRating(*req.Rating); err != nil {
			return nil, common.NewValidationError("rating must be between 1 and 5")
		}
		if *req.Rating != review.Rating {
			review.Rating = *req.Rating
			needsRecompute = true
		}
	}
	if req.Comment != nil {
		comment := strings.TrimSpace(*req.Comment)
		if err := s.validateCommentLength(comment); err != nil {
			return nil, err
		}
		review.Comment = comment
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if err := validation.ValidateStringLength(title, 0, s.cfg.MaxTitleLength); err != nil {
			return nil, common.NewValidationError("title must be at most 100 characters")
		}
		review.Title = title
	}
	if req.WouldRecommend != nil {
		review.WouldRecommend = *req.WouldRecommend
	}
	if req.Strengths != nil {
		if err := validateStrengths(review.TargetType, req.Strengths); err != nil {
			return nil, err
		}
		review.Strengths = req.Strengths
	}
	if req.IsPublic != nil && *req.IsPublic != review.IsPublic {
		review.IsPublic = *req.IsPublic
		needsRecompute = true
	}

	if _, err := s.repo.UpdateReview(ctx, review, needsRecompute); err != nil {
		return nil, common.NewInternalServerError("failed to update review")
	}

	return review, nil
}

// ReplyToReview sets the target owner's reply. Only the owner of the reviewed
// guide or vehicle profile may reply.
func (s *Service) ReplyToReview(ctx context.Context, id uuid.UUID, actor models.Actor, reply string) (*Review, error) {
	review, err := s.repo.GetReviewByID(ctx, id)
	if err != nil {
		return nil, common.NewNotFoundError("review not found", nil)
	}

	ownerID, err := s.repo.GetTargetOwner(ctx, review.TargetType, review.TargetID)
	if err != nil {
		return nil, common.NewInternalServerError("failed to resolve review target")
	}
	if ownerID != actor.UserID && !actor.IsAdmin() {
		return nil, common.NewForbiddenError("only the service provider may reply to a review")
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		return nil, common.NewValidationError("reply cannot be empty")
	}

	now := time.Now()
	review.Reply = reply
	review.RepliedAt = &now

	if err := s.repo.SetReply(ctx, review); err != nil {
		return nil, common.NewInternalServerError("failed to save reply")
	}

	return review, nil
}

// DeleteReview removes a review. Only the author or an admin may delete; the
// target's aggregate is recomputed afterwards.
func (s *Service) DeleteReview(ctx context.Context, id uuid.UUID, actor models.Actor) error {
	review, err := s.repo.GetReviewByID(ctx, id)
	if err != nil {
		return common.NewNotFoundError("review not found", nil)
	}

	if review.AuthorID != actor.UserID && !actor.IsAdmin() {
		return common.NewForbiddenError("only the author or an admin may delete a review")
	}

	if _, err := s.repo.DeleteReview(ctx, review); err != nil {
		return common.NewInternalServerError("failed to delete review")
	}

	return nil
}

// RecomputeTarget re-derives a target's rating columns from its public
// reviews. Admin repair path; normal review mutations keep the columns
// current on their own.
func (s *Service) RecomputeTarget(ctx context.Context, targetType models.ServiceType, targetID uuid.UUID) (*RatingAggregate, error) {
	if !targetType.Valid() {
		return nil, common.NewValidationError("target type must be guide or vehicle")
	}

	agg, err := s.aggregator.Recompute(ctx, targetType, targetID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, common.NewNotFoundError("target not found", nil)
		}
		return nil, common.NewInternalServerError("failed to recompute target rating")
	}
	return agg, nil
}

// ListForTarget returns the target's public reviews, newest first, with live
// statistics computed over the same public set.
func (s *Service) ListForTarget(ctx context.Context, targetType models.ServiceType, targetID uuid.UUID, limit, offset int) ([]Review, int64, *ReviewStatistics, error) {
	if !targetType.Valid() {
		return nil, 0, nil, common.NewValidationError("target type must be guide or vehicle")
	}

	reviews, total, err := s.repo.ListReviewsForTarget(ctx, targetType, targetID, limit, offset)
	if err != nil {
		return nil, 0, nil, common.NewInternalServerError("failed to list reviews")
	}
	if reviews == nil {
		reviews = []Review{}
	}

	stats, err := s.aggregator.Statistics(ctx, targetType, targetID)
	if err != nil {
		return nil, 0, nil, common.NewInternalServerError("failed to compute review statistics")
	}

	return reviews, total, stats, nil
}

// ListForAuthor returns every review the author has filed
func (s *Service) ListForAuthor(ctx context.Context, authorID uuid.UUID) ([]Review, error) {
	reviews, err := s.repo.ListReviewsByAuthor(ctx, authorID)
	if err != nil {
		return nil, common.NewInternalServerError("failed to list reviews")
	}
	if reviews == nil {
		reviews = []Review{}
	}
	return reviews, nil
}

// ListForServiceOwner returns reviews against any service the owner provides
func (s *Service) ListForServiceOwner(ctx context.Context, ownerID uuid.UUID) ([]Review, error) {
	reviews, err := s.repo.ListReviewsForOwner(ctx, ownerID)
	if err != nil {
		return nil, common.NewInternalServerError("failed to list reviews")
	}
	if reviews == nil {
		reviews = []Review{}
	}
	return reviews, nil
}

// GetByBooking returns the review filed against a booking, if any
func (s *Service) GetByBooking(ctx context.Context, bookingID uuid.UUID) (*Review, error) {
	review, err := s.repo.GetReviewByBookingID(ctx, bookingID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, common.NewNotFoundError("no review for this booking", nil)
		}
		return nil, common.NewInternalServerError("failed to get review")
	}
	return review, nil
}

func (s *Service) validateCommentLength(comment string) error {
	if err := validation.ValidateStringLength(comment, s.cfg.MinCommentLength, s.cfg.MaxCommentLength); err != nil {
		return common.NewValidationError("comment must be between 10 and 500 characters")
	}
	return nil
}

func validateStrengths(targetType models.ServiceType, strengths []string) error {
	allowed := StrengthsFor(targetType)
	for _, s := range strengths {
		if !containsString(allowed, s) {
			return common.NewValidationError("unsupported strength tag: " + s)
		}
	}
	return nil
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
