package reviews

import (
	"context"

	"github.com/google/uuid"
	"github.com/lankago/tour-marketplace/pkg/common"
	"github.com/lankago/tour-marketplace/pkg/models"
)

// Eligibility reasons surfaced to clients
const (
	ReasonNotCompleted    = "booking is not completed"
	ReasonAlreadyReviewed = "booking has already been reviewed"
)

// Checker answers whether a tourist may still file the one permitted review
// for a booking. The authority is always the booking row itself, never the
// advisory eligibility grant.
type Checker struct {
	repo RepositoryInterface
}

// NewChecker creates a new eligibility checker
func NewChecker(repo RepositoryInterface) *Checker {
	return &Checker{repo: repo}
}

// Check reports whether the requesting user may review the booking. Only the
// booking's tourist may ask about or hold the review slot.
func (c *Checker) Check(ctx context.Context, bookingID, requestingUserID uuid.UUID) (*EligibilityResult, error) {
	booking, err := c.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, common.NewNotFoundError("booking not found", nil)
	}

	if booking.TouristID != requestingUserID {
		return nil, common.NewForbiddenError("only the booking's tourist may review it")
	}

	if booking.Status != models.BookingStatusCompleted {
		return &EligibilityResult{Eligible: false, Reason: ReasonNotCompleted}, nil
	}
	if booking.Reviewed {
		return &EligibilityResult{Eligible: false, Reason: ReasonAlreadyReviewed}, nil
	}

	return &EligibilityResult{Eligible: true}, nil
}
