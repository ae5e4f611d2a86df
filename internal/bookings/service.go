package bookings

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lankago/tour-marketplace/pkg/common"
	"github.com/lankago/tour-marketplace/pkg/config"
	"github.com/lankago/tour-marketplace/pkg/models"
	"github.com/lankago/tour-marketplace/pkg/validation"
)

// Service handles booking lifecycle business logic
type Service struct {
	repo RepositoryInterface
	cfg  config.BookingConfig
}

// NewService creates a new bookings service
func NewService(repo RepositoryInterface, cfg config.BookingConfig) *Service {
	return &Service{repo: repo, cfg: cfg}
}

// Create opens a pending booking against an available guide or vehicle service
func (s *Service) Create(ctx context.Context, touristID uuid.UUID, req *CreateBookingRequest) (*models.Booking, error) {
	serviceType := models.ServiceType(strings.ToLower(strings.TrimSpace(req.ServiceType)))
	if !serviceType.Valid() {
		return nil, common.NewValidationError("service type must be guide or vehicle")
	}
	if !req.EndTime.After(req.StartTime) {
		return nil, common.NewValidationError("end time must be after start time")
	}
	if req.StartTime.Before(time.Now()) {
		return nil, common.NewValidationError("start time cannot be in the past")
	}
	if req.PartySize < 1 || req.PartySize > s.cfg.MaxPartySize {
		return nil, common.NewValidationError("party size out of range")
	}
	if strings.TrimSpace(req.ContactName) == "" {
		return nil, common.NewValidationError("contact name is required")
	}
	if !validation.ValidateEmail(req.ContactEmail) {
		return nil, common.NewValidationError("invalid contact email")
	}
	if !validation.ValidatePhoneNumber(req.ContactPhone) {
		return nil, common.NewValidationError("invalid contact phone number")
	}
	if maxDuration := time.Duration(s.cfg.MaxDurationHours) * time.Hour; req.EndTime.Sub(req.StartTime) > maxDuration {
		return nil, common.NewValidationError("booking exceeds the maximum duration")
	}

	ref := models.ServiceRef{Type: serviceType, ID: req.ServiceID}
	summary, err := s.repo.ResolveService(ctx, ref)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, common.NewNotFoundError("service not found", nil)
		}
		return nil, common.NewInternalServerError("failed to resolve service")
	}
	if !summary.IsAvailable {
		return nil, common.NewConflictError("service is not currently available")
	}
	if summary.ProviderID == touristID {
		return nil, common.NewValidationError("you cannot book your own service")
	}

	now := time.Now()
	booking := &models.Booking{
		ID:           uuid.New(),
		TouristID:    touristID,
		ServiceType:  serviceType,
		ServiceID:    req.ServiceID,
		ProviderID:   summary.ProviderID,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		PartySize:    req.PartySize,
		ContactName:  strings.TrimSpace(req.ContactName),
		ContactEmail: strings.TrimSpace(req.ContactEmail),
		ContactPhone: strings.TrimSpace(req.ContactPhone),
		Notes:        strings.TrimSpace(req.Notes),
		TotalPrice:   req.TotalPrice,
		Status:       models.BookingStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		return nil, common.NewInternalServerError("failed to create booking")
	}

	return booking, nil
}

// Transition moves a booking to a new status, enforcing the state machine and
// the actor's authority over the edge. Completion goes through Complete so the
// eligibility grant is never skipped.
func (s *Service) Transition(ctx context.Context, bookingID uuid.UUID, next models.BookingStatus, actor models.Actor) (*models.Booking, error) {
	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, common.NewNotFoundError("booking not found", nil)
	}

	if !next.Valid() {
		return nil, common.NewValidationError("unknown booking status")
	}
	if next == models.BookingStatusPending {
		return nil, common.NewInvalidTransitionError("bookings cannot return to pending")
	}
	if next == models.BookingStatusCompleted {
		completed, _, err := s.complete(ctx, booking, actor)
		return completed, err
	}

	if err := authorizeTransition(booking, next, actor); err != nil {
		return nil, err
	}

	if !booking.Status.CanTransitionTo(next) {
		return nil, common.NewInvalidTransitionError(
			"cannot move booking from " + string(booking.Status) + " to " + string(next))
	}

	now := time.Now()
	booking.Status = next
	switch next {
	case models.BookingStatusConfirmed:
		booking.ConfirmedAt = &now
	case models.BookingStatusCancelled:
		booking.CancelledAt = &now
	}

	if err := s.repo.UpdateStatus(ctx, booking); err != nil {
		return nil, common.NewInternalServerError("failed to update booking status")
	}

	return booking, nil
}

// Complete marks a confirmed booking completed and grants the tourist a
// time-boxed review eligibility, both in one transaction.
func (s *Service) Complete(ctx context.Context, bookingID uuid.UUID, actor models.Actor) (*models.Booking, *models.ReviewEligibility, error) {
	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, nil, common.NewNotFoundError("booking not found", nil)
	}
	return s.complete(ctx, booking, actor)
}

func (s *Service) complete(ctx context.Context, booking *models.Booking, actor models.Actor) (*models.Booking, *models.ReviewEligibility, error) {
	if err := authorizeTransition(booking, models.BookingStatusCompleted, actor); err != nil {
		return nil, nil, err
	}

	if booking.Status == models.BookingStatusCompleted {
		return nil, nil, common.NewAlreadyCompletedError("booking is already completed")
	}
	if !booking.Status.CanTransitionTo(models.BookingStatusCompleted) {
		return nil, nil, common.NewInvalidTransitionError(
			"cannot complete a " + string(booking.Status) + " booking")
	}

	now := time.Now()
	booking.Status = models.BookingStatusCompleted
	booking.CompletedAt = &now

	grant := &models.ReviewEligibility{
		ID:         uuid.New(),
		BookingID:  booking.ID,
		TouristID:  booking.TouristID,
		TargetType: booking.ServiceType,
		TargetID:   booking.ServiceID,
		ExpiresAt:  now.AddDate(0, 0, s.cfg.EligibilityWindowDays),
		CreatedAt:  now,
	}

	if err := s.repo.CompleteBooking(ctx, booking, grant); err != nil {
		return nil, nil, common.NewInternalServerError("failed to complete booking")
	}

	return booking, grant, nil
}

// Get retrieves a booking visible to the tourist, the provider, or an admin
func (s *Service) Get(ctx context.Context, bookingID uuid.UUID, actor models.Actor) (*models.Booking, error) {
	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, common.NewNotFoundError("booking not found", nil)
	}

	if booking.TouristID != actor.UserID && booking.ProviderID != actor.UserID && !actor.IsAdmin() {
		return nil, common.NewForbiddenError("you do not have access to this booking")
	}

	return booking, nil
}

// ListByTourist returns the tourist's own bookings, newest first
func (s *Service) ListByTourist(ctx context.Context, touristID uuid.UUID, limit, offset int) ([]models.Booking, int64, error) {
	bookings, total, err := s.repo.ListBookingsByTourist(ctx, touristID, limit, offset)
	if err != nil {
		return nil, 0, common.NewInternalServerError("failed to list bookings")
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return bookings, total, nil
}

// ListForProvider returns bookings against the provider's service, newest first
func (s *Service) ListForProvider(ctx context.Context, providerID uuid.UUID, limit, offset int) ([]models.Booking, int64, error) {
	bookings, total, err := s.repo.ListBookingsForProvider(ctx, providerID, limit, offset)
	if err != nil {
		return nil, 0, common.NewInternalServerError("failed to list bookings")
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return bookings, total, nil
}

// authorizeTransition checks the actor's authority over the requested edge.
// Confirm and complete belong to the provider; cancel belongs to either party.
// Admins may do anything.
func authorizeTransition(booking *models.Booking, next models.BookingStatus, actor models.Actor) error {
	if actor.IsAdmin() {
		return nil
	}
	switch next {
	case models.BookingStatusConfirmed, models.BookingStatusCompleted:
		if booking.ProviderID != actor.UserID {
			return common.NewForbiddenError("only the service provider may " + verbFor(next) + " a booking")
		}
	case models.BookingStatusCancelled:
		if booking.TouristID != actor.UserID && booking.ProviderID != actor.UserID {
			return common.NewForbiddenError("only the tourist or provider may cancel a booking")
		}
	}
	return nil
}

func verbFor(status models.BookingStatus) string {
	if status == models.BookingStatusConfirmed {
		return "confirm"
	}
	return "complete"
}
