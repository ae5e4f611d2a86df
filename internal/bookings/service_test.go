package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lankago/tour-marketplace/pkg/common"
	"github.com/lankago/tour-marketplace/pkg/config"
	"github.com/lankago/tour-marketplace/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// MOCK IMPLEMENTATIONS
// ============================================================================

// MockRepository implements RepositoryInterface for testing
type MockRepository struct {
	CreateBookingFunc           func(ctx context.Context, booking *models.Booking) error
	GetBookingByIDFunc          func(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	ListBookingsByTouristFunc   func(ctx context.Context, touristID uuid.UUID, limit, offset int) ([]models.Booking, int64, error)
	ListBookingsForProviderFunc func(ctx context.Context, providerID uuid.UUID, limit, offset int) ([]models.Booking, int64, error)
	UpdateStatusFunc            func(ctx context.Context, booking *models.Booking) error
	CompleteBookingFunc         func(ctx context.Context, booking *models.Booking, grant *models.ReviewEligibility) error
	ResolveServiceFunc          func(ctx context.Context, ref models.ServiceRef) (*ServiceSummary, error)
}

func (m *MockRepository) CreateBooking(ctx context.Context, booking *models.Booking) error {
	if m.CreateBookingFunc != nil {
		return m.CreateBookingFunc(ctx, booking)
	}
	return nil
}

func (m *MockRepository) GetBookingByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	if m.GetBookingByIDFunc != nil {
		return m.GetBookingByIDFunc(ctx, id)
	}
	return nil, pgx.ErrNoRows
}

func (m *MockRepository) ListBookingsByTourist(ctx context.Context, touristID uuid.UUID, limit, offset int) ([]models.Booking, int64, error) {
	if m.ListBookingsByTouristFunc != nil {
		return m.ListBookingsByTouristFunc(ctx, touristID, limit, offset)
	}
	return nil, 0, nil
}

func (m *MockRepository) ListBookingsForProvider(ctx context.Context, providerID uuid.UUID, limit, offset int) ([]models.Booking, int64, error) {
	if m.ListBookingsForProviderFunc != nil {
		return m.ListBookingsForProviderFunc(ctx, providerID, limit, offset)
	}
	return nil, 0, nil
}

func (m *MockRepository) UpdateStatus(ctx context.Context, booking *models.Booking) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, booking)
	}
	return nil
}

func (m *MockRepository) CompleteBooking(ctx context.Context, booking *models.Booking, grant *models.ReviewEligibility) error {
	if m.CompleteBookingFunc != nil {
		return m.CompleteBookingFunc(ctx, booking, grant)
	}
	return nil
}

func (m *MockRepository) ResolveService(ctx context.Context, ref models.ServiceRef) (*ServiceSummary, error) {
	if m.ResolveServiceFunc != nil {
		return m.ResolveServiceFunc(ctx, ref)
	}
	return nil, pgx.ErrNoRows
}

func testConfig() config.BookingConfig {
	return config.BookingConfig{
		MaxPartySize:          50,
		EligibilityWindowDays: 30,
		MaxDurationHours:      24,
	}
}

func validCreateRequest(serviceID uuid.UUID) *CreateBookingRequest {
	start := time.Now().Add(48 * time.Hour)
	return &CreateBookingRequest{
		ServiceType:  "guide",
		ServiceID:    serviceID,
		StartTime:    start,
		EndTime:      start.Add(8 * time.Hour),
		PartySize:    4,
		ContactName:  "Amara Silva",
		ContactEmail: "amara@example.com",
		ContactPhone: "+94 71 555 0199",
		TotalPrice:   200,
	}
}

func bookingInState(status models.BookingStatus, touristID, providerID uuid.UUID) *models.Booking {
	now := time.Now()
	b := &models.Booking{
		ID:          uuid.New(),
		TouristID:   touristID,
		ServiceType: models.ServiceTypeGuide,
		ServiceID:   uuid.New(),
		ProviderID:  providerID,
		StartTime:   now.Add(-10 * time.Hour),
		EndTime:     now.Add(-2 * time.Hour),
		PartySize:   2,
		Status:      status,
		CreatedAt:   now.Add(-72 * time.Hour),
		UpdatedAt:   now,
	}
	if status == models.BookingStatusCompleted {
		completed := now.Add(-time.Hour)
		b.CompletedAt = &completed
	}
	return b
}

func assertErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *common.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, code, appErr.ErrorCode)
}

// ============================================================================
// CREATE TESTS
// ============================================================================

func TestCreate_Success(t *testing.T) {
	providerID := uuid.New()
	serviceID := uuid.New()
	var created *models.Booking
	repo := &MockRepository{
		ResolveServiceFunc: func(ctx context.Context, ref models.ServiceRef) (*ServiceSummary, error) {
			assert.Equal(t, serviceID, ref.ID)
			return &ServiceSummary{ProviderID: providerID, IsAvailable: true}, nil
		},
		CreateBookingFunc: func(ctx context.Context, booking *models.Booking) error {
			created = booking
			return nil
		},
	}
	svc := NewService(repo, testConfig())

	touristID := uuid.New()
	booking, err := svc.Create(context.Background(), touristID, validCreateRequest(serviceID))

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, models.BookingStatusPending, booking.Status)
	assert.Equal(t, providerID, booking.ProviderID)
	assert.Equal(t, touristID, booking.TouristID)
	assert.False(t, booking.Reviewed)
}

func TestCreate_EndBeforeStart(t *testing.T) {
	svc := NewService(&MockRepository{}, testConfig())

	req := validCreateRequest(uuid.New())
	req.EndTime = req.StartTime.Add(-time.Hour)

	_, err := svc.Create(context.Background(), uuid.New(), req)
	assertErrorCode(t, err, common.CodeValidation)
}

func TestCreate_StartInPast(t *testing.T) {
	svc := NewService(&MockRepository{}, testConfig())

	req := validCreateRequest(uuid.New())
	req.StartTime = time.Now().Add(-24 * time.Hour)
	req.EndTime = req.StartTime.Add(4 * time.Hour)

	_, err := svc.Create(context.Background(), uuid.New(), req)
	assertErrorCode(t, err, common.CodeValidation)
}

func TestCreate_PartySizeOutOfRange(t *testing.T) {
	svc := NewService(&MockRepository{}, testConfig())

	req := validCreateRequest(uuid.New())
	req.PartySize = 51

	_, err := svc.Create(context.Background(), uuid.New(), req)
	assertErrorCode(t, err, common.CodeValidation)
}

func TestCreate_ServiceNotFound(t *testing.T) {
	svc := NewService(&MockRepository{}, testConfig())

	_, err := svc.Create(context.Background(), uuid.New(), validCreateRequest(uuid.New()))
	assertErrorCode(t, err, common.CodeNotFound)
}

func TestCreate_ServiceUnavailable(t *testing.T) {
	repo := &MockRepository{
		ResolveServiceFunc: func(ctx context.Context, ref models.ServiceRef) (*ServiceSummary, error) {
			return &ServiceSummary{ProviderID: uuid.New(), IsAvailable: false}, nil
		},
	}
	svc := NewService(repo, testConfig())

	_, err := svc.Create(context.Background(), uuid.New(), validCreateRequest(uuid.New()))
	assertErrorCode(t, err, common.CodeConflict)
}

func TestCreate_CannotBookOwnService(t *testing.T) {
	providerID := uuid.New()
	repo := &MockRepository{
		ResolveServiceFunc: func(ctx context.Context, ref models.ServiceRef) (*ServiceSummary, error) {
			return &ServiceSummary{ProviderID: providerID, IsAvailable: true}, nil
		},
	}
	svc := NewService(repo, testConfig())

	_, err := svc.Create(context.Background(), providerID, validCreateRequest(uuid.New()))
	assertErrorCode(t, err, common.CodeValidation)
}

// ============================================================================
// STATE MACHINE TESTS
// ============================================================================

func TestTransition_StateMachine(t *testing.T) {
	touristID := uuid.New()
	providerID := uuid.New()
	provider := models.Actor{UserID: providerID, Role: models.RoleGuide}

	tests := []struct {
		name     string
		from     models.BookingStatus
		to       models.BookingStatus
		wantCode string
	}{
		{"pending to confirmed", models.BookingStatusPending, models.BookingStatusConfirmed, ""},
		{"pending to cancelled", models.BookingStatusPending, models.BookingStatusCancelled, ""},
		{"confirmed to cancelled", models.BookingStatusConfirmed, models.BookingStatusCancelled, ""},
		{"pending to completed", models.BookingStatusPending, models.BookingStatusCompleted, common.CodeInvalidTransition},
		{"cancelled to confirmed", models.BookingStatusCancelled, models.BookingStatusConfirmed, common.CodeInvalidTransition},
		{"completed to cancelled", models.BookingStatusCompleted, models.BookingStatusCancelled, common.CodeInvalidTransition},
		{"confirmed to pending", models.BookingStatusConfirmed, models.BookingStatusPending, common.CodeInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := bookingInState(tt.from, touristID, providerID)
			repo := &MockRepository{
				GetBookingByIDFunc: func(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
					return booking, nil
				},
			}
			svc := NewService(repo, testConfig())

			result, err := svc.Transition(context.Background(), booking.ID, tt.to, provider)

			if tt.wantCode == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.to, result.Status)
			} else {
				assertErrorCode(t, err, tt.wantCode)
			}
		})
	}
}

func TestTransition_ConfirmRequiresProvider(t *testing.T) {
	touristID := uuid.New()
	providerID := uuid.New()
	booking := bookingInState(models.BookingStatusPending, touristID, providerID)
	repo := &MockRepository{
		GetBookingByIDFunc: func(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
			return booking, nil
		},
	}
	svc := NewService(repo, testConfig())

	tourist := models.Actor{UserID: touristID, Role: models.RoleTourist}
	_, err := svc.Transition(context.Background(), booking.ID, models.BookingStatusConfirmed, tourist)
	assertErrorCode(t, err, common.CodeForbidden)
}

func TestTransition_TouristMayCancel(t *testing.T) {
	touristID := uuid.New()
	booking := bookingInState(models.BookingStatusConfirmed, touristID, uuid.New())
	repo := &MockRepository{
		GetBookingByIDFunc: func(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
			return booking, nil
		},
	}
	svc := NewService(repo, testConfig())

	tourist := models.Actor{UserID: touristID, Role: models.RoleTourist}
	result, err := svc.Transition(context.Background(), booking.ID, models.BookingStatusCancelled, tourist)

	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, result.Status)
	assert.NotNil(t, result.CancelledAt)
}

func TestTransition_StrangerMayNotCancel(t *testing.T) {
	booking := bookingInState(models.BookingStatusPending, uuid.New(), uuid.New())
	repo := &MockRepository{
		GetBookingByIDFunc: func(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
			return booking, nil
		},
	}
	svc := NewService(repo, testConfig())

	stranger := models.Actor{UserID: uuid.New(), Role: models.RoleTourist}
	_, err := svc.Transition(context.Background(), booking.ID, models.BookingStatusCancelled, stranger)
	assertErrorCode(t, err, common.CodeForbidden)
}

func TestTransition_AdminMayConfirm(t *testing.T) {
	booking := bookingInState(models.BookingStatusPending, uuid.New(), uuid.New())
	repo := &MockRepository{
		GetBookingByIDFunc: func(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
			return booking, nil
		},
	}
	svc := NewService(repo, testConfig())

	admin := models.Actor{UserID: uuid.New(), Role: models.RoleAdmin}
	result, err := svc.Transition(context.Background(), booking.ID, models.BookingStatusConfirmed, admin)

	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, result.Status)
	assert.NotNil(t, result.ConfirmedAt)
}

func TestTransition_NotFound(t *testing.T) {
	svc := NewService(&MockRepository{}, testConfig())

	admin := models.Actor{UserID: uuid.New(), Role: models.RoleAdmin}
	_, err := svc.Transition(context.Background(), uuid.New(), models.BookingStatusConfirmed, admin)
	assertErrorCode(t, err, common.CodeNotFound)
}

func TestTransition_NotFoundBeforeEdgeChecks(t *testing.T) {
	svc := NewService(&MockRepository{}, testConfig())
	admin := models.Actor{UserID: uuid.New(), Role: models.RoleAdmin}

	// a missing booking reports NOT_FOUND even when the requested edge
	// would itself be rejected
	for _, next := range []models.BookingStatus{models.BookingStatusPending, "teleported"} {
		_, err := svc.Transition(context.Background(), uuid.New(), next, admin)
		assertErrorCode(t, err, common.CodeNotFound)
	}
}

// ============================================================================
// COMPLETE TESTS
// ============================================================================

func TestComplete_GrantsEligibility(t *testing.T) {
	touristID := uuid.New()
	providerID := uuid.New()
	booking := bookingInState(models.BookingStatusConfirmed, touristID, providerID)

	var savedGrant *models.ReviewEligibility
	repo := &MockRepository{
		GetBookingByIDFunc: func(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
			return booking, nil
		},
		CompleteBookingFunc: func(ctx context.Context, b *models.Booking, grant *models.ReviewEligibility) error {
			savedGrant = grant
			return nil
		},
	}
	svc := NewService(repo, testConfig())

	provider := models.Actor{UserID: providerID, Role: models.RoleGuide}
	result, grant, err := svc.Complete(context.Background(), booking.ID, provider)

	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCompleted, result.Status)
	assert.NotNil(t, result.CompletedAt)

	require.NotNil(t, savedGrant)
	assert.Equal(t, booking.ID, grant.BookingID)
	assert.Equal(t, touristID, grant.TouristID)
	assert.Equal(t, booking.ServiceType, grant.TargetType)
	assert.Equal(t, booking.ServiceID, grant.TargetID)
	assert.False(t, grant.ReviewSubmitted)

	// 30 day window
	expectedExpiry := time.Now().AddDate(0, 0, 30)
	assert.WithinDuration(t, expectedExpiry, grant.ExpiresAt, time.Minute)
}

func TestComplete_AlreadyCompleted(t *testing.T) {
	providerID := uuid.New()
	booking := bookingInState(models.BookingStatusCompleted, uuid.New(), providerID)
	repo := &MockRepository{
		GetBookingByIDFunc: func(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
			return booking, nil
		},
	}
	svc := NewService(repo, testConfig())

	provider := models.Actor{UserID: providerID, Role: models.RoleGuide}
	_, _, err := svc.Complete(context.Background(), booking.ID, provider)
	assertErrorCode(t, err, common.CodeAlreadyCompleted)
}

func TestComplete_PendingBookingRejected(t *testing.T) {
	providerID := uuid.New()
	booking := bookingInState(models.BookingStatusPending, uuid.New(), providerID)
	repo := &MockRepository{
		GetBookingByIDFunc: func(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
			return booking, nil
		},
	}
	svc := NewService(repo, testConfig())

	provider := models.Actor{UserID: providerID, Role: models.RoleGuide}
	_, _, err := svc.Complete(context.Background(), booking.ID, provider)
	assertErrorCode(t, err, common.CodeInvalidTransition)
}

func TestComplete_TouristMayNotComplete(t *testing.T) {
	touristID := uuid.New()
	booking := bookingInState(models.BookingStatusConfirmed, touristID, uuid.New())
	repo := &MockRepository{
		GetBookingByIDFunc: func(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
			return booking, nil
		},
	}
	svc := NewService(repo, testConfig())

	tourist := models.Actor{UserID: touristID, Role: models.RoleTourist}
	_, _, err := svc.Complete(context.Background(), booking.ID, tourist)
	assertErrorCode(t, err, common.CodeForbidden)
}

// ============================================================================
// READ TESTS
// ============================================================================

func TestGet_AccessControl(t *testing.T) {
	touristID := uuid.New()
	providerID := uuid.New()
	booking := bookingInState(models.BookingStatusConfirmed, touristID, providerID)
	repo := &MockRepository{
		GetBookingByIDFunc: func(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
			return booking, nil
		},
	}
	svc := NewService(repo, testConfig())

	_, err := svc.Get(context.Background(), booking.ID, models.Actor{UserID: touristID, Role: models.RoleTourist})
	assert.NoError(t, err)

	_, err = svc.Get(context.Background(), booking.ID, models.Actor{UserID: providerID, Role: models.RoleGuide})
	assert.NoError(t, err)

	_, err = svc.Get(context.Background(), booking.ID, models.Actor{UserID: uuid.New(), Role: models.RoleAdmin})
	assert.NoError(t, err)

	_, err = svc.Get(context.Background(), booking.ID, models.Actor{UserID: uuid.New(), Role: models.RoleTourist})
	assertErrorCode(t, err, common.CodeForbidden)
}
