package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lankago/tour-marketplace/pkg/common"
	"github.com/lankago/tour-marketplace/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// ============================================================================
// MOCK IMPLEMENTATIONS
// ============================================================================

// MockRepository implements RepositoryInterface for testing
type MockRepository struct {
	CreateUserFunc     func(ctx context.Context, user *models.User) error
	GetUserByEmailFunc func(ctx context.Context, email string) (*models.User, error)
	GetUserByIDFunc    func(ctx context.Context, id uuid.UUID) (*models.User, error)
}

func (m *MockRepository) CreateUser(ctx context.Context, user *models.User) error {
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(ctx, user)
	}
	return nil
}

func (m *MockRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetUserByEmailFunc != nil {
		return m.GetUserByEmailFunc(ctx, email)
	}
	return nil, pgx.ErrNoRows
}

func (m *MockRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if m.GetUserByIDFunc != nil {
		return m.GetUserByIDFunc(ctx, id)
	}
	return nil, pgx.ErrNoRows
}

func userWithPassword(password string) *models.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return &models.User{
		ID:           uuid.New(),
		Name:         "Nuwan Jayasuriya",
		Email:        "nuwan@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleTourist,
		IsActive:     true,
	}
}

// ============================================================================
// REGISTER TESTS
// ============================================================================

func TestRegister_Success(t *testing.T) {
	var created *models.User
	repo := &MockRepository{
		CreateUserFunc: func(ctx context.Context, user *models.User) error {
			created = user
			return nil
		},
	}
	svc := NewService(repo, "test-secret", 24)

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		Name:     "Nuwan Jayasuriya",
		Email:    "nuwan@example.com",
		Phone:    "+94 71 555 0100",
		Password: "supersecret",
	})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, models.RoleTourist, created.Role)
	assert.True(t, created.IsActive)
	assert.NotEmpty(t, resp.Token)
	assert.Empty(t, resp.User.PasswordHash)

	// stored hash verifies against the plaintext
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("supersecret")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	existing := userWithPassword("whatever")
	repo := &MockRepository{
		GetUserByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return existing, nil
		},
	}
	svc := NewService(repo, "test-secret", 24)

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Name:     "Someone Else",
		Email:    existing.Email,
		Password: "supersecret",
	})

	require.Error(t, err)
	var appErr *common.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, common.CodeConflict, appErr.ErrorCode)
}

// ============================================================================
// LOGIN TESTS
// ============================================================================

func TestLogin_Success(t *testing.T) {
	user := userWithPassword("supersecret")
	repo := &MockRepository{
		GetUserByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
	}
	svc := NewService(repo, "test-secret", 24)

	resp, err := svc.Login(context.Background(), &LoginRequest{
		Email:    user.Email,
		Password: "supersecret",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, user.ID, resp.User.ID)
	assert.Empty(t, resp.User.PasswordHash)
}

func TestLogin_WrongPassword(t *testing.T) {
	user := userWithPassword("supersecret")
	repo := &MockRepository{
		GetUserByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
	}
	svc := NewService(repo, "test-secret", 24)

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    user.Email,
		Password: "wrong",
	})

	require.Error(t, err)
	var appErr *common.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, common.CodeUnauthorized, appErr.ErrorCode)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := NewService(&MockRepository{}, "test-secret", 24)

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "nobody@example.com",
		Password: "supersecret",
	})

	require.Error(t, err)
	var appErr *common.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, common.CodeUnauthorized, appErr.ErrorCode)
}

func TestLogin_DeactivatedAccount(t *testing.T) {
	user := userWithPassword("supersecret")
	user.IsActive = false
	repo := &MockRepository{
		GetUserByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
	}
	svc := NewService(repo, "test-secret", 24)

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    user.Email,
		Password: "supersecret",
	})

	require.Error(t, err)
	var appErr *common.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, common.CodeForbidden, appErr.ErrorCode)
}

// ============================================================================
// PROFILE TESTS
// ============================================================================

func TestGetProfile_StripsPasswordHash(t *testing.T) {
	user := userWithPassword("supersecret")
	repo := &MockRepository{
		GetUserByIDFunc: func(ctx context.Context, id uuid.UUID) (*models.User, error) {
			return user, nil
		},
	}
	svc := NewService(repo, "test-secret", 24)

	profile, err := svc.GetProfile(context.Background(), user.ID)

	require.NoError(t, err)
	assert.Empty(t, profile.PasswordHash)
}

func TestGetProfile_NotFound(t *testing.T) {
	svc := NewService(&MockRepository{}, "test-secret", 24)

	_, err := svc.GetProfile(context.Background(), uuid.New())

	require.Error(t, err)
	var appErr *common.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, common.CodeNotFound, appErr.ErrorCode)
}
