package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/lankago/tour-marketplace/pkg/common"
	"github.com/lankago/tour-marketplace/pkg/middleware"
	"github.com/lankago/tour-marketplace/pkg/models"
	"golang.org/x/crypto/bcrypt"
)

// Service handles authentication business logic
type Service struct {
	repo      RepositoryInterface
	jwtSecret string
	jwtExpiry int
}

// NewService creates a new auth service
func NewService(repo RepositoryInterface, jwtSecret string, jwtExpiry int) *Service {
	return &Service{
		repo:      repo,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
	}
}

// Register registers a new tourist account
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	existingUser, _ := s.repo.GetUserByEmail(ctx, req.Email)
	if existingUser != nil {
		return nil, common.NewConflictError("user with this email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.NewInternalServerError("failed to hash password")
	}

	now := time.Now()
	user := &models.User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hashedPassword),
		Role:         models.RoleTourist,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, common.NewInternalServerError("failed to create user")
	}

	token, expiresAt, err := s.generateToken(user)
	if err != nil {
		return nil, common.NewInternalServerError("failed to generate token")
	}

	user.PasswordHash = ""
	return &AuthResponse{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// Login authenticates a user and issues a JWT
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, common.NewUnauthorizedError("invalid email or password")
	}

	if !user.IsActive {
		return nil, common.NewForbiddenError("account is deactivated")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, common.NewUnauthorizedError("invalid email or password")
	}

	token, expiresAt, err := s.generateToken(user)
	if err != nil {
		return nil, common.NewInternalServerError("failed to generate token")
	}

	user.PasswordHash = ""
	return &AuthResponse{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// GetProfile returns the authenticated user's account
func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, common.NewNotFoundError("user not found", nil)
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *Service) generateToken(user *models.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(time.Duration(s.jwtExpiry) * time.Hour)

	claims := &middleware.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   user.ID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}
