package models

import (
	"time"

	"github.com/google/uuid"
)

// UserRole represents a user's role in the marketplace
type UserRole string

const (
	RoleTourist      UserRole = "tourist"
	RoleGuide        UserRole = "guide"
	RoleVehicleOwner UserRole = "vehicle-owner"
	RoleAdmin        UserRole = "admin"
)

// User represents a marketplace account. Everyone registers as a tourist;
// the role is promoted exactly once when a guide or vehicle profile is created.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	Phone        string    `json:"phone" db:"phone"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         UserRole  `json:"role" db:"role"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Actor is the authenticated identity threaded through every core operation
type Actor struct {
	UserID uuid.UUID
	Role   UserRole
}

// IsAdmin reports whether the actor holds the admin role
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
