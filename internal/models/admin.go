package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultAdminRole is assigned when registration does not name a role.
const DefaultAdminRole = "Admin"

// Admin is an operator allowed to manage the system.
type Admin struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	IsActive     bool       `json:"isActive"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// Summary returns the public view of the admin.
func (a Admin) Summary() AdminSummary {
	return AdminSummary{ID: a.ID, Name: a.Name, Email: a.Email, Role: a.Role}
}

// AdminSummary is the public identity returned by login and registration.
type AdminSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

// LoginInput carries admin credentials.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterInput is the payload for creating an admin.
type RegisterInput struct {
	Name     string `json:"name"     validate:"required,notblank"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role"`
}

// PasswordChangeInput is the payload for changing the current admin's password.
type PasswordChangeInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required,min=6,max=72"`
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token string       `json:"token"`
	Admin AdminSummary `json:"admin"`
}
