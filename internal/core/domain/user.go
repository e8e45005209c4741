package domain

import (
	"errors"
	"time"
)

// Role defines the authorization level of a user.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleAuditor Role = "auditor"
	RoleViewer  Role = "viewer"
)

var (
	ErrInvalidRole   = errors.New("invalid user role")
	ErrEmptyUsername = errors.New("username cannot be empty")
	ErrUserNotFound  = errors.New("user not found")
)

// IsValid checks if the role is a recognized system role.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleAuditor, RoleViewer:
		return true
	}
	return false
}

// User represents an authenticated user in the system.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never expose hash in JSON
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	LastLogin    time.Time `json:"last_login"`
}

// NewUser creates a new validated user instance.
func NewUser(id, username string, role Role) (*User, error) {
	if username == "" {
		return nil, ErrEmptyUsername
	}
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	return &User{
		ID:        id,
		Username:  username,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// IsAdmin returns true if the user has administrative privileges.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UpdateLastLogin refreshes the last login timestamp.
func (u *User) UpdateLastLogin() {
	u.LastLogin = time.Now().UTC()
}

// Credentials represents the login request body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
