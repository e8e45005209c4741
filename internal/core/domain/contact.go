package domain

import (
	"errors"
	"time"
)

var (
	ErrInvalidEmail   = errors.New("invalid email address")
	ErrDuplicateEmail = errors.New("email already on the whitelist")
)

// WhitelistContact represents an early-access signup record.
type WhitelistContact struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	Organization string    `json:"organization,omitempty"`
	SignupDate   time.Time `json:"signup_date"`
}

// NewWhitelistContact creates a validated signup record.
func NewWhitelistContact(email, name, organization string) (*WhitelistContact, error) {
	if !IsValidEmail(email) {
		return nil, ErrInvalidEmail
	}

	return &WhitelistContact{
		Email:        email,
		Name:         name,
		Organization: organization,
		SignupDate:   time.Now().UTC(),
	}, nil
}
