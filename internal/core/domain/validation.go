package domain

import (
	"regexp"
	"strings"
)

// Validation Helpers

var (
	addressRegex = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)
	emailRegex   = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// IsValidContractAddress checks for a 0x-prefixed 20-byte hex address.
func IsValidContractAddress(addr string) bool {
	return addressRegex.MatchString(addr)
}

// IsValidEmail performs a shape check on an email address.
func IsValidEmail(email string) bool {
	if len(email) == 0 || len(email) > 254 {
		return false
	}
	return emailRegex.MatchString(email)
}

// NormalizeEmail lowercases and trims an email address for storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
