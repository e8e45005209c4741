package domain

import "testing"

func TestIsValidContractAddress(t *testing.T) {
	tests := []struct {
		addr  string
		valid bool
	}{
		{"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", true},
		{"0x0000000000000000000000000000000000000000", true},
		{"5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", false}, // missing prefix
		{"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeA", false}, // too short
		{"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAedFF", false},
		{"0xZZZeb6053F3E94C9b9A09f33669435E7Ef1BeAed", false},
		{"", false},
	}

	for _, tt := range tests {
		if IsValidContractAddress(tt.addr) != tt.valid {
			t.Errorf("IsValidContractAddress(%s) = %v; want %v", tt.addr, !tt.valid, tt.valid)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"researcher@example.com", true},
		{"a.b+tag@sub.domain.io", true},
		{"no-at-sign", false},
		{"two@@example.com", false},
		{"@example.com", false},
		{"user@", false},
		{"user@nodot", false},
		{"", false},
	}

	for _, tt := range tests {
		if IsValidEmail(tt.email) != tt.valid {
			t.Errorf("IsValidEmail(%s) = %v; want %v", tt.email, !tt.valid, tt.valid)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  User@Example.COM "); got != "user@example.com" {
		t.Errorf("NormalizeEmail = %q", got)
	}
}
