package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeEmail(t *testing.T) {
	assert.Equal(t, "jane@example.com", SanitizeEmail("  Jane@Example.COM "))
	assert.Equal(t, "", SanitizeEmail(strings.Repeat("a", 250)+"@example.com"))
}

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"jane@example.com", true},
		{"JANE@EXAMPLE.COM", true},
		{"jane+tag@sub.example.co", true},
		{"", false},
		{"not-an-email", false},
		{"missing@tld", false},
		{"spaces in@example.com", false},
		{"@example.com", false},
		{"jane@", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.valid, IsValidEmail(tt.email), "email %q", tt.email)
	}
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("abcdef12"))
	assert.Error(t, ValidatePassword("short1"))
	assert.Error(t, ValidatePassword("allletters"))
	assert.Error(t, ValidatePassword("12345678"))
}
