package utils

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

const maxEmailLength = 254

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// SanitizeEmail trims and lowercases; returns empty for over-long input.
func SanitizeEmail(email string) string {
	s := strings.TrimSpace(strings.ToLower(email))
	if len(s) > maxEmailLength {
		return ""
	}
	return s
}

func IsValidEmail(email string) bool {
	email = SanitizeEmail(email)
	return email != "" && emailPattern.MatchString(email)
}

// ValidatePassword enforces the profile-update strength rules: at least 8
// characters containing both a letter and a digit.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}

	var hasLetter, hasDigit bool

	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasLetter || !hasDigit {
		return errors.New("password must contain both letters and digits")
	}

	return nil
}
