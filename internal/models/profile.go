package models

import "gorm.io/gorm"

// Profile holds the public-facing identity of a user. Exactly one row per
// registered user, created together with the account.
type Profile struct {
	gorm.Model

	UserID   uint   `gorm:"not null;uniqueIndex"`
	FullName string `gorm:"not null"`
	Username string `gorm:"uniqueIndex;not null"`
}
