package models

import "gorm.io/gorm"

// UserRole is a separate lookup table rather than a column on users.
// Absence of a row means the plain "user" role; role changes are performed
// as delete-then-insert, never as an update.
type UserRole struct {
	gorm.Model

	UserID uint   `gorm:"not null;index"`
	Role   string `gorm:"not null"` // "admin", "user"
}
