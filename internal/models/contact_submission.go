package models

import "gorm.io/gorm"

type ContactSubmission struct {
	gorm.Model

	Name        string `gorm:"not null"`
	Email       string `gorm:"not null"`
	Message     string `gorm:"type:text"`
	ProjectType string
	Budget      string
	UserID      *uint `gorm:"index"` // nil for anonymous submissions
}
