package models

import (
	"time"

	"gorm.io/gorm"
)

type Milestone struct {
	gorm.Model

	ProjectID      uint   `gorm:"not null;index"`
	Title          string `gorm:"not null"`
	Status         string `gorm:"not null;default:pending"` // "pending", "in_progress", "completed"
	DueDate        *time.Time
	CompletionDate *time.Time // set only while status is "completed"
	HoursLogged    float64    `gorm:"not null;default:0"`

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
