package models

import (
	"time"

	"gorm.io/gorm"
)

type TimeEntry struct {
	gorm.Model

	ProjectID   uint      `gorm:"not null;index"`
	UserID      uint      `gorm:"not null;index"`
	Date        time.Time `gorm:"not null"`
	Hours       float64   `gorm:"not null"` // always > 0, validated at the handler
	Description string

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
