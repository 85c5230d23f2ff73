package models

import (
	"time"

	"gorm.io/gorm"
)

type Project struct {
	gorm.Model

	UserID      uint   `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Description string
	Status      string     `gorm:"not null;default:planning"` // "planning", "in_progress", "review", "completed", "on_hold"
	StartDate   *time.Time
	LastUpdated time.Time

	// Relationships
	User        User                `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Milestones  []Milestone         `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	TimeEntries []TimeEntry         `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Invoices    []Invoice           `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Assignments []ProjectAssignment `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
