package models

import (
	"time"

	"gorm.io/gorm"
)

type Invoice struct {
	gorm.Model

	UserID        uint    `gorm:"not null;index"`
	ProjectID     uint    `gorm:"not null;index"`
	InvoiceNumber string  `gorm:"uniqueIndex;not null"`
	Amount        float64 `gorm:"not null"`
	Status        string  `gorm:"not null;default:draft"` // "draft", "sent", "paid", "overdue", "cancelled"
	IssueDate     time.Time
	DueDate       time.Time
	PaidDate      *time.Time // set only while status is "paid"

	// Relationships
	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
