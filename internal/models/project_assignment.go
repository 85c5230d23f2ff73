package models

import "gorm.io/gorm"

type ProjectAssignment struct {
	gorm.Model

	ProjectID  uint `gorm:"not null;uniqueIndex:idx_project_user_assignment"`
	UserID     uint `gorm:"not null;uniqueIndex:idx_project_user_assignment"`
	AssignedBy uint `gorm:"not null"`

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
