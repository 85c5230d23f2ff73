package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AdminSecurityLog records every mutating admin action (role changes,
// deletions, explicit log_security_event calls).
type AdminSecurityLog struct {
	gorm.Model

	ActorID   uint   `gorm:"not null;index"`
	EventType string `gorm:"not null"`
	Target    string
	Details   datatypes.JSON `gorm:"type:jsonb"`
	IPAddress string
}
