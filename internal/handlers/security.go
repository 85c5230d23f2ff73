package handlers

import (
	"encoding/json"

	"github.com/brightforge-studio/brightforge/db"
	"github.com/brightforge-studio/brightforge/internal/logger"
	"github.com/brightforge-studio/brightforge/internal/models"
	"github.com/brightforge-studio/brightforge/internal/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// logSecurityEvent records a mutating admin action. Best effort: a failed
// write must not fail the action it describes, so errors are only logged.
func logSecurityEvent(ctx *gin.Context, eventType, target string, details map[string]interface{}) {
	actorID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		logger.L.Warn("Security event without authenticated actor", zap.String("event", eventType))
		return
	}

	entry := models.AdminSecurityLog{
		ActorID:   actorID,
		EventType: eventType,
		Target:    target,
		IPAddress: ctx.ClientIP(),
	}

	if details != nil {
		raw, err := json.Marshal(details)
		if err == nil {
			entry.Details = datatypes.JSON(raw)
		}
	}

	if err := db.DB.Create(&entry).Error; err != nil {
		logger.L.Error("Failed to write security log", zap.String("event", eventType), zap.Error(err))
	}
}
