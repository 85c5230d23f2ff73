package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/brightforge-studio/brightforge/db"
	"github.com/brightforge-studio/brightforge/internal/leadcapture"
	"github.com/brightforge-studio/brightforge/internal/logger"
	"github.com/brightforge-studio/brightforge/internal/models"
	"github.com/brightforge-studio/brightforge/internal/services"
	"github.com/brightforge-studio/brightforge/internal/types"
	"github.com/brightforge-studio/brightforge/internal/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LeadCapture is swapped for a redis-backed coordinator in main when
// configured.
var LeadCapture = leadcapture.NewCoordinator(leadcapture.NewMemorySessionStore())

type LeadCaptureEventRequest struct {
	SessionID     string  `json:"session_id" binding:"required"`
	Page          string  `json:"page" binding:"required"`
	Variant       string  `json:"variant" binding:"required"`
	Signal        string  `json:"signal" binding:"required"`
	ScrollPercent float64 `json:"scroll_percent"`
}

type LeadCaptureDismissRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

type LeadCaptureSubmitRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required"`
}

// LeadCaptureEvent runs one trigger signal through the session's state
// machine and tells the widget whether to show the popup.
func LeadCaptureEvent(ctx *gin.Context) {
	var req LeadCaptureEventRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	_, authErr := utils.GetCurrentUserID(ctx)
	authenticated := authErr == nil

	show, err := LeadCapture.HandleSignal(
		ctx.Request.Context(),
		req.SessionID,
		req.Page,
		req.Variant,
		authenticated,
		leadcapture.Signal(req.Signal),
		req.ScrollPercent,
	)

	if err != nil {
		logger.L.Error("Failed to handle lead capture signal", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process event"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"show": show})
}

func LeadCaptureDismiss(ctx *gin.Context) {
	var req LeadCaptureDismissRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	LeadCapture.Dismiss(req.SessionID)

	ctx.JSON(http.StatusOK, gin.H{"message": "Dismissed"})
}

// LeadCaptureSubmit stores the lead and responds with the guide download.
func LeadCaptureSubmit(ctx *gin.Context) {
	var req LeadCaptureSubmitRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if !utils.IsValidEmail(req.Email) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email address"})
		return
	}

	submission := models.ContactSubmission{
		Name:        req.Name,
		Email:       utils.SanitizeEmail(req.Email),
		Message:     "Requested the website guide",
		ProjectType: types.LeadMagnetProjectType,
	}

	if err := db.DB.Create(&submission).Error; err != nil {
		logger.L.Error("Failed to store lead submission", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit"})
		return
	}

	LeadCapture.Dismiss(req.SessionID)

	if err := services.SendLeadNotification(submission); err != nil {
		logger.L.Warn("Failed to send lead notification", zap.Error(err))
	}

	ctx.FileAttachment(guidePath(), types.GuideFileName)
}

func guidePath() string {
	if path := os.Getenv("GUIDE_PATH"); path != "" {
		return path
	}

	return filepath.Join("assets", types.GuideFileName)
}
