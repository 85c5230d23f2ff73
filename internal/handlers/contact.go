package handlers

import (
	"net/http"

	"github.com/brightforge-studio/brightforge/db"
	"github.com/brightforge-studio/brightforge/internal/logger"
	"github.com/brightforge-studio/brightforge/internal/models"
	"github.com/brightforge-studio/brightforge/internal/services"
	"github.com/brightforge-studio/brightforge/internal/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ContactRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required"`
	Message     string `json:"message" binding:"required"`
	ProjectType string `json:"project_type"`
	Budget      string `json:"budget"`
}

// CreateContactSubmission accepts anonymous submissions; when a session is
// present the row is linked to the user.
func CreateContactSubmission(ctx *gin.Context) {
	var req ContactRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	// Reject malformed addresses before any write happens.
	if !utils.IsValidEmail(req.Email) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email address"})
		return
	}

	submission := models.ContactSubmission{
		Name:        req.Name,
		Email:       utils.SanitizeEmail(req.Email),
		Message:     req.Message,
		ProjectType: req.ProjectType,
		Budget:      req.Budget,
	}

	if userID, err := utils.GetCurrentUserID(ctx); err == nil {
		submission.UserID = &userID
	}

	if err := db.DB.Create(&submission).Error; err != nil {
		logger.L.Error("Failed to create contact submission", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit message"})
		return
	}

	// Owner notification is best effort.
	if err := services.SendLeadNotification(submission); err != nil {
		logger.L.Warn("Failed to send lead notification", zap.Error(err))
	}

	ctx.JSON(http.StatusCreated, gin.H{"message": "Thanks for reaching out! We'll get back to you shortly."})
}
