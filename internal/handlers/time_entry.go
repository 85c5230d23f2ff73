package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/brightforge-studio/brightforge/db"
	"github.com/brightforge-studio/brightforge/internal/logger"
	"github.com/brightforge-studio/brightforge/internal/models"
	"github.com/brightforge-studio/brightforge/internal/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CreateTimeEntryRequest struct {
	Date        time.Time `json:"date" binding:"required"`
	Hours       float64   `json:"hours" binding:"required"`
	Description string    `json:"description"`
}

func CreateTimeEntry(ctx *gin.Context) {
	project, ok := ownedProject(ctx)

	if !ok {
		return
	}

	var req CreateTimeEntryRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Hours <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Hours must be greater than zero"})
		return
	}

	entry := models.TimeEntry{
		ProjectID:   project.ID,
		UserID:      project.UserID,
		Date:        req.Date,
		Hours:       req.Hours,
		Description: req.Description,
	}

	if err := db.DB.Create(&entry).Error; err != nil {
		logger.L.Error("Failed to create time entry", zap.Uint("project_id", project.ID), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create time entry"})
		return
	}

	ctx.JSON(http.StatusCreated, entry)
}

func ListTimeEntries(ctx *gin.Context) {
	project, ok := ownedProject(ctx)

	if !ok {
		return
	}

	var entries []models.TimeEntry

	if err := db.DB.Where("project_id = ?", project.ID).Order("date DESC").Find(&entries).Error; err != nil {
		logger.L.Error("Failed to list time entries", zap.Uint("project_id", project.ID), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve time entries"})
		return
	}

	if entries == nil {
		entries = []models.TimeEntry{}
	}

	ctx.JSON(http.StatusOK, entries)
}

func DeleteTimeEntry(ctx *gin.Context) {
	project, ok := ownedProject(ctx)

	if !ok {
		return
	}

	entryID, err := utils.GetIDParam(ctx, "entry_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var entry models.TimeEntry

	if err := db.DB.Where("id = ? AND project_id = ?", entryID, project.ID).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Time entry not found"})
		} else {
			logger.L.Error("Failed to fetch time entry", zap.Uint("entry_id", entryID), zap.Error(err))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve time entry"})
		}
		return
	}

	if err := db.DB.Delete(&entry).Error; err != nil {
		logger.L.Error("Failed to delete time entry", zap.Uint("entry_id", entryID), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete time entry"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
