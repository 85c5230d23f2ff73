package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/brightforge-studio/brightforge/db"
	"github.com/brightforge-studio/brightforge/internal/logger"
	"github.com/brightforge-studio/brightforge/internal/models"
	"github.com/brightforge-studio/brightforge/internal/types"
	"github.com/brightforge-studio/brightforge/internal/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CreateMilestoneRequest struct {
	Title   string     `json:"title" binding:"required"`
	Status  string     `json:"status"`
	DueDate *time.Time `json:"due_date"`
}

type UpdateMilestoneRequest struct {
	Title   string     `json:"title" binding:"required"`
	Status  string     `json:"status" binding:"required"`
	DueDate *time.Time `json:"due_date"`
}

func CreateMilestone(ctx *gin.Context) {
	project, ok := ownedProject(ctx)

	if !ok {
		return
	}

	var req CreateMilestoneRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	status := req.Status
	if status == "" {
		status = "pending"
	}

	if !types.ValidMilestoneStatus(status) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid milestone status"})
		return
	}

	milestone := models.Milestone{
		ProjectID: project.ID,
		Title:     req.Title,
		Status:    status,
		DueDate:   req.DueDate,
	}

	if status == "completed" {
		now := time.Now()
		milestone.CompletionDate = &now
	}

	if err := db.DB.Create(&milestone).Error; err != nil {
		logger.L.Error("Failed to create milestone", zap.Uint("project_id", project.ID), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create milestone"})
		return
	}

	ctx.JSON(http.StatusCreated, milestone)
}

func ListMilestones(ctx *gin.Context) {
	project, ok := ownedProject(ctx)

	if !ok {
		return
	}

	var milestones []models.Milestone

	if err := db.DB.Where("project_id = ?", project.ID).Order("due_date ASC").Find(&milestones).Error; err != nil {
		logger.L.Error("Failed to list milestones", zap.Uint("project_id", project.ID), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve milestones"})
		return
	}

	if milestones == nil {
		milestones = []models.Milestone{}
	}

	ctx.JSON(http.StatusOK, milestones)
}

func UpdateMilestone(ctx *gin.Context) {
	project, ok := ownedProject(ctx)

	if !ok {
		return
	}

	milestoneID, err := utils.GetIDParam(ctx, "milestone_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req UpdateMilestoneRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if !types.ValidMilestoneStatus(req.Status) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid milestone status"})
		return
	}

	var milestone models.Milestone

	if err := db.DB.Where("id = ? AND project_id = ?", milestoneID, project.ID).First(&milestone).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Milestone not found"})
		} else {
			logger.L.Error("Failed to fetch milestone", zap.Uint("milestone_id", milestoneID), zap.Error(err))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve milestone"})
		}
		return
	}

	milestone.Title = req.Title
	milestone.DueDate = req.DueDate

	// completion_date is tied to the status: set on the transition into
	// "completed", cleared on any transition out of it.
	if req.Status == "completed" && milestone.Status != "completed" {
		now := time.Now()
		milestone.CompletionDate = &now
	} else if req.Status != "completed" {
		milestone.CompletionDate = nil
	}

	milestone.Status = req.Status

	if err := db.DB.Save(&milestone).Error; err != nil {
		logger.L.Error("Failed to update milestone", zap.Uint("milestone_id", milestoneID), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update milestone"})
		return
	}

	ctx.JSON(http.StatusOK, milestone)
}

func DeleteMilestone(ctx *gin.Context) {
	project, ok := ownedProject(ctx)

	if !ok {
		return
	}

	milestoneID, err := utils.GetIDParam(ctx, "milestone_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var milestone models.Milestone

	if err := db.DB.Where("id = ? AND project_id = ?", milestoneID, project.ID).First(&milestone).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Milestone not found"})
		} else {
			logger.L.Error("Failed to fetch milestone", zap.Uint("milestone_id", milestoneID), zap.Error(err))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve milestone"})
		}
		return
	}

	if err := db.DB.Delete(&milestone).Error; err != nil {
		logger.L.Error("Failed to delete milestone", zap.Uint("milestone_id", milestoneID), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete milestone"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
