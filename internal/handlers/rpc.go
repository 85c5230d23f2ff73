package handlers

import (
	"net/http"
	"time"

	"github.com/brightforge-studio/brightforge/db"
	"github.com/brightforge-studio/brightforge/internal/logger"
	"github.com/brightforge-studio/brightforge/internal/middleware"
	"github.com/brightforge-studio/brightforge/internal/models"
	"github.com/brightforge-studio/brightforge/internal/types"
	"github.com/brightforge-studio/brightforge/internal/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// The /api/rpc endpoints mirror the named server-side procedures of the
// hosted backend this service replaced, so the client can keep calling
// them by name.

type AdminProjectRow struct {
	ID          uint                       `json:"id"`
	Title       string                     `json:"title"`
	Status      string                     `json:"status"`
	LastUpdated time.Time                  `json:"last_updated"`
	OwnerID     uint                       `json:"owner_id"`
	OwnerName   string                     `json:"owner_name"`
	OwnerEmail  string                     `json:"owner_email"`
	TotalHours  float64                    `json:"total_hours"`
	Assignments []models.ProjectAssignment `json:"assignments"`
}

// RPCAdminProjectsData returns every project joined with its owner's
// profile, summed hours and assignment rows in one response.
func RPCAdminProjectsData(ctx *gin.Context) {
	var projects []models.Project

	if err := db.DB.Preload("User.Profile").Preload("Assignments").Order("last_updated DESC").Find(&projects).Error; err != nil {
		logger.L.Error("Failed to fetch admin projects data", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
		return
	}

	rows := make([]AdminProjectRow, 0, len(projects))

	for _, project := range projects {
		var totalHours float64

		err := db.DB.Model(&models.TimeEntry{}).
			Where("project_id = ?", project.ID).
			Select("COALESCE(SUM(hours), 0)").
			Scan(&totalHours).Error

		if err != nil {
			logger.L.Error("Failed to sum project hours", zap.Uint("project_id", project.ID), zap.Error(err))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
			return
		}

		assignments := project.Assignments
		if assignments == nil {
			assignments = []models.ProjectAssignment{}
		}

		rows = append(rows, AdminProjectRow{
			ID:          project.ID,
			Title:       project.Title,
			Status:      project.Status,
			LastUpdated: project.LastUpdated,
			OwnerID:     project.UserID,
			OwnerName:   project.User.Profile.FullName,
			OwnerEmail:  project.User.Email,
			TotalHours:  totalHours,
			Assignments: assignments,
		})
	}

	ctx.JSON(http.StatusOK, rows)
}

type UserStatsRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

type UserStats struct {
	UserID          uint    `json:"user_id"`
	ProjectCount    int64   `json:"project_count"`
	ActiveProjects  int64   `json:"active_projects"`
	TotalHours      float64 `json:"total_hours"`
	InvoiceCount    int64   `json:"invoice_count"`
	OutstandingOwed float64 `json:"outstanding_owed"`
}

// RPCUserStats aggregates one user's projects, hours and invoices. Admins
// can ask about anyone, everyone else only about themselves.
func RPCUserStats(ctx *gin.Context) {
	actorID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req UserStatsRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.UserID != actorID {
		isAdmin, err := middleware.HasRole(actorID, types.RoleAdmin)

		if err != nil {
			logger.L.Error("Failed to check role", zap.Uint("user_id", actorID), zap.Error(err))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve stats"})
			return
		}

		if !isAdmin {
			ctx.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
	}

	stats := UserStats{UserID: req.UserID}

	if err := db.DB.Model(&models.Project{}).Where("user_id = ?", req.UserID).Count(&stats.ProjectCount).Error; err != nil {
		logger.L.Error("Failed to count projects", zap.Uint("user_id", req.UserID), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve stats"})
		return
	}

	if err := db.DB.Model(&models.Project{}).Where("user_id = ? AND status = ?", req.UserID, "in_progress").Count(&stats.ActiveProjects).Error; err != nil {
		logger.L.Error("Failed to count active projects", zap.Uint("user_id", req.UserID), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve stats"})
		return
	}

	if err := db.DB.Model(&models.TimeEntry{}).
		Where("user_id = ?", req.UserID).
		Select("COALESCE(SUM(hours), 0)").
		Scan(&stats.TotalHours).Error; err != nil {
		logger.L.Error("Failed to sum hours", zap.Uint("user_id", req.UserID), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve stats"})
		return
	}

	if err := db.DB.Model(&models.Invoice{}).Where("user_id = ?", req.UserID).Count(&stats.InvoiceCount).Error; err != nil {
		logger.L.Error("Failed to count invoices", zap.Uint("user_id", req.UserID), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve stats"})
		return
	}

	if err := db.DB.Model(&models.Invoice{}).
		Where("user_id = ? AND status NOT IN ?", req.UserID, []string{"paid", "cancelled"}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&stats.OutstandingOwed).Error; err != nil {
		logger.L.Error("Failed to sum outstanding invoices", zap.Uint("user_id", req.UserID), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve stats"})
		return
	}

	ctx.JSON(http.StatusOK, stats)
}

type HasRoleRequest struct {
	UserID uint   `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"required"`
}

func RPCHasRole(ctx *gin.Context) {
	var req HasRoleRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	hasRole, err := middleware.HasRole(req.UserID, req.Role)

	if err != nil {
		logger.L.Error("Failed to check role", zap.Uint("user_id", req.UserID), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check role"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"has_role": hasRole})
}

type GenerateSlugRequest struct {
	Title string `json:"title" binding:"required"`
}

func RPCGenerateSlug(ctx *gin.Context) {
	var req GenerateSlugRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	slug, err := utils.GenerateUniqueSlug(db.DB, req.Title)

	if err != nil {
		logger.L.Error("Failed to generate slug", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate slug"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"slug": slug})
}

type LogSecurityEventRequest struct {
	EventType string                 `json:"event_type" binding:"required"`
	Target    string                 `json:"target"`
	Details   map[string]interface{} `json:"details"`
}

func RPCLogSecurityEvent(ctx *gin.Context) {
	var req LogSecurityEventRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	logSecurityEvent(ctx, req.EventType, req.Target, req.Details)

	ctx.JSON(http.StatusOK, gin.H{"message": "Event logged"})
}
