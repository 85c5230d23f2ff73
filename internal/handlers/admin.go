package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/brightforge-studio/brightforge/db"
	"github.com/brightforge-studio/brightforge/internal/logger"
	"github.com/brightforge-studio/brightforge/internal/models"
	"github.com/brightforge-studio/brightforge/internal/types"
	"github.com/brightforge-studio/brightforge/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AdminUserRow struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func AdminListUsers(ctx *gin.Context) {
	var users []models.User

	if err := db.DB.Preload("Profile").Preload("Roles").Order("created_at ASC").Find(&users).Error; err != nil {
		logger.L.Error("Failed to list users", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}

	rows := make([]AdminUserRow, 0, len(users))

	for _, user := range users {
		role := types.RoleUser

		for _, r := range user.Roles {
			if r.Role == types.RoleAdmin {
				role = types.RoleAdmin
				break
			}
		}

		rows = append(rows, AdminUserRow{
			ID:       user.ID,
			Email:    user.Email,
			FullName: user.Profile.FullName,
			Username: user.Profile.Username,
			Role:     role,
		})
	}

	ctx.JSON(http.StatusOK, rows)
}

type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// AdminChangeRole replaces the user's role as delete-then-insert: the old
// role rows are removed first and the new row is written only if that
// delete succeeded. The two writes are intentionally not wrapped in a
// transaction; if the insert fails the user is left with no role row and
// silently falls back to "user".
func AdminChangeRole(ctx *gin.Context) {
	targetID, err := utils.GetIDParam(ctx, "user_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req ChangeRoleRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if !types.ValidRole(req.Role) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	var target models.User

	if err := db.DB.First(&target, targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			logger.L.Error("Failed to fetch user", zap.Uint("user_id", targetID), zap.Error(err))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		}
		return
	}

	if err := db.DB.Where("user_id = ?", target.ID).Delete(&models.UserRole{}).Error; err != nil {
		logger.L.Error("Failed to delete role rows", zap.Uint("user_id", target.ID), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role"})
		return
	}

	newRole := models.UserRole{UserID: target.ID, Role: req.Role}

	if err := db.DB.Create(&newRole).Error; err != nil {
		logger.L.Error("Failed to insert role row", zap.Uint("user_id", target.ID), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role"})
		return
	}

	logSecurityEvent(ctx, "role_changed", target.Email, map[string]interface{}{
		"user_id": target.ID,
		"role":    req.Role,
	})

	ctx.JSON(http.StatusOK, gin.H{"message": "Role updated successfully", "role": req.Role})
}

type AdminCreateProjectRequest struct {
	UserID      uint       `json:"user_id" binding:"required"`
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	StartDate   *time.Time `json:"start_date"`
}

func AdminListProjects(ctx *gin.Context) {
	var projects []models.Project

	query := db.DB.Preload("User.Profile").Order("last_updated DESC")

	// Inline search over title and description.
	if search := strings.TrimSpace(ctx.Query("search")); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	if err := query.Find(&projects).Error; err != nil {
		logger.L.Error("Failed to list projects", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
		return
	}

	if projects == nil {
		projects = []models.Project{}
	}

	ctx.JSON(http.StatusOK, projects)
}

func AdminCreateProject(ctx *gin.Context) {
	var req AdminCreateProjectRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	status := req.Status
	if status == "" {
		status = "planning"
	}

	if !types.ValidProjectStatus(status) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project status"})
		return
	}

	project := models.Project{
		UserID:      req.UserID,
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		StartDate:   req.StartDate,
		LastUpdated: time.Now(),
	}

	if err := db.DB.Create(&project).Error; err != nil {
		logger.L.Error("Failed to create project", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	logSecurityEvent(ctx, "project_created", project.Title, map[string]interface{}{
		"project_id": project.ID,
		"user_id":    project.UserID,
	})

	BroadcastRefresh(project.UserID)

	ctx.JSON(http.StatusCreated, projectResponse(project))
}

func AdminUpdateProject(ctx *gin.Context) {
	projectID, err := utils.GetIDParam(ctx, "project_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req UpdateProjectRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if !types.ValidProjectStatus(req.Status) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project status"})
		return
	}

	var project models.Project

	if err := db.DB.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			logger.L.Error("Failed to fetch project", zap.Uint("project_id", projectID), zap.Error(err))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return
	}

	project.Title = req.Title
	project.Description = req.Description
	project.Status = req.Status
	project.StartDate = req.StartDate
	project.LastUpdated = time.Now()

	if err := db.DB.Save(&project).Error; err != nil {
		logger.L.Error("Failed to update project", zap.Uint("project_id", projectID), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
		return
	}

	logSecurityEvent(ctx, "project_updated", project.Title, map[string]interface{}{
		"project_id": project.ID,
	})

	BroadcastRefresh(project.UserID)

	ctx.JSON(http.StatusOK, projectResponse(project))
}

func AdminDeleteProject(ctx *gin.Context) {
	projectID, err := utils.GetIDParam(ctx, "project_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var project models.Project

	if err := db.DB.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			logger.L.Error("Failed to fetch project", zap.Uint("project_id", projectID), zap.Error(err))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return
	}

	if err := db.DB.Delete(&project).Error; err != nil {
		logger.L.Error("Failed to delete project", zap.Uint("project_id", projectID), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
		return
	}

	logSecurityEvent(ctx, "project_deleted", project.Title, map[string]interface{}{
		"project_id": project.ID,
	})

	BroadcastRefresh(project.UserID)

	ctx.Status(http.StatusNoContent)
}

type AssignmentRequest struct {
	ProjectID uint `json:"project_id" binding:"required"`
	UserID    uint `json:"user_id" binding:"required"`
}

func AdminCreateAssignment(ctx *gin.Context) {
	actorID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req AssignmentRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	assignment := models.ProjectAssignment{
		ProjectID:  req.ProjectID,
		UserID:     req.UserID,
		AssignedBy: actorID,
	}

	if err := db.DB.Create(&assignment).Error; err != nil {
		if isUniqueViolation(err) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "User is already assigned to this project"})
			return
		}

		logger.L.Error("Failed to create assignment", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create assignment"})
		return
	}

	logSecurityEvent(ctx, "project_assigned", "", map[string]interface{}{
		"project_id": req.ProjectID,
		"user_id":    req.UserID,
	})

	ctx.JSON(http.StatusCreated, assignment)
}

func AdminDeleteAssignment(ctx *gin.Context) {
	assignmentID, err := utils.GetIDParam(ctx, "assignment_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var assignment models.ProjectAssignment

	if err := db.DB.First(&assignment, assignmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Assignment not found"})
		} else {
			logger.L.Error("Failed to fetch assignment", zap.Uint("assignment_id", assignmentID), zap.Error(err))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve assignment"})
		}
		return
	}

	if err := db.DB.Delete(&assignment).Error; err != nil {
		logger.L.Error("Failed to delete assignment", zap.Uint("assignment_id", assignmentID), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete assignment"})
		return
	}

	logSecurityEvent(ctx, "project_unassigned", "", map[string]interface{}{
		"project_id": assignment.ProjectID,
		"user_id":    assignment.UserID,
	})

	ctx.Status(http.StatusNoContent)
}

type AdminLogHoursRequest struct {
	ProjectID   uint      `json:"project_id" binding:"required"`
	Date        time.Time `json:"date" binding:"required"`
	Hours       float64   `json:"hours" binding:"required"`
	Description string    `json:"description"`
	MilestoneID *uint     `json:"milestone_id"`
}

// AdminLogHours writes a time entry against any project and optionally adds
// the hours to a milestone's hours_logged.
func AdminLogHours(ctx *gin.Context) {
	var req AdminLogHoursRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Hours <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Hours must be greater than zero"})
		return
	}

	var project models.Project

	if err := db.DB.First(&project, req.ProjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			logger.L.Error("Failed to fetch project", zap.Uint("project_id", req.ProjectID), zap.Error(err))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
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
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log hours"})
		return
	}

	if req.MilestoneID != nil {
		if err := db.DB.Model(&models.Milestone{}).
			Where("id = ? AND project_id = ?", *req.MilestoneID, project.ID).
			Update("hours_logged", gorm.Expr("hours_logged + ?", req.Hours)).Error; err != nil {
			logger.L.Error("Failed to update milestone hours", zap.Uint("milestone_id", *req.MilestoneID), zap.Error(err))
		}
	}

	logSecurityEvent(ctx, "hours_logged", project.Title, map[string]interface{}{
		"project_id": project.ID,
		"hours":      req.Hours,
	})

	BroadcastRefresh(project.UserID)

	ctx.JSON(http.StatusCreated, entry)
}

type AdminCreateInvoiceRequest struct {
	UserID        uint      `json:"user_id" binding:"required"`
	ProjectID     uint      `json:"project_id" binding:"required"`
	InvoiceNumber string    `json:"invoice_number"`
	Amount        float64   `json:"amount" binding:"required"`
	Status        string    `json:"status"`
	IssueDate     time.Time `json:"issue_date"`
	DueDate       time.Time `json:"due_date"`
}

func AdminCreateInvoice(ctx *gin.Context) {
	var req AdminCreateInvoiceRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	status := req.Status
	if status == "" {
		status = "draft"
	}

	if !types.ValidInvoiceStatus(status) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invoice status"})
		return
	}

	number := req.InvoiceNumber
	if number == "" {
		number = "INV-" + strings.ToUpper(uuid.NewString()[:8])
	}

	invoice := models.Invoice{
		UserID:        req.UserID,
		ProjectID:     req.ProjectID,
		InvoiceNumber: number,
		Amount:        req.Amount,
		Status:        status,
		IssueDate:     req.IssueDate,
		DueDate:       req.DueDate,
	}

	if status == "paid" {
		now := time.Now()
		invoice.PaidDate = &now
	}

	if err := db.DB.Create(&invoice).Error; err != nil {
		if isUniqueViolation(err) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invoice number already exists"})
			return
		}

		logger.L.Error("Failed to create invoice", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create invoice"})
		return
	}

	logSecurityEvent(ctx, "invoice_created", invoice.InvoiceNumber, map[string]interface{}{
		"invoice_id": invoice.ID,
		"user_id":    invoice.UserID,
	})

	BroadcastRefresh(invoice.UserID)

	ctx.JSON(http.StatusCreated, invoice)
}

type AdminUpdateInvoiceRequest struct {
	Amount  float64   `json:"amount" binding:"required"`
	Status  string    `json:"status" binding:"required"`
	DueDate time.Time `json:"due_date"`
}

func AdminUpdateInvoice(ctx *gin.Context) {
	invoiceID, err := utils.GetIDParam(ctx, "invoice_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req AdminUpdateInvoiceRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if !types.ValidInvoiceStatus(req.Status) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invoice status"})
		return
	}

	var invoice models.Invoice

	if err := db.DB.First(&invoice, invoiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		} else {
			logger.L.Error("Failed to fetch invoice", zap.Uint("invoice_id", invoiceID), zap.Error(err))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve invoice"})
		}
		return
	}

	invoice.Amount = req.Amount
	invoice.DueDate = req.DueDate

	// paid_date is tied to the status the same way milestone completion
	// dates are.
	if req.Status == "paid" && invoice.Status != "paid" {
		now := time.Now()
		invoice.PaidDate = &now
	} else if req.Status != "paid" {
		invoice.PaidDate = nil
	}

	invoice.Status = req.Status

	if err := db.DB.Save(&invoice).Error; err != nil {
		logger.L.Error("Failed to update invoice", zap.Uint("invoice_id", invoiceID), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update invoice"})
		return
	}

	logSecurityEvent(ctx, "invoice_updated", invoice.InvoiceNumber, map[string]interface{}{
		"invoice_id": invoice.ID,
		"status":     invoice.Status,
	})

	BroadcastRefresh(invoice.UserID)

	ctx.JSON(http.StatusOK, invoice)
}

func AdminDeleteInvoice(ctx *gin.Context) {
	invoiceID, err := utils.GetIDParam(ctx, "invoice_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var invoice models.Invoice

	if err := db.DB.First(&invoice, invoiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		} else {
			logger.L.Error("Failed to fetch invoice", zap.Uint("invoice_id", invoiceID), zap.Error(err))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve invoice"})
		}
		return
	}

	if err := db.DB.Delete(&invoice).Error; err != nil {
		logger.L.Error("Failed to delete invoice", zap.Uint("invoice_id", invoiceID), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete invoice"})
		return
	}

	logSecurityEvent(ctx, "invoice_deleted", invoice.InvoiceNumber, map[string]interface{}{
		"invoice_id": invoice.ID,
	})

	BroadcastRefresh(invoice.UserID)

	ctx.Status(http.StatusNoContent)
}

func AdminListContactSubmissions(ctx *gin.Context) {
	var submissions []models.ContactSubmission

	if err := db.DB.Order("created_at DESC").Find(&submissions).Error; err != nil {
		logger.L.Error("Failed to list contact submissions", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve submissions"})
		return
	}

	if submissions == nil {
		submissions = []models.ContactSubmission{}
	}

	ctx.JSON(http.StatusOK, submissions)
}

func AdminListSecurityLogs(ctx *gin.Context) {
	var logs []models.AdminSecurityLog

	if err := db.DB.Order("created_at DESC").Limit(200).Find(&logs).Error; err != nil {
		logger.L.Error("Failed to list security logs", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve security logs"})
		return
	}

	if logs == nil {
		logs = []models.AdminSecurityLog{}
	}

	ctx.JSON(http.StatusOK, logs)
}
