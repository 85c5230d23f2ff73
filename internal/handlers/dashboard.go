package handlers

import (
	"math"
	"net/http"
	"time"

	"github.com/brightforge-studio/brightforge/db"
	"github.com/brightforge-studio/brightforge/internal/logger"
	"github.com/brightforge-studio/brightforge/internal/models"
	"github.com/brightforge-studio/brightforge/internal/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type DashboardProject struct {
	ID                  uint       `json:"id"`
	Title               string     `json:"title"`
	Status              string     `json:"status"`
	StartDate           *time.Time `json:"start_date"`
	LastUpdated         time.Time  `json:"last_updated"`
	TotalHours          float64    `json:"total_hours"`
	EntryCount          int64      `json:"entry_count"`
	MilestonesTotal     int64      `json:"milestones_total"`
	MilestonesCompleted int64      `json:"milestones_completed"`
}

type InvoiceTotals struct {
	Total       float64 `json:"total"`
	Paid        float64 `json:"paid"`
	Outstanding float64 `json:"outstanding"`
}

type DashboardResponse struct {
	Projects []DashboardProject `json:"projects"`
	Invoices InvoiceTotals      `json:"invoices"`
}

// roundHours keeps displayed totals at one decimal place.
func roundHours(h float64) float64 {
	return math.Round(h*10) / 10
}

// GetDashboard fetches the user's projects first, then fans out one child
// aggregation per project. The sibling fetches run concurrently with no
// ordering between them; the response is assembled only after all settle.
func GetDashboard(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var projects []models.Project

	if err := db.DB.Where("user_id = ?", userID).Order("last_updated DESC").Find(&projects).Error; err != nil {
		logger.L.Error("Failed to list projects for dashboard", zap.Uint("user_id", userID), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve dashboard"})
		return
	}

	rows := make([]DashboardProject, len(projects))

	g, gctx := errgroup.WithContext(ctx.Request.Context())

	for i := range projects {
		i := i
		project := projects[i]

		rows[i] = DashboardProject{
			ID:          project.ID,
			Title:       project.Title,
			Status:      project.Status,
			StartDate:   project.StartDate,
			LastUpdated: project.LastUpdated,
		}

		g.Go(func() error {
			var result struct {
				Total float64
				Count int64
			}

			if err := db.DB.WithContext(gctx).Model(&models.TimeEntry{}).
				Select("COALESCE(SUM(hours), 0) AS total, COUNT(*) AS count").
				Where("project_id = ?", project.ID).
				Scan(&result).Error; err != nil {
				return err
			}

			rows[i].TotalHours = roundHours(result.Total)
			rows[i].EntryCount = result.Count
			return nil
		})

		g.Go(func() error {
			var total, completed int64

			if err := db.DB.WithContext(gctx).Model(&models.Milestone{}).
				Where("project_id = ?", project.ID).
				Count(&total).Error; err != nil {
				return err
			}

			if err := db.DB.WithContext(gctx).Model(&models.Milestone{}).
				Where("project_id = ? AND status = ?", project.ID, "completed").
				Count(&completed).Error; err != nil {
				return err
			}

			rows[i].MilestonesTotal = total
			rows[i].MilestonesCompleted = completed
			return nil
		})
	}

	var invoiceTotals InvoiceTotals

	g.Go(func() error {
		var result struct {
			Total float64
			Paid  float64
		}

		if err := db.DB.WithContext(gctx).Model(&models.Invoice{}).
			Select("COALESCE(SUM(amount), 0) AS total, COALESCE(SUM(amount) FILTER (WHERE status = 'paid'), 0) AS paid").
			Where("user_id = ? AND status <> ?", userID, "cancelled").
			Scan(&result).Error; err != nil {
			return err
		}

		invoiceTotals = InvoiceTotals{
			Total:       result.Total,
			Paid:        result.Paid,
			Outstanding: result.Total - result.Paid,
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.L.Error("Failed to aggregate dashboard", zap.Uint("user_id", userID), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve dashboard"})
		return
	}

	ctx.JSON(http.StatusOK, DashboardResponse{
		Projects: rows,
		Invoices: invoiceTotals,
	})
}
