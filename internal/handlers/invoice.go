package handlers

import (
	"errors"
	"net/http"

	"github.com/brightforge-studio/brightforge/db"
	"github.com/brightforge-studio/brightforge/internal/logger"
	"github.com/brightforge-studio/brightforge/internal/models"
	"github.com/brightforge-studio/brightforge/internal/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Invoices are created and transitioned by the admin; clients only read
// their own.

func ListInvoices(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var invoices []models.Invoice

	if err := db.DB.Where("user_id = ?", userID).Order("issue_date DESC").Find(&invoices).Error; err != nil {
		logger.L.Error("Failed to list invoices", zap.Uint("user_id", userID), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve invoices"})
		return
	}

	if invoices == nil {
		invoices = []models.Invoice{}
	}

	ctx.JSON(http.StatusOK, invoices)
}

func GetInvoice(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	invoiceID, err := utils.GetIDParam(ctx, "invoice_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var invoice models.Invoice

	if err := db.DB.Where("id = ? AND user_id = ?", invoiceID, userID).First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		} else {
			logger.L.Error("Failed to fetch invoice", zap.Uint("invoice_id", invoiceID), zap.Error(err))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve invoice"})
		}
		return
	}

	ctx.JSON(http.StatusOK, invoice)
}
