package middleware

import (
	"net/http"

	"github.com/brightforge-studio/brightforge/db"
	"github.com/brightforge-studio/brightforge/internal/logger"
	"github.com/brightforge-studio/brightforge/internal/models"
	"github.com/brightforge-studio/brightforge/internal/types"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HasRole reports whether a role row exists for the user. No row at all
// means the default "user" role.
func HasRole(userID uint, role string) (bool, error) {
	if role == types.RoleUser {
		var count int64

		if err := db.DB.Model(&models.UserRole{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
			return false, err
		}

		if count == 0 {
			return true, nil
		}
	}

	var count int64

	if err := db.DB.Model(&models.UserRole{}).
		Where("user_id = ? AND role = ?", userID, role).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// RequireAdmin must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		value, exists := ctx.Get(types.ContextUserKey)

		if !exists {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		user, ok := value.(AuthenticatedUser)

		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		isAdmin, err := HasRole(user.ID, types.RoleAdmin)

		if err != nil {
			logger.L.Error("Failed to check admin role", zap.Uint("user_id", user.ID), zap.Error(err))
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		if !isAdmin {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}

		ctx.Next()
	}
}
