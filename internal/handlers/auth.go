package handlers

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/brightforge-studio/brightforge/db"
	"github.com/brightforge-studio/brightforge/internal/auth"
	"github.com/brightforge-studio/brightforge/internal/logger"
	"github.com/brightforge-studio/brightforge/internal/middleware"
	"github.com/brightforge-studio/brightforge/internal/models"
	"github.com/brightforge-studio/brightforge/internal/types"
	"github.com/brightforge-studio/brightforge/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ResetTokens is swapped for a redis-backed store in main when configured.
var ResetTokens auth.ResetTokenStore = auth.NewMemoryResetTokenStore()

type RegisterRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Username string `json:"username" binding:"required,min=3"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateUserRequest struct {
	FullName        string `json:"full_name"`
	Username        string `json:"username"`
	Email           string `json:"email" binding:"omitempty,email"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type UserResponse struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Username string `json:"username"`
}

func setAuthCookie(ctx *gin.Context, token string, maxAge int) {
	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		Domain:   os.Getenv("DOMAIN"),
		MaxAge:   maxAge,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})
}

func Register(ctx *gin.Context) {
	var req RegisterRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	req.Email = utils.SanitizeEmail(req.Email)

	if !utils.IsValidEmail(req.Email) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email address"})
		return
	}

	if err := utils.ValidatePassword(req.Password); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existingUser models.User

	err := db.DB.Where("email = ?", req.Email).First(&existingUser).Error

	if err == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.L.Error("Failed to check existing user", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var existingProfile models.Profile

	err = db.DB.Where("username = ?", req.Username).First(&existingProfile).Error

	if err == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Username already taken"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.L.Error("Failed to check existing username", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)

	if err != nil {
		logger.L.Error("Failed to hash password", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	newUser := models.User{
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		Profile: models.Profile{
			FullName: req.FullName,
			Username: req.Username,
		},
	}

	// No role row is written: absence means the default "user" role.
	if err := db.DB.Create(&newUser).Error; err != nil {
		logger.L.Error("Failed to create user", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	token, err := auth.GenerateJWT(newUser.ID, newUser.Email)

	if err != nil {
		logger.L.Error("Failed to generate JWT", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	setAuthCookie(ctx, token, 60*60*24*7)

	ctx.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user": UserResponse{
			ID:       newUser.ID,
			Email:    newUser.Email,
			FullName: newUser.Profile.FullName,
			Username: newUser.Profile.Username,
		},
	})
}

func Login(ctx *gin.Context) {
	var req LoginRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	req.Email = utils.SanitizeEmail(req.Email)

	var user models.User

	err := db.DB.Preload("Profile").Where("email = ?", req.Email).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email or password"})
			return
		}
		logger.L.Error("Failed to fetch user", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := auth.GenerateJWT(user.ID, user.Email)

	if err != nil {
		logger.L.Error("Failed to generate JWT", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	setAuthCookie(ctx, token, 60*60*24*7)

	ctx.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": UserResponse{
			ID:       user.ID,
			Email:    user.Email,
			FullName: user.Profile.FullName,
			Username: user.Profile.Username,
		},
	})
}

func Logout(ctx *gin.Context) {
	setAuthCookie(ctx, "", -1)
	ctx.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func Me(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var profile models.Profile

	if err := db.DB.Where("user_id = ?", currentUser.ID).First(&profile).Error; err != nil {
		logger.L.Error("Failed to fetch profile", zap.Uint("user_id", currentUser.ID), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user": UserResponse{
			ID:       currentUser.ID,
			Email:    currentUser.Email,
			FullName: profile.FullName,
			Username: profile.Username,
		},
	})
}

// Role implements the second, independent authorization lookup: the admin
// flag comes from the roles table, never from the identity itself.
func Role(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	isAdmin, err := middleware.HasRole(currentUser.ID, types.RoleAdmin)

	if err != nil {
		logger.L.Error("Failed to check role", zap.Uint("user_id", currentUser.ID), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"is_admin": isAdmin})
}

func UpdateUser(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var dbUser models.User

	if err := db.DB.Preload("Profile").First(&dbUser, currentUser.ID).Error; err != nil {
		logger.L.Error("Failed to fetch user", zap.Uint("user_id", currentUser.ID), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req UpdateUserRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	updates := make(map[string]interface{})
	profileUpdates := make(map[string]interface{})

	if req.FullName != "" {
		profileUpdates["full_name"] = strings.TrimSpace(req.FullName)
	}

	if req.Username != "" {
		username := strings.TrimSpace(req.Username)

		if username != dbUser.Profile.Username {
			var existing models.Profile

			err := db.DB.Where("username = ? AND user_id != ?", username, dbUser.ID).First(&existing).Error
			if err == nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Username already taken"})
				return
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				logger.L.Error("Failed to check username", zap.Error(err))
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
				return
			}
		}

		profileUpdates["username"] = username
	}

	if req.Email != "" {
		newEmail := utils.SanitizeEmail(req.Email)

		if newEmail != dbUser.Email {
			var existing models.User

			err := db.DB.Where("email = ? AND id != ?", newEmail, dbUser.ID).First(&existing).Error
			if err == nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
				return
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				logger.L.Error("Failed to check email", zap.Error(err))
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
				return
			}
		}

		updates["email"] = newEmail
	}

	if req.NewPassword != "" {
		if req.CurrentPassword == "" {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Current password is required to change password"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(dbUser.PasswordHash), []byte(req.CurrentPassword)); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Current password is incorrect"})
			return
		}

		if err := utils.ValidatePassword(req.NewPassword); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			logger.L.Error("Failed to hash new password", zap.Error(err))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		updates["password_hash"] = string(passwordHash)
	}

	if len(updates) == 0 && len(profileUpdates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&dbUser).Updates(updates).Error; err != nil {
			logger.L.Error("Failed to update user", zap.Uint("user_id", dbUser.ID), zap.Error(err))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
	}

	if len(profileUpdates) > 0 {
		if err := db.DB.Model(&models.Profile{}).Where("user_id = ?", dbUser.ID).Updates(profileUpdates).Error; err != nil {
			logger.L.Error("Failed to update profile", zap.Uint("user_id", dbUser.ID), zap.Error(err))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
	}

	if err := db.DB.Preload("Profile").First(&dbUser, dbUser.ID).Error; err != nil {
		logger.L.Error("Failed to refresh user", zap.Uint("user_id", dbUser.ID), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "User updated successfully",
		"user": UserResponse{
			ID:       dbUser.ID,
			Email:    dbUser.Email,
			FullName: dbUser.Profile.FullName,
			Username: dbUser.Profile.Username,
		},
	})
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ForgotPassword responds 200 whether or not the address exists.
func ForgotPassword(ctx *gin.Context) {
	var req ForgotPasswordRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var user models.User

	err := db.DB.Where("email = ?", utils.SanitizeEmail(req.Email)).First(&user).Error

	if err == nil {
		token := uuid.NewString()

		if err := ResetTokens.Save(ctx.Request.Context(), token, user.ID); err != nil {
			logger.L.Error("Failed to store reset token", zap.Error(err))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		// Delivery is out of band; the token is logged for the operator.
		logger.L.Info("Password reset token issued", zap.Uint("user_id", user.ID), zap.String("token", token))
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.L.Error("Failed to look up user for reset", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "If the address exists, a reset link has been sent"})
}

func ResetPassword(ctx *gin.Context) {
	var req ResetPasswordRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := utils.ValidatePassword(req.NewPassword); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := ResetTokens.Consume(ctx.Request.Context(), req.Token)

	if err != nil {
		if errors.Is(err, auth.ErrTokenNotFound) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired reset token"})
			return
		}
		logger.L.Error("Failed to consume reset token", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)

	if err != nil {
		logger.L.Error("Failed to hash password", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := db.DB.Model(&models.User{}).Where("id = ?", userID).
		Update("password_hash", string(passwordHash)).Error; err != nil {
		logger.L.Error("Failed to update password", zap.Uint("user_id", userID), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}
