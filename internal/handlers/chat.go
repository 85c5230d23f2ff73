package handlers

import (
	"errors"
	"net/http"
	"os"

	"github.com/brightforge-studio/brightforge/internal/logger"
	"github.com/brightforge-studio/brightforge/internal/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ChatHandlerRequest struct {
	Message             string                 `json:"message" binding:"required"`
	ConversationHistory []services.ChatMessage `json:"conversationHistory"`
}

// Chat relays the widget conversation to the external assistant function.
func Chat(ctx *gin.Context) {
	var req ChatHandlerRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	reply, err := services.SendChatMessage(ctx.Request.Context(), os.Getenv("CHAT_FUNCTION_URL"), services.ChatRequest{
		Message:             req.Message,
		ConversationHistory: req.ConversationHistory,
	})

	if err != nil {
		if errors.Is(err, services.ErrChatNotConfigured) {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "Chat assistant is not available right now"})
			return
		}

		logger.L.Error("Chat relay failed", zap.Error(err))
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "Chat assistant is not available right now"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": reply})
}
