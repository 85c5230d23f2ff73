package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/brightforge-studio/brightforge/internal/logger"
	"github.com/brightforge-studio/brightforge/internal/types"
	"github.com/brightforge-studio/brightforge/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var (
	userClients   = make(map[uint]map[*websocket.Conn]bool)
	userClientsMu sync.RWMutex
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// BroadcastRefresh tells every open dashboard of the user to refetch. Called
// after admin writes that change the user's projects, hours or invoices.
func BroadcastRefresh(userID uint) {
	userClientsMu.RLock()
	clients, exists := userClients[userID]
	if !exists || len(clients) == 0 {
		userClientsMu.RUnlock()
		return
	}

	clientsCopy := make([]*websocket.Conn, 0, len(clients))
	for conn := range clients {
		clientsCopy = append(clientsCopy, conn)
	}
	userClientsMu.RUnlock()

	for _, conn := range clientsCopy {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			logger.L.Warn("Failed to set write deadline for broadcast", zap.Error(err))
			continue
		}

		err := conn.WriteJSON(map[string]string{
			"type":    "refresh",
			"message": "Dashboard data updated",
		})

		if err != nil {
			logger.L.Warn("Failed to broadcast refresh", zap.Uint("user_id", userID), zap.Error(err))

			userClientsMu.Lock()
			if clients, exists := userClients[userID]; exists {
				delete(clients, conn)
				if len(clients) == 0 {
					delete(userClients, userID)
				}
			}
			userClientsMu.Unlock()
			conn.Close()
		}
	}
}

// pingLoop keeps the connection alive until done closes. The select is what
// lets the goroutine exit once the read loop returns.
func pingLoop(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func WebSocket(c *gin.Context) {
	userID, err := utils.GetCurrentUserID(c)

	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			for _, allowed := range types.AllowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.L.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logger.L.Warn("Failed to set initial read deadline", zap.Error(err))
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	userClientsMu.Lock()
	if userClients[userID] == nil {
		userClients[userID] = make(map[*websocket.Conn]bool)
	}
	userClients[userID][conn] = true
	userClientsMu.Unlock()

	defer func() {
		userClientsMu.Lock()

		if clients, exists := userClients[userID]; exists {
			delete(clients, conn)

			if len(clients) == 0 {
				delete(userClients, userID)
			}
		}

		userClientsMu.Unlock()
		conn.Close()
	}()

	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return
	}

	if err := conn.WriteJSON(map[string]string{
		"type":    "connected",
		"message": "WebSocket connection established",
	}); err != nil {
		logger.L.Warn("Failed to send welcome message", zap.Error(err))
		return
	}

	done := make(chan struct{})
	defer close(done)

	go pingLoop(conn, done)

	for {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			break
		}

		_, _, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.L.Warn("WebSocket error", zap.Uint("user_id", userID), zap.Error(err))
			}
			break
		}
	}
}
