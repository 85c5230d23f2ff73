package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebSocketSendsWelcome(t *testing.T) {
	r := newTestRouter(http.MethodGet, "/api/ws", setUser(1), WebSocket)

	srv := httptest.NewServer(r)
	defer srv.Close()

	header := http.Header{"Origin": []string{"http://localhost:3000"}}

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/api/ws", header)
	require.NoError(t, err)
	defer conn.Close()

	var msg map[string]string
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "connected", msg["type"])
}

func TestWebSocketRejectsUnknownOrigin(t *testing.T) {
	r := newTestRouter(http.MethodGet, "/api/ws", setUser(1), WebSocket)

	srv := httptest.NewServer(r)
	defer srv.Close()

	header := http.Header{"Origin": []string{"http://evil.example.com"}}

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/api/ws", header)
	require.Error(t, err)
	if conn != nil {
		conn.Close()
	}
}

// The ping goroutine has to exit once the read loop is gone instead of
// lingering on the ticker.
func TestPingLoopExitsWhenDone(t *testing.T) {
	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}

	done := make(chan struct{})
	finished := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		pingLoop(conn, done)
		close(finished)
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	close(done)

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("ping loop did not exit after done closed")
	}
}
