package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendChatMessageNotConfigured(t *testing.T) {
	_, err := SendChatMessage(context.Background(), "", ChatRequest{Message: "hi"})
	assert.ErrorIs(t, err, ErrChatNotConfigured)
}

func TestSendChatMessageSuccess(t *testing.T) {
	var received ChatRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(map[string]string{"message": "Happy to help!"})
	}))
	defer srv.Close()

	reply, err := SendChatMessage(context.Background(), srv.URL, ChatRequest{
		Message: "What do you charge?",
		ConversationHistory: []ChatMessage{
			{Role: "user", Content: "Hello"},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "Happy to help!", reply)
	assert.Equal(t, "What do you charge?", received.Message)
	require.Len(t, received.ConversationHistory, 1)
	assert.Equal(t, "Hello", received.ConversationHistory[0].Content)
}

func TestSendChatMessageUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "model overloaded"})
	}))
	defer srv.Close()

	_, err := SendChatMessage(context.Background(), srv.URL, ChatRequest{Message: "hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model overloaded")
}
