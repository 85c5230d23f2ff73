package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var ErrChatNotConfigured = errors.New("chat assistant endpoint is not configured")

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Message             string        `json:"message"`
	ConversationHistory []ChatMessage `json:"conversationHistory"`
}

type chatResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// SendChatMessage relays a widget message to the external assistant function
// and returns its reply.
func SendChatMessage(ctx context.Context, endpoint string, req ChatRequest) (string, error) {
	if endpoint == "" {
		return "", ErrChatNotConfigured
	}

	body, err := json.Marshal(req)

	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))

	if err != nil {
		return "", err
	}

	httpReq.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 30 * time.Second}

	resp, err := client.Do(httpReq)

	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var parsed chatResponse

	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}

	if parsed.Error != "" {
		return "", errors.New(parsed.Error)
	}

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("assistant returned status %d", resp.StatusCode)
	}

	return parsed.Message, nil
}
