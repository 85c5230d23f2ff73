package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/brightforge-studio/brightforge/internal/models"
)

type DiscordWebhookField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type DiscordEmbed struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Color       int                   `json:"color"`
	Fields      []DiscordWebhookField `json:"fields"`
	Timestamp   string                `json:"timestamp"`
}

type DiscordWebhookRequest struct {
	Username string         `json:"username"`
	Embeds   []DiscordEmbed `json:"embeds"`
}

type SlackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

type SlackAttachment struct {
	Color     string       `json:"color"`
	Title     string       `json:"title"`
	Text      string       `json:"text"`
	Fields    []SlackField `json:"fields"`
	Timestamp int64        `json:"ts"`
}

type SlackWebhookRequest struct {
	Username    string            `json:"username"`
	Text        string            `json:"text"`
	Attachments []SlackAttachment `json:"attachments"`
}

const (
	colorBlue = 3447003 // #3498DB - new lead

	webhookUsername = "Brightforge Studio"
)

// SendLeadNotification pushes a new contact submission to the configured
// Discord and Slack webhooks. Failures are returned for logging only; the
// submission itself has already been stored.
func SendLeadNotification(submission models.ContactSubmission) error {
	if url := os.Getenv("DISCORD_WEBHOOK_URL"); url != "" {
		if err := sendDiscordLead(url, submission); err != nil {
			return fmt.Errorf("discord: %w", err)
		}
	}

	if url := os.Getenv("SLACK_WEBHOOK_URL"); url != "" {
		if err := sendSlackLead(url, submission); err != nil {
			return fmt.Errorf("slack: %w", err)
		}
	}

	return nil
}

func sendDiscordLead(webhookURL string, submission models.ContactSubmission) error {
	fields := []DiscordWebhookField{
		{Name: "Name", Value: submission.Name, Inline: true},
		{Name: "Email", Value: submission.Email, Inline: true},
	}

	if submission.ProjectType != "" {
		fields = append(fields, DiscordWebhookField{Name: "Project Type", Value: submission.ProjectType, Inline: true})
	}

	if submission.Budget != "" {
		fields = append(fields, DiscordWebhookField{Name: "Budget", Value: submission.Budget, Inline: true})
	}

	payload := DiscordWebhookRequest{
		Username: webhookUsername,
		Embeds: []DiscordEmbed{
			{
				Title:       "New contact submission",
				Description: submission.Message,
				Color:       colorBlue,
				Fields:      fields,
				Timestamp:   time.Now().Format(time.RFC3339),
			},
		},
	}

	return postJSON(webhookURL, payload)
}

func sendSlackLead(webhookURL string, submission models.ContactSubmission) error {
	fields := []SlackField{
		{Title: "Name", Value: submission.Name, Short: true},
		{Title: "Email", Value: submission.Email, Short: true},
	}

	if submission.ProjectType != "" {
		fields = append(fields, SlackField{Title: "Project Type", Value: submission.ProjectType, Short: true})
	}

	if submission.Budget != "" {
		fields = append(fields, SlackField{Title: "Budget", Value: submission.Budget, Short: true})
	}

	payload := SlackWebhookRequest{
		Username: webhookUsername,
		Text:     "New contact submission",
		Attachments: []SlackAttachment{
			{
				Color:     "#3498DB",
				Title:     submission.Name,
				Text:      submission.Message,
				Fields:    fields,
				Timestamp: time.Now().Unix(),
			},
		},
	}

	return postJSON(webhookURL, payload)
}

func postJSON(url string, payload interface{}) error {
	body, err := json.Marshal(payload)

	if err != nil {
		return err
	}

	client := &http.Client{Timeout: 10 * time.Second}

	resp, err := client.Post(url, "application/json", bytes.NewReader(body))

	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}
