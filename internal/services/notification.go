package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/styledesk/styledesk/internal/config"
)

// NotificationService posts change events and digests to the configured
// webhook URLs. Slack incoming webhooks get Slack-shaped payloads, every
// other URL gets the raw event as JSON.
type NotificationService struct {
	cfg *config.NotifyConfig
}

func NewNotificationService(cfg *config.NotifyConfig) *NotificationService {
	return &NotificationService{cfg: cfg}
}

func (s *NotificationService) HasWebhooks() bool {
	return s.cfg != nil && len(s.cfg.WebhookURLs) > 0
}

// SendChangeNotification delivers one change event to all webhooks.
// Failures on one URL do not stop delivery to the others.
func (s *NotificationService) SendChangeNotification(task *NotifyTask) error {
	if !s.HasWebhooks() {
		return nil
	}

	var lastErr error
	for _, url := range s.cfg.WebhookURLs {
		var err error
		if isSlackWebhook(url) {
			err = s.postJSON(url, s.slackChangePayload(task))
		} else {
			err = s.postJSON(url, task)
		}
		if err != nil {
			log.Printf("[Notification] Failed to notify %s: %v", url, err)
			lastErr = err
		}
	}
	return lastErr
}

// SendDigest delivers a text digest to all webhooks. Long digests are
// split at newlines to respect Slack's message limits.
func (s *NotificationService) SendDigest(title, body string) error {
	if !s.HasWebhooks() {
		return nil
	}

	var lastErr error
	for _, url := range s.cfg.WebhookURLs {
		var err error
		if isSlackWebhook(url) {
			err = s.sendSlackDigest(url, title, body)
		} else {
			err = s.postJSON(url, map[string]interface{}{
				"type":  "digest",
				"title": title,
				"body":  body,
			})
		}
		if err != nil {
			log.Printf("[Notification] Failed to send digest to %s: %v", url, err)
			lastErr = err
		}
	}
	return lastErr
}

func isSlackWebhook(url string) bool {
	return strings.Contains(url, "hooks.slack.com")
}

func (s *NotificationService) slackChangePayload(task *NotifyTask) map[string]interface{} {
	text := fmt.Sprintf("*Style guide change*\n*Category*: %s\n*Action*: %s\n*By*: %s",
		task.Category, task.Action, task.Actor)

	return map[string]interface{}{
		"text": text,
		"blocks": []map[string]interface{}{
			{
				"type": "section",
				"text": map[string]string{
					"type": "mrkdwn",
					"text": text,
				},
			},
		},
	}
}

func (s *NotificationService) sendSlackDigest(url, title, body string) error {
	const maxLen = 3000

	parts := splitMessage(body, maxLen)
	for i, part := range parts {
		header := "*" + title + "*"
		if len(parts) > 1 {
			header = fmt.Sprintf("*%s [%d/%d]*", title, i+1, len(parts))
		}
		payload := map[string]interface{}{
			"text": header,
			"blocks": []map[string]interface{}{
				{
					"type": "section",
					"text": map[string]string{
						"type": "mrkdwn",
						"text": header + "\n" + part,
					},
				},
			},
		}
		if err := s.postJSON(url, payload); err != nil {
			return err
		}
	}
	return nil
}

// splitMessage splits a long message into chunks, trying to break at newlines
func splitMessage(msg string, maxLen int) []string {
	if len(msg) <= maxLen {
		return []string{msg}
	}

	var parts []string
	remaining := msg

	for len(remaining) > 0 {
		if len(remaining) <= maxLen {
			parts = append(parts, remaining)
			break
		}

		chunk := remaining[:maxLen]
		breakPoint := maxLen

		// Look for the last newline in the chunk
		for i := len(chunk) - 1; i > maxLen/2; i-- {
			if chunk[i] == '\n' {
				breakPoint = i + 1
				break
			}
		}

		parts = append(parts, remaining[:breakPoint])
		remaining = remaining[breakPoint:]
	}

	return parts
}

func (s *NotificationService) postJSON(webhookURL string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	log.Printf("[Notification] POST %s, payload length: %d", webhookURL, len(body))

	resp, err := http.Post(webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned status %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}
