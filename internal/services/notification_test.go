package services

import (
	"strings"
	"testing"

	"github.com/styledesk/styledesk/internal/config"
)

func TestSplitMessage_Short(t *testing.T) {
	parts := splitMessage("hello", 100)
	if len(parts) != 1 {
		t.Fatalf("expected 1 part, got %d", len(parts))
	}
	if parts[0] != "hello" {
		t.Errorf("part = %q, expected %q", parts[0], "hello")
	}
}

func TestSplitMessage_BreaksAtNewlines(t *testing.T) {
	msg := strings.Repeat("line one\n", 20)
	parts := splitMessage(msg, 50)

	if len(parts) < 2 {
		t.Fatalf("expected multiple parts, got %d", len(parts))
	}

	var total int
	for i, p := range parts {
		if len(p) > 50 {
			t.Errorf("part %d exceeds max length: %d", i, len(p))
		}
		total += len(p)
	}
	if total != len(msg) {
		t.Errorf("parts total %d chars, expected %d", total, len(msg))
	}
}

func TestSplitMessage_NoNewlines(t *testing.T) {
	msg := strings.Repeat("x", 120)
	parts := splitMessage(msg, 50)

	if len(parts) != 3 {
		t.Fatalf("expected 3 parts, got %d", len(parts))
	}
	if strings.Join(parts, "") != msg {
		t.Error("joined parts should equal the original message")
	}
}

func TestIsSlackWebhook(t *testing.T) {
	if !isSlackWebhook("https://hooks.slack.com/services/T00/B00/xyz") {
		t.Error("slack hook URL should be detected")
	}
	if isSlackWebhook("https://example.com/webhook") {
		t.Error("generic URL should not be detected as slack")
	}
}

func TestNotificationService_HasWebhooks(t *testing.T) {
	empty := NewNotificationService(&config.NotifyConfig{})
	if empty.HasWebhooks() {
		t.Error("no URLs configured, HasWebhooks should be false")
	}

	configured := NewNotificationService(&config.NotifyConfig{
		WebhookURLs: []string{"https://example.com/hook"},
	})
	if !configured.HasWebhooks() {
		t.Error("HasWebhooks should be true when URLs are configured")
	}
}
