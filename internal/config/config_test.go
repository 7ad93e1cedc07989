package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresWebhookURL(t *testing.T) {
	t.Setenv("WEBHOOK_URL", "")
	t.Setenv("DEMO", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WEBHOOK_URL")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("WEBHOOK_URL", "https://example.com/hook")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "AI Assistant", cfg.Title)
	assert.Equal(t, "Hello! How can I help you today?", cfg.InitialMessage)
	assert.Equal(t, "#242424", cfg.Color)
	assert.Equal(t, "Type your message...", cfg.Placeholder)
	assert.Equal(t, "null", cfg.SessionMode)
	assert.False(t, cfg.OpenByDefault)
	assert.False(t, cfg.Demo)
}

func TestLoadRejectsBadSessionMode(t *testing.T) {
	t.Setenv("WEBHOOK_URL", "https://example.com/hook")
	t.Setenv("SESSION_MODE", "maybe")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_MODE")
}

func TestLoadDemoDefaultsWebhookToSelf(t *testing.T) {
	t.Setenv("WEBHOOK_URL", "")
	t.Setenv("DEMO", "true")
	t.Setenv("PORT", "9999")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999/demo/webhook", cfg.WebhookURL)
}
