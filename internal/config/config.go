package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	WebhookURL  string
	SessionID   string
	SessionMode string // "null" or "placeholder"
	CSRFToken   string
	CSRFHeader  string

	Title          string
	InitialMessage string
	AgentName      string
	Color          string
	Placeholder    string
	OpenByDefault  bool

	Demo         bool
	GeminiAPIKey string

	Port string
}

func Load() (*Config, error) {
	// .env is optional — env vars may already be set (e.g. in production)
	_ = godotenv.Load()

	cfg := &Config{
		WebhookURL:  os.Getenv("WEBHOOK_URL"),
		SessionID:   os.Getenv("SESSION_ID"),
		SessionMode: os.Getenv("SESSION_MODE"),
		CSRFToken:   os.Getenv("CSRF_TOKEN"),
		CSRFHeader:  os.Getenv("CSRF_HEADER"),

		Title:          os.Getenv("TITLE"),
		InitialMessage: os.Getenv("INITIAL_MESSAGE"),
		AgentName:      os.Getenv("AGENT_NAME"),
		Color:          os.Getenv("COLOR"),
		Placeholder:    os.Getenv("PLACEHOLDER"),
		OpenByDefault:  parseBoolEnv("OPEN_BY_DEFAULT"),

		Demo:         parseBoolEnv("DEMO"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),

		Port: os.Getenv("PORT"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	if cfg.Title == "" {
		cfg.Title = "AI Assistant"
	}

	if cfg.InitialMessage == "" {
		cfg.InitialMessage = "Hello! How can I help you today?"
	}

	if cfg.Color == "" {
		cfg.Color = "#242424"
	}

	if cfg.Placeholder == "" {
		cfg.Placeholder = "Type your message..."
	}

	if cfg.SessionMode == "" {
		cfg.SessionMode = "null"
	}

	if cfg.SessionMode != "null" && cfg.SessionMode != "placeholder" {
		return nil, fmt.Errorf("SESSION_MODE must be \"null\" or \"placeholder\", got %q", cfg.SessionMode)
	}

	// Demo mode mounts its own webhook, so WEBHOOK_URL may point at it later.
	if cfg.Demo && cfg.WebhookURL == "" {
		cfg.WebhookURL = fmt.Sprintf("http://localhost:%s/demo/webhook", cfg.Port)
	}

	for _, req := range []struct {
		name, val string
	}{
		{"WEBHOOK_URL", cfg.WebhookURL},
	} {
		if req.val == "" {
			return nil, fmt.Errorf("required env var %s is not set", req.name)
		}
	}

	return cfg, nil
}

func parseBoolEnv(key string) bool {
	v, _ := strconv.ParseBool(os.Getenv(key))
	return v
}
