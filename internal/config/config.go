package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config keeps runtime settings for the tracker.
type Config struct {
	Addr                 string
	DatabaseURL          string
	Repository           string // "sqlite" or "memory"
	DiscordWebhookURL    string
	TelegramToken        string
	TelegramChatID       int64
	PomodoroDuration     time.Duration
	SingleActivePomodoro bool
	ReconcileInterval    time.Duration
	LogDevelopment       bool
}

// Load reads configuration from environment variables with sane defaults.
// Nothing is required: an empty environment yields a local SQLite tracker
// with notifications disabled.
func Load() Config {
	cfg := Config{
		Addr:                 strings.TrimSpace(os.Getenv("ADDR")),
		DatabaseURL:          strings.TrimSpace(os.Getenv("DATABASE_URL")),
		Repository:           strings.ToLower(strings.TrimSpace(os.Getenv("REPOSITORY"))),
		DiscordWebhookURL:    strings.TrimSpace(os.Getenv("DISCORD_WEBHOOK_URL")),
		TelegramToken:        strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")),
		TelegramChatID:       parseInt64(os.Getenv("TELEGRAM_CHAT_ID")),
		PomodoroDuration:     parseMinutes(os.Getenv("POMODORO_MINUTES")),
		SingleActivePomodoro: parseBool(os.Getenv("POMODORO_SINGLE_ACTIVE")),
		ReconcileInterval:    parseMinutes(os.Getenv("RECONCILE_INTERVAL_MINUTES")),
		LogDevelopment:       true,
	}

	if cfg.Addr == "" {
		cfg.Addr = ":5001"
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "pomo_hub.db"
	}
	if cfg.Repository == "" {
		cfg.Repository = "sqlite"
	}
	if cfg.PomodoroDuration == 0 {
		cfg.PomodoroDuration = 25 * time.Minute
	}
	if cfg.ReconcileInterval == 0 {
		cfg.ReconcileInterval = time.Minute
	}
	if raw := strings.TrimSpace(os.Getenv("LOG_DEVELOPMENT")); raw != "" {
		cfg.LogDevelopment = parseBool(raw)
	}

	return cfg
}

func parseMinutes(raw string) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	minutes, err := strconv.Atoi(raw)
	if err != nil || minutes <= 0 {
		return 0
	}
	return time.Duration(minutes) * time.Minute
}

func parseInt64(raw string) int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseBool(raw string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return v
}
