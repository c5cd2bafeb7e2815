package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	ListenAddr  string `env:"SHOAL_LISTEN_ADDR" envDefault:":8000"`
	DBPath      string `env:"SHOAL_DB_PATH" envDefault:"shoal.db"`
	SpeciesPath string `env:"SHOAL_SPECIES_PATH" envDefault:"data/species.json"`
	LogLevel    string `env:"SHOAL_LOG_LEVEL" envDefault:"info"`

	// SessionSecret signs session tokens. The default is only suitable for
	// local development.
	SessionSecret string `env:"SHOAL_SESSION_SECRET" envDefault:"dev-secret-change-me"`

	// Google sign-in is disabled when the client credentials are unset.
	GoogleClientID     string `env:"SHOAL_GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"SHOAL_GOOGLE_CLIENT_SECRET"`
	OAuthRedirectURL   string `env:"SHOAL_OAUTH_REDIRECT_URL" envDefault:"http://localhost:8000/auth/callback"`

	// The assistant answers from canned responses when no API key is set.
	GeminiAPIKey  string `env:"SHOAL_GEMINI_API_KEY"`
	GeminiBaseURL string `env:"SHOAL_GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta"`
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Level converts the configured log level string to a slog.Level,
// defaulting to info.
func (c Config) Level() slog.Level {
	return parseLogLevel(c.LogLevel)
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a structured JSON logger writing to w at the configured level.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}
