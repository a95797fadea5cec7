package config

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	// Everything has a sensible default: a bare checkout runs against a local SQLite file
	// with Slack and Pub/Sub switched off.
	getEnv := func(key, fallback string) string {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			return value
		}
		return fallback
	}

	cfg := Config{
		DBName:        getEnv("DB_NAME", "data/app.db"),
		DBDriver:      getEnv("DB_DRIVER", "sqlite3"),
		Port:          getEnv("PORT", "8080"),
		LegacyDataDir: getEnv("LEGACY_DATA_DIR", "data"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		Slack: SlackConfig{
			Token:         getEnv("SLACK_BOT_TOKEN", ""),
			ChannelID:     getEnv("SLACK_CHANNEL_ID", ""),
			SigningSecret: getEnv("SLACK_SIGNING_SECRET", ""),
		},
		Turso: TursoConfig{
			PrimaryURL: getEnv("TURSO_PRIMARY_URL", ""),
			AuthToken:  getEnv("TURSO_AUTH_TOKEN", ""),
		},
		ProjectID:   getEnv("GCP_PROJECT", ""),
		EventsTopic: getEnv("PUBSUB_TOPIC", "jornada-events"),
	}
	return cfg
}
