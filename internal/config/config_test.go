package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"DB_NAME", "DB_DRIVER", "PORT", "LEGACY_DATA_DIR", "LOG_LEVEL", "SLACK_BOT_TOKEN", "SLACK_CHANNEL_ID", "SLACK_SIGNING_SECRET", "TURSO_PRIMARY_URL", "TURSO_AUTH_TOKEN", "GCP_PROJECT", "PUBSUB_TOPIC"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "data/app.db", cfg.DBName)
	assert.Equal(t, "sqlite3", cfg.DBDriver)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "data", cfg.LegacyDataDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "jornada-events", cfg.EventsTopic)
	assert.False(t, cfg.SlackEnabled())
	assert.False(t, cfg.EventsEnabled())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("DB_NAME", "/tmp/jornada.db")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("PORT", "9090")
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-test")
	t.Setenv("SLACK_CHANNEL_ID", "C123")
	t.Setenv("GCP_PROJECT", "jornada-prod")

	cfg := Load()
	assert.Equal(t, "/tmp/jornada.db", cfg.DBName)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "xoxb-test", cfg.Slack.Token)
	assert.True(t, cfg.SlackEnabled())
	assert.True(t, cfg.EventsEnabled())
}

func TestSlackEnabled_NeedsChannel(t *testing.T) {
	cfg := Config{Slack: SlackConfig{Token: "xoxb-test"}}
	assert.False(t, cfg.SlackEnabled())
}
