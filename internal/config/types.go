package config

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	DBDriver      string
	Port          string
	LegacyDataDir string
	LogLevel      string
	Slack         SlackConfig
	Turso         TursoConfig
	ProjectID     string
	EventsTopic   string
}
type SlackConfig struct {
	Token         string
	ChannelID     string
	SigningSecret string
}
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

// SlackEnabled reports whether jornada notifications should be posted to Slack.
func (c Config) SlackEnabled() bool {
	return c.Slack.Token != "" && c.Slack.ChannelID != ""
}

// EventsEnabled reports whether jornada events should be published to Pub/Sub.
func (c Config) EventsEnabled() bool {
	return c.ProjectID != ""
}
