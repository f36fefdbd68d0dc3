package config

import "time"

// Config holds all configuration for the application.
type Config struct {
	SearchBaseURL   string
	ClubAbbrev      string
	RequestTimeout  time.Duration
	RequestInterval time.Duration
	LogLevel        string
	MetricsFile     string
	XLSXOutput      string
	DBName          string
	Turso           TursoConfig
	Slack           SlackConfig
	PubSub          PubSubConfig
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

type SlackConfig struct {
	Token     string
	ChannelID string
}

type PubSubConfig struct {
	ProjectID string
	Topic     string
}

// HistoryEnabled reports whether run history should be persisted.
func (c Config) HistoryEnabled() bool {
	return c.DBName != "" || c.Turso.PrimaryURL != ""
}

func (c Config) SlackEnabled() bool {
	return c.Slack.Token != "" && c.Slack.ChannelID != ""
}

func (c Config) PubSubEnabled() bool {
	return c.PubSub.ProjectID != "" && c.PubSub.Topic != ""
}
