package config

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

const (
	DefaultSearchBaseURL   = "https://vysledky.czechswimming.cz/cz.zma.csps.portal.rest/api/public/search"
	DefaultClubAbbrev      = "PKHK"
	DefaultRequestTimeout  = 10 * time.Second
	DefaultRequestInterval = 500 * time.Millisecond
	DefaultInputFile       = "names_list.txt"
	DefaultOutputFile      = "pkhk_members.txt"
)

// Load reads configuration from environment variables and .env file.
// Every setting is optional; invalid values are fatal.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Debug("No .env file found, reading from environment variables")
	}

	cfg, err := FromLookup(os.LookupEnv)
	if err != nil {
		log.Fatalf("Invalid configuration: %s", err)
	}
	return cfg
}

// FromLookup builds a Config from the given lookup function, falling back to
// defaults for unset keys.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	getEnv := func(key, fallback string) string {
		if value, ok := lookup(key); ok && value != "" {
			return value
		}
		return fallback
	}
	getDuration := func(key string, fallback time.Duration) (time.Duration, error) {
		value, ok := lookup(key)
		if !ok || value == "" {
			return fallback, nil
		}
		d, err := time.ParseDuration(value)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		if d < 0 {
			return 0, fmt.Errorf("%s: must not be negative, got %s", key, value)
		}
		return d, nil
	}

	timeout, err := getDuration("REQUEST_TIMEOUT", DefaultRequestTimeout)
	if err != nil {
		return Config{}, err
	}
	interval, err := getDuration("REQUEST_INTERVAL", DefaultRequestInterval)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		SearchBaseURL:   getEnv("SEARCH_BASE_URL", DefaultSearchBaseURL),
		ClubAbbrev:      getEnv("CLUB_ABBREV", DefaultClubAbbrev),
		RequestTimeout:  timeout,
		RequestInterval: interval,
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		MetricsFile:     getEnv("METRICS_FILE", ""),
		XLSXOutput:      getEnv("XLSX_OUTPUT", ""),
		DBName:          getEnv("DB_NAME", ""),
		Turso: TursoConfig{
			PrimaryURL: getEnv("TURSO_PRIMARY_URL", ""),
			AuthToken:  getEnv("TURSO_AUTH_TOKEN", ""),
		},
		Slack: SlackConfig{
			Token:     getEnv("SLACK_BOT_TOKEN", ""),
			ChannelID: getEnv("SLACK_CHANNEL_ID", ""),
		},
		PubSub: PubSubConfig{
			ProjectID: getEnv("GCP_PROJECT", ""),
			Topic:     getEnv("PUBSUB_TOPIC", ""),
		},
	}
	if _, err := log.ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return cfg, nil
}
