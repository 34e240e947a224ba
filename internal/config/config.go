// Package config centralises configuration parsing for the energy manager.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config captures runtime configuration values, with defaults suited to
// local development.
type Config struct {
	HTTPAddress  string
	SQLitePath   string
	PostgresURL  string // empty means the embedded sqlite store is used
	KafkaBrokers []string
	EventsTopic  string
	CORSOrigin   string
	LogLevel     string
}

// LoadDotenv loads a .env file when present. Absence is not an error; real
// environment variables win either way.
func LoadDotenv(logger *logrus.Logger) {
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file loaded, using environment variables")
	}
}

// Load reads environment variables into Config.
func Load() Config {
	cfg := Config{
		HTTPAddress: getEnv("HTTP_ADDRESS", ":8080"),
		SQLitePath:  getEnv("SQLITE_PATH", "data.db"),
		PostgresURL: getEnv("POSTGRES_URL", ""),
		EventsTopic: getEnv("ENERGY_EVENTS_TOPIC", "energy_events"),
		CORSOrigin:  getEnv("CORS_ORIGIN", "*"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}

	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		cfg.KafkaBrokers = splitAndTrim(brokers)
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
