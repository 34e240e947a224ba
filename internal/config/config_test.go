package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	require.Equal(t, ":8080", cfg.HTTPAddress)
	require.Equal(t, "data.db", cfg.SQLitePath)
	require.Empty(t, cfg.PostgresURL)
	require.Empty(t, cfg.KafkaBrokers)
	require.Equal(t, "energy_events", cfg.EventsTopic)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDRESS", ":9090")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092 ,")
	t.Setenv("POSTGRES_URL", "postgres://energy@localhost/energy")

	cfg := Load()

	require.Equal(t, ":9090", cfg.HTTPAddress)
	require.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	require.Equal(t, "postgres://energy@localhost/energy", cfg.PostgresURL)
}
