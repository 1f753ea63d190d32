package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8084", cfg.Server.Address())
	assert.Equal(t, "invoices", cfg.MongoDB.Collection)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, "https://v6.exchangerate-api.com/v6", cfg.ExchangeAPI.URL)
	assert.Equal(t, 0, cfg.ExchangeAPI.Timeout)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("EXCHANGE_API_KEY", "secret")
	t.Setenv("EXCHANGE_API_TIMEOUT", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Address())
	assert.True(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "secret", cfg.ExchangeAPI.APIKey)
	assert.Equal(t, 5, cfg.ExchangeAPI.Timeout)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("EXCHANGE_API_TIMEOUT", "soon")
	t.Setenv("KAFKA_ENABLED", "maybe")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.ExchangeAPI.Timeout)
	assert.False(t, cfg.Kafka.Enabled)
}
