package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/betwallet/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.DatabaseURL)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "1000.00", cfg.WalletInitialBalance)
	assert.Equal(t, "10000.00", cfg.WalletDepositCeiling)
	assert.Equal(t, "migrations", cfg.MigrationsPath)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("REDIS_URL", "redis://example")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATABASE_TIMEOUT", "45s")
	t.Setenv("WALLET_CURRENCY", "EUR")
	t.Setenv("OUTBOX_POLL_INTERVAL", "2s")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://example", cfg.DatabaseURL)
	assert.Equal(t, "redis://example", cfg.RedisURL)
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, 45*time.Second, cfg.DatabaseTimeout)
	assert.Equal(t, "EUR", cfg.WalletCurrency)
	assert.Equal(t, 2*time.Second, cfg.OutboxPollInterval)
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("HTTP_READ_TIMEOUT", "not-a-duration")

	_, err := config.Load()
	require.Error(t, err)
}
