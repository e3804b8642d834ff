package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayo6706/wallet-ledger/internal/domain"
)

const testSecret = "config-test-secret-0123456789-abcd"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 168*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 3*time.Second, cfg.TransferLockTimeout)
	assert.Equal(t, 2, cfg.TransferMaxRetries)
	assert.Equal(t, time.Hour, cfg.ReconciliationInterval)
	assert.Equal(t, 24*time.Hour, cfg.IdempotencyTTL)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "wallet.transfers", cfg.KafkaTopic)
	assert.True(t, cfg.NetworkFees.Fee(domain.BTC).Equal(decimal.RequireFromString("0.0005")))
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "too-short")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoadKafkaBrokerList(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("KAFKA_BROKERS", "broker1:9092, broker2:9092 ,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
}

func TestLoadFeeOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("NETWORK_FEES", "BTC=0.0004, eth=0.002")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.NetworkFees.Fee(domain.BTC).Equal(decimal.RequireFromString("0.0004")))
	assert.True(t, cfg.NetworkFees.Fee(domain.ETH).Equal(decimal.RequireFromString("0.002")))
	// Untouched currencies keep their defaults.
	assert.True(t, cfg.NetworkFees.Fee(domain.USDT).Equal(decimal.NewFromInt(1)))
}

func TestLoadRejectsBadFeeOverrides(t *testing.T) {
	cases := []string{"BTC", "BTC=abc", "XYZ=0.1", "BTC=-1"}
	for _, raw := range cases {
		t.Run(raw, func(t *testing.T) {
			t.Setenv("JWT_SECRET", testSecret)
			t.Setenv("NETWORK_FEES", raw)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
