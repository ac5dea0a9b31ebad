package updatekit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	require.ErrorIs(t, Config{}.Validate(), ErrConfiguration)

	require.NoError(t, Config{PlayStoreID: "com.example.app"}.Validate())
	require.NoError(t, Config{AppStoreID: "123456789"}.Validate())
	require.NoError(t, Config{CustomUpdateURL: "https://updates.example.com/check"}.Validate())
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{CustomUpdateURL: "https://updates.example.com/check"}.withDefaults()

	require.Equal(t, uint(24), cfg.BackgroundCheckIntervalHours)
	require.Equal(t, uint(6), cfg.CacheDurationHours)
	require.Equal(t, uint(30), cfg.RequestTimeoutSeconds)
	require.Equal(t, StrategyFlexible, cfg.Strategy)
	require.True(t, cfg.CachingEnabled())

	require.Equal(t, 6*time.Hour, cfg.CacheTTL())
	require.Equal(t, 24*time.Hour, cfg.BackgroundInterval())
	require.Equal(t, 30*time.Second, cfg.RequestTimeout())
}

func TestConfigDisableCaching(t *testing.T) {
	cfg := Config{
		CustomUpdateURL: "https://updates.example.com/check",
		DisableCaching:  true,
	}.withDefaults()
	require.False(t, cfg.CachingEnabled())
}
