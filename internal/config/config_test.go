package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DenserMeerkat/fr-frontend-next/pkg/querycache"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultMarketBaseURL, cfg.MarketBaseURL)
	assert.Equal(t, DefaultTradingBaseURL, cfg.TradingBaseURL)
	assert.Equal(t, DefaultRequestTimeout, cfg.RequestTimeout)
	assert.Equal(t, DefaultDataDir, cfg.DataDir)
	assert.Equal(t, querycache.DefaultInterval, cfg.RefetchInterval)
}

func TestEnvOverridesDefaults(t *testing.T) {
	t.Setenv("MARKET_BASE_URL", "http://example.com/api/stock")
	t.Setenv("REQUEST_TIMEOUT", "30s")
	t.Setenv("REFETCH_INTERVAL", "1m")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/api/stock", cfg.MarketBaseURL)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, time.Minute, cfg.RefetchInterval)
}

func TestDurationEnvAcceptsBareSeconds(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT", "45")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, cfg.RequestTimeout)
}

func TestUnparseableDurationEnvFallsBack(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT", "soon")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultRequestTimeout, cfg.RequestTimeout)
}

func TestFileOverridesEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"log_level: debug\nrequest_timeout: 20s\nrefetch_interval: 10s\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 20*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 10*time.Second, cfg.RefetchInterval)
}

func TestMissingFileIsSkipped(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultMarketBaseURL, cfg.MarketBaseURL)
}

func TestMalformedFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidateRejectsUnsupportedInterval(t *testing.T) {
	t.Setenv("REFETCH_INTERVAL", "7s")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refetch_interval")
}

func TestValidateRejectsEmptyURL(t *testing.T) {
	cfg := &Config{
		TradingBaseURL:  DefaultTradingBaseURL,
		RequestTimeout:  time.Second,
		RefetchInterval: querycache.DefaultInterval,
	}
	assert.Error(t, cfg.Validate())
}
