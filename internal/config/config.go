// Package config loads application settings from config.yaml, a .env file,
// and environment variables, in that priority order, over built-in defaults.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/DenserMeerkat/fr-frontend-next/pkg/querycache"
)

// Built-in defaults. The two base URLs point at the local dev proxy.
const (
	DefaultMarketBaseURL  = "http://localhost:8600/api/stock"
	DefaultTradingBaseURL = "http://localhost:8600/api/trading"
	DefaultRequestTimeout = 10 * time.Second
	DefaultDataDir        = "data"
	DefaultLogFile        = "logs/frontend.log"
	DefaultLogLevel       = "info"
)

// Config holds everything the commands need at startup.
type Config struct {
	MarketBaseURL   string        `yaml:"market_base_url"`
	TradingBaseURL  string        `yaml:"trading_base_url"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	DataDir         string        `yaml:"data_dir"`
	LogFile         string        `yaml:"log_file"`
	LogLevel        string        `yaml:"log_level"`
	RefetchInterval time.Duration `yaml:"refetch_interval"`
}

// Load reads filePath (skipped when empty or missing), then .env, then the
// environment, and fills the gaps with defaults. The result is validated.
func Load(filePath string) (*Config, error) {
	// .env values become environment variables; existing ones win.
	_ = godotenv.Load()

	cfg := &Config{
		MarketBaseURL:   DefaultMarketBaseURL,
		TradingBaseURL:  DefaultTradingBaseURL,
		RequestTimeout:  DefaultRequestTimeout,
		DataDir:         DefaultDataDir,
		LogFile:         DefaultLogFile,
		LogLevel:        DefaultLogLevel,
		RefetchInterval: querycache.DefaultInterval,
	}

	applyEnv(cfg)

	if filePath != "" {
		if err := applyFile(cfg, filePath); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyFile(cfg *Config, filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "read config file %s", filePath)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return errors.Wrapf(err, "parse config file %s", filePath)
	}

	if file.MarketBaseURL != "" {
		cfg.MarketBaseURL = file.MarketBaseURL
	}
	if file.TradingBaseURL != "" {
		cfg.TradingBaseURL = file.TradingBaseURL
	}
	if file.RequestTimeout > 0 {
		cfg.RequestTimeout = file.RequestTimeout
	}
	if file.DataDir != "" {
		cfg.DataDir = file.DataDir
	}
	if file.LogFile != "" {
		cfg.LogFile = file.LogFile
	}
	if file.LogLevel != "" {
		cfg.LogLevel = file.LogLevel
	}
	if file.RefetchInterval > 0 {
		cfg.RefetchInterval = file.RefetchInterval
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.MarketBaseURL = getEnv("MARKET_BASE_URL", cfg.MarketBaseURL)
	cfg.TradingBaseURL = getEnv("TRADING_BASE_URL", cfg.TradingBaseURL)
	cfg.DataDir = getEnv("DATA_DIR", cfg.DataDir)
	cfg.LogFile = getEnv("LOG_FILE", cfg.LogFile)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.RequestTimeout = parseDurationEnv("REQUEST_TIMEOUT", cfg.RequestTimeout)
	cfg.RefetchInterval = parseDurationEnv("REFETCH_INTERVAL", cfg.RefetchInterval)
}

// Validate rejects configurations the commands cannot start with.
func (c *Config) Validate() error {
	if c.MarketBaseURL == "" {
		return errors.New("market_base_url must not be empty")
	}
	if c.TradingBaseURL == "" {
		return errors.New("trading_base_url must not be empty")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("request_timeout must be positive")
	}
	if !querycache.IsAllowedInterval(c.RefetchInterval) {
		return errors.Errorf("refetch_interval %s is not one of the supported intervals", c.RefetchInterval)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseDurationEnv(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
