// Package common provides shared utilities for BursaPulse
package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for BursaPulse
type Config struct {
	Environment string        `toml:"environment"`
	Server      ServerConfig  `toml:"server"`
	Market      MarketConfig  `toml:"market"`
	Clients     ClientsConfig `toml:"clients"`
	Logging     LoggingConfig `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// MarketConfig holds market refresh configuration
type MarketConfig struct {
	RefreshInterval string `toml:"refresh_interval"` // overview poll cadence, default "60s"
	BenchmarkSymbol string `toml:"benchmark_symbol"` // default "^KLSE"
}

// GetRefreshInterval parses and returns the refresh interval
func (c *MarketConfig) GetRefreshInterval() time.Duration {
	d, err := time.ParseDuration(c.RefreshInterval)
	if err != nil {
		return 60 * time.Second
	}
	return d
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	Yahoo     YahooConfig     `toml:"yahoo"`
	Firecrawl FirecrawlConfig `toml:"firecrawl"`
	Gemini    GeminiConfig    `toml:"gemini"`
}

// YahooConfig holds quote source configuration
type YahooConfig struct {
	BaseURL   string `toml:"base_url"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *YahooConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// FirecrawlConfig holds search/scrape source configuration
type FirecrawlConfig struct {
	BaseURL string `toml:"base_url"`
	APIKey  string `toml:"api_key"`
	Timeout string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *FirecrawlConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// GeminiConfig holds Gemini API configuration
type GeminiConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// ForensicTimeout is the ceiling on one ownership-record acquisition.
// Past it the degraded result path takes over.
const ForensicTimeout = 15 * time.Second

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Market: MarketConfig{
			RefreshInterval: "60s",
			BenchmarkSymbol: "^KLSE",
		},
		Clients: ClientsConfig{
			Yahoo: YahooConfig{
				BaseURL:   "https://query2.finance.yahoo.com",
				RateLimit: 5,
				Timeout:   "30s",
			},
			Firecrawl: FirecrawlConfig{
				BaseURL: "https://api.firecrawl.dev",
				Timeout: "30s",
			},
			Gemini: GeminiConfig{
				Model: "gemini-2.0-flash",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("BURSAPULSE_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("BURSAPULSE_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("BURSAPULSE_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("BURSAPULSE_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if iv := os.Getenv("BURSAPULSE_REFRESH_INTERVAL"); iv != "" {
		config.Market.RefreshInterval = iv
	}
}

// ResolveAPIKey resolves an API key from environment variables or a
// config-file fallback.
func ResolveAPIKey(name string, fallback string) (string, error) {
	keyToEnvMapping := map[string][]string{
		"firecrawl_api_key": {"FIRECRAWL_API_KEY", "BURSAPULSE_FIRECRAWL_API_KEY"},
		"gemini_api_key":    {"GEMINI_API_KEY", "BURSAPULSE_GEMINI_API_KEY", "GOOGLE_API_KEY"},
	}

	if envVarNames, ok := keyToEnvMapping[name]; ok {
		for _, envVarName := range envVarNames {
			if envValue := os.Getenv(envVarName); envValue != "" {
				return envValue, nil
			}
		}
	}

	if fallback != "" {
		return fallback, nil
	}

	return "", fmt.Errorf("API key '%s' not found in environment or config", name)
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}
