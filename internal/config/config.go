// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DataDir       string // Base directory for the sqlite databases (always absolute)
	Port          int
	LogLevel      string
	LogPretty     bool
	DevMode       bool
	DefaultUserID string // Identity used when a request carries no X-User-ID header
	SeedDemoData  bool
	Pricing       *PricingConfig
	Schedule      *ScheduleConfig
}

// PricingConfig holds live price lookup settings
type PricingConfig struct {
	CacheTTL         time.Duration
	FetchTimeout     time.Duration
	CoinGeckoBaseURL string
	StooqBaseURL     string
}

// ScheduleConfig holds cron expressions (with seconds) for background jobs
type ScheduleConfig struct {
	PriceRefresh   string
	CacheCleanup   string
	WALCheck       string
	IntegrityCheck string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	dataDir := getEnv("DASHBOARD_DATA_DIR", "./data")
	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}
	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	cfg := &Config{
		DataDir:       absDataDir,
		Port:          getEnvAsInt("PORT", 4000),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogPretty:     getEnvAsBool("LOG_PRETTY", true),
		DevMode:       getEnvAsBool("DEV_MODE", false),
		DefaultUserID: getEnv("DEFAULT_USER_ID", "user-1"),
		SeedDemoData:  getEnvAsBool("SEED_DEMO_DATA", true),
		Pricing: &PricingConfig{
			CacheTTL:         getEnvAsDuration("PRICE_CACHE_TTL", 10*time.Minute),
			FetchTimeout:     getEnvAsDuration("PRICE_FETCH_TIMEOUT", 10*time.Second),
			CoinGeckoBaseURL: getEnv("COINGECKO_BASE_URL", "https://api.coingecko.com/api/v3"),
			StooqBaseURL:     getEnv("STOOQ_BASE_URL", "https://stooq.pl"),
		},
		Schedule: &ScheduleConfig{
			PriceRefresh:   getEnv("PRICE_REFRESH_CRON", "0 */15 * * * *"),
			CacheCleanup:   getEnv("CACHE_CLEANUP_CRON", "0 0 3 * * *"),
			WALCheck:       getEnv("WAL_CHECK_CRON", "0 0 * * * *"),
			IntegrityCheck: getEnv("INTEGRITY_CHECK_CRON", "0 30 3 * * *"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.DefaultUserID == "" {
		return fmt.Errorf("DEFAULT_USER_ID must not be empty")
	}
	if c.Pricing == nil || c.Pricing.CacheTTL <= 0 {
		return fmt.Errorf("PRICE_CACHE_TTL must be positive")
	}
	if c.Pricing.FetchTimeout <= 0 {
		return fmt.Errorf("PRICE_FETCH_TIMEOUT must be positive")
	}
	return nil
}

// AppDBPath returns the path of the main application database
func (c *Config) AppDBPath() string {
	return filepath.Join(c.DataDir, "app.db")
}

// ClientDataDBPath returns the path of the external client cache database
func (c *Config) ClientDataDBPath() string {
	return filepath.Join(c.DataDir, "client_data.db")
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
