package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"tradenexus/internal/adapters/logger" // Import the logger package for LogLevel
)

// Config holds all application configuration.
type Config struct {
	// Ledger & Aggregation
	InitialBalance  float64 // Account balance before the first trade of a symbol's history
	ChartSampleSize int     // Target number of points per chart window
	ChartMonthsBack int     // Trailing window length for chart displays

	// Store
	DBPath          string
	ImportBatchSize int // Max rows per insert statement during a replace import
	QueryPageSize   int // Rows per fetch during a full-history scan

	// Session
	SessionToken string // Shared token the presentation layer attaches to requests

	// Contact notifications (Resend); the feature is disabled unless all
	// three values are present.
	ResendAPIKey string
	ContactFrom  string
	ContactTo    string

	// Logging
	LogLevel logger.LogLevel // Use the LogLevel type from the logger adapter
}

// ContactEmailEnabled reports whether the contact-email notifier can be wired.
func (c *Config) ContactEmailEnabled() bool {
	return c.ResendAPIKey != "" && c.ContactFrom != "" && c.ContactTo != ""
}

// LoadConfig loads configuration from environment variables (.env file).
func LoadConfig() (*Config, error) {
	// Load .env file, but don't fail if it doesn't exist (allow pure env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	var err error
	var errs []string // Collect validation errors

	cfg.InitialBalance, err = getEnvAsFloatRequired("INITIAL_BALANCE", 1000.0)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid INITIAL_BALANCE: %v", err))
	} else if cfg.InitialBalance <= 0 {
		errs = append(errs, "INITIAL_BALANCE must be positive")
	}

	cfg.ChartSampleSize, err = getEnvAsIntRequired("CHART_SAMPLE_SIZE", 50)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid CHART_SAMPLE_SIZE: %v", err))
	} else if cfg.ChartSampleSize <= 0 {
		errs = append(errs, "CHART_SAMPLE_SIZE must be positive")
	}

	cfg.ChartMonthsBack, err = getEnvAsIntRequired("CHART_MONTHS_BACK", 3)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid CHART_MONTHS_BACK: %v", err))
	} else if cfg.ChartMonthsBack <= 0 {
		errs = append(errs, "CHART_MONTHS_BACK must be positive")
	}

	cfg.DBPath = getEnv("DB_PATH", "./data/tradenexus.db")

	cfg.ImportBatchSize, err = getEnvAsIntRequired("IMPORT_BATCH_SIZE", 1000)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid IMPORT_BATCH_SIZE: %v", err))
	} else if cfg.ImportBatchSize <= 0 {
		errs = append(errs, "IMPORT_BATCH_SIZE must be positive")
	}

	cfg.QueryPageSize, err = getEnvAsIntRequired("QUERY_PAGE_SIZE", 1000)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid QUERY_PAGE_SIZE: %v", err))
	} else if cfg.QueryPageSize <= 0 {
		errs = append(errs, "QUERY_PAGE_SIZE must be positive")
	}

	cfg.SessionToken = getEnv("SESSION_TOKEN", "")

	cfg.ResendAPIKey = getEnv("RESEND_API_KEY", "")
	cfg.ContactFrom = getEnv("CONTACT_FROM", "")
	cfg.ContactTo = getEnv("CONTACT_TO", "")
	// Partial contact settings are almost certainly a deployment mistake.
	if !cfg.ContactEmailEnabled() && (cfg.ResendAPIKey != "" || cfg.ContactFrom != "" || cfg.ContactTo != "") {
		errs = append(errs, "RESEND_API_KEY, CONTACT_FROM and CONTACT_TO must be set together")
	}

	cfg.LogLevel = logger.ParseLevel(getEnv("LOG_LEVEL", "INFO"))

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return cfg, nil
}

// --- Env Var Helpers ---

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsIntRequired(key string, defaultValue int) (int, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		// Use default if env var is not set at all
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		// Return error if env var is set but invalid
		return 0, fmt.Errorf("invalid integer value '%s' for key %s: %w", valueStr, key, err)
	}
	return value, nil
}

func getEnvAsFloatRequired(key string, defaultValue float64) (float64, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float value '%s' for key %s: %w", valueStr, key, err)
	}
	return value, nil
}
