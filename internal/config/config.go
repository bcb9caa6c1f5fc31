package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

// envFiles are tried in order; the first one that loads wins. Variables
// already present in the environment are never overridden.
var envFiles = []string{".env", "../.env"}

type Config struct {
	// Backend API
	APIBaseURL  string
	APIToken    string
	HTTPTimeout time.Duration

	// Listing
	PageSize int

	// Statement export
	ExportFormat    string
	ExportDir       string
	BulkConcurrency int

	LogLevel string
}

func Load() *Config {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err == nil {
			break
		}
	}

	return &Config{
		APIBaseURL:  getEnv("API_BASE_URL", "http://localhost:4000/api/v1"),
		APIToken:    getEnv("API_TOKEN", ""),
		HTTPTimeout: getEnvDuration("HTTP_TIMEOUT", 15*time.Second),

		PageSize: getEnvInt("PAGE_SIZE", 20),

		ExportFormat:    strings.ToLower(getEnv("EXPORT_FORMAT", "csv")),
		ExportDir:       getEnv("EXPORT_DIR", "./statements"),
		BulkConcurrency: getEnvInt("BULK_CONCURRENCY", 4),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var errors []string

	if parsed, err := url.Parse(c.APIBaseURL); err != nil {
		errors = append(errors, fmt.Sprintf("invalid API base URL '%s': %v", c.APIBaseURL, err))
	} else if parsed.Scheme != "http" && parsed.Scheme != "https" {
		errors = append(errors, fmt.Sprintf("invalid API base URL scheme '%s': must be 'http' or 'https'", parsed.Scheme))
	}

	if c.HTTPTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid HTTP timeout %v: must be at least 1 second", c.HTTPTimeout))
	} else if c.HTTPTimeout > 5*time.Minute {
		errors = append(errors, fmt.Sprintf("invalid HTTP timeout %v: must be at most 5 minutes", c.HTTPTimeout))
	}

	if c.PageSize < 1 || c.PageSize > 500 {
		errors = append(errors, fmt.Sprintf("invalid page size %d: must be between 1 and 500", c.PageSize))
	}

	if c.ExportFormat != "csv" && c.ExportFormat != "pdf" {
		errors = append(errors, fmt.Sprintf("invalid export format '%s': must be 'csv' or 'pdf'", c.ExportFormat))
	}
	if c.ExportDir == "" {
		errors = append(errors, "export directory cannot be empty")
	}

	if c.BulkConcurrency < 1 || c.BulkConcurrency > 64 {
		errors = append(errors, fmt.Sprintf("invalid bulk concurrency %d: must be between 1 and 64", c.BulkConcurrency))
	}

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level '%s'", c.LogLevel))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
