package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		APIBaseURL:      "https://ops.example.com/api/v1",
		HTTPTimeout:     10 * time.Second,
		PageSize:        20,
		ExportFormat:    "pdf",
		ExportDir:       "./out",
		BulkConcurrency: 4,
		LogLevel:        "debug",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		errorString string
	}{
		{
			name:   "valid config",
			mutate: func(*Config) {},
		},
		{
			name:        "bad scheme",
			mutate:      func(c *Config) { c.APIBaseURL = "ftp://ops.example.com" },
			errorString: "invalid API base URL scheme 'ftp': must be 'http' or 'https'",
		},
		{
			name:        "timeout too short",
			mutate:      func(c *Config) { c.HTTPTimeout = 100 * time.Millisecond },
			errorString: "invalid HTTP timeout 100ms: must be at least 1 second",
		},
		{
			name:        "page size zero",
			mutate:      func(c *Config) { c.PageSize = 0 },
			errorString: "invalid page size 0: must be between 1 and 500",
		},
		{
			name:        "unknown export format",
			mutate:      func(c *Config) { c.ExportFormat = "xlsx" },
			errorString: "invalid export format 'xlsx': must be 'csv' or 'pdf'",
		},
		{
			name:        "no export dir",
			mutate:      func(c *Config) { c.ExportDir = "" },
			errorString: "export directory cannot be empty",
		},
		{
			name:        "concurrency out of range",
			mutate:      func(c *Config) { c.BulkConcurrency = 100 },
			errorString: "invalid bulk concurrency 100: must be between 1 and 64",
		},
		{
			name:        "unknown log level",
			mutate:      func(c *Config) { c.LogLevel = "loud" },
			errorString: "invalid log level 'loud'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.errorString == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
}

func TestConfig_ValidateAggregatesErrors(t *testing.T) {
	cfg := validConfig()
	cfg.PageSize = -1
	cfg.ExportFormat = "doc"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid page size -1")
	assert.Contains(t, err.Error(), "invalid export format 'doc'")
}

func withEnvFiles(t *testing.T, files ...string) {
	t.Helper()
	saved := envFiles
	envFiles = files
	t.Cleanup(func() { envFiles = saved })
}

func TestLoad_Defaults(t *testing.T) {
	withEnvFiles(t)
	for _, key := range []string{"API_BASE_URL", "API_TOKEN", "HTTP_TIMEOUT", "PAGE_SIZE", "EXPORT_FORMAT", "EXPORT_DIR", "BULK_CONCURRENCY", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "http://localhost:4000/api/v1", cfg.APIBaseURL)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 20, cfg.PageSize)
	assert.Equal(t, "csv", cfg.ExportFormat)
	assert.Equal(t, 4, cfg.BulkConcurrency)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvironmentAndDotEnv(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("PAGE_SIZE=50\nEXPORT_FORMAT=PDF\nAPI_TOKEN=from-file\n"), 0o600))
	withEnvFiles(t, filepath.Join(dir, "missing.env"), envPath)

	t.Setenv("API_TOKEN", "from-env")
	t.Setenv("HTTP_TIMEOUT", "30s")
	t.Setenv("BULK_CONCURRENCY", "not-a-number")
	// Registered so t.Setenv restores them after godotenv sets them.
	t.Setenv("PAGE_SIZE", "")
	t.Setenv("EXPORT_FORMAT", "")
	os.Unsetenv("PAGE_SIZE")
	os.Unsetenv("EXPORT_FORMAT")

	cfg := Load()
	assert.Equal(t, "from-env", cfg.APIToken)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 50, cfg.PageSize)
	assert.Equal(t, "pdf", cfg.ExportFormat)
	assert.Equal(t, 4, cfg.BulkConcurrency)
}
