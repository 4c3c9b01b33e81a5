package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stemerlini/fusion-plots/nistparser"
)

// clearEnv blanks every known variable for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range GetEnvVars() {
		t.Setenv(key, "")
	}
}

func TestLoadValidConfig(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8002")
	t.Setenv("ADDRESS", "127.0.0.1")
	t.Setenv("ENV", "dev")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("NIST_URL", "http://localhost:9000/isotopes")
	t.Setenv("NIST_FILE", "testdata/isotopes.txt")
	t.Setenv("FETCH_TIMEOUT", "30s")
	t.Setenv("RATE_LIMIT_RATE", "10")
	t.Setenv("RATE_LIMIT_CAPACITY", "50")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Port != "8002" {
		t.Errorf("Expected port 8002, got %s", cfg.Port)
	}
	if cfg.Env != EnvDevelopment {
		t.Errorf("Expected env dev, got %s", cfg.Env)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected log level debug, got %s", cfg.LogLevel)
	}
	if cfg.NistURL != "http://localhost:9000/isotopes" {
		t.Errorf("Expected custom NIST_URL, got %s", cfg.NistURL)
	}
	if cfg.NistFile != "testdata/isotopes.txt" {
		t.Errorf("Expected NIST_FILE testdata/isotopes.txt, got %s", cfg.NistFile)
	}
	if cfg.FetchTimeout != 30*time.Second {
		t.Errorf("Expected fetch timeout 30s, got %s", cfg.FetchTimeout)
	}
	if cfg.RateLimitRate != 10 || cfg.RateLimitCapacity != 50 {
		t.Errorf("Expected rate limit 10/50, got %g/%d", cfg.RateLimitRate, cfg.RateLimitCapacity)
	}
}

func TestLoadWithDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("Expected default port 8000, got %s", cfg.Port)
	}
	if cfg.Address != "127.0.0.1" {
		t.Errorf("Expected default address 127.0.0.1, got %s", cfg.Address)
	}
	if cfg.Env != EnvDevelopment {
		t.Errorf("Expected default env dev, got %s", cfg.Env)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected default log level info, got %s", cfg.LogLevel)
	}
	if cfg.LogDir != "logs" {
		t.Errorf("Expected default log dir logs, got %s", cfg.LogDir)
	}
	if cfg.NistURL != nistparser.DefaultURL {
		t.Errorf("Expected default NIST_URL, got %s", cfg.NistURL)
	}
	if cfg.FetchTimeout != 5*time.Minute {
		t.Errorf("Expected default fetch timeout 5m, got %s", cfg.FetchTimeout)
	}
	if cfg.RateLimitRate != 3 || cfg.RateLimitCapacity != 1000 {
		t.Errorf("Expected default rate limit 3/1000, got %g/%d", cfg.RateLimitRate, cfg.RateLimitCapacity)
	}
}

func TestLoadFileOnlyDropsDefaultURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("NIST_FILE", "isotopes.txt")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.NistURL != "" {
		t.Errorf("Expected empty NIST_URL when only a file is set, got %s", cfg.NistURL)
	}
}

func TestInvalidValues(t *testing.T) {
	testCases := []struct {
		key      string
		value    string
		expected string
	}{
		{"PORT", "abc", "PORT must be a valid number"},
		{"PORT", "0", "PORT must be between 1 and 65535"},
		{"PORT", "65536", "PORT must be between 1 and 65535"},
		{"PORT", "80", "PORT 80 is privileged"},
		{"ADDRESS", "invalid", "ADDRESS must be a valid IP address"},
		{"ADDRESS", "8.8.8.8", "is a public IP"},
		{"ENV", "invalid", "ENV must be one of"},
		{"LOG_LEVEL", "invalid", "LOG_LEVEL must be one of"},
		{"NIST_URL", "ftp://example.org/isotopes", "NIST_URL must use http or https"},
		{"NIST_URL", "http://", "NIST_URL has no host"},
		{"FETCH_TIMEOUT", "2h", "FETCH_TIMEOUT is too large"},
		{"FETCH_TIMEOUT", "-1s", "FETCH_TIMEOUT must be positive"},
		{"RATE_LIMIT_RATE", "-3", "RATE_LIMIT_RATE must be positive"},
		{"RATE_LIMIT_CAPACITY", "0", "RATE_LIMIT_CAPACITY must be positive"},
	}

	for _, tc := range testCases {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)

			_, err := Load()
			if err == nil {
				t.Fatalf("Expected error for %s=%s, got nil", tc.key, tc.value)
			}
			if !strings.Contains(err.Error(), tc.expected) {
				t.Errorf("Expected error containing %q, got %v", tc.expected, err)
			}
		})
	}
}

func TestValidateSourceRequiresOne(t *testing.T) {
	if err := validateSource("", ""); err == nil {
		t.Error("Expected error when no source is configured")
	}
	if err := validateSource("", "isotopes.txt"); err != nil {
		t.Errorf("Unexpected error for file-only source: %v", err)
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	// godotenv never overrides variables that exist, even empty ones
	_ = os.Unsetenv("PORT")
	_ = os.Unsetenv("LOG_LEVEL")

	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("PORT=8123\nLOG_LEVEL=warn\n"), 0o600); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}

	if err := LoadDotEnv(envFile); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.Port != "8123" {
		t.Errorf("Expected port from env file 8123, got %s", cfg.Port)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("Expected log level from env file warn, got %s", cfg.LogLevel)
	}

	if err := LoadDotEnv(filepath.Join(dir, "missing.env")); err != nil {
		t.Errorf("Expected missing env file to be ignored, got %v", err)
	}
}

func TestParseEnvironment(t *testing.T) {
	tests := []struct {
		input    string
		expected Environment
		hasError bool
	}{
		{"dev", EnvDevelopment, false},
		{"development", EnvDevelopment, false},
		{"staging", EnvStaging, false},
		{"prod", EnvProduction, false},
		{"Production", EnvProduction, false},
		{"test", EnvTest, false},
		{"invalid", EnvDevelopment, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			env, err := ParseEnvironment(tt.input)
			if tt.hasError {
				if err == nil {
					t.Errorf("Expected error for %s, got none", tt.input)
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error for %s: %v", tt.input, err)
			}
			if env != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, env)
			}
		})
	}
}

func TestEnvironmentString(t *testing.T) {
	if EnvStaging.String() != "staging" {
		t.Errorf("Expected staging, got %s", EnvStaging.String())
	}
}
