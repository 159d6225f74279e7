package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port        string   `yaml:"port"`
	Mode        string   `yaml:"mode"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// CatalogConfig points at the seed listings. An empty SeedPath selects the
// listings built into the binary.
type CatalogConfig struct {
	SeedPath string `yaml:"seed_path"`
}

// RateLimitConfig limits listing submissions
type RateLimitConfig struct {
	// Enabled is nil when neither the file nor RATE_LIMIT_ENABLED set it.
	Enabled           *bool `yaml:"enabled"`
	RequestsPerMinute int   `yaml:"requests_per_minute"`
	RequestsPerHour   int   `yaml:"requests_per_hour"`
}

// IsEnabled reports whether submissions are limited. Unset means enabled.
func (r RateLimitConfig) IsEnabled() bool {
	return r.Enabled == nil || *r.Enabled
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Format      string `yaml:"format"`
	LogRequests bool   `yaml:"log_requests"`
}

// DefaultConfig returns default configuration with environment overrides applied
func DefaultConfig() *Config {
	config := baseConfig()
	config.applyEnv()
	return config
}

// baseConfig holds defaults that are not backed by environment variables.
// Env-backed fields stay empty so applyEnv can tell "unset" from "set".
func baseConfig() *Config {
	return &Config{
		RateLimit: RateLimitConfig{
			RequestsPerMinute: 10,
			RequestsPerHour:   120,
		},
		Logging: LoggingConfig{
			LogRequests: true,
		},
	}
}

// LoadConfig loads configuration from a YAML file and applies environment
// overrides. A missing file is not an error.
func LoadConfig(filepath string) (*Config, error) {
	config := baseConfig()

	if _, err := os.Stat(filepath); err == nil {
		data, err := os.ReadFile(filepath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	config.applyEnv()
	return config, nil
}

// LoadDotEnv loads variables from a .env file into the process environment.
// Variables that are already set win. A missing file is ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// applyEnv fills settings the file left empty from the environment.
func (c *Config) applyEnv() {
	c.Server.Port = GetEnvOrConfig(c.Server.Port, "PORT", "8084")
	c.Server.Mode = GetEnvOrConfig(c.Server.Mode, "GIN_MODE", "release")
	if len(c.Server.CORSOrigins) == 0 {
		c.Server.CORSOrigins = splitList(GetEnv("CORS_ORIGINS", "http://localhost:8081,http://localhost:19006"))
	}
	c.Catalog.SeedPath = GetEnvOrConfig(c.Catalog.SeedPath, "SEED_PATH", "")
	c.Logging.Level = GetEnvOrConfig(c.Logging.Level, "LOG_LEVEL", "info")
	c.Logging.Format = GetEnvOrConfig(c.Logging.Format, "LOG_FORMAT", "text")

	if c.RateLimit.Enabled == nil {
		if enabled, err := strconv.ParseBool(os.Getenv("RATE_LIMIT_ENABLED")); err == nil {
			c.RateLimit.Enabled = &enabled
		}
	}
}

// GetEnv returns the environment variable or the default when unset
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvOrConfig returns config value if set, otherwise falls back to environment variable, then default
func GetEnvOrConfig(configValue, envKey, defaultValue string) string {
	if configValue != "" {
		return configValue
	}
	return GetEnv(envKey, defaultValue)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// GinMode returns a mode gin accepts, falling back to release
func (s ServerConfig) GinMode() string {
	switch s.Mode {
	case "debug", "release", "test":
		return s.Mode
	}
	return "release"
}
