package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Execution ExecutionConfig `mapstructure:"execution"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Guard     GuardConfig     `mapstructure:"guard"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Transport          string   `mapstructure:"transport"`
	HTTPPort           int      `mapstructure:"http_port"`
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

// AuthConfig maps bearer tokens to caller identities
type AuthConfig struct {
	Tokens map[string]string `mapstructure:"tokens"`
}

// ExecutionConfig holds snippet evaluation limits
type ExecutionConfig struct {
	TimeoutSec   int `mapstructure:"timeout_sec"`
	MaxCodeBytes int `mapstructure:"max_code_bytes"`
}

// RateLimitConfig holds the fixed-window rate limit parameters
type RateLimitConfig struct {
	WindowSec   int `mapstructure:"window_sec"`
	MaxRequests int `mapstructure:"max_requests"`
}

// GuardConfig holds additional denylist patterns on top of the built-in set
type GuardConfig struct {
	ExtraPatterns []string `mapstructure:"extra_patterns"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Mode  string `mapstructure:"mode"`
	Level string `mapstructure:"level"`
}

// New loads and validates the application configuration from the
// working directory (and ./config).
func New() (*Config, error) {
	return NewFromPath(".")
}

// NewFromPath loads and validates the application configuration from
// the given directory.
func NewFromPath(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.AddConfigPath(dir + "/config")

	// Set default values
	v.SetDefault("server.transport", "http")
	v.SetDefault("server.http_port", 8080)
	v.SetDefault("server.cors_allowed_origins", []string{"*"})
	v.SetDefault("auth.tokens", map[string]string{})
	v.SetDefault("execution.timeout_sec", 5)
	v.SetDefault("execution.max_code_bytes", 65536)
	v.SetDefault("ratelimit.window_sec", 60)
	v.SetDefault("ratelimit.max_requests", 5)
	v.SetDefault("guard.extra_patterns", []string{})
	v.SetDefault("logging.mode", "production")
	v.SetDefault("logging.level", "info")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// If config file not found, continue with defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}

	return &config, nil
}

// validate ensures the configuration is valid
func (c *Config) validate() error {
	if c.Server.Transport != "stdio" && c.Server.Transport != "http" {
		return fmt.Errorf("invalid server.transport: %s, must be 'stdio' or 'http'", c.Server.Transport)
	}

	if c.Server.Transport == "http" && (c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535) {
		return fmt.Errorf("invalid server.http_port: %d", c.Server.HTTPPort)
	}

	if c.Execution.TimeoutSec <= 0 {
		return fmt.Errorf("execution.timeout_sec must be positive, got: %d", c.Execution.TimeoutSec)
	}

	if c.Execution.MaxCodeBytes <= 0 {
		return fmt.Errorf("execution.max_code_bytes must be positive, got: %d", c.Execution.MaxCodeBytes)
	}

	if c.RateLimit.WindowSec <= 0 {
		return fmt.Errorf("ratelimit.window_sec must be positive, got: %d", c.RateLimit.WindowSec)
	}

	if c.RateLimit.MaxRequests <= 0 {
		return fmt.Errorf("ratelimit.max_requests must be positive, got: %d", c.RateLimit.MaxRequests)
	}

	if c.Logging.Mode != "production" && c.Logging.Mode != "development" {
		return fmt.Errorf("invalid logging.mode: %s, must be 'production' or 'development'", c.Logging.Mode)
	}

	return nil
}

// GetTimeout returns the evaluation timeout as a duration
func (c *Config) GetTimeout() time.Duration {
	return time.Duration(c.Execution.TimeoutSec) * time.Second
}

// GetWindow returns the rate-limit window as a duration
func (c *Config) GetWindow() time.Duration {
	return time.Duration(c.RateLimit.WindowSec) * time.Second
}
