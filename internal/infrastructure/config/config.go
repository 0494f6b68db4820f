package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for dbscope.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Mode     string         `yaml:"mode"` // "stdio" or "http"
	Database DatabaseConfig `yaml:"database"`
	API      APIConfig      `yaml:"api"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DatabaseConfig contains the process-wide database defaults.
//
// Path is the default database file used when a request does not name one.
// Key is the SQLCipher passphrase for encrypted files. It is write-only
// configuration: it must never appear in logs, payloads, or error messages,
// and it is never read from request parameters.
type DatabaseConfig struct {
	Path string `yaml:"path"`
	Key  string `yaml:"-"` // environment only (DBSCOPE_DATABASE_KEY), never from YAML
}

// APIConfig contains HTTP API server settings.
type APIConfig struct {
	Host     string           `yaml:"host"`
	Port     int              `yaml:"port"`
	Token    string           `yaml:"-"` // environment only (DBSCOPE_API_TOKEN)
	Timeouts APITimeoutConfig `yaml:"timeouts"`
	CORS     CORSConfig       `yaml:"cors"`
}

// APITimeoutConfig contains HTTP timeout settings in seconds.
type APITimeoutConfig struct {
	Read  int `yaml:"read"`
	Write int `yaml:"write"`
	Idle  int `yaml:"idle"`
}

// CORSConfig contains Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: DBSCOPE_SECTION_KEY
// For example: DBSCOPE_DATABASE_PATH, DBSCOPE_API_PORT
//
// Parameters:
//   - path: Path to the YAML configuration file. May be empty, in which
//     case only defaults and environment variables apply.
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If the file cannot be read, parsed, or validation fails
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Mode: "stdio",
		API: APIConfig{
			Host: "127.0.0.1",
			Port: 8395,
			Timeouts: APITimeoutConfig{
				Read:  30,
				Write: 30,
				Idle:  60,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stderr",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: DBSCOPE_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DBSCOPE_MODE"); v != "" {
		cfg.Mode = v
	}

	// Database
	if v := os.Getenv("DBSCOPE_DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}
	// The encryption key is only ever sourced from the environment.
	if v := os.Getenv("DBSCOPE_DATABASE_KEY"); v != "" {
		cfg.Database.Key = v
	}

	// API
	if v := os.Getenv("DBSCOPE_API_HOST"); v != "" {
		cfg.API.Host = v
	}
	if v := os.Getenv("DBSCOPE_API_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.API.Port = port
		}
	}
	if v := os.Getenv("DBSCOPE_API_TOKEN"); v != "" {
		cfg.API.Token = v
	}

	// Logging
	if v := os.Getenv("DBSCOPE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate checks the configuration for errors.
//
// Returns:
//   - error: Description of validation failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	if c.Mode != "stdio" && c.Mode != "http" {
		errs = append(errs, "mode must be \"stdio\" or \"http\"")
	}

	if c.Mode == "http" {
		if c.API.Port < 1 || c.API.Port > 65535 {
			errs = append(errs, "api.port must be between 1 and 65535")
		}
	}

	// The default database path is optional: operations may name their own
	// path per request. Its absence only becomes an error at call time.

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// GetReadTimeout returns the API read timeout as a Duration.
func (c *Config) GetReadTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Read) * time.Second
}

// GetWriteTimeout returns the API write timeout as a Duration.
func (c *Config) GetWriteTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Write) * time.Second
}

// GetIdleTimeout returns the API idle timeout as a Duration.
func (c *Config) GetIdleTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Idle) * time.Second
}
