// Package config handles application configuration management.
//
// Values are resolved in order: built-in defaults, an optional TOML file,
// ARCVIEW_* environment variables, and finally command line overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/docker/go-units"
	"github.com/oszuidwest/zwfm-arcview/internal/apperrors"
	"github.com/pelletier/go-toml/v2"
)

// DefaultSecretKey matches the development key the application always shipped with.
const DefaultSecretKey = "dev"

// Config holds all application configuration. It is built once at startup
// and treated as read-only afterwards.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Instance InstanceConfig `toml:"instance"`
	Web      WebConfig      `toml:"web"`
	Logging  LoggingConfig  `toml:"logging"`

	// SecretKey signs the session cookie. Must be changed from default in production.
	SecretKey   string      `toml:"secret_key"`
	Environment Environment `toml:"environment"`
}

// ServerConfig holds HTTP server and CORS configuration.
type ServerConfig struct {
	Address string `toml:"address"`
	// AllowedOrigins is a comma-separated list of allowed origins for CORS
	AllowedOrigins  string `toml:"allowed_origins"`
	ShutdownTimeout string `toml:"shutdown_timeout"`
	// MaxHeaderSize accepts human readable sizes such as "1MB"
	MaxHeaderSize string `toml:"max_header_size"`
}

// InstanceConfig controls the instance-local writable directory.
type InstanceConfig struct {
	Path string `toml:"path"`
	// Strict turns instance directory failures into startup errors.
	Strict bool `toml:"strict"`
}

// WebConfig holds template and static asset locations.
type WebConfig struct {
	TemplatesPath  string         `toml:"templates_path"`
	StaticPath     string         `toml:"static_path"`
	SessionCookie  string         `toml:"session_cookie"`
	CookieSameSite CookieSameSite `toml:"cookie_samesite"`
}

// LoggingConfig holds log level and output format.
type LoggingConfig struct {
	Level  string    `toml:"level"`
	Format LogFormat `toml:"format"`
}

// Default returns a configuration populated with built-in defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Address:         ":8080",
			ShutdownTimeout: "30s",
			MaxHeaderSize:   "1MB",
		},
		Instance: InstanceConfig{
			Path: "instance",
		},
		Web: WebConfig{
			TemplatesPath:  "templates",
			StaticPath:     "static",
			SessionCookie:  "arcview_session",
			CookieSameSite: SameSiteLax,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: LogFormatText,
		},
		SecretKey:   DefaultSecretKey,
		Environment: EnvDevelopment,
	}
}

// Load reads configuration from defaults, the optional TOML file at path and
// environment variables. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) loadEnv() error {
	c.Server.Address = getEnv("ARCVIEW_SERVER_ADDRESS", c.Server.Address)
	c.Server.AllowedOrigins = getEnv("ARCVIEW_ALLOWED_ORIGINS", c.Server.AllowedOrigins)
	c.Server.ShutdownTimeout = getEnv("ARCVIEW_SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout)
	c.Server.MaxHeaderSize = getEnv("ARCVIEW_MAX_HEADER_SIZE", c.Server.MaxHeaderSize)
	c.Instance.Path = getEnv("ARCVIEW_INSTANCE_PATH", c.Instance.Path)
	c.Web.TemplatesPath = getEnv("ARCVIEW_TEMPLATES_PATH", c.Web.TemplatesPath)
	c.Web.StaticPath = getEnv("ARCVIEW_STATIC_PATH", c.Web.StaticPath)
	c.Logging.Level = getEnv("ARCVIEW_LOG_LEVEL", c.Logging.Level)
	c.Logging.Format = LogFormat(getEnv("ARCVIEW_LOG_FORMAT", string(c.Logging.Format)))
	c.SecretKey = getEnv("ARCVIEW_SECRET_KEY", c.SecretKey)
	c.Environment = Environment(getEnv("ARCVIEW_ENV", string(c.Environment)))

	if v := os.Getenv("ARCVIEW_INSTANCE_STRICT"); v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return apperrors.Config("instance.strict", "ARCVIEW_INSTANCE_STRICT must be a boolean").Wrap(err)
		}
		c.Instance.Strict = strict
	}
	return nil
}

// Validate checks required values, enums, durations and sizes.
func (c *Config) Validate() error {
	if c.Server.Address == "" {
		return apperrors.Config("server.address", "server address is required")
	}
	if _, err := time.ParseDuration(c.Server.ShutdownTimeout); err != nil {
		return apperrors.Config("server.shutdown_timeout", "invalid shutdown_timeout").Wrap(err)
	}
	if _, err := units.FromHumanSize(c.Server.MaxHeaderSize); err != nil {
		return apperrors.Config("server.max_header_size", "invalid max_header_size").Wrap(err)
	}
	if !c.Environment.IsValid() {
		return apperrors.Config("environment", fmt.Sprintf("unknown environment %q", c.Environment))
	}
	if !c.Logging.Format.IsValid() {
		return apperrors.Config("logging.format", fmt.Sprintf("unknown log format %q", c.Logging.Format))
	}
	if !c.Web.CookieSameSite.IsValid() {
		return apperrors.Config("web.cookie_samesite", fmt.Sprintf("unknown samesite policy %q", c.Web.CookieSameSite))
	}
	if c.Instance.Path == "" {
		return apperrors.Config("instance.path", "instance path is required")
	}
	if c.SecretKey == "" {
		return apperrors.Config("secret_key", "secret key is required")
	}
	return nil
}

// ShutdownTimeoutDuration parses and returns the shutdown timeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Server.ShutdownTimeout)
	return d
}

// MaxHeaderBytes returns the configured header size limit in bytes.
func (c *Config) MaxHeaderBytes() int {
	size, _ := units.FromHumanSize(c.Server.MaxHeaderSize)
	return int(size)
}

// getEnv returns the value of the environment variable key, or defaultValue if unset.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
