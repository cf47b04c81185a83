// Package config loads client settings from defaults, the YAML config
// file, .env, UNIATTEND_* environment variables and flags, in that order.
package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/felixgeelhaar/uniattend/internal/domain"
	"github.com/felixgeelhaar/uniattend/internal/errors"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Output formats.
var OutputFormats = []string{"text", "json", "yaml"}

// Config is the effective client configuration.
type Config struct {
	APIURL      string         `yaml:"api_url" env:"API_URL"`
	HTTPTimeout time.Duration  `yaml:"http_timeout" env:"HTTP_TIMEOUT"`
	Locale      string         `yaml:"locale,omitempty" env:"LOCALE"`
	Storage     StorageConfig  `yaml:"storage" envPrefix:"STORAGE_"`
	Logging     LoggingConfig  `yaml:"logging" envPrefix:"LOG_"`
	Output      OutputConfig   `yaml:"output" envPrefix:"OUTPUT_"`
	Roles       map[int]string `yaml:"roles,omitempty"`
}

// StorageConfig selects where the session is persisted.
type StorageConfig struct {
	Backend string      `yaml:"backend" env:"BACKEND"`
	Path    string      `yaml:"path,omitempty" env:"PATH"`
	Redis   RedisConfig `yaml:"redis,omitempty" envPrefix:"REDIS_"`
}

// RedisConfig contains Redis configuration.
type RedisConfig struct {
	Addr     string `yaml:"addr,omitempty" env:"ADDR"`
	Password string `yaml:"password,omitempty" env:"PASSWORD"`
	DB       int    `yaml:"db,omitempty" env:"DB"`
	Prefix   string `yaml:"prefix,omitempty" env:"PREFIX"`
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"`
	File   string `yaml:"file,omitempty" env:"FILE"`
}

// OutputConfig holds command output defaults.
type OutputConfig struct {
	Format  string `yaml:"format" env:"FORMAT"`
	NoColor bool   `yaml:"no_color,omitempty" env:"NO_COLOR"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		APIURL:      "http://localhost:8080",
		HTTPTimeout: 15 * time.Second,
		Storage: StorageConfig{
			Backend: BackendFile,
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "uniattend:",
			},
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
		Output: OutputConfig{
			Format: "text",
		},
	}
}

// Sanitize trims values and fills paths that depend on home.
func (c *Config) Sanitize(home string) {
	c.APIURL = strings.TrimRight(strings.TrimSpace(c.APIURL), "/")
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	if c.Storage.Path == "" {
		c.Storage.Path = filepath.Join(home, "session.json")
	}
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = Default().HTTPTimeout
	}
}

// Validate rejects settings the client cannot run with.
func (c Config) Validate() error {
	if c.APIURL == "" {
		return errors.NewConfigInvalidError("api_url is empty")
	}
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.NewConfigInvalidError(fmt.Sprintf("api_url %q is not an http(s) URL", c.APIURL))
	}

	switch c.Storage.Backend {
	case BackendFile, BackendMemory:
	case BackendRedis:
		if c.Storage.Redis.Addr == "" {
			return errors.NewConfigInvalidError("storage.redis.addr is required for the redis backend")
		}
	default:
		return errors.NewConfigInvalidError(fmt.Sprintf("unknown storage.backend %q (want file, redis or memory)", c.Storage.Backend))
	}

	if !slices.Contains(OutputFormats, c.Output.Format) {
		return errors.NewConfigInvalidError(fmt.Sprintf("unknown output.format %q", c.Output.Format))
	}

	for id, name := range c.Roles {
		if strings.TrimSpace(name) == "" {
			return errors.NewConfigInvalidError(fmt.Sprintf("roles.%d has no name", id))
		}
	}
	return nil
}

// RoleCatalog merges configured role ids over the default catalog.
func (c Config) RoleCatalog() domain.RoleCatalog {
	catalog := domain.DefaultRoleCatalog()
	for id, name := range c.Roles {
		catalog[id] = strings.ToLower(strings.TrimSpace(name))
	}
	return catalog
}

// LogFile returns the log file path for interactive screens.
func (c Config) LogFile(home string) string {
	if c.Logging.File != "" {
		return c.Logging.File
	}
	return filepath.Join(home, "uniattend.log")
}
