package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const appName = "kanban"

// Environment overrides, applied after the config file
const (
	EnvAddr      = "KANBAN_ADDR"
	EnvDBPath    = "KANBAN_DB_PATH"
	EnvJWTSecret = "KANBAN_JWT_SECRET"
	EnvRedisURL  = "KANBAN_REDIS_URL"
	EnvLogLevel  = "KANBAN_LOG_LEVEL"
)

// Defaults for fields missing from the file
const (
	DefaultAddr            = ":8080"
	DefaultTokenTTL        = 30 * 24 * time.Hour
	DefaultCacheTTL        = 5 * time.Minute
	DefaultLogLevel        = "info"
	DefaultShutdownTimeout = 10 * time.Second
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Cache    CacheConfig    `yaml:"cache"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig configures the HTTP listener
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DatabaseConfig locates the SQLite file
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// AuthConfig configures token signing
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
}

// CacheConfig configures the optional Redis board cache.
// An empty RedisURL disables caching.
type CacheConfig struct {
	RedisURL string        `yaml:"redis_url"`
	TTL      time.Duration `yaml:"ttl"`
}

// LogConfig configures logrus. An empty File logs to stderr.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Load reads the config at path, or at the default location when path is empty.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			path = ""
		}
	}

	config := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	config.applyEnv()
	if err := config.applyDefaults(); err != nil {
		return nil, err
	}
	return config, nil
}

// DefaultPath returns $XDG_CONFIG_HOME/kanban/config.yaml or ~/.config/kanban/config.yaml
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", appName, "config.yaml"), nil
}

// defaultDBPath returns ~/.kanban/kanban.db
func defaultDBPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, "."+appName, appName+".db"), nil
}

func (c *Config) applyEnv() {
	overrides := map[string]*string{
		EnvAddr:      &c.Server.Addr,
		EnvDBPath:    &c.Database.Path,
		EnvJWTSecret: &c.Auth.JWTSecret,
		EnvRedisURL:  &c.Cache.RedisURL,
		EnvLogLevel:  &c.Log.Level,
	}
	for env, field := range overrides {
		if v, ok := os.LookupEnv(env); ok {
			*field = v
		}
	}
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() error {
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if c.Database.Path == "" {
		path, err := defaultDBPath()
		if err != nil {
			return fmt.Errorf("cannot determine database path: %w", err)
		}
		c.Database.Path = path
	}
	if c.Auth.TokenTTL <= 0 {
		c.Auth.TokenTTL = DefaultTokenTTL
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = DefaultCacheTTL
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	return nil
}
