// Package config loads the vizscript CLI configuration file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/vizscript/internal/logging"
	"github.com/aretw0/vizscript/pkg/adapters/file"
	"github.com/aretw0/vizscript/pkg/adapters/redis"
	"github.com/aretw0/vizscript/pkg/undo"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultPath is the file looked up in the working directory when no path is given.
	DefaultPath = "vizscript.yaml"
	// KeyEnv overrides encryption.key so the key can stay out of the file.
	KeyEnv = "VIZSCRIPT_ENCRYPTION_KEY"
)

// Config is the content of vizscript.yaml (or .json).
type Config struct {
	ScriptsHome        string        `yaml:"scripts_home" json:"scripts_home"`
	LogLevel           string        `yaml:"log_level" json:"log_level"`
	StrictCapabilities bool          `yaml:"strict_capabilities" json:"strict_capabilities"`
	StrictRegistry     bool          `yaml:"strict_registry" json:"strict_registry"`
	Undo               UndoConfig    `yaml:"undo" json:"undo"`
	Redis              RedisConfig   `yaml:"redis" json:"redis"`
	HTTP               HTTPConfig    `yaml:"http" json:"http"`
	Metrics            MetricsConfig `yaml:"metrics" json:"metrics"`
	Encryption         CryptoConfig  `yaml:"encryption" json:"encryption"`
}

type UndoConfig struct {
	Max     int  `yaml:"max" json:"max"`
	Enabled bool `yaml:"enabled" json:"enabled"`
}

// RedisConfig selects the Redis script store when Addr is set.
type RedisConfig struct {
	Addr     string `yaml:"addr" json:"addr"`
	Password string `yaml:"password" json:"password"`
	DB       int    `yaml:"db" json:"db"`
	Prefix   string `yaml:"prefix" json:"prefix"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr" json:"addr"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
}

// CryptoConfig enables encrypted script storage when Key is set.
// Keys are base64 encoded 32 byte AES keys.
type CryptoConfig struct {
	Key          string   `yaml:"key" json:"key"`
	FallbackKeys []string `yaml:"fallback_keys" json:"fallback_keys"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		ScriptsHome: file.DefaultHome,
		LogLevel:    "info",
		Undo: UndoConfig{
			Max:     undo.DefaultMax,
			Enabled: true,
		},
		Redis: RedisConfig{
			Prefix: redis.DefaultPrefix,
		},
		HTTP: HTTPConfig{
			Addr: ":8080",
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Load reads path over the defaults. An empty path falls back to DefaultPath,
// and a missing default file is not an error. A missing explicit path is.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			cfg.applyEnv()
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if key := os.Getenv(KeyEnv); key != "" {
		c.Encryption.Key = key
	}
}

// Validate checks values the loaders cannot.
func (c Config) Validate() error {
	if c.Undo.Max == 0 || c.Undo.Max < undo.Unlimited {
		return fmt.Errorf("undo.max must be positive or %d, got %d", undo.Unlimited, c.Undo.Max)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("redis.db must not be negative, got %d", c.Redis.DB)
	}
	return nil
}

// Level returns the parsed log level, or info if it is invalid.
func (c Config) Level() slog.Level {
	lvl, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// UseRedis reports whether scripts live in Redis rather than on disk.
func (c Config) UseRedis() bool {
	return c.Redis.Addr != ""
}
