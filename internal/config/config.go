package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Storage backends
const (
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

// Session backends
const (
	SessionsRedis  = "redis"
	SessionsMemory = "memory"
)

// Config holds the full server configuration, loaded from environment
// variables with an optional .env file on top.
type Config struct {
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8080"`

	Storage    string `env:"STORAGE_TYPE" envDefault:"sqlite"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"rallybot.db"`

	Sessions   string        `env:"SESSION_BACKEND" envDefault:"memory"`
	RedisURL   string        `env:"REDIS_URL"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"30m"`

	AuthTokenTTL   time.Duration `env:"AUTH_TOKEN_TTL" envDefault:"24h"`
	AdminNicknames []string      `env:"ADMIN_NICKNAMES" envSeparator:","`

	AnnounceWindow time.Duration `env:"ANNOUNCE_WINDOW" envDefault:"24h"`
	SweepEnabled   bool          `env:"SWEEP_ENABLED" envDefault:"true"`
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first if present; real environment
// variables win over it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage {
	case StorageSQLite, StorageMemory:
	default:
		return fmt.Errorf("unknown STORAGE_TYPE %q", c.Storage)
	}
	switch c.Sessions {
	case SessionsMemory:
	case SessionsRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL required when SESSION_BACKEND=%s", SessionsRedis)
		}
	default:
		return fmt.Errorf("unknown SESSION_BACKEND %q", c.Sessions)
	}
	return nil
}
