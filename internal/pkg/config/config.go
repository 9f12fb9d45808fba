package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`
	// Timezone decides which calendar day counts as "today".
	Timezone string `env:"TIMEZONE, default=UTC"`

	Mongo   MongoConfig
	Redis   RedisConfig
	SQLite  SQLiteConfig
	Refresh RefreshConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=package_tracker"`
}

// RedisConfig is optional: with an empty Addr the service locks in-process
// and notifications only go to the log.
type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR"`
	DB       int           `env:"REDIS_DB,       default=0"`
	Password string        `env:"REDIS_PASSWORD"`
	Stream   string        `env:"NOTIFY_STREAM,  default=tracker:notifications"`
	LockTTL  time.Duration `env:"LOCK_TTL,       default=10s"`
}

type SQLiteConfig struct {
	Path string `env:"SQLITE_PATH, default=data/tracker.db"`
}

type RefreshConfig struct {
	Workers int `env:"REFRESH_WORKERS, default=8"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
