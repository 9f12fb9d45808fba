package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" || cfg.TokenTTL != 24*time.Hour || cfg.Refresh.Workers != 8 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Redis.Addr != "" || cfg.Redis.LockTTL != 10*time.Second {
		t.Errorf("unexpected redis defaults: %+v", cfg.Redis)
	}
	if cfg.SQLite.Path != "data/tracker.db" {
		t.Errorf("unexpected sqlite path %q", cfg.SQLite.Path)
	}
	if !cfg.IsDevelopment() {
		t.Error("expected development by default")
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"PORT":            "9090",
		"TIMEZONE":        "Europe/Madrid",
		"REDIS_ADDR":      "redis:6379",
		"REFRESH_WORKERS": "2",
		"TOKEN_TTL":       "1h",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "9090" || cfg.Redis.Addr != "redis:6379" || cfg.Refresh.Workers != 2 || cfg.TokenTTL != time.Hour {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	loc, err := cfg.Location()
	if err != nil || loc.String() != "Europe/Madrid" {
		t.Errorf("unexpected location %v, %v", loc, err)
	}
}

func TestLoad_InvalidTimezone(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{"TIMEZONE": "Mars/Olympus"}))
	if err == nil {
		t.Fatal("expected error for unknown timezone")
	}
}
