package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("APP_PORT", "")
	t.Setenv("ACCESS_TOKEN_TTL_MIN", "")
	cfg := Load()
	if cfg.DatabaseURL != DefaultDatabaseURL {
		t.Fatalf("database url = %q", cfg.DatabaseURL)
	}
	if cfg.Port != "8000" || cfg.AccessTTLMin != 30 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestDatabaseURLFromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://app@db/todo")
	if got := DatabaseURL(); got != "postgres://app@db/todo" {
		t.Fatalf("DatabaseURL() = %q", got)
	}
}

func TestRateLimitNormalize(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_EVERY", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")
	t.Setenv("RATE_LIMIT_KEY_STRATEGY", "bogus")
	c := LoadRateLimitConfig()
	if c.Capacity != 1 {
		t.Fatalf("capacity = %d", c.Capacity)
	}
	if c.RefillInterval != 2*time.Second || c.TTL != 10*time.Second {
		t.Fatalf("interval=%v ttl=%v", c.RefillInterval, c.TTL)
	}
	if c.KeyStrategy != "ip_user_route" {
		t.Fatalf("strategy = %q", c.KeyStrategy)
	}
}

func TestRedisOptionsFromURL(t *testing.T) {
	t.Setenv("REDIS_URL", "redis://:pw@cache:6380/2")
	opts, err := redisOptions()
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if opts.Addr != "cache:6380" || opts.DB != 2 || opts.Password != "pw" {
		t.Fatalf("unexpected options: %+v", opts)
	}
}
