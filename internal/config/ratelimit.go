package config

import "time"

// RateLimitConfig configures the redis token bucket in front of the API.
// KeyStrategy names the request parts that make up a bucket key, e.g.
// "ip", "user_route" or "ip_user_route".
type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
	KeyStrategy    string
	Prefix         string
	Debug          bool
}

func LoadRateLimitConfig() RateLimitConfig {
	def := RateLimitConfig{
		Enabled:        envBool("RATE_LIMIT_ENABLED", true),
		Capacity:       envInt("RATE_LIMIT_CAPACITY", 60),
		RefillTokens:   envInt("RATE_LIMIT_REFILL_TOKENS", 1),
		RefillInterval: envDur("RATE_LIMIT_REFILL_INTERVAL", time.Second),
		TTL:            envDur("RATE_LIMIT_TTL", 10*time.Minute),
		KeyStrategy:    envStr("RATE_LIMIT_KEY_STRATEGY", "ip_user_route"),
		Prefix:         envStr("RATE_LIMIT_PREFIX", "todo:rl"),
		Debug:          envBool("RATE_LIMIT_DEBUG", false),
	}
	if b := envInt("RATE_LIMIT_BURST", -1); b > 0 {
		def.Capacity = b
	}
	if every := envDur("RATE_LIMIT_REFILL_EVERY", 0); every > 0 {
		def.RefillTokens = 1
		def.RefillInterval = every
	}
	return def.normalize()
}

func (c RateLimitConfig) normalize() RateLimitConfig {
	if c.Capacity < 1 {
		c.Capacity = 1
	}
	if c.RefillTokens < 1 {
		c.RefillTokens = 1
	}
	if c.RefillInterval <= 0 {
		c.RefillInterval = time.Second
	}
	// keys must outlive a full refill of a few tokens
	if minTTL := 5 * c.RefillInterval; c.TTL < minTTL {
		c.TTL = minTTL
	}
	switch c.KeyStrategy {
	case "ip", "user", "route", "ip_user", "ip_route", "user_route", "ip_user_route":
	default:
		c.KeyStrategy = "ip_user_route"
	}
	return c
}
