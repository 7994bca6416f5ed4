package config

import "time"

// RateLimitConfig sizes the per-client token bucket.  A bucket holds
// Capacity tokens and gains one every Refill.
type RateLimitConfig struct {
	Enabled  bool
	Capacity int
	Refill   time.Duration
	TTL      time.Duration // idle buckets expire after this
	PerRoute bool          // one bucket per client and route instead of per client
	Prefix   string
}

func LoadRateLimitConfig(service string) RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled:  envBool("RATE_LIMIT_ENABLED", true),
		Capacity: envInt("RATE_LIMIT_CAPACITY", 60),
		Refill:   envDur("RATE_LIMIT_REFILL", time.Second),
		TTL:      envDur("RATE_LIMIT_TTL", 10*time.Minute),
		PerRoute: envBool("RATE_LIMIT_PER_ROUTE", true),
		Prefix:   envStr("RATE_LIMIT_PREFIX", "rl:"+service),
	}
	if cfg.Capacity < 1 {
		cfg.Capacity = 1
	}
	if cfg.Refill <= 0 {
		cfg.Refill = time.Second
	}
	if minTTL := 5 * cfg.Refill; cfg.TTL < minTTL {
		cfg.TTL = minTTL
	}
	return cfg
}
