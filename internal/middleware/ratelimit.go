package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/fyyur-trivia/internal/config"
)

// tokenBucketScript refills the bucket at KEYS[1] and takes one token.
// ARGV: now_ms, capacity, refill_ms, ttl_s.  Returns {allowed, tokens, wait_ms}.
var tokenBucketScript = redis.NewScript(`
local now = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local every = tonumber(ARGV[3])

local state = redis.call('HMGET', KEYS[1], 'tokens', 'at')
local tokens = tonumber(state[1]) or capacity
local at = tonumber(state[2]) or now

local gained = math.floor(math.max(0, now - at) / every)
if gained > 0 then
    tokens = math.min(capacity, tokens + gained)
    at = at + gained * every
end

local allowed, wait = 0, 0
if tokens > 0 then
    allowed = 1
    tokens = tokens - 1
else
    wait = every - (now - at)
end

redis.call('HSET', KEYS[1], 'tokens', tokens, 'at', at)
redis.call('EXPIRE', KEYS[1], ARGV[4])
return {allowed, tokens, wait}
`)

// now is swapped in tests.
var now = time.Now

// NewTokenBucket limits requests per client IP, and per route when
// cfg.PerRoute is set, with a Redis token bucket.  Redis errors let the
// request through.
func NewTokenBucket(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := rateKey(cfg, c)
			res, err := tokenBucketScript.Run(c.Request().Context(), rdb, []string{key},
				now().UnixMilli(),
				cfg.Capacity,
				cfg.Refill.Milliseconds(),
				int64(cfg.TTL/time.Second),
			).Int64Slice()
			if err != nil || len(res) != 3 {
				c.Logger().Debugf("ratelimit: skipping key=%s: %v", key, err)
				return next(c)
			}

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(cfg.Capacity))
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(res[1], 10))
			if res[0] == 1 {
				return next(c)
			}

			secs := (res[2] + 999) / 1000
			if secs < 0 {
				secs = 0
			}
			h.Set("Retry-After", strconv.FormatInt(secs, 10))
			return c.JSON(http.StatusTooManyRequests, map[string]any{
				"success":     false,
				"error":       http.StatusTooManyRequests,
				"message":     "rate limit exceeded",
				"retry_after": secs,
			})
		}
	}
}

// rateKey is prefix:ip:<ip>, followed by :route:<method> <pattern> when
// buckets are per route.
func rateKey(cfg config.RateLimitConfig, c echo.Context) string {
	ip := c.RealIP()
	if ip == "" {
		ip = "unknown"
	}
	key := cfg.Prefix + ":ip:" + ip
	if cfg.PerRoute {
		key += ":route:" + c.Request().Method + " " + c.Path()
	}
	return key
}
