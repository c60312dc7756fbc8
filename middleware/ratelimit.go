package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/ariebrainware/hospital-management/config"
	"github.com/ariebrainware/hospital-management/util"
	"github.com/gin-gonic/gin"
	cache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
)

const (
	// Rate limiting defaults
	defaultRateLimit  = 120         // requests
	defaultRateWindow = time.Minute // per minute
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	Limit  int
	Window time.Duration
}

type rateLimiter struct {
	limit  int
	window time.Duration
	local  *cache.Cache
}

// RateLimiter creates a fixed-window rate limiting middleware keyed by route
// and client IP. Counters live in Redis when a client is connected, otherwise
// in an in-process cache.
func RateLimiter(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.Limit <= 0 {
		cfg.Limit = defaultRateLimit
	}
	if cfg.Window <= 0 {
		cfg.Window = defaultRateWindow
	}

	rl := &rateLimiter{
		limit:  cfg.Limit,
		window: cfg.Window,
		local:  cache.New(cfg.Window, 2*cfg.Window),
	}

	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = c.Request.URL.Path
		}
		key := rateLimitKey(clientIP, endpoint)

		allowed, err := rl.allow(c.Request.Context(), key)
		if err != nil {
			// Redis trouble must not take the API down with it.
			log.Warn().Err(err).Str("client_ip", clientIP).Str("endpoint", endpoint).Msg("rate limit check failed")
			c.Next()
			return
		}

		if !allowed {
			log.Warn().Str("client_ip", clientIP).Str("endpoint", endpoint).Msg("rate limit exceeded")
			c.Header("Retry-After", fmt.Sprintf("%.0f", rl.window.Seconds()))
			util.CallTooManyRequests(c, util.APIErrorParams{
				Msg: "Too many requests. Please try again later.",
				Err: fmt.Errorf("rate limit exceeded"),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func rateLimitKey(clientIP, endpoint string) string {
	return fmt.Sprintf("ratelimit:%s:%s", endpoint, clientIP)
}

// allow reports whether the request is within the limit.
func (rl *rateLimiter) allow(ctx context.Context, key string) (bool, error) {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return rl.allowLocal(key) <= int64(rl.limit), nil
	}

	pipe := rdb.Pipeline()
	incrCmd := pipe.Incr(ctx, key)
	// Only the first hit of a window sets the expiry.
	pipe.ExpireNX(ctx, key, rl.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to check rate limit: %w", err)
	}

	return incrCmd.Val() <= int64(rl.limit), nil
}

func (rl *rateLimiter) allowLocal(key string) int64 {
	if err := rl.local.Add(key, int64(1), rl.window); err == nil {
		return 1
	}
	count, err := rl.local.IncrementInt64(key, 1)
	if err != nil {
		// Entry expired between Add and Increment.
		rl.local.Set(key, int64(1), rl.window)
		return 1
	}
	return count
}
