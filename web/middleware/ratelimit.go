package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/inventaris/panel/logger"
	"github.com/inventaris/panel/web/cache"

	"github.com/gin-gonic/gin"
)

// RateLimitConfig configures a fixed-window limiter backed by Redis.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
	Prefix   string
	KeyFunc  func(c *gin.Context) string
}

// LoginRateLimitConfig limits login attempts per client IP.
func LoginRateLimitConfig(perMinute int) RateLimitConfig {
	return RateLimitConfig{
		Requests: perMinute,
		Window:   time.Minute,
		Prefix:   cache.KeyLoginLimitPrefix,
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

// RateLimitMiddleware rejects requests beyond config.Requests per window with 429.
// When Redis is unavailable requests pass through.
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if config.Requests <= 0 {
			c.Next()
			return
		}
		key := config.Prefix + config.KeyFunc(c)
		count, ttl, err := cache.IncrWindow(c.Request.Context(), key, config.Window)
		if err != nil {
			logger.Warning("Rate limit increment failed:", err)
			c.Next()
			return
		}

		remaining := config.Requests - int(count)
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Requests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(ttl).Unix(), 10))

		if int(count) > config.Requests {
			seconds := int(math.Ceil(ttl.Seconds()))
			logger.Warningf("Rate limit exceeded for %s (count: %d)", key, count)
			c.Header("Retry-After", strconv.Itoa(seconds))
			abort(c, http.StatusTooManyRequests, "rateLimited", "Seconds=="+strconv.Itoa(seconds))
			return
		}
		c.Next()
	}
}
