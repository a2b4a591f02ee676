package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// fixed window counter: INCR then PEXPIRE on the first hit of the window
var rateLimitScript = redis.NewScript(`
local current = redis.call('INCR', KEYS[1])
if current == 1 then
    redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return current
`)

// RedisRateLimiter enforces a fixed-window request limit shared across
// replicas. Used on the public booking endpoint where a per-process
// token bucket is not enough.
type RedisRateLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
	prefix string
	logger zerolog.Logger
}

func NewRedisRateLimiter(client *redis.Client, limit int64, window time.Duration, logger zerolog.Logger) *RedisRateLimiter {
	if limit <= 0 {
		limit = 60
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RedisRateLimiter{
		client: client,
		limit:  limit,
		window: window,
		prefix: "rl",
		logger: logger,
	}
}

func (rl *RedisRateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("%s:%s", rl.prefix, c.ClientIP())
		count, err := rateLimitScript.Run(c.Request.Context(), rl.client, []string{key}, rl.window.Milliseconds()).Int64()
		if err != nil {
			// fail open, limiting is best effort
			rl.logger.Warn().Err(err).Msg("redis rate limiter unavailable")
			c.Next()
			return
		}
		if count > rl.limit {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{
				Code:    http.StatusTooManyRequests,
				Message: "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}
