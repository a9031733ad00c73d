package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"school-site-backend/internal/utils"
)

// RateLimiter throttles the public feedback form by client IP using a
// fixed redis window. A nil client disables it entirely, so environments
// without redis keep working.
type RateLimiter struct {
	rdb    *redis.Client
	prefix string
	limit  int
	window time.Duration
}

func NewRateLimiter(rdb *redis.Client, prefix string, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{rdb: rdb, prefix: prefix, limit: limit, window: window}
}

func (r *RateLimiter) ByIP() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if r == nil || r.rdb == nil {
			return c.Next()
		}
		key := fmt.Sprintf("%s:%s", r.prefix, c.IP())
		ctx := c.Context()
		count, err := r.rdb.Incr(ctx, key).Result()
		if err != nil {
			// redis being down must not take the form down with it
			return c.Next()
		}
		if count == 1 {
			r.rdb.Expire(ctx, key, r.window)
		}
		if count > int64(r.limit) {
			return utils.JSONError(c, fiber.StatusTooManyRequests, "too many submissions, try again later")
		}
		return c.Next()
	}
}
