package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const rateLimitPrefix = "rl:"

// KeyFunc derives the rate limit bucket for a request. An empty key falls back
// to the client IP.
type KeyFunc func(c *fiber.Ctx) string

// RateLimit allows at most limit requests per window and bucket using Redis
// counters. It is a no-op without Redis or with limit <= 0, and fails open on
// cache errors.
func RateLimit(cache *redis.Client, scope string, limit int, window time.Duration, key KeyFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cache == nil || limit <= 0 {
			return c.Next()
		}
		bucket := ""
		if key != nil {
			bucket = strings.TrimSpace(key(c))
		}
		if bucket == "" {
			bucket = c.IP()
		}
		redisKey := rateLimitPrefix + scope + ":" + bucket

		// The bucket is created with its TTL in one step; INCR keeps the TTL, so
		// a failure between the two calls cannot leave a counter that never expires.
		if err := cache.SetNX(c.UserContext(), redisKey, 0, window).Err(); err != nil {
			return c.Next()
		}
		cnt, err := cache.Incr(c.UserContext(), redisKey).Result()
		if err != nil {
			return c.Next()
		}
		if cnt > int64(limit) {
			return fiber.NewError(http.StatusTooManyRequests, "rate limit exceeded, try again later")
		}
		return c.Next()
	}
}

// BodyField returns a KeyFunc reading a top-level string field of the JSON body.
func BodyField(name string) KeyFunc {
	return func(c *fiber.Ctx) string {
		var body map[string]any
		if err := c.BodyParser(&body); err != nil {
			return ""
		}
		v, _ := body[name].(string)
		return v
	}
}
