package middleware

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	maxTrackedClients = 10000
	clientIdleTTL     = 10 * time.Minute
)

// RateLimit applies a token bucket per client IP. A non-positive
// requestsPerSecond disables limiting.
func RateLimit(requestsPerSecond float64, burst int, logger *zap.Logger) fiber.Handler {
	if requestsPerSecond <= 0 {
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}
	if burst < 1 {
		burst = 1
	}

	limiters := expirable.NewLRU[string, *rate.Limiter](maxTrackedClients, nil, clientIdleTTL)
	// guards the lookup and insert so one client never gets two buckets
	var mu sync.Mutex

	limiterFor := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		limiter, ok := limiters.Get(ip)
		if !ok {
			limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
			limiters.Add(ip, limiter)
		}
		return limiter
	}

	return func(c *fiber.Ctx) error {
		ip := c.IP()
		limiter := limiterFor(ip)

		if !limiter.Allow() {
			logger.Warn("Rate limit exceeded", zap.String("ip", ip), zap.String("path", c.Path()))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests",
			})
		}

		return c.Next()
	}
}
