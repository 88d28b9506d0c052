package middleware

import (
	"fmt"
	"time"

	"github.com/labstack/echo/v4"

	"ewastex/internal/domain/entity"
	"ewastex/internal/infrastructure/ratelimit"
	"ewastex/pkg/errors"
	"ewastex/pkg/response"
)

type RateLimitMiddleware struct {
	limiter *ratelimit.RateLimiter
}

func NewRateLimitMiddleware(limiter *ratelimit.RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
	}
}

// Limit throttles per wallet. Runs after wallet authentication.
func (m *RateLimitMiddleware) Limit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := c.Get("user").(*entity.User)
		if !ok {
			return next(c)
		}

		allowed, wait := m.limiter.Allow(user.WalletAddress)
		if !allowed {
			return response.Error(c, errors.TooManyRequests(
				fmt.Sprintf("Too many requests; retry in %s", wait.Round(time.Second))))
		}

		return next(c)
	}
}

// StartCleanup periodically evicts idle buckets.
func (m *RateLimitMiddleware) StartCleanup(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			m.limiter.Cleanup()
		}
	}()
}
