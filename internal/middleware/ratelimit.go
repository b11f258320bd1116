package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"rentalconnect/internal/metrics"
	"rentalconnect/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// FailPolicy defines the behavior when Redis is unavailable.
type FailPolicy int

const (
	FailOpen FailPolicy = iota
	FailClosed
)

// CheckRateLimit implements a fixed window counter. It returns true if the call is allowed.
func CheckRateLimit(ctx context.Context, rdb *redis.Client, resource, id string, limit int, window time.Duration) (bool, error) {
	if rdb == nil {
		return false, fmt.Errorf("redis client is nil")
	}

	key := fmt.Sprintf("rl:%s:%s", resource, id)

	cnt, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if cnt == 1 {
		if err := rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return cnt <= int64(limit), nil
}

type RateLimitConfig struct {
	Name   string
	Limit  int
	Window time.Duration
	Policy FailPolicy
}

// RateLimit keys by client IP. A nil client disables limiting entirely.
func RateLimit(rdb *redis.Client, cfg RateLimitConfig, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		resource := cfg.Name
		if resource == "" {
			resource = c.FullPath()
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()

		allowed, err := CheckRateLimit(ctx, rdb, resource, "ip:"+c.ClientIP(), cfg.Limit, cfg.Window)
		if err != nil {
			if cfg.Policy == FailClosed {
				log.Printf("rate_limit_unavailable resource=%s policy=fail_closed err=%v", resource, err)
				response.Abort(c, http.StatusServiceUnavailable, "RATE_LIMIT_UNAVAILABLE", "Rate limit unavailable")
				return
			}
			log.Printf("rate_limit_unavailable resource=%s policy=fail_open err=%v", resource, err)
			c.Next()
			return
		}

		if !allowed {
			m.Throttled()
			response.Abort(c, http.StatusTooManyRequests, "TOO_MANY_REQUESTS", "Too many attempts, try again later")
			return
		}
		c.Next()
	}
}
