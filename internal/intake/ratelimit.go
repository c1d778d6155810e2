// internal/intake/ratelimit.go
package intake

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"intake-gateway/internal/common/logger"
)

// Limiter guards the public intake endpoint. Allow reports whether the
// caller may proceed; on any limiter-side failure it fails open, so a Redis
// outage can never block intake.
type Limiter interface {
	Allow(ctx context.Context, key string) bool
}

// noopLimiter admits everything. Used when no Redis address is configured.
type noopLimiter struct{}

func (noopLimiter) Allow(context.Context, string) bool { return true }

// NewNoopLimiter returns a limiter that admits every request.
func NewNoopLimiter() Limiter { return noopLimiter{} }

// FixedWindowLimiter counts requests per key in one-minute windows shared
// across gateway replicas through Redis.
type FixedWindowLimiter struct {
	client *redis.Client
	perMin int
	logger logger.Logger
}

func NewFixedWindowLimiter(client *redis.Client, perMin int, log logger.Logger) *FixedWindowLimiter {
	return &FixedWindowLimiter{client: client, perMin: perMin, logger: log}
}

func (l *FixedWindowLimiter) Allow(ctx context.Context, key string) bool {
	if l.perMin <= 0 {
		return true
	}

	window := time.Now().UTC().Unix() / 60
	redisKey := fmt.Sprintf("intake:rate:%s:%d", key, window)

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		l.logger.Warn("rate limiter unavailable, failing open", map[string]interface{}{
			"error": err.Error(),
		})
		return true
	}
	if count == 1 {
		l.client.Expire(ctx, redisKey, 2*time.Minute)
	}
	return count <= int64(l.perMin)
}
