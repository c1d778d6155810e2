// internal/intake/ratelimit_test.go
package intake

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intake-gateway/internal/common/logger"
)

func newLimiterWithRedis(t *testing.T, perMin int) (*FixedWindowLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewFixedWindowLimiter(client, perMin, logger.NewNoOpLogger()), mr
}

func TestFixedWindowLimiter_AllowsUnderLimit(t *testing.T) {
	limiter, _ := newLimiterWithRedis(t, 3)

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow(context.Background(), "1.2.3.4"))
	}
}

func TestFixedWindowLimiter_BlocksOverLimit(t *testing.T) {
	limiter, _ := newLimiterWithRedis(t, 2)

	require.True(t, limiter.Allow(context.Background(), "1.2.3.4"))
	require.True(t, limiter.Allow(context.Background(), "1.2.3.4"))
	assert.False(t, limiter.Allow(context.Background(), "1.2.3.4"))
}

func TestFixedWindowLimiter_KeysAreIndependent(t *testing.T) {
	limiter, _ := newLimiterWithRedis(t, 1)

	require.True(t, limiter.Allow(context.Background(), "1.2.3.4"))
	assert.False(t, limiter.Allow(context.Background(), "1.2.3.4"))
	assert.True(t, limiter.Allow(context.Background(), "5.6.7.8"))
}

func TestFixedWindowLimiter_FailsOpenWhenRedisDown(t *testing.T) {
	limiter, mr := newLimiterWithRedis(t, 1)
	mr.Close()

	// A dead Redis must never block intake.
	assert.True(t, limiter.Allow(context.Background(), "1.2.3.4"))
	assert.True(t, limiter.Allow(context.Background(), "1.2.3.4"))
}

func TestFixedWindowLimiter_ZeroRateDisables(t *testing.T) {
	limiter, _ := newLimiterWithRedis(t, 0)

	for i := 0; i < 10; i++ {
		assert.True(t, limiter.Allow(context.Background(), "1.2.3.4"))
	}
}
