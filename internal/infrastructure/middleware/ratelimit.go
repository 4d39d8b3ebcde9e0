package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/marcos-nsantos/flickr2-backend/internal/infrastructure/config"
)

// Limiter decides whether one more request for key fits in the budget.
type Limiter interface {
	Allow(ctx context.Context, key string) (allowed bool, remaining int, err error)
}

type RateLimiter struct {
	limiter        Limiter
	requestsPerMin int
	logger         *zap.Logger
}

func NewRateLimiter(limiter Limiter, cfg config.RateLimitConfig, logger *zap.Logger) *RateLimiter {
	return &RateLimiter{
		limiter:        limiter,
		requestsPerMin: cfg.RequestsPerMin,
		logger:         logger,
	}
}

func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ratelimit:" + c.ClientIP()

		allowed, remaining, err := rl.limiter.Allow(c.Request.Context(), key)
		if err != nil {
			rl.logger.Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.requestsPerMin))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    "RATE_LIMITED",
				"message": "too many requests, please try again later",
			})
			return
		}

		c.Next()
	}
}

// RedisLimiter is a sliding window shared by every instance.
type RedisLimiter struct {
	client         *redis.Client
	requestsPerMin int
	windowSize     time.Duration
}

func NewRedisLimiter(client *redis.Client, cfg config.RateLimitConfig) *RedisLimiter {
	return &RedisLimiter{
		client:         client,
		requestsPerMin: cfg.RequestsPerMin,
		windowSize:     time.Minute,
	}
}

func (rl *RedisLimiter) Allow(ctx context.Context, key string) (bool, int, error) {
	now := time.Now().UnixNano()
	windowStart := now - rl.windowSize.Nanoseconds()

	pipe := rl.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: now})
	countCmd := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, rl.windowSize)

	if _, err := pipe.Exec(ctx); err != nil {
		return true, rl.requestsPerMin, fmt.Errorf("executing rate limit pipeline: %w", err)
	}

	count := int(countCmd.Val())
	return count <= rl.requestsPerMin, max(rl.requestsPerMin-count, 0), nil
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryLimiter keeps one token bucket per key in process memory.
type MemoryLimiter struct {
	visitors cmap.ConcurrentMap[string, *visitor]
	limit    rate.Limit
	burst    int
	idle     time.Duration
	now      func() time.Time
}

func NewMemoryLimiter(cfg config.RateLimitConfig) *MemoryLimiter {
	return &MemoryLimiter{
		visitors: cmap.New[*visitor](),
		limit:    rate.Limit(float64(cfg.RequestsPerMin) / time.Minute.Seconds()),
		burst:    max(cfg.BurstSize, 1),
		idle:     cfg.CleanupInterval,
		now:      time.Now,
	}
}

func (ml *MemoryLimiter) Allow(_ context.Context, key string) (bool, int, error) {
	now := ml.now()
	v := ml.visitors.Upsert(key, nil, func(exist bool, old, _ *visitor) *visitor {
		if exist {
			old.lastSeen = now
			return old
		}
		return &visitor{limiter: rate.NewLimiter(ml.limit, ml.burst), lastSeen: now}
	})

	allowed := v.limiter.AllowN(now, 1)
	return allowed, max(int(v.limiter.TokensAt(now)), 0), nil
}

// Cleanup drops buckets idle for longer than the cleanup interval until ctx
// is done.
func (ml *MemoryLimiter) Cleanup(ctx context.Context) {
	if ml.idle <= 0 {
		return
	}
	ticker := time.NewTicker(ml.idle)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ml.evict(ml.now())
		}
	}
}

func (ml *MemoryLimiter) evict(now time.Time) {
	for _, key := range ml.visitors.Keys() {
		ml.visitors.RemoveCb(key, func(_ string, v *visitor, exists bool) bool {
			return exists && now.Sub(v.lastSeen) > ml.idle
		})
	}
}
