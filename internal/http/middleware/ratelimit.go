package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/yungbote/youthcare-backend/internal/http/response"
	"github.com/yungbote/youthcare-backend/internal/platform/logger"
)

var errRateLimited = errors.New("too many requests, try again later")

const defaultRateWindow = time.Minute

// windowOrDefault keeps a non-positive window from disabling the limiter or
// reaching time.NewTicker.
func windowOrDefault(d time.Duration) time.Duration {
	if d <= 0 {
		return defaultRateWindow
	}
	return d
}

// Limiter counts hits per key in fixed windows.
type Limiter interface {
	Allow(ctx context.Context, key string) (allowed bool, remaining int, err error)
}

type redisLimiter struct {
	rdb    redis.UniversalClient
	limit  int
	window time.Duration
	prefix string
}

func NewRedisLimiter(rdb redis.UniversalClient, limit int, window time.Duration) Limiter {
	return &redisLimiter{rdb: rdb, limit: limit, window: windowOrDefault(window), prefix: "youthcare:ratelimit:"}
}

func (l *redisLimiter) Allow(ctx context.Context, key string) (bool, int, error) {
	bucket := time.Now().UnixNano() / int64(l.window)
	k := fmt.Sprintf("%s%s:%d", l.prefix, key, bucket)
	pipe := l.rdb.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return true, l.limit, fmt.Errorf("rate limit incr: %w", err)
	}
	n := int(incr.Val())
	return n <= l.limit, remaining(l.limit, n), nil
}

type memoryWindow struct {
	start time.Time
	count int
}

// MemoryLimiter is the single-process fallback used when Redis is absent.
type MemoryLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	now     func() time.Time
	windows map[string]*memoryWindow
}

func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{limit: limit, window: windowOrDefault(window), now: time.Now, windows: map[string]*memoryWindow{}}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, int, error) {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()
	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= l.window {
		w = &memoryWindow{start: now}
		l.windows[key] = w
	}
	w.count++
	return w.count <= l.limit, remaining(l.limit, w.count), nil
}

// StartCleanup drops expired windows until ctx is cancelled.
func (l *MemoryLimiter) StartCleanup(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(l.window)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				l.sweep()
			}
		}
	}()
}

func (l *MemoryLimiter) sweep() int {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for k, w := range l.windows {
		if now.Sub(w.start) >= l.window {
			delete(l.windows, k)
			n++
		}
	}
	return n
}

func remaining(limit, used int) int {
	if used >= limit {
		return 0
	}
	return limit - used
}

// RateLimit rejects a client once it exceeds the limiter's budget for the
// matched route. Limiter errors fail open.
func RateLimit(log *logger.Logger, l Limiter) gin.HandlerFunc {
	mwLog := log.With("middleware", "RateLimit")
	return func(c *gin.Context) {
		if l == nil {
			c.Next()
			return
		}
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		ok, left, err := l.Allow(c.Request.Context(), c.ClientIP()+"|"+route)
		if err != nil {
			mwLog.Warn("rate limiter unavailable", "error", err)
			c.Next()
			return
		}
		c.Header("X-RateLimit-Remaining", strconv.Itoa(left))
		if !ok {
			response.AbortError(c, http.StatusTooManyRequests, "rate_limited", errRateLimited)
			return
		}
		c.Next()
	}
}
