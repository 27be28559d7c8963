package middleware

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"appointment-scheduler/internal/handler/httperr"
	"appointment-scheduler/internal/pkg/config"
	"appointment-scheduler/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

var (
	errRateLimited        = errs.New("rate limit exceeded")
	errLimiterUnavailable = errs.New("rate limiter unavailable")
)

// RateLimiter decides whether the client identified by key may proceed.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	// RetryAfter is the hint sent with a rejected request.
	RetryAfter() time.Duration
}

// RateLimit rejects over-limit clients with 429. Limiter errors pass the request through when failOpen is set.
func RateLimit(limiter RateLimiter, failOpen bool, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		allowed, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			logger.Warn("rate limiter error", "error", err.Error(), "client_ip", key)
			if failOpen {
				c.Next()
				return
			}
			httperr.AbortWithError(c, http.StatusServiceUnavailable, errs.Mark(err, errLimiterUnavailable), "Rate limiter unavailable", nil)
			return
		}
		if !allowed {
			secs := int(math.Ceil(limiter.RetryAfter().Seconds()))
			if secs < 1 {
				secs = 1
			}
			c.Header("Retry-After", strconv.Itoa(secs))
			httperr.AbortWithError(c, http.StatusTooManyRequests, errRateLimited, "Rate limit exceeded. Try again later.", nil)
			return
		}
		c.Next()
	}
}

// MemoryRateLimiter keeps one token bucket per client in process memory.
type MemoryRateLimiter struct {
	rps   rate.Limit
	burst int
	idle  time.Duration

	mu        sync.Mutex
	limiters  map[string]*clientLimiter
	lastSweep time.Time
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewMemoryRateLimiter(rps float64, burst int) *MemoryRateLimiter {
	if rps <= 0 {
		rps = 10
	}
	if burst <= 0 {
		burst = int(math.Ceil(rps))
	}
	return &MemoryRateLimiter{
		rps:      rate.Limit(rps),
		burst:    burst,
		idle:     10 * time.Minute,
		limiters: make(map[string]*clientLimiter),
	}
}

func (m *MemoryRateLimiter) Allow(_ context.Context, key string) (bool, error) {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sweep(now)
	cl, ok := m.limiters[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(m.rps, m.burst)}
		m.limiters[key] = cl
	}
	cl.lastSeen = now
	return cl.limiter.AllowN(now, 1), nil
}

func (m *MemoryRateLimiter) RetryAfter() time.Duration {
	return time.Duration(float64(time.Second) / float64(m.rps))
}

// sweep drops clients idle for longer than m.idle, at most once per idle period.
func (m *MemoryRateLimiter) sweep(now time.Time) {
	if now.Sub(m.lastSweep) < m.idle {
		return
	}
	m.lastSweep = now
	for k, cl := range m.limiters {
		if now.Sub(cl.lastSeen) > m.idle {
			delete(m.limiters, k)
		}
	}
}

// RedisRateLimiter is a fixed-window limiter shared by every instance pointing at the same Redis.
type RedisRateLimiter struct {
	rdb    redis.Scripter
	limit  int
	window time.Duration
	prefix string
}

var redisFixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

func NewRedisRateLimiter(rdb redis.Scripter, limit int, window time.Duration, prefix string) *RedisRateLimiter {
	if limit <= 0 {
		limit = 60
	}
	if window <= 0 {
		window = time.Minute
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "rl"
	}
	return &RedisRateLimiter{rdb: rdb, limit: limit, window: window, prefix: prefix}
}

func (r *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	count, err := r.incr(ctx, r.prefix+":"+key)
	if err != nil {
		return false, err
	}
	return count <= int64(r.limit), nil
}

func (r *RedisRateLimiter) RetryAfter() time.Duration {
	return r.window
}

func (r *RedisRateLimiter) incr(ctx context.Context, key string) (int64, error) {
	res, err := redisFixedWindowScript.Run(ctx, r.rdb, []string{key}, r.window.Milliseconds()).Result()
	if err != nil {
		return 0, errs.Wrap(err, "redis rate limit script")
	}
	switch v := res.(type) {
	case int64:
		return v, nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, errs.Wrap(err, "parse redis counter")
		}
		return n, nil
	default:
		return 0, errs.Newf("unexpected redis script result type %T", res)
	}
}

// NewRateLimiter picks the limiter for cfg.Driver; "off" returns nil.
func NewRateLimiter(cfg config.RateLimitConfig, rdb redis.Scripter) RateLimiter {
	switch cfg.Driver {
	case "redis":
		return NewRedisRateLimiter(rdb, cfg.Limit, cfg.Window, "appointment-scheduler:rl")
	case "memory":
		return NewMemoryRateLimiter(cfg.RPS, cfg.Burst)
	default:
		return nil
	}
}
