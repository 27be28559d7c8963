//go:build unit

package middleware_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"testing"
	"time"

	"appointment-scheduler/internal/handler/middleware"
	"appointment-scheduler/internal/pkg/config"
	"appointment-scheduler/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func limitedRouter(limiter middleware.RateLimiter, failOpen bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RateLimit(limiter, failOpen, discard))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (bool, error) {
	return false, errors.New("backend down")
}
func (failingLimiter) RetryAfter() time.Duration { return time.Second }

// fakeScripter counts INCR per key the way the fixed-window script would.
type fakeScripter struct {
	redis.Scripter
	mu     sync.Mutex
	counts map[string]int64
	err    error
}

func (f *fakeScripter) EvalSha(_ context.Context, _ string, keys []string, _ ...interface{}) *redis.Cmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return redis.NewCmdResult(nil, f.err)
	}
	if f.counts == nil {
		f.counts = make(map[string]int64)
	}
	f.counts[keys[0]]++
	return redis.NewCmdResult(f.counts[keys[0]], nil)
}

func TestRateLimit_Memory(t *testing.T) {
	r := limitedRouter(middleware.NewMemoryRateLimiter(1, 2), true)

	assert.Equal(t, http.StatusOK, httptest.PerformRequest(t, r, http.MethodGet, "/ping", nil, "").Code)
	assert.Equal(t, http.StatusOK, httptest.PerformRequest(t, r, http.MethodGet, "/ping", nil, "").Code)

	w := httptest.PerformRequest(t, r, http.MethodGet, "/ping", nil, "")
	httptest.AssertErrorResponse(t, w, http.StatusTooManyRequests, "Rate limit exceeded")
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
}

func TestRateLimit_KeysByClient(t *testing.T) {
	limiter := middleware.NewMemoryRateLimiter(1, 1)

	ok, err := limiter.Allow(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, _ = limiter.Allow(context.Background(), "10.0.0.1")
	assert.False(t, ok)
	ok, _ = limiter.Allow(context.Background(), "10.0.0.2")
	assert.True(t, ok)
}

func TestRateLimit_LimiterFailure(t *testing.T) {
	t.Run("fail open passes the request", func(t *testing.T) {
		w := httptest.PerformRequest(t, limitedRouter(failingLimiter{}, true), http.MethodGet, "/ping", nil, "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("fail closed rejects with 503", func(t *testing.T) {
		w := httptest.PerformRequest(t, limitedRouter(failingLimiter{}, false), http.MethodGet, "/ping", nil, "")
		httptest.AssertErrorResponse(t, w, http.StatusServiceUnavailable, "Rate limiter unavailable")
	})
}

func TestRedisRateLimiter(t *testing.T) {
	t.Run("fixed window counts per key", func(t *testing.T) {
		rdb := &fakeScripter{}
		limiter := middleware.NewRedisRateLimiter(rdb, 2, time.Minute, "test")

		for i := 0; i < 2; i++ {
			ok, err := limiter.Allow(context.Background(), "10.0.0.1")
			require.NoError(t, err)
			assert.True(t, ok)
		}
		ok, err := limiter.Allow(context.Background(), "10.0.0.1")
		require.NoError(t, err)
		assert.False(t, ok)

		assert.Equal(t, int64(3), rdb.counts["test:10.0.0.1"])
		assert.Equal(t, time.Minute, limiter.RetryAfter())
	})

	t.Run("redis error surfaces", func(t *testing.T) {
		limiter := middleware.NewRedisRateLimiter(&fakeScripter{err: errors.New("connection refused")}, 2, time.Minute, "test")
		_, err := limiter.Allow(context.Background(), "10.0.0.1")
		assert.ErrorContains(t, err, "connection refused")
	})

	t.Run("429 carries the window as Retry-After", func(t *testing.T) {
		r := limitedRouter(middleware.NewRedisRateLimiter(&fakeScripter{}, 1, 30*time.Second, "test"), true)
		httptest.PerformRequest(t, r, http.MethodGet, "/ping", nil, "")
		w := httptest.PerformRequest(t, r, http.MethodGet, "/ping", nil, "")
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "30", w.Header().Get("Retry-After"))
	})
}

func TestNewRateLimiter(t *testing.T) {
	assert.Nil(t, middleware.NewRateLimiter(config.RateLimitConfig{Driver: "off"}, nil))
	assert.IsType(t, &middleware.MemoryRateLimiter{}, middleware.NewRateLimiter(config.RateLimitConfig{Driver: "memory", RPS: 5}, nil))
	assert.IsType(t, &middleware.RedisRateLimiter{}, middleware.NewRateLimiter(config.RateLimitConfig{Driver: "redis"}, &fakeScripter{}))
}
